/*
 * dihedral.go, part of bbscore.
 *
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package bbscore

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// DihedralTerm is one term, V*(1+cos(n*angle-a)), of a Fourier
// torsion potential. A is in degrees.
type DihedralTerm struct {
	V float64
	N float64
	A float64
}

// Names of the backbone torsion term sets.
const (
	PhiTerms = "phi"
	PsiTerms = "psi"
)

// TorsionEnergy returns the sum over terms of V*(1+cos(n*angle-a)), with
// angle in degrees. The function is defined for any angle, but residues with
// no backbone dihedrals (see NoDihedrals) should not be given to it.
func TorsionEnergy(angle float64, terms []DihedralTerm) float64 {
	e := make([]float64, len(terms))
	for i, t := range terms {
		e[i] = t.V * (1 + math.Cos(Deg2Rad(t.N*angle-t.A)))
	}
	return floats.Sum(e)
}

// BackboneTorsionEnergy returns the phi plus psi torsion energy of a residue
// named res. Residues in FixedPhi (FixedPsi) don't get the phi (psi) term,
// nor do undefined angles. Residues in NoDihedrals give an ErrNoDihedral error.
func BackboneTorsionEnergy(res string, pp PhiPsi, phi, psi []DihedralTerm) (float64, error) {
	if isCap(res) {
		return 0, newError(ErrNoDihedral, res, "BackboneTorsionEnergy")
	}
	var e float64
	if !IsUndefined(pp.Phi) && !isInString(FixedPhi, res) {
		e += TorsionEnergy(pp.Phi, phi)
	}
	if !IsUndefined(pp.Psi) && !isInString(FixedPsi, res) {
		e += TorsionEnergy(pp.Psi, psi)
	}
	if !finite(e) {
		return 0, newError(ErrInvalidGeometry, fmt.Sprintf("non-finite torsion energy for %s", res), "BackboneTorsionEnergy")
	}
	return e, nil
}
