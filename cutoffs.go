/*
 * cutoffs.go, part of bbscore.
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
)

// InteractionCutoffs are the distances, in A, beyond which each kind of
// interaction is exactly zero.
type InteractionCutoffs struct {
	Overlap     float64 //pure steric overlap
	HBondLJ     float64 //12-10 term of geometric hydrogen bonds, on the O-H distance
	HBondDipole float64 //DSSP hydrogen bonds, on the O-N distance
	HBondCharge float64 //charge term of geometric hydrogen bonds, on the O-N distance
	Hydrophobic float64 //LJ
	Charged     float64 //Coulomb
}

var cutoffKeys = []string{"overlap", "hbond_lj", "hbond_dipole", "hbond_charge", "hydrophobic", "charged"}

// CutoffKeys returns the names of the cutoffs, as used in force field
// files and in Options.Cutoffs.
func CutoffKeys() []string { return append([]string(nil), cutoffKeys...) }

func (C *InteractionCutoffs) fields() []*float64 {
	return []*float64{&C.Overlap, &C.HBondLJ, &C.HBondDipole, &C.HBondCharge, &C.Hydrophobic, &C.Charged}
}

// CutoffsFromMap builds the cutoffs from a map with the keys used in the
// force field files (overlap, hbond_lj, hbond_dipole, hbond_charge,
// hydrophobic, charged). All keys are required.
func CutoffsFromMap(m map[string]float64) (InteractionCutoffs, error) {
	var C InteractionCutoffs
	f := C.fields()
	for i, k := range cutoffKeys {
		v, ok := m[k]
		if !ok {
			return C, newError(nil, fmt.Sprintf("missing cutoff %q", k), "CutoffsFromMap")
		}
		*f[i] = v
	}
	return C, errDecorate(C.Validate(), "CutoffsFromMap")
}

// Override returns a copy of C with the values in m replacing the
// corresponding ones. Unknown keys are an error.
func (C InteractionCutoffs) Override(m map[string]float64) (InteractionCutoffs, error) {
	f := C.fields()
	for k, v := range m {
		i := indexOf(cutoffKeys, k)
		if i < 0 {
			return C, newError(nil, fmt.Sprintf("unknown cutoff %q", k), "Override")
		}
		*f[i] = v
	}
	return C, errDecorate(C.Validate(), "Override")
}

// Validate checks that all cutoffs are finite and non-negative.
func (C InteractionCutoffs) Validate() error {
	for i, v := range C.fields() {
		if *v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
			return newError(nil, fmt.Sprintf("cutoff %s must be finite and non-negative, got %g", cutoffKeys[i], *v), "Validate")
		}
	}
	return nil
}

// Scale14 holds the factors applied to interactions between atoms
// three bonds apart.
type Scale14 struct {
	Charge float64
	LJ     float64
	Steric float64
}

// Values used when the force field doesn't give them.
const (
	FFCharge14Scale = 1. / 1.2
	FFLJ14Scale     = 1. / 2.0
	FFSteric14Scale = 1. / 2.0
	CoulFact        = 331.94292
)

func scale14From(m map[string]float64) Scale14 {
	S := Scale14{Charge: FFCharge14Scale, LJ: FFLJ14Scale, Steric: FFSteric14Scale}
	if v, ok := m["charge"]; ok {
		S.Charge = v
	}
	if v, ok := m["lj"]; ok {
		S.LJ = v
	}
	if v, ok := m["steric"]; ok {
		S.Steric = v
	}
	return S
}

func indexOf(container []string, test string) int {
	for i, v := range container {
		if v == test {
			return i
		}
	}
	return -1
}
