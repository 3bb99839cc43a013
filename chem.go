/*
 * chem.go, part of bbscore.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// Atom is an atom record as handed by the structure-handling code.
// Names are expected to be already resolved (no aliases).
type Atom struct {
	Name    string
	ID      int
	MolName string //residue name
	MolID   int    //residue number
	Chain   string
	Symbol  string //element. If empty, it is inferred from the name when needed.
	Pos     r3.Vec
	FF      ForceFieldEntry //filled by Engine.Parametrize
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	ret := *A
	return &ret
}

// PhiPsi holds the backbone dihedrals of a residue, in degrees.
// Either can be undefined (see Undefined) for terminal or capping residues.
type PhiPsi struct {
	Phi float64
	Psi float64
}

// Undefined returns the marker used for angles that can't be defined.
func Undefined() float64 { return math.NaN() }

// IsUndefined returns true if the angle a is the undefined marker.
func IsUndefined(a float64) bool { return math.IsNaN(a) }

// Defined returns true if both angles are defined.
func (P PhiPsi) Defined() bool {
	return !IsUndefined(P.Phi) && !IsUndefined(P.Psi)
}

// Conformation is one structure to be scored: atoms with coordinates,
// optionally its covalent bonds (pairs of indexes in Atoms), and the
// backbone dihedrals of each residue, with the residue names in Residues.
type Conformation struct {
	Atoms    []*Atom
	Bonds    [][2]int
	PhiPsi   []PhiPsi
	Residues []string
}

// Atom returns the ith atom.
func (C *Conformation) Atom(i int) *Atom { return C.Atoms[i] }

// Len returns the number of atoms.
func (C *Conformation) Len() int { return len(C.Atoms) }

// Subset returns a conformation with the atoms of C named in names, in the
// same order, and the bonds among them. Names are compared with and without
// leading digits. The atoms are shared with C. Bonds to indexes outside C
// are dropped. The dihedrals and residue names are kept.
func (C *Conformation) Subset(names []string) *Conformation {
	ret := &Conformation{PhiPsi: C.PhiPsi, Residues: C.Residues}
	index := make([]int, len(C.Atoms))
	for i, at := range C.Atoms {
		index[i] = -1
		if at == nil {
			continue
		}
		if isInString(names, strings.TrimSpace(at.Name)) || isInString(names, trimName(at.Name)) {
			index[i] = len(ret.Atoms)
			ret.Atoms = append(ret.Atoms, at)
		}
	}
	if C.Bonds == nil {
		return ret
	}
	ret.Bonds = make([][2]int, 0, len(C.Bonds))
	for _, b := range C.Bonds {
		if b[0] < 0 || b[1] < 0 || b[0] >= len(index) || b[1] >= len(index) {
			continue
		}
		if i, j := index[b[0]], index[b[1]]; i >= 0 && j >= 0 {
			ret.Bonds = append(ret.Bonds, [2]int{i, j})
		}
	}
	return ret
}
