/*
 * ramacalc.go, part of bbscore.
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
	"fmt"
	"math"
	"strings"
)

// RamaSet holds the indexes of the atoms defining the phi and psi dihedrals
// of a residue. Cprev is the C of the previous residue and Npost the N of
// the next one. Either is -1 if the neighbor is absent, or not bonded, in
// which case the corresponding dihedral is undefined.
type RamaSet struct {
	Cprev   int
	N       int
	Ca      int
	C       int
	Npost   int
	MolID   int
	Molname string
	Chain   string
}

type resIndexes struct {
	chain   string
	molid   int
	molname string
	n       int
	ca      int
	c       int
}

// RamaList takes a set of atoms and returns a slice of RamaSet, one for each
// residue with N, CA and C atoms, in the order in which they appear. Only
// residues belonging to a chain included in chains are considered, unless
// chains is empty, in which case all chains are. Capping residues (see
// NoDihedrals) are not included, but their atoms are used to define the
// dihedrals of their neighbors.
func RamaList(M Atomer, chains string) ([]RamaSet, error) {
	if M == nil {
		return nil, newError(ErrNilData, "", "RamaList")
	}
	var res []*resIndexes
	var cur *resIndexes
	for num := 0; num < M.Len(); num++ {
		at := M.Atom(num)
		if chains != "" && !strings.Contains(chains, at.Chain) {
			continue
		}
		if cur == nil || at.Chain != cur.chain || at.MolID != cur.molid {
			cur = &resIndexes{chain: at.Chain, molid: at.MolID, molname: at.MolName, n: -1, ca: -1, c: -1}
			res = append(res, cur)
		}
		switch trimName(at.Name) {
		case "N":
			cur.n = num
		case "CA":
			cur.ca = num
		case "C":
			cur.c = num
		}
	}
	ret := make([]RamaSet, 0, len(res))
	for k, r := range res {
		if isCap(r.molname) || r.n < 0 || r.ca < 0 || r.c < 0 {
			continue
		}
		set := RamaSet{Cprev: -1, N: r.n, Ca: r.ca, C: r.c, Npost: -1, MolID: r.molid, Molname: r.molname, Chain: r.chain}
		if k > 0 && peptideBonded(M, res[k-1], r) {
			set.Cprev = res[k-1].c
		}
		if k < len(res)-1 && peptideBonded(M, r, res[k+1]) {
			set.Npost = res[k+1].n
		}
		ret = append(ret, set)
	}
	return ret, nil
}

// peptideBonded returns true if the C of prev and the N of next are in the
// same chain, and within bondtol of the CNBondLen peptide bond length.
func peptideBonded(M Atomer, prev, next *resIndexes) bool {
	if prev.chain != next.chain || prev.c < 0 || next.n < 0 {
		return false
	}
	d := Distance(M.Atom(prev.c).Pos, M.Atom(next.n).Pos)
	return math.Abs(d-CNBondLen) < bondtol
}

// RamaCalc obtains the values for the phi and psi dihedrals indicated in
// dihedrals, for the atoms in M. The angles are in *degrees*. Dihedrals
// that can't be defined are set to the Undefined marker.
func RamaCalc(M Atomer, dihedrals []RamaSet) ([]PhiPsi, error) {
	if M == nil || dihedrals == nil {
		return nil, newError(ErrNilData, "", "RamaCalc")
	}
	r := M.Len()
	Rama := make([]PhiPsi, 0, len(dihedrals))
	for _, j := range dihedrals {
		if j.Npost >= r || j.Cprev >= r || j.C >= r {
			return nil, newError(nil, fmt.Sprintf("Data out of range for residue %d", j.MolID), "RamaCalc")
		}
		if err := checkAtoms("RamaCalc", M.Atom(j.N), M.Atom(j.Ca), M.Atom(j.C)); err != nil {
			return nil, err
		}
		N, Ca, C := M.Atom(j.N).Pos, M.Atom(j.Ca).Pos, M.Atom(j.C).Pos
		pp := PhiPsi{Phi: Undefined(), Psi: Undefined()}
		if j.Cprev >= 0 {
			if err := checkAtoms("RamaCalc", M.Atom(j.Cprev)); err != nil {
				return nil, err
			}
			pp.Phi = Rad2Deg(Dihedral(M.Atom(j.Cprev).Pos, N, Ca, C))
		}
		if j.Npost >= 0 {
			if err := checkAtoms("RamaCalc", M.Atom(j.Npost)); err != nil {
				return nil, err
			}
			pp.Psi = Rad2Deg(Dihedral(N, Ca, C, M.Atom(j.Npost).Pos))
		}
		Rama = append(Rama, pp)
	}
	return Rama, nil
}

// RamaResidueFilter filters the set of dihedral angles of a ramachandran
// plot by residue (ex. only GLY, everything but GLY). The 3 letter code of
// the residues to be filtered in or out is in filterdata, whether they are
// filtered in or out depends on shouldBePresent. It returns the filtered
// data and a slice containing the indexes in the new data of the residues
// in the old data, when they are included, or -1 when they are not included.
func RamaResidueFilter(dihedrals []RamaSet, filterdata []string, shouldBePresent bool) ([]RamaSet, []int) {
	RetList := make([]RamaSet, 0, len(dihedrals))
	Index := make([]int, len(dihedrals))
	var added int
	for key, val := range dihedrals {
		isPresent := isInString(filterdata, val.Molname)
		if isPresent == shouldBePresent {
			RetList = append(RetList, val)
			Index[key] = added
			added++
		} else {
			Index[key] = -1
		}
	}
	return RetList, Index
}

// Dihedrals returns the phi/psi pairs of the conformation and the names of
// their residues. If the conformation carries them, those are returned,
// otherwise they are computed from the backbone coordinates.
func (C *Conformation) Dihedrals() ([]PhiPsi, []string, error) {
	if C.PhiPsi != nil {
		if len(C.Residues) != 0 && len(C.Residues) != len(C.PhiPsi) {
			return nil, nil, newError(nil, fmt.Sprintf("%d residue names for %d phi/psi pairs", len(C.Residues), len(C.PhiPsi)), "Dihedrals")
		}
		return C.PhiPsi, C.Residues, nil
	}
	sets, err := RamaList(C, "")
	if err != nil {
		return nil, nil, errDecorate(err, "Dihedrals")
	}
	pp, err := RamaCalc(C, sets)
	if err != nil {
		return nil, nil, errDecorate(err, "Dihedrals")
	}
	names := make([]string, len(sets))
	for i, s := range sets {
		names[i] = s.Molname
	}
	return pp, names, nil
}
