/*
 * bonds.go, part of bbscore.
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
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

// Bond separations returned by Topology.Separation.
const (
	Sep12  = 1
	Sep13  = 2
	Sep14  = 3
	SepFar = -1
)

// AssignBonds returns the bonds in the set of atoms, as pairs of indexes,
// based on a simple distance criterium, similar to that described in
// DOI:10.1186/1758-2946-3-33. Atoms with too many bonds lose their
// longest ones. It is O(N^2), fine for the backbone fragments this is
// meant for.
func AssignBonds(mol Atomer) ([][2]int, error) {
	tot := mol.Len()
	symbols := make([]string, tot)
	for i := 0; i < tot; i++ {
		at := mol.Atom(i)
		if err := checkAtoms("AssignBonds", at); err != nil {
			return nil, err
		}
		symbols[i] = elementOf(at)
	}
	type bond struct {
		i, j int
		d    float64
	}
	perAtom := make([][]*bond, tot)
	for i := 0; i < tot; i++ {
		cov1 := covrad(symbols[i])
		for j := i + 1; j < tot; j++ {
			d := r3.Norm(r3.Sub(mol.Atom(j).Pos, mol.Atom(i).Pos))
			if d < cov1+covrad(symbols[j])+bondtol && d > tooclose {
				b := &bond{i: i, j: j, d: d}
				perAtom[i] = append(perAtom[i], b)
				perAtom[j] = append(perAtom[j], b)
			}
		}
	}
	//Now we check that no atom has too many bonds.
	removed := make(map[*bond]bool)
	for i := 0; i < tot; i++ {
		max := symbolMaxBonds[symbols[i]]
		if max == 0 { //means there is not a specified number of bonds for this atom.
			continue
		}
		var live []*bond
		for _, b := range perAtom[i] {
			if !removed[b] {
				live = append(live, b)
			}
		}
		sort.Slice(live, func(k, l int) bool { return live[k].d < live[l].d })
		for _, b := range live[min(max, len(live)):] {
			removed[b] = true
		}
	}
	var ret [][2]int
	for i := 0; i < tot; i++ {
		for _, b := range perAtom[i] {
			if b.i == i && !removed[b] {
				ret = append(ret, [2]int{b.i, b.j})
			}
		}
	}
	return ret, nil
}

// elementOf returns the atom's symbol, or the one guessed from its name.
func elementOf(at *Atom) string {
	if at.Symbol != "" {
		return at.Symbol
	}
	return symbolFromName(at.Name, func(s string) bool {
		_, ok := symbolCovrad[s]
		return ok
	})
}

// Topology answers how many bonds apart two atoms are, up to three.
type Topology struct {
	n   int
	adj [][]int
	sep map[[2]int]int
}

// NewTopology builds the topology for n atoms from the list of bonds.
func NewTopology(n int, bonds [][2]int) (*Topology, error) {
	T := &Topology{n: n, adj: make([][]int, n), sep: make(map[[2]int]int)}
	for _, b := range bonds {
		if b[0] < 0 || b[1] < 0 || b[0] >= n || b[1] >= n || b[0] == b[1] {
			return nil, newError(nil, fmt.Sprintf("invalid bond %d-%d for %d atoms", b[0], b[1], n), "NewTopology")
		}
		T.adj[b[0]] = append(T.adj[b[0]], b[1])
		T.adj[b[1]] = append(T.adj[b[1]], b[0])
	}
	//Breadth-first, three levels deep, from every atom.
	for start := 0; start < n; start++ {
		seen := map[int]bool{start: true}
		front := []int{start}
		for depth := 1; depth <= Sep14; depth++ {
			var next []int
			for _, a := range front {
				for _, b := range T.adj[a] {
					if seen[b] {
						continue
					}
					seen[b] = true
					next = append(next, b)
					if start < b {
						T.sep[[2]int{start, b}] = depth
					}
				}
			}
			front = next
		}
	}
	return T, nil
}

// TopologyFrom returns the topology of the conformation, from its bond
// list or, if that is nil, from AssignBonds.
func TopologyFrom(C *Conformation) (*Topology, error) {
	bonds := C.Bonds
	if bonds == nil {
		var err error
		bonds, err = AssignBonds(C)
		if err != nil {
			return nil, errDecorate(err, "TopologyFrom")
		}
	}
	T, err := NewTopology(C.Len(), bonds)
	return T, errDecorate(err, "TopologyFrom")
}

// Len returns the number of atoms in the topology.
func (T *Topology) Len() int { return T.n }

// Bonded returns the indexes of the atoms bonded to i.
func (T *Topology) Bonded(i int) []int { return T.adj[i] }

// Separation returns Sep12, Sep13 or Sep14 if i and j are 1, 2 or 3 bonds
// apart, 0 if i==j, and SepFar otherwise.
func (T *Topology) Separation(i, j int) int {
	if i == j {
		return 0
	}
	if i > j {
		i, j = j, i
	}
	if s, ok := T.sep[[2]int{i, j}]; ok {
		return s
	}
	return SepFar
}

// Is14 returns true if i and j are exactly three bonds apart.
func (T *Topology) Is14(i, j int) bool { return T.Separation(i, j) == Sep14 }

// Excluded returns true for pairs that don't get non-bonded interactions:
// the same atom, and 1-2 or 1-3 neighbors.
func (T *Topology) Excluded(i, j int) bool {
	s := T.Separation(i, j)
	return s == 0 || s == Sep12 || s == Sep13
}
