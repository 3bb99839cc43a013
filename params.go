/*
 * params.go, part of bbscore.
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
	"github.com/rmera/bbscore/ffdata"
	"github.com/rmera/bbscore/logging"
)

// ForceFieldEntry contains the non-bonded parameters of an atom:
// van der Waals radius (A), square root of the LJ well depth, and
// partial charge (e).
type ForceFieldEntry struct {
	Radius  float64
	SqrtEps float64
	Charge  float64
}

func entry(e ffdata.Entry) ForceFieldEntry {
	return ForceFieldEntry{Radius: e.Radius, SqrtEps: e.SqrtEps, Charge: e.Charge}
}

// LookupStage identifies which table answered a parameter lookup: the
// residue and atom name table, the atom name table, the element (guessed from
// the atom name) table, or the catch-all element entry.
type LookupStage int

const (
	StageExact LookupStage = iota
	StageAtom
	StageElement
	StageWildcard
)

func (s LookupStage) String() string {
	switch s {
	case StageExact:
		return "exact"
	case StageAtom:
		return "atom"
	case StageElement:
		return "element"
	case StageWildcard:
		return "wildcard"
	}
	return "unknown"
}

type lookupStage struct {
	stage LookupStage
	find  func(residue, atom string) (ForceFieldEntry, bool)
}

// ParameterTable resolves (residue, atom) names to force field entries.
// The stages are tried in order, and the first one that has an entry
// answers. The last stage always does, so lookups never fail.
// A ParameterTable is read-only once built and can be shared among goroutines.
type ParameterTable struct {
	stages []lookupStage
	log    logging.Logger
}

// NewParameterTable builds the table from the force field data. Residue,
// atom and element entries are copied, so ff can be discarded afterwards.
// log gets a debug message for each lookup that falls back beyond the exact
// stage, it can be nil.
func NewParameterTable(ff *ffdata.ForceField, log logging.Logger) (*ParameterTable, error) {
	if ff == nil {
		return nil, newError(ErrNilData, "nil force field", "NewParameterTable")
	}
	wild, ok := ff.Elements[ffdata.Wildcard]
	if !ok {
		return nil, newError(nil, "the element table has no wildcard entry", "NewParameterTable")
	}
	if log == nil {
		log = logging.NewNop()
	}
	residues := make(map[string]map[string]ForceFieldEntry, len(ff.Residues))
	for rname, atoms := range ff.Residues {
		r := make(map[string]ForceFieldEntry, len(atoms))
		for name, e := range atoms {
			r[name] = entry(e)
		}
		residues[rname] = r
	}
	atoms := make(map[string]ForceFieldEntry, len(ff.Atoms))
	for name, e := range ff.Atoms {
		atoms[name] = entry(e)
	}
	elements := make(map[string]ForceFieldEntry, len(ff.Elements))
	for name, e := range ff.Elements {
		if name != ffdata.Wildcard {
			elements[name] = entry(e)
		}
	}
	wildcard := entry(wild)
	P := &ParameterTable{log: log}
	P.stages = []lookupStage{
		{StageExact, func(res, atom string) (ForceFieldEntry, bool) {
			e, ok := residues[res][atom]
			return e, ok
		}},
		{StageAtom, func(_, atom string) (ForceFieldEntry, bool) {
			e, ok := atoms[atom]
			return e, ok
		}},
		{StageElement, func(_, atom string) (ForceFieldEntry, bool) {
			sym := symbolFromName(atom, func(s string) bool {
				_, ok := elements[s]
				return ok
			})
			if sym == "" {
				return ForceFieldEntry{}, false
			}
			return elements[sym], true
		}},
		{StageWildcard, func(_, _ string) (ForceFieldEntry, bool) {
			return wildcard, true
		}},
	}
	return P, nil
}

// Resolve returns the entry for the atom atom of the residue residue, and
// the stage that provided it.
func (P *ParameterTable) Resolve(residue, atom string) (ForceFieldEntry, LookupStage) {
	for _, s := range P.stages {
		if e, ok := s.find(residue, atom); ok {
			if s.stage != StageExact {
				P.log.Debug("parameter lookup fell back", logging.String("residue", residue), logging.String("atom", atom), logging.String("stage", s.stage.String()))
			}
			return e, s.stage
		}
	}
	//The wildcard stage always answers.
	panic("bbscore: parameter table without a wildcard stage")
}

// Lookup returns the entry for the atom atom of the residue residue.
// It never fails, see Resolve.
func (P *ParameterTable) Lookup(residue, atom string) ForceFieldEntry {
	e, _ := P.Resolve(residue, atom)
	return e
}

// Parametrize sets the FF field of every atom in mol.
func (P *ParameterTable) Parametrize(mol Atomer) {
	for i := 0; i < mol.Len(); i++ {
		at := mol.Atom(i)
		at.FF = P.Lookup(at.MolName, at.Name)
	}
}
