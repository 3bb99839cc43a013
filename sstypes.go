/*
 * sstypes.go, part of bbscore.
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

	"github.com/rmera/bbscore/ffdata"
)

// NoMatch is the label of windows that match no template.
const NoMatch = "none"

// Template is a secondary structure template: a label, one (phi, psi)
// range per window position and the expected hydrogen bonds among the
// window residues. Contacts[i][j] is 1 if the N-H of residue i should donate
// to the C=O of residue j, -1 if that bond must be absent, 0 if it doesn't
// matter. The first NLocal positions are contiguous in sequence; in beta
// templates, the rest belong to the partner strand.
type Template struct {
	Label    string
	NLocal   int
	Ranges   [][2]AngleRange //phi range, psi range
	Contacts [][]int
}

// Len returns the number of positions in the template window.
func (T *Template) Len() int { return len(T.Ranges) }

// fullCircle returns true if R covers every angle.
func fullCircle(R AngleRange) bool {
	return R[0] <= -180 && R[1] >= 180
}

func rangeAccepts(R AngleRange, a float64) bool {
	if IsUndefined(a) {
		return fullCircle(R)
	}
	if a < -180 || a > 180 {
		a = WrapAngle(a)
	}
	return R.Contains(a)
}

// Matches returns true if the first Len() pairs in window are within the
// template's ranges. Shorter windows never match. Undefined angles only match
// ranges that cover the whole circle. Angles outside [-180, 180] are
// wrapped first.
func (T *Template) Matches(window []PhiPsi) bool {
	if len(window) < T.Len() {
		return false
	}
	for i, r := range T.Ranges {
		if !rangeAccepts(r[0], window[i].Phi) || !rangeAccepts(r[1], window[i].Psi) {
			return false
		}
	}
	return true
}

// Match is the result of a classification.
type Match struct {
	Label    string
	Template int //index of the template, -1 for no match
	Start    int //first residue of the window in the chain
	Contacts [][]int
}

// Classifier assigns secondary structure labels to phi/psi windows by
// trying its templates in order. It is read-only.
type Classifier struct {
	templates []Template
}

// NewClassifier builds a classifier from the raw templates, which are kept
// in the given order.
func NewClassifier(raw []ffdata.Template) (*Classifier, error) {
	if len(raw) == 0 {
		return nil, newError(ErrNilData, "no templates", "NewClassifier")
	}
	C := &Classifier{templates: make([]Template, len(raw))}
	for i, r := range raw {
		n := len(r.Ranges)
		if n == 0 || len(r.Contacts) != n {
			return nil, newError(nil, fmt.Sprintf("template %q: %d ranges and %d contact rows", r.Label, n, len(r.Contacts)), "NewClassifier")
		}
		t := Template{Label: r.Label, NLocal: r.NLocal, Ranges: make([][2]AngleRange, n), Contacts: make([][]int, n)}
		for j, v := range r.Ranges {
			t.Ranges[j] = [2]AngleRange{{v[0], v[1]}, {v[2], v[3]}}
			if len(r.Contacts[j]) != n {
				return nil, newError(nil, fmt.Sprintf("template %q: contact map is not %d x %d", r.Label, n, n), "NewClassifier")
			}
			t.Contacts[j] = append([]int(nil), r.Contacts[j]...)
		}
		C.templates[i] = t
	}
	return C, nil
}

// Templates returns the number of templates.
func (C *Classifier) Templates() int { return len(C.templates) }

// Template returns the ith template. It must not be modified.
func (C *Classifier) Template(i int) *Template { return &C.templates[i] }

// Classify returns the first template that matches window, and true, or
// a NoMatch result and false if none does. Templates longer than the
// window are skipped.
func (C *Classifier) Classify(window []PhiPsi) (Match, bool) {
	for i := range C.templates {
		t := &C.templates[i]
		if t.Matches(window) {
			return Match{Label: t.Label, Template: i, Contacts: copyContacts(t.Contacts)}, true
		}
	}
	return Match{Label: NoMatch, Template: -1}, false
}

// ClassifyChain slides the window over the whole chain and returns one
// Match per starting residue.
func (C *Classifier) ClassifyChain(chain []PhiPsi) []Match {
	ret := make([]Match, len(chain))
	for i := range chain {
		m, _ := C.Classify(chain[i:])
		m.Start = i
		ret[i] = m
	}
	return ret
}

func copyContacts(c [][]int) [][]int {
	ret := make([][]int, len(c))
	for i, r := range c {
		ret[i] = append([]int(nil), r...)
	}
	return ret
}
