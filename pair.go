/*
 * pair.go, part of bbscore.
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
	"strings"
)

// StericMode selects the van der Waals term used by the PairEvaluator.
type StericMode int

const (
	//Full 12-6 Lennard-Jones, up to the hydrophobic cutoff.
	StericLJ StericMode = iota
	//Only the repulsive part (the LJ shifted up by epsilon, for r < sigma),
	//up to the overlap cutoff.
	StericOverlap
)

func (m StericMode) String() string {
	if m == StericOverlap {
		return "steric"
	}
	return "lj"
}

// ParseStericMode returns the mode named s, "lj" or "steric".
func ParseStericMode(s string) (StericMode, error) {
	switch strings.ToLower(s) {
	case "", "lj":
		return StericLJ, nil
	case "steric", "overlap":
		return StericOverlap, nil
	}
	return StericLJ, newError(nil, fmt.Sprintf("unknown steric mode %q", s), "ParseStericMode")
}

// PairEvaluator computes the non-bonded energy between two atoms.
// It is read-only after construction.
type PairEvaluator struct {
	mode       StericMode
	cutoffs    InteractionCutoffs
	scale      Scale14
	coulfact   float64
	dielectric float64
	stericCut2 float64
	chargeCut2 float64
}

// NewPairEvaluator returns an evaluator with the given settings. The
// dielectric constant must be positive.
func NewPairEvaluator(mode StericMode, cutoffs InteractionCutoffs, scale Scale14, coulfact, dielectric float64) (*PairEvaluator, error) {
	if err := cutoffs.Validate(); err != nil {
		return nil, errDecorate(err, "NewPairEvaluator")
	}
	if dielectric <= 0 || !finite(dielectric) {
		return nil, newError(nil, fmt.Sprintf("dielectric constant must be positive, got %g", dielectric), "NewPairEvaluator")
	}
	P := &PairEvaluator{mode: mode, cutoffs: cutoffs, scale: scale, coulfact: coulfact, dielectric: dielectric}
	sc := cutoffs.Hydrophobic
	if mode == StericOverlap {
		sc = cutoffs.Overlap
	}
	P.stericCut2 = sc * sc
	P.chargeCut2 = cutoffs.Charged * cutoffs.Charged
	return P, nil
}

// Mode returns the steric mode of the evaluator.
func (P *PairEvaluator) Mode() StericMode { return P.mode }

// Energy returns the steric and electrostatic energies, in kcal/mol, between
// a and b, using their FF parameters. If is14 is true, the 1-4 scale
// factors are applied. Energy(a, b) and Energy(b, a) are bitwise equal.
// Pairs beyond a cutoff are skipped before any energy is computed. Non-finite
// or coincident positions give an ErrInvalidGeometry error.
func (P *PairEvaluator) Energy(a, b *Atom, is14 bool) (steric, elec float64, err error) {
	if err := checkAtoms("Energy", a, b); err != nil {
		return 0, 0, err
	}
	dx := a.Pos.X - b.Pos.X
	dy := a.Pos.Y - b.Pos.Y
	dz := a.Pos.Z - b.Pos.Z
	r2 := dx*dx + dy*dy + dz*dz
	doSteric := r2 <= P.stericCut2
	doElec := r2 <= P.chargeCut2
	if !doSteric && !doElec {
		return 0, 0, nil
	}
	if r2 == 0 {
		return 0, 0, newError(ErrInvalidGeometry, fmt.Sprintf("atoms %s %d and %s %d are coincident", a.Name, a.ID, b.Name, b.ID), "Energy")
	}
	if doSteric {
		steric = P.steric(a.FF.Radius+b.FF.Radius, a.FF.SqrtEps*b.FF.SqrtEps, r2, is14)
	}
	if doElec {
		elec = P.coulfact * (a.FF.Charge * b.FF.Charge) / (P.dielectric * math.Sqrt(r2))
		if is14 {
			elec *= P.scale.Charge
		}
	}
	return steric, elec, nil
}

func (P *PairEvaluator) steric(sigma, eps, r2 float64, is14 bool) float64 {
	s2 := sigma * sigma / r2
	s6 := s2 * s2 * s2
	u := eps * (s6*s6 - 2*s6)
	if P.mode == StericOverlap {
		if r2 >= sigma*sigma {
			return 0
		}
		u += eps
		if is14 {
			u *= P.scale.Steric
		}
		return u
	}
	if is14 {
		u *= P.scale.LJ
	}
	return u
}
