/*
 * hbond.go, part of bbscore.
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

	"gonum.org/v1/gonum/spatial/r3"
)

// Donor is the N-H group of a backbone hydrogen bond.
type Donor struct {
	N *Atom
	H *Atom
}

// Acceptor is the C=O group of a backbone hydrogen bond.
type Acceptor struct {
	O *Atom
	C *Atom
}

// HBondParams holds the constants of both hydrogen bond scoring modes.
// Angles are in degrees, distances in A.
type HBondParams struct {
	LJA         float64 //12-10 coefficients
	LJB         float64
	ChargeScale float64 //four-charge scale, 332*0.42*0.20
	ECut        float64 //DSSP energy below which there is a bond
	HODist      float64
	NODist      float64
	NHOAng      float64 //max deviation from linearity of N-H...O
	NOCAng      float64 //max deviation from linearity of N...O=C
}

var hbondKeys = []string{"lj_a", "lj_b", "dssp_scale", "dssp_ecut", "ho_dist", "no_dist", "nho_angle", "noc_angle"}

// HBondParamsFromMap reads the parameters from the keys used in the
// force field files. All keys are required.
func HBondParamsFromMap(m map[string]float64) (HBondParams, error) {
	var p HBondParams
	f := []*float64{&p.LJA, &p.LJB, &p.ChargeScale, &p.ECut, &p.HODist, &p.NODist, &p.NHOAng, &p.NOCAng}
	for i, k := range hbondKeys {
		v, ok := m[k]
		if !ok || !finite(v) {
			return p, newError(nil, fmt.Sprintf("missing or non-finite hydrogen bond parameter %q", k), "HBondParamsFromMap")
		}
		*f[i] = v
	}
	if p.ChargeScale <= 0 {
		return p, newError(nil, "the hydrogen bond charge scale must be positive", "HBondParamsFromMap")
	}
	return p, nil
}

// HBondScorer scores backbone hydrogen bonds with one of two methods,
// chosen at construction:
//
// The DSSP method uses the four-charge electrostatic energy of Kabsch and
// Sander, and declares a bond if it is below a cutoff.
//
// The geometric method requires O...H and O...N distances and N-H...O and
// N...O=C angles within cutoffs, and scores the bond with a 12-10 term on the
// O...H distance plus the same four-charge term times a coefficient.
// If any of the geometric cutoffs is violated, the score is 0 and there is
// no bond.
type HBondScorer struct {
	dssp       bool
	chargeCoef float64
	p          HBondParams
	cut        InteractionCutoffs
	distCut    float64
}

// NewHBondScorer returns a scorer. chargeCoef is only used by the
// geometric method.
func NewHBondScorer(dssp bool, chargeCoef float64, p HBondParams, cut InteractionCutoffs) (*HBondScorer, error) {
	if err := cut.Validate(); err != nil {
		return nil, errDecorate(err, "NewHBondScorer")
	}
	if !finite(chargeCoef) {
		return nil, newError(nil, "non-finite charge coefficient", "NewHBondScorer")
	}
	if p.ChargeScale <= 0 {
		return nil, newError(nil, "the hydrogen bond charge scale must be positive", "NewHBondScorer")
	}
	return &HBondScorer{dssp: dssp, chargeCoef: chargeCoef, p: p, cut: cut, distCut: p.ECut / p.ChargeScale}, nil
}

// DSSP returns true if the scorer uses the DSSP method.
func (H *HBondScorer) DSSP() bool { return H.dssp }

// DistCut returns the cutoff on the inverse-distance sum
// 1/rON + 1/rCH - 1/rOH - 1/rCN (in 1/A) equivalent to the DSSP energy
// cutoff.
func (H *HBondScorer) DistCut() float64 { return H.distCut }

// hbGeom holds the distances between the four atoms of a hydrogen bond.
type hbGeom struct {
	on, ch, oh, cn float64
}

func (g hbGeom) inverseSum() float64 {
	return 1/g.on + 1/g.ch - 1/g.oh - 1/g.cn
}

func distances(d Donor, a Acceptor) (hbGeom, error) {
	if err := checkAtoms("Score", d.N, d.H, a.O, a.C); err != nil {
		return hbGeom{}, err
	}
	if Distance(d.N.Pos, d.H.Pos) <= appzero {
		return hbGeom{}, newError(ErrInvalidGeometry, "zero-length N-H vector", "Score")
	}
	if Distance(a.C.Pos, a.O.Pos) <= appzero {
		return hbGeom{}, newError(ErrInvalidGeometry, "zero-length C=O vector", "Score")
	}
	g := hbGeom{
		on: Distance(a.O.Pos, d.N.Pos),
		ch: Distance(a.C.Pos, d.H.Pos),
		oh: Distance(a.O.Pos, d.H.Pos),
		cn: Distance(a.C.Pos, d.N.Pos),
	}
	if g.on <= appzero || g.ch <= appzero || g.oh <= appzero || g.cn <= appzero {
		return hbGeom{}, newError(ErrInvalidGeometry, "donor and acceptor atoms overlap", "Score")
	}
	return g, nil
}

// Score returns the energy, in kcal/mol, of the hydrogen bond between
// donor and acceptor, and whether there is a bond at all.
// Invalid geometries (non-finite coordinates, zero-length N-H or C=O)
// give an ErrInvalidGeometry error.
func (H *HBondScorer) Score(donor Donor, acceptor Acceptor) (float64, bool, error) {
	g, err := distances(donor, acceptor)
	if err != nil {
		return 0, false, err
	}
	if H.dssp {
		if g.on > H.cut.HBondDipole {
			return 0, false, nil
		}
		e := H.p.ChargeScale * g.inverseSum()
		return e, e < H.p.ECut, nil
	}
	if g.oh > H.p.HODist || g.on > H.p.NODist {
		return 0, false, nil
	}
	N, Hy, O, C := donor.N.Pos, donor.H.Pos, acceptor.O.Pos, acceptor.C.Pos
	//deviations from linearity
	nho := Rad2Deg(Angle(r3.Sub(Hy, N), r3.Sub(O, Hy)))
	noc := Rad2Deg(Angle(r3.Sub(O, C), r3.Sub(N, O)))
	if nho > H.p.NHOAng || noc > H.p.NOCAng {
		return 0, false, nil
	}
	var e float64
	if g.oh <= H.cut.HBondLJ {
		r2 := g.oh * g.oh
		r10 := r2 * r2 * r2 * r2 * r2
		e += H.p.LJA/(r10*r2) - H.p.LJB/r10
	}
	if g.on <= H.cut.HBondCharge {
		e += H.chargeCoef * H.p.ChargeScale * g.inverseSum()
	}
	return e, e < 0, nil
}
