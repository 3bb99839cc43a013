/*
 * geometric.go, part of bbscore.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package bbscore

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

// Angle takes 2 vectors and calculate the angle in radians between them.
// It does not check for correctness or return errors! Use
// CheckedAngle when the vectors could be zero.
func Angle(v1, v2 r3.Vec) float64 {
	normproduct := r3.Norm(v1) * r3.Norm(v2)
	argument := r3.Dot(v1, v2) / normproduct
	//Take care of floating point math errors
	if argument > 1 {
		argument = 1
	} else if argument < -1 {
		argument = -1
	}
	angle := math.Acos(argument)
	if math.Abs(angle) <= appzero {
		return 0.00
	}
	return angle
}

// CheckedAngle is like Angle, but returns an ErrInvalidGeometry
// error if either vector is not finite or has zero length.
func CheckedAngle(v1, v2 r3.Vec) (float64, error) {
	if !finiteVec(v1, v2) {
		return 0, newError(ErrInvalidGeometry, "non-finite vector", "CheckedAngle")
	}
	if r3.Norm(v1) <= appzero || r3.Norm(v2) <= appzero {
		return 0, newError(ErrInvalidGeometry, "zero-length vector", "CheckedAngle")
	}
	return Angle(v1, v2), nil
}

// Dihedral calculate the dihedral, in radians, between the points a, b, c, d,
// where the first plane is defined by abc and the second by bcd.
func Dihedral(a, b, c, d r3.Vec) float64 {
	//bma=b minus a
	bma := r3.Sub(b, a)
	cmb := r3.Sub(c, b)
	dmc := r3.Sub(d, c)
	bmascaled := r3.Scale(r3.Norm(cmb), bma)
	first := r3.Dot(bmascaled, r3.Cross(cmb, dmc))
	v1 := r3.Cross(bma, cmb)
	v2 := r3.Cross(cmb, dmc)
	second := r3.Dot(v1, v2)
	return math.Atan2(first, second)
}

// Distance returns the distance between two points.
func Distance(a, b r3.Vec) float64 {
	return r3.Norm(r3.Sub(a, b))
}

// AmideH returns the position of the H of the amide nitrogen n, given the C
// of the previous residue and the CA bonded to n. The H is NHBondLen from n,
// in the Cprev-N-CA plane, opposite to both neighbors.
func AmideH(cprev, n, ca r3.Vec) (r3.Vec, error) {
	h, err := planarSubstituent(n, ca, cprev, NHFracCAC, NHFracCN, NHBondLen)
	return h, errDecorate(err, "AmideH")
}

// CarbonylO returns the position of the O of the carbonyl carbon c, given
// the CA bonded to c and the N of the next residue. The O is COBondLen
// from c, in the CA-C-N plane, opposite to both neighbors.
func CarbonylO(ca, c, nnext r3.Vec) (r3.Vec, error) {
	o, err := planarSubstituent(c, ca, nnext, COFracCAC, COFracNC, COBondLen)
	return o, errDecorate(err, "CarbonylO")
}

// planarSubstituent returns the point at length from center along
// fa*u(center-a) + fb*u(center-b), where u gives unit vectors.
func planarSubstituent(center, a, b r3.Vec, fa, fb, length float64) (r3.Vec, error) {
	if !finiteVec(center, a, b) {
		return r3.Vec{}, newError(ErrInvalidGeometry, "non-finite coordinates", "planarSubstituent")
	}
	ua, ub := r3.Sub(center, a), r3.Sub(center, b)
	if r3.Norm(ua) <= appzero || r3.Norm(ub) <= appzero {
		return r3.Vec{}, newError(ErrInvalidGeometry, "coincident atoms", "planarSubstituent")
	}
	dir := r3.Add(r3.Scale(fa, r3.Unit(ua)), r3.Scale(fb, r3.Unit(ub)))
	if r3.Norm(dir) <= appzero {
		return r3.Vec{}, newError(ErrInvalidGeometry, "collinear neighbors", "planarSubstituent")
	}
	return r3.Add(center, r3.Scale(length, r3.Unit(dir))), nil
}

func finiteVec(v ...r3.Vec) bool {
	for _, p := range v {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return false
		}
	}
	return true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// checkAtoms returns an ErrInvalidGeometry error, decorated with caller, if
// any of the atoms is nil or has non-finite coordinates.
func checkAtoms(caller string, atoms ...*Atom) error {
	for i, at := range atoms {
		if at == nil {
			return newError(ErrNilData, fmt.Sprintf("atom %d is nil", i), caller)
		}
		if !finiteVec(at.Pos) {
			return newError(ErrInvalidGeometry, fmt.Sprintf("non-finite coordinates for atom %s %d", at.Name, at.ID), caller)
		}
	}
	return nil
}
