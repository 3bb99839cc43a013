/*
 * rama.go, part of bbscore.
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

	"github.com/rmera/bbscore/histo"
	"gonum.org/v1/gonum/floats"
)

// RamaSmoothing is added to every cell of a Ramachandran grid before
// normalization, so no (phi, psi) has zero probability.
const RamaSmoothing = 1e-8

// RamaGrid is a normalized Ramachandran probability grid. Rows are phi bins,
// columns psi bins, both starting at -180 degrees. It is read-only.
type RamaGrid struct {
	nphi, npsi int
	dphi, dpsi float64
	p          []float64 //row-major
}

// NewRamaGrid builds a grid from the nphi x npsi row-major values, which
// must be finite and non-negative. The values are copied, smoothed with
// RamaSmoothing and normalized to sum 1.
func NewRamaGrid(nphi, npsi int, values []float64) (*RamaGrid, error) {
	if nphi <= 0 || npsi <= 0 || len(values) != nphi*npsi {
		return nil, newError(nil, fmt.Sprintf("%d values for a %d x %d grid", len(values), nphi, npsi), "NewRamaGrid")
	}
	p := make([]float64, len(values))
	for i, v := range values {
		if v < 0 || !finite(v) {
			return nil, newError(nil, fmt.Sprintf("invalid grid value %g at %d", v, i), "NewRamaGrid")
		}
	}
	copy(p, values)
	floats.AddConst(RamaSmoothing, p)
	floats.Scale(1/floats.Sum(p), p)
	return &RamaGrid{nphi: nphi, npsi: npsi, dphi: 360 / float64(nphi), dpsi: 360 / float64(npsi), p: p}, nil
}

// NewRamaGridFromHistogram builds a grid by binning the defined (phi, psi)
// pairs in samples. Pairs with an undefined angle are ignored. Each pair is
// counted in the cell that Bin reports for it.
func NewRamaGridFromHistogram(samples []PhiPsi, nphi, npsi int) (*RamaGrid, error) {
	if nphi <= 0 || npsi <= 0 {
		return nil, newError(nil, fmt.Sprintf("invalid grid size %d x %d", nphi, npsi), "NewRamaGridFromHistogram")
	}
	dphi, dpsi := 360/float64(nphi), 360/float64(npsi)
	H := histo.New2D(histo.Dividers(-180, 180, nphi), histo.Dividers(-180, 180, npsi))
	for _, s := range samples {
		if !finite(s.Phi) || !finite(s.Psi) {
			continue
		}
		H.AddAt(binOf(s.Phi, dphi, nphi), binOf(s.Psi, dpsi, npsi))
	}
	R, err := NewRamaGrid(nphi, npsi, H.Counts())
	return R, errDecorate(err, "NewRamaGridFromHistogram")
}

// Dims returns the number of phi and psi bins.
func (R *RamaGrid) Dims() (int, int) { return R.nphi, R.npsi }

// At returns the probability of the cell in the i phi bin and j psi bin.
func (R *RamaGrid) At(i, j int) float64 { return R.p[i*R.npsi+j] }

// Values returns a copy of the cells, row-major.
func (R *RamaGrid) Values() []float64 { return append([]float64(nil), R.p...) }

// Sum returns the sum of all cells, which is 1 up to rounding.
func (R *RamaGrid) Sum() float64 { return floats.Sum(R.p) }

// binOf returns floor((a+180)/width) mod n.
func binOf(a, width float64, n int) int {
	k := int(math.Floor((WrapAngle(a) + 180) / width))
	if k >= n { //only possible by rounding
		k = n - 1
	}
	return k
}

// Bin returns the cell that contains (phi, psi). Angles are wrapped, so
// 180 goes to the same bin as -180.
func (R *RamaGrid) Bin(phi, psi float64) (int, int) {
	return binOf(phi, R.dphi, R.nphi), binOf(psi, R.dpsi, R.npsi)
}

// Probability returns the probability of the cell that contains (phi, psi),
// in degrees. It is always in (0, 1]. Undefined or infinite angles give an
// ErrUndefinedAngle error.
func (R *RamaGrid) Probability(phi, psi float64) (float64, error) {
	if !finite(phi) || !finite(psi) {
		return 0, newError(ErrUndefinedAngle, fmt.Sprintf("phi: %g psi: %g", phi, psi), "Probability")
	}
	return R.At(R.Bin(phi, psi)), nil
}

// Bias returns -ln(Probability(phi, psi)), the form in which callers
// add the grid to an energy.
func (R *RamaGrid) Bias(phi, psi float64) (float64, error) {
	p, err := R.Probability(phi, psi)
	if err != nil {
		return 0, errDecorate(err, "Bias")
	}
	return -math.Log(p), nil
}
