/*
 * histo.go, part of bbscore.
 *
 *
 * Copyright 2020 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

// Package histo implements the simple 1D and 2D histograms used to build
// probability grids from sampled data.
package histo

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Dividers returns the n+1 evenly spaced bin edges that go from min to max.
func Dividers(min, max float64, n int) []float64 {
	if n < 1 || !(max > min) {
		panic(fmt.Sprintf("histo.Dividers: invalid range %g-%g with %d bins", min, max, n))
	}
	return floats.Span(make([]float64, n+1), min, max)
}

// Data is a 1D histogram. A value v goes to the bin i such that
// dividers[i] <= v < dividers[i+1]. Values outside are omitted.
type Data struct {
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

// NewData returns a new histogram from the dividers and rawdata given.
// rawdata can be nil. In that case, an empty histogram is created.
// The dividers must be sorted.
func NewData(dividers []float64, rawdata []float64) *Data {
	if len(dividers) < 2 || !sort.Float64sAreSorted(dividers) {
		panic("histo.NewData: at least 2 sorted dividers are needed")
	}
	d := new(Data)
	//Copied to avoid somebody changing it from outside
	d.dividers = append([]float64(nil), dividers...)
	d.histo = make([]float64, len(dividers)-1)
	if rawdata != nil {
		d.ReHisto(rawdata)
	}
	return d
}

// bin returns the bin for v, or -1 if v is outside the dividers.
func (D *Data) bin(v float64) int {
	last := len(D.dividers) - 1
	if !(v >= D.dividers[0]) || v >= D.dividers[last] {
		return -1
	}
	//first divider larger than v, minus one.
	return sort.Search(len(D.dividers), func(i int) bool { return D.dividers[i] > v }) - 1
}

// AddData adds the given data point(s) to the histogram. It returns
// how many of them fell outside the dividers.
func (D *Data) AddData(point ...float64) int {
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	var omitted int
	for _, v := range point {
		i := D.bin(v)
		if i < 0 {
			omitted++
			continue
		}
		D.histo[i]++
		D.total++
	}
	//if it was normalized, we should return it to that state
	if norma {
		D.Normalize()
	}
	return omitted
}

// AddAt adds one point to the bin i, for callers that do their own binning.
// It returns false if there is no such bin.
func (D *Data) AddAt(i int) bool {
	if i < 0 || i >= len(D.histo) {
		return false
	}
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	D.histo[i]++
	D.total++
	if norma {
		D.Normalize()
	}
	return true
}

// ReHisto discards the current counts and bins rawdata instead.
// rawdata is sorted in the process.
func (D *Data) ReHisto(rawdata []float64) {
	sort.Float64s(rawdata)
	//stat.Histogram panics instead of omitting the values that are off limits
	//so we remove them here before the call.
	maxi := sort.SearchFloat64s(rawdata, D.dividers[len(D.dividers)-1])
	mini := sort.SearchFloat64s(rawdata, D.dividers[0])
	rawdata = rawdata[mini:maxi]
	D.total = len(rawdata)
	D.normalized = false
	D.histo = stat.Histogram(nil, D.dividers, rawdata, nil)
}

// Normalized Returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

// Normalize scales the histogram so it sums to 1. Empty histograms are
// left untouched.
func (D *Data) Normalize() {
	if D.total <= 0 || D.normalized {
		return
	}
	floats.Scale(1/float64(D.total), D.histo)
	D.normalized = true
}

// UnNormalize reverts Normalize.
func (D *Data) UnNormalize() {
	if D.total <= 0 || !D.normalized {
		return
	}
	floats.Scale(float64(D.total), D.histo)
	D.normalized = false
}

// Total returns the number of points in the histogram.
func (D *Data) Total() int { return D.total }

// View returns the histogram values. They must not be modified.
func (D *Data) View() []float64 { return D.histo }

// Dividers returns a copy of the dividers of the histogram.
func (D *Data) Dividers() []float64 { return append([]float64(nil), D.dividers...) }

// Sum returns the sum of the histogram values.
func (D *Data) Sum() float64 {
	return floats.Sum(D.histo)
}

// String prints a -hopefully- pretty string representation of
// the histogram.
func (D *Data) String() string {
	ret := fmt.Sprintf("Normalized: %v, TotalData: %d\n", D.normalized, D.total)
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return ret + fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}

// Histo2D is a 2D histogram: one 1D histogram over the y dividers for each
// bin of the x dividers.
type Histo2D struct {
	x    *Data
	rows []*Data
}

// New2D returns an empty 2D histogram with the given dividers.
func New2D(xdividers, ydividers []float64) *Histo2D {
	H := &Histo2D{x: NewData(xdividers, nil)}
	H.rows = make([]*Data, len(xdividers)-1)
	for i := range H.rows {
		H.rows[i] = NewData(ydividers, nil)
	}
	return H
}

// Add adds the point (x, y). It returns false if the point was outside
// the histogram.
func (H *Histo2D) Add(x, y float64) bool {
	i := H.x.bin(x)
	if i < 0 {
		return false
	}
	return H.rows[i].AddData(y) == 0
}

// AddAt adds one point to the cell in the x bin i and y bin j. It returns
// false if there is no such cell.
func (H *Histo2D) AddAt(i, j int) bool {
	if i < 0 || i >= len(H.rows) {
		return false
	}
	return H.rows[i].AddAt(j)
}

// Dims returns the number of x and y bins.
func (H *Histo2D) Dims() (int, int) {
	return len(H.rows), len(H.rows[0].histo)
}

// Total returns the number of points in the histogram.
func (H *Histo2D) Total() int {
	var t int
	for _, r := range H.rows {
		t += r.total
	}
	return t
}

// Counts returns the counts, row-major (x bins are rows), in a new slice.
func (H *Histo2D) Counts() []float64 {
	nx, ny := H.Dims()
	ret := make([]float64, 0, nx*ny)
	for _, r := range H.rows {
		r.UnNormalize()
		ret = append(ret, r.histo...)
	}
	return ret
}
