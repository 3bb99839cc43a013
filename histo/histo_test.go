/*
 * histo_test.go, part of bbscore.
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

package histo

import (
	"fmt"
	"math"
	"testing"
)

func TestHisto(Te *testing.T) {
	rawdata := []float64{1, 6, 3, 2, 4, 5, 7, 6, 3.5, 3, 5, 1, 1, 0, 0, 5, 8, 1, 2, 3, 44, 3, 7, 3, 1, 3, 5, 32, 1}
	D := NewData([]float64{0, 1, 2, 3, 4, 8}, rawdata)
	fmt.Println(D.String())
	//8, 32 and 44 are out.
	if D.Total() != len(rawdata)-3 {
		Te.Errorf("Expected %d points, got %d", len(rawdata)-3, D.Total())
	}
	want := []float64{2, 6, 2, 7, 9}
	for i, v := range D.View() {
		if v != want[i] {
			Te.Errorf("bin %d: expected %v got %v", i, want[i], v)
		}
	}
	if omitted := D.AddData(0.5, -1, 9); omitted != 2 {
		Te.Errorf("Expected 2 omitted points, got %d", omitted)
	}
	D.Normalize()
	if math.Abs(D.Sum()-1) > 1e-12 {
		Te.Errorf("Normalized histogram sums to %v", D.Sum())
	}
	D.AddData(0.5)
	if !D.Normalized() || math.Abs(D.Sum()-1) > 1e-12 {
		Te.Errorf("Histogram should stay normalized, sum: %v", D.Sum())
	}
	D.UnNormalize()
	if math.Abs(D.View()[0]-4) > 1e-9 {
		Te.Errorf("Expected 4 points in the first bin, got %v", D.View()[0])
	}
}

func TestHisto2D(Te *testing.T) {
	div := Dividers(-180, 180, 4)
	if len(div) != 5 || div[2] != 0 {
		Te.Fatalf("Bad dividers %v", div)
	}
	H := New2D(div, div)
	points := [][2]float64{{-180, -180}, {-60, -40}, {-61, -45}, {100, 179.9}, {180, 0}}
	for i, p := range points {
		added := H.Add(p[0], p[1])
		if added != (i != 4) {
			Te.Errorf("point %v: added %v", p, added)
		}
	}
	nx, ny := H.Dims()
	if nx != 4 || ny != 4 || H.Total() != 4 {
		Te.Fatalf("Bad histogram %d x %d with %d points", nx, ny, H.Total())
	}
	c := H.Counts()
	if c[0] != 1 || c[1*4+1] != 2 || c[3*4+3] != 1 {
		Te.Errorf("Bad counts %v", c)
	}
}

func TestHisto2DAddAt(Te *testing.T) {
	H := New2D(Dividers(-180, 180, 25), Dividers(-180, 180, 25))
	if !H.AddAt(2, 24) || H.AddAt(25, 0) || H.AddAt(0, -1) {
		Te.Errorf("AddAt should only accept cells inside the histogram")
	}
	if c := H.Counts(); c[2*25+24] != 1 || H.Total() != 1 {
		Te.Errorf("Expected one point in cell 2,24, got %v (total %d)", c[2*25+24], H.Total())
	}
}
