/*
 * plot_test.go, part of bbscore.
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

package ramaplot

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/bbscore"
)

func TestRamaPlot(Te *testing.T) {
	E, err := bbscore.New(bbscore.DefaultOptions())
	if err != nil {
		Te.Fatal(err)
	}
	data := []bbscore.PhiPsi{
		{Phi: bbscore.Undefined(), Psi: 140},
		{Phi: -57, Psi: -47},
		{Phi: -120, Psi: 130},
		{Phi: 60, Psi: 45},
	}
	p, err := RamaPlot(E.Rama(), data, []int{1, 2}, "Test Ramachandran")
	if err != nil {
		Te.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WritePNG(p, &buf); err != nil {
		Te.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		Te.Errorf("Output is not a PNG image")
	}
	name := filepath.Join(Te.TempDir(), "rama.png")
	if err := Save(p, name); err != nil {
		Te.Fatal(err)
	}
	if fi, err := os.Stat(name); err != nil || fi.Size() == 0 {
		Te.Errorf("Plot not written: %v", err)
	}
	if _, err := RamaPlot(nil, data, []int{0, 1, 2, 3, 4}, ""); err == nil {
		Te.Errorf("Expected an error for too many tags")
	}
}

func TestHeatMap(Te *testing.T) {
	g, err := bbscore.NewRamaGrid(2, 4, []float64{1, 1, 1, 1, 2, 2, 2, 2})
	if err != nil {
		Te.Fatal(err)
	}
	G := gridXYZ{g: g}
	if c, r := G.Dims(); c != 2 || r != 4 {
		Te.Errorf("Expected 2x4 cells, got %dx%d", c, r)
	}
	if G.X(0) != -90 || G.Y(3) != 135 {
		Te.Errorf("Bad cell centers %v %v", G.X(0), G.Y(3))
	}
	if G.Z(1, 0) <= G.Z(0, 0) {
		Te.Errorf("Probabilities not preserved")
	}
	h := HeatMap(g, true)
	if h.Min >= h.Max {
		Te.Errorf("Bad heat map range %v %v", h.Min, h.Max)
	}
	if r, g, b := colors(0, 4); r != 255 || g != 0 || b != 0 {
		Te.Errorf("Expected red for the first point, got %d %d %d", r, g, b)
	}
}
