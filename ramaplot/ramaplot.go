/*
 * ramaplot.go, part of bbscore.
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
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/rmera/bbscore"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Side of the square plots written by Save and WritePNG.
const Side = 5 * vg.Inch

// number of colors in the heat map palette
const paletteColors = 64

func basicRamaPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = vg.Millimeter * 3
	p.Title.Text = title
	p.X.Label.Text = "Phi"
	p.Y.Label.Text = "Psi"
	//Constant axes
	p.X.Min = -180
	p.X.Max = 180
	p.Y.Min = -180
	p.Y.Max = 180
	return p
}

// gridXYZ shows a Ramachandran grid as a plotter.GridXYZ, with phi
// along X. Cells are placed at their centers.
type gridXYZ struct {
	g    *bbscore.RamaGrid
	bias bool
}

func (G gridXYZ) Dims() (int, int) { return G.g.Dims() }

func (G gridXYZ) Z(c, r int) float64 {
	if G.bias {
		return -math.Log(G.g.At(c, r))
	}
	return G.g.At(c, r)
}

func (G gridXYZ) X(c int) float64 {
	n, _ := G.g.Dims()
	return -180 + (float64(c)+0.5)*360/float64(n)
}

func (G gridXYZ) Y(r int) float64 {
	_, n := G.g.Dims()
	return -180 + (float64(r)+0.5)*360/float64(n)
}

// HeatMap returns a heat map of the probabilities in grid or, if bias
// is true, of their negative logarithm.
func HeatMap(grid *bbscore.RamaGrid, bias bool) *plotter.HeatMap {
	pal := moreland.SmoothBlueRed().Palette(paletteColors)
	h := plotter.NewHeatMap(gridXYZ{g: grid, bias: bias}, pal)
	if h.Max <= h.Min {
		h.Max = h.Min + 1
	}
	return h
}

// RamaPlot produces a Ramachandran plot, with the heat map of grid, if
// not nil, and the points in data. Points with undefined angles are left
// out. Points with indexes in tag (maximum 4) are drawn with different
// glyphs.
func RamaPlot(grid *bbscore.RamaGrid, data []bbscore.PhiPsi, tag []int, title string) (*plot.Plot, error) {
	if len(tag) > 4 {
		return nil, fmt.Errorf("RamaPlot: maximum number of taggable residues is 4, got %d", len(tag))
	}
	p := basicRamaPlot(title)
	if grid != nil {
		p.Add(HeatMap(grid, true))
	}
	p.Add(plotter.NewGrid())
	temp := make(plotter.XYs, 1)
	var tagged int //How many residues have been tagged?
	for key, val := range data {
		if !val.Defined() {
			continue
		}
		temp[0].X = bbscore.WrapAngle(val.Phi)
		temp[0].Y = bbscore.WrapAngle(val.Psi)
		s, err := plotter.NewScatter(temp)
		if err != nil {
			return nil, err
		}
		if isInInt(tag, key) {
			s.GlyphStyle.Shape = getShape(tagged)
			s.GlyphStyle.Radius = vg.Points(4)
			tagged++
		}
		r, g, b := colors(key, len(data))
		s.GlyphStyle.Color = color.RGBA{R: r, B: b, G: g, A: 255}
		p.Add(s)
	}
	return p, nil
}

// Save writes p to filename. The format is given by the extension.
func Save(p *plot.Plot, filename string) error {
	return p.Save(Side, Side, filename)
}

// WritePNG writes p to out, in PNG format.
func WritePNG(p *plot.Plot, out io.Writer) error {
	w, err := p.WriterTo(Side, Side, "png")
	if err != nil {
		return err
	}
	_, err = w.WriteTo(out)
	return err
}

// takes hue (0-360), v and s (0-1), returns r,g,b (0-255)
func iHVS2RGB(h, v, s float64) (uint8, uint8, uint8) {
	var i, f, p, q, t float64
	var r, g, b float64
	maxcolor := 255.0
	conversion := maxcolor * v
	if s == 0.0 {
		return uint8(conversion), uint8(conversion), uint8(conversion)
	}
	h = h / 60
	i = math.Floor(h)
	f = h - i
	p = v * (1 - s)
	q = v * (1 - s*f)
	t = v * (1 - s*(1-f))
	switch int(i) {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default: //case 5
		r, g, b = v, p, q
	}
	return uint8(r * conversion), uint8(g * conversion), uint8(b * conversion)
}

// colors spreads steps points over the hue circle, skipping the yellows,
// which are hard to see on the heat map.
func colors(key, steps int) (r, g, b uint8) {
	norm := 260.0 / float64(steps)
	hp := float64(key)*norm + 20.0
	var h float64
	if hp < 55 {
		h = hp - 20.0
	} else {
		h = hp + 20.0
	}
	return iHVS2RGB(h, 1, 1)
}

func getShape(tagged int) draw.GlyphDrawer {
	switch tagged {
	case 0:
		return draw.PyramidGlyph{}
	case 1:
		return draw.CircleGlyph{}
	case 2:
		return draw.SquareGlyph{}
	default:
		return draw.CrossGlyph{}
	}
}

// isInInt returns true if test is in container, false otherwise.
func isInInt(container []int, test int) bool {
	for _, i := range container {
		if test == i {
			return true
		}
	}
	return false
}
