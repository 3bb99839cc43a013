/*
 * ffdata.go, part of bbscore.
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
 */

// Package ffdata holds the versioned data resources of bbscore: the force field
// (radii, sqrt-epsilons and partial charges, 1-4 scales, cutoffs, hydrogen bond
// constants and backbone torsion terms), the Ramachandran probability grid and
// the secondary structure templates. The shipped files are embedded in the
// binary, but any of them can be replaced by an external file, which can be
// zstd (.zst) or gzip (.gz) compressed.
//
// The files use a sectioned text format similar to that of Gromacs topologies:
// "[ header ]" lines open a section, ';' starts a comment.
//
// Any change to a tabulated value is a change in behavior and must come with a
// new [ version ] string.
package ffdata

import (
	"embed"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Names of the embedded resources.
const (
	ForceFieldFile = "ff96.dat"
	RamaFile       = "rama.dat"
	TemplatesFile  = "sstypes.dat"
)

// Wildcard is the key of the catch-all entry of the element table.
const Wildcard = "*"

//go:embed ff96.dat rama.dat sstypes.dat
var embedded embed.FS

// Entry is one row of the force field: van der Waals radius, square root
// of the LJ epsilon, and partial charge.
type Entry struct {
	Radius  float64
	SqrtEps float64
	Charge  float64
}

// Term is one (V, n, a) term of a Fourier dihedral potential, a in degrees.
type Term struct {
	V float64
	N float64
	A float64
}

// ForceField contains everything read from a force field file.
type ForceField struct {
	Version   string
	Scale14   map[string]float64 // "charge", "lj", "steric"
	Cutoffs   map[string]float64
	Electro   map[string]float64 // "coulfact"
	HBond     map[string]float64
	Dihedrals map[string][]Term // "phi", "psi"
	Elements  map[string]Entry
	Atoms     map[string]Entry
	Residues  map[string]map[string]Entry
}

// Grid is a dense NPhi x NPsi table, stored row-major (rows are phi bins).
type Grid struct {
	NPhi   int
	NPsi   int
	Values []float64
}

// Template is a raw secondary structure template.
type Template struct {
	Label    string
	NLocal   int
	Ranges   [][4]float64 //minphi, maxphi, minpsi, maxpsi
	Contacts [][]int
}

// Open returns a reader for the resource name. If name is a bare file name
// (no directory) that does not exist on disk, the embedded resource with that
// name is returned. Files ending in .zst or .gz are decompressed on the fly.
func Open(name string) (io.ReadCloser, error) {
	var raw io.ReadCloser
	f, err := os.Open(name)
	if err != nil {
		if !os.IsNotExist(err) || filepath.Base(name) != name {
			return nil, err
		}
		ef, err2 := embedded.Open(name)
		if err2 != nil {
			return nil, fmt.Errorf("ffdata: %s not found on disk or embedded: %w", name, err)
		}
		raw = ef
	} else {
		raw = f
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst":
		d, err := zstd.NewReader(raw)
		if err != nil {
			raw.Close()
			return nil, fmt.Errorf("ffdata: zstd stream %s: %w", name, err)
		}
		return &zstdCloser{d: d, under: raw}, nil
	case ".gz":
		g, err := gzip.NewReader(raw)
		if err != nil {
			raw.Close()
			return nil, fmt.Errorf("ffdata: gzip stream %s: %w", name, err)
		}
		return &gzipCloser{Reader: g, under: raw}, nil
	}
	return raw, nil
}

type zstdCloser struct {
	d     *zstd.Decoder
	under io.Closer
}

func (z *zstdCloser) Read(p []byte) (int, error) { return z.d.Read(p) }

func (z *zstdCloser) Close() error {
	z.d.Close()
	return z.under.Close()
}

type gzipCloser struct {
	*gzip.Reader
	under io.Closer
}

func (g *gzipCloser) Close() error {
	err := g.Reader.Close()
	if err2 := g.under.Close(); err == nil {
		err = err2
	}
	return err
}

// Load opens the resource name (see Open) and parses it with read.
func Load[T any](name string, read func(io.Reader) (T, error)) (T, error) {
	var zero T
	f, err := Open(name)
	if err != nil {
		return zero, err
	}
	defer f.Close()
	ret, err := read(f)
	if err != nil {
		return zero, fmt.Errorf("ffdata: %s: %w", name, err)
	}
	return ret, nil
}

func readEntry(l string, n int) (string, Entry, error) {
	f := strings.Fields(l)
	if len(f) != 4 {
		return "", Entry{}, fmt.Errorf("line %d: expected 'name radius sqrteps charge', got %q", n, l)
	}
	v, err := parsefloats(f[1:]...)
	if err != nil {
		return "", Entry{}, fmt.Errorf("line %d: %w", n, err)
	}
	e := Entry{Radius: v[0], SqrtEps: v[1], Charge: v[2]}
	if e.Radius < 0 || e.SqrtEps < 0 || !finite(v...) {
		return "", Entry{}, fmt.Errorf("line %d: radius and sqrt-epsilon must be finite and non-negative", n)
	}
	return f[0], e, nil
}

func readEntries(s *section) (map[string]Entry, error) {
	ret := make(map[string]Entry, len(s.lines))
	for i, l := range s.lines {
		name, e, err := readEntry(l, s.nums[i])
		if err != nil {
			return nil, err
		}
		if _, ok := ret[name]; ok {
			return nil, fmt.Errorf("line %d: repeated entry %s", s.nums[i], name)
		}
		ret[name] = e
	}
	return ret, nil
}

// ReadForceField parses a force field file.
func ReadForceField(r io.Reader) (*ForceField, error) {
	secs, err := readSections(r)
	if err != nil {
		return nil, err
	}
	F := &ForceField{
		Dihedrals: make(map[string][]Term),
		Residues:  make(map[string]map[string]Entry),
	}
	for _, s := range secs {
		switch s.name() {
		case "version":
			if len(s.lines) != 1 {
				return nil, fmt.Errorf("the version section must have exactly one line")
			}
			F.Version = s.lines[0]
		case "scale14":
			F.Scale14, err = keyValues(s)
		case "cutoffs":
			F.Cutoffs, err = keyValues(s)
		case "electrostatics":
			F.Electro, err = keyValues(s)
		case "hbond":
			F.HBond, err = keyValues(s)
		case "dihedral":
			if len(s.header) != 2 {
				return nil, fmt.Errorf("dihedral section needs a name, as in [ dihedral phi ]")
			}
			var terms []Term
			for i, l := range s.lines {
				v, err := parsefloats(strings.Fields(l)...)
				if err != nil || len(v) != 3 {
					return nil, fmt.Errorf("line %d: expected 'V n a', got %q", s.nums[i], l)
				}
				terms = append(terms, Term{V: v[0], N: v[1], A: v[2]})
			}
			F.Dihedrals[s.header[1]] = terms
		case "element":
			F.Elements, err = readEntries(s)
		case "atoms":
			F.Atoms, err = readEntries(s)
		case "residue":
			if len(s.header) != 2 {
				return nil, fmt.Errorf("residue section needs a name, as in [ residue ALA ]")
			}
			if _, ok := F.Residues[s.header[1]]; ok {
				return nil, fmt.Errorf("repeated residue %s", s.header[1])
			}
			F.Residues[s.header[1]], err = readEntries(s)
		default:
			return nil, fmt.Errorf("unknown section %q", s.name())
		}
		if err != nil {
			return nil, fmt.Errorf("section %s: %w", strings.Join(s.header, " "), err)
		}
	}
	if F.Version == "" {
		return nil, fmt.Errorf("missing version section")
	}
	if _, ok := F.Elements[Wildcard]; !ok {
		return nil, fmt.Errorf("the element table needs a %q entry", Wildcard)
	}
	for _, c := range F.Cutoffs {
		if c < 0 || !finite(c) {
			return nil, fmt.Errorf("cutoffs must be finite and non-negative")
		}
	}
	return F, nil
}

// ReadGrid parses a Ramachandran grid file. It checks the shape and that all
// values are finite and non-negative. It does not normalize.
func ReadGrid(r io.Reader) (*Grid, error) {
	secs, err := readSections(r)
	if err != nil {
		return nil, err
	}
	if len(secs) != 1 || secs[0].name() != "grid" || len(secs[0].header) != 3 {
		return nil, fmt.Errorf("expected a single [ grid NPHI NPSI ] section")
	}
	s := secs[0]
	dims, err := parseints(s.header[1:]...)
	if err != nil {
		return nil, fmt.Errorf("grid dimensions: %w", err)
	}
	G := &Grid{NPhi: dims[0], NPsi: dims[1]}
	if G.NPhi <= 0 || G.NPsi <= 0 {
		return nil, fmt.Errorf("grid dimensions must be positive, got %d x %d", G.NPhi, G.NPsi)
	}
	if len(s.lines) != G.NPhi {
		return nil, fmt.Errorf("grid declares %d phi rows but has %d", G.NPhi, len(s.lines))
	}
	G.Values = make([]float64, 0, G.NPhi*G.NPsi)
	for i, l := range s.lines {
		row, err := parsefloats(strings.Fields(l)...)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", s.nums[i], err)
		}
		if len(row) != G.NPsi {
			return nil, fmt.Errorf("line %d: expected %d psi columns, got %d", s.nums[i], G.NPsi, len(row))
		}
		for _, v := range row {
			if v < 0 || !finite(v) {
				return nil, fmt.Errorf("line %d: grid values must be finite and non-negative", s.nums[i])
			}
		}
		G.Values = append(G.Values, row...)
	}
	return G, nil
}

// ReadTemplates parses a secondary structure template file. The order of
// the templates in the file is their priority.
func ReadTemplates(r io.Reader) ([]Template, error) {
	secs, err := readSections(r)
	if err != nil {
		return nil, err
	}
	ret := make([]Template, 0, len(secs))
	for _, s := range secs {
		if s.name() != "template" || len(s.header) != 2 {
			return nil, fmt.Errorf("expected [ template \"LABEL\" ] sections, got %q", strings.Join(s.header, " "))
		}
		t := Template{Label: s.header[1], NLocal: -1}
		for i, l := range s.lines {
			f := strings.Fields(l)
			switch f[0] {
			case "nlocal":
				v, err := parseints(f[1:]...)
				if err != nil || len(v) != 1 {
					return nil, fmt.Errorf("line %d: bad nlocal %q", s.nums[i], l)
				}
				t.NLocal = v[0]
			case "range":
				v, err := parsefloats(f[1:]...)
				if err != nil || len(v) != 4 {
					return nil, fmt.Errorf("line %d: bad range %q", s.nums[i], l)
				}
				if v[0] > v[1] || v[2] > v[3] {
					return nil, fmt.Errorf("line %d: range minimum larger than maximum", s.nums[i])
				}
				t.Ranges = append(t.Ranges, [4]float64{v[0], v[1], v[2], v[3]})
			case "contact":
				v, err := parseints(f[1:]...)
				if err != nil {
					return nil, fmt.Errorf("line %d: bad contact row %q", s.nums[i], l)
				}
				for _, c := range v {
					if c < -1 || c > 1 {
						return nil, fmt.Errorf("line %d: contact values must be -1, 0 or 1", s.nums[i])
					}
				}
				t.Contacts = append(t.Contacts, v)
			default:
				return nil, fmt.Errorf("line %d: unknown keyword %q", s.nums[i], f[0])
			}
		}
		N := len(t.Ranges)
		if N == 0 {
			return nil, fmt.Errorf("template %q has no ranges", t.Label)
		}
		if t.NLocal < 0 {
			t.NLocal = N
		}
		if t.NLocal > N {
			return nil, fmt.Errorf("template %q: nlocal %d larger than its %d positions", t.Label, t.NLocal, N)
		}
		if len(t.Contacts) != N {
			return nil, fmt.Errorf("template %q: contact map has %d rows, expected %d", t.Label, len(t.Contacts), N)
		}
		for _, row := range t.Contacts {
			if len(row) != N {
				return nil, fmt.Errorf("template %q: contact map is not %d x %d", t.Label, N, N)
			}
		}
		ret = append(ret, t)
	}
	if len(ret) == 0 {
		return nil, fmt.Errorf("no templates found")
	}
	return ret, nil
}

func finite(v ...float64) bool {
	for _, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
