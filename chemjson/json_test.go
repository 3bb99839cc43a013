/*
 * json_test.go, part of bbscore.
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

package chemjson

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rmera/bbscore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func testConformation() *bbscore.Conformation {
	return &bbscore.Conformation{
		Atoms: []*bbscore.Atom{
			{Name: "N", ID: 1, MolName: "ALA", MolID: 1, Chain: "A", Pos: r3.Vec{X: 0, Y: 0, Z: 0}},
			{Name: "CA", ID: 2, MolName: "ALA", MolID: 1, Chain: "A", Pos: r3.Vec{X: 1.458, Y: 0, Z: 0}},
			{Name: "C", ID: 3, MolName: "ALA", MolID: 1, Chain: "A", Symbol: "C", Pos: r3.Vec{X: 2.0, Y: 1.4, Z: 0.1}},
		},
		Bonds:    [][2]int{{0, 1}, {1, 2}},
		PhiPsi:   []bbscore.PhiPsi{{Phi: bbscore.Undefined(), Psi: -47}},
		Residues: []string{"ALA"},
	}
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeConformation(testConformation(), &buf))
	require.NoError(t, EncodeConformation(testConformation(), &buf))
	assert.Contains(t, buf.String(), `"phi":null`)

	confs, err := DecodeConformations(&buf)
	require.NoError(t, err)
	require.Len(t, confs, 2)
	c := confs[1]
	want := testConformation()
	require.Len(t, c.Atoms, 3)
	for i, at := range c.Atoms {
		assert.Equal(t, *want.Atoms[i], *at)
	}
	assert.Equal(t, want.Bonds, c.Bonds)
	assert.Equal(t, want.Residues, c.Residues)
	require.Len(t, c.PhiPsi, 1)
	assert.True(t, bbscore.IsUndefined(c.PhiPsi[0].Phi))
	assert.Equal(t, -47.0, c.PhiPsi[0].Psi)
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"syntax":        `{"atoms": [`,
		"unknown field": `{"atoms": [], "frames": 2}`,
		"bad bond":      `{"atoms": [{"name": "N", "id": 1, "resname": "ALA", "resid": 1, "coords": [0, 0, 0]}], "bonds": [[0, 1]]}`,
	}
	for name, in := range cases {
		_, err := DecodeConformations(strings.NewReader(in))
		require.Error(t, err, name)
		var jerr *Error
		require.True(t, errors.As(err, &jerr), name)
		assert.Equal(t, "input", jerr.Stage, name)
		assert.True(t, jerr.IsError)
	}
}

func TestReport(t *testing.T) {
	R := &bbscore.EnergyReport{Steric: 1, Electrostatic: -2, HBond: -3, HBonds: 2, HBondWeight: 2, Torsion: 0.5, RamaBias: 4,
		SS: []bbscore.Match{{Label: "HHHHH"}, {Label: bbscore.NoMatch}}}
	J := NewReport(R)
	assert.Equal(t, -3.5, J.Total)
	assert.Equal(t, -6.5, J.Weighted)
	assert.Equal(t, 2.0, J.HBondWeight)
	assert.Equal(t, []string{"HHHHH", bbscore.NoMatch}, J.SS)
	var buf bytes.Buffer
	require.NoError(t, J.Send(&buf))
	assert.Contains(t, buf.String(), `"total":-3.5`)

	buf.Reset()
	require.NoError(t, NewError("process", "score", errors.New("boom")).Send(&buf))
	assert.JSONEq(t, `{"is_error": true, "stage": "process", "function": "score", "message": "boom"}`, buf.String())
}
