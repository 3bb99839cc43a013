/*
 * cli_test.go, part of bbscore.
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

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/bbscore/ffdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A single alanine and the N of the next residue.
const fragment = `{"atoms": [
 {"name": "N", "id": 1, "resname": "ALA", "resid": 1, "chain": "A", "coords": [0, 0, 0]},
 {"name": "CA", "id": 2, "resname": "ALA", "resid": 1, "chain": "A", "coords": [1.458, 0, 0]},
 {"name": "C", "id": 3, "resname": "ALA", "resid": 1, "chain": "A", "coords": [2.009, 1.42, 0]},
 {"name": "O", "id": 4, "resname": "ALA", "resid": 1, "chain": "A", "coords": [1.251, 2.39, 0]},
 {"name": "N", "id": 5, "resname": "ALA", "resid": 2, "chain": "A", "coords": [3.332, 1.569, 0]}]}
`

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errout bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errout)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "bbscore", cmd.Use)
	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, n := range []string{"lookup", "dihedral", "rama", "classify", "score", "ramaplot", "ramabuild", "version"} {
		assert.True(t, names[n], n)
	}
	for _, f := range []string{"config", "log-level", "dssp"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(f), f)
	}
}

func TestQueries(t *testing.T) {
	out, err := run(t, "", "lookup", "XYZ", "CA")
	require.NoError(t, err)
	assert.Contains(t, out, "1.9080")
	assert.Contains(t, out, "atom")

	out, err = run(t, "", "dihedral", "180")
	require.NoError(t, err)
	assert.Equal(t, "0.0000\n", out)
	_, err = run(t, "", "dihedral", "--psi", "abc")
	assert.Error(t, err)

	out, err = run(t, "", "rama", "--", "-60", "-40")
	require.NoError(t, err)
	assert.Contains(t, out, "8,9")
	assert.Contains(t, out, "beta")
	out, err = run(t, "", "rama", "--", "-90", "-10")
	require.NoError(t, err)
	assert.Contains(t, out, "beta,helix")
	out, err = run(t, "", "rama", "--", "60", "-150")
	require.NoError(t, err)
	assert.Contains(t, out, "  -")

	helix := strings.Fields(strings.Repeat("-57,-47 ", 5))
	out, err = run(t, "", append([]string{"classify", "--"}, helix...)...)
	require.NoError(t, err)
	assert.Contains(t, out, `"HHHHH"`)
	out, err = run(t, "", "classify", "--chain", "--", "-120,-100", "-40,-10", "-90,-10", "-90,-10", "-90,-10", "-90,-10")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 8)
	assert.Contains(t, lines[0], "peptide")
	assert.Equal(t, []string{"1", `"HHHHH"`, "0", "beta", "beta,helix"}, strings.Fields(lines[3]))

	out, err = run(t, "", "classify", "--", "60,-150")
	require.NoError(t, err)
	assert.Contains(t, out, `"none"`)
	_, err = run(t, "", "classify", "60")
	assert.Error(t, err)

	out, err = run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ff96-1")
}

func TestScore(t *testing.T) {
	out, err := run(t, fragment+fragment, "score", "-")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "conf"))

	out, err = run(t, fragment, "--dssp=false", "score", "--json", "-w", "2", "-")
	require.NoError(t, err)
	var rep map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	for _, k := range []string{"steric", "electrostatic", "hbond", "hbond_weight", "torsion", "total", "weighted", "rama_bias", "ss"} {
		assert.Contains(t, rep, k)
	}
	assert.NotEqual(t, 1.0, rep["hbond_weight"])

	full, err := run(t, fragment, "score", "--json", "-")
	require.NoError(t, err)
	bb, err := run(t, fragment, "score", "--backbone", "--json", "-")
	require.NoError(t, err)
	assert.JSONEq(t, full, bb)

	out, err = run(t, `{"atoms": [`, "score", "--json", "-")
	assert.Error(t, err)
	assert.Contains(t, out, `"is_error":true`)
}

func TestRamaBuildAndPlot(t *testing.T) {
	dir := t.TempDir()
	gridFile := filepath.Join(dir, "grid.dat")
	samples := "; phi psi\n-60 -40\n-62,-41\n\n-120 130\n"
	_, err := run(t, samples, "ramabuild", "--nphi", "4", "--npsi", "4", "-o", gridFile, "-")
	require.NoError(t, err)
	G, err := ffdata.Load(gridFile, ffdata.ReadGrid)
	require.NoError(t, err)
	assert.Equal(t, 4, G.NPhi)
	assert.Len(t, G.Values, 16)

	_, err = run(t, "-60\n", "ramabuild", "-")
	assert.Error(t, err)

	confFile := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(confFile, []byte(fragment), 0o644))
	png := filepath.Join(dir, "rama.png")
	_, err = run(t, "", "ramaplot", png, confFile)
	require.NoError(t, err)
	fi, err := os.Stat(png)
	require.NoError(t, err)
	assert.NotZero(t, fi.Size())
}

func TestConfigFlags(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "bbscore.yaml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("steric:\n  mode: wobbly\n"), 0o644))
	_, err := run(t, "", "--config", cfgFile, "version")
	assert.Error(t, err)

	_, err = run(t, "", "--log-level", "loud", "version")
	assert.Error(t, err)
}

func TestFormatTable(t *testing.T) {
	s := FormatTable([]string{"a", "bbb"}, [][]string{{"xx", "y"}})
	assert.Equal(t, "a   bbb\n--  ---\nxx  y  \n", s)
	assert.Empty(t, FormatTable(nil, nil))
}
