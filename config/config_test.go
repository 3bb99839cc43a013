/*
 * config_test.go, part of bbscore.
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/bbscore"
	"github.com/rmera/bbscore/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
hbond:
  dssp: false
  charge_coef: 0.5
steric:
  mode: steric
electrostatics:
  dielectric: 4
cutoffs:
  charged: 12
workers: 3
quick: true
log:
  level: debug
  format: json
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bbscore.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.True(t, cfg.HBond.DSSP)
	assert.Equal(t, DefaultChargeCoef, cfg.HBond.ChargeCoef)
	assert.Equal(t, DefaultSteric, cfg.Steric.Mode)
	assert.Equal(t, DefaultDielectric, cfg.Electrostatics.Dielectric)
	assert.Empty(t, cfg.Cutoffs)
	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, logging.Config{Level: "info", Format: "console"}, cfg.Logging())

	opts, err := cfg.Options(nil)
	require.NoError(t, err)
	assert.Equal(t, bbscore.DefaultOptions(), opts)
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)
	assert.False(t, cfg.HBond.DSSP)
	assert.Equal(t, 0.5, cfg.HBond.ChargeCoef)
	assert.Equal(t, map[string]float64{"charged": 12}, cfg.Cutoffs)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.Quick)
	assert.Equal(t, "json", cfg.Log.Format)

	opts, err := cfg.Options(logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, bbscore.StericOverlap, opts.StericMode)
	assert.Equal(t, 4.0, opts.Dielectric)
	assert.False(t, opts.DSSP)
	assert.True(t, opts.Quick)
	E, err := bbscore.New(opts)
	require.NoError(t, err)
	assert.Equal(t, 12.0, E.Cutoffs().Charged)
	assert.False(t, E.HBondScorer().DSSP())
	assert.Equal(t, bbscore.HBondChargeRatio(bbscore.StericOverlap, 0.5), E.HBondWeight())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BBSCORE_HBOND_DSSP", "false")
	t.Setenv("BBSCORE_STERIC_MODE", "steric")
	t.Setenv("BBSCORE_CUTOFFS_OVERLAP", "3.5")
	t.Setenv("BBSCORE_WORKERS", "8")
	t.Setenv("BBSCORE_QUICK", "true")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.HBond.DSSP)
	assert.Equal(t, "steric", cfg.Steric.Mode)
	assert.Equal(t, map[string]float64{"overlap": 3.5}, cfg.Cutoffs)
	assert.Equal(t, 8, cfg.Workers)
	assert.True(t, cfg.Quick)

	//env wins over the file
	t.Setenv("BBSCORE_ELECTROSTATICS_DIELECTRIC", "80")
	cfg, err = Load(writeConfig(t, testYAML))
	require.NoError(t, err)
	assert.Equal(t, 80.0, cfg.Electrostatics.Dielectric)
	assert.Equal(t, 3.5, cfg.Cutoffs["overlap"])
	assert.Equal(t, 12.0, cfg.Cutoffs["charged"])
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	cases := map[string]string{
		"steric mode":    "steric:\n  mode: soft\n",
		"dielectric":     "electrostatics:\n  dielectric: 0\n",
		"workers":        "workers: -1\n",
		"unknown cutoff": "cutoffs:\n  ionic: 3\n",
		"cutoff":         "cutoffs:\n  overlap: -3\n",
		"log level":      "log:\n  level: loud\n",
		"log format":     "log:\n  format: xml\n",
		"yaml":           "hbond: [\n",
	}
	for name, content := range cases {
		_, err := Load(writeConfig(t, content))
		assert.Error(t, err, name)
	}
}
