/*
 * config.go, part of bbscore.
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

// Package config loads the settings of the bbscore tools from a YAML
// file and BBSCORE_* environment variables.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/rmera/bbscore"
	"github.com/rmera/bbscore/logging"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix of all settings. Nested
// keys map "." to "_", so hbond.dssp is BBSCORE_HBOND_DSSP.
const envPrefix = "BBSCORE"

// Defaults.
const (
	DefaultDSSP       = true
	DefaultChargeCoef = 1.0
	DefaultSteric     = "lj"
	DefaultDielectric = 1.0
	DefaultWorkers    = 0 //GOMAXPROCS
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
)

// Config is the full configuration.
type Config struct {
	HBond          HBondConfig        `mapstructure:"hbond"`
	Steric         StericConfig       `mapstructure:"steric"`
	Electrostatics ElectroConfig      `mapstructure:"electrostatics"`
	Cutoffs        map[string]float64 `mapstructure:"cutoffs"` //overrides of the force field values
	Data           DataConfig         `mapstructure:"data"`
	Workers        int                `mapstructure:"workers"`
	Quick          bool               `mapstructure:"quick"` //score only the H, N, CA, C and O atoms
	Log            LogConfig          `mapstructure:"log"`
}

type HBondConfig struct {
	DSSP       bool    `mapstructure:"dssp"`
	ChargeCoef float64 `mapstructure:"charge_coef"`
}

type StericConfig struct {
	Mode string `mapstructure:"mode"` //lj or steric
}

type ElectroConfig struct {
	Dielectric float64 `mapstructure:"dielectric"`
}

// DataConfig names external data files. Empty names select the embedded ones.
type DataConfig struct {
	ForceField string `mapstructure:"forcefield"`
	Rama       string `mapstructure:"rama"`
	Templates  string `mapstructure:"templates"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("hbond.dssp", DefaultDSSP)
	v.SetDefault("hbond.charge_coef", DefaultChargeCoef)
	v.SetDefault("steric.mode", DefaultSteric)
	v.SetDefault("electrostatics.dielectric", DefaultDielectric)
	v.SetDefault("data.forcefield", "")
	v.SetDefault("data.rama", "")
	v.SetDefault("data.templates", "")
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("quick", false)
	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
}

// newViper builds a Viper instance with YAML files, the BBSCORE_ env
// prefix and the defaults.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)
	//cutoffs have no defaults, they only exist to be overridden.
	for _, k := range bbscore.CutoffKeys() {
		_ = v.BindEnv("cutoffs." + k)
	}
	return v
}

// Default returns the default configuration.
func Default() *Config {
	cfg, err := unmarshalAndValidate(newViper())
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}
	return cfg
}

// Load reads the YAML file at path, if path is not empty, and applies
// the BBSCORE_* environment overrides on top of it and the defaults.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read config file %q: %w", path, err)
		}
	}
	return unmarshalAndValidate(v)
}

func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	cfg := new(Config)
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks every setting that can be checked without loading
// the data files.
func (c *Config) Validate() error {
	if _, err := bbscore.ParseStericMode(c.Steric.Mode); err != nil {
		return err
	}
	if !(c.Electrostatics.Dielectric > 0) || math.IsInf(c.Electrostatics.Dielectric, 0) {
		return fmt.Errorf("electrostatics.dielectric must be positive and finite, got %g", c.Electrostatics.Dielectric)
	}
	if math.IsNaN(c.HBond.ChargeCoef) || math.IsInf(c.HBond.ChargeCoef, 0) {
		return fmt.Errorf("hbond.charge_coef must be finite, got %g", c.HBond.ChargeCoef)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers can't be negative, got %d", c.Workers)
	}
	keys := bbscore.CutoffKeys()
	for k, val := range c.Cutoffs {
		known := false
		for _, key := range keys {
			known = known || key == k
		}
		if !known {
			return fmt.Errorf("unknown cutoff %q, expected one of %s", k, strings.Join(keys, ", "))
		}
		if val < 0 || math.IsNaN(val) || math.IsInf(val, 0) {
			return fmt.Errorf("cutoff %s must be finite and non-negative, got %g", k, val)
		}
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// Options returns the engine options for c, which will log to log.
func (c *Config) Options(log logging.Logger) (bbscore.Options, error) {
	mode, err := bbscore.ParseStericMode(c.Steric.Mode)
	if err != nil {
		return bbscore.Options{}, err
	}
	opts := bbscore.DefaultOptions()
	opts.DSSP = c.HBond.DSSP
	opts.ChargeCoef = c.HBond.ChargeCoef
	opts.StericMode = mode
	opts.Dielectric = c.Electrostatics.Dielectric
	opts.Quick = c.Quick
	if len(c.Cutoffs) > 0 {
		opts.Cutoffs = make(map[string]float64, len(c.Cutoffs))
		for k, v := range c.Cutoffs {
			opts.Cutoffs[k] = v
		}
	}
	opts.ForceField = c.Data.ForceField
	opts.Rama = c.Data.Rama
	opts.Templates = c.Data.Templates
	opts.Logger = log
	return opts, nil
}

// Logging returns the logger settings for c.
func (c *Config) Logging() logging.Config {
	return logging.Config{Level: c.Log.Level, Format: c.Log.Format}
}
