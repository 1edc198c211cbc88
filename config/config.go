/*
 * config.go, part of nanocar.
 *
 * Copyright 2025 The nanocar authors
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

// Package config loads the settings of the nanocar builder.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// ConfigName is the base name of the config file, without extension.
const ConfigName = "nanocar"

// EnvPrefix is the prefix of the environment variables that override the file.
const EnvPrefix = "NANOCAR"

// Config holds all the settings.
type Config struct {
	LogLevel string   `json:"logLevel" mapstructure:"logLevel"`
	Ledger   string   `json:"ledger" mapstructure:"ledger"`
	Assembly Assembly `json:"assembly" mapstructure:"assembly"`
	Export   Export   `json:"export" mapstructure:"export"`
}

// Assembly holds the settings for attaching wheels.
type Assembly struct {
	CatalogDir     string  `json:"catalogDir" mapstructure:"catalogDir"` // empty for the embedded catalog
	DefaultWheel   string  `json:"defaultWheel" mapstructure:"defaultWheel"`
	DefaultChassis string  `json:"defaultChassis" mapstructure:"defaultChassis"`
	Bond           float64 `json:"bond" mapstructure:"bond"` // A
	RefreshLedger  bool    `json:"refreshLedger" mapstructure:"refreshLedger"`
}

// Export holds the settings for the LAMMPS files.
type Export struct {
	BoxZ           float64 `json:"boxZ" mapstructure:"boxZ"`           // nm, X and Y come from the surface
	Timestep       float64 `json:"timestep" mapstructure:"timestep"`   // fs
	SimLength      float64 `json:"simLength" mapstructure:"simLength"` // ns
	Temperature    float64 `json:"temperature" mapstructure:"temperature"`
	WriteEvery     int     `json:"writeEvery" mapstructure:"writeEvery"`
	Cutoff         float64 `json:"cutoff" mapstructure:"cutoff"`
	Seed           int     `json:"seed" mapstructure:"seed"`
	Multibody      bool    `json:"multibody" mapstructure:"multibody"`
	BondK          float64 `json:"bondK" mapstructure:"bondK"`
	BondR0         float64 `json:"bondR0" mapstructure:"bondR0"`
	SurfaceElement string  `json:"surfaceElement" mapstructure:"surfaceElement"`
	OutputDir      string  `json:"outputDir" mapstructure:"outputDir"`
	FallbackDir    string  `json:"fallbackDir" mapstructure:"fallbackDir"`
	Compression    string  `json:"compression" mapstructure:"compression"` // none, gzip or zstd
	Plot           bool    `json:"plot" mapstructure:"plot"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("ledger", "nanocar_ledger.yaml")

	v.SetDefault("assembly.catalogDir", "")
	v.SetDefault("assembly.defaultWheel", "methyl")
	v.SetDefault("assembly.defaultChassis", "benzene")
	v.SetDefault("assembly.bond", 1.5)
	v.SetDefault("assembly.refreshLedger", false)

	v.SetDefault("export.boxZ", 3.0)
	v.SetDefault("export.timestep", 1.0)
	v.SetDefault("export.simLength", 1.0)
	v.SetDefault("export.temperature", 300.0)
	v.SetDefault("export.writeEvery", 10000)
	v.SetDefault("export.cutoff", 13.0)
	v.SetDefault("export.seed", 123456)
	v.SetDefault("export.multibody", false)
	v.SetDefault("export.bondK", 693.14)
	v.SetDefault("export.bondR0", 1.21)
	v.SetDefault("export.surfaceElement", "Au")
	v.SetDefault("export.outputDir", ".")
	v.SetDefault("export.fallbackDir", ".")
	v.SetDefault("export.compression", "none")
	v.SetDefault("export.plot", false)
}

// Load reads the configuration from a nanocar.{json,yaml,toml} file in configDir,
// on top of the defaults. A missing file is not an error. NANOCAR_* environment
// variables override the file, e.g. NANOCAR_EXPORT_TIMESTEP.
func Load(configDir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if configDir != "" {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(configDir)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}
	return fromViper(v)
}

// LoadFile reads the configuration from the given file.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return fromViper(v)
}

// Default returns the default configuration.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	c, err := fromViper(v)
	if err != nil {
		panic("config: invalid defaults: " + err.Error())
	}
	return c
}

func fromViper(v *viper.Viper) (*Config, error) {
	c := new(Config)
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that the values make sense.
func (c *Config) Validate() error {
	var errs []error
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("logLevel: %w", err))
	}
	if c.Assembly.Bond < 0 {
		errs = append(errs, fmt.Errorf("assembly.bond must not be negative, got %g", c.Assembly.Bond))
	}
	e := c.Export
	if e.Timestep <= 0 {
		errs = append(errs, fmt.Errorf("export.timestep must be positive, got %g", e.Timestep))
	}
	if e.SimLength < 0 {
		errs = append(errs, fmt.Errorf("export.simLength must not be negative, got %g", e.SimLength))
	}
	if e.BoxZ <= 0 {
		errs = append(errs, fmt.Errorf("export.boxZ must be positive, got %g", e.BoxZ))
	}
	if e.WriteEvery <= 0 {
		errs = append(errs, fmt.Errorf("export.writeEvery must be positive, got %d", e.WriteEvery))
	}
	if e.Cutoff <= 0 {
		errs = append(errs, fmt.Errorf("export.cutoff must be positive, got %g", e.Cutoff))
	}
	if e.Temperature <= 0 {
		errs = append(errs, fmt.Errorf("export.temperature must be positive, got %g", e.Temperature))
	}
	switch e.Compression {
	case "none", "gzip", "zstd":
	default:
		errs = append(errs, fmt.Errorf("export.compression must be none, gzip or zstd, got %q", e.Compression))
	}
	if e.SurfaceElement == "" {
		errs = append(errs, errors.New("export.surfaceElement is empty"))
	}
	return errors.Join(errs...)
}

// Level returns the zerolog level for LogLevel, or info if it can't be parsed.
func (c *Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}
