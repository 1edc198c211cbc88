/*
 * config_test.go, part of nanocar.
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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"assembly": { "bond": 1.2, "defaultWheel": "C60" },
		"export": { "timestep": 2.0, "multibody": true }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nanocar.json"), []byte(cfg), 0644))

	c, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, zerolog.DebugLevel, c.Level())
	assert.Equal(t, 1.2, c.Assembly.Bond)
	assert.Equal(t, "C60", c.Assembly.DefaultWheel)
	assert.Equal(t, 2.0, c.Export.Timestep)
	assert.True(t, c.Export.Multibody)
	// untouched values keep their defaults
	assert.Equal(t, 13.0, c.Export.Cutoff)
	assert.Equal(t, "benzene", c.Assembly.DefaultChassis)
}

func TestLoad_DefaultValues(t *testing.T) {
	c, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "nanocar_ledger.yaml", c.Ledger)
	assert.Equal(t, 1.5, c.Assembly.Bond)
	assert.Equal(t, 3.0, c.Export.BoxZ)
	assert.Equal(t, 1.0, c.Export.SimLength)
	assert.Equal(t, 300.0, c.Export.Temperature)
	assert.Equal(t, 10000, c.Export.WriteEvery)
	assert.Equal(t, 123456, c.Export.Seed)
	assert.Equal(t, 693.14, c.Export.BondK)
	assert.Equal(t, 1.21, c.Export.BondR0)
	assert.Equal(t, "Au", c.Export.SurfaceElement)
	assert.Equal(t, "none", c.Export.Compression)
	assert.Equal(t, *c, *Default())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("NANOCAR_EXPORT_TEMPERATURE", "450")
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 450.0, c.Export.Temperature)
}

func TestLoad_Invalid(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nanocar.yaml"), []byte("export:\n  timestep: 0\n  compression: rar\nlogLevel: loud\n"), 0644))
	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "export.timestep")
	assert.Contains(t, err.Error(), "logLevel")
	assert.Contains(t, err.Error(), "export.compression")

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}
