/*
 * main_test.go, part of nanocar.
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

package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/nanocar"
	"github.com/rmera/nanocar/assembly"
	"github.com/rmera/nanocar/lammps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//hostInput returns the JSON the host would send for benzene with the given atoms selected.
func hostInput(Te *testing.T, opts map[string]any, selected ...int) string {
	Te.Helper()
	mol, err := assembly.DefaultCatalog().Molecule(assembly.Chassis, "benzene")
	require.NoError(Te, err)
	numbers := make([]int, mol.Len())
	coords := make([]float64, 0, 3*mol.Len())
	sel := make([]bool, mol.Len())
	for i, a := range mol.Atoms {
		numbers[i], err = nanocar.AtomicNumber(a.Symbol)
		require.NoError(Te, err)
		c := mol.Coord(i)
		coords = append(coords, c[:]...)
	}
	for _, s := range selected {
		sel[s] = true
	}
	doc := map[string]any{"cjson": map[string]any{
		"atoms": map[string]any{
			"elements": map[string]any{"number": numbers},
			"coords":   map[string]any{"3d": coords},
			"selected": sel,
		},
	}}
	for k, v := range opts {
		doc[k] = v
	}
	b, err := json.Marshal(doc)
	require.NoError(Te, err)
	return string(b)
}

func runCmd(Te *testing.T, stdin string, args ...string) (int, string) {
	Te.Helper()
	var out, errs strings.Builder
	code := run(args, strings.NewReader(stdin), &out, &errs)
	Te.Log(errs.String())
	return code, out.String()
}

func TestMetadata(Te *testing.T) {
	dir := Te.TempDir()
	code, out := runCmd(Te, "", "connect-wheel", "--display-name", "--menu-path", "--config-dir", dir)
	assert.Equal(Te, 0, code)
	assert.Equal(Te, "Connect Wheel\n&Build|Nanocar\n", out)
	code, out = runCmd(Te, "", "build", "--menu-path", "--config-dir", dir)
	assert.Equal(Te, 0, code)
	assert.Equal(Te, "&Build\n", out)

	code, out = runCmd(Te, "", "connect-wheel", "--print-options", "--config-dir", dir)
	require.Equal(Te, 0, code)
	var menu struct {
		UserOptions map[string]map[string]any `json:"userOptions"`
	}
	require.NoError(Te, json.Unmarshal([]byte(out), &menu))
	assert.Equal(Te, "methyl", menu.UserOptions["wheel"]["default"])
	assert.Equal(Te, []any{"C60", "methyl"}, menu.UserOptions["wheel"]["values"])
	assert.Equal(Te, 1.5, menu.UserOptions["d"]["default"])

	code, _ = runCmd(Te, "", "fly", "--display-name")
	assert.Equal(Te, 2, code)
	code, _ = runCmd(Te, "")
	assert.Equal(Te, 2, code)
}

func TestConnectWheel(Te *testing.T) {
	dir := Te.TempDir()
	in := hostInput(Te, map[string]any{"wheel": "methyl", "append": true, "d": 1.5, "refresh_wheel_list": true}, 6)
	code, out := runCmd(Te, in, "connect-wheel", "--run-workflow", "--config-dir", dir)
	require.Equal(Te, 0, code)
	var res map[string]any
	require.NoError(Te, json.Unmarshal([]byte(out), &res))
	assert.Equal(Te, true, res["append"])
	assert.Equal(Te, "xyz", res["moleculeFormat"])
	assert.Contains(Te, res, "atoms")
	wheel, err := nanocar.XYZRead(strings.NewReader(res["xyz"].(string)))
	require.NoError(Te, err)
	assert.Equal(Te, []string{"C", "H", "H", "H"}, wheel.Symbols())

	L, err := assembly.LoadLedger(filepath.Join(dir, "nanocar_ledger.yaml"))
	require.NoError(Te, err)
	require.Len(Te, L.Wheels, 1)
	assert.Equal(Te, [2]int{7, 13}, L.Wheels[0].Bond)

	//two atoms selected: no structure, no new ledger entry
	in = hostInput(Te, map[string]any{"wheel": "methyl", "append": false}, 0, 6)
	code, out = runCmd(Te, in, "connect-wheel", "--run-workflow", "--config-dir", dir)
	require.Equal(Te, 0, code)
	res = nil
	require.NoError(Te, json.Unmarshal([]byte(out), &res))
	assert.Nil(Te, res["xyz"])
	L, err = assembly.LoadLedger(filepath.Join(dir, "nanocar_ledger.yaml"))
	require.NoError(Te, err)
	assert.Len(Te, L.Wheels, 1)

	code, _ = runCmd(Te, "{oops", "connect-wheel", "--run-workflow", "--config-dir", dir)
	assert.Equal(Te, 1, code)
}

func TestAddWheelLegacy(Te *testing.T) {
	in := hostInput(Te, map[string]any{"wheel": "methyl-legacy", "append": "False"}, 6)
	code, out := runCmd(Te, in, "add-wheel", "--run-workflow", "--config-dir", Te.TempDir())
	require.Equal(Te, 0, code)
	var res map[string]any
	require.NoError(Te, json.Unmarshal([]byte(out), &res))
	assert.Equal(Te, false, res["append"])
	mol, err := nanocar.XYZRead(strings.NewReader(res["xyz"].(string)))
	require.NoError(Te, err)
	assert.Equal(Te, 16, mol.Len())
}

func TestAddChassis(Te *testing.T) {
	code, out := runCmd(Te, `{"chassis": "benzene", "center-x": 1, "center-y": 0, "center-z": 0}`, "add-chassis", "--run-command", "--config-dir", Te.TempDir())
	require.Equal(Te, 0, code)
	var res map[string]any
	require.NoError(Te, json.Unmarshal([]byte(out), &res))
	assert.Equal(Te, true, res["append"])
	mol, err := nanocar.XYZRead(strings.NewReader(res["xyz"].(string)))
	require.NoError(Te, err)
	assert.InDelta(Te, 1.0, mol.Centroid()[0], 1e-5)
}

func TestSurfaceAndLammps(Te *testing.T) {
	dir := Te.TempDir()
	code, out := runCmd(Te, hostInput(Te, nil, 6, 7, 8), "surface", "--run-command", "--config-dir", dir)
	require.Equal(Te, 0, code)
	assert.Equal(Te, "null\n", out)
	L, err := assembly.LoadLedger(filepath.Join(dir, "nanocar_ledger.yaml"))
	require.NoError(Te, err)
	assert.Equal(Te, [2]int{7, 9}, L.Surface.IDs)

	outDir := Te.TempDir()
	in := hostInput(Te, map[string]any{"box_x": 2.0, "box_y": 2.0, "box_z": 3.0, "timestep": 1.0, "sim_length": 1.0, "dir": outDir})
	code, out = runCmd(Te, in, "lammps-setup", "--run-command", "--config-dir", dir)
	require.Equal(Te, 0, code)
	assert.Equal(Te, "null\n", out)
	script, err := os.ReadFile(filepath.Join(outDir, lammps.InputFile))
	require.NoError(Te, err)
	assert.Contains(Te, string(script), "group           surface               id 7:9\n")
	assert.FileExists(Te, filepath.Join(outDir, lammps.DataFile))
}
