/*
 * cjson_test.go, part of nanocar.
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

package cjson

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rmera/nanocar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hostInput = `{"cjson": {"chemicalJson": 1,
  "atoms": {"elements": {"number": [6, 1, 8]},
            "coords": {"3d": [0, 0, 0, 1.09, 0, 0, -1.2, 0, 0]},
            "selected": [false, true, false]},
  "bonds": {"connections": {"index": [0, 1, 0, 2]}, "order": [1, 2]}},
 "wheel": "C60", "append": false, "d": 1.75, "refresh_wheel_list": null}`

func TestDecodeInput(Te *testing.T) {
	in, jerr := DecodeInput(strings.NewReader(hostInput))
	require.Nil(Te, jerr)
	require.NotNil(Te, in.CJSON)
	mol, err := in.CJSON.Molecule()
	require.NoError(Te, err)
	assert.Equal(Te, []string{"C", "H", "O"}, mol.Symbols())
	assert.Equal(Te, nanocar.Connectivity{0, 1, 0, 2}, mol.Bonds)
	assert.Equal(Te, [3]float64{-1.2, 0, 0}, mol.Coord(2))
	assert.Equal(Te, []int{1}, in.CJSON.Selected())

	w, err := in.String("wheel", "methyl")
	require.NoError(Te, err)
	assert.Equal(Te, "C60", w)
	d, err := in.Float("d", 1.5)
	require.NoError(Te, err)
	assert.Equal(Te, 1.75, d)
	a, err := in.Bool("append", true)
	require.NoError(Te, err)
	assert.False(Te, a)
	r, err := in.Bool("refresh_wheel_list", true)
	require.NoError(Te, err)
	assert.True(Te, r)
	_, err = in.Float("wheel", 0)
	assert.Error(Te, err)

	_, jerr = DecodeInput(strings.NewReader("{not json"))
	require.NotNil(Te, jerr)
	assert.True(Te, jerr.InOptions)
}

func TestBadMolecule(Te *testing.T) {
	in, jerr := DecodeInput(strings.NewReader(`{"cjson": {"atoms": {"elements": {"number": [6]}, "coords": {"3d": [0, 0]}}}}`))
	require.Nil(Te, jerr)
	_, err := in.CJSON.Molecule()
	assert.Error(Te, err)
	in, _ = DecodeInput(strings.NewReader(`{"cjson": {"atoms": {"elements": {"number": [6]}, "coords": {"3d": [0, 0, 0]}}, "bonds": {"connections": {"index": [0, 3]}}}}`))
	_, err = in.CJSON.Molecule()
	assert.Error(Te, err)
}

func TestResult(Te *testing.T) {
	in, jerr := DecodeInput(strings.NewReader(hostInput))
	require.Nil(Te, jerr)
	mol, err := in.CJSON.Molecule()
	require.NoError(Te, err)
	R, err := NewResult(in.CJSON, true, mol)
	require.NoError(Te, err)
	var b strings.Builder
	require.Nil(Te, R.Send(&b))
	var got map[string]any
	require.NoError(Te, json.Unmarshal([]byte(b.String()), &got))
	assert.Equal(Te, true, got["append"])
	assert.Equal(Te, "xyz", got["moleculeFormat"])
	assert.Equal(Te, 1.0, got["chemicalJson"])
	assert.Contains(Te, got, "atoms")
	xyz, ok := got["xyz"].(string)
	require.True(Te, ok)
	back, err := nanocar.XYZRead(strings.NewReader(xyz))
	require.NoError(Te, err)
	assert.Equal(Te, mol.Symbols(), back.Symbols())

	//nothing built
	R, err = NewResult(nil, false, nil)
	require.NoError(Te, err)
	data, err := json.Marshal(R)
	require.NoError(Te, err)
	assert.JSONEq(Te, `{"append": false, "moleculeFormat": "xyz", "xyz": null}`, string(data))
}

func TestMenu(Te *testing.T) {
	M := Menu{
		"wheel":  Choice("Wheel", "C60", []string{"methyl", "C60"}),
		"append": Check("Append", true),
		"d":      Number("Bond Distance", 1.5, 2, "Å"),
		"dir":    Path("Save directory", "/tmp"),
	}
	data, err := json.Marshal(M)
	require.NoError(Te, err)
	want := `{"userOptions": {
	  "wheel": {"label": "Wheel", "type": "stringList", "default": "C60", "values": ["methyl", "C60"]},
	  "append": {"label": "Append", "type": "boolean", "default": true},
	  "d": {"label": "Bond Distance", "type": "float", "default": 1.5, "precision": 2, "suffix": "Å"},
	  "dir": {"label": "Save directory", "type": "filePath", "default": "/tmp"}}}`
	assert.JSONEq(Te, want, string(data))
	if diff := cmp.Diff("methyl", Choice("Wheel", "nope", []string{"methyl"}).Default); diff != "" {
		Te.Errorf("wrong default (-want +got):\n%s", diff)
	}
}

func TestErrorMarshal(Te *testing.T) {
	jerr := NewError("postprocess", "Result.Send", assert.AnError)
	var got map[string]any
	require.NoError(Te, json.Unmarshal(jerr.Marshal(), &got))
	assert.Equal(Te, true, got["IsError"])
	assert.Equal(Te, true, got["InPostProcess"])
	assert.Equal(Te, assert.AnError.Error(), got["Message"])
	assert.Equal(Te, []string{"main"}, jerr.Decorate("main"))
}
