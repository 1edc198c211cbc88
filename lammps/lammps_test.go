/*
 * lammps_test.go, part of nanocar.
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

package lammps

import (
	"bufio"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rmera/nanocar"
	"github.com/rmera/nanocar/ff"
	v3 "github.com/rmera/nanocar/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMol(Te *testing.T) *nanocar.Molecule {
	c, err := v3.NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12})
	require.NoError(Te, err)
	m, err := nanocar.NewMolecule([]string{"C", "H", "Au", "Au"}, c)
	require.NoError(Te, err)
	return m.WithCell(nanocar.Cell{A: 20, B: 25.5, C: 30})
}

func TestDataRoundTrip(Te *testing.T) {
	mol := testMol(Te)
	uff, err := ff.UFF()
	require.NoError(Te, err)
	types := ff.AtomTypes(mol.Symbols())
	params, err := uff.Lookup(types.Symbols())
	require.NoError(Te, err)
	var b strings.Builder
	require.NoError(Te, WriteData(&b, mol, types, params, nil))
	out := b.String()
	assert.True(Te, strings.HasPrefix(out, "Created by Avogadro Nanocar Builder\n\n"))
	assert.Contains(Te, out, "         4 atoms\n")
	assert.Contains(Te, out, "         3 atom types\n")
	assert.Contains(Te, out, "         0.00000   25.50000   ylo yhi\n")
	assert.Contains(Te, out, "\nMasses\n\n    1    196.96657 # Au\n")
	assert.Contains(Te, out, "         1     0     2   0.00000       1.00000       2.00000       3.00000\n")
	D, err := ReadDataCounts(bufio.NewReader(strings.NewReader(out)))
	require.NoError(Te, err)
	want := &DataCounts{Atoms: 4, AtomTypes: 3, Lo: [3]float64{}, Hi: [3]float64{20, 25.5, 30}, Rows: 4}
	if diff := cmp.Diff(want, D); diff != "" {
		Te.Errorf("data file did not round trip (-want +got):\n%s", diff)
	}
}

func TestDataErrors(Te *testing.T) {
	mol := testMol(Te)
	types := ff.AtomTypes(mol.Symbols())
	err := WriteData(&strings.Builder{}, mol, types, map[string]ff.Params{"C": {}, "H": {}}, nil)
	assert.Error(Te, err)
	mol.Cell = nil
	err = WriteData(&strings.Builder{}, mol, types, nil, nil)
	assert.Error(Te, err)
}

func TestPartition(Te *testing.T) {
	wheels := []Range{{2, 11}, {12, 21}}
	g, err := Partition(40, [2]int{31, 40}, wheels, true)
	require.NoError(Te, err)
	want := []Group{
		{SurfaceGroup, Range{31, 40}},
		{NanocarGroup, Range{1, 30}},
		{"wheel1", Range{2, 11}},
		{"wheel2", Range{12, 21}},
		{ChassisGroup, Range{1, 1}},
		{ChassisGroup, Range{22, 30}},
	}
	if diff := cmp.Diff(want, g); diff != "" {
		Te.Errorf("wrong partition (-want +got):\n%s", diff)
	}
	assert.Equal(Te, []string{"wheel1", "wheel2", "chassis"}, RigidBodies(g, true))
	bodies := Bodies(40, g, true)
	assert.Equal(Te, 3, bodies[0])
	assert.Equal(Te, 1, bodies[1])
	assert.Equal(Te, 2, bodies[20])
	assert.Equal(Te, 3, bodies[29])
	assert.Equal(Te, 0, bodies[30])

	//surface first
	g, err = Partition(40, [2]int{1, 10}, nil, false)
	require.NoError(Te, err)
	assert.Equal(Te, []Group{{SurfaceGroup, Range{1, 10}}, {NanocarGroup, Range{11, 40}}}, g)
	//no surface at all
	g, err = Partition(5, [2]int{}, nil, false)
	require.NoError(Te, err)
	assert.Equal(Te, []Group{{NanocarGroup, Range{1, 5}}}, g)

	_, err = Partition(10, [2]int{1, 10}, nil, false)
	assert.Error(Te, err)
	_, err = Partition(10, [2]int{5, 12}, nil, false)
	assert.Error(Te, err)
	_, err = Partition(40, [2]int{31, 40}, []Range{{25, 35}}, true)
	var lerr *Error
	require.True(Te, errors.As(err, &lerr))
	lerr.Decorate("Export")
	assert.Equal(Te, []string{"Partition", "Export"}, lerr.deco)
}

func TestInput(Te *testing.T) {
	types := ff.AtomTypes([]string{"Au", "C", "H"})
	pairs := []ff.Pair{{I: 1, J: 2, Epsilon: 0.064, Sigma: 3.2}, {I: 1, J: 3, Epsilon: 0.0414, Sigma: 2.7527}}
	p := DefaultParameters()
	p.Groups = []Group{{SurfaceGroup, Range{31, 40}}, {NanocarGroup, Range{1, 30}}}
	var b strings.Builder
	require.NoError(Te, WriteInput(&b, types, pairs, p))
	out := b.String()
	assert.True(Te, strings.HasPrefix(out, "\nunits           real\natom_style      full\nboundary        p p p\nread_data       data.nanocar\n"))
	assert.Contains(Te, out, "group           surface               id 31:40\n")
	assert.Contains(Te, out, "\npair_style      lj/cut 13.0\npair_modify     tail yes mix arithmetic\npair_coeff      * * 0 0\npair_coeff      1 2 0.064 3.2\npair_coeff      1 3 0.0414 2.7527\n")
	assert.Contains(Te, out, "variable        T equal 300\n")
	assert.Contains(Te, out, "timestep        1.0\n")
	assert.Contains(Te, out, "dump_modify     1 element Au C H\n")
	assert.Contains(Te, out, "fix             RIG1 nanocar rigid/nvt single temp $T $T 100\nvelocity        nanocar zero linear rigid RIG1\nrun             1000000\nunfix           RIG1\n")
	assert.NotContains(Te, out, "bond_style")
	assert.NotContains(Te, out, "RIG2")
}

func TestInputMultibody(Te *testing.T) {
	types := ff.AtomTypes([]string{"Au", "C"})
	p := DefaultParameters()
	p.Multibody = true
	p.SimLength = 0.5
	p.Timestep = 2
	var err error
	p.Groups, err = Partition(40, [2]int{31, 40}, []Range{{2, 11}, {12, 21}}, true)
	require.NoError(Te, err)
	p.Bonds = [][2]int{{1, 2}, {1, 12}}
	var b strings.Builder
	require.NoError(Te, WriteInput(&b, types, nil, p))
	out := b.String()
	assert.Contains(Te, out, "read_data       data.nanocar extra/bond/types 1 extra/bond/per/atom 1\n")
	assert.Contains(Te, out, "\nbond_style      harmonic\ncreate_bonds    single/bond  1 1 2\ncreate_bonds    single/bond  1 1 12\nbond_coeff      1 693.14 1.21 # C_1 C_1\n")
	assert.Contains(Te, out, "group           chassis               id 22:30\n")
	assert.Contains(Te, out, "fix             RIG3 chassis rigid/nvt single temp $T $T 100\n")
	assert.Contains(Te, out, "run             250000\n")
	assert.Equal(Te, 1, strings.Count(out, "fix             RIG3"))
	assert.Contains(Te, out, "unfix           RIG3\n")
}

func TestSteps(Te *testing.T) {
	p := DefaultParameters()
	p.SimLength = 0.3
	p.Timestep = 0.1
	//0.3/0.1*1e6 is 2999999.9999999995 in floating point
	assert.Equal(Te, 3000000, p.Steps())
}
