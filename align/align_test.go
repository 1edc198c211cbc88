/*
 * align_test.go
 *
 * Copyright 2021 Raul Mera Adasme <rauldotmeraatusachdotcl>
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
 */

package align

import (
	"errors"
	"math"
	"testing"

	"github.com/rmera/nanocar"
	v3 "github.com/rmera/nanocar/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mol(Te *testing.T, symbols []string, coords ...float64) *nanocar.Molecule {
	Te.Helper()
	c, err := v3.NewMatrix(coords)
	require.NoError(Te, err)
	m, err := nanocar.NewMolecule(symbols, c)
	require.NoError(Te, err)
	return m
}

//a two-carbon chassis with the selected atom 1 pointing along +x
func chassis(Te *testing.T) *nanocar.Molecule {
	m := mol(Te, []string{"C", "C"}, 0, 0, 0, 1.4, 0, 0)
	m.Bonds = nanocar.Connectivity{0, 1}
	return m
}

//a fragment pointing along +z, with its bonding carbon on the alignment site
func wheel(Te *testing.T) *Fragment {
	m := mol(Te, []string{"Xc", "C", "Xa", "H"},
		0, 0, 0,
		0, 0, 2,
		0, 0, 2,
		0, 0, 3.1)
	m.Name = "test wheel"
	F, err := NewFragment(m, DualSite)
	require.NoError(Te, err)
	return F
}

func assertVec(Te *testing.T, want, got [3]float64, tol float64) {
	Te.Helper()
	for i := range want {
		assert.InDelta(Te, want[i], got[i], tol, "component %d of %v, wanted %v", i, got, want)
	}
}

func TestEndToEnd(Te *testing.T) {
	ch := chassis(Te)
	site, err := NewSite(ch, []int{1})
	require.NoError(Te, err)
	assert.Equal(Te, Site{Selected: 1, Neighbor: 0}, site)
	F := wheel(Te)
	res, err := Align(ch, site, F, 1.5)
	require.NoError(Te, err)
	assertVec(Te, [3]float64{1.4, 0, 0}, res.Connection, 1e-6)
	assertVec(Te, [3]float64{2.9, 0, 0}, res.Alignment, 1e-6)
	require.Equal(Te, 2, res.Fragment.Len())
	assert.Equal(Te, []string{"C", "H"}, res.Fragment.Symbols())
	assertVec(Te, [3]float64{2.9, 0, 0}, res.Fragment.Coord(0), 1e-6)
	assertVec(Te, [3]float64{4.0, 0, 0}, res.Fragment.Coord(1), 1e-6)
	assert.Equal(Te, 0, res.BondSite)
	//inputs untouched
	assertVec(Te, [3]float64{1.4, 0, 0}, ch.Coord(1), 0)
	assertVec(Te, [3]float64{0, 0, 3.1}, F.Coord(3), 0)
	assert.Equal(Te, 4, F.Len())
}

func TestArbitraryOrientations(Te *testing.T) {
	dirs := [][3]float64{{1, 1, 1}, {0, 0, -1}, {0, 0, 1}, {-3, 0.2, 0.5}, {1e-3, 1, 0}}
	outs := [][3]float64{{0, 1, -1}, {0, 0, 1}, {0, 0, 1}, {2, -1, 0.1}, {0, -1, 0}}
	for k := range dirs {
		d, u := dirs[k], outs[k]
		ch := mol(Te, []string{"C", "N"}, 1, 2, 3, 1+u[0], 2+u[1], 3+u[2])
		ch.Bonds = nanocar.Connectivity{1, 0}
		site, err := NewSite(ch, []int{1})
		require.NoError(Te, err)
		fm := mol(Te, []string{"H", "Xc", "Xa", "O"},
			0.3, -0.2, 0.1,
			5, 5, 5,
			5+d[0], 5+d[1], 5+d[2],
			7, 5, 5)
		F, err := NewFragment(fm, DualSite)
		require.NoError(Te, err)
		for _, bond := range []float64{0, 1.2, 3.3} {
			res, err := Align(ch, site, F, bond)
			require.NoError(Te, err)
			sel := ch.Coord(1)
			assertVec(Te, sel, res.Connection, 1e-6)
			n := math.Sqrt(u[0]*u[0] + u[1]*u[1] + u[2]*u[2])
			want := [3]float64{sel[0] + bond*u[0]/n, sel[1] + bond*u[1]/n, sel[2] + bond*u[2]/n}
			assertVec(Te, want, res.Alignment, 1e-6)
			//rigid motion: distances among the real atoms are kept
			assert.InDelta(Te, F.Distance(0, 3), res.Fragment.Distance(0, 1), 1e-9)
			assert.Equal(Te, -1, res.BondSite)
		}
	}
}

func TestSingleSite(Te *testing.T) {
	ch := chassis(Te)
	site, err := NewSite(ch, []int{1})
	require.NoError(Te, err)
	fm := mol(Te, []string{"C", "X", "H"}, 0, 1.5, 0, 0, 0, 0, 0, 2.6, 0)
	F, err := NewFragment(fm, SingleSite)
	require.NoError(Te, err)
	res, err := Align(ch, site, F, 0)
	require.NoError(Te, err)
	assertVec(Te, [3]float64{1.4, 0, 0}, res.Connection, 1e-6)
	assert.Equal(Te, []string{"C", "H"}, res.Fragment.Symbols())
	assertVec(Te, [3]float64{2.9, 0, 0}, res.Fragment.Coord(0), 1e-6)
	assertVec(Te, [3]float64{4.0, 0, 0}, res.Fragment.Coord(1), 1e-6)
}

func TestSelectionErrors(Te *testing.T) {
	ch := chassis(Te)
	for _, sel := range [][]int{nil, {0, 1}, {5}} {
		_, err := NewSite(ch, sel)
		var serr *SelectionError
		require.True(Te, errors.As(err, &serr), "selection %v", sel)
		assert.False(Te, serr.Critical())
	}
	lonely := mol(Te, []string{"C", "C"}, 0, 0, 0, 1, 0, 0)
	_, err := NewSite(lonely, []int{0})
	assert.Error(Te, err)
	assert.Equal(Te, []int{0, 2}, Selected([]bool{true, false, true}))
}

func TestSiteErrors(Te *testing.T) {
	noXa := mol(Te, []string{"Xc", "C"}, 0, 0, 0, 0, 0, 1)
	_, err := NewFragment(noXa, DualSite)
	var serr *SiteError
	require.True(Te, errors.As(err, &serr))
	assert.Equal(Te, nanocar.AlignmentSymbol, serr.Symbol)
	twoX := mol(Te, []string{"X", "C", "X"}, 0, 0, 0, 0, 0, 1, 0, 0, 2)
	_, err = NewFragment(twoX, SingleSite)
	assert.True(Te, errors.As(err, &serr))
	assert.Equal(Te, 2, serr.Found)
	assert.Equal(Te, DualSite, DetectMode(wheel(Te).Molecule))
	assert.Equal(Te, SingleSite, DetectMode(twoX))
}

func TestNegativeBond(Te *testing.T) {
	ch := chassis(Te)
	site, _ := NewSite(ch, []int{1})
	_, err := Align(ch, site, wheel(Te), -1)
	var aerr *Error
	require.True(Te, errors.As(err, &aerr))
	assert.True(Te, aerr.Critical())
	assert.Equal(Te, []string{"AlignOpts", "Align"}, aerr.deco)
}
