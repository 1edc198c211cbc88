/*
 * fragment.go, part of nanocar.
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

package align

import (
	"fmt"

	"github.com/rmera/nanocar"
)

//Mode tells which marker atoms a fragment uses.
type Mode int

const (
	DualSite   Mode = iota //Xc and Xa markers, with bond length enforcement
	SingleSite             //one X marker, legacy add-wheel behavior
)

func (m Mode) String() string {
	switch m {
	case DualSite:
		return "dual-site"
	case SingleSite:
		return "single-site"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

//Fragment is a wheel (or any other piece) ready to be attached to a chassis.
type Fragment struct {
	*nanocar.Molecule
	Mode        Mode
	Connection  int //Xc, dual-site only
	Alignment   int //Xa, dual-site only
	Placeholder int //X, single-site only
}

//NewFragment finds the marker atoms of mol for the given mode. Each required
//marker must appear exactly once, otherwise a *SiteError is returned.
//mol is not copied.
func NewFragment(mol *nanocar.Molecule, mode Mode) (*Fragment, error) {
	F := &Fragment{Molecule: mol, Mode: mode, Connection: -1, Alignment: -1, Placeholder: -1}
	one := func(symbol string) (int, error) {
		found := mol.Find(symbol)
		if len(found) != 1 {
			return -1, &SiteError{Fragment: mol.Name, Symbol: symbol, Found: len(found), deco: []string{"NewFragment"}}
		}
		return found[0], nil
	}
	var err error
	switch mode {
	case DualSite:
		if F.Connection, err = one(nanocar.ConnectionSymbol); err != nil {
			return nil, err
		}
		if F.Alignment, err = one(nanocar.AlignmentSymbol); err != nil {
			return nil, err
		}
	case SingleSite:
		if F.Placeholder, err = one(nanocar.PlaceholderSymbol); err != nil {
			return nil, err
		}
		if mol.Len() < 2 {
			return nil, &SiteError{Fragment: mol.Name, Symbol: "real atom", Found: 0, deco: []string{"NewFragment"}}
		}
	default:
		return nil, fmt.Errorf("unknown fragment mode %d", int(mode))
	}
	return F, nil
}

//DetectMode returns DualSite if mol has an Xc marker, SingleSite otherwise.
func DetectMode(mol *nanocar.Molecule) Mode {
	if len(mol.Find(nanocar.ConnectionSymbol)) > 0 {
		return DualSite
	}
	return SingleSite
}

//markers returns the indexes of the marker atoms, which are removed after the alignment.
func (F *Fragment) markers() []int {
	if F.Mode == SingleSite {
		return []int{F.Placeholder}
	}
	return []int{F.Connection, F.Alignment}
}

//direction returns the vector of the fragment that has to point along the
//outward vector of the chassis, and the index of the atom that goes onto the
//selected chassis atom.
func (F *Fragment) direction() ([3]float64, int) {
	var from, to int
	if F.Mode == SingleSite {
		from = F.Placeholder
		to = 0
		if to == from {
			to = 1
		}
	} else {
		from, to = F.Connection, F.Alignment
	}
	a, b := F.Coord(from), F.Coord(to)
	return [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}, from
}

//SiteError is returned when a fragment lacks a marker atom, or has too many.
type SiteError struct {
	Fragment string
	Symbol   string
	Found    int
	deco     []string
}

func (err *SiteError) Error() string {
	return fmt.Sprintf("fragment %q needs exactly one %s atom, found %d", err.Fragment, err.Symbol, err.Found)
}

func (err *SiteError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

func (err *SiteError) Critical() bool { return true }
