/*
 * ledger.go, part of nanocar.
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

package assembly

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/google/uuid"
	"github.com/rmera/nanocar"
	"github.com/rmera/nanocar/lammps"
	"gopkg.in/yaml.v3"
)

// Placement records one wheel attached in a session. Atom ids are 1-based.
type Placement struct {
	Name   string `yaml:"name"`
	Start  int    `yaml:"start"`
	NAtoms int    `yaml:"n_atoms"`
	Bond   [2]int `yaml:"bond,flow"` // chassis atom, wheel atom
}

// Range returns the atom ids of the wheel.
func (P Placement) Range() lammps.Range {
	return lammps.Range{Start: P.Start, End: P.Start + P.NAtoms - 1}
}

// Surface records the last substrate built: its size in A and its atom ids.
type Surface struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	IDs [2]int  `yaml:"id,flow"`
}

// Ledger keeps track, between runs, of the wheels attached and the substrate,
// so the export can build the rigid-body groups.
type Ledger struct {
	ID      string      `yaml:"id"`
	Wheels  []Placement `yaml:"wheels"`
	Surface Surface     `yaml:"surface"`
}

// NewLedger returns an empty ledger with a new session id.
func NewLedger() *Ledger {
	return &Ledger{ID: uuid.NewString()}
}

// LoadLedger reads the ledger at path. If the file doesn't exist, a new,
// empty ledger is returned.
func LoadLedger(path string) (*Ledger, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	L := new(Ledger)
	if err := yaml.Unmarshal(data, L); err != nil {
		return nil, fmt.Errorf("decoding ledger %s: %w", path, err)
	}
	if L.ID == "" {
		L.ID = uuid.NewString()
	}
	return L, nil
}

// AddWheel records a placement. With refresh, the previous placements are
// forgotten and a new session starts.
func (L *Ledger) AddWheel(p Placement, refresh bool) {
	if refresh {
		L.Wheels = nil
		L.ID = uuid.NewString()
	}
	L.Wheels = append(L.Wheels, p)
}

// SurfaceFrom returns the surface made of the selected atoms of mol, which must be
// a contiguous block. X and Y are the extents of the block.
func SurfaceFrom(mol *nanocar.Molecule, selected []int) (Surface, error) {
	if len(selected) == 0 {
		return Surface{}, fmt.Errorf("no surface atoms selected")
	}
	sel := slices.Sorted(slices.Values(selected))
	for k, i := range sel {
		if i < 0 || i >= mol.Len() {
			return Surface{}, fmt.Errorf("surface atom %d out of range for %d atoms", i, mol.Len())
		}
		if k > 0 && i != sel[k-1]+1 {
			return Surface{}, fmt.Errorf("surface atoms must be contiguous, gap after atom %d", sel[k-1])
		}
	}
	lo := mol.Coord(sel[0])
	hi := lo
	for _, i := range sel[1:] {
		c := mol.Coord(i)
		for j := 0; j < 2; j++ {
			lo[j] = min(lo[j], c[j])
			hi[j] = max(hi[j], c[j])
		}
	}
	return Surface{
		X:   hi[0] - lo[0],
		Y:   hi[1] - lo[1],
		IDs: [2]int{sel[0] + 1, sel[len(sel)-1] + 1},
	}, nil
}

// SetSurface records the substrate.
func (L *Ledger) SetSurface(s Surface) {
	L.Surface = s
}

// WheelRanges returns the atom ids of every recorded wheel, in order.
func (L *Ledger) WheelRanges() []lammps.Range {
	ret := make([]lammps.Range, 0, len(L.Wheels))
	for _, w := range L.Wheels {
		ret = append(ret, w.Range())
	}
	return ret
}

// Bonds returns the chassis-wheel bonds of every recorded wheel.
func (L *Ledger) Bonds() [][2]int {
	ret := make([][2]int, 0, len(L.Wheels))
	for _, w := range L.Wheels {
		ret = append(ret, w.Bond)
	}
	return ret
}

// Save writes the ledger to path, through a temporary file in the same directory.
func (L *Ledger) Save(path string) error {
	data, err := yaml.Marshal(L)
	if err != nil {
		return fmt.Errorf("encoding ledger: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".ledger-*")
	if err != nil {
		return fmt.Errorf("saving ledger %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("saving ledger %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("saving ledger %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("saving ledger %s: %w", path, err)
	}
	return nil
}
