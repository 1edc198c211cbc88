/*
 * catalog.go, part of nanocar.
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
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/rmera/nanocar"
	"github.com/rmera/nanocar/align"
	"github.com/rmera/nanocar/catalog"
)

// Kind is a section of the catalog.
type Kind string

const (
	Wheel   Kind = "wheel"
	Chassis Kind = "chassis"
)

// Catalog gives access to the wheel and chassis XYZ files under a file system.
type Catalog struct {
	fsys fs.FS
}

// NewCatalog returns a catalog reading from fsys, which must have
// a wheel and a chassis directory.
func NewCatalog(fsys fs.FS) *Catalog {
	return &Catalog{fsys: fsys}
}

// DefaultCatalog returns the catalog embedded in the program.
func DefaultCatalog() *Catalog {
	return NewCatalog(catalog.FS())
}

// OpenCatalog returns the catalog in dir, or the embedded one if dir is empty.
func OpenCatalog(dir string) (*Catalog, error) {
	if dir == "" {
		return DefaultCatalog(), nil
	}
	st, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening catalog %s: %w", dir, err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("catalog %s is not a directory", dir)
	}
	return NewCatalog(os.DirFS(dir)), nil
}

// Names returns the sorted names of the entries of the given kind.
func (C *Catalog) Names(kind Kind) ([]string, error) {
	files, err := fs.Glob(C.fsys, path.Join(string(kind), "*.xyz"))
	if err != nil {
		return nil, fmt.Errorf("listing %s catalog: %w", kind, err)
	}
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, strings.TrimSuffix(path.Base(f), ".xyz"))
	}
	slices.Sort(names)
	return names, nil
}

// Wheels returns the sorted names of the wheels with the markers of the given mode.
func (C *Catalog) Wheels(mode align.Mode) ([]string, error) {
	names, err := C.Names(Wheel)
	if err != nil {
		return nil, err
	}
	ret := names[:0]
	for _, n := range names {
		mol, err := C.Molecule(Wheel, n)
		if err != nil {
			return nil, err
		}
		if align.DetectMode(mol) == mode {
			ret = append(ret, n)
		}
	}
	return ret, nil
}

// Molecule reads the entry name of the given kind.
func (C *Catalog) Molecule(kind Kind, name string) (*nanocar.Molecule, error) {
	p := path.Join(string(kind), name+".xyz")
	f, err := C.fsys.Open(p)
	if err != nil {
		return nil, fmt.Errorf("reading %s %q from %s: %w", kind, name, p, err)
	}
	defer f.Close()
	mol, err := nanocar.XYZRead(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s %q from %s: %w", kind, name, p, err)
	}
	mol.Name = name
	return mol, nil
}

// Fragment reads the wheel name. The mode is taken from its marker atoms.
func (C *Catalog) Fragment(name string) (*align.Fragment, error) {
	mol, err := C.Molecule(Wheel, name)
	if err != nil {
		return nil, err
	}
	return align.NewFragment(mol, align.DetectMode(mol))
}

// FragmentAs reads the wheel name and checks that it has the markers for mode.
func (C *Catalog) FragmentAs(name string, mode align.Mode) (*align.Fragment, error) {
	mol, err := C.Molecule(Wheel, name)
	if err != nil {
		return nil, err
	}
	return align.NewFragment(mol, mode)
}
