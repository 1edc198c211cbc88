/*
 * molecule.go, part of nanocar.
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

package nanocar

import (
	"fmt"
	"slices"

	v3 "github.com/rmera/nanocar/v3"
	"gonum.org/v1/gonum/floats"
)

//Atom contains the per-atom data except for the coordinates, which are kept in a matrix.
type Atom struct {
	Symbol string
	Name   string //free label, XYZ files leave it empty
	Index  int    //0-based position in the molecule, kept current by the Molecule methods
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	ret := *A
	return &ret
}

//Cell is an orthogonal unit cell. All angles are 90 degrees.
type Cell struct {
	A, B, C float64
}

//Connectivity is a flat list of bonded atom indexes: bond i joins
//the entries 2i and 2i+1.
type Connectivity []int

//Len returns the number of bonds.
func (C Connectivity) Len() int {
	return len(C) / 2
}

//Bond returns the two atoms joined by the bond i.
func (C Connectivity) Bond(i int) (int, int) {
	return C[2*i], C[2*i+1]
}

//Partner returns the atom bonded to atom i. Only the first occurrence of i in the
//list is considered: if found at an even position the next entry is the partner,
//otherwise the previous one.
func (C Connectivity) Partner(i int) (int, error) {
	pos := slices.Index(C, i)
	if pos < 0 {
		err := new(CError)
		err.msg = fmt.Sprintf("Atom %d has no bonded partner in the connectivity list", i)
		err.Decorate("Partner")
		return -1, err
	}
	if pos%2 == 0 {
		if pos+1 >= len(C) {
			return -1, &CError{msg: fmt.Sprintf("Connectivity list has an odd number of entries (%d)", len(C)), deco: []string{"Partner"}}
		}
		return C[pos+1], nil
	}
	return C[pos-1], nil
}

//Check returns an error if the list is not made of pairs, or if any index is
//not a valid position in a molecule of natoms atoms.
func (C Connectivity) Check(natoms int) error {
	if len(C)%2 != 0 {
		return &CError{msg: fmt.Sprintf("Connectivity list has an odd number of entries (%d)", len(C)), deco: []string{"Check"}}
	}
	for k, v := range C {
		if v < 0 || v >= natoms {
			return &CError{msg: fmt.Sprintf("Connectivity entry %d (atom %d) out of range for %d atoms", k, v, natoms), deco: []string{"Check"}}
		}
	}
	return nil
}

/**Type Molecule**/

//Molecule contains the atoms, coordinates, optional cell and optional bonds of
//a structure. Methods that change the geometry or the atom list return a new Molecule
//and leave the receiver untouched.
type Molecule struct {
	Name   string
	Atoms  []*Atom
	Coords *v3.Matrix
	Cell   *Cell
	Bonds  Connectivity
}

//NewMolecule makes a molecule with the given element symbols and coordinates,
//and checks that both match.
func NewMolecule(symbols []string, coords *v3.Matrix) (*Molecule, error) {
	if coords == nil {
		return nil, &CError{msg: "Supplied a nil coordinate matrix", deco: []string{"NewMolecule"}}
	}
	M := new(Molecule)
	M.Atoms = make([]*Atom, len(symbols))
	for i, s := range symbols {
		M.Atoms[i] = &Atom{Symbol: s, Index: i}
	}
	M.Coords = coords
	if err := M.Corrupted(); err != nil {
		return nil, errDecorate(err, "NewMolecule")
	}
	return M, nil
}

//Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int {
	return len(M.Atoms)
}

//Atom returns the Atom i. Panics if out of range.
func (M *Molecule) Atom(i int) *Atom {
	if i >= M.Len() || i < 0 {
		panic(fmt.Sprintf("Molecule: Requested Atom %d out of bounds", i))
	}
	return M.Atoms[i]
}

//Coord returns the coordinates of atom i.
func (M *Molecule) Coord(i int) [3]float64 {
	return M.Coords.Vec(i)
}

//Symbols returns the element symbols of all atoms, in order.
func (M *Molecule) Symbols() []string {
	ret := make([]string, M.Len())
	for i, a := range M.Atoms {
		ret[i] = a.Symbol
	}
	return ret
}

//Find returns the indexes of all atoms with the given symbol.
func (M *Molecule) Find(symbol string) []int {
	var ret []int
	for i, a := range M.Atoms {
		if a.Symbol == symbol {
			ret = append(ret, i)
		}
	}
	return ret
}

//Distance returns the distance between atoms i and j.
func (M *Molecule) Distance(i, j int) float64 {
	a := M.Coord(i)
	b := M.Coord(j)
	return floats.Distance(a[:], b[:], 2)
}

//Corrupted checks whether the molecule is corrupted, i.e. the
//coordinates don't match the number of atoms, or the connectivity
//refers to atoms that don't exist.
func (M *Molecule) Corrupted() error {
	if M.Coords == nil && M.Len() == 0 {
		return nil
	}
	if M.Coords == nil || M.Len() != M.Coords.NVecs() {
		n := 0
		if M.Coords != nil {
			n = M.Coords.NVecs()
		}
		return &CError{msg: fmt.Sprintf("Inconsistent coordinates/atoms: Atoms %d, coords: %d", M.Len(), n), deco: []string{"Corrupted"}}
	}
	if err := M.Bonds.Check(M.Len()); err != nil {
		return errDecorate(err, "Corrupted")
	}
	return nil
}

//Copy returns a deep copy of the molecule.
func (M *Molecule) Copy() *Molecule {
	if err := M.Corrupted(); err != nil {
		panic(err.Error()) //copying a corrupted molecule means that the program is wrong.
	}
	mol := new(Molecule)
	mol.Name = M.Name
	mol.Atoms = make([]*Atom, M.Len())
	for key, val := range M.Atoms {
		mol.Atoms[key] = val.Copy()
	}
	if M.Coords != nil {
		mol.Coords = M.Coords.Clone()
	} else {
		mol.Coords = v3.Zeros(0)
	}
	if M.Cell != nil {
		c := *M.Cell
		mol.Cell = &c
	}
	mol.Bonds = slices.Clone(M.Bonds)
	return mol
}

//Translated returns a copy of the molecule displaced by v.
func (M *Molecule) Translated(v [3]float64) *Molecule {
	mol := M.Copy()
	mol.Coords.AddVec(mol.Coords, v)
	return mol
}

//Centroid returns the geometric center of the molecule.
func (M *Molecule) Centroid() [3]float64 {
	return M.Coords.Centroid()
}

//Centered returns a copy of the molecule translated so its geometric center
//is at point.
func (M *Molecule) Centered(point [3]float64) *Molecule {
	c := M.Centroid()
	return M.Translated([3]float64{point[0] - c[0], point[1] - c[1], point[2] - c[2]})
}

//WithCell returns a copy of the molecule with the given cell.
func (M *Molecule) WithCell(c Cell) *Molecule {
	mol := M.Copy()
	mol.Cell = &c
	return mol
}

//Without returns a copy of the molecule without the atoms in the list. The relative
//order of the remaining atoms is kept. Bonds involving a removed atom are dropped, the
//rest are renumbered.
func (M *Molecule) Without(indexes ...int) *Molecule {
	del := make(map[int]bool, len(indexes))
	for _, v := range indexes {
		if v < 0 || v >= M.Len() {
			panic(fmt.Sprintf("Tried to delete Atom %d out of bounds", v))
		}
		del[v] = true
	}
	newpos := make([]int, M.Len())
	keep := make([]int, 0, M.Len()-len(del))
	for i := range M.Atoms {
		if del[i] {
			newpos[i] = -1
			continue
		}
		newpos[i] = len(keep)
		keep = append(keep, i)
	}
	mol := new(Molecule)
	mol.Name = M.Name
	mol.Atoms = make([]*Atom, len(keep))
	for k, i := range keep {
		mol.Atoms[k] = M.Atoms[i].Copy()
		mol.Atoms[k].Index = k
	}
	mol.Coords = v3.Zeros(len(keep))
	if len(keep) > 0 {
		mol.Coords.SomeVecs(M.Coords, keep)
	}
	if M.Cell != nil {
		c := *M.Cell
		mol.Cell = &c
	}
	for b := 0; b < M.Bonds.Len(); b++ {
		i, j := M.Bonds.Bond(b)
		if newpos[i] < 0 || newpos[j] < 0 {
			continue
		}
		mol.Bonds = append(mol.Bonds, newpos[i], newpos[j])
	}
	return mol
}

//Merge returns a new molecule with the atoms of A followed by those of B.
//The bonds of B are shifted accordingly. Name and cell are those of A.
func Merge(A, B *Molecule) *Molecule {
	mol := A.Copy()
	n := A.Len()
	for _, a := range B.Atoms {
		at := a.Copy()
		at.Index = len(mol.Atoms)
		mol.Atoms = append(mol.Atoms, at)
	}
	coords := v3.Zeros(n + B.Len())
	coords.Stack(A.Coords, B.Coords)
	mol.Coords = coords
	for _, v := range B.Bonds {
		mol.Bonds = append(mol.Bonds, v+n)
	}
	return mol
}
