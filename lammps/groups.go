/*
 * groups.go, part of nanocar.
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
	"fmt"
	"slices"
)

//Group names with a special meaning.
const (
	SurfaceGroup = "surface"
	NanocarGroup = "nanocar"
	ChassisGroup = "chassis"
)

//Range is an inclusive range of 1-based atom ids.
type Range struct {
	Start, End int
}

//Len returns the number of atoms in the range.
func (R Range) Len() int { return R.End - R.Start + 1 }

//Group is one "group ... id a:b" record. Several records can share a name,
//LAMMPS adds the atoms to the existing group.
type Group struct {
	Name string
	Range
}

//Partition splits natoms atoms into groups. The substrate range becomes the surface
//group (no surface if it is {0,0}) and the rest of the atoms the nanocar group.
//In multibody mode each wheel gets a wheelK group, and the nanocar atoms not
//in any wheel make the chassis group.
func Partition(natoms int, substrate [2]int, wheels []Range, multibody bool) ([]Group, error) {
	if natoms <= 0 {
		return nil, &Error{fmt.Sprintf("can't partition %d atoms", natoms), []string{"Partition"}, true}
	}
	var groups []Group
	var surf Range
	if substrate != [2]int{0, 0} {
		surf = Range{substrate[0], substrate[1]}
		if surf.Start < 1 || surf.End < surf.Start || surf.End > natoms {
			return nil, &Error{fmt.Sprintf("substrate range %d:%d invalid for %d atoms", surf.Start, surf.End, natoms), []string{"Partition"}, true}
		}
		groups = append(groups, Group{SurfaceGroup, surf})
	}
	all := []Range{{1, natoms}}
	car := subtract(all, surf)
	if len(car) == 0 {
		return nil, &Error{"no atoms left for the nanocar group", []string{"Partition"}, true}
	}
	for _, r := range car {
		groups = append(groups, Group{NanocarGroup, r})
	}
	if !multibody {
		return groups, nil
	}
	chassis := car
	for k, w := range wheels {
		if w.Start < 1 || w.End < w.Start || w.End > natoms || (surf.Start > 0 && overlaps(w, surf)) {
			return nil, &Error{fmt.Sprintf("wheel %d range %d:%d is not within the nanocar atoms", k+1, w.Start, w.End), []string{"Partition"}, true}
		}
		groups = append(groups, Group{fmt.Sprintf("wheel%d", k+1), w})
		chassis = subtract(chassis, w)
	}
	if len(chassis) == 0 {
		return nil, &Error{"the wheels take up all the nanocar atoms, no chassis left", []string{"Partition"}, true}
	}
	for _, r := range chassis {
		groups = append(groups, Group{ChassisGroup, r})
	}
	return groups, nil
}

func overlaps(a, b Range) bool {
	return a.Start <= b.End && b.Start <= a.End
}

//subtract returns the parts of the ranges in rs that are not in cut.
func subtract(rs []Range, cut Range) []Range {
	var ret []Range
	for _, r := range rs {
		if cut.Start == 0 || !overlaps(r, cut) {
			ret = append(ret, r)
			continue
		}
		if r.Start < cut.Start {
			ret = append(ret, Range{r.Start, cut.Start - 1})
		}
		if r.End > cut.End {
			ret = append(ret, Range{cut.End + 1, r.End})
		}
	}
	return ret
}

//RigidBodies returns the names of the groups that are simulated as rigid bodies, in order:
//every group but the surface and the nanocar umbrella in multibody mode, only the nanocar otherwise.
func RigidBodies(groups []Group, multibody bool) []string {
	if !multibody {
		return []string{NanocarGroup}
	}
	var ret []string
	for _, g := range groups {
		if g.Name == SurfaceGroup || g.Name == NanocarGroup || slices.Contains(ret, g.Name) {
			continue
		}
		ret = append(ret, g.Name)
	}
	return ret
}

//Bodies returns the molecule id of each of the natoms atoms: the position, starting
//at 1, of its rigid body in RigidBodies, or 0 for atoms outside all bodies.
func Bodies(natoms int, groups []Group, multibody bool) []int {
	ret := make([]int, natoms)
	for id, name := range RigidBodies(groups, multibody) {
		for _, g := range groups {
			if g.Name != name {
				continue
			}
			for i := g.Start; i <= g.End && i <= natoms; i++ {
				ret[i-1] = id + 1
			}
		}
	}
	return ret
}
