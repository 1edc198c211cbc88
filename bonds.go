/*
 * bonds.go, part of nanocar.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
	"sort"
)

//constants from DOI:10.1186/1758-2946-3-33
const (
	tooclose = 0.63
	bondtol  = 0.45
)

type bond struct {
	at1, at2 int
	dist     float64
}

//AssignBonds returns the connectivity of mol based on a simple distance
//criterium, similar to that described in DOI:10.1186/1758-2946-3-33.
//Marker atoms (Xc, Xa, X) are never bonded. Atoms with more bonds than
//their element allows lose the longest ones.
//The connectivity lists, for each atom in order, its bonds to atoms with higher
//indexes, so Partner finds the first such bond.
func AssignBonds(mol *Molecule) (Connectivity, error) {
	//O(N^2), meant for chassis-sized molecules.
	tot := mol.Len()
	perAtom := make([][]*bond, tot)
	var bonds []*bond
	for i := 0; i < tot; i++ {
		s1 := mol.Atom(i).Symbol
		if IsPlaceholder(s1) {
			continue
		}
		cov1 := symbolCovrad[s1]
		if cov1 == 0 {
			err := new(CError)
			err.msg = fmt.Sprintf("Couldn't find the covalent radii for %s %d", s1, i)
			err.Decorate("AssignBonds")
			return nil, err
		}
		for j := i + 1; j < tot; j++ {
			s2 := mol.Atom(j).Symbol
			if IsPlaceholder(s2) {
				continue
			}
			cov2 := symbolCovrad[s2]
			if cov2 == 0 {
				err := new(CError)
				err.msg = fmt.Sprintf("Couldn't find the covalent radii for %s %d", s2, j)
				err.Decorate("AssignBonds")
				return nil, err
			}
			d := mol.Distance(i, j)
			if d < cov1+cov2+bondtol && d > tooclose {
				b := &bond{at1: i, at2: j, dist: d}
				perAtom[i] = append(perAtom[i], b)
				perAtom[j] = append(perAtom[j], b)
				bonds = append(bonds, b)
			}
		}
	}
	removed := make(map[*bond]bool)
	//Now we check that no atom has too many bonds.
	for i := 0; i < tot; i++ {
		max := symbolMaxBonds[mol.Atom(i).Symbol]
		if max == 0 { //means there is not a specified number of bonds for this atom.
			continue
		}
		var mine []*bond
		for _, b := range perAtom[i] {
			if !removed[b] {
				mine = append(mine, b)
			}
		}
		sort.Slice(mine, func(i, j int) bool { return mine[i].dist < mine[j].dist })
		for _, b := range mine[min(max, len(mine)):] {
			removed[b] = true //we remove the longest bonds
		}
	}
	var C Connectivity
	for _, b := range bonds {
		if !removed[b] {
			C = append(C, b.at1, b.at2)
		}
	}
	return C, nil
}
