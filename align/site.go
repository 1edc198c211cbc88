/*
 * site.go, part of nanocar.
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

//Site is the place of the chassis where a fragment is attached: the selected
//atom and the atom bonded to it. The outward vector goes from Neighbor to Selected.
type Site struct {
	Selected int
	Neighbor int
}

//NewSite builds the attachment site from a selection of chassis atoms.
//Exactly one atom must be selected, and it must appear in the connectivity
//of the chassis. Otherwise a *SelectionError is returned.
func NewSite(chassis *nanocar.Molecule, selected []int) (Site, error) {
	if err := CheckSelection(chassis.Len(), selected); err != nil {
		return Site{}, errDecorate(err, "NewSite")
	}
	sel := selected[0]
	nbr, err := chassis.Bonds.Partner(sel)
	if err != nil {
		return Site{}, &SelectionError{Count: 1, Reason: err.Error(), deco: []string{"NewSite"}}
	}
	if nbr < 0 || nbr >= chassis.Len() {
		return Site{}, &SelectionError{Count: 1, Reason: fmt.Sprintf("neighbor %d of atom %d is out of range", nbr, sel), deco: []string{"NewSite"}}
	}
	return Site{Selected: sel, Neighbor: nbr}, nil
}

//CheckSelection returns a *SelectionError unless selected holds exactly one
//index of a chassis with natoms atoms. The connectivity is not checked.
func CheckSelection(natoms int, selected []int) error {
	if len(selected) != 1 {
		return &SelectionError{Count: len(selected), deco: []string{"CheckSelection"}}
	}
	if sel := selected[0]; sel < 0 || sel >= natoms {
		return &SelectionError{Count: 1, Reason: fmt.Sprintf("atom %d is not part of the chassis (%d atoms)", sel, natoms), deco: []string{"CheckSelection"}}
	}
	return nil
}

//Selected returns the indexes of the true values of a per-atom selection mask,
//the way hosts send the selection state.
func Selected(mask []bool) []int {
	var ret []int
	for i, v := range mask {
		if v {
			ret = append(ret, i)
		}
	}
	return ret
}

//Outward returns the outward attachment vector, Selected minus Neighbor.
func (S Site) Outward(chassis *nanocar.Molecule) [3]float64 {
	s := chassis.Coord(S.Selected)
	n := chassis.Coord(S.Neighbor)
	return [3]float64{s[0] - n[0], s[1] - n[1], s[2] - n[2]}
}

//SelectionError is returned when the attachment site cannot be defined from the
//user's selection. It is a user-input problem: nothing is modified and no
//structure is produced.
type SelectionError struct {
	Count  int    //number of selected atoms
	Reason string //set when exactly one atom was selected but it can't be used
	deco   []string
}

func (err *SelectionError) Error() string {
	if err.Reason != "" {
		return "Selected atom can't be used as attachment site: " + err.Reason
	}
	return fmt.Sprintf("Only 1 atom should be selected! (%d selected)", err.Count)
}

func (err *SelectionError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical returns false, the caller can ask for a new selection.
func (err *SelectionError) Critical() bool { return false }
