/*
 * data.go, part of nanocar.
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

//Package lammps writes the files for a rigid-body LAMMPS simulation of a
//nanocar on a surface: the data file with the structure, and the input script
//with groups, pair coefficients, and rigid fixes.
package lammps

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rmera/nanocar"
	"github.com/rmera/nanocar/ff"
)

const dataHeader = "Created by Avogadro Nanocar Builder"

//StringReader is anything that reads lines, like a *bufio.Reader.
type StringReader interface {
	ReadString(byte) (string, error)
}

func qerr(err error) {
	if err != nil {
		panic(err.Error())
	}
}

//WriteData writes mol in the LAMMPS "full" atom style. The molecule must have a cell.
//Charges are zero and there are no bonded terms. bodies, if not nil, gives the
//molecule id of each atom, otherwise all ids are 0.
func WriteData(w io.StringWriter, mol *nanocar.Molecule, types ff.TypeTable, params map[string]ff.Params, bodies []int) (err error) {
	if mol.Cell == nil {
		return &Error{"molecule has no cell, can't write box bounds", []string{"WriteData"}, true}
	}
	if bodies != nil && len(bodies) != mol.Len() {
		return &Error{fmt.Sprintf("%d body ids for %d atoms", len(bodies), mol.Len()), []string{"WriteData"}, true}
	}
	symbols := types.Symbols()
	for _, s := range symbols {
		if _, ok := params[s]; !ok {
			return &ff.MissingParameterError{Symbol: s}
		}
	}
	for _, a := range mol.Atoms {
		if types.ID(a.Symbol) == 0 {
			return &Error{fmt.Sprintf("atom type table has no entry for %q", a.Symbol), []string{"WriteData"}, true}
		}
	}
	defer func() {
		if r := recover(); r != nil {
			err = &Error{fmt.Sprintf("writing data file: %v", r), []string{"WriteData"}, true}
		}
	}()
	pr := func(format string, a ...any) {
		_, err := w.WriteString(fmt.Sprintf(format, a...))
		qerr(err)
	}
	pr("%s\n\n", dataHeader)
	pr("%10d atoms\n", mol.Len())
	for _, s := range []string{"bonds", "angles", "dihedrals", "impropers"} {
		pr("%10d %s\n", 0, s)
	}
	pr("%10d atom types\n", types.Len())
	pr("%10d bond types\n", 0)
	for i, b := range []float64{mol.Cell.A, mol.Cell.B, mol.Cell.C} {
		ax := string(rune('x' + i))
		pr("%16.5f   %5.5f   %slo %shi\n", 0.0, b, ax, ax)
	}
	pr("\nMasses\n\n")
	for i, s := range symbols {
		pr("%5d   %10.5f # %s\n", i+1, params[s].Mass, s)
	}
	pr("\nAtoms\n\n")
	for i, a := range mol.Atoms {
		c := mol.Coord(i)
		body := 0
		if bodies != nil {
			body = bodies[i]
		}
		pr("%10d   %3d   %3d   %5.5f  %12.5f  %12.5f  %12.5f\n", i+1, body, types.ID(a.Symbol), 0.0, c[0], c[1], c[2])
	}
	return nil
}

//DataCounts is what ReadDataCounts gets back from a data file.
type DataCounts struct {
	Atoms     int
	AtomTypes int
	Lo, Hi    [3]float64
	Rows      int //atom lines actually found in the Atoms section
}

//ReadDataCounts reads the header counts, box bounds and number of atom lines
//of a data file written by WriteData.
func ReadDataCounts(r StringReader) (*DataCounts, error) {
	D := new(DataCounts)
	inAtoms := false
	for {
		s, rerr := r.ReadString('\n')
		if s != "" {
			if err := D.parse(s, &inAtoms); err != nil {
				return nil, &Error{fmt.Sprintf("bad data file line %q: %v", strings.TrimSpace(s), err), []string{"ReadDataCounts"}, true}
			}
		}
		if errors.Is(rerr, io.EOF) {
			break
		}
		if rerr != nil {
			return nil, &Error{fmt.Sprintf("reading data file: %v", rerr), []string{"ReadDataCounts"}, true}
		}
	}
	return D, nil
}

func (D *DataCounts) parse(s string, inAtoms *bool) error {
	var err error
	f := strings.Fields(strings.Split(s, "#")[0])
	switch {
	case len(f) == 0:
	case len(f) == 1 && f[0] == "Atoms":
		*inAtoms = true
	case len(f) == 1:
		*inAtoms = false
	case *inAtoms:
		D.Rows++
	case len(f) == 2 && f[1] == "atoms":
		D.Atoms, err = strconv.Atoi(f[0])
	case len(f) == 3 && f[1] == "atom" && f[2] == "types":
		D.AtomTypes, err = strconv.Atoi(f[0])
	case len(f) == 4 && strings.HasSuffix(f[2], "lo") && strings.HasSuffix(f[3], "hi"):
		ax := int(f[2][0]) - 'x'
		if ax < 0 || ax > 2 {
			return nil
		}
		if D.Lo[ax], err = strconv.ParseFloat(f[0], 64); err != nil {
			return err
		}
		D.Hi[ax], err = strconv.ParseFloat(f[1], 64)
	}
	return err
}

//Errors

//Error is the generic error of the package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err *Error) Error() string { return err.message }

func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

func (err *Error) Critical() bool { return err.critical }
