/*
 * files.go, part of nanocar.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	v3 "github.com/rmera/nanocar/v3"
)

//XYZ family

//XYZFileRead reads an xyz file, returning a Molecule and an error.
func XYZFileRead(xyzname string) (*Molecule, error) {
	xyzfile, err := os.Open(xyzname)
	if err != nil {
		return nil, fmt.Errorf("opening XYZ file %s: %w", xyzname, err)
	}
	defer xyzfile.Close()
	mol, err := XYZRead(xyzfile)
	if err != nil {
		return nil, errDecorate(err, "XYZFileRead "+xyzname)
	}
	return mol, nil
}

//XYZRead reads an XYZ structure from r. Only the first frame is read.
//The comment line becomes the molecule name.
func XYZRead(r io.Reader) (*Molecule, error) {
	xyz := bufio.NewReader(r)
	line, err := xyz.ReadString('\n')
	if err != nil && line == "" {
		return nil, &CError{msg: "Empty or unreadable XYZ input", deco: []string{"XYZRead"}}
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || natoms < 0 {
		return nil, &CError{msg: fmt.Sprintf("Ill formatted XYZ header %q", strings.TrimSpace(line)), deco: []string{"XYZRead"}}
	}
	comment, err := xyz.ReadString('\n')
	if err != nil && natoms > 0 {
		return nil, &CError{msg: "XYZ input ends before the comment line", deco: []string{"XYZRead"}}
	}
	symbols := make([]string, natoms)
	coords := make([]float64, natoms*3)
	for i := 0; i < natoms; i++ {
		line, err = xyz.ReadString('\n')
		if err != nil && line == "" {
			return nil, &CError{msg: fmt.Sprintf("XYZ input has %d atoms, header says %d", i, natoms), deco: []string{"XYZRead"}}
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, &CError{msg: fmt.Sprintf("Line number %d of XYZ input ill formed", i+3), deco: []string{"XYZRead"}}
		}
		symbols[i] = fields[0]
		for j := 0; j < 3; j++ {
			coords[i*3+j], err = strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				return nil, &CError{msg: fmt.Sprintf("Bad coordinate %q in line %d of XYZ input", fields[j+1], i+3), deco: []string{"XYZRead"}}
			}
		}
	}
	mcoords, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	mol, err := NewMolecule(symbols, mcoords)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	mol.Name = strings.TrimSpace(comment)
	return mol, nil
}

//XYZWrite writes the molecule in XYZ format to out.
func XYZWrite(out io.StringWriter, mol *Molecule) error {
	if err := mol.Corrupted(); err != nil {
		return errDecorate(err, "XYZWrite")
	}
	if _, err := out.WriteString(fmt.Sprintf("%-4d\n%s\n", mol.Len(), mol.Name)); err != nil {
		return fmt.Errorf("writing XYZ header: %w", err)
	}
	for i, a := range mol.Atoms {
		c := mol.Coord(i)
		if _, err := out.WriteString(fmt.Sprintf("%-2s  %12.6f%12.6f%12.6f\n", a.Symbol, c[0], c[1], c[2])); err != nil {
			return fmt.Errorf("writing XYZ atom %d: %w", i, err)
		}
	}
	return nil
}

//XYZString returns the molecule as an XYZ-formatted string.
func XYZString(mol *Molecule) (string, error) {
	var b strings.Builder
	if err := XYZWrite(&b, mol); err != nil {
		return "", errDecorate(err, "XYZString")
	}
	return b.String(), nil
}
