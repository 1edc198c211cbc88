/*
 * atomicdata.go, part of nanocar.
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

import "fmt"

//Reserved symbols used to mark the sites of a fragment file.
const (
	ConnectionSymbol  = "Xc" //atom replaced by the bond to the chassis
	AlignmentSymbol   = "Xa" //defines the outward bonding direction
	PlaceholderSymbol = "X"  //single-site (legacy) fragments
)

//IsPlaceholder returns true if s is one of the reserved site symbols.
func IsPlaceholder(s string) bool {
	return s == ConnectionSymbol || s == AlignmentSymbol || s == PlaceholderSymbol
}

//Element symbols by atomic number, up to Rn. Index 0 is the dummy atom,
//which hosts like Avogadro use for placeholders.
var numberSymbol = []string{
	"X",
	"H", "He",
	"Li", "Be", "B", "C", "N", "O", "F", "Ne",
	"Na", "Mg", "Al", "Si", "P", "S", "Cl", "Ar",
	"K", "Ca", "Sc", "Ti", "V", "Cr", "Mn", "Fe", "Co", "Ni", "Cu", "Zn",
	"Ga", "Ge", "As", "Se", "Br", "Kr",
	"Rb", "Sr", "Y", "Zr", "Nb", "Mo", "Tc", "Ru", "Rh", "Pd", "Ag", "Cd",
	"In", "Sn", "Sb", "Te", "I", "Xe",
	"Cs", "Ba", "La", "Ce", "Pr", "Nd", "Pm", "Sm", "Eu", "Gd", "Tb", "Dy",
	"Ho", "Er", "Tm", "Yb", "Lu", "Hf", "Ta", "W", "Re", "Os", "Ir", "Pt",
	"Au", "Hg", "Tl", "Pb", "Bi", "Po", "At", "Rn",
}

var symbolNumber map[string]int

func init() {
	symbolNumber = make(map[string]int, len(numberSymbol))
	for k, v := range numberSymbol {
		symbolNumber[v] = k
	}
	//the reserved site symbols are all dummies for the host.
	symbolNumber[ConnectionSymbol] = 0
	symbolNumber[AlignmentSymbol] = 0
}

//Symbol returns the element symbol for the atomic number z.
func Symbol(z int) (string, error) {
	if z < 0 || z >= len(numberSymbol) {
		return "", &CError{msg: fmt.Sprintf("No element with atomic number %d", z), deco: []string{"Symbol"}}
	}
	return numberSymbol[z], nil
}

//AtomicNumber returns the atomic number for the element symbol s.
func AtomicNumber(s string) (int, error) {
	z, ok := symbolNumber[s]
	if !ok {
		return -1, &CError{msg: fmt.Sprintf("Unknown element symbol %q", s), deco: []string{"AtomicNumber"}}
	}
	return z, nil
}

//A map for assigning covalent radii to elements
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J)
//Only the elements likely in chassis and wheels are present.
var symbolCovrad = map[string]float64{
	"H":  0.4, // 0.31 altered. Since H always has only one bond, the extra bonds will get eliminated later.
	"B":  0.84,
	"C":  0.76, //the sp3 radius
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"Se": 1.2,
	"Br": 1.2,
	"I":  1.39,
	"Cu": 1.32,
	"Zn": 1.22,
	"Ru": 1.46,
	"Ag": 1.45,
	"Au": 1.36,
}

//A map for checking that atoms don't
//have too many bonds. A value of 0 means
//undefined, i.e. that this atom shouldn't
//be checked for max bonds.
var symbolMaxBonds = map[string]int{
	"H":  1, //this is the only one truly important.
	"C":  4,
	"O":  2,
	"F":  1,
	"Cl": 1,
	"Br": 1,
	"I":  1,
}
