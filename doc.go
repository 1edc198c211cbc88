/*
 * doc.go, part of nanocar.
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

/*
Package nanocar is the main package of the nanocar builder. It provides the atom and
molecule structures shared by the other packages, XYZ input and output, and element data.

	**Capabilities**

	Attaches wheel fragments to a chassis molecule at a chosen atom (package align),
	using the Xc and Xa marker atoms in the fragment file to define the
	bonding direction.

	Keeps a catalog of wheels and chassis, and a ledger of the placements done in
	a session (package assembly).

	Derives UFF Lennard-Jones parameters and mixes them against a substrate
	(package ff).

	Writes LAMMPS data files and input scripts with rigid-body groups
	(package lammps).

	Speaks the JSON protocol of the Avogadro 2 plug-in system (package cjson,
	command cmd/nanocar).

Molecules are value-like: the methods that change coordinates or atoms return
a new Molecule and leave the receiver untouched.
*/
package nanocar
