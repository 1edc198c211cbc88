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

//Package catalog holds the wheels and chassis shipped with the builder, as XYZ files.
//Wheels mark their attachment with Xc/Xa atoms (or a single X, for the old
//single-site wheels).
package catalog

import (
	"embed"
	"io/fs"
)

//go:embed wheel/*.xyz chassis/*.xyz
var files embed.FS

//FS returns the embedded catalog. It has a wheel and a chassis directory.
func FS() fs.FS {
	return files
}
