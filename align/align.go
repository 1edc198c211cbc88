/*
 * align.go, part of nanocar.
 *
 *
 * Copyright 2021 Raul Mera rauldotmeraatusachdotcl
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
 *
 *
 */

//Package align places fragments on a chassis. The fragment is rotated so its
//marker vector points along the outward vector of the attachment site, moved
//onto the selected atom, pushed out to the requested bond length, and finally
//stripped of its marker atoms.
package align

import (
	"fmt"
	"math"

	"github.com/rmera/nanocar"
	v3 "github.com/rmera/nanocar/v3"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//Options contains the tolerances for the Align function.
type Options struct {
	Bond float64 //target distance between the selected atom and the alignment site, in A
	//Vectors whose normalized cross product is shorter than this are taken as
	//parallel or anti-parallel.
	ParallelTol float64
	//Largest distance between the alignment site and a real atom for the latter
	//to be reported as the bonding atom of the fragment.
	BondSiteTol float64
}

//DefaultOptions return reasonable options for a carbon-carbon bond between
//fragment and chassis.
func DefaultOptions() *Options {
	r := new(Options)
	r.Bond = 1.5
	r.ParallelTol = 1e-9
	r.BondSiteTol = 0.1
	return r
}

//Result is what Align returns.
type Result struct {
	Fragment *nanocar.Molecule //the aligned fragment, without marker atoms
	//Connection is the position of the connection site (or the placeholder) after it was
	//moved onto the selected atom. Alignment is the final position of the
	//alignment site. Both sites are removed from Fragment.
	Connection [3]float64
	Alignment  [3]float64
	//BondSite is the index, in Fragment, of the atom sitting on the alignment
	//site, or -1 if there is none.
	BondSite int
	Rotation r3.Rotation
}

//Align attaches frag to chassis at site, using the target bond length bond. The
//chassis and frag are not modified.
func Align(chassis *nanocar.Molecule, site Site, frag *Fragment, bond float64) (*Result, error) {
	o := DefaultOptions()
	o.Bond = bond
	r, err := AlignOpts(chassis, site, frag, o)
	if err != nil {
		return nil, errDecorate(err, "Align")
	}
	return r, nil
}

//AlignOpts is like Align, but takes all the options explicitly.
//The bond length is ignored for single-site fragments.
func AlignOpts(chassis *nanocar.Molecule, site Site, frag *Fragment, o *Options) (*Result, error) {
	if o.Bond < 0 && frag.Mode == DualSite {
		return nil, &Error{fmt.Sprintf("negative bond length %g", o.Bond), []string{"AlignOpts"}, true}
	}
	outward := r3.Vec{}
	outward.X, outward.Y, outward.Z = unpack(site.Outward(chassis))
	dir, anchor := frag.direction()
	fdir := r3.Vec{X: dir[0], Y: dir[1], Z: dir[2]}
	if r3.Norm(outward) == 0 {
		return nil, &Error{fmt.Sprintf("selected atom %d and its neighbor %d overlap", site.Selected, site.Neighbor), []string{"AlignOpts"}, true}
	}
	if r3.Norm(fdir) == 0 {
		return nil, &Error{fmt.Sprintf("marker atoms of fragment %q overlap", frag.Name), []string{"AlignOpts"}, true}
	}
	rot := MinimalRotation(fdir, outward, o.ParallelTol)
	coords := v3.Zeros(frag.Len())
	coords.Mul(frag.Coords, rotationMatrix(rot))

	//move the anchor onto the selected atom
	sel := chassis.Coord(site.Selected)
	a := coords.Vec(anchor)
	coords.AddVec(coords, [3]float64{sel[0] - a[0], sel[1] - a[1], sel[2] - a[2]})
	res := &Result{Connection: coords.Vec(anchor), BondSite: -1, Rotation: rot}

	if frag.Mode == DualSite {
		c := coords.Vec(frag.Connection)
		al := coords.Vec(frag.Alignment)
		v := r3.Sub(r3.Vec{X: c[0], Y: c[1], Z: c[2]}, r3.Vec{X: al[0], Y: al[1], Z: al[2]})
		shift := r3.Sub(v, r3.Scale(o.Bond, r3.Unit(v)))
		coords.AddVec(coords, [3]float64{shift.X, shift.Y, shift.Z})
		res.Alignment = coords.Vec(frag.Alignment)
	} else {
		res.Alignment = res.Connection
	}
	moved := frag.Molecule.Copy()
	moved.Coords = coords
	markers := frag.markers()
	if frag.Mode == DualSite {
		res.BondSite = bondSite(moved, frag.Alignment, markers, o.BondSiteTol)
	}
	res.Fragment = moved.Without(markers...)
	return res, nil
}

//bondSite returns the index, after removing the markers, of the first real atom within
//tol of the atom at, or -1.
func bondSite(mol *nanocar.Molecule, at int, markers []int, tol float64) int {
	removed := 0
	for i := 0; i < mol.Len(); i++ {
		if isIn(i, markers) {
			removed++
			continue
		}
		if mol.Distance(i, at) <= tol {
			return i - removed
		}
	}
	return -1
}

func isIn(i int, s []int) bool {
	for _, v := range s {
		if v == i {
			return true
		}
	}
	return false
}

//MinimalRotation returns the smallest rotation that takes the direction of from
//onto the direction of to. The rotation axis is their cross product. Parallel
//vectors give the identity, anti-parallel ones a half turn around an axis perpendicular to from.
//The roll around to is whatever the minimal rotation produces.
func MinimalRotation(from, to r3.Vec, tol float64) r3.Rotation {
	u := r3.Unit(from)
	w := r3.Unit(to)
	axis := r3.Cross(u, w)
	cos := math.Max(-1, math.Min(1, r3.Dot(u, w)))
	if r3.Norm(axis) <= tol {
		if cos > 0 {
			return r3.NewRotation(0, r3.Vec{X: 1})
		}
		return r3.NewRotation(math.Pi, perpendicular(u))
	}
	return r3.NewRotation(math.Acos(cos), axis)
}

//perpendicular returns a unit vector perpendicular to u.
func perpendicular(u r3.Vec) r3.Vec {
	ref := r3.Vec{X: 1}
	if math.Abs(u.X) > 0.9 {
		ref = r3.Vec{Y: 1}
	}
	return r3.Unit(r3.Cross(u, ref))
}

//rotationMatrix returns the matrix that applies rot to row vectors,
//i.e. x' = x*M. Row i of M is the rotated i-th unit vector.
func rotationMatrix(rot r3.Rotation) *mat.Dense {
	M := mat.NewDense(3, 3, nil)
	for i, e := range []r3.Vec{{X: 1}, {Y: 1}, {Z: 1}} {
		r := rot.Rotate(e)
		M.SetRow(i, []float64{r.X, r.Y, r.Z})
	}
	return M
}

func unpack(v [3]float64) (float64, float64, float64) {
	return v[0], v[1], v[2]
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

//errDecorate adds caller to the decoration of err, if err can take it.
func errDecorate(err error, caller string) error {
	if e, ok := err.(interface{ Decorate(string) []string }); ok {
		e.Decorate(caller)
	}
	return err
}
