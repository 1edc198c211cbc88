/*
 * gocoords.go, part of nanocar.
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

package v3

import (
	"fmt"
	"strings"
)

//NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	if F == nil || F.Dense == nil || F.IsEmpty() {
		return 0
	}
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//Vec returns a copy of the vector i as an array.
func (F *Matrix) Vec(i int) [3]float64 {
	if i < 0 || i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	return [3]float64{F.At(i, 0), F.At(i, 1), F.At(i, 2)}
}

//SetVec sets the vector i of the receiver to v.
func (F *Matrix) SetVec(i int, v [3]float64) {
	if i < 0 || i >= F.NVecs() {
		panic(ErrIndexOutOfRange)
	}
	F.Set(i, 0, v[0])
	F.Set(i, 1, v[1])
	F.Set(i, 2, v[2])
}

//AddVec adds the vector vec to each vector of the matrix A, putting the result on the receiver.
//Panics if matrices are mismatched.
func (F *Matrix) AddVec(A *Matrix, vec [3]float64) {
	ar := A.NVecs()
	if ar != F.NVecs() {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(i, j)+vec[j])
		}
	}
}

//SubVec subtracts the vector vec from each vector of the matrix A, putting
//the result on the receiver. Panics if matrices are mismatched.
func (F *Matrix) SubVec(A *Matrix, vec [3]float64) {
	F.AddVec(A, [3]float64{-vec[0], -vec[1], -vec[2]})
}

//SomeVecs puts in the receiver the vectors of A with index in clist, in the
//order of clist.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	if F.NVecs() != len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		F.SetVec(key, A.Vec(val))
	}
}

//Stack puts A stacked over B in F.
func (F *Matrix) Stack(A, B *Matrix) {
	ar := A.NVecs()
	br := B.NVecs()
	if F.NVecs() != ar+br {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		F.SetVec(i, A.Vec(i))
	}
	for i := 0; i < br; i++ {
		F.SetVec(ar+i, B.Vec(i))
	}
}

//Centroid returns the geometric center of the vectors in F.
func (F *Matrix) Centroid() [3]float64 {
	var c [3]float64
	n := F.NVecs()
	if n == 0 {
		return c
	}
	for i := 0; i < n; i++ {
		for j := 0; j < 3; j++ {
			c[j] += F.At(i, j)
		}
	}
	for j := range c {
		c[j] /= float64(n)
	}
	return c
}

//String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r := F.NVecs()
	if r == 0 {
		return "[ ]"
	}
	v := make([]string, 0, r+2)
	v = append(v, "\n[")
	for i := 0; i < r; i++ {
		row := F.Vec(i)
		s := fmt.Sprintf(" %6.2f %6.2f %6.2f", row[0], row[1], row[2])
		if i == 0 {
			s = s[1:]
		}
		if i < r-1 {
			s += "\n"
		}
		v = append(v, s)
	}
	v = append(v, " ]")
	return strings.Join(v, "")
}
