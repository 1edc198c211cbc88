/*
 * v3_test.go, part of nanocar.
 *
 * Copyright 2013 Raul Mera <rmera@zinc>
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
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewMatrix(Te *testing.T) {
	_, err := NewMatrix([]float64{1, 2, 3, 4})
	if err == nil {
		Te.Error("Expected an error for a slice not divisible by 3")
	}
	if e, ok := err.(*Error); !ok || len(e.Decorate("Caller")) != 2 || e.deco[1] != "Caller" {
		Te.Errorf("Decoration was not kept: %#v", err)
	}
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("Expected 2 vectors, got %d", A.NVecs())
	}
	if Zeros(0).NVecs() != 0 {
		Te.Error("Empty matrix should have no vectors")
	}
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	B := Zeros(3)
	cind := []int{1, 3, 5}
	B.SomeVecs(A, cind)
	if B.Vec(2) != [3]float64{16, 17, 18} {
		Te.Errorf("Wrong vector: %v", B.Vec(2))
	}
	defer func() {
		if r := recover(); r != ErrIndexOutOfRange {
			Te.Errorf("Expected an out of range panic, got %v", r)
		}
	}()
	B.SomeVecs(A, []int{1, 99, 2})
}

func TestStack(Te *testing.T) {
	A, _ := NewMatrix([]float64{0, 0, 0, 1, 1, 1, 2, 2, 2})
	B, _ := NewMatrix([]float64{0, 0, 0, 2, 2, 2})
	C := Zeros(5)
	C.Stack(A, B)
	if C.Vec(3) != [3]float64{0, 0, 0} || C.Vec(4) != [3]float64{2, 2, 2} {
		Te.Errorf("Stack misplaced vectors: %v", C)
	}
}

func TestTranslateAndCentroid(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 0, 0, -1, 0, 0, 0, 2, 0, 0, -2, 0})
	c := A.Centroid()
	if c != [3]float64{0, 0, 0} {
		Te.Errorf("Wrong centroid %v", c)
	}
	B := A.Clone()
	B.AddVec(A, [3]float64{1, 2, 3})
	if B.Centroid() != [3]float64{1, 2, 3} {
		Te.Errorf("Wrong translated centroid %v", B.Centroid())
	}
	if A.Vec(0) != [3]float64{1, 0, 0} {
		Te.Error("Clone shares storage with the original")
	}
	B.SubVec(B, [3]float64{1, 2, 3})
	if !mat.EqualApprox(A, B, 1e-12) {
		Te.Errorf("SubVec should undo AddVec: %v %v", A, B)
	}
}

func TestMul(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	rot := mat.NewDense(3, 3, []float64{0, 1, 0, -1, 0, 0, 0, 0, 1})
	A.Mul(A, rot)
	if A.Vec(0) != [3]float64{-2, 1, 3} {
		Te.Errorf("Wrong product in place: %v", A)
	}
}
