/*
 * uff.go, part of nanocar.
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

//Package ff contains the non-bonded force field used for the exported
//simulations: the UFF reference table, the atom type table of a structure
//and the mixing of the surface parameters with those of every other type.
package ff

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"
)

//go:embed uff.csv
var uffCSV string

//RmToSigma converts the UFF equilibrium distance x1 to the LJ sigma.
var RmToSigma = 1 / math.Pow(2, 1.0/6.0)

//Params are the Lennard-Jones parameters and mass of one element.
type Params struct {
	Epsilon float64 //kcal/mol
	Sigma   float64 //A
	Mass    float64 //amu
}

//Table is a read-only set of per-element parameters.
type Table struct {
	params map[string]Params
}

//Load reads a table from r. The input is CSV with a header line and
//the columns symbol, x1 (A), D1 (kcal/mol) and mass (amu).
func Load(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 4
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	if _, err := cr.Read(); err != nil {
		return nil, &Error{fmt.Sprintf("reading parameter table header: %v", err), []string{"Load"}, true}
	}
	T := &Table{params: make(map[string]Params)}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &Error{fmt.Sprintf("reading parameter table: %v", err), []string{"Load"}, true}
		}
		var f [3]float64
		for i := range f {
			f[i], err = strconv.ParseFloat(strings.TrimSpace(rec[i+1]), 64)
			if err != nil {
				return nil, &Error{fmt.Sprintf("bad value %q for element %s", rec[i+1], rec[0]), []string{"Load"}, true}
			}
		}
		T.params[strings.TrimSpace(rec[0])] = Params{Epsilon: f[1], Sigma: f[0] * RmToSigma, Mass: f[2]}
	}
	return T, nil
}

var uffOnce = sync.OnceValues(func() (*Table, error) {
	return Load(strings.NewReader(uffCSV))
})

//UFF returns the UFF table embedded in the package. It is only parsed once.
func UFF() (*Table, error) {
	return uffOnce()
}

//Len returns the number of elements in the table.
func (T *Table) Len() int {
	return len(T.params)
}

//Get returns the parameters for one element.
func (T *Table) Get(symbol string) (Params, bool) {
	p, ok := T.params[symbol]
	return p, ok
}

//Lookup returns the parameters for all the given symbols. There are no
//defaults: the first symbol absent from the table produces a *MissingParameterError.
func (T *Table) Lookup(symbols []string) (map[string]Params, error) {
	ret := make(map[string]Params, len(symbols))
	for _, s := range symbols {
		p, ok := T.params[s]
		if !ok {
			return nil, &MissingParameterError{Symbol: s, deco: []string{"Lookup"}}
		}
		ret[s] = p
	}
	return ret, nil
}

//Errors

//Error is the generic error of the package.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err *Error) Error() string { return err.message }

//Decorate adds dec to the decoration slice of the error and returns the result.
func (err *Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

func (err *Error) Critical() bool { return err.critical }

//MissingParameterError is returned when an element has no entry in the table.
type MissingParameterError struct {
	Symbol string
	deco   []string
}

func (err *MissingParameterError) Error() string {
	return fmt.Sprintf("no force field parameters for element %q", err.Symbol)
}

func (err *MissingParameterError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical is always true, the export cannot go on without the parameters.
func (err *MissingParameterError) Critical() bool { return true }
