/*
 * json.go, part of nanocar.
 *
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
 *
 */

package cjson

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/rmera/nanocar"
	"github.com/rmera/nanocar/align"
	v3 "github.com/rmera/nanocar/v3"
)

//CJSON is the part of a Chemical JSON document the builder uses. The whole
//document is kept, so it can be sent back to the host.
type CJSON struct {
	Atoms struct {
		Elements struct {
			Number []int `json:"number"`
		} `json:"elements"`
		Coords struct {
			ThreeD []float64 `json:"3d"`
		} `json:"coords"`
		Selected []bool `json:"selected"`
	} `json:"atoms"`
	Bonds struct {
		Connections struct {
			Index []int `json:"index"`
		} `json:"connections"`
	} `json:"bonds"`
	raw map[string]json.RawMessage
}

//UnmarshalJSON decodes the document, keeping all its fields.
func (C *CJSON) UnmarshalJSON(data []byte) error {
	type plain CJSON
	p := (*plain)(C)
	if err := json.Unmarshal(data, p); err != nil {
		return err
	}
	return json.Unmarshal(data, &C.raw)
}

//Molecule returns the structure in the document. Bonds are copied as they are.
func (C *CJSON) Molecule() (*nanocar.Molecule, error) {
	numbers := C.Atoms.Elements.Number
	raw := C.Atoms.Coords.ThreeD
	if len(raw) != 3*len(numbers) {
		return nil, NewError("selection", "CJSON.Molecule", fmt.Errorf("%d coordinates for %d atoms", len(raw), len(numbers)))
	}
	symbols := make([]string, len(numbers))
	for i, z := range numbers {
		s, err := nanocar.Symbol(z)
		if err != nil {
			return nil, NewError("selection", "CJSON.Molecule", err)
		}
		symbols[i] = s
	}
	coords := v3.Zeros(len(numbers))
	if len(raw) > 0 {
		var err error
		if coords, err = v3.NewMatrix(append([]float64(nil), raw...)); err != nil {
			return nil, NewError("selection", "CJSON.Molecule", err)
		}
	}
	mol, err := nanocar.NewMolecule(symbols, coords)
	if err != nil {
		return nil, NewError("selection", "CJSON.Molecule", err)
	}
	mol.Bonds = append(nanocar.Connectivity(nil), C.Bonds.Connections.Index...)
	if err := mol.Bonds.Check(mol.Len()); err != nil {
		return nil, NewError("selection", "CJSON.Molecule", err)
	}
	return mol, nil
}

//Selected returns the indexes of the selected atoms.
func (C *CJSON) Selected() []int {
	return align.Selected(C.Atoms.Selected)
}

//Input is what the host sends when running a command: the current structure
//and the values of the user options.
type Input struct {
	CJSON   *CJSON
	options map[string]json.RawMessage
}

//DecodeInput reads the host input from r.
func DecodeInput(r io.Reader) (*Input, *Error) {
	in := new(Input)
	if err := json.NewDecoder(r).Decode(&in.options); err != nil {
		return nil, NewError("options", "DecodeInput", err)
	}
	if raw, ok := in.options["cjson"]; ok {
		in.CJSON = new(CJSON)
		if err := json.Unmarshal(raw, in.CJSON); err != nil {
			return nil, NewError("options", "DecodeInput", err)
		}
		delete(in.options, "cjson")
	}
	return in, nil
}

func (I *Input) get(key string, v any) (bool, error) {
	raw, ok := I.options[key]
	if !ok || string(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, NewError("options", "Input."+key, err)
	}
	return true, nil
}

//String returns the string option key, or def if the host didn't send it.
func (I *Input) String(key, def string) (string, error) {
	var s string
	if ok, err := I.get(key, &s); !ok || err != nil {
		return def, err
	}
	return s, nil
}

//Float returns the numeric option key, or def if the host didn't send it.
func (I *Input) Float(key string, def float64) (float64, error) {
	var f float64
	if ok, err := I.get(key, &f); !ok || err != nil {
		return def, err
	}
	return f, nil
}

//Bool returns the boolean option key, or def if the host didn't send it.
func (I *Input) Bool(key string, def bool) (bool, error) {
	var b bool
	if ok, err := I.get(key, &b); !ok || err != nil {
		return def, err
	}
	return b, nil
}

//Result is sent back to the host. It carries the original document, if any,
//plus the new structure. A nil XYZ tells the host nothing changed.
type Result struct {
	Append bool
	XYZ    *string
	base   map[string]json.RawMessage
}

//NewResult returns a result for the host. base can be nil, mol can be nil when
//nothing was built. With append true the host adds mol to the current structure,
//otherwise it replaces it.
func NewResult(base *CJSON, appendMol bool, mol *nanocar.Molecule) (*Result, error) {
	R := &Result{Append: appendMol}
	if base != nil {
		R.base = base.raw
	}
	if mol != nil {
		s, err := nanocar.XYZString(mol)
		if err != nil {
			return nil, NewError("postprocess", "NewResult", err)
		}
		R.XYZ = &s
	}
	return R, nil
}

//MarshalJSON implements json.Marshaler.
func (R *Result) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(R.base)+3)
	for k, v := range R.base {
		m[k] = v
	}
	m["append"] = R.Append
	m["moleculeFormat"] = "xyz"
	m["xyz"] = R.XYZ
	return json.Marshal(m)
}

//Send marshals the result and writes it to out.
func (R *Result) Send(out io.Writer) *Error {
	if err := json.NewEncoder(out).Encode(R); err != nil {
		return NewError("postprocess", "Result.Send", err)
	}
	return nil
}

//Error is an easily JSON-serializable error type.
type Error struct {
	deco          []string
	IsError       bool //If this is false (no error) all the other fields will be at their zero-values.
	InOptions     bool //If error, was it in parsing the options?
	InSelections  bool //Was it in reading the structure?
	InProcess     bool
	InPostProcess bool   //was it in preparing the output?
	Function      string //which go function gave the error
	Message       string //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	return J.Message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Marshal serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - "))
	}
	return ret
}

//NewError takes an error and some additional info to create a json-marshal-able error.
//where is "options", "selection", "postprocess" or anything else for the main process.
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "options":
		jerr.InOptions = true
	case "selection":
		jerr.InSelections = true
	case "postprocess":
		jerr.InPostProcess = true
	default:
		jerr.InProcess = true
	}
	jerr.Function = function
	jerr.Message = err.Error()
	return jerr
}
