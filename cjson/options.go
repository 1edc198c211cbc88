/*
 * options.go, part of nanocar.
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

package cjson

import (
	"encoding/json"
	"io"
	"slices"
)

//OptionType is the kind of widget the host shows for an option.
type OptionType string

const (
	StringList OptionType = "stringList"
	Boolean    OptionType = "boolean"
	Float      OptionType = "float"
	Integer    OptionType = "integer"
	FilePath   OptionType = "filePath"
)

//Option is one user option in a menu.
type Option struct {
	Label     string     `json:"label"`
	Type      OptionType `json:"type"`
	Default   any        `json:"default"`
	Values    []string   `json:"values,omitempty"`
	Precision int        `json:"precision,omitempty"`
	Suffix    string     `json:"suffix,omitempty"`
}

//Choice returns a list option. If def is not among values, the first value is the default.
func Choice(label, def string, values []string) Option {
	if !slices.Contains(values, def) && len(values) > 0 {
		def = values[0]
	}
	return Option{Label: label, Type: StringList, Default: def, Values: values}
}

//Check returns a boolean option.
func Check(label string, def bool) Option {
	return Option{Label: label, Type: Boolean, Default: def}
}

//Number returns a float option. A negative precision leaves it to the host.
func Number(label string, def float64, precision int, suffix string) Option {
	o := Option{Label: label, Type: Float, Default: def, Suffix: suffix}
	if precision >= 0 {
		o.Precision = precision
	}
	return o
}

//Path returns a file path option.
func Path(label, def string) Option {
	return Option{Label: label, Type: FilePath, Default: def}
}

//Menu is the set of options of a command, keyed by the name the host uses
//when sending the values back.
type Menu map[string]Option

//MarshalJSON wraps the options the way hosts expect them.
func (M Menu) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		UserOptions map[string]Option `json:"userOptions"`
	}{map[string]Option(M)})
}

//Send writes the menu to out.
func (M Menu) Send(out io.Writer) *Error {
	if err := json.NewEncoder(out).Encode(M); err != nil {
		return NewError("postprocess", "Menu.Send", err)
	}
	return nil
}
