/*
 * types.go, part of nanocar.
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

package ff

import (
	"fmt"
	"math"
	"slices"
)

//TypeTable maps each distinct element of a structure to a type id.
//Ids start at 1 and follow the alphabetical order of the symbols, so the
//table does not depend on the order of the atoms.
type TypeTable struct {
	symbols []string
	ids     map[string]int
}

//AtomTypes builds the type table for the given symbols.
func AtomTypes(symbols []string) TypeTable {
	uniq := slices.Clone(symbols)
	slices.Sort(uniq)
	uniq = slices.Compact(uniq)
	T := TypeTable{symbols: uniq, ids: make(map[string]int, len(uniq))}
	for i, s := range uniq {
		T.ids[s] = i + 1
	}
	return T
}

//Len returns the number of types.
func (T TypeTable) Len() int { return len(T.symbols) }

//ID returns the type id of symbol, or 0 if the symbol has no type.
func (T TypeTable) ID(symbol string) int { return T.ids[symbol] }

//Symbols returns the symbols ordered by type id.
func (T TypeTable) Symbols() []string { return slices.Clone(T.symbols) }

//Pair is a mixed Lennard-Jones interaction between two types. I <= J.
type Pair struct {
	I, J    int
	Epsilon float64
	Sigma   float64
}

func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}

//Mix combines the parameters of the surface type with those of every other type,
//using the geometric mean for epsilon and the arithmetic mean for sigma, both
//rounded to 4 decimals. Pairs between two non-surface types are not produced.
func Mix(surface string, types TypeTable, params map[string]Params) ([]Pair, error) {
	sid := types.ID(surface)
	if sid == 0 {
		return nil, &Error{fmt.Sprintf("surface element %q is not present in the structure", surface), []string{"Mix"}, true}
	}
	ps, ok := params[surface]
	if !ok {
		return nil, &MissingParameterError{Symbol: surface, deco: []string{"Mix"}}
	}
	var pairs []Pair
	for _, s := range types.symbols {
		if s == surface {
			continue
		}
		po, ok := params[s]
		if !ok {
			return nil, &MissingParameterError{Symbol: s, deco: []string{"Mix"}}
		}
		i, j := sid, types.ID(s)
		if j < i {
			i, j = j, i
		}
		pairs = append(pairs, Pair{
			I:       i,
			J:       j,
			Epsilon: round4(math.Sqrt(ps.Epsilon * po.Epsilon)),
			Sigma:   round4((ps.Sigma + po.Sigma) / 2),
		})
	}
	return pairs, nil
}
