/*
 * input.go, part of nanocar.
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

package lammps

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/rmera/nanocar/ff"
)

//Default file names, as the input script refers to them.
const (
	DataFile  = "data.nanocar"
	InputFile = "in.nanocar"
	DumpFile  = "traj.xyz"
)

//Parameters for the input script.
type Parameters struct {
	SimLength   float64 //ns
	Timestep    float64 //fs
	Temperature float64 //K
	WriteEvery  int     //thermo and dump interval, in steps
	Cutoff      float64 //LJ cutoff, A
	Seed        int
	Multibody   bool
	Groups      []Group
	Bonds       [][2]int //1-based atom pairs joined by a harmonic bond, multibody only
	BondK       float64  //kcal/mol/A^2
	BondR0      float64  //A
	DataFile    string
	DumpFile    string
}

//DefaultParameters returns the parameters of a 1 ns, 300 K run with a 1 fs
//timestep. The bond parameters are UFF's for sp carbons.
func DefaultParameters() *Parameters {
	return &Parameters{
		SimLength:   1,
		Timestep:    1,
		Temperature: 300,
		WriteEvery:  10000,
		Cutoff:      13.0,
		Seed:        123456,
		BondK:       693.14,
		BondR0:      1.21,
		DataFile:    DataFile,
		DumpFile:    DumpFile,
	}
}

//Steps returns the number of MD steps in the run.
func (P *Parameters) Steps() int {
	return int(math.Round(P.SimLength / P.Timestep * 1e6))
}

//pyFloat formats x with the shortest representation, always with a decimal point.
func pyFloat(x float64) string {
	s := strconv.FormatFloat(x, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

//WriteInput writes the LAMMPS input script. Only the pairs in pairs get
//non-zero LJ coefficients. All other pairs are zeroed.
func WriteInput(w io.StringWriter, types ff.TypeTable, pairs []ff.Pair, p *Parameters) (err error) {
	if p.Timestep <= 0 || p.SimLength < 0 {
		return &Error{fmt.Sprintf("invalid run length %g ns with timestep %g fs", p.SimLength, p.Timestep), []string{"WriteInput"}, true}
	}
	for _, pr := range pairs {
		if pr.I < 1 || pr.J > types.Len() || pr.I > pr.J {
			return &Error{fmt.Sprintf("pair %d-%d invalid for %d types", pr.I, pr.J, types.Len()), []string{"WriteInput"}, true}
		}
	}
	bodies := RigidBodies(p.Groups, p.Multibody)
	defer func() {
		if r := recover(); r != nil {
			err = &Error{fmt.Sprintf("writing input script: %v", r), []string{"WriteInput"}, true}
		}
	}()
	ws := func(s string) {
		_, err := w.WriteString(s)
		qerr(err)
	}
	pr := func(format string, a ...any) {
		ws(fmt.Sprintf(format, a...))
	}
	readData := "read_data       " + p.DataFile
	if p.Multibody {
		readData += " extra/bond/types 1 extra/bond/per/atom 1"
	}
	pr("\nunits           real\natom_style      full\nboundary        p p p\n%s\n", readData)
	for _, g := range p.Groups {
		pr("group           %-20s  id %d:%d\n", g.Name, g.Start, g.End)
	}

	pr("\npair_style      lj/cut %s\npair_modify     tail yes mix arithmetic\n", pyFloat(p.Cutoff))
	ws("pair_coeff      * * 0 0\n")
	for _, c := range pairs {
		pr("pair_coeff      %d %d %s %s\n", c.I, c.J, pyFloat(c.Epsilon), pyFloat(c.Sigma))
	}

	if p.Multibody {
		ws("\nbond_style      harmonic\n")
		for _, b := range p.Bonds {
			pr("create_bonds    single/bond  %d %d %d\n", 1, b[0], b[1])
		}
		pr("bond_coeff      1 %s %s # C_1 C_1\n", num(p.BondK), num(p.BondR0))
	}

	pr("\ncompute         C1 %s com\n", NanocarGroup)
	pr("variable        seed equal %d\n", p.Seed)
	pr("variable        T equal %s\n", num(p.Temperature))
	pr("thermo          %d\n", p.WriteEvery)
	ws("thermo_style    custom step temp press etotal epair emol c_C1[1] c_C1[2] c_C1[3]\n")
	pr("timestep        %s\n", pyFloat(p.Timestep))
	pr("dump            1 %s custom %d %s id element xu yu zu\n", NanocarGroup, p.WriteEvery, p.DumpFile)
	pr("dump_modify     1 element %s\n", strings.Join(types.Symbols(), " "))

	for k, b := range bodies {
		pr("fix             RIG%d %s rigid/nvt single temp $T $T 100\n", k+1, b)
		pr("velocity        %s zero linear rigid RIG%d\n", b, k+1)
	}
	pr("run             %d\n", p.Steps())
	for k := range bodies {
		pr("unfix           RIG%d\n", k+1)
	}
	return nil
}
