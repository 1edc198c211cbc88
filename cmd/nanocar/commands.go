/*
 * commands.go, part of nanocar.
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

package main

import (
	"errors"
	"fmt"

	"github.com/rmera/nanocar/align"
	"github.com/rmera/nanocar/assembly"
	"github.com/rmera/nanocar/cjson"
)

type command struct {
	name    string
	display string
	menu    string
	options func(*app) (cjson.Menu, error)
	run     func(*app, *cjson.Input) (*cjson.Result, error)
}

var commands = []*command{
	{"connect-wheel", "Connect Wheel", MenuPath, connectOptions, connectWheel},
	{"add-wheel", "Add Wheel", MenuPath, legacyOptions, addWheel},
	{"add-chassis", "Add Chassis", MenuPath, chassisOptions, addChassis},
	{"build", "Nanocar!", "&Build", buildOptions, build},
	{"surface", "Register Surface", MenuPath, surfaceOptions, registerSurface},
	{"lammps-setup", "LAMMPS setup", MenuPath, lammpsOptions, lammpsSetup},
}

func connectOptions(a *app) (cjson.Menu, error) {
	wheels, err := a.asm.Catalog().Wheels(align.DualSite)
	if err != nil {
		return nil, err
	}
	return cjson.Menu{
		"wheel":              cjson.Choice("Wheel", a.cfg.Assembly.DefaultWheel, wheels),
		"append":             cjson.Check("Append", true),
		"d":                  cjson.Number("Bond Distance", a.cfg.Assembly.Bond, 2, "Å"),
		"refresh_wheel_list": cjson.Check("Refresh Wheel List", a.cfg.Assembly.RefreshLedger),
	}, nil
}

//attach runs the assembly for a host request. A bad selection is not an error:
//it is logged and the host gets a result without a structure.
func attach(a *app, in *cjson.Input, wheel string, appendMol bool, bond float64, mode align.Mode) (*cjson.Result, *assembly.Output, error) {
	if in.CJSON == nil {
		return nil, nil, fmt.Errorf("the host sent no structure")
	}
	chassis, err := in.CJSON.Molecule()
	if err != nil {
		return nil, nil, err
	}
	out, err := a.asm.Assemble(assembly.Request{
		Chassis:  chassis,
		Selected: in.CJSON.Selected(),
		Fragment: wheel,
		Merge:    !appendMol,
		Bond:     bond,
		Kind:     mode,
	})
	var serr *align.SelectionError
	if errors.As(err, &serr) {
		a.logger.Warn().Int("selected", serr.Count).Msg(serr.Error())
		res, err := cjson.NewResult(in.CJSON, appendMol, nil)
		return res, nil, err
	}
	if err != nil {
		return nil, nil, err
	}
	res, err := cjson.NewResult(in.CJSON, appendMol, out.Molecule)
	return res, out, err
}

func connectWheel(a *app, in *cjson.Input) (*cjson.Result, error) {
	wheel, err := in.String("wheel", a.cfg.Assembly.DefaultWheel)
	if err != nil {
		return nil, err
	}
	appendMol, err := in.Bool("append", true)
	if err != nil {
		return nil, err
	}
	bond, err := in.Float("d", a.cfg.Assembly.Bond)
	if err != nil {
		return nil, err
	}
	refresh, err := in.Bool("refresh_wheel_list", a.cfg.Assembly.RefreshLedger)
	if err != nil {
		return nil, err
	}
	res, out, err := attach(a, in, wheel, appendMol, bond, align.DualSite)
	if err != nil || out == nil {
		return res, err
	}
	L, err := assembly.LoadLedger(a.ledger)
	if err != nil {
		return nil, err
	}
	L.AddWheel(out.Placement, refresh)
	if err := L.Save(a.ledger); err != nil {
		return nil, err
	}
	a.logger.Info().Str("wheel", wheel).Int("start", out.Placement.Start).Int("atoms", out.Placement.NAtoms).Str("session", L.ID).Msg("wheel connected")
	return res, nil
}

func legacyOptions(a *app) (cjson.Menu, error) {
	wheels, err := a.asm.Catalog().Wheels(align.SingleSite)
	if err != nil {
		return nil, err
	}
	return cjson.Menu{
		"wheel":  cjson.Choice("Wheel", a.cfg.Assembly.DefaultWheel, wheels),
		"append": cjson.Choice("Append", "True", []string{"True", "False"}),
	}, nil
}

//addWheel attaches a single-site wheel. These are not recorded in the ledger.
func addWheel(a *app, in *cjson.Input) (*cjson.Result, error) {
	wheel, err := in.String("wheel", a.cfg.Assembly.DefaultWheel)
	if err != nil {
		return nil, err
	}
	appendStr, err := in.String("append", "True")
	if err != nil {
		return nil, err
	}
	res, _, err := attach(a, in, wheel, appendStr != "False", -1, align.SingleSite)
	return res, err
}

func chassisOptions(a *app) (cjson.Menu, error) {
	names, err := a.asm.Catalog().Names(assembly.Chassis)
	if err != nil {
		return nil, err
	}
	return cjson.Menu{
		"chassis":  cjson.Choice("Chassis", a.cfg.Assembly.DefaultChassis, names),
		"center-x": cjson.Number("X", 0, 3, "Å"),
		"center-y": cjson.Number("Y", 0, 3, "Å"),
		"center-z": cjson.Number("Z", 0, 3, "Å"),
	}, nil
}

func addChassis(a *app, in *cjson.Input) (*cjson.Result, error) {
	name, err := in.String("chassis", a.cfg.Assembly.DefaultChassis)
	if err != nil {
		return nil, err
	}
	var center [3]float64
	for i, k := range []string{"center-x", "center-y", "center-z"} {
		if center[i], err = in.Float(k, 0); err != nil {
			return nil, err
		}
	}
	mol, err := a.asm.Chassis(name, center)
	if err != nil {
		return nil, err
	}
	return cjson.NewResult(nil, true, mol)
}

func buildOptions(a *app) (cjson.Menu, error) {
	wheels, err := a.asm.Catalog().Names(assembly.Wheel)
	if err != nil {
		return nil, err
	}
	chassis, err := a.asm.Catalog().Names(assembly.Chassis)
	if err != nil {
		return nil, err
	}
	return cjson.Menu{
		"wheel":   cjson.Choice("Wheel", a.cfg.Assembly.DefaultWheel, wheels),
		"chassis": cjson.Choice("Chassis", a.cfg.Assembly.DefaultChassis, chassis),
	}, nil
}

func build(a *app, in *cjson.Input) (*cjson.Result, error) {
	wheel, err := in.String("wheel", a.cfg.Assembly.DefaultWheel)
	if err != nil {
		return nil, err
	}
	chassis, err := in.String("chassis", a.cfg.Assembly.DefaultChassis)
	if err != nil {
		return nil, err
	}
	mol, err := a.asm.Build(chassis, wheel)
	if err != nil {
		return nil, err
	}
	return cjson.NewResult(nil, true, mol)
}

func surfaceOptions(a *app) (cjson.Menu, error) {
	return cjson.Menu{}, nil
}

//registerSurface records the selected atoms as the substrate.
func registerSurface(a *app, in *cjson.Input) (*cjson.Result, error) {
	if in.CJSON == nil {
		return nil, fmt.Errorf("the host sent no structure")
	}
	mol, err := in.CJSON.Molecule()
	if err != nil {
		return nil, err
	}
	s, err := assembly.SurfaceFrom(mol, in.CJSON.Selected())
	if err != nil {
		return nil, err
	}
	L, err := assembly.LoadLedger(a.ledger)
	if err != nil {
		return nil, err
	}
	L.SetSurface(s)
	if err := L.Save(a.ledger); err != nil {
		return nil, err
	}
	a.logger.Info().Ints("ids", s.IDs[:]).Float64("x", s.X).Float64("y", s.Y).Msg("surface registered")
	return nil, nil
}

func lammpsOptions(a *app) (cjson.Menu, error) {
	L, err := assembly.LoadLedger(a.ledger)
	if err != nil {
		return nil, err
	}
	e := a.cfg.Export
	return cjson.Menu{
		"box_x":      cjson.Number("Simulation Box X (nm)", L.Surface.X/10, -1, ""),
		"box_y":      cjson.Number("Simulation Box Y (nm)", L.Surface.Y/10, -1, ""),
		"box_z":      cjson.Number("Simulation Box Z (nm)", e.BoxZ, -1, ""),
		"timestep":   cjson.Number("Timestep (fs)", e.Timestep, -1, ""),
		"sim_length": cjson.Number("Simulation length (ns)", e.SimLength, -1, ""),
		"dir":        cjson.Path("Save directory", e.OutputDir),
	}, nil
}

func lammpsSetup(a *app, in *cjson.Input) (*cjson.Result, error) {
	if in.CJSON == nil {
		return nil, fmt.Errorf("the host sent no structure")
	}
	mol, err := in.CJSON.Molecule()
	if err != nil {
		return nil, err
	}
	L, err := assembly.LoadLedger(a.ledger)
	if err != nil {
		return nil, err
	}
	o := assembly.ExportOptions{Ledger: L}
	floats := map[string]*float64{"box_x": &o.BoxX, "box_y": &o.BoxY, "box_z": &o.BoxZ, "timestep": &o.Timestep, "sim_length": &o.SimLength}
	for k, p := range floats {
		if *p, err = in.Float(k, 0); err != nil {
			return nil, err
		}
	}
	if o.Dir, err = in.String("dir", ""); err != nil {
		return nil, err
	}
	if _, err := a.exp.Export(mol, o); err != nil {
		return nil, err
	}
	return nil, nil
}
