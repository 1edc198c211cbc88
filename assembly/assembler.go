/*
 * assembler.go, part of nanocar.
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

// Package assembly puts nanocars together: it attaches wheels from a catalog
// to a chassis, keeps a ledger of what was attached, and exports the result
// to LAMMPS.
package assembly

import (
	"fmt"

	"github.com/rmera/nanocar"
	"github.com/rmera/nanocar/align"
	"github.com/rmera/nanocar/config"
	"github.com/rs/zerolog"
)

// WheelOffset is the displacement, in A, of the wheel from the chassis in Build.
var WheelOffset = [3]float64{5, 0, 0}

// Request describes one wheel attachment.
type Request struct {
	Chassis  *nanocar.Molecule
	Selected []int   // chassis atoms selected by the user, exactly one is expected
	Fragment string  // wheel name in the catalog
	Merge    bool    // return the chassis with the wheel, instead of the wheel alone
	Bond     float64 // A. Negative means the configured bond length
	Kind     align.Mode
}

// Output is the result of an attachment.
type Output struct {
	Molecule  *nanocar.Molecule
	Placement Placement
	Result    *align.Result
}

// Assembler attaches wheels to chassis.
type Assembler struct {
	cfg    config.Assembly
	cat    *Catalog
	logger zerolog.Logger
}

// New returns an Assembler that takes its fragments from cat.
func New(cfg config.Assembly, cat *Catalog, logger zerolog.Logger) *Assembler {
	return &Assembler{cfg: cfg, cat: cat, logger: logger}
}

// Catalog returns the catalog used by the assembler.
func (A *Assembler) Catalog() *Catalog {
	return A.cat
}

// Assemble attaches the requested wheel to the chassis. The selection is checked
// before anything else, so a bad one always gives an *align.SelectionError.
// If the chassis has no bonds, they are guessed from the distances. In merge
// mode, the output has the chassis atoms first and is centered on the selected atom.
func (A *Assembler) Assemble(req Request) (*Output, error) {
	chassis := req.Chassis
	natoms := 0
	if chassis != nil {
		natoms = chassis.Len()
	}
	if err := align.CheckSelection(natoms, req.Selected); err != nil {
		return nil, err
	}
	if len(chassis.Bonds) == 0 {
		bonds, err := nanocar.AssignBonds(chassis)
		if err != nil {
			return nil, fmt.Errorf("assemble: guessing chassis bonds: %w", err)
		}
		chassis = chassis.Copy()
		chassis.Bonds = bonds
		A.logger.Debug().Int("bonds", bonds.Len()).Msg("chassis had no bonds, guessed from distances")
	}
	site, err := align.NewSite(chassis, req.Selected)
	if err != nil {
		return nil, err
	}
	frag, err := A.cat.FragmentAs(req.Fragment, req.Kind)
	if err != nil {
		return nil, err
	}
	bond := req.Bond
	if bond < 0 {
		bond = A.cfg.Bond
	}
	res, err := align.Align(chassis, site, frag, bond)
	if err != nil {
		return nil, fmt.Errorf("attaching %s to atom %d: %w", req.Fragment, site.Selected, err)
	}
	A.logger.Debug().
		Str("wheel", req.Fragment).
		Stringer("mode", frag.Mode).
		Int("selected", site.Selected).
		Int("neighbor", site.Neighbor).
		Float64("bond", bond).
		Msg("wheel aligned")
	if frag.Mode == align.DualSite && res.BondSite < 0 {
		A.logger.Warn().
			Str("wheel", req.Fragment).
			Msg("no wheel atom on the alignment site, bonding the first wheel atom")
	}

	out := &Output{Result: res, Molecule: res.Fragment}
	start := chassis.Len() + 1
	out.Placement = Placement{
		Name:   req.Fragment,
		Start:  start,
		NAtoms: res.Fragment.Len(),
		Bond:   [2]int{site.Selected + 1, start + max(res.BondSite, 0)},
	}
	if req.Merge {
		out.Molecule = nanocar.Merge(chassis, res.Fragment).Centered(chassis.Coord(site.Selected))
	}
	return out, nil
}

// Chassis returns the catalog chassis name, centered at center.
func (A *Assembler) Chassis(name string, center [3]float64) (*nanocar.Molecule, error) {
	if name == "" {
		name = A.cfg.DefaultChassis
	}
	mol, err := A.cat.Molecule(Chassis, name)
	if err != nil {
		return nil, err
	}
	return mol.Centered(center), nil
}

// Build puts the catalog wheel next to the catalog chassis, displaced by WheelOffset,
// without connecting them. The wheel keeps its marker atoms.
func (A *Assembler) Build(chassis, wheel string) (*nanocar.Molecule, error) {
	if chassis == "" {
		chassis = A.cfg.DefaultChassis
	}
	if wheel == "" {
		wheel = A.cfg.DefaultWheel
	}
	c, err := A.cat.Molecule(Chassis, chassis)
	if err != nil {
		return nil, err
	}
	w, err := A.cat.Molecule(Wheel, wheel)
	if err != nil {
		return nil, err
	}
	return nanocar.Merge(c, w.Translated(WheelOffset)), nil
}
