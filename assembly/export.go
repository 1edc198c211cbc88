/*
 * export.go, part of nanocar.
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

package assembly

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/rmera/nanocar"
	"github.com/rmera/nanocar/config"
	"github.com/rmera/nanocar/ff"
	"github.com/rmera/nanocar/ffplot"
	"github.com/rmera/nanocar/lammps"
	"github.com/rs/zerolog"
)

// PlotFile is the name of the pair potential plot written next to the LAMMPS files.
const PlotFile = "pairs.png"

// ExportOptions are the per-run export settings. Zero values are taken
// from the configuration, or, for the box X and Y, from the ledger surface.
type ExportOptions struct {
	BoxX, BoxY, BoxZ float64 // nm
	SimLength        float64 // ns
	Timestep         float64 // fs
	Dir              string
	Ledger           *Ledger
}

// Exported lists what Export wrote.
type Exported struct {
	Dir    string
	Files  []string
	Groups []lammps.Group
	Pairs  []ff.Pair
}

// Exporter writes the LAMMPS files for a nanocar.
type Exporter struct {
	cfg    config.Export
	params *ff.Table
	logger zerolog.Logger
}

// NewExporter returns an Exporter using the UFF parameters.
func NewExporter(cfg config.Export, logger zerolog.Logger) (*Exporter, error) {
	t, err := ff.UFF()
	if err != nil {
		return nil, fmt.Errorf("loading UFF parameters: %w", err)
	}
	return &Exporter{cfg: cfg, params: t, logger: logger}, nil
}

func (E *Exporter) fill(o ExportOptions) ExportOptions {
	if o.Ledger == nil {
		o.Ledger = NewLedger()
	}
	if o.BoxX == 0 {
		o.BoxX = o.Ledger.Surface.X / 10
	}
	if o.BoxY == 0 {
		o.BoxY = o.Ledger.Surface.Y / 10
	}
	if o.BoxZ == 0 {
		o.BoxZ = E.cfg.BoxZ
	}
	if o.SimLength == 0 {
		o.SimLength = E.cfg.SimLength
	}
	if o.Timestep == 0 {
		o.Timestep = E.cfg.Timestep
	}
	if o.Dir == "" {
		o.Dir = E.cfg.OutputDir
	}
	return o
}

// ResolveDir returns dir if it is a directory, else its parent if that is one
// (dir was probably a file name), else the configured fallback directory.
func (E *Exporter) ResolveDir(dir string) string {
	if isDir(dir) {
		return dir
	}
	if parent := filepath.Dir(dir); isDir(parent) {
		E.logger.Debug().Str("requested", dir).Str("using", parent).Msg("output path is not a directory, using its parent")
		return parent
	}
	E.logger.Warn().Str("requested", dir).Str("using", E.cfg.FallbackDir).Msg("directory not found, using fallback directory")
	return E.cfg.FallbackDir
}

func isDir(dir string) bool {
	st, err := os.Stat(dir)
	return err == nil && st.IsDir()
}

// surfaceElement returns the element of the registered substrate, or the configured one.
func (E *Exporter) surfaceElement(mol *nanocar.Molecule, s Surface) string {
	if s.IDs[0] >= 1 && s.IDs[0] <= mol.Len() {
		return mol.Atom(s.IDs[0] - 1).Symbol
	}
	return E.cfg.SurfaceElement
}

// Export writes the data file and the input script for mol into the output directory.
// The molecule is centered in the box and is not modified.
func (E *Exporter) Export(mol *nanocar.Molecule, opts ExportOptions) (*Exported, error) {
	o := E.fill(opts)
	if o.BoxX <= 0 || o.BoxY <= 0 || o.BoxZ <= 0 {
		return nil, fmt.Errorf("export: invalid box %gx%gx%g nm", o.BoxX, o.BoxY, o.BoxZ)
	}
	cell := nanocar.Cell{A: o.BoxX * 10, B: o.BoxY * 10, C: o.BoxZ * 10}
	car := mol.WithCell(cell).Centered([3]float64{cell.A / 2, cell.B / 2, cell.C / 2})

	types := ff.AtomTypes(car.Symbols())
	params, err := E.params.Lookup(types.Symbols())
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	var pairs []ff.Pair
	surf := E.surfaceElement(car, o.Ledger.Surface)
	if types.ID(surf) == 0 {
		E.logger.Warn().Str("element", surf).Msg("no surface atoms in the structure, all pair interactions are zero")
	} else if pairs, err = ff.Mix(surf, types, params); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	groups, err := lammps.Partition(car.Len(), o.Ledger.Surface.IDs, o.Ledger.WheelRanges(), E.cfg.Multibody)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	var bodies []int
	if E.cfg.Multibody {
		bodies = lammps.Bodies(car.Len(), groups, true)
	}
	p := lammps.DefaultParameters()
	p.SimLength = o.SimLength
	p.Timestep = o.Timestep
	p.Temperature = E.cfg.Temperature
	p.WriteEvery = E.cfg.WriteEvery
	p.Cutoff = E.cfg.Cutoff
	p.Seed = E.cfg.Seed
	p.Multibody = E.cfg.Multibody
	p.Groups = groups
	p.Bonds = o.Ledger.Bonds()
	p.BondK = E.cfg.BondK
	p.BondR0 = E.cfg.BondR0

	dir := E.ResolveDir(o.Dir)
	ret := &Exported{Dir: dir, Groups: groups, Pairs: pairs}
	write := func(name string, f func(io.StringWriter) error) error {
		names, err := E.writeFile(filepath.Join(dir, name), f)
		ret.Files = append(ret.Files, names...)
		return err
	}
	err = write(p.DataFile, func(w io.StringWriter) error {
		return lammps.WriteData(w, car, types, params, bodies)
	})
	if err != nil {
		return ret, err
	}
	err = write(lammps.InputFile, func(w io.StringWriter) error {
		return lammps.WriteInput(w, types, pairs, p)
	})
	if err != nil {
		return ret, err
	}
	if E.cfg.Plot && len(pairs) > 0 {
		name := filepath.Join(dir, PlotFile)
		if err := ffplot.Save(types, pairs, p.Cutoff, name); err != nil {
			return ret, fmt.Errorf("export: %w", err)
		}
		ret.Files = append(ret.Files, name)
	}
	E.logger.Info().
		Str("dir", dir).
		Int("atoms", car.Len()).
		Int("types", types.Len()).
		Int("groups", len(groups)).
		Int("steps", p.Steps()).
		Msg("LAMMPS files written")
	return ret, nil
}

// compressors maps the compression setting to the suffix and writer of the
// compressed copy.
var compressors = map[string]struct {
	suffix string
	writer func(w io.Writer, name string) (io.WriteCloser, error)
}{
	"gzip": {".gz", func(w io.Writer, name string) (io.WriteCloser, error) {
		zw, err := gzip.NewWriterLevel(w, gzip.BestCompression)
		if err != nil {
			return nil, err
		}
		zw.Name = name
		return zw, nil
	}},
	"zstd": {".zst", func(w io.Writer, _ string) (io.WriteCloser, error) {
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	}},
}

// writeFile writes name with f and, if compression is on, a compressed copy next to it.
// It returns the names of the files written.
func (E *Exporter) writeFile(name string, f func(io.StringWriter) error) ([]string, error) {
	if err := writeWith(name, f, nil); err != nil {
		return nil, err
	}
	names := []string{name}
	c, ok := compressors[E.cfg.Compression]
	if !ok {
		return names, nil
	}
	zname := name + c.suffix
	zw := func(w io.Writer) (io.WriteCloser, error) { return c.writer(w, filepath.Base(name)) }
	if err := writeWith(zname, f, zw); err != nil {
		return names, err
	}
	return append(names, zname), nil
}

// writeWith creates name and writes to it with f, through the compressor zw if it is not nil.
func writeWith(name string, f func(io.StringWriter) error, zw func(io.Writer) (io.WriteCloser, error)) (err error) {
	file, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("creating %s: %w", name, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", name, cerr)
		}
	}()
	var out io.Writer = file
	var z io.WriteCloser
	if zw != nil {
		if z, err = zw(file); err != nil {
			return fmt.Errorf("compressing %s: %w", name, err)
		}
		out = z
	}
	bw := bufio.NewWriter(out)
	if err := f(bw); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	if z != nil {
		if err := z.Close(); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}
