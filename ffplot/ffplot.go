/*
 * ffplot.go, part of nanocar.
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

//Package ffplot draws the Lennard-Jones curves of the mixed surface pairs,
//as a quick check of the parameters before running a simulation.
package ffplot

import (
	"fmt"
	"io"
	"math"

	"github.com/rmera/nanocar/ff"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//Points is the number of points in each curve.
const Points = 200

//LJ returns the 12-6 Lennard-Jones energy at distance r.
func LJ(epsilon, sigma, r float64) float64 {
	sr6 := math.Pow(sigma/r, 6)
	return 4 * epsilon * (sr6*sr6 - sr6)
}

//Curve returns the points of the LJ curve of p, from 0.85 sigma to
//the cutoff (or 3 sigma if cutoff is not larger than that).
func Curve(p ff.Pair, cutoff float64) plotter.XYs {
	rmin := 0.85 * p.Sigma
	rmax := cutoff
	if rmax <= 3*p.Sigma {
		rmax = 3 * p.Sigma
	}
	pts := make(plotter.XYs, Points)
	step := (rmax - rmin) / float64(Points-1)
	for i := range pts {
		r := rmin + float64(i)*step
		pts[i].X = r
		pts[i].Y = LJ(p.Epsilon, p.Sigma, r)
	}
	return pts
}

//Plot returns a plot with one curve per pair, labeled with the element symbols.
func Plot(types ff.TypeTable, pairs []ff.Pair, cutoff float64, title string) (*plot.Plot, error) {
	if len(pairs) == 0 {
		return nil, fmt.Errorf("ffplot: no pairs to plot")
	}
	symbols := types.Symbols()
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "r (A)"
	p.Y.Label.Text = "E (kcal/mol)"
	p.Add(plotter.NewGrid())
	ymin := 0.0
	for key, pr := range pairs {
		if pr.I < 1 || pr.J > len(symbols) {
			return nil, fmt.Errorf("ffplot: pair %d-%d out of range for %d types", pr.I, pr.J, len(symbols))
		}
		l, err := plotter.NewLine(Curve(pr, cutoff))
		if err != nil {
			return nil, err
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = lineColor(key, len(pairs))
		p.Add(l)
		p.Legend.Add(fmt.Sprintf("%s-%s", symbols[pr.I-1], symbols[pr.J-1]), l)
		ymin = math.Min(ymin, -pr.Epsilon)
	}
	//the repulsive wall would flatten everything else.
	p.Y.Min = 1.2 * ymin
	p.Y.Max = -ymin
	p.Legend.Top = true
	return p, nil
}

//Save writes the plot to filename. The format is taken from the extension.
func Save(types ff.TypeTable, pairs []ff.Pair, cutoff float64, filename string) error {
	p, err := Plot(types, pairs, cutoff, "Surface pair potentials")
	if err != nil {
		return err
	}
	return p.Save(5*vg.Inch, 4*vg.Inch, filename)
}

//Write writes the plot to w in the given format ("png", "svg", "pdf"...).
func Write(w io.Writer, types ff.TypeTable, pairs []ff.Pair, cutoff float64, format string) error {
	p, err := Plot(types, pairs, cutoff, "Surface pair potentials")
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(5*vg.Inch, 4*vg.Inch, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
