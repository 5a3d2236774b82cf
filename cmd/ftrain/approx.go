// seehuhn.de/go/ftrain - function-train approximation of multivariate functions
// Copyright (C) 2025  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"seehuhn.de/go/ftrain/funcs"
	"seehuhn.de/go/ftrain/internal/float"
	"seehuhn.de/go/ftrain/internal/plot"
	"seehuhn.de/go/ftrain/piecewise"
)

func (a *app) approxCmd() *cobra.Command {
	var pngFile string
	var npoints int
	cmd := &cobra.Command{
		Use:   "approx NAME",
		Short: "Approximate a builtin function of one variable",
		Long: "Approximate a builtin function of one variable using the configured\n" +
			"function class, and report the approximation error.\n\n" +
			"Functions: " + strings.Join(sortedNames(builtins1), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := lookup1(args[0])
			if err != nil {
				return err
			}
			class, kind, err := a.opts.ClassKind()
			if err != nil {
				return err
			}
			ao, err := a.opts.ApproxOpts()
			if err != nil {
				return err
			}

			g, err := funcs.Approximate1D(class, kind, b.f, b.lb, b.ub, ao)
			if err != nil {
				return err
			}

			maxErr := 0.0
			n := max(npoints, 2)
			for i := range n {
				x := b.lb + (b.ub-b.lb)*float64(i)/float64(n-1)
				maxErr = max(maxErr, math.Abs(g.Eval(x)-b.f(x)))
			}

			out := cmd.OutOrStdout()
			a.p.Fprintf(out, "function:  %s on [%s, %s]\n", b.desc,
				float.Format(b.lb, 6), float.Format(b.ub, 6))
			a.p.Fprintf(out, "class:     %s (%s)\n", class, kind)
			if pw := g.Piecewise(); pw != nil {
				a.p.Fprintf(out, "regions:   %d\n", pw.NRegions())
			}
			a.p.Fprintf(out, "integral:  %.10g\n", g.Integral())
			a.p.Fprintf(out, "max error: %s (%d points)\n", float.Error(maxErr), n)

			if pngFile != "" {
				if err := a.writePlot(pngFile, b, g); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pngFile, "png", "", "write a plot to this `file`")
	cmd.Flags().IntVar(&npoints, "points", 1000, "number of test points")
	return cmd
}

func (a *app) writePlot(path string, b builtin1, g *funcs.Func) (err error) {
	p := plot.New(640, 400, b.lb, b.ub)
	p.Add(b.f, color.RGBA{R: 0xC0, G: 0xC0, B: 0xC0, A: 0xFF})
	p.Add(g.Eval, color.RGBA{R: 0xD0, G: 0x20, B: 0x20, A: 0xFF})
	if pw := g.Piecewise(); pw != nil {
		bb := pw.Boundaries()
		for _, x := range bb[1 : len(bb)-1] {
			p.Mark(x)
		}
	}

	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := fd.Close()
		if err == nil {
			err = closeErr
		}
	}()
	a.log.Debug("writing plot", zap.String("file", path))
	return p.WritePNG(fd)
}

func (a *app) jumpsCmd() *cobra.Command {
	var nsplit int
	var tol float64
	cmd := &cobra.Command{
		Use:   "jumps NAME",
		Short: "Locate the discontinuities of a builtin function",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := lookup1(args[0])
			if err != nil {
				return err
			}
			if nsplit < 2 {
				return fmt.Errorf("--nsplit must be at least 2, got %d", nsplit)
			}
			edges := piecewise.LocateJumps(b.f, b.lb, b.ub, nsplit, tol)

			out := cmd.OutOrStdout()
			a.p.Fprintf(out, "%d jump(s) in %s\n", len(edges), b.desc)
			for _, x := range edges {
				a.p.Fprintf(out, "  x = %s\n", float.Format(x, 8))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&nsplit, "nsplit", 10, "number of sub-intervals per level")
	cmd.Flags().Float64Var(&tol, "tol", 1e-6, "width below which refinement stops")
	return cmd
}
