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
	"math"
	"strings"

	"github.com/spf13/cobra"

	"seehuhn.de/go/ftrain/internal/float"
	"seehuhn.de/go/ftrain/skeleton"
)

func (a *app) skeletonCmd() *cobra.Command {
	var rank, grid int
	cmd := &cobra.Command{
		Use:   "skeleton NAME",
		Short: "Build a skeleton decomposition of a builtin function of two variables",
		Long: "Build a skeleton decomposition of a builtin function of two variables,\n" +
			"using equally spaced pivots, and report the errors.\n\n" +
			"Functions: " + strings.Join(sortedNames(builtins2), ", "),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := lookup2(args[0])
			if err != nil {
				return err
			}
			if rank < 1 {
				return fmt.Errorf("--rank must be positive, got %d", rank)
			}
			class, kind, err := a.opts.ClassKind()
			if err != nil {
				return err
			}
			ao, err := a.opts.ApproxOpts()
			if err != nil {
				return err
			}

			pivx, pivy := pivots(rank, b.lb, b.ub)
			axis := skeleton.Axis{Lb: b.lb, Ub: b.ub, Class: class, Kind: kind, Opts: ao}
			d, err := skeleton.New(b.f, pivx, pivy, axis, axis)
			if err != nil {
				return err
			}

			pivErr := 0.0
			for _, x := range pivx {
				for _, y := range pivy {
					pivErr = max(pivErr, math.Abs(d.Eval(x, y)-b.f(x, y)))
				}
			}
			gridErr := 0.0
			n := max(grid, 2)
			for i := range n {
				x := b.lb + (b.ub-b.lb)*float64(i)/float64(n-1)
				for j := range n {
					y := b.lb + (b.ub-b.lb)*float64(j)/float64(n-1)
					gridErr = max(gridErr, math.Abs(d.Eval(x, y)-b.f(x, y)))
				}
			}

			out := cmd.OutOrStdout()
			a.p.Fprintf(out, "function:     %s on [%s, %s]²\n", b.desc,
				float.Format(b.lb, 6), float.Format(b.ub, 6))
			a.p.Fprintf(out, "rank:         %d\n", d.Rank())
			a.p.Fprintf(out, "pivot error:  %s\n", float.Error(pivErr))
			a.p.Fprintf(out, "grid error:   %s (%d×%d points)\n", float.Error(gridErr), n, n)
			return nil
		},
	}
	cmd.Flags().IntVar(&rank, "rank", 3, "number of pivots")
	cmd.Flags().IntVar(&grid, "grid", 50, "number of grid points per axis for the error estimate")
	return cmd
}

// pivots returns r x-pivots at the centres of r equal sub-intervals of
// [lb, ub], and r y-pivots shifted by a third of the spacing.
func pivots(r int, lb, ub float64) ([]float64, []float64) {
	h := (ub - lb) / float64(r)
	pivx := make([]float64, r)
	pivy := make([]float64, r)
	for i := range r {
		pivx[i] = lb + (float64(i)+0.5)*h
		pivy[i] = lb + (float64(i)+1.0/3)*h
	}
	return pivx, pivy
}
