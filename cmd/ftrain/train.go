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
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"seehuhn.de/go/ftrain/ftrain"
	"seehuhn.de/go/ftrain/internal/float"
)

func (a *app) quadCmd() *cobra.Command {
	var dim int
	var lb, ub float64
	var codecName string
	cmd := &cobra.Command{
		Use:   "quad FILE",
		Short: "Build the function train of a quadratic form and save it",
		Long: "Build the function train of the quadratic form xᵀQx with\n" +
			"Q_ij = 1/(1+|i-j|) on the box [lb, ub]^dim, and save it to FILE.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dim < 2 {
				return fmt.Errorf("--dim must be at least 2, got %d", dim)
			}
			if !(lb < ub) {
				return fmt.Errorf("invalid interval [%g, %g]", lb, ub)
			}
			codec, err := a.opts.Codec()
			if err != nil {
				return err
			}
			if codecName != "" {
				codec, err = ftrain.ParseCodec(codecName)
				if err != nil {
					return err
				}
			}
			class, kind, err := a.opts.ClassKind()
			if err != nil {
				return err
			}
			ao, err := a.opts.ApproxOpts()
			if err != nil {
				return err
			}

			q := make([]float64, dim*dim)
			for i := range dim {
				for j := range dim {
					q[i*dim+j] = 1 / float64(1+abs(i-j))
				}
			}
			m := make([]float64, dim)
			ft, err := ftrain.Quadratic(class, kind, q, m, ftrain.NewBox(dim, lb, ub), ao)
			if err != nil {
				return err
			}
			if err := ft.Save(args[0], codec); err != nil {
				return err
			}
			a.log.Info("function train saved",
				zap.String("file", args[0]),
				zap.Stringer("codec", codec))
			a.p.Fprintf(cmd.OutOrStdout(), "%s written to %s (%s)\n", ft, args[0], codec)
			return nil
		},
	}
	cmd.Flags().IntVar(&dim, "dim", 3, "number of variables")
	cmd.Flags().Float64Var(&lb, "lb", -1, "lower bound in every dimension")
	cmd.Flags().Float64Var(&ub, "ub", 1, "upper bound in every dimension")
	cmd.Flags().StringVar(&codecName, "codec", "", "compression: none, lz4 or zstd (default from options)")
	return cmd
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

func (a *app) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Show the structure of a saved function train",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ft, err := ftrain.Load(args[0])
			if err != nil {
				return err
			}
			a.printInfo(cmd.OutOrStdout(), ft, terminalWidth())
			return nil
		},
	}
}

// printInfo writes a summary of ft.  If width is positive, the table of
// bounds is wrapped to fit into this many columns.
func (a *app) printInfo(w io.Writer, ft *ftrain.FT, width int) {
	ranks := ft.Ranks()
	parts := make([]string, len(ranks))
	params := 0
	for i, r := range ranks {
		parts[i] = a.p.Sprintf("%d", r)
		if i > 0 {
			params += ranks[i-1] * r
		}
	}
	a.p.Fprintf(w, "dimension: %d\n", ft.Dim())
	a.p.Fprintf(w, "ranks:     %s\n", strings.Join(parts, "-"))
	a.p.Fprintf(w, "max rank:  %d\n", ft.MaxRank())
	a.p.Fprintf(w, "functions: %d\n", params)

	box := ft.Bounds()
	cells := make([]string, ft.Dim())
	cellWidth := 0
	for k := range cells {
		cells[k] = fmt.Sprintf("x%d ∈ [%s, %s]", k+1,
			float.Format(box.Lb[k], 4), float.Format(box.Ub[k], 4))
		cellWidth = max(cellWidth, len([]rune(cells[k])))
	}
	perLine := len(cells)
	if width > 0 {
		perLine = max(1, width/(cellWidth+2))
	}
	fmt.Fprintln(w, "bounds:")
	for k, c := range cells {
		fmt.Fprintf(w, "  %-*s", cellWidth, c)
		if (k+1)%perLine == 0 || k == len(cells)-1 {
			fmt.Fprintln(w)
		}
	}
}

// terminalWidth returns the width of the terminal connected to standard
// output, or 0 if standard output is not a terminal.
func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}
