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

// Package ftrain implements function trains, a tensor-train format for
// functions of several variables.
//
// A function train of dimension D represents
//
//	f(x_1, ..., x_D) = G_1(x_1) · G_2(x_2) · ... · G_D(x_D),
//
// where each core G_k is a matrix of functions of one variable
// ([qmarray.Qmarray]) of shape r_{k-1}×r_k, with r_0 = r_D = 1.
// The numbers r_k are the ranks of the train.
//
// Function trains for a number of structured functions, for example sums
// of univariate functions and quadratic forms, can be built directly
// using the constructors in this package.  Trains can be serialized with
// [FT.Encode] and stored in compressed files with [FT.Save].
package ftrain

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"seehuhn.de/go/ftrain/qmarray"
)

var logger = zap.NewNop()

// SetLogger sets the logger used by the package.
// Passing nil disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// FT is a function train.
type FT struct {
	dim   int
	ranks []int
	cores []*qmarray.Qmarray
}

// FromCores assembles a function train from the given cores.
// The cores are not copied.
//
// The first core must have one row, the last core one column, and the
// number of columns of each core must equal the number of rows of the
// next core.  FromCores panics if this is not the case.
func FromCores(cores []*qmarray.Qmarray) *FT {
	ranks, err := coreRanks(cores)
	if err != nil {
		panic("ftrain: " + err.Error())
	}
	return &FT{dim: len(cores), ranks: ranks, cores: cores}
}

// coreRanks checks the shapes of the cores and returns the ranks.
func coreRanks(cores []*qmarray.Qmarray) ([]int, error) {
	if len(cores) == 0 {
		return nil, errors.New("function train without cores")
	}
	ranks := make([]int, len(cores)+1)
	ranks[0] = 1
	for k, core := range cores {
		r, c := core.Shape()
		if r != ranks[k] {
			return nil, fmt.Errorf("core %d has %d rows, expected %d", k, r, ranks[k])
		}
		if r < 1 || c < 1 {
			return nil, fmt.Errorf("core %d has shape %d×%d", k, r, c)
		}
		ranks[k+1] = c
	}
	if last := ranks[len(cores)]; last != 1 {
		return nil, fmt.Errorf("last core has %d columns", last)
	}
	return ranks, nil
}

// Dim returns the number of input variables.
func (ft *FT) Dim() int {
	return ft.dim
}

// Ranks returns the ranks r_0, ..., r_D of the train.
func (ft *FT) Ranks() []int {
	return append([]int(nil), ft.ranks...)
}

// MaxRank returns the largest rank of the train.
func (ft *FT) MaxRank() int {
	m := 0
	for _, r := range ft.ranks {
		m = max(m, r)
	}
	return m
}

// Core returns core k, for 0 <= k < Dim().
// The core is owned by ft and must not be modified.
func (ft *FT) Core(k int) *qmarray.Qmarray {
	return ft.cores[k]
}

// Copy returns a deep copy of ft.
func (ft *FT) Copy() *FT {
	cores := make([]*qmarray.Qmarray, ft.dim)
	for k, core := range ft.cores {
		cores[k] = core.Copy()
	}
	return &FT{dim: ft.dim, ranks: ft.Ranks(), cores: cores}
}

// Eval evaluates the function train at x, which must have length Dim().
//
// The value is computed from left to right: a row vector, starting with
// the 1×r_1 matrix G_1(x_1), is multiplied by G_k(x_k) for k = 2, ..., D.
func (ft *FT) Eval(x []float64) float64 {
	if len(x) != ft.dim {
		panic(fmt.Sprintf("ftrain: %d-dimensional point for %d-dimensional train", len(x), ft.dim))
	}

	v := mat.NewVecDense(1, []float64{1})
	for k, core := range ft.cores {
		r, c := core.Shape()
		// The column-major r×c core, read in row-major order, is the
		// transposed matrix.
		gt := mat.NewDense(c, r, core.Eval(x[k]))
		next := mat.NewVecDense(c, nil)
		next.MulVec(gt, v)
		v = next
	}
	return v.AtVec(0)
}

// Bounds returns the domain of the function train.  The bounds of each
// dimension are taken from the first entry of the corresponding core.
func (ft *FT) Bounds() *Box {
	b := &Box{Lb: make([]float64, ft.dim), Ub: make([]float64, ft.dim)}
	for k, core := range ft.cores {
		f := core.Get(0, 0)
		b.Lb[k] = f.Lb()
		b.Ub[k] = f.Ub()
	}
	return b
}

func (ft *FT) String() string {
	parts := make([]string, len(ft.ranks))
	for i, r := range ft.ranks {
		parts[i] = fmt.Sprint(r)
	}
	return fmt.Sprintf("FT(dim=%d, ranks=%s)", ft.dim, strings.Join(parts, "-"))
}
