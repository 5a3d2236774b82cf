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

// Package skeleton implements skeleton (cross) decompositions of functions
// of two variables.
//
// Given pivots (x_1, y_1), ..., (x_r, y_r), a function f is approximated
// by
//
//	f(x, y) ≈ Σ_{j,k} f(x, y_j) S_{jk} f(x_k, y),
//
// where S is the pseudo-inverse of the r×r matrix C with entries
// C_{ij} = f(x_i, y_j).  The approximation reproduces f along all lines
// through the pivots.
package skeleton

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"seehuhn.de/go/ftrain/funcs"
	"seehuhn.de/go/ftrain/internal/linalg"
	"seehuhn.de/go/ftrain/poly"
	"seehuhn.de/go/ftrain/qmarray"
)

// Cutoff is the threshold below which singular values of the pivot
// matrix are ignored.
const Cutoff = 1e-15

var logger = zap.NewNop()

// SetLogger sets the logger used by the package.
// Passing nil disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Axis describes the domain and the representation used for one of the
// two variables.
type Axis struct {
	Lb, Ub float64
	Class  funcs.Class
	Kind   poly.Kind
	Opts   *funcs.ApproxOpts
}

// Decomp is a skeleton decomposition of rank r.
type Decomp struct {
	r int

	// x[j] approximates f(·, y_j) and y[k] approximates f(x_k, ·).
	x, y *qmarray.Quasimatrix

	// s is the r×r skeleton matrix in column-major order.
	s []float64

	// xs is the product x·s, used for evaluation.
	xs *qmarray.Quasimatrix
}

// New computes the skeleton decomposition of f for the pivots
// (pivx[i], pivy[i]).  The two slices must have the same, non-zero
// length.
func New(f func(x, y float64) float64, pivx, pivy []float64, ax, ay Axis) (*Decomp, error) {
	r := len(pivx)
	if r == 0 || len(pivy) != r {
		panic(fmt.Sprintf("skeleton: %d x-pivots and %d y-pivots", len(pivx), len(pivy)))
	}

	// fibers along x at the pivot y-values, and along y at the pivot
	// x-values
	cutsX := funcs.FiberCut2DArray(f, 0, pivy)
	x, err := qmarray.QuasimatrixFromFiberCuts(cutsX, ax.Class, ax.Kind, ax.Lb, ax.Ub, ax.Opts)
	if err != nil {
		return nil, fmt.Errorf("x fibers: %w", err)
	}
	cutsY := funcs.FiberCut2DArray(f, 1, pivx)
	y, err := qmarray.QuasimatrixFromFiberCuts(cutsY, ay.Class, ay.Kind, ay.Lb, ay.Ub, ay.Opts)
	if err != nil {
		return nil, fmt.Errorf("y fibers: %w", err)
	}

	c := mat.NewDense(r, r, nil)
	for i := range r {
		for j := range r {
			c.Set(i, j, f(pivx[i], pivy[j]))
		}
	}
	sInv, rank, err := linalg.Pinv(c, Cutoff)
	if err != nil {
		return nil, err
	}
	if rank < r {
		logger.Debug("singular pivot matrix",
			zap.Int("size", r),
			zap.Int("rank", rank))
	}

	d := &Decomp{r: r, x: x, y: y, s: linalg.ColMajor(sInv)}
	d.xs, err = x.QMM(d.s, r)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// Rank returns the number of pivots.
func (d *Decomp) Rank() int {
	return d.r
}

// X returns the fibers along the first coordinate.
// The result is owned by d and must not be modified.
func (d *Decomp) X() *qmarray.Quasimatrix {
	return d.x
}

// Y returns the fibers along the second coordinate.
// The result is owned by d and must not be modified.
func (d *Decomp) Y() *qmarray.Quasimatrix {
	return d.y
}

// Skeleton returns a copy of the r×r skeleton matrix, in column-major
// order.
func (d *Decomp) Skeleton() []float64 {
	return append([]float64(nil), d.s...)
}

// Copy returns a deep copy of d.
func (d *Decomp) Copy() *Decomp {
	return &Decomp{
		r:  d.r,
		x:  d.x.Copy(),
		y:  d.y.Copy(),
		s:  d.Skeleton(),
		xs: d.xs.Copy(),
	}
}

// Eval evaluates the decomposition at (x, y).
func (d *Decomp) Eval(x, y float64) float64 {
	u := d.xs.Eval(x)
	v := d.y.Eval(y)
	return mat.Dot(mat.NewVecDense(d.r, u), mat.NewVecDense(d.r, v))
}
