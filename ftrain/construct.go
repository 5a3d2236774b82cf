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

package ftrain

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"seehuhn.de/go/ftrain/funcs"
	"seehuhn.de/go/ftrain/poly"
	"seehuhn.de/go/ftrain/qmarray"
)

// RankOne returns the product f(x_1, 1)·f(x_2, 2)·...·f(x_D, D) as a
// function train of rank one.  The second argument of f is the zero-based
// dimension index.
func RankOne(f func(x float64, k int) float64, box *Box, args Args) (*FT, error) {
	dim := box.Dim()
	b := newBuilder(box, args)
	cores := make([]*qmarray.Qmarray, dim)
	for k := range dim {
		g := b.approx(k, func(x float64) float64 { return f(x, k) })
		cores[k] = single(g)
	}
	return finish(b, cores, "rank one")
}

// InitSum returns the sum fs[0](x_1) + ... + fs[D-1](x_D) as a function
// train of rank two.
func InitSum(fs []func(float64) float64, box *Box, args Args) (*FT, error) {
	dim := box.Dim()
	if len(fs) != dim {
		panic(fmt.Sprintf("ftrain: %d functions for dimension %d", len(fs), dim))
	}
	b := newBuilder(box, args)
	cores := sumCores(b, func(k int) *funcs.Func {
		return b.approx(k, fs[k])
	})
	return finish(b, cores, "sum")
}

// InitSum2 is like [InitSum], but uses a single callback which receives
// the zero-based dimension index as its second argument.
func InitSum2(f func(x float64, k int) float64, box *Box, args Args) (*FT, error) {
	b := newBuilder(box, args)
	cores := sumCores(b, func(k int) *funcs.Func {
		return b.approx(k, func(x float64) float64 { return f(x, k) })
	})
	return finish(b, cores, "sum")
}

// Linear returns Σ_k coeffs[k]·x_k as a function train.
// The same function class is used in all dimensions.
func Linear(class funcs.Class, kind poly.Kind, coeffs []float64, box *Box, opts *funcs.ApproxOpts) (*FT, error) {
	dim := box.Dim()
	if len(coeffs) != dim {
		panic(fmt.Sprintf("ftrain: %d coefficients for dimension %d", len(coeffs), dim))
	}
	b := newBuilder(box, uniformArgs(dim, Approx{Class: class, Kind: kind, Opts: opts}))
	cores := sumCores(b, func(k int) *funcs.Func {
		return b.linear(k, coeffs[k], 0)
	})
	return finish(b, cores, "linear")
}

// Linear2 returns Σ_k (c[k·ldc]·x_k + a[k·lda]) as a function train.
func Linear2(c []float64, ldc int, a []float64, lda int, box *Box, args Args) (*FT, error) {
	b := newBuilder(box, args)
	cores := sumCores(b, func(k int) *funcs.Func {
		return b.linear(k, c[k*ldc], a[k*lda])
	})
	return finish(b, cores, "linear")
}

// QuadraticAligned returns Σ_k coeffs[k]·(x_k - m[k])² as a function
// train.
func QuadraticAligned(class funcs.Class, kind poly.Kind, coeffs, m []float64, box *Box, opts *funcs.ApproxOpts) (*FT, error) {
	dim := box.Dim()
	if len(coeffs) != dim || len(m) != dim {
		panic(fmt.Sprintf("ftrain: %d coefficients and %d centres for dimension %d",
			len(coeffs), len(m), dim))
	}
	b := newBuilder(box, uniformArgs(dim, Approx{Class: class, Kind: kind, Opts: opts}))
	cores := sumCores(b, func(k int) *funcs.Func {
		return b.quadratic(k, coeffs[k], m[k])
	})
	return finish(b, cores, "aligned quadratic")
}

// Constant returns the constant function a as a function train of rank
// one.  The value is stored in the first core, all other cores are
// constant 1.
func Constant(class funcs.Class, kind poly.Kind, a float64, box *Box, opts *funcs.ApproxOpts) (*FT, error) {
	args := uniformArgs(box.Dim(), Approx{Class: class, Kind: kind, Opts: opts})
	return ConstantArgs(a, box, args)
}

// ConstantArgs is like [Constant], but the representation of every
// dimension is taken from args.
func ConstantArgs(a float64, box *Box, args Args) (*FT, error) {
	dim := box.Dim()
	b := newBuilder(box, args)
	cores := make([]*qmarray.Qmarray, dim)
	cores[0] = single(b.constant(0, a))
	for k := 1; k < dim; k++ {
		cores[k] = single(b.constant(k, 1))
	}
	return finish(b, cores, "constant")
}

// Quadratic returns the quadratic form (x - m)ᵀ Q (x - m) as a function
// train.  The dim×dim matrix Q is given in row-major order, and dim must
// be at least 2.
//
// Core k has one row more than columns: the first column accumulates the
// terms which are complete, the middle entries carry the coefficients of
// cross terms with later variables, and the last row and column
// propagate the constant 1.  This gives ranks 1, D+1, D, ..., 3, 1.
func Quadratic(class funcs.Class, kind poly.Kind, q, m []float64, box *Box, opts *funcs.ApproxOpts) (*FT, error) {
	dim := box.Dim()
	if dim < 2 {
		panic("ftrain: quadratic form needs at least two dimensions")
	}
	if len(q) != dim*dim || len(m) != dim {
		panic(fmt.Sprintf("ftrain: %d matrix entries and %d centres for dimension %d",
			len(q), len(m), dim))
	}
	b := newBuilder(box, uniformArgs(dim, Approx{Class: class, Kind: kind, Opts: opts}))

	// cross returns the linear function for the cross terms between
	// x_k and x_l.
	cross := func(k, l int) *funcs.Func {
		c := q[k*dim+l] + q[l*dim+k]
		return b.linear(k, c, -c*m[k])
	}

	cores := make([]*qmarray.Qmarray, dim)

	first := make([]*funcs.Func, dim+1)
	first[0] = b.quadratic(0, q[0], m[0])
	for l := 1; l < dim; l++ {
		first[l] = cross(0, l)
	}
	first[dim] = b.constant(0, 1)
	cores[0] = qmarray.FromFuncs(1, dim+1, first)

	for k := 1; k < dim-1; k++ {
		nrows := dim - k + 2
		ncols := dim - k + 1
		fs := make([]*funcs.Func, nrows*ncols)
		for col := range ncols {
			for row := range nrows {
				var f *funcs.Func
				switch {
				case row == 0 && col == 0:
					f = b.constant(k, 1)
				case row == 1 && col == 0:
					f = b.linear(k, 1, -m[k])
				case row == col+1:
					f = b.constant(k, 1)
				case row == nrows-1 && col == 0:
					f = b.quadratic(k, q[k*dim+k], m[k])
				case row == nrows-1:
					f = cross(k, k+col)
				default:
					f = b.constant(k, 0)
				}
				fs[col*nrows+row] = f
			}
		}
		cores[k] = qmarray.FromFuncs(nrows, ncols, fs)
	}

	k := dim - 1
	last := []*funcs.Func{
		b.constant(k, 1),
		b.linear(k, 1, -m[k]),
		b.quadratic(k, q[k*dim+k], m[k]),
	}
	cores[k] = qmarray.FromFuncs(3, 1, last)

	return finish(b, cores, "quadratic")
}

// PolyRandu returns a function train with the given ranks whose entries
// are random polynomials of the given order.
func PolyRandu(kind poly.Kind, box *Box, ranks []int, order int, rng *rand.Rand) *FT {
	dim := box.Dim()
	if len(ranks) != dim+1 {
		panic(fmt.Sprintf("ftrain: %d ranks for dimension %d", len(ranks), dim))
	}
	cores := make([]*qmarray.Qmarray, dim)
	for k := range dim {
		cores[k] = qmarray.PolyRandu(kind, ranks[k], ranks[k+1], order, box.Lb[k], box.Ub[k], rng)
	}
	return FromCores(cores)
}

// sumCores builds the cores of the function train for the sum of the
// univariate functions leaf(0), ..., leaf(D-1):
//
//	[f_1  1] · [1 0; f_k 1] · ... · [1; f_D]
//
// The interior 2×2 cores are stored column-major as (1, f_k, 0, 1).
func sumCores(b *builder, leaf func(k int) *funcs.Func) []*qmarray.Qmarray {
	dim := b.box.Dim()
	cores := make([]*qmarray.Qmarray, dim)
	if dim == 1 {
		cores[0] = single(leaf(0))
		return cores
	}

	cores[0] = qmarray.FromFuncs(1, 2, []*funcs.Func{leaf(0), b.constant(0, 1)})
	for k := 1; k < dim-1; k++ {
		cores[k] = qmarray.FromFuncs(2, 2, []*funcs.Func{
			b.constant(k, 1),
			leaf(k),
			b.constant(k, 0),
			b.constant(k, 1),
		})
	}
	k := dim - 1
	cores[k] = qmarray.FromFuncs(2, 1, []*funcs.Func{b.constant(k, 1), leaf(k)})
	return cores
}

func single(f *funcs.Func) *qmarray.Qmarray {
	return qmarray.FromFuncs(1, 1, []*funcs.Func{f})
}

// finish converts the cores into a function train, unless an error
// occurred while building the entries.
func finish(b *builder, cores []*qmarray.Qmarray, what string) (*FT, error) {
	if b.err != nil {
		return nil, fmt.Errorf("%s function train: %w", what, b.err)
	}
	ft := FromCores(cores)
	logger.Debug("function train created",
		zap.String("type", what),
		zap.Int("dim", ft.dim),
		zap.Ints("ranks", ft.ranks))
	return ft, nil
}
