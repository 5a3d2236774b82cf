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

// Package qmarray implements vectors and matrices whose entries are
// functions of one variable.
//
// A [Quasimatrix] is a row of n functions, a [Qmarray] is an m×n grid of
// functions stored in column-major order.  Both types own their entries:
// all setters store copies and all getters which return containers return
// deep copies.
package qmarray

import (
	"fmt"

	"seehuhn.de/go/ftrain/funcs"
	"seehuhn.de/go/ftrain/internal/wire"
	"seehuhn.de/go/ftrain/poly"
)

// Quasimatrix is an ordered sequence of functions of one variable.
type Quasimatrix struct {
	funcs []*funcs.Func
}

// NewQuasimatrix allocates a quasimatrix with n empty slots.
// All slots must be filled using [Quasimatrix.Set] before the quasimatrix
// is used.
func NewQuasimatrix(n int) *Quasimatrix {
	return &Quasimatrix{funcs: make([]*funcs.Func, n)}
}

// QuasimatrixFrom returns a quasimatrix holding the given functions.
// The functions are not copied.
func QuasimatrixFrom(fs []*funcs.Func) *Quasimatrix {
	return &Quasimatrix{funcs: fs}
}

// ApproxQuasimatrix approximates each of the functions fs on [lb, ub].
func ApproxQuasimatrix(fs []func(float64) float64, class funcs.Class, kind poly.Kind, lb, ub float64, opts *funcs.ApproxOpts) (*Quasimatrix, error) {
	q := NewQuasimatrix(len(fs))
	for i, f := range fs {
		g, err := funcs.Approximate1D(class, kind, f, lb, ub, opts)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		q.funcs[i] = g
	}
	return q, nil
}

// QuasimatrixFromFiberCuts approximates each of the fiber cuts on
// [lb, ub].
func QuasimatrixFromFiberCuts(cuts []*funcs.FiberCut, class funcs.Class, kind poly.Kind, lb, ub float64, opts *funcs.ApproxOpts) (*Quasimatrix, error) {
	fs := make([]func(float64) float64, len(cuts))
	for i, c := range cuts {
		fs[i] = c.Eval
	}
	return ApproxQuasimatrix(fs, class, kind, lb, ub, opts)
}

// OrthQuasimatrix returns n functions on [lb, ub] which are orthonormal
// in L².
func OrthQuasimatrix(class funcs.Class, kind poly.Kind, n int, lb, ub float64) (*Quasimatrix, error) {
	fs, err := funcs.ArrayOrth(n, class, kind, lb, ub)
	if err != nil {
		return nil, err
	}
	return QuasimatrixFrom(fs), nil
}

// Len returns the number of functions in q.
func (q *Quasimatrix) Len() int {
	return len(q.funcs)
}

// Get returns the function at index i.
// The function is owned by q and must not be modified.
func (q *Quasimatrix) Get(i int) *funcs.Func {
	return q.funcs[i]
}

// Set stores a copy of f at index i.
func (q *Quasimatrix) Set(i int, f *funcs.Func) {
	q.funcs[i] = f.Copy()
}

// Copy returns a deep copy of q.
func (q *Quasimatrix) Copy() *Quasimatrix {
	return &Quasimatrix{funcs: copyFuncs(q.funcs)}
}

// Eval evaluates all functions at x.
func (q *Quasimatrix) Eval(x float64) []float64 {
	return funcs.EvalArray(q.funcs, x)
}

// AbsMax returns the index of the function with the largest absolute
// value, together with the location and the absolute value of the
// maximum.
func (q *Quasimatrix) AbsMax() (int, float64, float64) {
	return funcs.ArrayAbsMax(len(q.funcs), 1, q.funcs)
}

// QMM multiplies q by the n×b matrix s, stored in column-major order,
// where n is the length of q.  Column j of the result is
// sum_i q[i]·s[i + j·n].
func (q *Quasimatrix) QMM(s []float64, b int) (*Quasimatrix, error) {
	n := len(q.funcs)
	if len(s) != n*b {
		panic(fmt.Sprintf("qmarray: %d×%d matrix has %d entries", n, b, len(s)))
	}
	res := NewQuasimatrix(b)
	for j := range b {
		f, err := funcs.LinComb2(n, 1, q.funcs, 1, s[j*n:])
		if err != nil {
			return nil, err
		}
		res.funcs[j] = f
	}
	return res, nil
}

// DaxpbyQuasimatrix returns a·x + b·y, computed entry by entry.
// Either x or y may be nil.
func DaxpbyQuasimatrix(a float64, x *Quasimatrix, b float64, y *Quasimatrix) (*Quasimatrix, error) {
	var xf, yf []*funcs.Func
	n := 0
	if x != nil {
		xf = x.funcs
		n = len(xf)
	}
	if y != nil {
		yf = y.funcs
		if x != nil && len(yf) != n {
			panic(fmt.Sprintf("qmarray: adding quasimatrices of length %d and %d", n, len(yf)))
		}
		n = len(yf)
	}
	fs, err := funcs.ArrayDaxpby(n, a, 1, xf, b, 1, yf)
	if err != nil {
		return nil, err
	}
	return QuasimatrixFrom(fs), nil
}

// InnerQuasimatrix returns sum_i <a[i], b[i]>.
func InnerQuasimatrix(a, b *Quasimatrix) (float64, error) {
	if len(a.funcs) != len(b.funcs) {
		panic(fmt.Sprintf("qmarray: inner product of quasimatrices of length %d and %d",
			len(a.funcs), len(b.funcs)))
	}
	return funcs.InnerSum(len(a.funcs), 1, a.funcs, 1, b.funcs)
}

// Norm returns the Frobenius-type norm sqrt(sum_i ||q[i]||²).
func (q *Quasimatrix) Norm() (float64, error) {
	return funcs.ArrayNorm(len(q.funcs), 1, q.funcs)
}

// Encode appends the binary representation of q to w.
func (q *Quasimatrix) Encode(w *wire.Writer) {
	funcs.EncodeArray(w, q.funcs)
}

// DecodeQuasimatrix reads a quasimatrix written by [Quasimatrix.Encode].
func DecodeQuasimatrix(r *wire.Reader) (*Quasimatrix, error) {
	fs, err := funcs.DecodeArray(r)
	if err != nil {
		return nil, fmt.Errorf("quasimatrix: %w", err)
	}
	return QuasimatrixFrom(fs), nil
}

func copyFuncs(fs []*funcs.Func) []*funcs.Func {
	res := make([]*funcs.Func, len(fs))
	for i, f := range fs {
		res[i] = f.Copy()
	}
	return res
}
