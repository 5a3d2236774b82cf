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

package qmarray

import (
	"fmt"
	"math/rand/v2"

	"seehuhn.de/go/ftrain/funcs"
	"seehuhn.de/go/ftrain/internal/wire"
	"seehuhn.de/go/ftrain/poly"
)

// Qmarray is a matrix of functions of one variable.
// Entry (r, c) is stored at index c·nrows + r.
type Qmarray struct {
	nrows, ncols int
	funcs        []*funcs.Func
}

// New allocates an nrows×ncols qmarray with empty entries.
// All entries must be filled before the qmarray is used.
func New(nrows, ncols int) *Qmarray {
	return &Qmarray{
		nrows: nrows,
		ncols: ncols,
		funcs: make([]*funcs.Func, nrows*ncols),
	}
}

// FromFuncs returns a qmarray holding the given functions in column-major
// order.  The functions are not copied.
func FromFuncs(nrows, ncols int, fs []*funcs.Func) *Qmarray {
	if len(fs) != nrows*ncols {
		panic(fmt.Sprintf("qmarray: %d functions for a %d×%d array", len(fs), nrows, ncols))
	}
	return &Qmarray{nrows: nrows, ncols: ncols, funcs: fs}
}

// Zeros returns an nrows×ncols qmarray of zero polynomials on [lb, ub].
func Zeros(kind poly.Kind, nrows, ncols int, lb, ub float64) *Qmarray {
	a := New(nrows, ncols)
	for i := range a.funcs {
		a.funcs[i] = funcs.FromExpansion(poly.Constant(0, kind, lb, ub))
	}
	return a
}

// PolyRandu returns an nrows×ncols qmarray of random polynomials of the
// given order, with coefficients uniform in [-1, 1].
func PolyRandu(kind poly.Kind, nrows, ncols, order int, lb, ub float64, rng *rand.Rand) *Qmarray {
	a := New(nrows, ncols)
	for i := range a.funcs {
		a.funcs[i] = funcs.PolyRandu(kind, order, lb, ub, rng)
	}
	return a
}

// Approx1D approximates the nrows·ncols functions fs, given in
// column-major order, on [lb, ub].
func Approx1D(nrows, ncols int, fs []func(float64) float64, class funcs.Class, kind poly.Kind, lb, ub float64, opts *funcs.ApproxOpts) (*Qmarray, error) {
	if len(fs) != nrows*ncols {
		panic(fmt.Sprintf("qmarray: %d functions for a %d×%d array", len(fs), nrows, ncols))
	}
	q, err := ApproxQuasimatrix(fs, class, kind, lb, ub, opts)
	if err != nil {
		return nil, err
	}
	return FromFuncs(nrows, ncols, q.funcs), nil
}

// FromFiberCuts approximates the nrows·ncols fiber cuts, given in
// column-major order, on [lb, ub].
func FromFiberCuts(nrows, ncols int, cuts []*funcs.FiberCut, class funcs.Class, kind poly.Kind, lb, ub float64, opts *funcs.ApproxOpts) (*Qmarray, error) {
	if len(cuts) != nrows*ncols {
		panic(fmt.Sprintf("qmarray: %d fiber cuts for a %d×%d array", len(cuts), nrows, ncols))
	}
	q, err := QuasimatrixFromFiberCuts(cuts, class, kind, lb, ub, opts)
	if err != nil {
		return nil, err
	}
	return FromFuncs(nrows, ncols, q.funcs), nil
}

// Orth1DColumns returns an nrows×ncols qmarray with orthonormal columns,
// where the inner product of two columns is the sum of the L² inner
// products of their entries.
//
// Every column has exactly one non-zero entry.  The non-zero slot moves
// down one row per column and wraps around after the last row, at which
// point the next orthonormal basis function is used.
func Orth1DColumns(class funcs.Class, kind poly.Kind, nrows, ncols int, lb, ub float64) (*Qmarray, error) {
	basis, zero, err := orthBasis(class, kind, ncols, lb, ub)
	if err != nil {
		return nil, err
	}
	a := New(nrows, ncols)
	slot, order := 0, 0
	for j := range ncols {
		for k := range nrows {
			if k == slot {
				a.funcs[j*nrows+k] = basis[order].Copy()
			} else {
				a.funcs[j*nrows+k] = zero.Copy()
			}
		}
		slot++
		if slot == nrows {
			slot = 0
			order++
		}
	}
	return a, nil
}

// Orth1DRows returns an nrows×ncols qmarray with orthonormal rows.
// The construction is the transpose of [Orth1DColumns].
func Orth1DRows(class funcs.Class, kind poly.Kind, nrows, ncols int, lb, ub float64) (*Qmarray, error) {
	basis, zero, err := orthBasis(class, kind, nrows, lb, ub)
	if err != nil {
		return nil, err
	}
	a := New(nrows, ncols)
	slot, order := 0, 0
	for i := range nrows {
		for k := range ncols {
			if k == slot {
				a.funcs[k*nrows+i] = basis[order].Copy()
			} else {
				a.funcs[k*nrows+i] = zero.Copy()
			}
		}
		slot++
		if slot == ncols {
			slot = 0
			order++
		}
	}
	return a, nil
}

// orthBasis returns n orthonormal functions and a zero function of the
// same class.  For linear elements the zero function uses the nodes of the
// basis.
func orthBasis(class funcs.Class, kind poly.Kind, n int, lb, ub float64) ([]*funcs.Func, *funcs.Func, error) {
	basis, err := funcs.ArrayOrth(max(n, 1), class, kind, lb, ub)
	if err != nil {
		return nil, nil, err
	}
	zero := basis[0].Copy()
	zero.Scale(0)
	return basis, zero, nil
}

// Rows returns the number of rows of a.
func (a *Qmarray) Rows() int {
	return a.nrows
}

// Cols returns the number of columns of a.
func (a *Qmarray) Cols() int {
	return a.ncols
}

// Shape returns the number of rows and columns of a.
func (a *Qmarray) Shape() (int, int) {
	return a.nrows, a.ncols
}

// Get returns entry (r, c).
// The function is owned by a and must not be modified.
func (a *Qmarray) Get(r, c int) *funcs.Func {
	return a.funcs[a.index(r, c)]
}

// Set stores a copy of f as entry (r, c).
func (a *Qmarray) Set(r, c int, f *funcs.Func) {
	a.funcs[a.index(r, c)] = f.Copy()
}

func (a *Qmarray) index(r, c int) int {
	if r < 0 || r >= a.nrows || c < 0 || c >= a.ncols {
		panic(fmt.Sprintf("qmarray: index (%d, %d) out of range for %d×%d array",
			r, c, a.nrows, a.ncols))
	}
	return c*a.nrows + r
}

// SetColumn copies the functions of q into column col.
func (a *Qmarray) SetColumn(col int, q *Quasimatrix) {
	a.SetColumnFunc(col, q.funcs)
}

// SetColumnFunc copies the nrows functions fs into column col.
func (a *Qmarray) SetColumnFunc(col int, fs []*funcs.Func) {
	if len(fs) != a.nrows {
		panic(fmt.Sprintf("qmarray: column of length %d for %d rows", len(fs), a.nrows))
	}
	for i, f := range fs {
		a.funcs[a.index(i, col)] = f.Copy()
	}
}

// SetRow copies the functions of q into row row.
func (a *Qmarray) SetRow(row int, q *Quasimatrix) {
	if q.Len() != a.ncols {
		panic(fmt.Sprintf("qmarray: row of length %d for %d columns", q.Len(), a.ncols))
	}
	for j, f := range q.funcs {
		a.funcs[a.index(row, j)] = f.Copy()
	}
}

// ExtractColumn returns a copy of column col.
func (a *Qmarray) ExtractColumn(col int) *Quasimatrix {
	start := a.index(0, col)
	return &Quasimatrix{funcs: copyFuncs(a.funcs[start : start+a.nrows])}
}

// ExtractRow returns a copy of row row.
func (a *Qmarray) ExtractRow(row int) *Quasimatrix {
	q := NewQuasimatrix(a.ncols)
	for j := range a.ncols {
		q.funcs[j] = a.funcs[a.index(row, j)].Copy()
	}
	return q
}

// ExtractNCols returns a copy of the first n columns of a.
func (a *Qmarray) ExtractNCols(n int) *Qmarray {
	if n < 0 || n > a.ncols {
		panic(fmt.Sprintf("qmarray: cannot extract %d of %d columns", n, a.ncols))
	}
	return FromFuncs(a.nrows, n, copyFuncs(a.funcs[:n*a.nrows]))
}

// Copy returns a deep copy of a.
func (a *Qmarray) Copy() *Qmarray {
	return FromFuncs(a.nrows, a.ncols, copyFuncs(a.funcs))
}

// Eval evaluates all entries at x.  The result is an nrows×ncols matrix
// in column-major order.
func (a *Qmarray) Eval(x float64) []float64 {
	return funcs.EvalArray(a.funcs, x)
}

// Norm returns sqrt(sum ||a(r,c)||²) over all entries.
func (a *Qmarray) Norm() (float64, error) {
	return funcs.ArrayNorm(len(a.funcs), 1, a.funcs)
}

// Encode appends the binary representation of a to w:
// nrows and ncols, followed by the entries in column-major order.
func (a *Qmarray) Encode(w *wire.Writer) {
	w.Size(a.nrows)
	w.Size(a.ncols)
	for _, f := range a.funcs {
		f.Encode(w)
	}
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
func (a *Qmarray) MarshalBinary() ([]byte, error) {
	w := &wire.Writer{}
	a.Encode(w)
	return w.Bytes(), nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
func (a *Qmarray) UnmarshalBinary(data []byte) error {
	r := wire.NewReader(data)
	b, err := Decode(r)
	if err != nil {
		return err
	}
	if r.Remaining() != 0 {
		return fmt.Errorf("%d trailing bytes after qmarray: %w", r.Remaining(), wire.ErrFormat)
	}
	*a = *b
	return nil
}

// Decode reads a qmarray written by [Qmarray.Encode].
func Decode(r *wire.Reader) (*Qmarray, error) {
	nrows, err := r.ReadSize()
	if err != nil {
		return nil, err
	}
	ncols, err := r.ReadSize()
	if err != nil {
		return nil, err
	}
	if nrows > 0 && ncols > r.Remaining()/nrows {
		return nil, fmt.Errorf("qmarray of size %d×%d: %w", nrows, ncols, wire.ErrFormat)
	}
	fs, err := funcs.DecodeN(r, nrows*ncols)
	if err != nil {
		return nil, fmt.Errorf("qmarray: %w", err)
	}
	return FromFuncs(nrows, ncols, fs), nil
}
