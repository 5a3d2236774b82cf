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

package funcs

import (
	"math"

	"seehuhn.de/go/ftrain/poly"
)

// Many of the functions in this file take strided views of slices of
// functions: with stride ld, element i of the view is fs[i*ld].  This
// allows to address rows and columns of column-major function matrices
// without copying.

// EvalArray evaluates all functions in fs at x.
func EvalArray(fs []*Func, x float64) []float64 {
	res := make([]float64, len(fs))
	for i, f := range fs {
		res[i] = f.Eval(x)
	}
	return res
}

// ArrayScale multiplies every function in fs by a, in place.
func ArrayScale(a float64, fs []*Func) {
	for _, f := range fs {
		f.Scale(a)
	}
}

// ArrayFlipSign changes the sign of n functions, with stride ld.
func ArrayFlipSign(n, ld int, fs []*Func) {
	for i := range n {
		fs[i*ld].FlipSign()
	}
}

// ArrayNorm returns sqrt(sum_i ||fs[i*ld]||²) for n functions.
func ArrayNorm(n, ld int, fs []*Func) (float64, error) {
	var sum float64
	for i := range n {
		nrm, err := Norm(fs[i*ld])
		if err != nil {
			return 0, err
		}
		sum += nrm * nrm
	}
	return math.Sqrt(sum), nil
}

// ArrayNorm2Diff returns sqrt(sum_i ||a[i*lda] - b[i*ldb]||²).
func ArrayNorm2Diff(n, lda int, a []*Func, ldb int, b []*Func) (float64, error) {
	var sum float64
	for i := range n {
		nrm, err := Norm2Diff(a[i*lda], b[i*ldb])
		if err != nil {
			return 0, err
		}
		sum += nrm * nrm
	}
	return math.Sqrt(sum), nil
}

// ArrayAbsMax finds the largest absolute value among n functions.
// It returns the index of the function, the location and the value.
// Ties go to the function with the smaller index.
func ArrayAbsMax(n, ld int, fs []*Func) (int, float64, float64) {
	idx := 0
	loc, val := fs[0].AbsMax()
	for i := 1; i < n; i++ {
		x, v := fs[i*ld].AbsMax()
		if v > val {
			idx, loc, val = i, x, v
		}
	}
	return idx, loc, val
}

// InnerSum returns sum_i <a[i*lda], b[i*ldb]>.
func InnerSum(n, lda int, a []*Func, ldb int, b []*Func) (float64, error) {
	var sum float64
	for i := range n {
		ip, err := Inner(a[i*lda], b[i*ldb])
		if err != nil {
			return 0, err
		}
		sum += ip
	}
	return sum, nil
}

// ArrayAxpy computes y[i] <- a·x[i] + y[i] for all i.
// The first failure stops the loop and is returned.
func ArrayAxpy(a float64, x, y []*Func) error {
	for i := range x {
		if err := Axpy(a, x[i], y[i]); err != nil {
			return err
		}
	}
	return nil
}

// ArrayDaxpby returns the n functions a·x[i*ldx] + b·y[i*ldy].
// Either x or y may be nil.
func ArrayDaxpby(n int, a float64, ldx int, x []*Func, b float64, ldy int, y []*Func) ([]*Func, error) {
	res := make([]*Func, n)
	for i := range n {
		var xi, yi *Func
		if x != nil {
			xi = x[i*ldx]
		}
		if y != nil {
			yi = y[i*ldy]
		}
		var err error
		res[i], err = Daxpby(a, xi, b, yi)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// WeightedSum returns a·x + b·y.  Unlike [Daxpby], both functions must be
// given.
func WeightedSum(a float64, x *Func, b float64, y *Func) (*Func, error) {
	if x == nil || y == nil {
		panic("funcs: weighted sum of nil function")
	}
	return Daxpby(a, x, b, y)
}

// LinComb returns sum_i coeffs[i]·fs[i].
func LinComb(fs []*Func, coeffs []float64) (*Func, error) {
	return LinComb2(len(fs), 1, fs, 1, coeffs)
}

// LinComb2 returns sum_i c[i*ldc]·fs[i*ldf] for n terms.
//
// The terms are added from left to right.  If all functions are
// polynomial expansions on the same domain, the result is computed
// coefficient-wise without re-fitting.
func LinComb2(n, ldf int, fs []*Func, ldc int, c []float64) (*Func, error) {
	if n < 1 {
		panic("funcs: empty linear combination")
	}
	if res, ok := linCombPoly(n, ldf, fs, ldc, c); ok {
		return res, nil
	}

	res, err := Daxpby(c[0], fs[0], 0, nil)
	if err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		res, err = Daxpby(1, res, c[i*ldc], fs[i*ldf])
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// linCombPoly handles linear combinations of polynomials with a common
// domain and family.
func linCombPoly(n, ldf int, fs []*Func, ldc int, c []float64) (*Func, bool) {
	first := fs[0]
	if first.class != Polynomial {
		return nil, false
	}
	size := 0
	for i := range n {
		f := fs[i*ldf]
		if f.class != Polynomial || f.exp.Kind != first.exp.Kind ||
			f.exp.Lb != first.exp.Lb || f.exp.Ub != first.exp.Ub {
			return nil, false
		}
		size = max(size, len(f.exp.Coeffs))
	}

	e := first.exp
	res := FromExpansion(poly.New(e.Kind, size, e.Lb, e.Ub))
	for i := range n {
		ci := c[i*ldc]
		for k, v := range fs[i*ldf].exp.Coeffs {
			res.exp.Coeffs[k] += ci * v
		}
	}
	return res, true
}

// SumProd returns sum_i a[i*lda]·b[i*ldb] for n terms.
func SumProd(n, lda int, a []*Func, ldb int, b []*Func) (*Func, error) {
	if n < 1 {
		panic("funcs: empty sum of products")
	}
	res, err := Prod(a[0], b[0])
	if err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		p, err := Prod(a[i*lda], b[i*ldb])
		if err != nil {
			return nil, err
		}
		res, err = Daxpby(1, res, 1, p)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Kronh computes the linear combinations needed for multiplying a
// numeric matrix with the Kronecker product of a function matrix.
//
// If left is true, a is an r×(m·n) matrix and c holds l columns of n
// functions; the result d has r·m·l entries with
//
//	d[k·r·m + j·r + i] = sum_p a[i + (j·n + p)·r] · c[k·n + p].
//
// Otherwise a holds r blocks of l×m values and c is an n×l function
// matrix; the result has n·m·r entries with
//
//	d[j + k·n + i·n·m] = sum_p a[p + k·l + i·l·m] · c[j + p·n].
//
// All matrices are stored in column-major order.
func Kronh(left bool, r, m, n, l int, a []float64, c []*Func) ([]*Func, error) {
	var d []*Func
	var err error
	if left {
		d = make([]*Func, r*m*l)
		for k := range l {
			for j := range m {
				for i := range r {
					d[k*r*m+j*r+i], err = LinComb2(n, 1, c[n*k:], r, a[i+j*n*r:])
					if err != nil {
						return nil, err
					}
				}
			}
		}
	} else {
		d = make([]*Func, n*m*r)
		for i := range r {
			for j := range n {
				for k := range m {
					d[j+k*n+i*n*m], err = LinComb2(l, n, c[j:], 1, a[k*l+i*l*m:])
					if err != nil {
						return nil, err
					}
				}
			}
		}
	}
	return d, nil
}

// Kronh2 is the analogue of [Kronh] where both factors are function
// matrices, so that the entries of the result are sums of products.
//
// If left is true, b holds l columns of n functions and t holds an
// r×(m·n) function matrix; the result has r·m·l entries with
//
//	out[i + k·r + j·r·m] = sum_p b[j·n + p] · t[i + k·r·n + p·r].
//
// Otherwise b is n×l and t holds r blocks of m×l functions; the result
// has m·n·r entries with
//
//	out[k + j·m + i·n·m] = sum_p b[j + p·n] · t[k + i·l·m + p·m].
func Kronh2(left bool, r, m, n, l int, b, t []*Func) ([]*Func, error) {
	var out []*Func
	var err error
	if left {
		out = make([]*Func, r*m*l)
		for j := range l {
			for k := range m {
				for i := range r {
					out[i+k*r+j*r*m], err = SumProd(n, 1, b[j*n:], r, t[i+k*r*n:])
					if err != nil {
						return nil, err
					}
				}
			}
		}
	} else {
		out = make([]*Func, m*n*r)
		for i := range r {
			for j := range n {
				for k := range m {
					out[k+j*m+i*n*m], err = SumProd(l, n, b[j:], m, t[k+i*l*m:])
					if err != nil {
						return nil, err
					}
				}
			}
		}
	}
	return out, nil
}
