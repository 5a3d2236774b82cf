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
	"errors"
	"fmt"
	"math"

	"seehuhn.de/go/ftrain/linelm"
	"seehuhn.de/go/ftrain/piecewise"
	"seehuhn.de/go/ftrain/poly"
)

// negativeInnerTol is the amount by which <f,f> may drop below zero
// before [Norm] reports an error.
const negativeInnerTol = 1e-12

// Integral returns the integral of f over its domain.
func (f *Func) Integral() float64 {
	switch f.class {
	case Polynomial:
		return f.exp.Integrate()
	case Piecewise:
		return f.pw.Integrate()
	case LinElem:
		return f.le.Integrate()
	}
	panic(unreachable(f))
}

// Deriv returns the derivative of f, in the same class.
func (f *Func) Deriv() *Func {
	res := &Func{class: f.class, kind: f.kind}
	switch f.class {
	case Polynomial:
		res.exp = f.exp.Deriv()
	case Piecewise:
		res.pw = f.pw.Deriv()
	case LinElem:
		res.le = f.le.Deriv()
	default:
		panic(unreachable(f))
	}
	return res
}

// Scale multiplies f by a, in place.
func (f *Func) Scale(a float64) {
	switch f.class {
	case Polynomial:
		f.exp.Scale(a)
	case Piecewise:
		f.pw.Scale(a)
	case LinElem:
		f.le.Scale(a)
	}
}

// FlipSign multiplies f by -1, in place.
func (f *Func) FlipSign() {
	f.Scale(-1)
}

// RoundT drops trailing polynomial coefficients which are at most thresh
// times the largest coefficient, in place.  For piecewise functions every
// leaf is rounded separately.  Linear elements are not changed.
func (f *Func) RoundT(thresh float64) {
	switch f.class {
	case Polynomial:
		f.exp.RoundT(thresh)
	case Piecewise:
		f.pw.RoundT(thresh)
	}
}

// AbsMax returns the location of the maximum of |f| and the value |f(x)|.
func (f *Func) AbsMax() (float64, float64) {
	switch f.class {
	case Polynomial:
		return f.exp.AbsMax()
	case Piecewise:
		return f.pw.AbsMax()
	case LinElem:
		return f.le.AbsMax()
	}
	panic(unreachable(f))
}

// Inner returns the L² inner product of a and b.
func Inner(a, b *Func) (float64, error) {
	class, err := Promote("inner", a.class, b.class)
	if err != nil {
		return 0, err
	}
	switch class {
	case Polynomial:
		return poly.Inner(a.exp, b.exp), nil
	case Piecewise:
		return piecewise.Inner(a.asPiecewise(), b.asPiecewise()), nil
	default: // LinElem
		return linelm.Inner(a.le, b.le), nil
	}
}

// Norm returns the L² norm of f.
// A small negative value of <f,f>, caused by rounding, gives norm 0.
func Norm(f *Func) (float64, error) {
	ip, err := Inner(f, f)
	if err != nil {
		return 0, err
	}
	if ip < 0 {
		if ip < -negativeInnerTol {
			return 0, fmt.Errorf("%s: %w (%g)", f, ErrNegativeInner, ip)
		}
		return 0, nil
	}
	return math.Sqrt(ip), nil
}

// Norm2Diff returns the L² norm of a - b.
func Norm2Diff(a, b *Func) (float64, error) {
	d, err := Daxpby(1, a, -1, b)
	if err != nil {
		return 0, err
	}
	return Norm(d)
}

// Axpy computes y <- a·x + y, in place.
//
// Both functions must be of the same class, otherwise Axpy panics.
// For Piecewise functions, and for expansions or elements on different
// domains or grids, the operation is not supported and an error is
// returned.
func Axpy(a float64, x, y *Func) error {
	if x.class != y.class {
		panic(fmt.Sprintf("funcs: axpy of %s into %s", x.class, y.class))
	}
	switch x.class {
	case Polynomial:
		if err := poly.Axpy(a, x.exp, y.exp); err != nil {
			return fmt.Errorf("axpy: %w", errors.Join(err, ErrUnsupported))
		}
		return nil
	case LinElem:
		if err := linelm.Axpy(a, x.le, y.le); err != nil {
			return fmt.Errorf("axpy: %w", errors.Join(err, ErrUnsupported))
		}
		return nil
	default:
		return newClassError("axpy", x.class, y.class)
	}
}

// Daxpby returns the new function a·x + b·y.
//
// One of x and y may be nil, in which case the result is a scaled copy of
// the other function.  Functions of different classes are combined
// according to [Promote].
func Daxpby(a float64, x *Func, b float64, y *Func) (*Func, error) {
	if x == nil {
		x, a, y, b = y, b, nil, 0
	}
	if x == nil {
		panic("funcs: daxpby of two nil functions")
	}
	if y == nil {
		res := x.Copy()
		res.Scale(a)
		return res, nil
	}

	class, err := Promote("daxpby", x.class, y.class)
	if err != nil {
		return nil, err
	}
	switch class {
	case Polynomial:
		return FromExpansion(poly.Daxpby(a, x.exp, b, y.exp)), nil
	case Piecewise:
		pw := piecewise.Daxpby(a, x.asPiecewise(), b, y.asPiecewise())
		return FromPiecewise(pw), nil
	default: // LinElem
		return FromElement(linelm.Daxpby(a, x.le, b, y.le)), nil
	}
}

// Prod returns the pointwise product a·b.
func Prod(a, b *Func) (*Func, error) {
	class, err := Promote("prod", a.class, b.class)
	if err != nil {
		return nil, err
	}
	switch class {
	case Polynomial:
		return FromExpansion(poly.Prod(a.exp, b.exp)), nil
	case Piecewise:
		pw := piecewise.Prod(a.asPiecewise(), b.asPiecewise())
		return FromPiecewise(pw), nil
	default: // LinElem
		return FromElement(linelm.Prod(a.le, b.le)), nil
	}
}
