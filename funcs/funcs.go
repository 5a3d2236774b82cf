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

// Package funcs implements one-dimensional functions with a common
// algebra over several representations.
//
// A [Func] stores its values in one of the following classes:
//   - [Polynomial]: an orthogonal polynomial expansion ([poly.Expansion]),
//   - [Piecewise]: a tree of polynomial pieces ([piecewise.Poly]),
//   - [LinElem]: a piecewise linear nodal function ([linelm.Element]).
//
// Binary operations on functions of different classes first convert both
// operands to a common class, using the rules in [Promote].
package funcs

import (
	"fmt"

	"seehuhn.de/go/ftrain/linelm"
	"seehuhn.de/go/ftrain/piecewise"
	"seehuhn.de/go/ftrain/poly"
)

// Class identifies the representation of a function.
type Class int

// These are the function classes.
// Rational and Kernel are reserved; no operations are implemented for them.
const (
	Piecewise Class = iota
	Polynomial
	Rational
	Kernel
	LinElem
)

func (c Class) String() string {
	switch c {
	case Piecewise:
		return "PIECEWISE"
	case Polynomial:
		return "POLYNOMIAL"
	case Rational:
		return "RATIONAL"
	case Kernel:
		return "KERNEL"
	case LinElem:
		return "LINELM"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

// ParseClass converts a class name, as returned by [Class.String], back
// into a Class.  Lower case names are accepted.
func ParseClass(s string) (Class, error) {
	switch s {
	case "PIECEWISE", "piecewise":
		return Piecewise, nil
	case "POLYNOMIAL", "polynomial", "poly":
		return Polynomial, nil
	case "RATIONAL", "rational":
		return Rational, nil
	case "KERNEL", "kernel":
		return Kernel, nil
	case "LINELM", "linelm":
		return LinElem, nil
	}
	return 0, fmt.Errorf("unknown function class %q", s)
}

// Func is a function of one variable.
//
// Exactly one of the payload fields is set, as indicated by the class.
type Func struct {
	class Class

	// kind is the polynomial family for the Polynomial and Piecewise
	// classes.
	kind poly.Kind

	exp *poly.Expansion
	pw  *piecewise.Poly
	le  *linelm.Element
}

// FromExpansion wraps a polynomial expansion.  The expansion is not copied.
func FromExpansion(e *poly.Expansion) *Func {
	return &Func{class: Polynomial, kind: e.Kind, exp: e}
}

// FromPiecewise wraps a piecewise polynomial.  The tree is not copied.
// The polynomial family of the leaves is recorded as the kind of the
// function.
func FromPiecewise(p *piecewise.Poly) *Func {
	return &Func{class: Piecewise, kind: p.Kind(), pw: p}
}

// FromElement wraps a linear element function.  The element is not copied.
func FromElement(e *linelm.Element) *Func {
	return &Func{class: LinElem, le: e}
}

// Class returns the representation used by f.
func (f *Func) Class() Class {
	return f.class
}

// Kind returns the polynomial family of f.
// The result is meaningless for the LinElem class.
func (f *Func) Kind() poly.Kind {
	return f.kind
}

// Expansion returns the payload of a Polynomial function, or nil.
func (f *Func) Expansion() *poly.Expansion {
	return f.exp
}

// Piecewise returns the payload of a Piecewise function, or nil.
func (f *Func) Piecewise() *piecewise.Poly {
	return f.pw
}

// Element returns the payload of a LinElem function, or nil.
func (f *Func) Element() *linelm.Element {
	return f.le
}

// Dim returns the number of input variables, which is always 1.
func (f *Func) Dim() int {
	return 1
}

// Copy returns a deep copy of f.
func (f *Func) Copy() *Func {
	if f == nil {
		return nil
	}
	res := &Func{class: f.class, kind: f.kind}
	switch f.class {
	case Polynomial:
		res.exp = f.exp.Copy()
	case Piecewise:
		res.pw = f.pw.Copy()
	case LinElem:
		res.le = f.le.Copy()
	}
	return res
}

// Eval evaluates f at x.
func (f *Func) Eval(x float64) float64 {
	switch f.class {
	case Polynomial:
		return f.exp.Eval(x)
	case Piecewise:
		return f.pw.Eval(x)
	case LinElem:
		return f.le.Eval(x)
	}
	panic(unreachable(f))
}

// Lb returns the lower bound of the domain of f.
func (f *Func) Lb() float64 {
	switch f.class {
	case Polynomial:
		return f.exp.Lb
	case Piecewise:
		return f.pw.Lb()
	case LinElem:
		return f.le.Lb()
	}
	panic(unreachable(f))
}

// Ub returns the upper bound of the domain of f.
func (f *Func) Ub() float64 {
	switch f.class {
	case Polynomial:
		return f.exp.Ub
	case Piecewise:
		return f.pw.Ub()
	case LinElem:
		return f.le.Ub()
	}
	panic(unreachable(f))
}

func (f *Func) String() string {
	return fmt.Sprintf("%s[%g, %g]", f.class, f.Lb(), f.Ub())
}

// asPiecewise returns the payload of f as a piecewise polynomial.
// Polynomial payloads are wrapped in a single leaf.
func (f *Func) asPiecewise() *piecewise.Poly {
	switch f.class {
	case Piecewise:
		return f.pw
	case Polynomial:
		return piecewise.FromExpansion(f.exp)
	}
	panic(fmt.Sprintf("funcs: cannot convert %s to %s", f.class, Piecewise))
}

// unreachable is the panic message for a Func without a valid payload.
// Such functions cannot be constructed through the package API.
func unreachable(f *Func) string {
	return fmt.Sprintf("funcs: function of class %s has no payload", f.class)
}
