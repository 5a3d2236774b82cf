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

	"seehuhn.de/go/ftrain/funcs"
	"seehuhn.de/go/ftrain/poly"
)

// Box is a rectangular domain.
type Box struct {
	Lb, Ub []float64
}

// NewBox returns the box [lb, ub]^dim.
func NewBox(dim int, lb, ub float64) *Box {
	b := &Box{Lb: make([]float64, dim), Ub: make([]float64, dim)}
	for k := range dim {
		b.Lb[k] = lb
		b.Ub[k] = ub
	}
	return b
}

// Dim returns the number of dimensions of b.
func (b *Box) Dim() int {
	return len(b.Lb)
}

// Approx describes how the functions of one input variable are
// represented.
type Approx struct {
	Class funcs.Class
	Kind  poly.Kind

	// Opts holds the approximation options.  If nil, the defaults of
	// the function class are used.
	Opts *funcs.ApproxOpts
}

// Args holds one [Approx] per input variable.
// A nil Args selects Legendre polynomial expansions in all dimensions.
type Args []Approx

// PolyArgs uses polynomial expansions of the given family in all dim
// dimensions.
func PolyArgs(dim int, kind poly.Kind, opts *funcs.ApproxOpts) Args {
	return uniformArgs(dim, Approx{Class: funcs.Polynomial, Kind: kind, Opts: opts})
}

// PiecewiseArgs uses piecewise polynomials of the given family in all
// dim dimensions.
func PiecewiseArgs(dim int, kind poly.Kind, opts *funcs.ApproxOpts) Args {
	return uniformArgs(dim, Approx{Class: funcs.Piecewise, Kind: kind, Opts: opts})
}

// LinElemArgs uses linear elements in all dim dimensions.
func LinElemArgs(dim int, opts *funcs.ApproxOpts) Args {
	return uniformArgs(dim, Approx{Class: funcs.LinElem, Opts: opts})
}

func uniformArgs(dim int, a Approx) Args {
	res := make(Args, dim)
	for k := range res {
		res[k] = a
	}
	return res
}

func (args Args) get(k int) Approx {
	if args == nil {
		return Approx{Class: funcs.Polynomial, Kind: poly.Legendre}
	}
	return args[k]
}

func (args Args) check(dim int) {
	if args != nil && len(args) != dim {
		panic(fmt.Sprintf("ftrain: %d approximation arguments for dimension %d", len(args), dim))
	}
}

// builder creates the entries of the cores.  The first error is kept and
// all later calls do nothing.
type builder struct {
	box  *Box
	args Args
	err  error
}

func newBuilder(box *Box, args Args) *builder {
	if box.Dim() < 1 || len(box.Ub) != len(box.Lb) {
		panic(fmt.Sprintf("ftrain: invalid box with %d lower and %d upper bounds",
			len(box.Lb), len(box.Ub)))
	}
	args.check(box.Dim())
	return &builder{box: box, args: args}
}

func (b *builder) fail(k int, err error) *funcs.Func {
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("dimension %d: %w", k, err)
	}
	return nil
}

// approx approximates f in dimension k.
func (b *builder) approx(k int, f func(float64) float64) *funcs.Func {
	if b.err != nil {
		return nil
	}
	a := b.args.get(k)
	g, err := funcs.Approximate1D(a.Class, a.Kind, f, b.box.Lb[k], b.box.Ub[k], a.Opts)
	if err != nil {
		return b.fail(k, err)
	}
	return g
}

// constant returns the constant function v in dimension k.
func (b *builder) constant(k int, v float64) *funcs.Func {
	if b.err != nil {
		return nil
	}
	a := b.args.get(k)
	g, err := funcs.Constant(a.Class, a.Kind, v, b.box.Lb[k], b.box.Ub[k], a.Opts)
	if err != nil {
		return b.fail(k, err)
	}
	return g
}

// linear returns slope·x + offset in dimension k.
func (b *builder) linear(k int, slope, offset float64) *funcs.Func {
	if b.err != nil {
		return nil
	}
	a := b.args.get(k)
	g, err := funcs.Linear(a.Class, a.Kind, slope, offset, b.box.Lb[k], b.box.Ub[k], a.Opts)
	if err != nil {
		return b.fail(k, err)
	}
	return g
}

// quadratic returns c·(x - m)² in dimension k.
func (b *builder) quadratic(k int, c, m float64) *funcs.Func {
	if b.err != nil {
		return nil
	}
	a := b.args.get(k)
	g, err := funcs.Quadratic(a.Class, a.Kind, c, m, b.box.Lb[k], b.box.Ub[k], a.Opts)
	if err != nil {
		return b.fail(k, err)
	}
	return g
}
