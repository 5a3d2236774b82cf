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
	"math/rand/v2"

	"seehuhn.de/go/ftrain/linelm"
	"seehuhn.de/go/ftrain/piecewise"
	"seehuhn.de/go/ftrain/poly"
)

// ApproxOpts collects the approximation options of all function classes.
// Nil fields select the defaults of the respective package.
type ApproxOpts struct {
	Piecewise *piecewise.Opts
	Poly      *poly.AdaptOpts
	LinElem   *linelm.Opts
}

// pwOpts returns the piecewise options with the polynomial family set to
// kind.
func (o *ApproxOpts) pwOpts(kind poly.Kind) *piecewise.Opts {
	var res *piecewise.Opts
	if o != nil && o.Piecewise != nil {
		opts := *o.Piecewise
		res = &opts
	} else {
		res = piecewise.DefaultOpts()
	}
	res.Kind = kind
	return res
}

func (o *ApproxOpts) polyOpts() *poly.AdaptOpts {
	if o != nil {
		return o.Poly
	}
	return nil
}

func (o *ApproxOpts) linElem() *linelm.Opts {
	if o != nil {
		return o.LinElem
	}
	return nil
}

// nodes returns the linear element nodes for the interval [lb, ub].
func (o *ApproxOpts) nodes(lb, ub float64) []float64 {
	le := o.linElem()
	if le != nil && le.Nodes != nil {
		return le.Nodes
	}
	n := linelm.DefaultNumNodes
	if le != nil && le.NumNodes >= 2 {
		n = le.NumNodes
	}
	return linelm.Linspace(lb, ub, n)
}

// Approximate1D approximates f on [lb, ub] using the given class.
//
// Piecewise functions are fitted by adaptive refinement, polynomial
// expansions by increasing the number of terms, and linear elements by
// interpolation on a grid.  For Rational and Kernel an error is returned.
func Approximate1D(class Class, kind poly.Kind, f func(float64) float64, lb, ub float64, opts *ApproxOpts) (*Func, error) {
	switch class {
	case Piecewise:
		pw := piecewise.Approx1Adapt(f, lb, ub, opts.pwOpts(kind))
		return FromPiecewise(pw), nil
	case Polynomial:
		return FromExpansion(poly.ApproxAdapt(f, kind, lb, ub, opts.polyOpts())), nil
	case LinElem:
		return FromElement(linelm.Approx(f, lb, ub, opts.linElem())), nil
	}
	return nil, newClassError("approximate", class, class)
}

// Constant returns the constant function a on [lb, ub].
func Constant(class Class, kind poly.Kind, a, lb, ub float64, opts *ApproxOpts) (*Func, error) {
	switch class {
	case Piecewise:
		return FromPiecewise(piecewise.Constant(a, kind, lb, ub)), nil
	case Polynomial:
		return FromExpansion(poly.Constant(a, kind, lb, ub)), nil
	case LinElem:
		return FromElement(linelm.Constant(a, opts.nodes(lb, ub))), nil
	}
	return nil, newClassError("constant", class, class)
}

// Linear returns slope·x + offset on [lb, ub].
func Linear(class Class, kind poly.Kind, slope, offset, lb, ub float64, opts *ApproxOpts) (*Func, error) {
	switch class {
	case Piecewise:
		return FromPiecewise(piecewise.Linear(slope, offset, kind, lb, ub)), nil
	case Polynomial:
		return FromExpansion(poly.Linear(slope, offset, kind, lb, ub)), nil
	case LinElem:
		return FromElement(linelm.Linear(slope, offset, opts.nodes(lb, ub))), nil
	}
	return nil, newClassError("linear", class, class)
}

// Quadratic returns a·(x - offset)² on [lb, ub].
// For linear elements the function is sampled at the nodes.
func Quadratic(class Class, kind poly.Kind, a, offset, lb, ub float64, opts *ApproxOpts) (*Func, error) {
	b := -2 * a * offset
	c := a * offset * offset
	switch class {
	case Piecewise:
		return FromPiecewise(piecewise.Quadratic(a, b, c, kind, lb, ub)), nil
	case Polynomial:
		return FromExpansion(poly.Quadratic(a, b, c, kind, lb, ub)), nil
	case LinElem:
		return FromElement(linelm.Quadratic(a, b, c, opts.nodes(lb, ub))), nil
	}
	return nil, newClassError("quadratic", class, class)
}

// PolyRandu returns a polynomial expansion of the given order with
// coefficients drawn uniformly from [-1, 1].
func PolyRandu(kind poly.Kind, order int, lb, ub float64, rng *rand.Rand) *Func {
	return FromExpansion(poly.Randu(kind, order, lb, ub, rng))
}

// OneZero returns the linear element function which is 1 at one and 0 at
// lb, ub and all points in zeros.
func OneZero(one float64, zeros []float64, lb, ub float64) *Func {
	return FromElement(linelm.OneZero(one, zeros, lb, ub))
}

// CreateNodal samples f at the points x and returns the piecewise linear
// interpolant.  The points must be strictly increasing.
func CreateNodal(f *Func, x []float64) *Func {
	values := make([]float64, len(x))
	for i, xi := range x {
		values[i] = f.Eval(xi)
	}
	return FromElement(linelm.Nodal(x, values))
}

// ArrayOrth returns n functions on [lb, ub] which are orthonormal in L².
//
// For Polynomial and Piecewise the functions are the normalised basis
// polynomials of order 0, ..., n-1.  For LinElem, orthonormalised hat
// functions on n equally spaced nodes are used.
func ArrayOrth(n int, class Class, kind poly.Kind, lb, ub float64) ([]*Func, error) {
	res := make([]*Func, n)
	switch class {
	case Polynomial, Piecewise:
		for i, e := range poly.OrthBasis(n, kind, lb, ub) {
			if class == Polynomial {
				res[i] = FromExpansion(e)
			} else {
				res[i] = FromPiecewise(piecewise.FromExpansion(e))
			}
		}
	case LinElem:
		nodes := linelm.Linspace(lb, ub, max(n, 2))
		for i, e := range linelm.OrthBasis(n, nodes) {
			res[i] = FromElement(e)
		}
	default:
		return nil, newClassError("orthonormal basis", class, class)
	}
	return res, nil
}
