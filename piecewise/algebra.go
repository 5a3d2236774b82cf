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

package piecewise

import (
	"math"

	"seehuhn.de/go/ftrain/poly"
)

// Integrate returns the integral of p over its domain.
func (p *Poly) Integrate() float64 {
	var sum float64
	p.walkLeaves(func(l *Poly) {
		sum += l.leaf.Integrate()
	})
	return sum
}

// Deriv returns the derivative of p, computed piece by piece.
func (p *Poly) Deriv() *Poly {
	if p.leaf != nil {
		return &Poly{leaf: p.leaf.Deriv()}
	}
	children := make([]*Poly, len(p.children))
	for i, c := range p.children {
		children[i] = c.Deriv()
	}
	return &Poly{children: children}
}

// Scale multiplies p by a, in place.
func (p *Poly) Scale(a float64) {
	p.walkLeaves(func(l *Poly) {
		l.leaf.Scale(a)
	})
}

// FlipSign multiplies p by -1, in place.
func (p *Poly) FlipSign() {
	p.Scale(-1)
}

// RealRoots returns the real roots of all pieces, from left to right.
func (p *Poly) RealRoots() []float64 {
	var roots []float64
	p.walkLeaves(func(l *Poly) {
		roots = append(roots, l.leaf.RealRoots()...)
	})
	return roots
}

// Max returns the location and value of the maximum of p.
func (p *Poly) Max() (float64, float64) {
	return p.extremum((*poly.Expansion).Max, func(v float64) float64 { return v })
}

// Min returns the location and value of the minimum of p.
func (p *Poly) Min() (float64, float64) {
	return p.extremum((*poly.Expansion).Min, func(v float64) float64 { return -v })
}

// AbsMax returns the location of the maximum of |p| and the value |p(x)|.
func (p *Poly) AbsMax() (float64, float64) {
	return p.extremum((*poly.Expansion).AbsMax, func(v float64) float64 { return v })
}

// extremum finds the best leaf extremum.  Ties go to the leftmost leaf.
func (p *Poly) extremum(leafOpt func(*poly.Expansion) (float64, float64), score func(float64) float64) (float64, float64) {
	bestLoc, bestVal := math.NaN(), math.NaN()
	bestScore := math.Inf(-1)
	p.walkLeaves(func(l *Poly) {
		loc, val := leafOpt(l.leaf)
		if s := score(val); s > bestScore {
			bestLoc, bestVal, bestScore = loc, val, s
		}
	})
	return bestLoc, bestVal
}

// Daxpby returns a·x + b·y.
//
// If y is nil, the result is a copy of x, scaled by a.  Otherwise the
// pointwise combination is re-fitted by [Approx1Adapt] over the union of
// the two domains.  Use [MatchedDaxpby] together with [Match] to combine
// trees without re-fitting.
func Daxpby(a float64, x *Poly, b float64, y *Poly) *Poly {
	if x == nil {
		x, a, y, b = y, b, nil, 0
	}
	if y == nil {
		res := x.Copy()
		res.Scale(a)
		return res
	}

	f := func(t float64) float64 {
		return a*x.Eval(t) + b*y.Eval(t)
	}
	lb := math.Min(x.Lb(), y.Lb())
	ub := math.Max(x.Ub(), y.Ub())
	return Approx1Adapt(f, lb, ub, combineOpts(1e-8))
}

// Prod returns the product a·b, re-fitted by [Approx1Adapt] over the
// intersection of the two domains.
func Prod(a, b *Poly) *Poly {
	f := func(t float64) float64 {
		return a.Eval(t) * b.Eval(t)
	}
	lb := math.Max(a.Lb(), b.Lb())
	ub := math.Min(a.Ub(), b.Ub())
	if !(lb < ub) {
		panic("piecewise: product of functions with disjoint domains")
	}
	return Approx1Adapt(f, lb, ub, combineOpts(1e-7))
}

// Inner returns the L² inner product of a and b over the intersection of
// their domains.
//
// The two trees are first brought onto a common partition using [Match].
// The result is then the sum of the exact inner products of the leaves.
// Disjoint domains give 0.
func Inner(a, b *Poly) float64 {
	if !(math.Max(a.Lb(), b.Lb()) < math.Min(a.Ub(), b.Ub())) {
		return 0
	}
	aa, bb := Match(a, b)
	return matchedInner(aa, bb)
}

func matchedInner(a, b *Poly) float64 {
	if a.leaf != nil {
		return poly.Inner(a.leaf, b.leaf)
	}
	var sum float64
	for i, c := range a.children {
		sum += matchedInner(c, b.children[i])
	}
	return sum
}

// Norm returns the L² norm of p.
func (p *Poly) Norm() float64 {
	ip := Inner(p, p)
	if ip < 0 {
		// only rounding errors can make this negative
		return 0
	}
	return math.Sqrt(ip)
}

// Match re-fits a and b on a common partition of the intersection of
// their domains.  The partition consists of the boundaries of both trees,
// with coincident points merged.  The two results have identical
// boundaries.
func Match(a, b *Poly) (*Poly, *Poly) {
	lb := math.Max(a.Lb(), b.Lb())
	ub := math.Min(a.Ub(), b.Ub())
	if !(lb < ub) {
		panic("piecewise: matching functions with disjoint domains")
	}
	nodes := mergeBoundaries(a.Boundaries(), b.Boundaries(), lb, ub)
	return FinerGrid(a, nodes), FinerGrid(b, nodes)
}

// mergeBoundaries merges two sorted lists, restricted to [lb, ub].
// Points which agree to machine precision are merged.
func mergeBoundaries(xa, xb []float64, lb, ub float64) []float64 {
	res := []float64{lb}
	add := func(x float64) {
		last := res[len(res)-1]
		if x-last > eps*math.Max(1, math.Abs(x)) && ub-x > eps*math.Max(1, math.Abs(x)) {
			res = append(res, x)
		}
	}
	i, j := 0, 0
	for i < len(xa) || j < len(xb) {
		var x float64
		if j >= len(xb) || i < len(xa) && xa[i] <= xb[j] {
			x = xa[i]
			i++
		} else {
			x = xb[j]
			j++
		}
		add(x)
	}
	return append(res, ub)
}

const eps = 0x1p-52

// MatchedDaxpby returns a·x + b·y for trees with identical structure,
// such as the results of [Match].  The leaves are combined exactly.
func MatchedDaxpby(a float64, x *Poly, b float64, y *Poly) *Poly {
	if x.leaf != nil {
		return &Poly{leaf: poly.Daxpby(a, x.leaf, b, y.leaf)}
	}
	if len(x.children) != len(y.children) {
		panic("piecewise: trees have different structure")
	}
	children := make([]*Poly, len(x.children))
	for i, c := range x.children {
		children[i] = MatchedDaxpby(a, c, b, y.children[i])
	}
	return &Poly{children: children}
}

// MatchedProd returns the product of two trees with identical structure.
func MatchedProd(x, y *Poly) *Poly {
	if x.leaf != nil {
		return &Poly{leaf: poly.Prod(x.leaf, y.leaf)}
	}
	if len(x.children) != len(y.children) {
		panic("piecewise: trees have different structure")
	}
	children := make([]*Poly, len(x.children))
	for i, c := range x.children {
		children[i] = MatchedProd(c, y.children[i])
	}
	return &Poly{children: children}
}

// CheckDiscontinuity reports whether left and right fail to join
// continuously at the upper bound of left and the lower bound of right.
// The values and up to numCheck derivatives are compared, using a
// relative tolerance for values of magnitude at least 1.
// For numCheck < 0 the result is always false.
func CheckDiscontinuity(left, right *Poly, numCheck int, tol float64) bool {
	for ; numCheck >= 0; numCheck-- {
		v1 := left.Eval(left.Ub())
		v2 := right.Eval(right.Lb())
		diff := math.Abs(v1 - v2)
		if math.Abs(v1) >= 1 {
			diff /= math.Abs(v1)
		}
		if diff >= tol {
			return true
		}
		if numCheck > 0 {
			left = left.Deriv()
			right = right.Deriv()
		}
	}
	return false
}
