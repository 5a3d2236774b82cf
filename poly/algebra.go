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

package poly

import (
	"math"
)

// Integrate returns the integral of p over its domain.
func (p *Expansion) Integrate() float64 {
	half := 0.5 * (p.Ub - p.Lb)
	if p.Kind == Legendre {
		return 2 * half * p.Coeffs[0]
	}

	var s float64
	for k := 0; k < len(p.Coeffs); k += 2 {
		s += p.Coeffs[k] * 2 / (1 - float64(k*k))
	}
	return half * s
}

// Inner computes the integral of a(x)·b(x) over the intersection of the
// two domains.
func Inner(a, b *Expansion) float64 {
	if sameSpace(a, b) && a.Kind == Legendre {
		n := min(len(a.Coeffs), len(b.Coeffs))
		var s float64
		for k := range n {
			s += a.Coeffs[k] * b.Coeffs[k] * 2 / (2*float64(k) + 1)
		}
		return s * 0.5 * (a.Ub - a.Lb)
	}

	lb := math.Max(a.Lb, b.Lb)
	ub := math.Min(a.Ub, b.Ub)
	if !(lb < ub) {
		return 0
	}
	n := (len(a.Coeffs)+len(b.Coeffs))/2 + 1
	nodes, weights := gaussLegendre(n)
	half := 0.5 * (ub - lb)
	mid := 0.5 * (ub + lb)
	var s float64
	for i, t := range nodes {
		x := mid + half*t
		s += weights[i] * a.Eval(x) * b.Eval(x)
	}
	return s * half
}

// Norm returns the L2 norm of p over its domain.
func (p *Expansion) Norm() float64 {
	return math.Sqrt(math.Max(Inner(p, p), 0))
}

// Deriv returns the derivative of p.
func (p *Expansion) Deriv() *Expansion {
	n := len(p.Coeffs)
	res := New(p.Kind, max(n-1, 1), p.Lb, p.Ub)
	if n == 1 {
		return res
	}

	c := p.Coeffs
	d := res.Coeffs
	switch p.Kind {
	case Chebyshev:
		ext := make([]float64, n+1)
		for k := n - 1; k >= 1; k-- {
			ext[k-1] = ext[k+1] + 2*float64(k)*c[k]
		}
		ext[0] /= 2
		copy(d, ext[:n-1])
	default:
		// P'_j = Σ (2k+1) P_k over k < j with j-k odd
		var odd, even float64
		for k := n - 2; k >= 0; k-- {
			if (k+1)%2 == 0 {
				even += c[k+1]
			} else {
				odd += c[k+1]
			}
			// sum over j = k+1, k+3, ... of c[j]
			if k%2 == 0 {
				d[k] = (2*float64(k) + 1) * odd
			} else {
				d[k] = (2*float64(k) + 1) * even
			}
		}
	}

	scale := 2 / (p.Ub - p.Lb)
	for k := range d {
		d[k] *= scale
	}
	return res
}

// Scale multiplies p by a, in place.
func (p *Expansion) Scale(a float64) {
	for k := range p.Coeffs {
		p.Coeffs[k] *= a
	}
}

// FlipSign multiplies p by -1, in place.
func (p *Expansion) FlipSign() {
	p.Scale(-1)
}

// Axpy computes y <- a·x + y, in place.
// Both expansions must use the same family and domain.
func Axpy(a float64, x, y *Expansion) error {
	if !sameSpace(x, y) {
		return ErrMismatch
	}
	if len(x.Coeffs) > len(y.Coeffs) {
		y.Coeffs = append(y.Coeffs, make([]float64, len(x.Coeffs)-len(y.Coeffs))...)
	}
	for k, c := range x.Coeffs {
		y.Coeffs[k] += a * c
	}
	return nil
}

// Daxpby returns the new expansion a·x + b·y.
// If y is nil, the result is a·x.  If x and y use different families or
// domains, the combination is refitted adaptively over the union of the
// two domains, using the family of x.
func Daxpby(a float64, x *Expansion, b float64, y *Expansion) *Expansion {
	if x == nil {
		x, a, y, b = y, b, nil, 0
	}
	if y == nil {
		res := x.Copy()
		res.Scale(a)
		return res
	}

	if !sameSpace(x, y) {
		f := func(t float64) float64 {
			return a*x.Eval(t) + b*y.Eval(t)
		}
		return ApproxAdapt(f, x.Kind, math.Min(x.Lb, y.Lb), math.Max(x.Ub, y.Ub), nil)
	}

	n := max(len(x.Coeffs), len(y.Coeffs))
	res := New(x.Kind, n, x.Lb, x.Ub)
	for k, c := range x.Coeffs {
		res.Coeffs[k] += a * c
	}
	for k, c := range y.Coeffs {
		res.Coeffs[k] += b * c
	}
	return res
}

// Prod returns the product a·b.
//
// For expansions on the same space the product is exact up to rounding.
// Otherwise the product is refitted adaptively over the intersection of
// the two domains.
func Prod(a, b *Expansion) *Expansion {
	f := func(t float64) float64 {
		return a.Eval(t) * b.Eval(t)
	}
	if !sameSpace(a, b) {
		lb := math.Max(a.Lb, b.Lb)
		ub := math.Min(a.Ub, b.Ub)
		if !(lb < ub) {
			panic("poly: product of expansions with disjoint domains")
		}
		return ApproxAdapt(f, a.Kind, lb, ub, nil)
	}

	n := len(a.Coeffs) + len(b.Coeffs) - 1
	res := Approx(f, a.Kind, a.Lb, a.Ub, n)
	res.Round()
	return res
}
