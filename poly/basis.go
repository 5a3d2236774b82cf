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
	"math/rand/v2"
)

// Constant returns the constant function a on [lb, ub].
func Constant(a float64, kind Kind, lb, ub float64) *Expansion {
	p := New(kind, 1, lb, ub)
	p.Coeffs[0] = a
	return p
}

// Linear returns the function slope·x + offset on [lb, ub].
func Linear(slope, offset float64, kind Kind, lb, ub float64) *Expansion {
	p := New(kind, 2, lb, ub)
	mid := 0.5 * (lb + ub)
	half := 0.5 * (ub - lb)
	p.Coeffs[0] = slope*mid + offset
	p.Coeffs[1] = slope * half
	return p
}

// Quadratic returns the function a·x² + b·x + c on [lb, ub].
func Quadratic(a, b, c float64, kind Kind, lb, ub float64) *Expansion {
	p := Approx(func(x float64) float64 {
		return (a*x+b)*x + c
	}, kind, lb, ub, 3)
	p.Round()
	return p
}

// Randu returns an expansion with order+1 coefficients drawn uniformly
// from [-1, 1].
func Randu(kind Kind, order int, lb, ub float64, rng *rand.Rand) *Expansion {
	p := New(kind, order+1, lb, ub)
	for k := range p.Coeffs {
		p.Coeffs[k] = 2*rng.Float64() - 1
	}
	return p
}

// OrthBasis returns n expansions of degree 0, 1, ..., n-1 which are
// orthonormal with respect to the inner product ∫ f(x) g(x) dx on [lb, ub].
func OrthBasis(n int, kind Kind, lb, ub float64) []*Expansion {
	res := make([]*Expansion, n)
	if kind == Legendre {
		for k := range res {
			p := New(Legendre, k+1, lb, ub)
			p.Coeffs[k] = math.Sqrt((2*float64(k) + 1) / (ub - lb))
			res[k] = p
		}
		return res
	}

	for k := range res {
		u := New(kind, k+1, lb, ub)
		u.Coeffs[k] = 1
		// two passes of Gram-Schmidt keep the basis orthonormal to
		// rounding precision
		for range 2 {
			for _, b := range res[:k] {
				_ = Axpy(-Inner(u, b), b, u)
			}
		}
		u.Scale(1 / u.Norm())
		res[k] = u
	}
	return res
}

// ToStandard converts p into monomial coefficients with respect to the
// variable t ∈ [-1, 1] of the reference interval, lowest degree first.
func (p *Expansion) ToStandard() []float64 {
	n := len(p.Coeffs)
	res := make([]float64, n)

	prev := []float64{1}
	cur := []float64{0, 1}
	for k := range n {
		var basis []float64
		switch k {
		case 0:
			basis = prev
		case 1:
			basis = cur
		default:
			next := make([]float64, k+1)
			fk := float64(k - 1)
			for j, c := range cur {
				if p.Kind == Chebyshev {
					next[j+1] += 2 * c
				} else {
					next[j+1] += (2*fk + 1) * c / (fk + 1)
				}
			}
			for j, c := range prev {
				if p.Kind == Chebyshev {
					next[j] -= c
				} else {
					next[j] -= fk * c / (fk + 1)
				}
			}
			prev, cur = cur, next
			basis = cur
		}
		for j, c := range basis {
			res[j] += p.Coeffs[k] * c
		}
	}
	return res
}
