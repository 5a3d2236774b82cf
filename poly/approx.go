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

// roundTol is the relative size below which trailing coefficients are
// dropped by [Expansion.Round].
const roundTol = 10 * 2.220446049250313e-16

// AdaptOpts controls [ApproxAdapt].
type AdaptOpts struct {
	// StartNum is the number of coefficients used for the first fit.
	StartNum int

	// CoeffsCheck is the number of trailing coefficients which must be
	// small for the fit to be accepted.
	CoeffsCheck int

	// Tol is the threshold for the trailing coefficients, relative to
	// max(1, largest coefficient).
	Tol float64

	// MaxNum limits the number of coefficients.
	MaxNum int
}

// DefaultAdaptOpts returns the options used when nil is passed to
// [ApproxAdapt].
func DefaultAdaptOpts() *AdaptOpts {
	return &AdaptOpts{
		StartNum:    8,
		CoeffsCheck: 2,
		Tol:         1e-10,
		MaxNum:      257,
	}
}

// gaussLegendre returns the nodes and weights of the n-point Gauss-Legendre
// quadrature rule on [-1, 1].  The nodes are in increasing order.
func gaussLegendre(n int) (x, w []float64) {
	x = make([]float64, n)
	w = make([]float64, n)
	m := (n + 1) / 2
	for i := range m {
		z := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(n) + 0.5))
		var pp float64
		for range 100 {
			p1, p2 := 1.0, 0.0
			for j := range n {
				p3 := p2
				p2 = p1
				p1 = ((2*float64(j)+1)*z*p2 - float64(j)*p3) / float64(j+1)
			}
			pp = float64(n) * (z*p1 - p2) / (z*z - 1)
			z1 := z
			z = z1 - p1/pp
			if math.Abs(z-z1) <= 1e-16 {
				break
			}
		}
		x[i] = -z
		x[n-1-i] = z
		w[i] = 2 / ((1 - z*z) * pp * pp)
		w[n-1-i] = w[i]
	}
	return x, w
}

// chebyshevNodes returns the n Chebyshev points of the first kind on
// [-1, 1], in decreasing order.
func chebyshevNodes(n int) []float64 {
	u := make([]float64, n)
	for k := range u {
		u[k] = math.Cos((float64(k) + 0.5) * math.Pi / float64(n))
	}
	return u
}

// Approx computes an n-term expansion of f on [lb, ub].
//
// Legendre expansions use the discrete projection given by the n-point
// Gauss-Legendre rule, Chebyshev expansions interpolate f at the Chebyshev
// points.  In both cases polynomials of degree less than n are reproduced
// exactly.
func Approx(f func(float64) float64, kind Kind, lb, ub float64, n int) *Expansion {
	p := New(kind, n, lb, ub)
	n = len(p.Coeffs)

	switch kind {
	case Chebyshev:
		nodes := chebyshevNodes(n)
		for _, u := range nodes {
			fx := f(p.fromUnit(u))
			T := basisValues(Chebyshev, u, n)
			for k := range n {
				p.Coeffs[k] += fx * T[k]
			}
		}
		for k := range n {
			p.Coeffs[k] *= 2 / float64(n)
		}
		p.Coeffs[0] /= 2
	default:
		nodes, weights := gaussLegendre(n)
		for i, t := range nodes {
			fx := weights[i] * f(p.fromUnit(t))
			P := basisValues(Legendre, t, n)
			for k := range n {
				p.Coeffs[k] += fx * P[k]
			}
		}
		for k := range n {
			p.Coeffs[k] *= (2*float64(k) + 1) / 2
		}
	}
	return p
}

// ApproxAdapt approximates f on [lb, ub], increasing the number of terms
// until the trailing coefficients are negligible.  The result is rounded.
func ApproxAdapt(f func(float64) float64, kind Kind, lb, ub float64, opts *AdaptOpts) *Expansion {
	if opts == nil {
		opts = DefaultAdaptOpts()
	}
	maxNum := opts.MaxNum
	if maxNum < 1 {
		maxNum = DefaultAdaptOpts().MaxNum
	}
	n := max(opts.StartNum, 1)
	n = min(n, maxNum)

	var p *Expansion
	for {
		p = Approx(f, kind, lb, ub, n)
		if p.converged(opts.CoeffsCheck, opts.Tol) || n >= maxNum {
			break
		}
		n = min(2*n-1, maxNum)
		if n < 3 {
			n = 3
		}
	}
	p.Round()
	return p
}

func (p *Expansion) converged(check int, tol float64) bool {
	scale := math.Max(1, maxAbs(p.Coeffs))
	n := len(p.Coeffs)
	check = min(check, n)
	for j := range check {
		if math.Abs(p.Coeffs[n-1-j]) > tol*scale {
			return false
		}
	}
	return true
}

// Round drops trailing coefficients which are negligible compared to the
// largest coefficient.  At least one coefficient is kept.
func (p *Expansion) Round() {
	p.RoundT(roundTol)
}

// RoundT drops trailing coefficients whose magnitude is at most thresh
// times the largest coefficient magnitude.  At least one coefficient is
// kept.
func (p *Expansion) RoundT(thresh float64) {
	scale := maxAbs(p.Coeffs)
	n := len(p.Coeffs)
	for n > 1 && math.Abs(p.Coeffs[n-1]) <= thresh*scale {
		n--
	}
	if scale == 0 {
		n = 1
	}
	p.Coeffs = p.Coeffs[:n]
}
