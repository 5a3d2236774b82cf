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

// Package poly implements orthogonal polynomial expansions of functions
// of one variable on a bounded interval.
//
// An [Expansion] represents the function
//
//	f(x) = Σ_k Coeffs[k] · P_k(t),   t = (2x - Lb - Ub) / (Ub - Lb),
//
// where P_k is either the Legendre polynomial of degree k (normalised
// so that P_k(1) = 1) or the Chebyshev polynomial T_k of the first kind.
package poly

import (
	"errors"
	"fmt"
	"math"
)

// Kind selects the family of orthogonal polynomials used by an expansion.
type Kind int

// These are the supported polynomial families.
const (
	Legendre Kind = iota
	Chebyshev
)

func (k Kind) String() string {
	switch k {
	case Legendre:
		return "legendre"
	case Chebyshev:
		return "chebyshev"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts the name of a polynomial family into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "legendre", "LEGENDRE":
		return Legendre, nil
	case "chebyshev", "CHEBYSHEV":
		return Chebyshev, nil
	}
	return 0, fmt.Errorf("unknown polynomial kind %q", s)
}

// ErrMismatch is returned when two expansions do not share the same
// polynomial family and domain.
var ErrMismatch = errors.New("poly: expansions have different kind or domain")

// Expansion is a finite orthogonal polynomial expansion on [Lb, Ub].
type Expansion struct {
	Kind   Kind
	Lb, Ub float64

	// Coeffs holds the expansion coefficients, lowest degree first.
	// An expansion always has at least one coefficient.
	Coeffs []float64
}

// New allocates an expansion with n zero coefficients.
func New(kind Kind, n int, lb, ub float64) *Expansion {
	if n < 1 {
		n = 1
	}
	if !(lb < ub) {
		panic(fmt.Sprintf("poly: invalid domain [%g, %g]", lb, ub))
	}
	return &Expansion{
		Kind:   kind,
		Lb:     lb,
		Ub:     ub,
		Coeffs: make([]float64, n),
	}
}

// Copy returns an independent copy of p.
func (p *Expansion) Copy() *Expansion {
	if p == nil {
		return nil
	}
	return &Expansion{
		Kind:   p.Kind,
		Lb:     p.Lb,
		Ub:     p.Ub,
		Coeffs: append([]float64(nil), p.Coeffs...),
	}
}

// NumCoeffs returns the number of coefficients of the expansion.
func (p *Expansion) NumCoeffs() int {
	return len(p.Coeffs)
}

func (p *Expansion) toUnit(x float64) float64 {
	return (2*x - p.Lb - p.Ub) / (p.Ub - p.Lb)
}

func (p *Expansion) fromUnit(t float64) float64 {
	return 0.5*(p.Lb+p.Ub) + 0.5*(p.Ub-p.Lb)*t
}

// Eval evaluates the expansion at x.
// Points outside the domain are extrapolated.
func (p *Expansion) Eval(x float64) float64 {
	return evalUnit(p.Kind, p.Coeffs, p.toUnit(x))
}

func evalUnit(kind Kind, coeffs []float64, t float64) float64 {
	y := coeffs[0]
	if len(coeffs) == 1 {
		return y
	}
	prev, cur := 1.0, t
	y += coeffs[1] * cur
	for k := 1; k+1 < len(coeffs); k++ {
		next := nextBasis(kind, k, t, cur, prev)
		prev, cur = cur, next
		y += coeffs[k+1] * cur
	}
	return y
}

// nextBasis returns P_{k+1}(t) given P_k(t) and P_{k-1}(t).
func nextBasis(kind Kind, k int, t, pk, pkm1 float64) float64 {
	if kind == Chebyshev {
		return 2*t*pk - pkm1
	}
	fk := float64(k)
	return ((2*fk+1)*t*pk - fk*pkm1) / (fk + 1)
}

// basisValues returns P_0(t), ..., P_{n-1}(t).
func basisValues(kind Kind, t float64, n int) []float64 {
	res := make([]float64, n)
	res[0] = 1
	if n > 1 {
		res[1] = t
	}
	for k := 1; k+1 < n; k++ {
		res[k+1] = nextBasis(kind, k, t, res[k], res[k-1])
	}
	return res
}

// sameSpace reports whether a and b use the same family and domain.
func sameSpace(a, b *Expansion) bool {
	return a.Kind == b.Kind && a.Lb == b.Lb && a.Ub == b.Ub
}

func maxAbs(xs []float64) float64 {
	m := 0.0
	for _, x := range xs {
		m = math.Max(m, math.Abs(x))
	}
	return m
}
