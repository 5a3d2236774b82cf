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

// RealRoots returns the zeros of p inside its domain, in increasing order.
//
// Roots are bracketed on a grid which is fine compared to the degree of
// the polynomial and then refined by bisection.  Roots of even
// multiplicity which do not produce a sign change are only found if they
// happen to fall on a grid point.
func (p *Expansion) RealRoots() []float64 {
	if len(p.Coeffs) == 1 {
		return nil
	}

	m := max(8*len(p.Coeffs), 64)
	h := (p.Ub - p.Lb) / float64(m)
	tol := 1e-15 * math.Max(1, p.Ub-p.Lb)

	var roots []float64
	add := func(x float64) {
		if len(roots) > 0 && math.Abs(x-roots[len(roots)-1]) <= 10*tol {
			return
		}
		roots = append(roots, x)
	}

	xPrev := p.Lb
	fPrev := p.Eval(xPrev)
	if fPrev == 0 {
		add(xPrev)
	}
	for i := 1; i <= m; i++ {
		x := p.Lb + float64(i)*h
		if i == m {
			x = p.Ub
		}
		fx := p.Eval(x)
		if fx == 0 {
			add(x)
		} else if fPrev != 0 && (fPrev < 0) != (fx < 0) {
			add(p.bisect(xPrev, x, fPrev, tol))
		}
		xPrev, fPrev = x, fx
	}
	return roots
}

func (p *Expansion) bisect(a, b, fa, tol float64) float64 {
	for b-a > tol {
		mid := 0.5 * (a + b)
		if mid <= a || mid >= b {
			break
		}
		fm := p.Eval(mid)
		if fm == 0 {
			return mid
		}
		if (fm < 0) == (fa < 0) {
			a, fa = mid, fm
		} else {
			b = mid
		}
	}
	return 0.5 * (a + b)
}

// candidates returns the points where p can take its extreme values:
// the domain end points and the critical points.
func (p *Expansion) candidates() []float64 {
	res := []float64{p.Lb}
	if len(p.Coeffs) > 2 {
		res = append(res, p.Deriv().RealRoots()...)
	}
	return append(res, p.Ub)
}

// Max returns the location and value of the maximum of p.
// For constant functions the left end point is returned.
func (p *Expansion) Max() (float64, float64) {
	return p.extremum(func(v float64) float64 { return v })
}

// Min returns the location and value of the minimum of p.
func (p *Expansion) Min() (float64, float64) {
	return p.extremum(func(v float64) float64 { return -v })
}

// AbsMax returns the location of the maximum of |p| and the value |p(x)|.
func (p *Expansion) AbsMax() (float64, float64) {
	loc, _ := p.extremum(math.Abs)
	return loc, math.Abs(p.Eval(loc))
}

func (p *Expansion) extremum(score func(float64) float64) (float64, float64) {
	bestLoc := math.NaN()
	bestScore := math.Inf(-1)
	for _, x := range p.candidates() {
		s := score(p.Eval(x))
		if s > bestScore {
			bestLoc, bestScore = x, s
		}
	}
	return bestLoc, p.Eval(bestLoc)
}
