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

	"go.uber.org/zap"
)

// Jumps are detected using polynomial annihilation: a weighted sum of
// function values on a stencil of m+1 points annihilates polynomials of
// degree below m, so that the sum converges to zero where the function
// is smooth and to the jump height where it is not.

// MaxStencil is the largest supported stencil size.
const MaxStencil = 9

var factorial = [MaxStencil]float64{1, 1, 2, 6, 24, 120, 720, 5040, 40320}

// EvalCoeff returns the annihilation weight of stencil point l,
//
//	(n-1)! / prod_{i≠l} (s[l] - s[i]),
//
// where n = len(s).  The stencil points must be distinct.
func EvalCoeff(l int, s []float64) float64 {
	n := len(s)
	if n > MaxStencil {
		panic("piecewise: stencil too large")
	}
	out := factorial[n-1]
	for i, si := range s {
		if i != l {
			out /= s[l] - si
		}
	}
	return out
}

// EvalJump returns the normalised jump function at x for the stencil s
// with function values v.  The stencil must contain at least one point to
// the right of x.
func EvalJump(x float64, s, v []float64) float64 {
	var out, den float64
	for i := range s {
		c := EvalCoeff(i, s)
		if s[i] > x {
			den += c
		}
		out += c * v[i]
	}
	return out / den
}

// GetStencil selects n consecutive points from the sorted grid total
// which are closest to x, and returns the index of the first one.
// The point x must lie strictly inside the grid.
func GetStencil(x float64, n int, total []float64) int {
	ntotal := len(total)
	if n > ntotal {
		panic("piecewise: stencil larger than grid")
	}

	ii := 0
	for total[ii] < x {
		ii++
	}

	switch {
	case ii <= 1:
		return 0
	case ii == ntotal-1:
		return ntotal - n
	}

	f, b := ii-1, ii
	for range n - 2 {
		switch {
		case f == 0:
			b++
		case b == ntotal-1:
			f--
		case total[b+1]-x < x-total[f-1]:
			b++
		default:
			f--
		}
	}
	return f
}

// MinmodEval combines the jump functions for the orders minm, ..., maxm.
// If the estimates disagree in sign, the result is 0.  Otherwise the
// estimate of smallest magnitude is returned.
func MinmodEval(x float64, total, vals []float64, minm, maxm int) float64 {
	maxm = min(maxm, len(total)-1, MaxStencil-1)

	jumpAt := func(m int) float64 {
		start := GetStencil(x, m+1, total)
		return EvalJump(x, total[start:start+m+1], vals[start:start+m+1])
	}

	jump := jumpAt(minm)
	for m := minm + 1; m <= maxm; m++ {
		next := jumpAt(m)
		if (next < 0) != (jump < 0) {
			return 0
		}
		if math.Abs(next) < math.Abs(jump) {
			jump = next
		}
	}
	return jump
}

// MinmodDiscExists reports whether the grid values indicate a
// discontinuity near x.  A jump is flagged if its magnitude exceeds the
// order of magnitude of the grid spacing.
func MinmodDiscExists(x float64, total, vals []float64, minm, maxm int) bool {
	jump := MinmodEval(x, total, vals, minm, maxm)
	h := total[1] - total[0]
	threshold := math.Pow(10, math.Floor(math.Log10(h)))
	return math.Abs(jump) > threshold
}

// LocateJumps returns the approximate locations of the discontinuities
// of f in [lb, ub].
//
// The interval is split into nsplit pieces and every piece flagged by
// [MinmodDiscExists] is examined recursively, until the pieces are
// narrower than tol.  The midpoints of these pieces are returned, in
// increasing order.  nsplit must be at least 2.
func LocateJumps(f func(float64) float64, lb, ub float64, nsplit int, tol float64) []float64 {
	var edges []float64
	locateJumps(f, lb, ub, nsplit, tol, &edges)
	return edges
}

func locateJumps(f func(float64) float64, lb, ub float64, nsplit int, tol float64, edges *[]float64) {
	const minm, maxm = 2, 5

	if ub-lb < tol {
		x := (lb + ub) / 2
		logger.Debug("jump located", zap.Float64("x", x))
		*edges = append(*edges, x)
		return
	}

	pts := linspace(lb, ub, nsplit+1)
	vals := make([]float64, len(pts))
	for i, x := range pts {
		vals[i] = f(x)
	}
	for i := range nsplit {
		x := (pts[i] + pts[i+1]) / 2
		if MinmodDiscExists(x, pts, vals, minm, maxm) {
			locateJumps(f, pts[i], pts[i+1], nsplit, tol, edges)
		}
	}
}
