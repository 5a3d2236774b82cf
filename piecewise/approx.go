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
	"golang.org/x/exp/slices"

	"seehuhn.de/go/ftrain/poly"
)

// Approx1 fits f on a fixed grid: [lb, ub] is split into opts.NRegions
// equal pieces (or at opts.Pts), and a polynomial of degree opts.MaxOrder
// is fitted on each piece.
func Approx1(f func(float64) float64, lb, ub float64, opts *Opts) *Poly {
	if opts == nil {
		opts = DefaultOpts()
	}
	p := approx1(f, lb, ub, opts)
	p.walkLeaves(func(l *Poly) { l.leaf.Round() })
	return p
}

// approx1 is like Approx1, but does not round the leaves.
func approx1(f func(float64) float64, lb, ub float64, opts *Opts) *Poly {
	n := opts.MaxOrder + 1

	pts := opts.Pts
	if pts == nil && opts.NRegions > 1 {
		pts = linspace(lb, ub, opts.NRegions+1)
	}
	if len(pts) < 3 {
		return &Poly{leaf: poly.Approx(f, opts.Kind, lb, ub, n)}
	}

	children := make([]*Poly, len(pts)-1)
	for i := range children {
		children[i] = &Poly{leaf: poly.Approx(f, opts.Kind, pts[i], pts[i+1], n)}
	}
	return &Poly{children: children}
}

// Approx1Adapt fits f on [lb, ub] by hierarchical splitting.
//
// First a fixed grid fit as in [Approx1] is computed.  Every leaf whose
// trailing opts.CoeffCheck coefficients are not all below opts.Epsilon is
// then replaced by a recursive adaptive fit on its own interval, unless
// the leaf is narrower than opts.MinSize.
func Approx1Adapt(f func(float64) float64, lb, ub float64, opts *Opts) *Poly {
	if opts == nil {
		opts = DefaultOpts()
	}

	p := approx1(f, lb, ub, opts)
	if p.leaf != nil {
		p.leaf.Round()
		return p
	}

	sub := *opts
	sub.Pts = nil
	for i, c := range p.children {
		e := c.leaf
		width := e.Ub - e.Lb
		if needsRefinement(e, opts) && width >= opts.MinSize {
			logger.Debug("refining piece",
				zap.Float64("lb", e.Lb),
				zap.Float64("ub", e.Ub))
			p.children[i] = Approx1Adapt(f, e.Lb, e.Ub, &sub)
		} else {
			e.Round()
		}
	}
	return p
}

// needsRefinement checks the trailing coefficients of e against
// opts.Epsilon.  The reference norm is 1.
func needsRefinement(e *poly.Expansion, opts *Opts) bool {
	n := len(e.Coeffs)
	check := min(opts.CoeffCheck, n)
	for j := range check {
		if math.Abs(e.Coeffs[n-1-j]) > opts.Epsilon {
			return true
		}
	}
	return false
}

// Approx2 fits f on [lb, ub] after locating its discontinuities.
//
// Jumps are located by [LocateJumps], using opts.MaxOrder as the number
// of splits and opts.MinSize as the resolution.  Every jump is enclosed
// in a piece of width 2·opts.MinSize and each remaining piece is fitted
// by an adaptive polynomial expansion.
func Approx2(f func(float64) float64, lb, ub float64, opts *Opts) *Poly {
	if opts == nil {
		opts = &Opts{
			Kind:       poly.Legendre,
			MaxOrder:   30,
			MinSize:    1e-13,
			CoeffCheck: 4,
			Epsilon:    1e-10,
		}
	}

	edges := LocateJumps(f, lb, ub, max(opts.MaxOrder, 2), opts.MinSize)
	slices.Sort(edges)

	nodes := []float64{lb}
	add := func(x float64) {
		if x > nodes[len(nodes)-1] && x < ub {
			nodes = append(nodes, x)
		}
	}
	for _, e := range edges {
		add(e - opts.MinSize)
		add(e + opts.MinSize)
	}
	nodes = append(nodes, ub)

	aopts := &poly.AdaptOpts{
		StartNum:    6,
		CoeffsCheck: opts.CoeffCheck,
		Tol:         opts.Epsilon,
		MaxNum:      poly.DefaultAdaptOpts().MaxNum,
	}
	if len(nodes) == 2 {
		return &Poly{leaf: poly.ApproxAdapt(f, opts.Kind, lb, ub, aopts)}
	}
	children := make([]*Poly, len(nodes)-1)
	for i := range children {
		children[i] = &Poly{leaf: poly.ApproxAdapt(f, opts.Kind, nodes[i], nodes[i+1], aopts)}
	}
	return &Poly{children: children}
}

// FinerGrid re-fits p on the partition given by nodes, which includes
// both end points.  Each new piece must lie inside one piece of p.
// The new leaves are adaptive Legendre expansions.
func FinerGrid(p *Poly, nodes []float64) *Poly {
	if len(nodes) == 2 && p.leaf != nil && p.leaf.Lb == nodes[0] && p.leaf.Ub == nodes[1] {
		return p.Copy()
	}

	aopts := &poly.AdaptOpts{
		StartNum:    8,
		CoeffsCheck: 2,
		Tol:         1e-14,
		MaxNum:      poly.DefaultAdaptOpts().MaxNum,
	}
	if len(nodes) == 2 {
		return &Poly{leaf: poly.ApproxAdapt(p.Eval, poly.Legendre, nodes[0], nodes[1], aopts)}
	}
	children := make([]*Poly, len(nodes)-1)
	for i := range children {
		children[i] = &Poly{
			leaf: poly.ApproxAdapt(p.Eval, poly.Legendre, nodes[i], nodes[i+1], aopts),
		}
	}
	return &Poly{children: children}
}

func linspace(a, b float64, n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = a + (b-a)*float64(i)/float64(n-1)
	}
	res[n-1] = b
	return res
}
