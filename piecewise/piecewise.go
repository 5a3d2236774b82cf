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

// Package piecewise implements piecewise polynomial functions of one
// variable, organised as a tree of sub-intervals.
//
// Every node of the tree is either a leaf, holding one polynomial
// expansion, or an interior node whose children partition the node's
// interval from left to right.  Trees are built by adaptive refinement
// ([Approx1Adapt]), by jump detection ([Approx2]), or by re-fitting on a
// given partition ([FinerGrid], [Match]).
package piecewise

import (
	"fmt"

	"go.uber.org/zap"

	"seehuhn.de/go/ftrain/poly"
)

var logger = zap.NewNop()

// SetLogger sets the logger used for diagnostic messages.
// Passing nil disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Poly is a node of a piecewise polynomial.
// Exactly one of leaf and children is set.
type Poly struct {
	leaf     *poly.Expansion
	children []*Poly
}

// Opts controls the construction of piecewise polynomials.
type Opts struct {
	// Kind is the polynomial family used on the leaves.
	Kind poly.Kind

	// MaxOrder is the polynomial degree of each leaf.
	MaxOrder int

	// MinSize is the smallest interval which is still refined.
	MinSize float64

	// CoeffCheck is the number of trailing coefficients inspected when
	// deciding whether to refine a leaf.
	CoeffCheck int

	// Epsilon is the threshold for the trailing coefficients.
	Epsilon float64

	// NRegions is the number of equal sub-intervals each refinement step
	// creates.
	NRegions int

	// Pts optionally gives the break points of the first level,
	// including both end points.  If set, NRegions is ignored on the
	// first level.
	Pts []float64
}

// DefaultOpts returns the options used when nil is passed to
// [Approx1Adapt].
func DefaultOpts() *Opts {
	return &Opts{
		Kind:       poly.Legendre,
		MaxOrder:   7,
		MinSize:    1e-5,
		CoeffCheck: 2,
		Epsilon:    1e-8,
		NRegions:   5,
	}
}

// combineOpts is used to refit sums of piecewise polynomials.
func combineOpts(epsilon float64) *Opts {
	return &Opts{
		Kind:       poly.Legendre,
		MaxOrder:   7,
		MinSize:    1e-3,
		CoeffCheck: 2,
		Epsilon:    epsilon,
		NRegions:   5,
	}
}

// FromExpansion returns a single-leaf tree holding a copy of e.
func FromExpansion(e *poly.Expansion) *Poly {
	return &Poly{leaf: e.Copy()}
}

// NewNode returns an interior node with the given children.
// The children must partition an interval from left to right.
func NewNode(children ...*Poly) *Poly {
	if len(children) == 0 {
		panic("piecewise: interior node without children")
	}
	for i := 1; i < len(children); i++ {
		if children[i-1].Ub() != children[i].Lb() {
			panic(fmt.Sprintf("piecewise: children ending at %g and starting at %g are not contiguous",
				children[i-1].Ub(), children[i].Lb()))
		}
	}
	return &Poly{children: children}
}

// Constant returns the constant function a on [lb, ub].
func Constant(a float64, kind poly.Kind, lb, ub float64) *Poly {
	return &Poly{leaf: poly.Constant(a, kind, lb, ub)}
}

// Linear returns slope·x + offset on [lb, ub].
func Linear(slope, offset float64, kind poly.Kind, lb, ub float64) *Poly {
	return &Poly{leaf: poly.Linear(slope, offset, kind, lb, ub)}
}

// Quadratic returns a·x² + b·x + c on [lb, ub].
func Quadratic(a, b, c float64, kind poly.Kind, lb, ub float64) *Poly {
	return &Poly{leaf: poly.Quadratic(a, b, c, kind, lb, ub)}
}

// IsLeaf reports whether p is a leaf.
func (p *Poly) IsLeaf() bool {
	return p.leaf != nil
}

// Leaf returns the expansion stored in a leaf, or nil for interior nodes.
func (p *Poly) Leaf() *poly.Expansion {
	return p.leaf
}

// Children returns the children of an interior node.
func (p *Poly) Children() []*Poly {
	return p.children
}

// Copy returns a deep copy of p.
func (p *Poly) Copy() *Poly {
	if p == nil {
		return nil
	}
	if p.leaf != nil {
		return &Poly{leaf: p.leaf.Copy()}
	}
	children := make([]*Poly, len(p.children))
	for i, c := range p.children {
		children[i] = c.Copy()
	}
	return &Poly{children: children}
}

// Kind returns the polynomial family of the leftmost leaf.
func (p *Poly) Kind() poly.Kind {
	for p.leaf == nil {
		p = p.children[0]
	}
	return p.leaf.Kind
}

// Lb returns the lower bound of the domain.
func (p *Poly) Lb() float64 {
	for p.leaf == nil {
		p = p.children[0]
	}
	return p.leaf.Lb
}

// Ub returns the upper bound of the domain.
func (p *Poly) Ub() float64 {
	for p.leaf == nil {
		p = p.children[len(p.children)-1]
	}
	return p.leaf.Ub
}

// Eval evaluates p at x.
// A point on the boundary between two pieces is evaluated using the left
// piece.  Points outside the domain use the nearest piece.
func (p *Poly) Eval(x float64) float64 {
	for p.leaf == nil {
		next := p.children[len(p.children)-1]
		for _, c := range p.children {
			if x <= c.Ub() {
				next = c
				break
			}
		}
		p = next
	}
	return p.leaf.Eval(x)
}

// walkLeaves calls fn for all leaves, from left to right.
func (p *Poly) walkLeaves(fn func(*Poly)) {
	if p.leaf != nil {
		fn(p)
		return
	}
	for _, c := range p.children {
		c.walkLeaves(fn)
	}
}

// RoundT applies [poly.Expansion.RoundT] to every leaf.
func (p *Poly) RoundT(thresh float64) {
	p.walkLeaves(func(l *Poly) { l.leaf.RoundT(thresh) })
}

// NRegions returns the number of leaves.
func (p *Poly) NRegions() int {
	n := 0
	p.walkLeaves(func(*Poly) { n++ })
	return n
}

// Boundaries returns the end points of all pieces: the lower bound
// followed by the upper bound of every leaf, from left to right.
// The result has NRegions()+1 elements.
func (p *Poly) Boundaries() []float64 {
	res := make([]float64, 1, p.NRegions()+1)
	res[0] = p.Lb()
	p.walkLeaves(func(l *Poly) {
		res = append(res, l.leaf.Ub)
	})
	return res
}

func (p *Poly) String() string {
	if p.leaf != nil {
		return fmt.Sprintf("leaf[%g, %g](%d)", p.leaf.Lb, p.leaf.Ub, len(p.leaf.Coeffs))
	}
	return fmt.Sprintf("node[%g, %g](%d children, %d leaves)",
		p.Lb(), p.Ub(), len(p.children), p.NRegions())
}
