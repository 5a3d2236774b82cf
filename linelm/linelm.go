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

// Package linelm implements piecewise linear functions given by their
// values at a set of nodes ("linear elements").
package linelm

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"seehuhn.de/go/ftrain/internal/wire"
)

// ErrMismatch is returned by [Axpy] when the two elements use different
// nodes.
var ErrMismatch = errors.New("linelm: elements have different nodes")

// Element is a continuous, piecewise linear function.
// Between neighbouring nodes the function is linear, outside the range
// of the nodes the first and last segments are extended.
type Element struct {
	// Nodes are strictly increasing; there are at least two of them.
	Nodes []float64

	// Values holds the function values at the nodes.
	Values []float64
}

// Opts controls [Approx].
type Opts struct {
	// Nodes, if set, are used as the interpolation nodes.
	Nodes []float64

	// NumNodes is the number of equally spaced nodes used when Nodes is
	// not set.
	NumNodes int
}

// DefaultNumNodes is used when no options are given.
const DefaultNumNodes = 20

// Nodal returns the element with the given nodes and values.
// The slices are copied.
func Nodal(nodes, values []float64) *Element {
	if len(nodes) < 2 || len(nodes) != len(values) {
		panic(fmt.Sprintf("linelm: need at least 2 nodes and matching values, got %d/%d",
			len(nodes), len(values)))
	}
	for i := 1; i < len(nodes); i++ {
		if !(nodes[i-1] < nodes[i]) {
			panic("linelm: nodes are not strictly increasing")
		}
	}
	return &Element{
		Nodes:  append([]float64(nil), nodes...),
		Values: append([]float64(nil), values...),
	}
}

// Linspace returns n equally spaced points from a to b, inclusive.
func Linspace(a, b float64, n int) []float64 {
	res := make([]float64, n)
	for i := range res {
		res[i] = a + (b-a)*float64(i)/float64(n-1)
	}
	res[n-1] = b
	return res
}

// Approx interpolates f on [lb, ub].
func Approx(f func(float64) float64, lb, ub float64, opts *Opts) *Element {
	var nodes []float64
	if opts != nil && opts.Nodes != nil {
		nodes = opts.Nodes
	} else {
		n := DefaultNumNodes
		if opts != nil && opts.NumNodes >= 2 {
			n = opts.NumNodes
		}
		nodes = Linspace(lb, ub, n)
	}
	values := make([]float64, len(nodes))
	for i, x := range nodes {
		values[i] = f(x)
	}
	return Nodal(nodes, values)
}

// Copy returns an independent copy of e.
func (e *Element) Copy() *Element {
	if e == nil {
		return nil
	}
	return Nodal(e.Nodes, e.Values)
}

// Lb returns the first node.
func (e *Element) Lb() float64 {
	return e.Nodes[0]
}

// Ub returns the last node.
func (e *Element) Ub() float64 {
	return e.Nodes[len(e.Nodes)-1]
}

// segment returns i such that x lies in [Nodes[i], Nodes[i+1]],
// clamped to the first and last segment.
func (e *Element) segment(x float64) int {
	i := sort.SearchFloat64s(e.Nodes, x) - 1
	return max(0, min(i, len(e.Nodes)-2))
}

// Eval evaluates the element at x.
func (e *Element) Eval(x float64) float64 {
	i := e.segment(x)
	x0, x1 := e.Nodes[i], e.Nodes[i+1]
	y0, y1 := e.Values[i], e.Values[i+1]
	if x == x1 {
		return y1
	}
	return y0 + (x-x0)*(y1-y0)/(x1-x0)
}

// Integrate returns the integral over [Lb, Ub].
func (e *Element) Integrate() float64 {
	var s float64
	for i := 1; i < len(e.Nodes); i++ {
		s += 0.5 * (e.Nodes[i] - e.Nodes[i-1]) * (e.Values[i] + e.Values[i-1])
	}
	return s
}

// mergeNodes returns the sorted union of the nodes of a and b inside
// [lb, ub], including lb and ub themselves.
func mergeNodes(a, b []float64, lb, ub float64) []float64 {
	res := []float64{lb}
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		var x float64
		switch {
		case j >= len(b) || (i < len(a) && a[i] <= b[j]):
			x = a[i]
			i++
		default:
			x = b[j]
			j++
		}
		if x > res[len(res)-1] && x < ub {
			res = append(res, x)
		}
	}
	return append(res, ub)
}

// Inner returns the integral of a(x)·b(x) over the intersection of the
// two domains.  The result is exact.
func Inner(a, b *Element) float64 {
	lb := math.Max(a.Lb(), b.Lb())
	ub := math.Min(a.Ub(), b.Ub())
	if !(lb < ub) {
		return 0
	}
	nodes := mergeNodes(a.Nodes, b.Nodes, lb, ub)
	var s float64
	a0, b0 := a.Eval(nodes[0]), b.Eval(nodes[0])
	for i := 1; i < len(nodes); i++ {
		a1, b1 := a.Eval(nodes[i]), b.Eval(nodes[i])
		h := nodes[i] - nodes[i-1]
		s += h / 6 * (2*a0*b0 + a0*b1 + a1*b0 + 2*a1*b1)
		a0, b0 = a1, b1
	}
	return s
}

// Norm returns the L2 norm of e.
func (e *Element) Norm() float64 {
	return math.Sqrt(math.Max(Inner(e, e), 0))
}

// Deriv returns a piecewise linear approximation of the derivative,
// using finite differences at the nodes.
func (e *Element) Deriv() *Element {
	n := len(e.Nodes)
	x, y := e.Nodes, e.Values
	d := make([]float64, n)
	d[0] = (y[1] - y[0]) / (x[1] - x[0])
	d[n-1] = (y[n-1] - y[n-2]) / (x[n-1] - x[n-2])
	for i := 1; i < n-1; i++ {
		hl := x[i] - x[i-1]
		hr := x[i+1] - x[i]
		sl := (y[i] - y[i-1]) / hl
		sr := (y[i+1] - y[i]) / hr
		d[i] = (hr*sl + hl*sr) / (hl + hr)
	}
	return &Element{Nodes: append([]float64(nil), x...), Values: d}
}

// Scale multiplies e by a, in place.
func (e *Element) Scale(a float64) {
	for i := range e.Values {
		e.Values[i] *= a
	}
}

// FlipSign multiplies e by -1, in place.
func (e *Element) FlipSign() {
	e.Scale(-1)
}

func sameNodes(a, b *Element) bool {
	if len(a.Nodes) != len(b.Nodes) {
		return false
	}
	for i, x := range a.Nodes {
		if b.Nodes[i] != x {
			return false
		}
	}
	return true
}

// Axpy computes y <- a·x + y, in place.
func Axpy(a float64, x, y *Element) error {
	if !sameNodes(x, y) {
		return ErrMismatch
	}
	for i, v := range x.Values {
		y.Values[i] += a * v
	}
	return nil
}

// Daxpby returns a·x + b·y.  If y is nil, the result is a·x.
// The result uses the union of the two node sets and is exact
// on the union of the two domains.
func Daxpby(a float64, x *Element, b float64, y *Element) *Element {
	if x == nil {
		x, a, y, b = y, b, nil, 0
	}
	if y == nil {
		res := x.Copy()
		res.Scale(a)
		return res
	}
	nodes := mergeNodes(x.Nodes, y.Nodes, math.Min(x.Lb(), y.Lb()), math.Max(x.Ub(), y.Ub()))
	values := make([]float64, len(nodes))
	for i, t := range nodes {
		values[i] = a*x.Eval(t) + b*y.Eval(t)
	}
	return &Element{Nodes: nodes, Values: values}
}

// Prod returns the piecewise linear interpolant of a·b on the union of
// the two node sets, restricted to the intersection of the domains.
func Prod(a, b *Element) *Element {
	lb := math.Max(a.Lb(), b.Lb())
	ub := math.Min(a.Ub(), b.Ub())
	if !(lb < ub) {
		panic("linelm: product of elements with disjoint domains")
	}
	nodes := mergeNodes(a.Nodes, b.Nodes, lb, ub)
	values := make([]float64, len(nodes))
	for i, t := range nodes {
		values[i] = a.Eval(t) * b.Eval(t)
	}
	return &Element{Nodes: nodes, Values: values}
}

// Max returns the location and value of the largest nodal value.
func (e *Element) Max() (float64, float64) {
	best := 0
	for i, v := range e.Values {
		if v > e.Values[best] {
			best = i
		}
	}
	return e.Nodes[best], e.Values[best]
}

// Min returns the location and value of the smallest nodal value.
func (e *Element) Min() (float64, float64) {
	best := 0
	for i, v := range e.Values {
		if v < e.Values[best] {
			best = i
		}
	}
	return e.Nodes[best], e.Values[best]
}

// AbsMax returns the location of the maximum of |e| and the value |e(x)|.
func (e *Element) AbsMax() (float64, float64) {
	best := 0
	for i, v := range e.Values {
		if math.Abs(v) > math.Abs(e.Values[best]) {
			best = i
		}
	}
	return e.Nodes[best], math.Abs(e.Values[best])
}

// RealRoots returns the zeros of e, in increasing order.
func (e *Element) RealRoots() []float64 {
	var roots []float64
	add := func(x float64) {
		if len(roots) == 0 || roots[len(roots)-1] != x {
			roots = append(roots, x)
		}
	}
	for i := 0; i+1 < len(e.Nodes); i++ {
		y0, y1 := e.Values[i], e.Values[i+1]
		switch {
		case y0 == 0:
			add(e.Nodes[i])
		case y0*y1 < 0:
			x0, x1 := e.Nodes[i], e.Nodes[i+1]
			add(x0 - y0*(x1-x0)/(y1-y0))
		}
	}
	if e.Values[len(e.Values)-1] == 0 {
		add(e.Ub())
	}
	return roots
}

// Constant returns the constant a on the given nodes.
func Constant(a float64, nodes []float64) *Element {
	values := make([]float64, len(nodes))
	for i := range values {
		values[i] = a
	}
	return Nodal(nodes, values)
}

// Linear returns slope·x + offset on the given nodes.
func Linear(slope, offset float64, nodes []float64) *Element {
	return Approx(func(x float64) float64 { return slope*x + offset },
		0, 0, &Opts{Nodes: nodes})
}

// Quadratic returns the interpolant of a·x² + b·x + c on the given nodes.
func Quadratic(a, b, c float64, nodes []float64) *Element {
	return Approx(func(x float64) float64 { return (a*x+b)*x + c },
		0, 0, &Opts{Nodes: nodes})
}

// OneZero returns the element which is 1 at the node one and 0 at the
// nodes zeros, lb and ub.  The zeros must be sorted and lie strictly
// inside (lb, ub).
func OneZero(one float64, zeros []float64, lb, ub float64) *Element {
	nodes := make([]float64, 0, len(zeros)+3)
	values := make([]float64, 0, len(zeros)+3)
	nodes = append(nodes, lb)
	values = append(values, 0)
	placed := false
	for _, z := range zeros {
		if !placed && z >= one {
			nodes = append(nodes, one)
			values = append(values, 1)
			placed = true
		}
		nodes = append(nodes, z)
		values = append(values, 0)
	}
	if !placed {
		nodes = append(nodes, one)
		values = append(values, 1)
	}
	nodes = append(nodes, ub)
	values = append(values, 0)
	return Nodal(nodes, values)
}

// OrthBasis returns n elements on the nodes which are orthonormal with
// respect to the L2 inner product.  The number of nodes must be at least n.
func OrthBasis(n int, nodes []float64) []*Element {
	if len(nodes) < n {
		panic("linelm: not enough nodes for orthonormal basis")
	}
	res := make([]*Element, n)
	for k := range res {
		values := make([]float64, len(nodes))
		if n == 1 {
			for i := range values {
				values[i] = 1
			}
		} else {
			values[k] = 1
		}
		u := Nodal(nodes, values)
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

// Encode appends the binary representation of e to w.
// The layout is n:size_t, nodes[n]:double, values[n]:double.
func (e *Element) Encode(w *wire.Writer) {
	w.Size(len(e.Nodes))
	w.Floats(e.Nodes)
	w.Floats(e.Values)
}

// Decode reads an element written by [Element.Encode].
func Decode(r *wire.Reader) (*Element, error) {
	n, err := r.ReadSize()
	if err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, fmt.Errorf("linear element with %d nodes: %w", n, wire.ErrFormat)
	}
	nodes, err := r.ReadFloats(n)
	if err != nil {
		return nil, err
	}
	for i := 1; i < n; i++ {
		if !(nodes[i-1] < nodes[i]) {
			return nil, fmt.Errorf("linear element nodes not increasing: %w", wire.ErrFormat)
		}
	}
	values, err := r.ReadFloats(n)
	if err != nil {
		return nil, err
	}
	return &Element{Nodes: nodes, Values: values}, nil
}
