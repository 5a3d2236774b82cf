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
	"errors"
	"fmt"

	"seehuhn.de/go/ftrain/internal/wire"
	"seehuhn.de/go/ftrain/poly"
)

// maxDepth limits the nesting of decoded trees.
const maxDepth = 256

var errTooDeep = errors.New("piecewise polynomial nested too deeply")

// Encode appends the binary representation of p to w.
// A leaf is written as 1:int followed by the polynomial.  An interior
// node is written as 0:int, the number of children as size_t, and then
// the children.
func (p *Poly) Encode(w *wire.Writer) {
	if p.leaf != nil {
		w.Int(1)
		p.leaf.Encode(w)
		return
	}
	w.Int(0)
	w.Size(len(p.children))
	for _, c := range p.children {
		c.Encode(w)
	}
}

// Decode reads a piecewise polynomial written by [Poly.Encode].
func Decode(r *wire.Reader) (*Poly, error) {
	return decode(r, 0)
}

func decode(r *wire.Reader, depth int) (*Poly, error) {
	if depth > maxDepth {
		return nil, fmt.Errorf("%w: %w", errTooDeep, wire.ErrFormat)
	}

	isLeaf, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	switch isLeaf {
	case 1:
		leaf, err := poly.Decode(r)
		if err != nil {
			return nil, err
		}
		return &Poly{leaf: leaf}, nil
	case 0:
		// handled below
	default:
		return nil, fmt.Errorf("piecewise node tag %d: %w", isLeaf, wire.ErrFormat)
	}

	n, err := r.ReadSize()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("piecewise node without children: %w", wire.ErrFormat)
	}
	// every child needs at least a tag
	if n > r.Remaining()/4 {
		return nil, fmt.Errorf("piecewise node with %d children: %w", n, wire.ErrFormat)
	}
	children := make([]*Poly, n)
	for i := range children {
		children[i], err = decode(r, depth+1)
		if err != nil {
			return nil, err
		}
		if i > 0 && children[i-1].Ub() != children[i].Lb() {
			return nil, fmt.Errorf("piecewise children [%g, %g] and [%g, %g] not contiguous: %w",
				children[i-1].Lb(), children[i-1].Ub(), children[i].Lb(), children[i].Ub(),
				wire.ErrFormat)
		}
	}
	return &Poly{children: children}, nil
}
