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

package ftrain

import (
	"fmt"

	"seehuhn.de/go/ftrain/internal/wire"
)

// Array is a collection of function trains with a shape, for example the
// gradient of a function train.  The trains are stored in a flat list.
type Array struct {
	shape []int
	elems []*FT
}

// NewArray allocates an array of the given shape with all elements unset.
func NewArray(shape ...int) *Array {
	size := 1
	for _, n := range shape {
		if n < 0 {
			panic(fmt.Sprintf("ftrain: invalid array shape %v", shape))
		}
		size *= n
	}
	return &Array{
		shape: append([]int(nil), shape...),
		elems: make([]*FT, size),
	}
}

// Shape returns the shape of a.
func (a *Array) Shape() []int {
	return append([]int(nil), a.shape...)
}

// Size returns the number of elements of a.
func (a *Array) Size() int {
	return len(a.elems)
}

// Get returns element i, or nil if the element is not set.
// The function train is owned by a and must not be modified.
func (a *Array) Get(i int) *FT {
	return a.elems[i]
}

// Set stores a copy of ft as element i.
func (a *Array) Set(i int, ft *FT) {
	a.elems[i] = ft.Copy()
}

// Copy returns a deep copy of a.
func (a *Array) Copy() *Array {
	b := NewArray(a.shape...)
	for i, ft := range a.elems {
		if ft != nil {
			b.elems[i] = ft.Copy()
		}
	}
	return b
}

// Eval evaluates all elements at x.
func (a *Array) Eval(x []float64) []float64 {
	res := make([]float64, len(a.elems))
	for i, ft := range a.elems {
		res[i] = ft.Eval(x)
	}
	return res
}

// Encode appends the binary representation of a to w: the number of
// dimensions, the shape, the number of elements, and all elements.
// All elements must be set.
func (a *Array) Encode(w *wire.Writer) {
	w.Size(len(a.shape))
	for _, n := range a.shape {
		w.Size(n)
	}
	w.Size(len(a.elems))
	for i, ft := range a.elems {
		if ft == nil {
			panic(fmt.Sprintf("ftrain: array element %d is not set", i))
		}
		ft.Encode(w)
	}
}

// DecodeArray reads an array written by [Array.Encode].
func DecodeArray(r *wire.Reader) (*Array, error) {
	ndims, err := r.ReadSize()
	if err != nil {
		return nil, err
	}
	if ndims > r.Remaining()/8 {
		return nil, fmt.Errorf("array with %d dimensions: %w", ndims, wire.ErrFormat)
	}
	shape := make([]int, ndims)
	size := 1
	for i := range shape {
		shape[i], err = r.ReadSize()
		if err != nil {
			return nil, err
		}
		if shape[i] > 0 && size > r.Remaining()/shape[i] {
			return nil, fmt.Errorf("array of shape %v: %w", shape[:i+1], wire.ErrFormat)
		}
		size *= shape[i]
	}
	n, err := r.ReadSize()
	if err != nil {
		return nil, err
	}
	if n != size {
		return nil, fmt.Errorf("array of shape %v with %d elements: %w", shape, n, wire.ErrFormat)
	}

	a := NewArray(shape...)
	for i := range a.elems {
		a.elems[i], err = Decode(r)
		if err != nil {
			return nil, fmt.Errorf("array element %d: %w", i, err)
		}
	}
	return a, nil
}
