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

package funcs

import "fmt"

// FiberCut is the restriction of a multivariate function to a line
// parallel to one of the coordinate axes.
type FiberCut struct {
	totDim int
	dimCut int

	f2 func(x, y float64) float64
	fn func(x []float64) float64

	// vals holds the fixed coordinates.  vals[dimCut] is overwritten
	// on every evaluation.
	vals []float64
}

// NewFiberCut2D returns the fiber of the bivariate function f along
// dimension dimCut (0 or 1), with the other coordinate fixed at val.
func NewFiberCut2D(f func(x, y float64) float64, dimCut int, val float64) *FiberCut {
	if dimCut != 0 && dimCut != 1 {
		panic(fmt.Sprintf("funcs: invalid cut dimension %d for 2-D function", dimCut))
	}
	vals := make([]float64, 2)
	vals[1-dimCut] = val
	return &FiberCut{totDim: 2, dimCut: dimCut, f2: f, vals: vals}
}

// NewFiberCutND returns the fiber of the function f of totDim variables
// along dimension dimCut.  The remaining coordinates are taken from vals,
// which must have length totDim; vals[dimCut] is ignored.
func NewFiberCutND(f func(x []float64) float64, totDim, dimCut int, vals []float64) *FiberCut {
	if dimCut < 0 || dimCut >= totDim || len(vals) != totDim {
		panic(fmt.Sprintf("funcs: invalid fiber cut (dim %d of %d, %d values)",
			dimCut, totDim, len(vals)))
	}
	return &FiberCut{
		totDim: totDim,
		dimCut: dimCut,
		fn:     f,
		vals:   append([]float64(nil), vals...),
	}
}

// FiberCut2DArray returns one fiber of f along dimCut for every value in
// vals.
func FiberCut2DArray(f func(x, y float64) float64, dimCut int, vals []float64) []*FiberCut {
	res := make([]*FiberCut, len(vals))
	for i, v := range vals {
		res[i] = NewFiberCut2D(f, dimCut, v)
	}
	return res
}

// FiberCutNDArray returns one fiber of f along dimCut for every point in
// vals.
func FiberCutNDArray(f func(x []float64) float64, totDim, dimCut int, vals [][]float64) []*FiberCut {
	res := make([]*FiberCut, len(vals))
	for i, v := range vals {
		res[i] = NewFiberCutND(f, totDim, dimCut, v)
	}
	return res
}

// TotDim returns the number of variables of the underlying function.
func (c *FiberCut) TotDim() int {
	return c.totDim
}

// DimCut returns the free coordinate.
func (c *FiberCut) DimCut() int {
	return c.dimCut
}

// Eval evaluates the fiber at x.
// Eval is not safe for concurrent use.
func (c *FiberCut) Eval(x float64) float64 {
	c.vals[c.dimCut] = x
	if c.f2 != nil {
		return c.f2(c.vals[0], c.vals[1])
	}
	return c.fn(c.vals)
}
