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

// Package linalg contains small dense linear algebra helpers.
package linalg

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrNoConvergence is returned if a singular value decomposition fails.
var ErrNoConvergence = errors.New("singular value decomposition did not converge")

// Pinv computes the Moore-Penrose pseudo-inverse of a.
// Singular values not larger than cutoff are treated as zero.
// The second return value is the number of singular values which were
// kept.
func Pinv(a mat.Matrix, cutoff float64) (*mat.Dense, int, error) {
	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, 0, ErrNoConvergence
	}
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	s := svd.Values(nil)

	// scale the columns of V by the inverse singular values
	rank := 0
	_, k := v.Dims()
	for j := range k {
		scale := 0.0
		if s[j] > cutoff {
			scale = 1 / s[j]
			rank++
		}
		col := v.ColView(j).(*mat.VecDense)
		col.ScaleVec(scale, col)
	}

	var res mat.Dense
	res.Mul(&v, u.T())
	return &res, rank, nil
}

// ColMajor returns the entries of m in column-major order.
func ColMajor(m mat.Matrix) []float64 {
	r, c := m.Dims()
	res := make([]float64, 0, r*c)
	for j := range c {
		for i := range r {
			res = append(res, m.At(i, j))
		}
	}
	return res
}

// FromColMajor wraps column-major data of an r×c matrix.
// The data are copied.
func FromColMajor(r, c int, data []float64) *mat.Dense {
	if len(data) != r*c {
		panic("linalg: wrong data length")
	}
	res := mat.NewDense(r, c, nil)
	for j := range c {
		for i := range r {
			res.Set(i, j, data[j*r+i])
		}
	}
	return res
}
