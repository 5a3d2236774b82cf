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

	"golang.org/x/exp/slices"

	"seehuhn.de/go/ftrain/internal/wire"
	"seehuhn.de/go/ftrain/qmarray"
)

// Encode appends the binary representation of ft to w: the dimension,
// the Dim()+1 ranks, and the cores in order.
func (ft *FT) Encode(w *wire.Writer) {
	w.Size(ft.dim)
	for _, r := range ft.ranks {
		w.Size(r)
	}
	for _, core := range ft.cores {
		core.Encode(w)
	}
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
func (ft *FT) MarshalBinary() ([]byte, error) {
	w := &wire.Writer{}
	ft.Encode(w)
	return w.Bytes(), nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
func (ft *FT) UnmarshalBinary(data []byte) error {
	r := wire.NewReader(data)
	g, err := Decode(r)
	if err != nil {
		return err
	}
	if r.Remaining() != 0 {
		return fmt.Errorf("%d trailing bytes after function train: %w", r.Remaining(), wire.ErrFormat)
	}
	*ft = *g
	return nil
}

// Decode reads a function train written by [FT.Encode].
//
// The ranks must satisfy r_0 = r_D = 1 and every core must have the shape
// given by the ranks, otherwise an error wrapping [wire.ErrFormat] is
// returned.
func Decode(r *wire.Reader) (*FT, error) {
	dim, err := r.ReadSize()
	if err != nil {
		return nil, err
	}
	if dim < 1 || dim+1 > r.Remaining()/8 {
		return nil, fmt.Errorf("function train of dimension %d: %w", dim, wire.ErrFormat)
	}
	ranks := make([]int, dim+1)
	for i := range ranks {
		ranks[i], err = r.ReadSize()
		if err != nil {
			return nil, err
		}
	}
	if ranks[0] != 1 || ranks[dim] != 1 || slices.Min(ranks) < 1 {
		return nil, fmt.Errorf("function train with ranks %v: %w", ranks, wire.ErrFormat)
	}

	cores := make([]*qmarray.Qmarray, dim)
	for k := range cores {
		core, err := qmarray.Decode(r)
		if err != nil {
			return nil, fmt.Errorf("core %d: %w", k, err)
		}
		if nr, nc := core.Shape(); nr != ranks[k] || nc != ranks[k+1] {
			return nil, fmt.Errorf("core %d has shape %d×%d, expected %d×%d: %w",
				k, nr, nc, ranks[k], ranks[k+1], wire.ErrFormat)
		}
		cores[k] = core
	}
	return &FT{dim: dim, ranks: ranks, cores: cores}, nil
}
