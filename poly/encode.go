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
	"fmt"

	"seehuhn.de/go/ftrain/internal/wire"
)

// Encode appends the binary representation of p to w.
// The layout is kind:int, lb:double, ub:double, n:size_t, coeffs[n]:double.
func (p *Expansion) Encode(w *wire.Writer) {
	w.Int(int(p.Kind))
	w.Float(p.Lb)
	w.Float(p.Ub)
	w.Size(len(p.Coeffs))
	w.Floats(p.Coeffs)
}

// Decode reads an expansion written by [Expansion.Encode].
func Decode(r *wire.Reader) (*Expansion, error) {
	kind, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	if kind != int(Legendre) && kind != int(Chebyshev) {
		return nil, fmt.Errorf("polynomial kind %d: %w", kind, wire.ErrFormat)
	}
	lb, err := r.ReadFloat()
	if err != nil {
		return nil, err
	}
	ub, err := r.ReadFloat()
	if err != nil {
		return nil, err
	}
	if !(lb < ub) {
		return nil, fmt.Errorf("polynomial domain [%g, %g]: %w", lb, ub, wire.ErrFormat)
	}
	n, err := r.ReadSize()
	if err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, fmt.Errorf("polynomial without coefficients: %w", wire.ErrFormat)
	}
	coeffs, err := r.ReadFloats(n)
	if err != nil {
		return nil, err
	}
	return &Expansion{Kind: Kind(kind), Lb: lb, Ub: ub, Coeffs: coeffs}, nil
}
