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

import (
	"errors"
	"fmt"

	"seehuhn.de/go/ftrain/internal/wire"
	"seehuhn.de/go/ftrain/linelm"
	"seehuhn.de/go/ftrain/piecewise"
	"seehuhn.de/go/ftrain/poly"
)

// Encode appends the binary representation of f to w.
//
// The layout is dim:size_t, class:int, kind:int, followed by the payload.
// The kind field holds the polynomial family for Polynomial and Piecewise
// functions, and 0 for linear elements.
func (f *Func) Encode(w *wire.Writer) {
	w.Size(f.Dim())
	w.Int(int(f.class))
	switch f.class {
	case Polynomial:
		w.Int(int(f.kind))
		f.exp.Encode(w)
	case Piecewise:
		w.Int(int(f.kind))
		f.pw.Encode(w)
	case LinElem:
		w.Int(0)
		f.le.Encode(w)
	default:
		panic(unreachable(f))
	}
}

// MarshalBinary implements the [encoding.BinaryMarshaler] interface.
func (f *Func) MarshalBinary() ([]byte, error) {
	w := &wire.Writer{}
	f.Encode(w)
	return w.Bytes(), nil
}

// UnmarshalBinary implements the [encoding.BinaryUnmarshaler] interface.
func (f *Func) UnmarshalBinary(data []byte) error {
	r := wire.NewReader(data)
	g, err := Decode(r)
	if err != nil {
		return err
	}
	if r.Remaining() != 0 {
		return fmt.Errorf("%d trailing bytes after function: %w", r.Remaining(), wire.ErrFormat)
	}
	*f = *g
	return nil
}

// Decode reads a function written by [Func.Encode].
//
// Data for the Rational and Kernel classes gives an error which matches
// both [ErrUnsupported] and [wire.ErrFormat].
func Decode(r *wire.Reader) (*Func, error) {
	dim, err := r.ReadSize()
	if err != nil {
		return nil, err
	}
	if dim != 1 {
		return nil, fmt.Errorf("function of dimension %d: %w", dim, wire.ErrFormat)
	}
	c, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	class := Class(c)
	kindVal, err := r.ReadInt()
	if err != nil {
		return nil, err
	}
	kind := poly.Kind(kindVal)

	switch class {
	case Polynomial:
		e, err := poly.Decode(r)
		if err != nil {
			return nil, err
		}
		return FromExpansion(e), nil
	case Piecewise:
		if kind != poly.Legendre && kind != poly.Chebyshev {
			return nil, fmt.Errorf("polynomial kind %d: %w", kindVal, wire.ErrFormat)
		}
		p, err := piecewise.Decode(r)
		if err != nil {
			return nil, err
		}
		if p.Kind() != kind {
			return nil, fmt.Errorf("%s leaves in %s function: %w", p.Kind(), kind, wire.ErrFormat)
		}
		return FromPiecewise(p), nil
	case LinElem:
		e, err := linelm.Decode(r)
		if err != nil {
			return nil, err
		}
		return FromElement(e), nil
	case Rational, Kernel:
		return nil, errors.Join(newClassError("decode", class, class), wire.ErrFormat)
	}
	return nil, fmt.Errorf("function class %d: %w", c, wire.ErrFormat)
}

// EncodeArray appends n functions to w, preceded by their number.
func EncodeArray(w *wire.Writer, fs []*Func) {
	w.Size(len(fs))
	for _, f := range fs {
		f.Encode(w)
	}
}

// DecodeArray reads functions written by [EncodeArray].
func DecodeArray(r *wire.Reader) ([]*Func, error) {
	n, err := r.ReadSize()
	if err != nil {
		return nil, err
	}
	return DecodeN(r, n)
}

// DecodeN reads n consecutive functions.
func DecodeN(r *wire.Reader, n int) ([]*Func, error) {
	// every function needs at least 16 bytes of header
	if n > r.Remaining()/16 {
		return nil, fmt.Errorf("%d functions in %d bytes: %w", n, r.Remaining(), wire.ErrFormat)
	}
	res := make([]*Func, n)
	for i := range res {
		f, err := Decode(r)
		if err != nil {
			return nil, fmt.Errorf("function %d: %w", i, err)
		}
		res[i] = f
	}
	return res, nil
}
