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

// Package wire implements the little-endian binary encoding shared by all
// serializable types in this module.
//
// Sizes are written as 64-bit unsigned integers, tags and flags as 32-bit
// signed integers and floating point values as IEEE 754 doubles.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrFormat is returned when decoding encounters malformed data.
var ErrFormat = errors.New("malformed data")

// maxCount bounds the element counts accepted by the decoder, to protect
// against huge allocations caused by corrupt input.
const maxCount = 1 << 28

// Writer accumulates encoded values.
// The zero value is ready to use.
type Writer struct {
	buf []byte
}

// Bytes returns the encoded data.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Size appends a size_t value.
func (w *Writer) Size(n int) {
	if n < 0 {
		panic("negative size")
	}
	w.buf = binary.LittleEndian.AppendUint64(w.buf, uint64(n))
}

// Int appends an int value.
func (w *Writer) Int(v int) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, uint32(int32(v)))
}

// Float appends a double value.
func (w *Writer) Float(x float64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(x))
}

// Floats appends the given values, without a length prefix.
func (w *Writer) Floats(xs []float64) {
	for _, x := range xs {
		w.Float(x)
	}
}

// Raw appends data without any framing.
func (w *Writer) Raw(data []byte) {
	w.buf = append(w.buf, data...)
}

// WriteTo writes the accumulated data to out.
// This implements the [io.WriterTo] interface.
func (w *Writer) WriteTo(out io.Writer) (int64, error) {
	n, err := out.Write(w.buf)
	return int64(n), err
}

// Reader decodes values from a byte slice.
type Reader struct {
	data []byte
	pos  int
}

// NewReader allocates a new Reader.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the number of bytes consumed so far.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

func (r *Reader) next(n int) ([]byte, error) {
	if r.Remaining() < n {
		return nil, fmt.Errorf("need %d bytes at offset %d, have %d: %w",
			n, r.pos, r.Remaining(), io.ErrUnexpectedEOF)
	}
	buf := r.data[r.pos : r.pos+n]
	r.pos += n
	return buf, nil
}

// ReadSize reads a size_t value.
func (r *Reader) ReadSize() (int, error) {
	buf, err := r.next(8)
	if err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(buf)
	if v > maxCount {
		return 0, fmt.Errorf("size %d out of range: %w", v, ErrFormat)
	}
	return int(v), nil
}

// ReadInt reads an int value.
func (r *Reader) ReadInt() (int, error) {
	buf, err := r.next(4)
	if err != nil {
		return 0, err
	}
	return int(int32(binary.LittleEndian.Uint32(buf))), nil
}

// ReadFloat reads a double value.
func (r *Reader) ReadFloat() (float64, error) {
	buf, err := r.next(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(buf)), nil
}

// ReadFloats reads n double values.
func (r *Reader) ReadFloats(n int) ([]float64, error) {
	if n < 0 || n > r.Remaining()/8 {
		return nil, fmt.Errorf("cannot read %d doubles: %w", n, ErrFormat)
	}
	res := make([]float64, n)
	for i := range res {
		res[i], _ = r.ReadFloat()
	}
	return res, nil
}
