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

// Package memfile provides an in-memory file which implements
// [io.ReadWriteSeeker].  It is used by unit tests which write encoded
// function trains and read them back.
package memfile

import (
	"errors"
	"io"
)

// MemFile is a temporary in-memory file.
type MemFile struct {
	// Data are the file contents.
	Data []byte

	// Offset is the current file offset.
	Offset int64
}

// New creates a new, empty MemFile.
func New() *MemFile {
	return &MemFile{}
}

// FromBytes creates a MemFile with the given contents, positioned at the
// start.  The slice is not copied.
func FromBytes(data []byte) *MemFile {
	return &MemFile{Data: data}
}

// Write implements the [io.Writer] interface.  Writing beyond the end of
// the data fills the gap with zeros.
func (f *MemFile) Write(p []byte) (int, error) {
	if gap := f.Offset - int64(len(f.Data)); gap > 0 {
		f.Data = append(f.Data, make([]byte, gap)...)
	}
	n := copy(f.Data[f.Offset:], p)
	f.Data = append(f.Data, p[n:]...)
	f.Offset += int64(len(p))
	return len(p), nil
}

// Read implements the [io.Reader] interface.
func (f *MemFile) Read(p []byte) (int, error) {
	if f.Offset >= int64(len(f.Data)) {
		return 0, io.EOF
	}
	n := copy(p, f.Data[f.Offset:])
	f.Offset += int64(n)
	return n, nil
}

// Seek implements the [io.Seeker] interface.
func (f *MemFile) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = f.Offset + offset
	case io.SeekEnd:
		pos = int64(len(f.Data)) + offset
	default:
		return 0, errInvalidWhence
	}
	if pos < 0 {
		return 0, errInvalidOffset
	}
	f.Offset = pos
	return pos, nil
}

// Rewind sets the offset back to the start of the file.
func (f *MemFile) Rewind() {
	f.Offset = 0
}

// Truncate shortens the file to n bytes.  The offset is not changed.
func (f *MemFile) Truncate(n int) {
	if n < len(f.Data) {
		f.Data = f.Data[:n]
	}
}

var (
	errInvalidWhence = errors.New("invalid whence")
	errInvalidOffset = errors.New("invalid offset")
)
