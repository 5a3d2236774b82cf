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
)

var (
	// ErrUnsupported is returned when an operation is not implemented for
	// the function classes involved.
	ErrUnsupported = errors.New("operation not supported for this function class")

	// ErrNegativeInner is returned by [Norm] if the inner product of a
	// function with itself is negative beyond rounding errors.
	ErrNegativeInner = errors.New("negative inner product")
)

// ClassError is returned when an operation cannot be carried out for the
// given combination of function classes.
type ClassError struct {
	Op   string
	A, B Class
}

func (e *ClassError) Error() string {
	if e.A == e.B {
		return fmt.Sprintf("%s: not implemented for %s", e.Op, e.A)
	}
	return fmt.Sprintf("%s: not implemented for %s and %s", e.Op, e.A, e.B)
}

// Is allows errors.Is to match both other ClassErrors and ErrUnsupported.
func (e *ClassError) Is(target error) bool {
	if target == ErrUnsupported {
		return true
	}
	_, ok := target.(*ClassError)
	return ok
}

func newClassError(op string, a, b Class) *ClassError {
	return &ClassError{Op: op, A: a, B: b}
}
