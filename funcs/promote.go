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

type promotion uint8

const (
	promoteUnsupported promotion = iota // zero value: anything not listed
	promoteSame
	promotePiecewise
	promoteForbidden
)

type classPair struct {
	a, b Class
}

// promotionTable lists how binary operations combine function classes.
var promotionTable = map[classPair]promotion{
	{Polynomial, Polynomial}: promoteSame,
	{Piecewise, Piecewise}:   promoteSame,
	{LinElem, LinElem}:       promoteSame,

	{Polynomial, Piecewise}: promotePiecewise,
	{Piecewise, Polynomial}: promotePiecewise,

	{LinElem, Polynomial}: promoteForbidden,
	{Polynomial, LinElem}: promoteForbidden,
	{LinElem, Piecewise}:  promoteForbidden,
	{Piecewise, LinElem}:  promoteForbidden,
	{LinElem, Rational}:   promoteForbidden,
	{Rational, LinElem}:   promoteForbidden,
	{LinElem, Kernel}:     promoteForbidden,
	{Kernel, LinElem}:     promoteForbidden,
}

// Promote returns the class in which a binary operation on functions of
// classes a and b is carried out.
//
// Equal classes are kept.  A mix of Polynomial and Piecewise is carried
// out as Piecewise.  Combinations involving Rational or Kernel return a
// [*ClassError].  Linear elements can only be combined with other linear
// elements; any other combination panics.
func Promote(op string, a, b Class) (Class, error) {
	switch promotionTable[classPair{a, b}] {
	case promoteSame:
		return a, nil
	case promotePiecewise:
		return Piecewise, nil
	case promoteForbidden:
		panic(fmt.Sprintf("funcs: %s: cannot combine %s with %s", op, a, b))
	default:
		return 0, newClassError(op, a, b)
	}
}
