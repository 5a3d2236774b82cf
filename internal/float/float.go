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

// Package float formats numbers compactly for reports.
package float

import (
	"math"
	"strconv"
	"strings"
)

// Format formats x with the given number of digits after the decimal
// point.  Trailing zeros, a trailing decimal point and a leading zero
// before the decimal point are removed, so 0.250 becomes ".25".
func Format(x float64, precision int) string {
	out := strconv.FormatFloat(x, 'f', precision, 64)
	if strings.ContainsRune(out, '.') {
		out = strings.TrimRight(out, "0")
		out = strings.TrimSuffix(out, ".")
	}
	switch {
	case out == "-0":
		out = "0"
	case strings.HasPrefix(out, "0."):
		out = out[1:]
	case strings.HasPrefix(out, "-0."):
		out = "-" + out[2:]
	}
	return out
}

// Round rounds x to the given number of digits after the decimal point.
func Round(x float64, digits int) float64 {
	y, err := strconv.ParseFloat(strconv.FormatFloat(x, 'f', digits, 64), 64)
	if err != nil {
		panic(err)
	}
	return y
}

// Error formats an approximation error, for example "3.2e-11".
// Errors below the resolution of float64 are shown as "0".
func Error(x float64) string {
	if math.Abs(x) < 1e-300 {
		return "0"
	}
	return strconv.FormatFloat(x, 'e', 1, 64)
}
