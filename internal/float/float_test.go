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

package float

import "testing"

func TestFormat(t *testing.T) {
	cases := []struct {
		x    float64
		prec int
		want string
	}{
		{0.25, 3, ".25"},
		{-0.25, 3, "-.25"},
		{1, 2, "1"},
		{10, 0, "10"},
		{100.5, 2, "100.5"},
		{-0.0001, 2, "0"},
		{3.14159, 2, "3.14"},
	}
	for _, c := range cases {
		if got := Format(c.x, c.prec); got != c.want {
			t.Errorf("Format(%g, %d) = %q, want %q", c.x, c.prec, got, c.want)
		}
	}
}

func TestRound(t *testing.T) {
	if got := Round(2.71828, 2); got != 2.72 {
		t.Errorf("Round = %g", got)
	}
	if got := Round(-1.005, 0); got != -1 {
		t.Errorf("Round = %g", got)
	}
}

func TestError(t *testing.T) {
	if got := Error(3.21e-11); got != "3.2e-11" {
		t.Errorf("Error = %q", got)
	}
	if got := Error(0); got != "0" {
		t.Errorf("Error = %q", got)
	}
}
