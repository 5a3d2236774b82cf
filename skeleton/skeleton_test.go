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

package skeleton

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"seehuhn.de/go/ftrain/funcs"
	"seehuhn.de/go/ftrain/poly"
)

func bilinear(x, y float64) float64 {
	return x*y + 1
}

func TestPivots(t *testing.T) {
	pivx := []float64{-0.5, 0.5}
	pivy := []float64{-0.3, 0.7}

	cases := []struct {
		class funcs.Class
		tol   float64
	}{
		{funcs.Polynomial, 1e-10},
		{funcs.Piecewise, 1e-6},
	}
	for _, c := range cases {
		t.Run(c.class.String(), func(t *testing.T) {
			ax := Axis{Lb: -1, Ub: 1, Class: c.class, Kind: poly.Legendre}
			ay := Axis{Lb: -1, Ub: 1, Class: c.class, Kind: poly.Chebyshev}
			d, err := New(bilinear, pivx, pivy, ax, ay)
			if err != nil {
				t.Fatal(err)
			}
			if d.Rank() != 2 {
				t.Errorf("rank = %d, want 2", d.Rank())
			}

			for _, x := range pivx {
				for _, y := range pivy {
					got := d.Eval(x, y)
					if want := bilinear(x, y); math.Abs(got-want) > c.tol {
						t.Errorf("f(%g, %g) = %g, want %g", x, y, got, want)
					}
				}
			}

			// f has rank two, so the decomposition is exact everywhere
			rng := rand.New(rand.NewPCG(5, 6))
			for range 50 {
				x := 2*rng.Float64() - 1
				y := 2*rng.Float64() - 1
				got := d.Eval(x, y)
				if want := bilinear(x, y); math.Abs(got-want) > c.tol {
					t.Errorf("f(%g, %g) = %g, want %g", x, y, got, want)
				}
			}
		})
	}
}

func TestPivotMatrix(t *testing.T) {
	f := func(x, y float64) float64 { return x + y*y }
	pivx := []float64{0.1, 0.9}
	pivy := []float64{-0.4, 0.6}
	ax := Axis{Lb: 0, Ub: 1, Class: funcs.Polynomial, Kind: poly.Legendre}
	ay := Axis{Lb: -1, Ub: 1, Class: funcs.Polynomial, Kind: poly.Legendre}
	d, err := New(f, pivx, pivy, ax, ay)
	if err != nil {
		t.Fatal(err)
	}

	// the skeleton is the inverse of C(i, j) = f(pivx[i], pivy[j])
	r := d.Rank()
	s := d.Skeleton()
	for i := range r {
		for k := range r {
			var sum float64
			for j := range r {
				sum += f(pivx[i], pivy[j]) * s[k*r+j]
			}
			want := 0.0
			if i == k {
				want = 1
			}
			if math.Abs(sum-want) > 1e-12 {
				t.Errorf("(C·S)[%d,%d] = %g", i, k, sum)
			}
		}
	}

	for _, p := range [][2]float64{{0, -1}, {0.3, 0.2}, {1, 1}, {0.75, -0.5}} {
		if got, want := d.Eval(p[0], p[1]), f(p[0], p[1]); math.Abs(got-want) > 1e-10 {
			t.Errorf("f(%g, %g) = %g, want %g", p[0], p[1], got, want)
		}
	}
}

func TestRankOne(t *testing.T) {
	f := func(x, y float64) float64 { return math.Exp(x) * math.Cos(y) }
	ax := Axis{Lb: 0, Ub: 1, Class: funcs.Polynomial, Kind: poly.Legendre}
	ay := Axis{Lb: -1, Ub: 1, Class: funcs.Polynomial, Kind: poly.Legendre}
	d, err := New(f, []float64{0.5}, []float64{0.2}, ax, ay)
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range [][2]float64{{0, 0}, {0.25, -0.75}, {1, 1}} {
		got := d.Eval(p[0], p[1])
		if want := f(p[0], p[1]); math.Abs(got-want) > 1e-8 {
			t.Errorf("f(%g, %g) = %g, want %g", p[0], p[1], got, want)
		}
	}
	if s := d.Skeleton(); len(s) != 1 || math.Abs(s[0]-1/f(0.5, 0.2)) > 1e-14 {
		t.Errorf("skeleton = %v", s)
	}
}

func TestCopy(t *testing.T) {
	ax := Axis{Lb: -1, Ub: 1, Class: funcs.Polynomial, Kind: poly.Legendre}
	d, err := New(bilinear, []float64{-0.5, 0.5}, []float64{-0.3, 0.7}, ax, ax)
	if err != nil {
		t.Fatal(err)
	}
	e := d.Copy()
	d.X().Get(0).Scale(0)
	d.xs.Get(0).Scale(0)

	if got := e.Eval(0.2, 0.4); math.Abs(got-bilinear(0.2, 0.4)) > 1e-10 {
		t.Errorf("copy changed: %g", got)
	}
	if e.X().Len() != 2 || e.Y().Len() != 2 {
		t.Errorf("unexpected fiber counts %d, %d", e.X().Len(), e.Y().Len())
	}
}

func TestUnsupported(t *testing.T) {
	ax := Axis{Lb: -1, Ub: 1, Class: funcs.Polynomial, Kind: poly.Legendre}
	ay := Axis{Lb: -1, Ub: 1, Class: funcs.Kernel}
	_, err := New(bilinear, []float64{0}, []float64{0}, ax, ay)
	if !errors.Is(err, funcs.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}
