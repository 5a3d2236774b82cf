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

package linelm

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/ftrain/internal/wire"
)

func TestEval(t *testing.T) {
	e := Nodal([]float64{0, 1, 3}, []float64{1, 3, -1})
	cases := []struct {
		x, want float64
	}{
		{0, 1},
		{0.5, 2},
		{1, 3},
		{2, 1},
		{3, -1},
		{-1, -1}, // extrapolated
		{4, -3},
	}
	for _, c := range cases {
		if got := e.Eval(c.x); math.Abs(got-c.want) > 1e-15 {
			t.Errorf("Eval(%g) = %g, want %g", c.x, got, c.want)
		}
	}
}

func TestIntegrateInner(t *testing.T) {
	nodes := Linspace(0, 1, 5)
	x := Linear(1, 0, nodes)
	if got := x.Integrate(); math.Abs(got-0.5) > 1e-15 {
		t.Errorf("integral of x = %g", got)
	}

	// both factors are linear, so the inner product is exact
	one := Constant(1, Linspace(0, 1, 3))
	if got := Inner(x, x); math.Abs(got-1.0/3) > 1e-15 {
		t.Errorf("<x,x> = %g", got)
	}
	if got, sym := Inner(x, one), Inner(one, x); math.Abs(got-0.5) > 1e-15 || math.Abs(got-sym) > 1e-15 {
		t.Errorf("<x,1> = %g, <1,x> = %g", got, sym)
	}
}

func TestDaxpbyProd(t *testing.T) {
	a := Approx(math.Sin, 0, 2, &Opts{NumNodes: 7})
	b := Approx(math.Cos, 0, 2, &Opts{NumNodes: 5})

	z := Daxpby(1, a, -1, a)
	for _, x := range Linspace(0, 2, 100) {
		if v := z.Eval(x); v != 0 {
			t.Fatalf("a-a = %g at %g", v, x)
		}
	}

	s := Daxpby(2, a, 3, b)
	for _, x := range Linspace(0, 2, 50) {
		want := 2*a.Eval(x) + 3*b.Eval(x)
		if math.Abs(s.Eval(x)-want) > 1e-14 {
			t.Errorf("daxpby error at %g", x)
		}
	}

	p := Prod(a, b)
	for _, x := range p.Nodes {
		if math.Abs(p.Eval(x)-a.Eval(x)*b.Eval(x)) > 1e-15 {
			t.Errorf("product wrong at node %g", x)
		}
	}

	if err := Axpy(1, a, b); err != ErrMismatch {
		t.Errorf("expected ErrMismatch, got %v", err)
	}
	c := a.Copy()
	if err := Axpy(-1, a, c); err != nil {
		t.Fatal(err)
	}
	if _, v := c.AbsMax(); v != 0 {
		t.Errorf("a-a has absmax %g", v)
	}
}

func TestRoots(t *testing.T) {
	e := Linear(2, -1, Linspace(-1, 1, 4))
	roots := e.RealRoots()
	if d := cmp.Diff([]float64{0.5}, roots, cmpopts.EquateApprox(0, 1e-15)); d != "" {
		t.Errorf("roots (-want +got):\n%s", d)
	}
}

func TestOneZero(t *testing.T) {
	e := OneZero(0.4, []float64{0.2, 0.7}, 0, 1)
	want := []float64{0, 0.2, 0.4, 0.7, 1}
	if d := cmp.Diff(want, e.Nodes); d != "" {
		t.Errorf("nodes (-want +got):\n%s", d)
	}
	if e.Eval(0.4) != 1 || e.Eval(0.2) != 0 || e.Eval(0.7) != 0 {
		t.Errorf("wrong nodal values %v", e.Values)
	}
}

func TestOrthBasis(t *testing.T) {
	for _, n := range []int{1, 2, 5} {
		nodes := Linspace(-1, 2, max(n, 2))
		basis := OrthBasis(n, nodes)
		for i, a := range basis {
			for j, b := range basis {
				want := 0.0
				if i == j {
					want = 1
				}
				if got := Inner(a, b); math.Abs(got-want) > 1e-12 {
					t.Errorf("n=%d: <b%d,b%d> = %g", n, i, j, got)
				}
			}
		}
	}
}

func TestDeriv(t *testing.T) {
	e := Quadratic(1, 0, 0, Linspace(0, 1, 11))
	d := e.Deriv()
	// central differences are exact for quadratics at interior nodes
	for i := 1; i < 10; i++ {
		x := d.Nodes[i]
		if math.Abs(d.Values[i]-2*x) > 1e-13 {
			t.Errorf("derivative at %g is %g", x, d.Values[i])
		}
	}
}

func TestEncode(t *testing.T) {
	e := Approx(math.Exp, -1, 1, &Opts{NumNodes: 9})
	w := &wire.Writer{}
	e.Encode(w)
	f, err := Decode(wire.NewReader(w.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(e, f); d != "" {
		t.Errorf("round trip (-want +got):\n%s", d)
	}
}
