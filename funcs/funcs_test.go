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
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/ftrain/internal/wire"
	"seehuhn.de/go/ftrain/linelm"
	"seehuhn.de/go/ftrain/piecewise"
	"seehuhn.de/go/ftrain/poly"
)

func linspace(a, b float64, n int) []float64 {
	return linelm.Linspace(a, b, n)
}

// testFuncs returns one function of every implemented class on [-1, 1].
func testFuncs(t *testing.T) []*Func {
	t.Helper()
	f := func(x float64) float64 { return math.Exp(-x) * math.Sin(2*x) }
	var res []*Func
	for _, class := range []Class{Polynomial, Piecewise, LinElem} {
		g, err := Approximate1D(class, poly.Legendre, f, -1, 1, nil)
		if err != nil {
			t.Fatal(err)
		}
		res = append(res, g)
	}
	return res
}

func TestPromote(t *testing.T) {
	cases := []struct {
		a, b Class
		want Class
	}{
		{Polynomial, Polynomial, Polynomial},
		{Piecewise, Piecewise, Piecewise},
		{LinElem, LinElem, LinElem},
		{Polynomial, Piecewise, Piecewise},
		{Piecewise, Polynomial, Piecewise},
	}
	for _, c := range cases {
		got, err := Promote("test", c.a, c.b)
		if err != nil || got != c.want {
			t.Errorf("Promote(%s, %s) = %s, %v", c.a, c.b, got, err)
		}
	}

	for _, pair := range [][2]Class{{Rational, Polynomial}, {Kernel, Kernel}, {Piecewise, Rational}} {
		_, err := Promote("test", pair[0], pair[1])
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("Promote(%s, %s): expected ErrUnsupported, got %v", pair[0], pair[1], err)
		}
		var classErr *ClassError
		if !errors.As(err, &classErr) || classErr.A != pair[0] || classErr.B != pair[1] {
			t.Errorf("Promote(%s, %s): wrong error %v", pair[0], pair[1], err)
		}
	}

	for _, pair := range [][2]Class{{LinElem, Polynomial}, {Piecewise, LinElem}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Promote(%s, %s) did not panic", pair[0], pair[1])
				}
			}()
			Promote("test", pair[0], pair[1])
		}()
	}
}

func TestDaxpbyZero(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for _, g := range testFuncs(t) {
		z, err := Daxpby(1, g, -1, g)
		if err != nil {
			t.Fatal(err)
		}
		if z.Class() != g.Class() {
			t.Errorf("%s: result has class %s", g.Class(), z.Class())
		}
		for range 1000 {
			x := 2*rng.Float64() - 1
			if v := z.Eval(x); math.Abs(v) > 1e-12 {
				t.Fatalf("%s: g-g = %g at %g", g.Class(), v, x)
			}
		}
	}
}

func TestDaxpbyNil(t *testing.T) {
	for _, g := range testFuncs(t) {
		for _, swap := range []bool{false, true} {
			var h *Func
			var err error
			if swap {
				h, err = Daxpby(0, nil, 3, g)
			} else {
				h, err = Daxpby(3, g, 0, nil)
			}
			if err != nil {
				t.Fatal(err)
			}
			for _, x := range linspace(-1, 1, 9) {
				if math.Abs(h.Eval(x)-3*g.Eval(x)) > 1e-14 {
					t.Errorf("%s: wrong scaled copy at %g", g.Class(), x)
				}
			}
		}
	}
}

func TestDaxpbyMixed(t *testing.T) {
	p := FromExpansion(poly.Linear(2, 1, poly.Legendre, -1, 1))
	pw := FromPiecewise(piecewise.Approx1(math.Cos, -1, 1, nil))

	s, err := Daxpby(2, p, -1, pw)
	if err != nil {
		t.Fatal(err)
	}
	if s.Class() != Piecewise {
		t.Errorf("mixed sum has class %s", s.Class())
	}
	for _, x := range linspace(-1, 1, 21) {
		want := 2*(2*x+1) - math.Cos(x)
		if err := math.Abs(s.Eval(x) - want); err > 1e-7 {
			t.Errorf("error %g at %g", err, x)
		}
	}

	prod, err := Prod(p, pw)
	if err != nil {
		t.Fatal(err)
	}
	for _, x := range linspace(-1, 1, 21) {
		want := (2*x + 1) * math.Cos(x)
		if err := math.Abs(prod.Eval(x) - want); err > 1e-6 {
			t.Errorf("product error %g at %g", err, x)
		}
	}

	le := FromElement(linelm.Linear(1, 0, linspace(-1, 1, 5)))
	func() {
		defer func() {
			if recover() == nil {
				t.Error("mixing linear elements did not panic")
			}
		}()
		Daxpby(1, p, 1, le)
	}()
}

func TestInnerNorm(t *testing.T) {
	fs := testFuncs(t)
	for _, a := range fs {
		for _, b := range fs {
			if (a.Class() == LinElem) != (b.Class() == LinElem) {
				continue
			}
			ab, err := Inner(a, b)
			if err != nil {
				t.Fatal(err)
			}
			ba, err := Inner(b, a)
			if err != nil {
				t.Fatal(err)
			}
			if math.Abs(ab-ba) > 1e-12 {
				t.Errorf("<%s,%s> = %g, <%s,%s> = %g",
					a.Class(), b.Class(), ab, b.Class(), a.Class(), ba)
			}
		}
		nrm, err := Norm(a)
		if err != nil || nrm <= 0 {
			t.Errorf("%s: norm %g, %v", a.Class(), nrm, err)
		}
	}

	c := FromExpansion(poly.Constant(3, poly.Chebyshev, 0, 4))
	if nrm, err := Norm(c); err != nil || math.Abs(nrm-6) > 1e-13 {
		t.Errorf("norm of constant: %g, %v", nrm, err)
	}

	d, err := Norm2Diff(c, c)
	if err != nil || d != 0 {
		t.Errorf("Norm2Diff(c, c) = %g, %v", d, err)
	}
}

func TestAxpy(t *testing.T) {
	x := FromExpansion(poly.Linear(1, 0, poly.Legendre, 0, 1))
	y := FromExpansion(poly.Constant(1, poly.Legendre, 0, 1))
	if err := Axpy(2, x, y); err != nil {
		t.Fatal(err)
	}
	if got := y.Eval(0.25); math.Abs(got-1.5) > 1e-15 {
		t.Errorf("y(0.25) = %g", got)
	}

	z := FromExpansion(poly.Constant(1, poly.Legendre, 0, 2))
	err := Axpy(1, x, z)
	if !errors.Is(err, ErrUnsupported) || !errors.Is(err, poly.ErrMismatch) {
		t.Errorf("different domains: got %v", err)
	}

	pw := FromPiecewise(piecewise.Constant(1, poly.Legendre, 0, 1))
	err = Axpy(1, pw, pw.Copy())
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("piecewise axpy: got %v", err)
	}
}

func TestLinComb(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 3))
	fs := []*Func{
		PolyRandu(poly.Legendre, 3, -1, 1, rng),
		PolyRandu(poly.Legendre, 5, -1, 1, rng),
		PolyRandu(poly.Legendre, 2, -1, 1, rng),
	}
	coeffs := []float64{0.5, -2, 3}
	check := func(g *Func, tol float64) {
		t.Helper()
		for _, x := range linspace(-1, 1, 17) {
			var want float64
			for i, f := range fs {
				want += coeffs[i] * f.Eval(x)
			}
			if err := math.Abs(g.Eval(x) - want); err > tol {
				t.Errorf("error %g at %g", err, x)
			}
		}
	}

	g, err := LinComb(fs, coeffs)
	if err != nil {
		t.Fatal(err)
	}
	if g.Class() != Polynomial {
		t.Errorf("class %s", g.Class())
	}
	check(g, 1e-13)

	// a mixed list goes through the pairwise combinator
	fs[1] = FromPiecewise(piecewise.FromExpansion(fs[1].Expansion()))
	g, err = LinComb(fs, coeffs)
	if err != nil {
		t.Fatal(err)
	}
	if g.Class() != Piecewise {
		t.Errorf("class %s", g.Class())
	}
	check(g, 1e-7)
}

func TestSumProd(t *testing.T) {
	x := FromExpansion(poly.Linear(1, 0, poly.Legendre, -1, 1))
	one := FromExpansion(poly.Constant(1, poly.Legendre, -1, 1))
	g, err := SumProd(2, 1, []*Func{x, one}, 1, []*Func{x, one})
	if err != nil {
		t.Fatal(err)
	}
	for _, t0 := range linspace(-1, 1, 11) {
		if err := math.Abs(g.Eval(t0) - (t0*t0 + 1)); err > 1e-14 {
			t.Errorf("error %g at %g", err, t0)
		}
	}

	ip, err := InnerSum(2, 1, []*Func{x, one}, 1, []*Func{x, one})
	if err != nil || math.Abs(ip-(2.0/3+2)) > 1e-14 {
		t.Errorf("InnerSum = %g, %v", ip, err)
	}
}

func TestKronh(t *testing.T) {
	c := func(v float64) *Func {
		return FromExpansion(poly.Constant(v, poly.Legendre, 0, 1))
	}
	approx := cmpopts.EquateApprox(0, 1e-12)

	// left: r=2, m=1, n=2, l=1; a is 2x2
	a := []float64{1, 2, 3, 4}
	d, err := Kronh(true, 2, 1, 2, 1, a, []*Func{c(1), c(10)})
	if err != nil {
		t.Fatal(err)
	}
	got := EvalArray(d, 0.5)
	if diff := cmp.Diff([]float64{31, 42}, got, approx); diff != "" {
		t.Errorf("left (-want +got):\n%s", diff)
	}

	// right: r=1, m=2, n=1, l=2; c is 1x2, a holds a 2x2 block
	d, err = Kronh(false, 1, 2, 1, 2, a, []*Func{c(1), c(10)})
	if err != nil {
		t.Fatal(err)
	}
	got = EvalArray(d, 0.5)
	if diff := cmp.Diff([]float64{21, 43}, got, approx); diff != "" {
		t.Errorf("right (-want +got):\n%s", diff)
	}

	// Kronh2 with constant functions reduces to the numeric case
	d, err = Kronh2(true, 2, 1, 2, 1, []*Func{c(1), c(10)}, []*Func{c(1), c(2), c(3), c(4)})
	if err != nil {
		t.Fatal(err)
	}
	got = EvalArray(d, 0.5)
	if diff := cmp.Diff([]float64{31, 42}, got, approx); diff != "" {
		t.Errorf("kronh2 left (-want +got):\n%s", diff)
	}
}

func TestArrayOrth(t *testing.T) {
	for _, class := range []Class{Polynomial, Piecewise, LinElem} {
		for _, n := range []int{1, 4} {
			fs, err := ArrayOrth(n, class, poly.Legendre, -2, 1)
			if err != nil {
				t.Fatal(err)
			}
			for i := range fs {
				for j := range fs {
					ip, err := Inner(fs[i], fs[j])
					if err != nil {
						t.Fatal(err)
					}
					want := 0.0
					if i == j {
						want = 1
					}
					if math.Abs(ip-want) > 1e-12 {
						t.Errorf("%s n=%d: <f%d,f%d> = %g", class, n, i, j, ip)
					}
				}
			}
		}
	}

	_, err := ArrayOrth(3, Kernel, poly.Legendre, 0, 1)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("kernel basis: %v", err)
	}
}

func TestApproximate1D(t *testing.T) {
	tols := map[Class]float64{
		Polynomial: 1e-8,
		Piecewise:  1e-6,
		LinElem:    2e-3,
	}
	for class, tol := range tols {
		g, err := Approximate1D(class, poly.Chebyshev, math.Sin, 0, 2, nil)
		if err != nil {
			t.Fatal(err)
		}
		if g.Lb() != 0 || g.Ub() != 2 {
			t.Errorf("%s: domain [%g, %g]", class, g.Lb(), g.Ub())
		}
		for _, x := range linspace(0, 2, 31) {
			if err := math.Abs(g.Eval(x) - math.Sin(x)); err > tol {
				t.Errorf("%s: error %g at %g", class, err, x)
			}
		}
		if err := math.Abs(g.Integral() - (1 - math.Cos(2))); err > 10*tol {
			t.Errorf("%s: integral error %g", class, err)
		}
	}

	_, err := Approximate1D(Rational, poly.Legendre, math.Sin, 0, 1, nil)
	if !errors.Is(err, ErrUnsupported) {
		t.Errorf("rational: %v", err)
	}
}

func TestFactories(t *testing.T) {
	for _, class := range []Class{Polynomial, Piecewise, LinElem} {
		q, err := Quadratic(class, poly.Legendre, 2, 0.5, -1, 1, &ApproxOpts{LinElem: &linelm.Opts{NumNodes: 11}})
		if err != nil {
			t.Fatal(err)
		}
		l, err := Linear(class, poly.Legendre, 3, -1, -1, 1, nil)
		if err != nil {
			t.Fatal(err)
		}
		c, err := Constant(class, poly.Legendre, 7, -1, 1, nil)
		if err != nil {
			t.Fatal(err)
		}
		for _, x := range linspace(-1, 1, 11) {
			if err := math.Abs(q.Eval(x) - 2*(x-0.5)*(x-0.5)); err > 1e-13 {
				t.Errorf("%s: quadratic error %g at %g", class, err, x)
			}
			if err := math.Abs(l.Eval(x) - (3*x - 1)); err > 1e-13 {
				t.Errorf("%s: linear error %g at %g", class, err, x)
			}
			if err := math.Abs(c.Eval(x) - 7); err > 1e-13 {
				t.Errorf("%s: constant error %g at %g", class, err, x)
			}
		}
	}

	oz := OneZero(0.3, []float64{-0.5, 0.6}, -1, 1)
	if oz.Eval(0.3) != 1 || oz.Eval(-0.5) != 0 || oz.Eval(0.6) != 0 {
		t.Error("OneZero has wrong nodal values")
	}

	p := FromExpansion(poly.Quadratic(1, 0, 0, poly.Legendre, -1, 1))
	nodal := CreateNodal(p, []float64{-1, 0, 0.5, 1})
	if nodal.Class() != LinElem || math.Abs(nodal.Eval(0.5)-0.25) > 1e-14 {
		t.Errorf("CreateNodal gave %s with value %g", nodal.Class(), nodal.Eval(0.5))
	}
}

func TestAbsMax(t *testing.T) {
	fs := []*Func{
		FromExpansion(poly.Linear(1, 0, poly.Legendre, -1, 1)),
		FromExpansion(poly.Quadratic(-3, 0, 0, poly.Legendre, -1, 1)),
		FromExpansion(poly.Constant(2, poly.Legendre, -1, 1)),
	}
	idx, _, val := ArrayAbsMax(len(fs), 1, fs)
	if idx != 1 || math.Abs(val-3) > 1e-12 {
		t.Errorf("ArrayAbsMax = %d, %g", idx, val)
	}
}

func TestFiberCut(t *testing.T) {
	f := func(x, y float64) float64 { return x + 10*y }
	cx := NewFiberCut2D(f, 0, 2)
	cy := NewFiberCut2D(f, 1, 3)
	if cx.Eval(1) != 21 || cy.Eval(1) != 13 {
		t.Errorf("2-D cuts: %g %g", cx.Eval(1), cy.Eval(1))
	}

	g := func(x []float64) float64 { return x[0] * x[1] * x[2] }
	cuts := FiberCutNDArray(g, 3, 1, [][]float64{{1, 0, 2}, {3, 99, 1}})
	if cuts[0].Eval(5) != 10 || cuts[1].Eval(5) != 15 {
		t.Errorf("n-D cuts: %g %g", cuts[0].Eval(5), cuts[1].Eval(5))
	}
	if cuts[1].DimCut() != 1 || cuts[1].TotDim() != 3 {
		t.Error("wrong cut metadata")
	}
}

func TestEncode(t *testing.T) {
	for _, g := range testFuncs(t) {
		data, err := g.MarshalBinary()
		if err != nil {
			t.Fatal(err)
		}
		h := &Func{}
		if err := h.UnmarshalBinary(data); err != nil {
			t.Fatalf("%s: %v", g.Class(), err)
		}
		if h.Class() != g.Class() || h.Kind() != g.Kind() {
			t.Errorf("%s: decoded as %s/%s", g.Class(), h.Class(), h.Kind())
		}
		for _, x := range linspace(-1, 1, 13) {
			if d := math.Abs(h.Eval(x) - g.Eval(x)); d > 1e-14 {
				t.Errorf("%s: round trip error %g at %g", g.Class(), d, x)
			}
		}
	}

	w := &wire.Writer{}
	w.Size(1)
	w.Int(int(Rational))
	w.Int(0)
	_, err := Decode(wire.NewReader(w.Bytes()))
	if !errors.Is(err, ErrUnsupported) || !errors.Is(err, wire.ErrFormat) {
		t.Errorf("rational: got %v", err)
	}

	w = &wire.Writer{}
	EncodeArray(w, testFuncs(t))
	fs, err := DecodeArray(wire.NewReader(w.Bytes()))
	if err != nil || len(fs) != 3 {
		t.Errorf("array round trip: %d functions, %v", len(fs), err)
	}
}

// leafKinds returns the polynomial families used by the leaves of p.
func leafKinds(p *piecewise.Poly) []poly.Kind {
	if p.IsLeaf() {
		return []poly.Kind{p.Leaf().Kind}
	}
	var res []poly.Kind
	for _, c := range p.Children() {
		res = append(res, leafKinds(c)...)
	}
	return res
}

func TestPiecewiseKind(t *testing.T) {
	// explicit piecewise options must not override the requested family
	opts := &ApproxOpts{Piecewise: piecewise.DefaultOpts()}
	opts.Piecewise.Kind = poly.Legendre
	f, err := Approximate1D(Piecewise, poly.Chebyshev, math.Exp, -1, 1, opts)
	if err != nil {
		t.Fatal(err)
	}
	if f.Kind() != poly.Chebyshev {
		t.Errorf("approximation has kind %s", f.Kind())
	}
	for _, k := range leafKinds(f.Piecewise()) {
		if k != poly.Chebyshev {
			t.Errorf("approximation has %s leaves", k)
		}
	}
	if opts.Piecewise.Kind != poly.Legendre {
		t.Error("options were modified")
	}

	g, err := Constant(Piecewise, poly.Chebyshev, 2, -1, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	sum, err := Daxpby(1, f, 1, g)
	if err != nil {
		t.Fatal(err)
	}
	prod, err := Prod(f, g)
	if err != nil {
		t.Fatal(err)
	}
	for _, h := range []*Func{sum, prod} {
		kinds := leafKinds(h.Piecewise())
		if h.Kind() != kinds[0] {
			t.Errorf("kind %s recorded for %s leaves", h.Kind(), kinds[0])
		}
	}
}

func TestDecodeKindMismatch(t *testing.T) {
	f := FromPiecewise(piecewise.Constant(1, poly.Legendre, 0, 1))
	data, err := f.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	data[12] = byte(poly.Chebyshev) // kind field after dim and class
	g := &Func{}
	err = g.UnmarshalBinary(data)
	if !errors.Is(err, wire.ErrFormat) {
		t.Errorf("expected ErrFormat, got %v", err)
	}
}

func TestRoundT(t *testing.T) {
	e := poly.New(poly.Legendre, 5, -1, 1)
	copy(e.Coeffs, []float64{2, 1, 1e-9, 1e-12, 1e-15})

	f := FromExpansion(e.Copy())
	f.RoundT(1e-8)
	if n := f.Expansion().NumCoeffs(); n != 2 {
		t.Errorf("polynomial kept %d coefficients", n)
	}

	left := e.Copy()
	right := e.Copy()
	left.Lb, left.Ub = -1, 0
	right.Lb, right.Ub = 0, 1
	g := FromPiecewise(piecewise.NewNode(piecewise.FromExpansion(left), piecewise.FromExpansion(right)))
	g.RoundT(1e-8)
	for _, k := range g.Piecewise().Children() {
		if n := k.Leaf().NumCoeffs(); n != 2 {
			t.Errorf("leaf kept %d coefficients", n)
		}
	}

	h, err := Approximate1D(LinElem, 0, math.Sin, -1, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	before := h.Copy()
	h.RoundT(0.5)
	for _, x := range linspace(-1, 1, 13) {
		if h.Eval(x) != before.Eval(x) {
			t.Errorf("linear element changed at %g", x)
		}
	}
}
