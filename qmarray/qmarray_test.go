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

package qmarray

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"seehuhn.de/go/ftrain/funcs"
	"seehuhn.de/go/ftrain/internal/wire"
	"seehuhn.de/go/ftrain/poly"
)

// testFuncs returns six simple functions, for a 3×2 qmarray.
func testFuncs() []func(float64) float64 {
	return []func(float64) float64{
		func(x float64) float64 { return 1 },
		func(x float64) float64 { return x },
		func(x float64) float64 { return x * x },
		math.Sin,
		math.Cos,
		func(x float64) float64 { return math.Exp(x) },
	}
}

func TestOrth1D(t *testing.T) {
	cases := []struct {
		class funcs.Class
		tol   float64
	}{
		{funcs.Polynomial, 1e-14},
		{funcs.Piecewise, 1e-14},
		{funcs.LinElem, 1e-12},
	}
	shapes := [][2]int{{2, 2}, {3, 2}, {2, 5}, {1, 3}}
	for _, c := range cases {
		for _, shape := range shapes {
			name := fmt.Sprintf("%s-%dx%d", c.class, shape[0], shape[1])
			t.Run(name, func(t *testing.T) {
				nrows, ncols := shape[0], shape[1]

				a, err := Orth1DColumns(c.class, poly.Legendre, nrows, ncols, -1, 2)
				if err != nil {
					t.Fatal(err)
				}
				if r, c := a.Shape(); r != nrows || c != ncols {
					t.Fatalf("shape %d×%d", r, c)
				}
				for i := range ncols {
					for j := range ncols {
						ip, err := InnerQuasimatrix(a.ExtractColumn(i), a.ExtractColumn(j))
						if err != nil {
							t.Fatal(err)
						}
						checkDelta(t, i, j, ip, c.tol)
					}
				}

				b, err := Orth1DRows(c.class, poly.Legendre, nrows, ncols, -1, 2)
				if err != nil {
					t.Fatal(err)
				}
				for i := range nrows {
					for j := range nrows {
						ip, err := InnerQuasimatrix(b.ExtractRow(i), b.ExtractRow(j))
						if err != nil {
							t.Fatal(err)
						}
						checkDelta(t, i, j, ip, c.tol)
					}
				}
			})
		}
	}
}

func checkDelta(t *testing.T, i, j int, ip, tol float64) {
	t.Helper()
	want := 0.0
	if i == j {
		want = 1
	}
	if math.Abs(ip-want) > tol {
		t.Errorf("<%d,%d> = %g", i, j, ip)
	}
}

func TestOrthUnsupported(t *testing.T) {
	_, err := Orth1DColumns(funcs.Rational, poly.Legendre, 2, 2, 0, 1)
	if !errors.Is(err, funcs.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
}

func TestApprox1D(t *testing.T) {
	fs := testFuncs()
	a, err := Approx1D(3, 2, fs, funcs.Polynomial, poly.Legendre, -1, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	for c := range 2 {
		for r := range 3 {
			f := fs[c*3+r]
			for _, x := range []float64{-1, -0.3, 0.5, 1} {
				if d := math.Abs(a.Get(r, c).Eval(x) - f(x)); d > 1e-9 {
					t.Errorf("entry (%d,%d): error %g at %g", r, c, d, x)
				}
			}
		}
	}

	vals := a.Eval(0.5)
	want := []float64{1, 0.5, 0.25, math.Sin(0.5), math.Cos(0.5), math.Exp(0.5)}
	if diff := cmp.Diff(want, vals, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Eval (-want +got):\n%s", diff)
	}

	row := a.ExtractRow(1)
	if row.Len() != 2 || math.Abs(row.Get(1).Eval(0.2)-math.Cos(0.2)) > 1e-9 {
		t.Error("wrong row extracted")
	}
	col := a.ExtractColumn(1)
	if col.Len() != 3 || math.Abs(col.Get(2).Eval(0.2)-math.Exp(0.2)) > 1e-9 {
		t.Error("wrong column extracted")
	}

	first := a.ExtractNCols(1)
	if r, c := first.Shape(); r != 3 || c != 1 {
		t.Errorf("ExtractNCols gave %d×%d", r, c)
	}
}

func TestCopySemantics(t *testing.T) {
	a := Zeros(poly.Legendre, 2, 2, 0, 1)
	one := funcs.FromExpansion(poly.Constant(1, poly.Legendre, 0, 1))
	a.Set(1, 0, one)
	one.Scale(5)
	if got := a.Get(1, 0).Eval(0.5); got != 1 {
		t.Errorf("Set did not copy: %g", got)
	}

	col := a.ExtractColumn(0)
	col.Get(1).Scale(3)
	if got := a.Get(1, 0).Eval(0.5); got != 1 {
		t.Errorf("ExtractColumn did not copy: %g", got)
	}

	a.SetColumn(1, col)
	a.SetRow(0, QuasimatrixFrom([]*funcs.Func{one, one}))
	got := a.Eval(0.5)
	if diff := cmp.Diff([]float64{5, 1, 5, 3}, got); diff != "" {
		t.Errorf("after setters (-want +got):\n%s", diff)
	}

	b := a.Copy()
	b.Get(0, 0).Scale(0)
	if a.Get(0, 0).Eval(0.5) != 5 {
		t.Error("Copy is not deep")
	}
}

func TestQMM(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 5))
	q := NewQuasimatrix(3)
	for i := range 3 {
		q.Set(i, funcs.PolyRandu(poly.Legendre, 4, -1, 1, rng))
	}
	s := []float64{1, 2, 3, -1, 0, 0.5}
	res, err := q.QMM(s, 2)
	if err != nil {
		t.Fatal(err)
	}
	if res.Len() != 2 {
		t.Fatalf("length %d", res.Len())
	}
	for _, x := range []float64{-0.9, 0, 0.7} {
		v := q.Eval(x)
		want := []float64{
			v[0] + 2*v[1] + 3*v[2],
			-v[0] + 0.5*v[2],
		}
		if diff := cmp.Diff(want, res.Eval(x), cmpopts.EquateApprox(0, 1e-13)); diff != "" {
			t.Errorf("x=%g (-want +got):\n%s", x, diff)
		}
	}

	// multiplying by the identity gives a copy
	id, err := q.QMM([]float64{1, 0, 0, 0, 1, 0, 0, 0, 1}, 3)
	if err != nil {
		t.Fatal(err)
	}
	d, err := DaxpbyQuasimatrix(1, id, -1, q)
	if err != nil {
		t.Fatal(err)
	}
	nrm, err := d.Norm()
	if err != nil || nrm != 0 {
		t.Errorf("identity product differs by %g (%v)", nrm, err)
	}
}

func TestQuasimatrixAbsMax(t *testing.T) {
	q, err := ApproxQuasimatrix(testFuncs()[:4], funcs.Polynomial, poly.Legendre, -2, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	col, loc, val := q.AbsMax()
	if col != 2 || math.Abs(math.Abs(loc)-2) > 1e-8 || math.Abs(val-4) > 1e-8 {
		t.Errorf("AbsMax = %d, %g, %g", col, loc, val)
	}
}

func TestFiberCuts(t *testing.T) {
	f := func(x, y float64) float64 { return x*y + 1 }
	cuts := funcs.FiberCut2DArray(f, 0, []float64{-1, 0, 2})
	q, err := QuasimatrixFromFiberCuts(cuts, funcs.LinElem, poly.Legendre, 0, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := q.Eval(0.5)
	if diff := cmp.Diff([]float64{0.5, 1, 2}, got, cmpopts.EquateApprox(0, 1e-14)); diff != "" {
		t.Errorf("fiber cuts (-want +got):\n%s", diff)
	}

	a, err := FromFiberCuts(1, 3, cuts, funcs.Polynomial, poly.Chebyshev, 0, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float64{0.5, 1, 2}, a.Eval(0.5), cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("qmarray fiber cuts (-want +got):\n%s", diff)
	}
}

func TestEncode(t *testing.T) {
	a, err := Approx1D(3, 2, testFuncs(), funcs.Piecewise, poly.Legendre, -1, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	data, err := a.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	b := &Qmarray{}
	if err := b.UnmarshalBinary(data); err != nil {
		t.Fatal(err)
	}
	if b.Rows() != 3 || b.Cols() != 2 {
		t.Fatalf("decoded shape %d×%d", b.Rows(), b.Cols())
	}
	for _, x := range []float64{-1, -0.25, 0.6, 1} {
		if diff := cmp.Diff(a.Eval(x), b.Eval(x), cmpopts.EquateApprox(0, 1e-14)); diff != "" {
			t.Errorf("x=%g (-want +got):\n%s", x, diff)
		}
	}

	if err := b.UnmarshalBinary(data[:len(data)-3]); err == nil {
		t.Error("truncated data accepted")
	}

	w := &wire.Writer{}
	a.ExtractColumn(0).Encode(w)
	q, err := DecodeQuasimatrix(wire.NewReader(w.Bytes()))
	if err != nil || q.Len() != 3 {
		t.Errorf("quasimatrix round trip: %v", err)
	}
}
