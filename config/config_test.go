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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"seehuhn.de/go/ftrain/ftrain"
	"seehuhn.de/go/ftrain/funcs"
	"seehuhn.de/go/ftrain/piecewise"
	"seehuhn.de/go/ftrain/poly"
)

func TestDefault(t *testing.T) {
	o := Default()
	require.NoError(t, o.Validate())

	pw := o.ToPiecewise(poly.Legendre)
	require.Equal(t, piecewise.DefaultOpts(), pw)
	require.Equal(t, poly.DefaultAdaptOpts(), o.ToPoly())

	class, kind, err := o.ClassKind()
	require.NoError(t, err)
	require.Equal(t, funcs.Polynomial, class)
	require.Equal(t, poly.Legendre, kind)

	codec, err := o.Codec()
	require.NoError(t, err)
	require.Equal(t, ftrain.CodecZstd, codec)
}

func TestLoad(t *testing.T) {
	data := []byte(`
class: piecewise
kind: chebyshev
piecewise:
  maxorder: 9
  epsilon: 1e-10
  pts: [-1, 0, 1]
poly:
  tol: 1e-12
linelm:
  numnodes: 50
persist:
  codec: lz4
`)
	path := filepath.Join(t.TempDir(), "ftrain.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	o, err := Load(path)
	require.NoError(t, err)

	class, kind, err := o.ClassKind()
	require.NoError(t, err)
	require.Equal(t, funcs.Piecewise, class)
	require.Equal(t, poly.Chebyshev, kind)

	want := piecewise.DefaultOpts()
	want.Kind = poly.Chebyshev
	want.MaxOrder = 9
	want.Epsilon = 1e-10
	want.Pts = []float64{-1, 0, 1}
	require.Equal(t, want, o.ToPiecewise(kind))

	wantPoly := poly.DefaultAdaptOpts()
	wantPoly.Tol = 1e-12
	require.Equal(t, wantPoly, o.ToPoly())
	require.Equal(t, 50, o.ToLinElem().NumNodes)

	codec, err := o.Codec()
	require.NoError(t, err)
	require.Equal(t, ftrain.CodecLZ4, codec)

	ao, err := o.ApproxOpts()
	require.NoError(t, err)
	require.Equal(t, poly.Chebyshev, ao.Piecewise.Kind)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseErrors(t *testing.T) {
	cases := []string{
		"unknown: 1\n",
		"piecewise:\n  maxorder: many\n",
		"piecewise:\n  nregions: 1\n",
		"piecewise:\n  pts: [1, 0]\n",
		"poly:\n  startnum: 10\n  maxnum: 5\n",
		"class: rational-ish\n",
		"persist:\n  codec: gzip\n",
		"linelm:\n  numnodes: 1\n",
	}
	for _, c := range cases {
		_, err := Parse([]byte(c))
		require.Error(t, err, "input %q", c)
	}

	// an empty document gives the defaults
	o, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), o)
}

func TestOverrides(t *testing.T) {
	o := Default()
	err := o.ApplyOverrides([]string{
		"piecewise.maxorder=9",
		"Piecewise.Epsilon = 1e-9",
		"piecewise.pts=0, 0.5, 2",
		"poly.maxnum=65",
		"class=linelm",
		"persist.codec=none",
	})
	require.NoError(t, err)
	require.Equal(t, 9, o.Piecewise.MaxOrder)
	require.Equal(t, 1e-9, o.Piecewise.Epsilon)
	require.Equal(t, []float64{0, 0.5, 2}, o.Piecewise.Pts)
	require.Equal(t, 65, o.Poly.MaxNum)

	class, _, err := o.ClassKind()
	require.NoError(t, err)
	require.Equal(t, funcs.LinElem, class)

	require.NoError(t, o.ApplyOverrides([]string{"piecewise.pts="}))
	require.Nil(t, o.Piecewise.Pts)

	err = o.ApplyOverrides([]string{"piecewise.order=3"})
	require.ErrorIs(t, err, ErrUnknownKey)

	err = o.ApplyOverrides([]string{"poly.tol"})
	require.Error(t, err)

	err = o.ApplyOverrides([]string{"poly.startnum=x"})
	require.Error(t, err)

	// values are validated after all overrides have been applied
	err = o.ApplyOverrides([]string{"linelm.numnodes=0"})
	require.Error(t, err)
}

func TestKeys(t *testing.T) {
	keys := Keys()
	require.Len(t, keys, len(setters))
	require.Equal(t, "class", keys[0])
	require.Contains(t, keys, "persist.codec")

}

func TestMarshal(t *testing.T) {
	o := Default()
	data, err := o.Marshal()
	require.NoError(t, err)
	p, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, o, p)
}
