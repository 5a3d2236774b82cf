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

// Package config reads approximation options from YAML files.
//
// A configuration file looks like this:
//
//	class: piecewise
//	kind: legendre
//	piecewise:
//	  maxorder: 9
//	  epsilon: 1e-10
//	poly:
//	  tol: 1e-12
//	linelm:
//	  numnodes: 50
//	persist:
//	  codec: zstd
//
// Missing values keep their defaults.  Individual values can be changed
// using [Options.ApplyOverrides].
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"seehuhn.de/go/ftrain/ftrain"
	"seehuhn.de/go/ftrain/funcs"
	"seehuhn.de/go/ftrain/linelm"
	"seehuhn.de/go/ftrain/piecewise"
	"seehuhn.de/go/ftrain/poly"
)

// Options holds all user-configurable settings.
type Options struct {
	// Class is the function class used for approximation.
	Class string `yaml:"class"`

	// Kind is the polynomial family.
	Kind string `yaml:"kind"`

	Piecewise PiecewiseOptions `yaml:"piecewise"`
	Poly      PolyOptions      `yaml:"poly"`
	LinElem   LinElemOptions   `yaml:"linelm"`
	Persist   PersistOptions   `yaml:"persist"`
}

// PiecewiseOptions corresponds to [piecewise.Opts].
type PiecewiseOptions struct {
	MaxOrder   int       `yaml:"maxorder"`
	MinSize    float64   `yaml:"minsize"`
	CoeffCheck int       `yaml:"coeffcheck"`
	Epsilon    float64   `yaml:"epsilon"`
	NRegions   int       `yaml:"nregions"`
	Pts        []float64 `yaml:"pts,omitempty"`
}

// PolyOptions corresponds to [poly.AdaptOpts].
type PolyOptions struct {
	StartNum    int     `yaml:"startnum"`
	CoeffsCheck int     `yaml:"coeffscheck"`
	Tol         float64 `yaml:"tol"`
	MaxNum      int     `yaml:"maxnum"`
}

// LinElemOptions corresponds to [linelm.Opts].
type LinElemOptions struct {
	NumNodes int `yaml:"numnodes"`
}

// PersistOptions controls how function trains are written to files.
type PersistOptions struct {
	Codec string `yaml:"codec"`
}

// Default returns the default options.  These agree with the defaults of
// the library packages.
func Default() *Options {
	pw := piecewise.DefaultOpts()
	pa := poly.DefaultAdaptOpts()
	return &Options{
		Class: funcs.Polynomial.String(),
		Kind:  poly.Legendre.String(),
		Piecewise: PiecewiseOptions{
			MaxOrder:   pw.MaxOrder,
			MinSize:    pw.MinSize,
			CoeffCheck: pw.CoeffCheck,
			Epsilon:    pw.Epsilon,
			NRegions:   pw.NRegions,
		},
		Poly: PolyOptions{
			StartNum:    pa.StartNum,
			CoeffsCheck: pa.CoeffsCheck,
			Tol:         pa.Tol,
			MaxNum:      pa.MaxNum,
		},
		LinElem: LinElemOptions{NumNodes: linelm.DefaultNumNodes},
		Persist: PersistOptions{Codec: ftrain.CodecZstd.String()},
	}
}

// Load reads options from the named YAML file.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	o, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return o, nil
}

// Parse reads options from YAML data.  Unknown fields are errors.
func Parse(data []byte) (*Options, error) {
	o := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(o); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate checks that all values are in range.
func (o *Options) Validate() error {
	if _, err := funcs.ParseClass(o.Class); err != nil {
		return err
	}
	if _, err := poly.ParseKind(o.Kind); err != nil {
		return err
	}
	if _, err := ftrain.ParseCodec(o.Persist.Codec); err != nil {
		return err
	}

	pw := &o.Piecewise
	switch {
	case pw.MaxOrder < 0:
		return fmt.Errorf("piecewise.maxorder: invalid value %d", pw.MaxOrder)
	case pw.MinSize <= 0:
		return fmt.Errorf("piecewise.minsize: invalid value %g", pw.MinSize)
	case pw.CoeffCheck < 1:
		return fmt.Errorf("piecewise.coeffcheck: invalid value %d", pw.CoeffCheck)
	case pw.Epsilon <= 0:
		return fmt.Errorf("piecewise.epsilon: invalid value %g", pw.Epsilon)
	case pw.NRegions < 2:
		return fmt.Errorf("piecewise.nregions: invalid value %d", pw.NRegions)
	case pw.Pts != nil && len(pw.Pts) < 2:
		return errors.New("piecewise.pts: need at least two points")
	}
	for i := 1; i < len(pw.Pts); i++ {
		if pw.Pts[i] <= pw.Pts[i-1] {
			return errors.New("piecewise.pts: points must be increasing")
		}
	}

	pa := &o.Poly
	switch {
	case pa.StartNum < 1:
		return fmt.Errorf("poly.startnum: invalid value %d", pa.StartNum)
	case pa.CoeffsCheck < 1:
		return fmt.Errorf("poly.coeffscheck: invalid value %d", pa.CoeffsCheck)
	case pa.Tol <= 0:
		return fmt.Errorf("poly.tol: invalid value %g", pa.Tol)
	case pa.MaxNum < pa.StartNum:
		return fmt.Errorf("poly.maxnum: %d is less than poly.startnum", pa.MaxNum)
	}

	if o.LinElem.NumNodes < 2 {
		return fmt.Errorf("linelm.numnodes: invalid value %d", o.LinElem.NumNodes)
	}
	return nil
}

// Marshal returns the YAML representation of o.
func (o *Options) Marshal() ([]byte, error) {
	return yaml.Marshal(o)
}

// ClassKind returns the configured function class and polynomial family.
func (o *Options) ClassKind() (funcs.Class, poly.Kind, error) {
	class, err := funcs.ParseClass(o.Class)
	if err != nil {
		return 0, 0, err
	}
	kind, err := poly.ParseKind(o.Kind)
	if err != nil {
		return 0, 0, err
	}
	return class, kind, nil
}

// Codec returns the configured compression codec.
func (o *Options) Codec() (ftrain.Codec, error) {
	return ftrain.ParseCodec(o.Persist.Codec)
}

// ToPiecewise returns the options for piecewise approximation, using the
// polynomial family kind on the leaves.
func (o *Options) ToPiecewise(kind poly.Kind) *piecewise.Opts {
	pw := &o.Piecewise
	return &piecewise.Opts{
		Kind:       kind,
		MaxOrder:   pw.MaxOrder,
		MinSize:    pw.MinSize,
		CoeffCheck: pw.CoeffCheck,
		Epsilon:    pw.Epsilon,
		NRegions:   pw.NRegions,
		Pts:        append([]float64(nil), pw.Pts...),
	}
}

// ToPoly returns the options for adaptive polynomial approximation.
func (o *Options) ToPoly() *poly.AdaptOpts {
	return &poly.AdaptOpts{
		StartNum:    o.Poly.StartNum,
		CoeffsCheck: o.Poly.CoeffsCheck,
		Tol:         o.Poly.Tol,
		MaxNum:      o.Poly.MaxNum,
	}
}

// ToLinElem returns the options for linear element approximation.
func (o *Options) ToLinElem() *linelm.Opts {
	return &linelm.Opts{NumNodes: o.LinElem.NumNodes}
}

// ApproxOpts collects the options for all function classes.
func (o *Options) ApproxOpts() (*funcs.ApproxOpts, error) {
	_, kind, err := o.ClassKind()
	if err != nil {
		return nil, err
	}
	return &funcs.ApproxOpts{
		Piecewise: o.ToPiecewise(kind),
		Poly:      o.ToPoly(),
		LinElem:   o.ToLinElem(),
	}, nil
}
