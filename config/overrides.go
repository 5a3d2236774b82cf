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
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrUnknownKey is returned by [Options.ApplyOverrides] for keys which do
// not name an option.
var ErrUnknownKey = errors.New("unknown option")

// setters maps the dotted option names to functions which set the
// corresponding field.
var setters = map[string]func(o *Options, v string) error{
	"class": func(o *Options, v string) error { return setString(&o.Class, v) },
	"kind":  func(o *Options, v string) error { return setString(&o.Kind, v) },

	"piecewise.maxorder":   func(o *Options, v string) error { return setInt(&o.Piecewise.MaxOrder, v) },
	"piecewise.minsize":    func(o *Options, v string) error { return setFloat(&o.Piecewise.MinSize, v) },
	"piecewise.coeffcheck": func(o *Options, v string) error { return setInt(&o.Piecewise.CoeffCheck, v) },
	"piecewise.epsilon":    func(o *Options, v string) error { return setFloat(&o.Piecewise.Epsilon, v) },
	"piecewise.nregions":   func(o *Options, v string) error { return setInt(&o.Piecewise.NRegions, v) },
	"piecewise.pts":        func(o *Options, v string) error { return setFloats(&o.Piecewise.Pts, v) },

	"poly.startnum":    func(o *Options, v string) error { return setInt(&o.Poly.StartNum, v) },
	"poly.coeffscheck": func(o *Options, v string) error { return setInt(&o.Poly.CoeffsCheck, v) },
	"poly.tol":         func(o *Options, v string) error { return setFloat(&o.Poly.Tol, v) },
	"poly.maxnum":      func(o *Options, v string) error { return setInt(&o.Poly.MaxNum, v) },

	"linelm.numnodes": func(o *Options, v string) error { return setInt(&o.LinElem.NumNodes, v) },

	"persist.codec": func(o *Options, v string) error { return setString(&o.Persist.Codec, v) },
}

// Keys returns the names accepted by [Options.ApplyOverrides], in
// alphabetical order.
func Keys() []string {
	keys := maps.Keys(setters)
	slices.Sort(keys)
	return keys
}

// ApplyOverrides changes individual options.  Each override has the form
// "key=value", where key is a dotted option name like
// "piecewise.maxorder".  Keys are case-insensitive.  After all overrides
// are applied, the options are validated.
func (o *Options) ApplyOverrides(overrides []string) error {
	for _, kv := range overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("override %q: missing '='", kv)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		set, ok := setters[key]
		if !ok {
			return fmt.Errorf("%q: %w", key, ErrUnknownKey)
		}
		if err := set(o, strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return o.Validate()
}

func setString(dst *string, v string) error {
	s, err := cast.ToStringE(v)
	if err != nil {
		return err
	}
	*dst = s
	return nil
}

func setInt(dst *int, v string) error {
	i, err := cast.ToIntE(v)
	if err != nil {
		return err
	}
	*dst = i
	return nil
}

func setFloat(dst *float64, v string) error {
	x, err := cast.ToFloat64E(v)
	if err != nil {
		return err
	}
	*dst = x
	return nil
}

// setFloats parses a comma-separated list.  The empty string clears the
// list.
func setFloats(dst *[]float64, v string) error {
	if v == "" {
		*dst = nil
		return nil
	}
	parts := strings.Split(v, ",")
	res := make([]float64, len(parts))
	for i, p := range parts {
		x, err := cast.ToFloat64E(strings.TrimSpace(p))
		if err != nil {
			return err
		}
		res[i] = x
	}
	*dst = res
	return nil
}
