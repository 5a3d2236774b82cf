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

package main

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// builtin1 is a test function of one variable.
type builtin1 struct {
	desc   string
	f      func(float64) float64
	lb, ub float64
}

var builtins1 = map[string]builtin1{
	"sin3": {
		desc: "sin(3x) + x²",
		f:    func(x float64) float64 { return math.Sin(3*x) + x*x },
		lb:   -1, ub: 1,
	},
	"pwdisc": {
		desc: "sin(x) for x > 0, (x+1)² otherwise",
		f: func(x float64) float64 {
			if x > 0 {
				return math.Sin(x)
			}
			return x*x + 2*x + 1
		},
		lb: -4, ub: 1,
	},
	"runge": {
		desc: "1 / (1 + 25x²)",
		f:    func(x float64) float64 { return 1 / (1 + 25*x*x) },
		lb:   -1, ub: 1,
	},
	"abs": {
		desc: "|x|",
		f:    math.Abs,
		lb:   -1, ub: 1,
	},
	"step": {
		desc: "0 for x < 0.3, 1 otherwise",
		f: func(x float64) float64 {
			if x < 0.3 {
				return 0
			}
			return 1
		},
		lb: 0, ub: 1,
	},
	"expsin": {
		desc: "exp(-x)·sin(2x)",
		f:    func(x float64) float64 { return math.Exp(-x) * math.Sin(2*x) },
		lb:   -1, ub: 1,
	},
}

// builtin2 is a test function of two variables on a square.
type builtin2 struct {
	desc   string
	f      func(x, y float64) float64
	lb, ub float64
}

var builtins2 = map[string]builtin2{
	"bilinear": {
		desc: "xy + 1",
		f:    func(x, y float64) float64 { return x*y + 1 },
		lb:   -1, ub: 1,
	},
	"gauss": {
		desc: "exp(-(x² + y²))",
		f:    func(x, y float64) float64 { return math.Exp(-(x*x + y*y)) },
		lb:   -1, ub: 1,
	},
	"sumsin": {
		desc: "sin(x + y)",
		f:    func(x, y float64) float64 { return math.Sin(x + y) },
		lb:   0, ub: 2,
	},
}

func sortedNames[V any](m map[string]V) []string {
	names := maps.Keys(m)
	slices.Sort(names)
	return names
}

func lookup1(name string) (builtin1, error) {
	b, ok := builtins1[name]
	if !ok {
		return b, fmt.Errorf("unknown function %q (available: %s)",
			name, strings.Join(sortedNames(builtins1), ", "))
	}
	return b, nil
}

func lookup2(name string) (builtin2, error) {
	b, ok := builtins2[name]
	if !ok {
		return b, fmt.Errorf("unknown function %q (available: %s)",
			name, strings.Join(sortedNames(builtins2), ", "))
	}
	return b, nil
}
