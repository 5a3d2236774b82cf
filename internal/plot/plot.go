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

// Package plot draws graphs of functions of one variable.
package plot

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/math/f64"
	"golang.org/x/image/vector"
	"seehuhn.de/go/geom/matrix"
)

// margin is the number of pixels left free around the graph.
const margin = 8

// Plot collects the curves for one image.
type Plot struct {
	Width, Height int
	Lb, Ub        float64

	// Samples is the number of points at which each curve is evaluated.
	Samples int

	curves []curve
	marks  []float64
}

type curve struct {
	f   func(float64) float64
	col color.Color
}

// New creates an empty plot of the interval [lb, ub].
func New(width, height int, lb, ub float64) *Plot {
	return &Plot{
		Width:   width,
		Height:  height,
		Lb:      lb,
		Ub:      ub,
		Samples: 400,
	}
}

// Add adds the graph of f, drawn in color c.
func (p *Plot) Add(f func(float64) float64, c color.Color) {
	p.curves = append(p.curves, curve{f: f, col: c})
}

// Mark adds a vertical line at x, for example at a region boundary.
func (p *Plot) Mark(x float64) {
	p.marks = append(p.marks, x)
}

// Render draws the plot.
func (p *Plot) Render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	xs, ys := p.sample()
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for _, row := range ys {
		for _, y := range row {
			if math.IsNaN(y) || math.IsInf(y, 0) {
				continue
			}
			yMin = min(yMin, y)
			yMax = max(yMax, y)
		}
	}
	if yMin > yMax {
		return img
	}
	if yMax-yMin < 1e-12 {
		yMin -= 1
		yMax += 1
	}

	m := p.transform(yMin, yMax)
	aff := f64.Aff3{m[0], m[2], m[4], m[1], m[3], m[5]}
	r := vector.NewRasterizer(p.Width, p.Height)

	grey := image.NewUniform(color.Gray{Y: 0xC0})
	for _, x := range p.marks {
		r.Reset(p.Width, p.Height)
		line(r, aff, x, yMin, x, yMax, 1)
		r.Draw(img, img.Bounds(), grey, image.Point{})
	}

	for i, c := range p.curves {
		r.Reset(p.Width, p.Height)
		for j := 1; j < len(xs); j++ {
			y0, y1 := ys[i][j-1], ys[i][j]
			if math.IsNaN(y0) || math.IsNaN(y1) || math.IsInf(y0, 0) || math.IsInf(y1, 0) {
				continue
			}
			line(r, aff, xs[j-1], y0, xs[j], y1, 1.5)
		}
		r.Draw(img, img.Bounds(), image.NewUniform(c.col), image.Point{})
	}
	return img
}

// WritePNG renders the plot and writes it to w in PNG format.
func (p *Plot) WritePNG(w io.Writer) error {
	return png.Encode(w, p.Render())
}

func (p *Plot) sample() ([]float64, [][]float64) {
	n := max(p.Samples, 2)
	xs := make([]float64, n)
	for j := range xs {
		xs[j] = p.Lb + (p.Ub-p.Lb)*float64(j)/float64(n-1)
	}
	ys := make([][]float64, len(p.curves))
	for i, c := range p.curves {
		ys[i] = make([]float64, n)
		for j, x := range xs {
			ys[i][j] = c.f(x)
		}
	}
	return xs, ys
}

// transform returns the map from data coordinates to pixel coordinates.
// Pixel rows grow downwards.
func (p *Plot) transform(yMin, yMax float64) matrix.Matrix {
	sx := float64(p.Width-2*margin) / (p.Ub - p.Lb)
	sy := float64(p.Height-2*margin) / (yMax - yMin)
	return matrix.Translate(-p.Lb, -yMin).
		Mul(matrix.Matrix{sx, 0, 0, -sy, 0, 0}).
		Mul(matrix.Translate(margin, float64(p.Height-margin)))
}

// line adds a segment of the given width (in pixels) to the rasterizer.
func line(r *vector.Rasterizer, m f64.Aff3, x0, y0, x1, y1, width float64) {
	ax, ay := apply(m, x0, y0)
	bx, by := apply(m, x1, y1)
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	if l == 0 {
		dx, dy, l = 1, 0, 1
	}
	nx, ny := -dy/l*width/2, dx/l*width/2

	r.MoveTo(float32(ax+nx), float32(ay+ny))
	r.LineTo(float32(bx+nx), float32(by+ny))
	r.LineTo(float32(bx-nx), float32(by-ny))
	r.LineTo(float32(ax-nx), float32(ay-ny))
	r.ClosePath()
}

func apply(m f64.Aff3, x, y float64) (float64, float64) {
	return m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]
}
