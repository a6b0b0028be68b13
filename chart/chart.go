// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart draws per-system series as line or grouped bar charts.
package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/perma-bench/benchviz/resultfmt"
	"github.com/perma-bench/benchviz/resultproc"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Kind selects how series are drawn.
type Kind int

const (
	// KindLine draws one line with point markers per system. All x
	// values must be numbers.
	KindLine Kind = iota
	// KindBar draws one bar per system for every distinct x value,
	// grouped by x. X values are treated as names.
	KindBar
)

func (k Kind) String() string {
	switch k {
	case KindLine:
		return "line"
	case KindBar:
		return "bar"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind parses "line" or "bar". The empty string is KindBar.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", "bar":
		return KindBar, nil
	case "line":
		return KindLine, nil
	}
	return 0, fmt.Errorf("unknown chart kind %q", s)
}

// Options controls Render.
type Options struct {
	Kind   Kind
	Title  string
	XLabel string
	YLabel string

	// Path is the output file. Its extension picks the image format:
	// png, svg, pdf, and the other formats plot.Save supports.
	Path string

	// Width and Height default to 8 and 5 inches.
	Width, Height vg.Length
}

// Render draws series into opts.Path and returns the path. Systems
// with empty series are left out of the chart; if every series is
// empty, Render fails without writing anything.
func Render(series map[string]resultproc.Series, opts Options) (string, error) {
	if opts.Path == "" {
		return "", fmt.Errorf("chart: no output path")
	}
	systems := resultproc.NonEmpty(series)
	if len(systems) == 0 {
		return "", fmt.Errorf("chart %s: no data points", filepath.Base(opts.Path))
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = opts.XLabel
	p.Y.Label.Text = opts.YLabel
	p.Legend.Top = true
	p.Legend.Padding = 1 * vg.Millimeter
	p.Add(plotter.NewGrid())

	pal, err := colors(len(systems))
	if err != nil {
		return "", err
	}
	switch opts.Kind {
	case KindLine:
		err = plotLines(p, series, systems, pal)
	case KindBar:
		err = plotBars(p, series, systems, pal)
	default:
		err = fmt.Errorf("unknown chart kind %v", opts.Kind)
	}
	if err != nil {
		return "", fmt.Errorf("chart %s: %w", filepath.Base(opts.Path), err)
	}

	w, h := opts.Width, opts.Height
	if w == 0 {
		w = 8 * vg.Inch
	}
	if h == 0 {
		h = 5 * vg.Inch
	}
	if dir := filepath.Dir(opts.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return "", err
		}
	}
	if err := p.Save(w, h, opts.Path); err != nil {
		return "", err
	}
	return opts.Path, nil
}

// colors returns n colors from the qualitative Paired palette, cycling
// if n exceeds the palette size.
func colors(n int) ([]color.Color, error) {
	size := n
	if size < 3 {
		size = 3
	} else if size > 12 {
		size = 12
	}
	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Paired", size)
	if err != nil {
		return nil, err
	}
	base := pal.Colors()
	out := make([]color.Color, n)
	for i := range out {
		out[i] = base[i%len(base)]
	}
	return out, nil
}

func plotLines(p *plot.Plot, series map[string]resultproc.Series, systems []string, pal []color.Color) error {
	for i, name := range systems {
		s := append(resultproc.Series(nil), series[name]...)
		resultproc.SortSeries(s)
		pts := make(plotter.XYs, len(s))
		for j, pt := range s {
			x, ok := pt.X.Float()
			if !ok {
				return fmt.Errorf("system %s: x value %s is not a number", name, pt.X)
			}
			pts[j].X, pts[j].Y = x, pt.Y
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return err
		}
		line.Color = pal[i]
		points.Color = pal[i]
		points.Shape = shapeFor(i)
		p.Add(line, points)
		p.Legend.Add(name, line, points)
	}
	return nil
}

func plotBars(p *plot.Plot, series map[string]resultproc.Series, systems []string, pal []color.Color) error {
	xs := resultproc.XValues(series)
	index := func(x resultfmt.Scalar) int {
		for i, v := range xs {
			if resultfmt.Compare(v, x) == 0 {
				return i
			}
		}
		return -1
	}
	names := make([]string, len(xs))
	for i, x := range xs {
		names[i] = x.String()
	}

	barSpacing := vg.Points(2)
	barWidth := vg.Points(60 / float64(len(systems)))
	if barWidth > vg.Points(24) {
		barWidth = vg.Points(24)
	}
	groupWidth := (barWidth + barSpacing) * vg.Length(len(systems)-1)
	for i, name := range systems {
		values := make(plotter.Values, len(xs))
		set := make([]bool, len(xs))
		for _, pt := range series[name] {
			j := index(pt.X)
			if set[j] {
				return fmt.Errorf("system %s: more than one run with x = %s", name, pt.X)
			}
			set[j] = true
			values[j] = pt.Y
		}
		bc, err := plotter.NewBarChart(values, barWidth)
		if err != nil {
			return err
		}
		bc.Color = pal[i]
		bc.LineStyle.Width = 0
		bc.Offset = (barWidth+barSpacing)*vg.Length(i) - groupWidth/2
		p.Add(bc)
		p.Legend.Add(name, bc)
	}
	p.NominalX(names...)
	return nil
}

var shapes = []draw.GlyphDrawer{
	draw.CircleGlyph{},
	draw.SquareGlyph{},
	draw.TriangleGlyph{},
	draw.CrossGlyph{},
	draw.PlusGlyph{},
	draw.RingGlyph{},
	draw.BoxGlyph{},
	draw.PyramidGlyph{},
}

func shapeFor(i int) draw.GlyphDrawer {
	return shapes[i%len(shapes)]
}

// Outputs collects the paths of the charts written by one batch.
type Outputs struct {
	paths []string
}

// Add records path as written.
func (o *Outputs) Add(path string) {
	o.paths = append(o.paths, path)
}

// Paths returns the recorded paths in the order they were added.
func (o *Outputs) Paths() []string {
	return o.paths
}

// Summary returns a message telling the user how to open the written
// charts, or "" if nothing was written.
func (o *Outputs) Summary() string {
	if len(o.paths) == 0 {
		return ""
	}
	return "To view new plots, run:\n\topen " + strings.Join(o.paths, " ")
}
