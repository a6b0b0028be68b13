// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultproc

import (
	"fmt"
	"sort"

	"github.com/perma-bench/benchviz/resultfmt"
)

// A Point is one (x, y) observation of a series.
type Point struct {
	X resultfmt.Scalar
	Y float64
}

// A Series is the sequence of points of one system.
type Series []Point

// A MissingFieldError reports a run that lacks a field requested by
// Project.
type MissingFieldError struct {
	System    string
	Benchmark string
	// Run is the index of the run in its benchmark block.
	Run int
	// Group is the metric group that was looked up, or "" if Field
	// is a configuration key.
	Group string
	// Field is the missing configuration key or metric name. It is
	// "" if the whole metric group is missing.
	Field string
}

func (e *MissingFieldError) Error() string {
	var what string
	switch {
	case e.Group == "":
		what = fmt.Sprintf("config field %q", e.Field)
	case e.Field == "":
		what = fmt.Sprintf("metric group %q", e.Group)
	default:
		what = fmt.Sprintf("metric %q in group %q", e.Field, e.Group)
	}
	return fmt.Sprintf("%s: benchmark %s run %d: missing %s", e.System, e.Benchmark, e.Run, what)
}

// Project turns the filtered runs of each system into a series, using
// the configuration value x as the x coordinate and metric attr of
// metric group group as the y coordinate. Points are in run order, one
// per run.
//
// Systems are processed in sorted order. The first run that lacks x,
// group, or attr stops the projection with a *MissingFieldError.
func Project(filtered Filtered, x, group, attr string) (map[string]Series, error) {
	out := make(map[string]Series, len(filtered))
	for _, system := range filtered.Systems() {
		set := filtered[system]
		series := make(Series, 0, len(set.Runs))
		for _, run := range set.Runs {
			missing := func(group, field string) error {
				return &MissingFieldError{System: system, Benchmark: set.Benchmark, Run: run.Index, Group: group, Field: field}
			}
			xv, ok := run.ConfigValue(x)
			if !ok {
				return nil, missing("", x)
			}
			yv, res := run.Metric(group, attr)
			switch res {
			case resultfmt.MissingGroup:
				return nil, missing(group, "")
			case resultfmt.MissingMetric:
				return nil, missing(group, attr)
			}
			series = append(series, Point{xv, yv})
		}
		out[system] = series
	}
	return out, nil
}

// SortSeries sorts s by x value, as ordered by resultfmt.Compare.
// Points with equal x keep their relative order.
func SortSeries(s Series) {
	sort.SliceStable(s, func(i, j int) bool {
		return resultfmt.Compare(s[i].X, s[j].X) < 0
	})
}

// XValues returns the distinct x values of all series, sorted.
func XValues(series map[string]Series) []resultfmt.Scalar {
	var xs []resultfmt.Scalar
	for _, s := range series {
		for _, p := range s {
			xs = append(xs, p.X)
		}
	}
	sort.SliceStable(xs, func(i, j int) bool {
		return resultfmt.Compare(xs[i], xs[j]) < 0
	})
	out := xs[:0]
	for i, x := range xs {
		if i == 0 || resultfmt.Compare(out[len(out)-1], x) != 0 {
			out = append(out, x)
		}
	}
	return out
}

// NonEmpty returns the names of the systems in series that have at
// least one point, sorted.
func NonEmpty(series map[string]Series) []string {
	var names []string
	for name, s := range series {
		if len(s) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Systems returns the system names of series, sorted.
func Systems(series map[string]Series) []string {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
