// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"io"

	"github.com/goccy/go-json"
	"github.com/perma-bench/benchviz/resultfmt"
	"github.com/perma-bench/benchviz/resultproc"
	"github.com/spf13/cobra"
)

type seriesFlags struct {
	src       sourceFlags
	benchmark string
	filter    string
	x         string
	group     string
	metric    string
	json      bool
	sort      bool
}

func newSeriesCmd() *cobra.Command {
	var f seriesFlags
	cmd := &cobra.Command{
		Use:   "series",
		Short: "Print the series of one benchmark metric",
		Long: `Print, for every system, the (x, y) series of one benchmark metric.

Runs are selected with --filter, a list of key:value pairs that must all
match the run configuration. x is read from configuration key --x and y
from metric --metric of metric group --group.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeries(cmd.OutOrStdout(), &f)
		},
	}
	f.src.register(cmd)
	cmd.Flags().StringVarP(&f.benchmark, "benchmark", "b", "", "Benchmark name")
	cmd.Flags().StringVar(&f.filter, "filter", "*", "Run filter")
	cmd.Flags().StringVar(&f.x, "x", "", "Configuration key for x values")
	cmd.Flags().StringVar(&f.group, "group", "", "Metric group for y values")
	cmd.Flags().StringVar(&f.metric, "metric", "", "Metric name for y values")
	cmd.Flags().BoolVar(&f.json, "json", false, "Print JSON instead of CSV")
	cmd.Flags().BoolVar(&f.sort, "sort", false, "Sort points by x")
	for _, name := range []string{"benchmark", "x", "group", "metric"} {
		cmd.MarkFlagRequired(name)
	}
	return cmd
}

type jsonPoint struct {
	X resultfmt.Scalar `json:"x"`
	Y float64          `json:"y"`
}

func runSeries(w io.Writer, f *seriesFlags) error {
	pred, err := resultproc.ParsePredicate(f.filter)
	if err != nil {
		return err
	}
	systems, err := f.src.loadSystems()
	if err != nil {
		return err
	}
	filtered := resultproc.FilterRuns(resultproc.SelectBenchmark(systems, f.benchmark), pred)
	series, err := resultproc.Project(filtered, f.x, f.group, f.metric)
	if err != nil {
		return err
	}
	if f.sort {
		for _, s := range series {
			resultproc.SortSeries(s)
		}
	}

	if f.json {
		out := make(map[string][]jsonPoint, len(series))
		for name, s := range series {
			pts := make([]jsonPoint, len(s))
			for i, p := range s {
				pts[i] = jsonPoint{p.X, p.Y}
			}
			out[name] = pts
		}
		data, err := json.MarshalIndent(out, "", "\t")
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}

	cw := csv.NewWriter(w)
	cw.Write([]string{"system", f.x, f.group + "." + f.metric})
	for _, name := range resultproc.Systems(series) {
		for _, p := range series[name] {
			cw.Write([]string{name, p.X.String(), resultfmt.FloatScalar(p.Y).String()})
		}
	}
	cw.Flush()
	return cw.Error()
}
