// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package plotjob

import (
	"fmt"
	"path/filepath"

	"github.com/perma-bench/benchviz/chart"
	"github.com/perma-bench/benchviz/report"
	"github.com/perma-bench/benchviz/resultfmt"
	"github.com/perma-bench/benchviz/resultproc"
)

// ExecOptions controls Execute.
type ExecOptions struct {
	// OutDir receives the chart images.
	OutDir string
	// Format is the image file extension, "png" if empty.
	Format string
}

// Run executes every job of f against systems, in order, and records
// the written charts in out. It stops at the first failing job.
func (f *File) Run(systems resultfmt.Systems, outDir string, out *chart.Outputs) error {
	for i, j := range f.Jobs {
		if err := Execute(systems, j, ExecOptions{OutDir: outDir, Format: f.format()}, out); err != nil {
			return fmt.Errorf("job %d (%s): %w", i, j.Benchmark, err)
		}
	}
	return nil
}

// ImageName returns the file name of the chart of j. If the job has a
// split key, splitValue is the split value the chart is drawn for.
func (j *Job) ImageName(splitValue resultfmt.Scalar, format string) string {
	if format == "" {
		format = "png"
	}
	stat := j.Stat
	if stat == "" {
		stat = j.Metric.Group
	}
	if j.Split == "" {
		return report.NewImageName(j.Benchmark, j.X, stat, nil, format).String()
	}
	return report.NewImageName(j.Benchmark, j.X, j.Split, []string{splitValue.String(), stat}, format).String()
}

// Execute draws the charts of job j from systems into opts.OutDir and
// records each written chart in out.
func Execute(systems resultfmt.Systems, j *Job, opts ExecOptions, out *chart.Outputs) error {
	kind, err := chart.ParseKind(j.Kind)
	if err != nil {
		return err
	}
	pred, err := j.Predicate()
	if err != nil {
		return err
	}
	selected := resultproc.SelectBenchmark(systems, j.Benchmark)
	if j.Systems != nil {
		only := make(map[string]*resultfmt.BenchmarkResult)
		for _, name := range j.Systems {
			bm, ok := selected[name]
			if !ok {
				return fmt.Errorf("system %s has no benchmark %s", name, j.Benchmark)
			}
			only[name] = bm
		}
		selected = only
	}
	if len(selected) == 0 {
		return fmt.Errorf("no system has benchmark %s", j.Benchmark)
	}

	draw := func(pred resultproc.Predicate, splitValue resultfmt.Scalar) error {
		series, err := resultproc.Project(resultproc.FilterRuns(selected, pred), j.X, j.Metric.Group, j.Metric.Name)
		if err != nil {
			return err
		}
		for _, s := range series {
			resultproc.SortSeries(s)
		}
		path, err := chart.Render(series, chart.Options{
			Kind:   kind,
			Title:  j.title(splitValue),
			XLabel: orDefault(j.XLabel, j.X),
			YLabel: orDefault(j.YLabel, j.Metric.Group+" "+j.Metric.Name),
			Path:   filepath.Join(opts.OutDir, j.ImageName(splitValue, opts.Format)),
		})
		if err != nil {
			return err
		}
		out.Add(path)
		return nil
	}

	if j.Split == "" {
		return draw(pred, resultfmt.Scalar{})
	}
	values, err := splitValues(resultproc.FilterRuns(selected, pred), j)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return fmt.Errorf("no runs match %s", pred)
	}
	for _, v := range values {
		if err := draw(pred.With(j.Split, v), v); err != nil {
			return err
		}
	}
	return nil
}

// splitValues returns the distinct values of the split key among the
// filtered runs, sorted.
func splitValues(filtered resultproc.Filtered, j *Job) ([]resultfmt.Scalar, error) {
	// Projecting onto the split key checks every run has it.
	series, err := resultproc.Project(filtered, j.Split, j.Metric.Group, j.Metric.Name)
	if err != nil {
		return nil, err
	}
	return resultproc.XValues(series), nil
}

func (j *Job) title(splitValue resultfmt.Scalar) string {
	t := j.Title
	if t == "" {
		t = j.Benchmark
	}
	if j.Split != "" {
		t = fmt.Sprintf("%s (%s = %s)", t, j.Split, splitValue)
	}
	return t
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
