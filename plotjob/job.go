// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package plotjob reads plot job files and runs the jobs they
// describe.
//
// A job file is YAML:
//
//	format: png
//	jobs:
//	  - benchmark: index_update
//	    filter: {access_size: 256, random_distribution: zipf}
//	    x: number_partitions
//	    metric: {group: bandwidth, name: read}
//	    split: number_threads
//	    kind: bar
//
// References of the form ${NAME} are replaced by the value of the
// environment variable NAME before parsing.
package plotjob

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/perma-bench/benchviz/chart"
	"github.com/perma-bench/benchviz/report"
	"github.com/perma-bench/benchviz/resultfmt"
	"github.com/perma-bench/benchviz/resultproc"
	"gopkg.in/yaml.v3"
)

// A File is a parsed job file.
type File struct {
	// Format is the image file extension, "png" if empty.
	Format string `yaml:"format"`

	// Statistics lists the one-dimensional statistic names, as in
	// report.Options.Statistics.
	Statistics []string `yaml:"statistics"`

	Jobs []*Job `yaml:"jobs"`
}

// A Metric names the y value of a chart.
type Metric struct {
	Group string `yaml:"group"`
	Name  string `yaml:"name"`
}

// A Job describes the charts of one benchmark.
type Job struct {
	Benchmark string `yaml:"benchmark"`

	// Filter selects the runs to plot. Values keep their YAML type:
	// 256 is a number and "256" a string.
	Filter map[string]interface{} `yaml:"filter"`

	// X is the configuration key used as the x value.
	X      string `yaml:"x"`
	Metric Metric `yaml:"metric"`

	// Stat is the statistic name used in the image file name. It
	// defaults to Metric.Group.
	Stat string `yaml:"stat"`

	// Split, if set, is a second configuration key. The job then
	// draws one chart per distinct value of Split.
	Split string `yaml:"split"`

	// Kind is "bar" (the default) or "line".
	Kind string `yaml:"kind"`

	Title  string `yaml:"title"`
	XLabel string `yaml:"x_label"`
	YLabel string `yaml:"y_label"`

	// Systems, if set, limits the job to the named systems.
	Systems []string `yaml:"systems"`
}

// A ValidationError reports an invalid job.
type ValidationError struct {
	// Job is the index of the job in its file, or -1 for the file
	// itself.
	Job int
	Msg string
}

func (e *ValidationError) Error() string {
	if e.Job < 0 {
		return "invalid job file: " + e.Msg
	}
	return fmt.Sprintf("job %d: %s", e.Job, e.Msg)
}

var envRE = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${NAME} by the value of environment variable
// NAME. References to unset or empty variables are left as is.
func expandEnvVars(content string) string {
	return envRE.ReplaceAllStringFunc(content, func(match string) string {
		envVar := strings.Trim(match, "${}")
		if value := os.Getenv(envVar); value != "" {
			return value
		}
		return match
	})
}

// Load reads and validates the job file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse parses and validates a job file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), &f); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) format() string {
	if f.Format == "" {
		return "png"
	}
	return strings.TrimPrefix(f.Format, ".")
}

func (f *File) isStatistic(name string) bool {
	stats := f.Statistics
	if stats == nil {
		stats = report.DefaultStatistics
	}
	for _, s := range stats {
		if s == name {
			return true
		}
	}
	return false
}

// Validate checks f and fills in job defaults.
func (f *File) Validate() error {
	if len(f.Jobs) == 0 {
		return &ValidationError{-1, "no jobs"}
	}
	switch f.format() {
	case "png", "svg", "pdf", "jpg", "jpeg", "eps", "tif", "tiff":
	default:
		return &ValidationError{-1, fmt.Sprintf("unsupported format %q", f.Format)}
	}
	for i, j := range f.Jobs {
		bad := func(format string, args ...interface{}) error {
			return &ValidationError{i, fmt.Sprintf(format, args...)}
		}
		switch {
		case j == nil:
			return bad("empty job")
		case j.Benchmark == "":
			return bad("benchmark is required")
		case j.X == "":
			return bad("x is required")
		case j.Metric.Group == "" || j.Metric.Name == "":
			return bad("metric group and name are required")
		case j.Split == j.X:
			return bad("split and x are both %q", j.X)
		}
		if _, err := chart.ParseKind(j.Kind); err != nil {
			return bad("%v", err)
		}
		if _, err := j.Predicate(); err != nil {
			return bad("%v", err)
		}
		if j.Stat == "" {
			j.Stat = j.Metric.Group
		}
		// The report tells one- and two-dimensional charts apart by
		// the second token of the file name.
		if j.Split == "" && !f.isStatistic(j.Stat) {
			return bad("stat %q is not one of the statistics %v", j.Stat, f.statistics())
		}
		if j.Split != "" && f.isStatistic(j.Split) {
			return bad("split %q is a statistic name", j.Split)
		}
	}
	return nil
}

func (f *File) statistics() []string {
	if f.Statistics == nil {
		return report.DefaultStatistics
	}
	return f.Statistics
}

// Predicate returns the run filter of j.
func (j *Job) Predicate() (resultproc.Predicate, error) {
	p := make(resultproc.Predicate, len(j.Filter))
	for k, v := range j.Filter {
		s, err := resultfmt.ScalarOf(v)
		if err != nil {
			return nil, fmt.Errorf("filter %s: %v", k, err)
		}
		p[k] = s
	}
	return p, nil
}
