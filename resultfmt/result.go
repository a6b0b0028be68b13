// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultfmt reads benchmark result artifacts.
//
// A result artifact is a JSON file holding the results of every
// benchmark that was run on one system. The file is a list of
// benchmark blocks, each naming a benchmark and listing its runs:
//
//	[{"bm_name": "index_update",
//	  "benchmarks": [
//	    {"config": {"number_partitions": 4, "access_size": 256},
//	     "bandwidth": {"read": 80.1},
//	     "duration": {"avg": 1203.5}}]}]
//
// Each run has a "config" object of configuration values and one or
// more metric groups, which are objects mapping metric names to
// numbers. Scalars keep the JSON type they were written with so that
// filtering can compare them exactly. Parallel benchmarks nest one
// config object per workload; such values are kept as Raw.
//
// The system an artifact belongs to is named after its file, with the
// extension removed.
package resultfmt

import (
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// A BenchmarkResult is one benchmark block of an artifact.
type BenchmarkResult struct {
	// Name is the benchmark name. Blocks are looked up by it.
	Name string `json:"bm_name"`

	// Type and MatrixArgs are descriptive and may be empty.
	Type       string   `json:"bm_type,omitempty"`
	MatrixArgs []string `json:"matrix_args,omitempty"`

	// Runs lists the timed executions of the benchmark in the order
	// they appear in the artifact.
	Runs []*Run `json:"benchmarks"`
}

// Config is the configuration vector of a run.
type Config map[string]Scalar

// Get returns the value of key and whether it is present.
func (c Config) Get(key string) (Scalar, bool) {
	v, ok := c[key]
	return v, ok
}

// Keys returns the configuration keys in sorted order.
func (c Config) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// A MetricGroup maps metric names to measured values, for example the
// "read" and "write" entries of a "bandwidth" group.
type MetricGroup map[string]float64

// A Run is a single timed execution of a benchmark.
type Run struct {
	Config Config

	// Metrics holds every top-level object of the run whose members
	// are all numbers, keyed by its field name.
	Metrics map[string]MetricGroup

	// Extra holds the remaining top-level fields undecoded.
	Extra map[string]json.RawMessage
}

// A MetricLookup is the outcome of Run.Metric.
type MetricLookup int

const (
	MetricFound MetricLookup = iota
	MissingGroup
	MissingMetric
)

// ConfigValue returns the configuration value of key and whether the
// run has one.
func (r *Run) ConfigValue(key string) (Scalar, bool) {
	return r.Config.Get(key)
}

// Metric looks up metric name in metric group group. The returned
// MetricLookup tells a missing group apart from a missing metric.
func (r *Run) Metric(group, name string) (float64, MetricLookup) {
	g, ok := r.Metrics[group]
	if !ok {
		return 0, MissingGroup
	}
	v, ok := g[name]
	if !ok {
		return 0, MissingMetric
	}
	return v, MetricFound
}

// UnmarshalJSON decodes a run object. The "config" field is required.
func (r *Run) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("run is null")
	}
	raw, ok := fields["config"]
	if !ok {
		return fmt.Errorf(`run has no "config" field`)
	}
	var cfg Config
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg == nil {
		return fmt.Errorf("config is null")
	}

	*r = Run{Config: cfg, Metrics: make(map[string]MetricGroup)}
	for key, raw := range fields {
		if key == "config" {
			continue
		}
		var g MetricGroup
		if err := json.Unmarshal(raw, &g); err == nil && g != nil {
			r.Metrics[key] = g
			continue
		}
		if r.Extra == nil {
			r.Extra = make(map[string]json.RawMessage)
		}
		r.Extra[key] = raw
	}
	return nil
}

// MarshalJSON encodes r back into the artifact layout.
func (r *Run) MarshalJSON() ([]byte, error) {
	fields := make(map[string]interface{}, 1+len(r.Metrics)+len(r.Extra))
	for k, v := range r.Extra {
		fields[k] = v
	}
	for k, v := range r.Metrics {
		fields[k] = v
	}
	fields["config"] = r.Config
	return json.Marshal(fields)
}

// Systems maps system names to the benchmark blocks of their
// artifacts, in file order.
type Systems map[string][]*BenchmarkResult

// Names returns the system names in sorted order.
func (s Systems) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
