// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultproc

import (
	"sort"
	"strings"

	"github.com/perma-bench/benchviz/resultfmt"
	"github.com/perma-bench/benchviz/resultproc/internal/parse"
)

// A Predicate is a partial configuration that runs must match. A run
// matches if, for every key of the predicate, the run's configuration
// has that key with an equal value. Configuration keys the predicate
// does not mention are ignored.
//
// The empty predicate matches every run.
type Predicate map[string]resultfmt.Scalar

// ParsePredicate parses a predicate such as
// `access_size:256 random_distribution:zipf`.
//
// Bare values are read as JSON literals, so 256 is an integer and true
// a boolean. Quoted values are always strings: `id:"4"` does not match
// a run configured with the integer 4. "*" or the empty string give the
// empty predicate.
//
// Syntax errors are returned as *parse.SyntaxError.
func ParsePredicate(q string) (Predicate, error) {
	terms, err := parse.ParsePredicate(q)
	if err != nil {
		return nil, err
	}
	p := make(Predicate, len(terms))
	for _, t := range terms {
		if t.Quoted {
			p[t.Key] = resultfmt.StringScalar(t.Value)
		} else {
			p[t.Key] = resultfmt.ParseScalar(t.Value)
		}
	}
	return p, nil
}

// Match reports whether run satisfies p.
func (p Predicate) Match(run *resultfmt.Run) bool {
	for key, want := range p {
		got, ok := run.ConfigValue(key)
		if !ok || !got.Equal(want) {
			return false
		}
	}
	return true
}

// With returns a copy of p that also requires key to equal value.
func (p Predicate) With(key string, value resultfmt.Scalar) Predicate {
	p2 := make(Predicate, len(p)+1)
	for k, v := range p {
		p2[k] = v
	}
	p2[key] = value
	return p2
}

// String returns p in predicate syntax, with keys sorted.
func (p Predicate) String() string {
	if len(p) == 0 {
		return "*"
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	terms := make([]string, len(keys))
	for i, k := range keys {
		v := p[k]
		terms[i] = parse.Term{Key: k, Value: v.String(), Quoted: needsQuote(v)}.String()
	}
	return strings.Join(terms, " ")
}

// needsQuote reports whether v must be quoted to parse back as the
// same value.
func needsQuote(v resultfmt.Scalar) bool {
	if v.Kind() != resultfmt.String {
		return false
	}
	return resultfmt.ParseScalar(v.String()).Kind() != resultfmt.String
}

// An IndexedRun is a run together with its position in the run list
// of its benchmark block.
type IndexedRun struct {
	Index int
	*resultfmt.Run
}

// A RunSet is the runs of one system that passed a filter.
type RunSet struct {
	// Benchmark is the name of the benchmark the runs belong to.
	Benchmark string
	// Runs is in artifact order.
	Runs []IndexedRun
}

// Filtered maps system names to their matching runs.
type Filtered map[string]*RunSet

// Systems returns the system names of f in sorted order.
func (f Filtered) Systems() []string {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// FilterRuns keeps, for each selected system, the runs that match p,
// in their original order. Every system of selected appears in the
// result, with an empty RunSet if nothing matched.
func FilterRuns(selected map[string]*resultfmt.BenchmarkResult, p Predicate) Filtered {
	out := make(Filtered, len(selected))
	for system, bm := range selected {
		set := &RunSet{Benchmark: bm.Name, Runs: []IndexedRun{}}
		for i, run := range bm.Runs {
			if p.Match(run) {
				set.Runs = append(set.Runs, IndexedRun{i, run})
			}
		}
		out[system] = set
	}
	return out
}
