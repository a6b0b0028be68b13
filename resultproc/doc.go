// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultproc selects, filters, and projects benchmark runs
// into chartable series.
//
// The typical steps for turning result artifacts into series are:
//
// 1. Load the artifacts of every system with resultfmt.LoadSystems,
// or from any other Source such as a resultstore.DB.
//
// 2. Pick the block of one benchmark per system with SelectBenchmark.
// Systems that never ran the benchmark drop out here.
//
// 3. Narrow the runs of each system to those whose configuration
// matches a Predicate with FilterRuns. Predicates are partial: keys
// they do not mention are ignored. Every selected system stays in the
// result, even if no run matched.
//
// 4. Turn the remaining runs into (x, y) series with Project, reading x
// from a configuration key and y from a metric group. A run missing
// either is reported as a *MissingFieldError rather than skipped.
//
// Series keep the order the runs were found in. Callers that need a
// particular order should use SortSeries.
package resultproc
