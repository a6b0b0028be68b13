// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultproc

import "github.com/perma-bench/benchviz/resultfmt"

// A Source provides the result artifacts of every system.
type Source interface {
	LoadSystems() (resultfmt.Systems, error)
}

// Dir is a Source reading one artifact file per system from a
// directory.
type Dir string

func (d Dir) LoadSystems() (resultfmt.Systems, error) {
	return resultfmt.LoadSystems(string(d))
}

// SelectBenchmark returns, for each system, the first benchmark block
// named name. Systems without such a block are left out.
func SelectBenchmark(systems resultfmt.Systems, name string) map[string]*resultfmt.BenchmarkResult {
	selected := make(map[string]*resultfmt.BenchmarkResult)
	for system, results := range systems {
		for _, res := range results {
			if res.Name == name {
				selected[system] = res
				break
			}
		}
	}
	return selected
}

// SelectAndFilter loads the artifacts in dir, selects benchmark name,
// and filters its runs by p.
func SelectAndFilter(dir, name string, p Predicate) (Filtered, error) {
	return SelectAndFilterFrom(Dir(dir), name, p)
}

// SelectAndFilterFrom is like SelectAndFilter but reads artifacts from
// src.
func SelectAndFilterFrom(src Source, name string, p Predicate) (Filtered, error) {
	systems, err := src.LoadSystems()
	if err != nil {
		return nil, err
	}
	return FilterRuns(SelectBenchmark(systems, name), p), nil
}
