// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"

	"github.com/perma-bench/benchviz/resultfmt"
	"github.com/perma-bench/benchviz/resultproc"
)

// ArtifactConfigs is a ConfigSource that reads benchmark configurations
// from result artifacts. The configuration of a benchmark is that of
// the first run of the first system, in sorted order, that has runs of
// the benchmark.
type ArtifactConfigs struct {
	Systems resultfmt.Systems
}

func (a ArtifactConfigs) Configs(benchmark string) ([]ConfigEntry, error) {
	selected := resultproc.SelectBenchmark(a.Systems, benchmark)
	for _, system := range a.Systems.Names() {
		bm, ok := selected[system]
		if !ok || len(bm.Runs) == 0 {
			continue
		}
		cfg := bm.Runs[0].Config
		var entries []ConfigEntry
		for _, k := range cfg.Keys() {
			entries = append(entries, ConfigEntry{k, cfg[k].String()})
		}
		return entries, nil
	}
	return nil, fmt.Errorf("no result artifact has runs of benchmark %q", benchmark)
}
