// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Benchviz turns benchmark result artifacts into charts and a static
// HTML report.
//
// Usage:
//
//	benchviz plot --jobs jobs.yaml [--results dir | --db dsn] [--out img]
//	benchviz series --benchmark name --x key --group g --metric m [--filter pred]
//	benchviz report [--img img] [--out html] [--results dir]
//	benchviz import --results dir --db dsn
//
// Every result directory holds one JSON artifact per system; the file
// name without its extension is the system name.
//
// Flag defaults can be set in the environment or in a .env file in the
// current directory: BENCHVIZ_RESULTS, BENCHVIZ_IMG, BENCHVIZ_OUT,
// BENCHVIZ_DB and BENCHVIZ_DRIVER.
//
// Filters select runs by configuration, as in
//
//	benchviz series --benchmark idx --filter 'access_size:256 dist:zipf' \
//		--x number_partitions --group bandwidth --metric read
//
// Bare filter values are JSON literals, so 256 matches the number 256
// and "256" matches only the string.
package main

import (
	"github.com/perma-bench/benchviz/internal/logging"
)

func main() {
	loadEnvironment()
	if err := newRootCmd().Execute(); err != nil {
		logging.GetLogger().WithError(err).Fatal("benchviz failed")
	}
}
