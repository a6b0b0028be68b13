// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storetest opens throwaway result stores for tests.
package storetest

import (
	"context"
	"testing"

	"github.com/perma-bench/benchviz/resultstore"
	_ "github.com/perma-bench/benchviz/resultstore/sqlite3"
)

// NewDB opens an empty in-memory SQLite store. It is closed when the
// test finishes.
func NewDB(t *testing.T) *resultstore.DB {
	t.Helper()
	d, err := resultstore.OpenSQL("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	// Make sure the database really is empty.
	systems, err := d.Systems(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(systems) != 0 {
		t.Fatalf("found %d row(s) in Artifacts, want 0", len(systems))
	}
	return d
}
