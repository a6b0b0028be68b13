// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 provides the sqlite3 driver for
// resultstore.OpenSQL. It must be imported for its side effects.
package sqlite3

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
	"github.com/perma-bench/benchviz/resultstore"
)

func init() {
	resultstore.RegisterOpenHook("sqlite3", func(db *sql.DB) error {
		// Each in-memory connection is a separate database, and
		// SQLite serializes writers anyway.
		db.SetMaxOpenConns(1)
		if driver, ok := db.Driver().(*sqlite3.SQLiteDriver); ok {
			driver.ConnectHook = func(c *sqlite3.SQLiteConn) error {
				_, err := c.Exec("PRAGMA busy_timeout = 5000", nil)
				return err
			}
		}
		return nil
	})
}
