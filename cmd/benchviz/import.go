// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/perma-bench/benchviz/internal/logging"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var src sourceFlags
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Store the artifacts of a result directory in a database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if src.db == "" {
				return fmt.Errorf("import: --db is required")
			}
			db, err := openStore(src.driver, src.db)
			if err != nil {
				return err
			}
			defer db.Close()
			systems, err := db.ImportDir(cmd.Context(), src.results)
			if err != nil {
				return err
			}
			logging.GetLogger().WithFields(fields{"dir": src.results, "systems": systems}).Info("Imported result artifacts")
			return nil
		},
	}
	src.register(cmd)
	return cmd
}
