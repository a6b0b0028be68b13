// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/perma-bench/benchviz/chart"
	"github.com/perma-bench/benchviz/internal/logging"
	"github.com/perma-bench/benchviz/plotjob"
	"github.com/spf13/cobra"
)

func newPlotCmd() *cobra.Command {
	var (
		src    sourceFlags
		jobs   string
		outDir string
	)
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Draw the charts described by a job file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger()
			f, err := plotjob.Load(jobs)
			if err != nil {
				return err
			}
			systems, err := src.loadSystems()
			if err != nil {
				return err
			}
			var out chart.Outputs
			if err := f.Run(systems, outDir, &out); err != nil {
				return err
			}
			logger.WithFields(fields{"jobs": len(f.Jobs), "charts": len(out.Paths())}).Info("Plotting finished")
			if s := out.Summary(); s != "" {
				fmt.Fprintln(cmd.OutOrStdout(), s)
			}
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().StringVarP(&jobs, "jobs", "j", "", "Path to the plot job file")
	cmd.Flags().StringVar(&outDir, "out", envDefault("BENCHVIZ_IMG", "img"), "Directory to write charts to")
	cmd.MarkFlagRequired("jobs")
	return cmd
}
