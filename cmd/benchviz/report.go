// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/perma-bench/benchviz/internal/logging"
	"github.com/perma-bench/benchviz/report"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var (
		src        sourceFlags
		site       report.Site
		statistics []string
		configs    bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the HTML report from a directory of charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger()
			if cmd.Flags().Changed("statistic") {
				site.Options.Statistics = statistics
			}
			if configs || src.given(cmd) {
				systems, err := src.loadSystems()
				if err != nil {
					return err
				}
				site.Options.Configs = report.ArtifactConfigs{Systems: systems}
			}
			written, err := site.Build()
			if err != nil {
				return err
			}
			logger.WithFields(fields{"out": site.OutDir, "files": len(written)}).Info("Report written")
			fmt.Fprintf(cmd.OutOrStdout(), "To view the report, run:\n\topen %s\n", filepath.Join(site.OutDir, "index.html"))
			return nil
		},
	}
	src.register(cmd)
	cmd.Flags().StringVar(&site.ImageDir, "img", envDefault("BENCHVIZ_IMG", "img"), "Directory of chart images")
	cmd.Flags().StringVar(&site.OutDir, "out", envDefault("BENCHVIZ_OUT", "html"), "Directory to write the report to")
	cmd.Flags().StringVar(&site.Stylesheet, "stylesheet", "", "Stylesheet to use instead of the built-in one")
	cmd.Flags().StringVar(&site.Options.Title, "title", report.DefaultTitle, "Report title")
	cmd.Flags().StringVar(&site.Options.Description, "description", "", "Text shown on the index page")
	cmd.Flags().StringSliceVar(&statistics, "statistic", report.DefaultStatistics, "One-dimensional statistic names")
	cmd.Flags().BoolVar(&configs, "configs", false, "Read benchmark configurations from the result artifacts")
	return cmd
}
