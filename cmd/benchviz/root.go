// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/perma-bench/benchviz/internal/logging"
	"github.com/perma-bench/benchviz/resultfmt"
	"github.com/perma-bench/benchviz/resultproc"
	"github.com/perma-bench/benchviz/resultstore"
	_ "github.com/perma-bench/benchviz/resultstore/sqlite3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const version = "0.3.0"

func loadEnvironment() {
	logger := logging.GetLogger()

	envFile := ".env"
	if _, err := os.Stat(envFile); err != nil {
		return
	}
	if err := godotenv.Load(envFile); err != nil {
		logger.WithField("file", envFile).WithError(err).Warn("Error loading .env file")
	} else {
		logger.WithField("file", envFile).Debug("Loaded environment variables")
	}
}

func envDefault(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

// sourceFlags selects where result artifacts are read from.
type sourceFlags struct {
	results string
	db      string
	driver  string
}

func (s *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.results, "results", envDefault("BENCHVIZ_RESULTS", "results"), "Directory of result artifacts, one per system")
	cmd.Flags().StringVar(&s.db, "db", os.Getenv("BENCHVIZ_DB"), "Read artifacts from this database instead of --results")
	cmd.Flags().StringVar(&s.driver, "driver", envDefault("BENCHVIZ_DRIVER", "sqlite3"), "Database driver (sqlite3, mysql)")
}

// given reports whether an artifact source was chosen on the command
// line or through the environment.
func (s *sourceFlags) given(cmd *cobra.Command) bool {
	return cmd.Flags().Changed("results") || cmd.Flags().Changed("db") ||
		os.Getenv("BENCHVIZ_RESULTS") != "" || os.Getenv("BENCHVIZ_DB") != ""
}

func openStore(driver, dsn string) (*resultstore.DB, error) {
	switch driver {
	case "sqlite3", "mysql":
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := resultstore.OpenSQL(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", driver, err)
	}
	return db, nil
}

// loadSystems reads every artifact from the selected source.
func (s *sourceFlags) loadSystems() (resultfmt.Systems, error) {
	logger := logging.GetLogger()
	var src resultproc.Source = resultproc.Dir(s.results)
	if s.db != "" {
		db, err := openStore(s.driver, s.db)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		src = db
		logger.WithField("driver", s.driver).Debug("Reading artifacts from database")
	} else {
		logger.WithField("dir", s.results).Debug("Reading artifacts from directory")
	}
	systems, err := src.LoadSystems()
	if err != nil {
		return nil, err
	}
	logger.WithField("systems", systems.Names()).Info("Loaded result artifacts")
	return systems, nil
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "benchviz",
		Short:         "Benchmark result visualization",
		Long:          "Turn benchmark result artifacts into charts and a static HTML report",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if logLevel != "" {
				if err := logging.SetLogLevel(logLevel); err != nil {
					return fmt.Errorf("invalid log level: %w", err)
				}
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (trace, debug, info, warn, error)")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "benchviz %s\n", version)
		},
	}

	rootCmd.AddCommand(newPlotCmd())
	rootCmd.AddCommand(newSeriesCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(versionCmd)
	return rootCmd
}

// fields is shorthand for structured log fields.
type fields = logrus.Fields
