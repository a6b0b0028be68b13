// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/perma-bench/benchviz/internal/logging"
	"github.com/perma-bench/benchviz/resultproc"
)

const testResults = "../../resultfmt/testdata/systems"

func TestMain(m *testing.M) {
	logging.SetOutput(io.Discard)
	os.Exit(m.Run())
}

// run executes benchviz with args and returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := run(t, args...)
	if err != nil {
		t.Fatalf("benchviz %s: %v", strings.Join(args, " "), err)
	}
	return out
}

const zipfCSV = `system,p,bandwidth.read
sysA,1,50
sysA,4,80
sysB,1,45
sysB,4,70
`

func TestSeries(t *testing.T) {
	got := mustRun(t, "series", "--results", testResults, "--benchmark", "idx", "--filter", "dist:zipf", "--x", "p", "--group", "bandwidth", "--metric", "read")
	if diff := cmp.Diff(zipfCSV, got); diff != "" {
		t.Errorf("csv (-want +got):\n%s", diff)
	}

	got = mustRun(t, "series", "--results", testResults, "--benchmark", "idx", "--filter", "p:4", "--x", "p", "--group", "bandwidth", "--metric", "read", "--json", "--sort")
	var decoded map[string][]map[string]float64
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("%v\n%s", err, got)
	}
	want := map[string][]map[string]float64{
		"sysA": {{"x": 4, "y": 80}},
		"sysB": {{"x": 4, "y": 70}},
	}
	if diff := cmp.Diff(want, decoded); diff != "" {
		t.Errorf("json (-want +got):\n%s", diff)
	}
}

func TestSeriesErrors(t *testing.T) {
	_, err := run(t, "series", "--results", testResults, "--benchmark", "idx", "--x", "p", "--group", "duration", "--metric", "avg")
	var mf *resultproc.MissingFieldError
	if !errors.As(err, &mf) {
		t.Errorf("got %v, want *MissingFieldError", err)
	}

	_, err = run(t, "series", "--results", testResults, "--benchmark", "idx", "--filter", "p:", "--x", "p", "--group", "bandwidth", "--metric", "read")
	if err == nil {
		t.Errorf("bad filter accepted")
	}

	_, err = run(t, "series", "--results", filepath.Join(t.TempDir(), "missing"), "--benchmark", "idx", "--x", "p", "--group", "bandwidth", "--metric", "read")
	if err == nil {
		t.Errorf("missing result directory accepted")
	}

	if _, err := run(t, "--log-level", "loud", "version"); err == nil {
		t.Errorf("bad log level accepted")
	}
}

func TestImport(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "results.db")
	mustRun(t, "import", "--results", testResults, "--db", dsn)

	got := mustRun(t, "series", "--db", dsn, "--benchmark", "idx", "--filter", "dist:zipf", "--x", "p", "--group", "bandwidth", "--metric", "read")
	if diff := cmp.Diff(zipfCSV, got); diff != "" {
		t.Errorf("csv from database (-want +got):\n%s", diff)
	}

	if _, err := run(t, "import", "--results", testResults); err == nil {
		t.Errorf("import without --db succeeded")
	}
	if _, err := run(t, "import", "--results", testResults, "--db", dsn, "--driver", "postgres"); err == nil {
		t.Errorf("import with unsupported driver succeeded")
	}
}

func TestPlotAndReport(t *testing.T) {
	dir := t.TempDir()
	jobs := filepath.Join(dir, "jobs.yaml")
	err := os.WriteFile(jobs, []byte(`
jobs:
  - benchmark: idx
    filter: {dist: zipf}
    x: p
    metric: {group: bandwidth, name: read}
  - benchmark: scan
    x: access_size
    metric: {group: bandwidth, name: read}
`), 0o666)
	if err != nil {
		t.Fatal(err)
	}
	img := filepath.Join(dir, "img")
	out := mustRun(t, "plot", "--results", testResults, "--jobs", jobs, "--out", img)
	want := "To view new plots, run:\n\topen " + filepath.Join(img, "idx-p-bandwidth.png") + " " + filepath.Join(img, "scan-access_size-bandwidth.png") + "\n"
	if out != want {
		t.Errorf("plot output:\n%s\nwant:\n%s", out, want)
	}

	html := filepath.Join(dir, "html")
	out = mustRun(t, "report", "--img", img, "--out", html, "--statistic", "bandwidth")
	if !strings.Contains(out, filepath.Join(html, "index.html")) {
		t.Errorf("report output: %s", out)
	}
	for _, name := range []string{"index.html", "idx.html", "scan.html", "style.css", filepath.Join("img", "idx-p-bandwidth.png")} {
		if _, err := os.Stat(filepath.Join(html, name)); err != nil {
			t.Error(err)
		}
	}
	page, err := os.ReadFile(filepath.Join(html, "idx.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page), "<h5>Matrix Argument: p</h5>") {
		t.Errorf("idx.html lacks the matrix argument heading:\n%s", page)
	}
}

func TestReportConfigsFromEnv(t *testing.T) {
	dir := t.TempDir()
	img := filepath.Join(dir, "img")
	if err := os.Mkdir(img, 0o777); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(img, "idx-1-4-raw.png"), []byte("png"), 0o666); err != nil {
		t.Fatal(err)
	}

	check := func(wantTable bool) {
		t.Helper()
		html := filepath.Join(t.TempDir(), "html")
		mustRun(t, "report", "--img", img, "--out", html)
		page, err := os.ReadFile(filepath.Join(html, "idx.html"))
		if err != nil {
			t.Fatal(err)
		}
		got := strings.Contains(string(page), "<td>dist</td>")
		if got != wantTable {
			t.Errorf("config table present = %v, want %v:\n%s", got, wantTable, page)
		}
	}
	t.Setenv("BENCHVIZ_RESULTS", "")
	check(false)
	t.Setenv("BENCHVIZ_RESULTS", testResults)
	check(true)
}

func TestVersion(t *testing.T) {
	if out := mustRun(t, "version"); out != "benchviz "+version+"\n" {
		t.Errorf("version = %q", out)
	}
}
