// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/perma-bench/benchviz/resultfmt"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("img:"+name), 0o666); err != nil {
			t.Fatal(err)
		}
	}
}

var headingRE = regexp.MustCompile(`<h5>([^<]*)</h5>`)

func headings(html string) []string {
	var out []string
	for _, m := range headingRE.FindAllStringSubmatch(html, -1) {
		out = append(out, m[1])
	}
	return out
}

func TestParseImageName(t *testing.T) {
	check := func(file string, want ImageName, raw bool) {
		t.Helper()
		got, err := ParseImageName(file)
		if err != nil {
			t.Fatalf("%s: %v", file, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", file, diff)
		}
		if got.IsRaw() != raw {
			t.Errorf("%s: IsRaw() = %v", file, got.IsRaw())
		}
		if got.String() != filepath.Base(file) {
			t.Errorf("%s: String() = %s", file, got.String())
		}
	}
	check("idx-1-bandwidth.png", ImageName{Benchmark: "idx", FirstArg: "1", SecondArg: "bandwidth", Ext: ".png"}, false)
	check("img/scan-1-2-raw.png", ImageName{Benchmark: "scan", FirstArg: "1", SecondArg: "2", Suffix: []string{"raw"}, Ext: ".png"}, true)
	check("scan-raw.svg", ImageName{Benchmark: "scan", FirstArg: "raw", Ext: ".svg"}, true)
	check("idx-p-threads-8-bandwidth.png", ImageName{Benchmark: "idx", FirstArg: "p", SecondArg: "threads", Suffix: []string{"8", "bandwidth"}, Ext: ".png"}, false)

	_, err := ParseImageName("overview.png")
	var nce *NamingConventionError
	if !errors.As(err, &nce) {
		t.Errorf("ParseImageName(overview.png) = %v, want *NamingConventionError", err)
	}
}

func TestNewImageName(t *testing.T) {
	n := NewImageName("index-update", "p", "read-write", []string{"-1"}, "png")
	if got, want := n.String(), "index_update-p-read_write-_1.png"; got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
	back, err := ParseImageName(n.String())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(n, back); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestGroupImages(t *testing.T) {
	// Image files group by benchmark; other files are ignored.
	dir := t.TempDir()
	touch(t, dir, "idx-4-bandwidth.png", "scan-1-2-raw.png", "idx-1-bandwidth.png", "notes.txt", ".hidden")
	if err := os.Mkdir(filepath.Join(dir, "sub-dir.png"), 0o777); err != nil {
		t.Fatal(err)
	}
	groups, err := GroupImages(dir, nil)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string][]string{
		"idx":  {"idx-1-bandwidth.png", "idx-4-bandwidth.png"},
		"scan": {"scan-1-2-raw.png"},
	}
	if diff := cmp.Diff(want, groups); diff != "" {
		t.Errorf("groups (-want +got):\n%s", diff)
	}

	// Every grouped file derives back to its group.
	for bm, files := range groups {
		for _, f := range files {
			n, err := ParseImageName(f)
			if err != nil || n.Benchmark != bm {
				t.Errorf("%s: grouped under %s, parses as %+v, %v", f, bm, n, err)
			}
		}
	}

	touch(t, dir, "overview.png")
	_, err = GroupImages(dir, nil)
	var nce *NamingConventionError
	if !errors.As(err, &nce) || nce.File != "overview.png" {
		t.Errorf("GroupImages with overview.png = %v, want *NamingConventionError", err)
	}
}

func TestRenderPage(t *testing.T) {
	check := func(files []string, opts Options, want []string) string {
		t.Helper()
		var buf bytes.Buffer
		if err := RenderPage(&buf, []string{"idx", "scan"}, "idx", files, opts); err != nil {
			t.Fatal(err)
		}
		html := buf.String()
		if diff := cmp.Diff(want, headings(html)); diff != "" {
			t.Errorf("%v: headings (-want +got):\n%s", files, diff)
		}
		for _, f := range files {
			if !strings.Contains(html, `<img src="img/`+f+`">`) {
				t.Errorf("page does not show %s", f)
			}
		}
		return html
	}

	// One heading for a one-dimensional sweep.
	html := check([]string{"idx-1-bandwidth.png", "idx-4-bandwidth.png"}, Options{}, []string{"Matrix Argument: 1"})
	for _, s := range []string{
		"<h1>idx</h1>",
		"<h4>Benchmark Results</h4>",
		`<a href="index.html" class="big">Home</a>`,
		`<a href="idx.html">idx</a>`,
		`<a href="scan.html">scan</a>`,
		`<link rel="stylesheet" href="style.css">`,
	} {
		if !strings.Contains(html, s) {
			t.Errorf("page lacks %s", s)
		}
	}
	if strings.Contains(html, "Benchmark Configs") {
		t.Errorf("page without raw charts has a config table")
	}

	// Two-dimensional sweeps get a heading per argument pair.
	check([]string{
		"idx-p-threads-1-bandwidth.png",
		"idx-p-threads-1-duration.png",
		"idx-p-threads-2-bandwidth.png",
		"idx-size-threads-1-bandwidth.png",
	}, Options{}, []string{
		"Current Matrix Arguments: (p, threads)",
		"Current Matrix Arguments: (size, threads)",
	})

	// The statistic set is configurable.
	check([]string{"idx-1-latency.png", "idx-4-latency.png"}, Options{}, []string{
		"Current Matrix Arguments: (1, latency)",
		"Current Matrix Arguments: (4, latency)",
	})
	check([]string{"idx-1-latency.png", "idx-4-latency.png"}, Options{Statistics: []string{"latency"}}, []string{"Matrix Argument: 1"})
}

type fakeConfigs map[string][]ConfigEntry

func (f fakeConfigs) Configs(bm string) ([]ConfigEntry, error) {
	if c, ok := f[bm]; ok {
		return c, nil
	}
	return nil, errors.New("no configs")
}

func TestRenderPageRaw(t *testing.T) {
	opts := Options{Configs: fakeConfigs{"scan": {{"access_size", "256"}, {"dist", "<zipf>"}}}}
	var buf bytes.Buffer
	if err := RenderPage(&buf, []string{"scan"}, "scan", []string{"scan-1-2-raw.png"}, opts); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	for _, s := range []string{
		"<h4>Benchmark Configs</h4>",
		"<tr><td>access_size</td><td>256</td></tr>",
		"<tr><td>dist</td><td>&lt;zipf&gt;</td></tr>",
	} {
		if !strings.Contains(html, s) {
			t.Errorf("page lacks %s", s)
		}
	}
	if h := headings(html); len(h) != 0 {
		t.Errorf("raw page has headings %v", h)
	}
	if strings.Index(html, "Benchmark Configs") > strings.Index(html, "Benchmark Results") {
		t.Errorf("config table is not before the results")
	}

	buf.Reset()
	err := RenderPage(&buf, []string{"idx"}, "idx", []string{"idx-1-raw.png"}, opts)
	if err == nil || !strings.Contains(err.Error(), "no configs") {
		t.Errorf("missing configs: got %v", err)
	}
}

func TestRenderPageNaming(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPage(&buf, []string{"idx"}, "idx", []string{"idx-1.png"}, Options{})
	var nce *NamingConventionError
	if !errors.As(err, &nce) || nce.File != "idx-1.png" {
		t.Errorf("got %v, want *NamingConventionError for idx-1.png", err)
	}
}

func TestRenderIndex(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderIndex(&buf, []string{"idx", "scan"}, Options{Description: "Nightly run."}); err != nil {
		t.Fatal(err)
	}
	html := buf.String()
	for _, s := range []string{"<title>PerMA-Bench Results</title>", "<h1>PerMA-Bench Results</h1>", "<p>Nightly run.</p>", `<a href="scan.html">scan</a>`} {
		if !strings.Contains(html, s) {
			t.Errorf("index lacks %s", s)
		}
	}

	// The sidebar is the same on every page.
	sidebar := func(html string) string {
		i := strings.Index(html, `<div class="sidenav">`)
		j := strings.Index(html[i:], "</div>")
		return html[i : i+j]
	}
	var page bytes.Buffer
	if err := RenderPage(&page, []string{"idx", "scan"}, "scan", []string{"scan-1-2-raw.png"}, Options{}); err != nil {
		t.Fatal(err)
	}
	if a, b := sidebar(html), sidebar(page.String()); a != b {
		t.Errorf("sidebars differ:\n%s\n%s", a, b)
	}
}

func TestArtifactConfigs(t *testing.T) {
	systems, err := resultfmt.LoadSystems("../resultfmt/testdata/systems")
	if err != nil {
		t.Fatal(err)
	}
	src := ArtifactConfigs{systems}
	got, err := src.Configs("idx")
	if err != nil {
		t.Fatal(err)
	}
	want := []ConfigEntry{{"dist", "zipf"}, {"p", "1"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Configs(idx) (-want +got):\n%s", diff)
	}
	if _, err := src.Configs("nope"); err == nil {
		t.Errorf("Configs(nope) succeeded")
	}
}

func readTree(t *testing.T, dir string) map[string]string {
	t.Helper()
	out := make(map[string]string)
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}
		data, err := os.ReadFile(path)
		rel, _ := filepath.Rel(dir, path)
		out[rel] = string(data)
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestSiteBuild(t *testing.T) {
	imgs := t.TempDir()
	touch(t, imgs, "idx-1-bandwidth.png", "idx-4-bandwidth.png", "scan-1-2-raw.png")
	out := filepath.Join(t.TempDir(), "site")

	site := &Site{ImageDir: imgs, OutDir: out}
	written, err := site.Build()
	if err != nil {
		t.Fatal(err)
	}
	var rel []string
	for _, p := range written {
		r, _ := filepath.Rel(out, p)
		rel = append(rel, filepath.ToSlash(r))
	}
	want := []string{"style.css", "index.html", "idx.html", "scan.html", "img/idx-1-bandwidth.png", "img/idx-4-bandwidth.png", "img/scan-1-2-raw.png"}
	if diff := cmp.Diff(want, rel); diff != "" {
		t.Errorf("written (-want +got):\n%s", diff)
	}
	first := readTree(t, out)
	if first["style.css"] != string(defaultStylesheet) {
		t.Errorf("style.css is not the built-in stylesheet")
	}
	if first[filepath.Join("img", "scan-1-2-raw.png")] != "img:scan-1-2-raw.png" {
		t.Errorf("image not copied")
	}

	// Rebuilding writes identical bytes.
	if _, err := site.Build(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(first, readTree(t, out)); diff != "" {
		t.Errorf("rebuild differs (-first +second):\n%s", diff)
	}
}

func TestSiteBuildInPlace(t *testing.T) {
	out := t.TempDir()
	imgs := filepath.Join(out, "img")
	if err := os.Mkdir(imgs, 0o777); err != nil {
		t.Fatal(err)
	}
	touch(t, imgs, "idx-1-bandwidth.png")
	css := filepath.Join(t.TempDir(), "custom.css")
	if err := os.WriteFile(css, []byte("body{}"), 0o666); err != nil {
		t.Fatal(err)
	}

	site := &Site{ImageDir: imgs, OutDir: out, Stylesheet: css}
	written, err := site.Build()
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 3 {
		t.Errorf("wrote %v, want style.css, index.html, idx.html", written)
	}
	if data, _ := os.ReadFile(filepath.Join(out, "style.css")); string(data) != "body{}" {
		t.Errorf("style.css = %q", data)
	}
}

func TestSiteBuildFailure(t *testing.T) {
	imgs := t.TempDir()
	touch(t, imgs, "idx-1-bandwidth.png", "idx-2.png")
	out := filepath.Join(t.TempDir(), "site")
	_, err := (&Site{ImageDir: imgs, OutDir: out}).Build()
	var nce *NamingConventionError
	if !errors.As(err, &nce) {
		t.Fatalf("got %v, want *NamingConventionError", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("failed build created %s", out)
	}
}
