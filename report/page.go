// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"

	"github.com/google/safehtml/template"
)

// DefaultStatistics are the statistic names that mark a chart of a
// one-dimensional sweep when they appear as the second argument of
// its file name.
var DefaultStatistics = []string{"average_duration", "bandwidth", "duration_boxplot"}

// DefaultTitle is the page title used when Options.Title is empty.
const DefaultTitle = "PerMA-Bench Results"

// Options controls page rendering.
type Options struct {
	// Title is the document title of every page and the heading of
	// the index page.
	Title string

	// Description is a paragraph shown on the index page.
	Description string

	// Statistics is the set of one-dimensional statistic names.
	// If nil, DefaultStatistics is used.
	Statistics []string

	// Configs provides the configuration table of benchmarks that
	// have raw-data charts. If nil, the table is left empty.
	Configs ConfigSource
}

func (o Options) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}

func (o Options) isStatistic(name string) bool {
	stats := o.Statistics
	if stats == nil {
		stats = DefaultStatistics
	}
	for _, s := range stats {
		if s == name {
			return true
		}
	}
	return false
}

// A ConfigEntry is one row of a benchmark configuration table.
type ConfigEntry struct {
	Key, Value string
}

// A ConfigSource looks up the configuration of a benchmark.
type ConfigSource interface {
	Configs(benchmark string) ([]ConfigEntry, error)
}

var pageTemplate = template.Must(template.New("").Parse(`
{{- define "head" -}}
<!DOCTYPE html>
<html>
<head>
<title>{{.Title}}</title>
<link rel="stylesheet" href="style.css">
</head>
<body>
<div class="sidenav">
<a href="index.html" class="big">Home</a>
{{range .Nav -}}
<a href="{{.Href}}">{{.Name}}</a>
{{end -}}
</div>
{{end -}}

{{- define "page" -}}
{{template "head" .}}<h1>{{.Benchmark}}</h1>
{{if .ShowConfigs -}}
<h4>Benchmark Configs</h4>
<table>
<tbody>
{{range .Configs -}}
<tr><td>{{.Key}}</td><td>{{.Value}}</td></tr>
{{end -}}
</tbody>
</table>
{{end -}}
<h4>Benchmark Results</h4>
{{range .Items -}}
{{with .Heading}}<h5>{{.}}</h5>
{{end -}}
<div><img src="{{.Src}}"></div>
{{end -}}
</body>
</html>
{{end -}}

{{- define "index" -}}
{{template "head" .}}<h1>{{.Title}}</h1>
{{with .Description}}<p>{{.}}</p>
{{end -}}
</body>
</html>
{{end -}}
`))

type navLink struct {
	Name, Href string
}

type pageItem struct {
	// Heading is the subheading shown before the image, if any.
	Heading string
	Src     string
}

type pageData struct {
	Title       string
	Nav         []navLink
	Benchmark   string
	ShowConfigs bool
	Configs     []ConfigEntry
	Items       []pageItem
	Description string
}

func navLinks(benchmarks []string) []navLink {
	links := make([]navLink, len(benchmarks))
	for i, b := range benchmarks {
		links[i] = navLink{b, pageFile(b)}
	}
	return links
}

// pageFile returns the file name of the page of benchmark.
func pageFile(benchmark string) string {
	return benchmark + ".html"
}

// RenderPage writes the page of benchmark to w. nav is the sorted list
// of all benchmarks, shown in the sidebar. files are the sorted chart
// file names of the benchmark, as returned by GroupImages.
func RenderPage(w io.Writer, nav []string, benchmark string, files []string, opts Options) error {
	data := pageData{
		Title:     opts.title(),
		Nav:       navLinks(nav),
		Benchmark: benchmark,
	}
	for _, f := range files {
		n, err := ParseImageName(f)
		if err != nil {
			return err
		}
		if n.IsRaw() {
			data.ShowConfigs = true
		}
	}
	if data.ShowConfigs && opts.Configs != nil {
		configs, err := opts.Configs.Configs(benchmark)
		if err != nil {
			return fmt.Errorf("benchmark %s: %w", benchmark, err)
		}
		data.Configs = configs
	}
	items, err := pageItems(files, opts)
	if err != nil {
		return err
	}
	data.Items = items
	return pageTemplate.ExecuteTemplate(w, "page", data)
}

// pageItems lays out the charts of one page. Charts of a
// one-dimensional sweep get a single "Matrix Argument" heading at the
// top of the page. Charts of a two-dimensional sweep get a "Current
// Matrix Arguments" heading each time the argument pair changes, which
// relies on files being sorted. Raw-data charts get no heading.
func pageItems(files []string, opts Options) ([]pageItem, error) {
	var items []pageItem
	var lastFirst, lastSecond string
	for i, f := range files {
		item := pageItem{Src: "img/" + f}
		n, err := ParseImageName(f)
		if err != nil {
			return nil, err
		}
		if !n.IsRaw() {
			if n.SecondArg == "" {
				return nil, &NamingConventionError{f, "name has no second argument"}
			}
			if opts.isStatistic(n.SecondArg) {
				if i == 0 {
					item.Heading = "Matrix Argument: " + n.FirstArg
				}
			} else if n.FirstArg != lastFirst || n.SecondArg != lastSecond {
				item.Heading = fmt.Sprintf("Current Matrix Arguments: (%s, %s)", n.FirstArg, n.SecondArg)
				lastFirst, lastSecond = n.FirstArg, n.SecondArg
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// RenderIndex writes the index page to w. nav is the sorted list of
// all benchmarks.
func RenderIndex(w io.Writer, nav []string, opts Options) error {
	return pageTemplate.ExecuteTemplate(w, "index", pageData{
		Title:       opts.title(),
		Nav:         navLinks(nav),
		Description: opts.Description,
	})
}
