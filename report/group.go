// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"os"
	"sort"
	"strings"
)

// DefaultImageExts are the file extensions GroupImages treats as images
// when given none.
var DefaultImageExts = []string{".png", ".svg", ".jpg", ".jpeg", ".gif"}

// GroupImages lists the image files directly in dir and groups their
// names by benchmark. Each group is sorted. Files whose extension is
// not in exts (DefaultImageExts if nil) are ignored.
//
// An image whose name does not follow the naming convention is
// reported as a *NamingConventionError.
func GroupImages(dir string, exts []string) (map[string][]string, error) {
	if exts == nil {
		exts = DefaultImageExts
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	groups := make(map[string][]string)
	for _, e := range entries {
		if e.IsDir() || !hasExt(e.Name(), exts) {
			continue
		}
		name, err := ParseImageName(e.Name())
		if err != nil {
			return nil, err
		}
		groups[name.Benchmark] = append(groups[name.Benchmark], e.Name())
	}
	for _, files := range groups {
		sort.Strings(files)
	}
	return groups, nil
}

func hasExt(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(strings.ToLower(name), ext) {
			return true
		}
	}
	return false
}

// Benchmarks returns the benchmark names of groups, sorted.
func Benchmarks(groups map[string][]string) []string {
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
