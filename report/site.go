// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report builds a static HTML site from a directory of chart
// images whose file names follow the chart naming convention.
package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed style.css
var defaultStylesheet []byte

// A Site is a static report site: an index page and one page per
// benchmark, linked through a shared sidebar.
type Site struct {
	// ImageDir holds the chart images.
	ImageDir string

	// OutDir receives the pages. Images are referenced as img/{file},
	// so they are copied to OutDir/img unless ImageDir is already
	// that directory.
	OutDir string

	// Stylesheet is the path of a stylesheet to copy to
	// OutDir/style.css. If empty, a built-in stylesheet is used.
	Stylesheet string

	// ImageExts is passed to GroupImages.
	ImageExts []string

	Options Options
}

// Build renders and writes the site and returns the paths it wrote,
// in write order. Every page is rendered before anything is written,
// so a failure leaves OutDir untouched. Building the same inputs twice
// writes byte-identical files.
func (s *Site) Build() ([]string, error) {
	groups, err := GroupImages(s.ImageDir, s.ImageExts)
	if err != nil {
		return nil, fmt.Errorf("grouping images: %w", err)
	}
	nav := Benchmarks(groups)

	type file struct {
		name string
		data []byte
	}
	var files []file

	css := defaultStylesheet
	if s.Stylesheet != "" {
		css, err = os.ReadFile(s.Stylesheet)
		if err != nil {
			return nil, err
		}
	}
	files = append(files, file{"style.css", css})

	var buf bytes.Buffer
	if err := RenderIndex(&buf, nav, s.Options); err != nil {
		return nil, err
	}
	files = append(files, file{"index.html", append([]byte(nil), buf.Bytes()...)})
	for _, bm := range nav {
		buf.Reset()
		if err := RenderPage(&buf, nav, bm, groups[bm], s.Options); err != nil {
			return nil, err
		}
		files = append(files, file{pageFile(bm), append([]byte(nil), buf.Bytes()...)})
	}

	if err := os.MkdirAll(s.OutDir, 0o777); err != nil {
		return nil, err
	}
	var written []string
	for _, f := range files {
		path := filepath.Join(s.OutDir, f.name)
		if err := os.WriteFile(path, f.data, 0o666); err != nil {
			return written, err
		}
		written = append(written, path)
	}

	imgDir := filepath.Join(s.OutDir, "img")
	same, err := sameDir(s.ImageDir, imgDir)
	if err != nil {
		return written, err
	}
	if same {
		return written, nil
	}
	if err := os.MkdirAll(imgDir, 0o777); err != nil {
		return written, err
	}
	for _, bm := range nav {
		for _, name := range groups[bm] {
			dst := filepath.Join(imgDir, name)
			if err := copyFile(filepath.Join(s.ImageDir, name), dst); err != nil {
				return written, err
			}
			written = append(written, dst)
		}
	}
	return written, nil
}

// sameDir reports whether a and b name the same directory. b need not
// exist.
func sameDir(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return os.SameFile(ai, bi), nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o666)
}
