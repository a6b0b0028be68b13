// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"path/filepath"
	"strings"
)

// An ImageName is the parsed form of a chart file name,
//
//	{benchmark}-{first arg}-{second arg}-{suffix...}.{ext}
//
// For example "idx-p-bandwidth.png" has first argument "p" and second
// argument "bandwidth", the name of a statistic.
type ImageName struct {
	Benchmark string
	FirstArg  string
	// SecondArg is "" if the name has only two tokens.
	SecondArg string
	Suffix    []string
	// Ext includes the leading dot.
	Ext string
}

// A NamingConventionError reports an image file whose name does not
// follow the chart naming convention.
type NamingConventionError struct {
	File string
	Msg  string
}

func (e *NamingConventionError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Msg)
}

// ParseImageName parses the base name of file.
func ParseImageName(file string) (ImageName, error) {
	base := filepath.Base(file)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if !strings.Contains(stem, "-") {
		return ImageName{}, &NamingConventionError{file, "name has no '-' separated tokens"}
	}
	toks := strings.Split(stem, "-")
	n := ImageName{Benchmark: toks[0], FirstArg: toks[1], Ext: ext}
	if len(toks) > 2 {
		n.SecondArg = toks[2]
	}
	if len(toks) > 3 {
		n.Suffix = toks[3:]
	}
	return n, nil
}

// NewImageName returns the ImageName for the given tokens. Any '-' in
// a token is replaced by '_' so that the name parses back to the same
// tokens.
func NewImageName(benchmark, firstArg, secondArg string, suffix []string, ext string) ImageName {
	clean := func(s string) string { return strings.ReplaceAll(s, "-", "_") }
	n := ImageName{
		Benchmark: clean(benchmark),
		FirstArg:  clean(firstArg),
		SecondArg: clean(secondArg),
		Ext:       ext,
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		n.Ext = "." + ext
	}
	for _, s := range suffix {
		n.Suffix = append(n.Suffix, clean(s))
	}
	return n
}

// tokens returns the '-' separated tokens of n.
func (n ImageName) tokens() []string {
	toks := []string{n.Benchmark, n.FirstArg}
	if n.SecondArg != "" || len(n.Suffix) > 0 {
		toks = append(toks, n.SecondArg)
	}
	return append(toks, n.Suffix...)
}

// IsRaw reports whether n names a plot of raw, unaggregated data. Such
// names end in the token "raw".
func (n ImageName) IsRaw() bool {
	toks := n.tokens()
	return toks[len(toks)-1] == "raw"
}

// String returns the file name of n.
func (n ImageName) String() string {
	return strings.Join(n.tokens(), "-") + n.Ext
}
