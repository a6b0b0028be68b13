// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
)

// A MalformedArtifactError reports an artifact that could not be read
// as a list of benchmark blocks.
type MalformedArtifactError struct {
	Path string
	Err  error
}

func (e *MalformedArtifactError) Error() string {
	return fmt.Sprintf("%s: malformed result artifact: %v", e.Path, e.Err)
}

func (e *MalformedArtifactError) Unwrap() error {
	return e.Err
}

// Decode reads one artifact from r. fileName is used in error
// messages; it is purely diagnostic.
//
// Any failure is returned as a *MalformedArtifactError.
func Decode(r io.Reader, fileName string) ([]*BenchmarkResult, error) {
	malformed := func(err error) error {
		return &MalformedArtifactError{Path: fileName, Err: err}
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, malformed(err)
	}
	var results []*BenchmarkResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, malformed(err)
	}
	if results == nil {
		return nil, malformed(fmt.Errorf("expected a list of benchmark results"))
	}
	for i, res := range results {
		switch {
		case res == nil:
			return nil, malformed(fmt.Errorf("result %d is null", i))
		case res.Name == "":
			return nil, malformed(fmt.Errorf("result %d has no bm_name", i))
		case res.Runs == nil:
			return nil, malformed(fmt.Errorf("result %d (%s) has no benchmarks list", i, res.Name))
		}
		for j, run := range res.Runs {
			if run == nil {
				return nil, malformed(fmt.Errorf("%s: run %d is null", res.Name, j))
			}
		}
	}
	return results, nil
}

// ReadFile reads the artifact at path.
func ReadFile(path string) ([]*BenchmarkResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, path)
}

// SystemName returns the system name for an artifact path: the base
// name with its extension removed.
func SystemName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
