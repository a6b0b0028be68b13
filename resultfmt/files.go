// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// An Artifact is the content of one result file.
type Artifact struct {
	// System is the name of the tested system.
	System string
	// Path is the file the artifact was read from.
	Path    string
	Results []*BenchmarkResult
}

// A Files reads result artifacts from a sequence of files.
//
// By default the system name of each artifact is derived from its
// file name (see SystemName). If AllowLabels is true, then entries in
// Paths may be of the form label=path, and the label is used as the
// system name instead.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// AllowLabels indicates that custom system labels are allowed
	// in Paths.
	AllowLabels bool

	// inputs is the sequence of remaining inputs, or nil if this
	// Files has not started yet. Note that this distinguishes nil
	// from length 0.
	inputs []input

	seen     map[string]string
	artifact Artifact
	err      error
}

type input struct {
	path   string
	system string
}

// init does first-use initialization of f.
func (f *Files) init() {
	f.inputs = []input{}
	f.seen = make(map[string]string)
	for _, path := range f.Paths {
		system := ""
		if i := strings.Index(path, "="); f.AllowLabels && i >= 0 {
			system, path = path[:i], path[i+1:]
		} else {
			system = SystemName(path)
		}
		f.inputs = append(f.inputs, input{path, system})
	}
}

// Scan reads the next artifact and reports whether one was read. The
// caller should use the Artifact method to get it. If Scan reaches the
// end of the file sequence, or if any file cannot be read, it returns
// false. In this case, the caller should use the Err method to check
// for errors.
//
// Two inputs with the same system name are an error, since their
// results could not be told apart.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}
	if f.inputs == nil {
		f.init()
	}
	if len(f.inputs) == 0 {
		return false
	}
	inp := f.inputs[0]
	f.inputs = f.inputs[1:]

	if prev, ok := f.seen[inp.system]; ok {
		f.err = &MalformedArtifactError{
			Path: inp.path,
			Err:  fmt.Errorf("system %q is also provided by %s", inp.system, prev),
		}
		return false
	}
	f.seen[inp.system] = inp.path

	results, err := ReadFile(inp.path)
	if err != nil {
		f.err = err
		return false
	}
	f.artifact = Artifact{System: inp.system, Path: inp.path, Results: results}
	return true
}

// Artifact returns the artifact that was just read by Scan. The
// returned value is overwritten by the next call to Scan.
func (f *Files) Artifact() *Artifact {
	return &f.artifact
}

// Err returns the error that stopped Scan, if any.
// If Scan stopped because it read each file to completion,
// or if Scan has not yet returned false, Err returns nil.
func (f *Files) Err() error {
	return f.err
}

// ArtifactPaths lists the artifact files directly inside dir, sorted
// by name. Subdirectories and hidden files are skipped.
func ArtifactPaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

// LoadSystems reads every artifact in dir and returns their benchmark
// blocks keyed by system name.
//
// A single unreadable artifact fails the whole load with a
// *MalformedArtifactError; no partial result is returned.
func LoadSystems(dir string) (Systems, error) {
	paths, err := ArtifactPaths(dir)
	if err != nil {
		return nil, fmt.Errorf("reading result directory: %w", err)
	}
	return LoadFiles(&Files{Paths: paths})
}

// LoadFiles reads all artifacts of files.
func LoadFiles(files *Files) (Systems, error) {
	systems := make(Systems)
	for files.Scan() {
		a := files.Artifact()
		systems[a.System] = a.Results
	}
	if err := files.Err(); err != nil {
		return nil, err
	}
	return systems, nil
}
