// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resultstore keeps result artifacts in a SQL database, one row
// per system.
//
// A DB is a resultproc.Source, so everything that reads artifacts from a
// directory can read them from a database instead.
package resultstore

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/template"

	"github.com/perma-bench/benchviz/resultfmt"
)

// DB is a database of result artifacts. It's safe for concurrent use
// by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	replace *sql.Stmt
	lookup  *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is evaluated with . as a map containing one entry whose
// key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Artifacts (
	System VARCHAR(255) NOT NULL PRIMARY KEY,
	Content {{if .sqlite3}}BLOB{{else}}LONGBLOB{{end}} NOT NULL
);
`))

// createTables creates any missing tables on the connection in
// db.sql.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

func (db *DB) prepareStatements() error {
	var err error
	// REPLACE is understood by both MySQL and SQLite.
	db.replace, err = db.sql.Prepare("REPLACE INTO Artifacts(System, Content) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.lookup, err = db.sql.Prepare("SELECT Content FROM Artifacts WHERE System = ?")
	if err != nil {
		return err
	}
	return nil
}

// Import stores content as the artifact of system, replacing any
// artifact already stored for it. Content that does not decode as a
// result artifact is rejected with a *resultfmt.MalformedArtifactError
// and nothing is stored.
func (db *DB) Import(ctx context.Context, system string, content []byte) error {
	if system == "" {
		return fmt.Errorf("import: empty system name")
	}
	if _, err := resultfmt.Decode(bytes.NewReader(content), system); err != nil {
		return err
	}
	_, err := db.replace.ExecContext(ctx, system, content)
	return err
}

// ImportDir imports every artifact in dir, as found by
// resultfmt.ArtifactPaths, and returns the imported system names. All
// artifacts are validated before any is stored.
func (db *DB) ImportDir(ctx context.Context, dir string) (systems []string, err error) {
	paths, err := resultfmt.ArtifactPaths(dir)
	if err != nil {
		return nil, fmt.Errorf("reading result directory: %w", err)
	}
	type artifact struct {
		system  string
		content []byte
	}
	var arts []artifact
	seen := make(map[string]string)
	for _, path := range paths {
		system := resultfmt.SystemName(path)
		if prev, ok := seen[system]; ok {
			return nil, &resultfmt.MalformedArtifactError{Path: path, Err: fmt.Errorf("system %q is also provided by %s", system, prev)}
		}
		seen[system] = path
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if _, err := resultfmt.Decode(bytes.NewReader(content), path); err != nil {
			return nil, err
		}
		arts = append(arts, artifact{system, content})
	}

	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	stmt := tx.StmtContext(ctx, db.replace)
	for _, a := range arts {
		if _, err = stmt.ExecContext(ctx, a.system, a.content); err != nil {
			return nil, err
		}
		systems = append(systems, a.system)
	}
	return systems, nil
}

// Artifact returns the stored content of system. ok is false if the
// store has no artifact for system.
func (db *DB) Artifact(ctx context.Context, system string) (content []byte, ok bool, err error) {
	err = db.lookup.QueryRowContext(ctx, system).Scan(&content)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return content, true, nil
}

// Systems returns the names of all stored systems, sorted.
func (db *DB) Systems(ctx context.Context) ([]string, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT System FROM Artifacts")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// LoadSystems decodes every stored artifact. A row that no longer
// decodes is reported as a *resultfmt.MalformedArtifactError whose
// path is the system name.
func (db *DB) LoadSystems() (resultfmt.Systems, error) {
	return db.LoadSystemsContext(context.Background())
}

// LoadSystemsContext is like LoadSystems but honors ctx.
func (db *DB) LoadSystemsContext(ctx context.Context) (resultfmt.Systems, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT System, Content FROM Artifacts")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	systems := make(resultfmt.Systems)
	for rows.Next() {
		var (
			name    string
			content []byte
		)
		if err := rows.Scan(&name, &content); err != nil {
			return nil, err
		}
		results, err := resultfmt.Decode(bytes.NewReader(content), name)
		if err != nil {
			return nil, err
		}
		systems[name] = results
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return systems, nil
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.replace.Close(); err != nil {
		return err
	}
	if err := db.lookup.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
