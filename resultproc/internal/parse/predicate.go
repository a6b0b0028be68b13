// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package parse implements parsing of the predicate syntax used to
// select benchmark runs by configuration.
//
// A predicate is a whitespace-separated list of key:value terms, all
// of which must hold. Terms may optionally be joined by AND. Keys and
// values are bare words or Go-style quoted strings. "*" on its own,
// or an empty string, is the predicate that matches everything.
package parse

import "strconv"

// A Term is a single key:value term of a predicate.
type Term struct {
	Key   string
	Value string
	// Quoted is set if Value was written as a quoted string. Quoted
	// values are always strings; bare values are read as JSON
	// literals by the caller.
	Quoted bool
	Off    int // Byte offset of Key in the query
}

func (t Term) String() string {
	v := t.Value
	if t.Quoted {
		v = strconv.Quote(v)
	} else {
		v = QuoteWord(v)
	}
	return QuoteWord(t.Key) + ":" + v
}

// ParsePredicate parses a predicate expression into its terms, in the
// order written. Each key may appear only once.
func ParsePredicate(q string) ([]Term, error) {
	toks, err := lex(q)
	if err != nil {
		return nil, err
	}
	if toks[0].kind == '*' {
		if end := toks[1]; end.kind != tokEOF {
			return nil, &SyntaxError{q, end.off, "unexpected " + end.text + " after *"}
		}
		return nil, nil
	}

	isWord := func(t token) bool { return t.kind == tokWord || t.kind == tokQuoted }
	var terms []Term
	seen := make(map[string]bool)
	for i := 0; toks[i].kind != tokEOF; i += 3 {
		if len(terms) > 0 && toks[i].kind == tokAnd {
			i++
		}
		key := toks[i]
		// toks ends in tokEOF, so checking kinds in order stays in
		// bounds.
		if !isWord(key) || toks[i+1].kind != ':' || !isWord(toks[i+2]) {
			return nil, &SyntaxError{q, key.off, "expected key:value"}
		}
		if seen[key.text] {
			return nil, &SyntaxError{q, key.off, "duplicate key " + QuoteWord(key.text)}
		}
		seen[key.text] = true
		val := toks[i+2]
		terms = append(terms, Term{Key: key.text, Value: val.text, Quoted: val.kind == tokQuoted, Off: key.off})
	}
	return terms, nil
}
