// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"strings"
	"testing"
)

func TestParsePredicate(t *testing.T) {
	check := func(query string, want string) {
		t.Helper()
		terms, err := ParsePredicate(query)
		if err != nil {
			t.Errorf("%s: unexpected error %s", query, err)
			return
		}
		var got []string
		for _, term := range terms {
			got = append(got, term.String())
		}
		if s := strings.Join(got, " "); s != want {
			t.Errorf("%s: got %s, want %s", query, s, want)
		}
	}
	checkErr := func(query, error string, pos int) {
		t.Helper()
		_, err := ParsePredicate(query)
		if se, _ := err.(*SyntaxError); se == nil || se.Msg != error || se.Off != pos {
			t.Errorf("%s: want error %s at %d; got %s", query, error, pos, err)
		}
	}
	check(``, ``)
	check(`*`, ``)
	check(`  `, ``)
	check(`a:b`, `a:b`)
	check(`a : b`, `a:b`)
	check(`a:b c:4`, `a:b c:4`)
	check(`a:b AND c:4`, `a:b c:4`)
	check(`a:"b c"`, `a:"b c"`)
	check(`a:"4"`, `a:"4"`)
	check(`"a b":c`, `"a b":c`)
	check(`a:-1`, `a:-1`)
	check(`a-b:c`, `a-b:c`)
	check(`a*b:c`, `a*b:c`)

	checkErr(`a`, "expected key:value", 0)
	checkErr(`a:`, "expected key:value", 0)
	checkErr(`a:b c`, "expected key:value", 4)
	checkErr(`AND a:b`, "expected key:value", 0)
	checkErr(`a:b AND`, "expected key:value", 7)
	checkErr(`a:b a:c`, "duplicate key a", 4)
	checkErr(`a:"b`, "missing end quote", 2)
	checkErr(`a:"\z"`, "bad escape sequence", 2)
	checkErr(`* a:b`, "unexpected a after *", 2)
}

func TestParsePredicateTerms(t *testing.T) {
	terms, err := ParsePredicate(`access_size:256 random_distribution:"zipf"`)
	if err != nil {
		t.Fatal(err)
	}
	if len(terms) != 2 {
		t.Fatalf("got %d terms, want 2", len(terms))
	}
	if got := terms[0]; got.Key != "access_size" || got.Value != "256" || got.Quoted || got.Off != 0 {
		t.Errorf("term 0: got %+v", got)
	}
	if got := terms[1]; got.Key != "random_distribution" || got.Value != "zipf" || !got.Quoted || got.Off != 16 {
		t.Errorf("term 1: got %+v", got)
	}
}

func TestSyntaxErrorCaret(t *testing.T) {
	_, err := ParsePredicate(`a:b c`)
	want := "syntax error: expected key:value\n\ta:b c\n\t    ^"
	if err == nil || err.Error() != want {
		t.Errorf("got %q, want %q", err, want)
	}
}
