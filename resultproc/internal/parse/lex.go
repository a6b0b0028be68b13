// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package parse

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// A SyntaxError is an error produced by parsing a malformed predicate.
type SyntaxError struct {
	Query string // The original query string
	Off   int    // Byte offset of the error in Query
	Msg   string // Error message
}

func (e *SyntaxError) Error() string {
	// The caret goes under the Off'th byte, counted in printed runes.
	pos := 0
	for i, r := range e.Query {
		if i >= e.Off {
			break
		}
		if unicode.IsGraphic(r) {
			pos++
		}
	}
	return fmt.Sprintf("syntax error: %s\n\t%s\n\t%*s^", e.Msg, e.Query, pos, "")
}

// Token kinds. Operators use their own character as kind.
const (
	tokEOF    = 0
	tokWord   = 'w'
	tokQuoted = 'q'
	tokAnd    = 'A'
)

type token struct {
	kind byte
	off  int
	// text is the token contents, unescaped for quoted words.
	text string
}

// lex splits q into tokens. The last token is always tokEOF, positioned
// at the end of q.
//
// ':' is always an operator. '*' is an operator only at the start of a
// token, so "a*b" is a single word. '-' is never special, so negative
// numbers can be written bare.
func lex(q string) ([]token, error) {
	var toks []token
	for i := 0; i < len(q); {
		r, size := utf8.DecodeRuneInString(q[i:])
		switch {
		case unicode.IsSpace(r):
			i += size
		case r == ':' || r == '*':
			toks = append(toks, token{byte(r), i, q[i : i+1]})
			i++
		case r == '"':
			end := i + 1
			for end < len(q) && (q[end] != '"' || q[end-1] == '\\') {
				end++
			}
			if end == len(q) {
				return nil, &SyntaxError{q, i, "missing end quote"}
			}
			word, err := strconv.Unquote(q[i : end+1])
			if err != nil {
				return nil, &SyntaxError{q, i, "bad escape sequence"}
			}
			toks = append(toks, token{tokQuoted, i, word})
			i = end + 1
		default:
			end := i
			for end < len(q) {
				r, size := utf8.DecodeRuneInString(q[end:])
				if unicode.IsSpace(r) || r == ':' {
					break
				}
				end += size
			}
			kind := byte(tokWord)
			if q[i:end] == "AND" {
				kind = tokAnd
			}
			toks = append(toks, token{kind, i, q[i:end]})
			i = end
		}
	}
	return append(toks, token{tokEOF, len(q), ""}), nil
}

// QuoteWord returns a string that lexes as the single word s.
func QuoteWord(s string) string {
	if s == "" || s == "AND" || s[0] == '*' {
		return strconv.Quote(s)
	}
	for _, r := range s {
		if r == '"' || r == ':' || unicode.IsSpace(r) || !unicode.IsGraphic(r) {
			return strconv.Quote(s)
		}
	}
	return s
}
