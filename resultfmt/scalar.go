// Copyright 2026 The PerMA-Bench Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resultfmt

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/goccy/go-json"
)

// A Kind is the JSON type of a Scalar.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Int
	Float
	String

	// Raw is an object or array, kept as compact JSON. Parallel
	// benchmarks record one nested config object per workload.
	Raw
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Raw:
		return "raw"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Scalar is a single JSON scalar value that retains the type it was
// read with. Integers stay integers and quoted strings stay strings,
// so "4" and 4 are different values.
//
// Objects and arrays decode to a Raw Scalar holding their canonical
// JSON text. Raw values are equal only to identical Raw values, so no
// predicate parsed from a query ever matches one.
//
// The zero Scalar is null.
type Scalar struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
}

// IntScalar returns an integer Scalar.
func IntScalar(v int64) Scalar { return Scalar{kind: Int, i: v} }

// FloatScalar returns a floating-point Scalar.
func FloatScalar(v float64) Scalar { return Scalar{kind: Float, f: v} }

// StringScalar returns a string Scalar.
func StringScalar(v string) Scalar { return Scalar{kind: String, s: v} }

// BoolScalar returns a boolean Scalar.
func BoolScalar(v bool) Scalar { return Scalar{kind: Bool, b: v} }

// ScalarOf converts a decoded Go value, such as one produced by a YAML
// or JSON decoder into an interface{}, to a Scalar. It fails for
// anything that is not a scalar.
func ScalarOf(v interface{}) (Scalar, error) {
	switch v := v.(type) {
	case nil:
		return Scalar{}, nil
	case bool:
		return BoolScalar(v), nil
	case int:
		return IntScalar(int64(v)), nil
	case int32:
		return IntScalar(int64(v)), nil
	case int64:
		return IntScalar(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return FloatScalar(float64(v)), nil
		}
		return IntScalar(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return FloatScalar(float64(v)), nil
		}
		return IntScalar(int64(v)), nil
	case float32:
		return FloatScalar(float64(v)), nil
	case float64:
		return FloatScalar(v), nil
	case string:
		return StringScalar(v), nil
	case json.Number:
		return parseNumber(string(v))
	}
	return Scalar{}, fmt.Errorf("%T is not a scalar", v)
}

// ParseScalar interprets word the way a bare JSON literal would be
// read: integers, floats, true, false and null get their JSON types
// and anything else is a string.
func ParseScalar(word string) Scalar {
	switch word {
	case "null":
		return Scalar{}
	case "true":
		return BoolScalar(true)
	case "false":
		return BoolScalar(false)
	}
	if s, err := parseNumber(word); err == nil {
		return s
	}
	return StringScalar(word)
}

func parseNumber(s string) (Scalar, error) {
	if !isJSONNumber(s) {
		return Scalar{}, fmt.Errorf("invalid number %q", s)
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return IntScalar(i), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return Scalar{}, fmt.Errorf("invalid number %q", s)
	}
	return FloatScalar(f), nil
}

// isJSONNumber reports whether s follows the JSON number grammar.
// strconv alone would also accept "Inf", "NaN", hex floats and
// underscores.
func isJSONNumber(s string) bool {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	digits := func() int {
		start := i
		for i < len(s) && '0' <= s[i] && s[i] <= '9' {
			i++
		}
		return i - start
	}
	if n := digits(); n == 0 || (n > 1 && s[i-n] == '0') {
		return false
	}
	if i < len(s) && s[i] == '.' {
		i++
		if digits() == 0 {
			return false
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if digits() == 0 {
			return false
		}
	}
	return i == len(s)
}

// Kind returns the JSON type of s.
func (s Scalar) Kind() Kind { return s.kind }

// IsNumber reports whether s is an Int or a Float.
func (s Scalar) IsNumber() bool { return s.kind == Int || s.kind == Float }

// Float returns s as a float64 if s is a number.
func (s Scalar) Float() (float64, bool) {
	switch s.kind {
	case Int:
		return float64(s.i), true
	case Float:
		return s.f, true
	}
	return 0, false
}

// Equal reports whether s and o are the same value. Numbers compare
// numerically regardless of whether they were written as integers or
// floats; all other kinds must match exactly.
func (s Scalar) Equal(o Scalar) bool {
	if s.kind == Int && o.kind == Int {
		return s.i == o.i
	}
	if s.IsNumber() && o.IsNumber() {
		a, _ := s.Float()
		b, _ := o.Float()
		return a == b
	}
	if s.kind != o.kind {
		return false
	}
	switch s.kind {
	case Bool:
		return s.b == o.b
	case String, Raw:
		return s.s == o.s
	}
	return true
}

// Compare orders two Scalars: null, then booleans, then numbers in
// numeric order, then strings in lexical order, then Raw values by
// their JSON text. It returns -1, 0, or +1.
func Compare(a, b Scalar) int {
	ra, rb := a.rank(), b.rank()
	if ra != rb {
		if ra < rb {
			return -1
		}
		return 1
	}
	switch ra {
	case 1:
		if a.b == b.b {
			return 0
		} else if !a.b {
			return -1
		}
		return 1
	case 2:
		if a.kind == Int && b.kind == Int {
			switch {
			case a.i < b.i:
				return -1
			case a.i > b.i:
				return 1
			}
			return 0
		}
		x, _ := a.Float()
		y, _ := b.Float()
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
		return 0
	case 3, 4:
		switch {
		case a.s < b.s:
			return -1
		case a.s > b.s:
			return 1
		}
	}
	return 0
}

func (s Scalar) rank() int {
	switch s.kind {
	case Bool:
		return 1
	case Int, Float:
		return 2
	case String:
		return 3
	case Raw:
		return 4
	}
	return 0
}

// String formats s without quoting, the way it would appear in a
// chart label or a file name.
func (s Scalar) String() string {
	switch s.kind {
	case Bool:
		return strconv.FormatBool(s.b)
	case Int:
		return strconv.FormatInt(s.i, 10)
	case Float:
		return strconv.FormatFloat(s.f, 'g', -1, 64)
	case String, Raw:
		return s.s
	}
	return "null"
}

// Interface returns s as a plain Go value: nil, bool, int64, float64,
// string, or json.RawMessage for Raw.
func (s Scalar) Interface() interface{} {
	switch s.kind {
	case Bool:
		return s.b
	case Int:
		return s.i
	case Float:
		return s.f
	case String:
		return s.s
	case Raw:
		return json.RawMessage(s.s)
	}
	return nil
}

// MarshalJSON encodes s with its original JSON type.
func (s Scalar) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Interface())
}

// UnmarshalJSON decodes a JSON value. Scalars keep their type and
// objects and arrays become Raw.
func (s *Scalar) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty JSON value")
	}
	switch data[0] {
	case '{', '[':
		v, err := canonicalJSON(data)
		if err != nil {
			return err
		}
		*s = Scalar{kind: Raw, s: v}
		return nil
	case '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = StringScalar(str)
		return nil
	}
	switch string(data) {
	case "null":
		*s = Scalar{}
		return nil
	case "true":
		*s = BoolScalar(true)
		return nil
	case "false":
		*s = BoolScalar(false)
		return nil
	}
	v, err := parseNumber(string(data))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// canonicalJSON re-encodes an object or array compactly with sorted
// object keys, so that equal values have equal text.
func canonicalJSON(data []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return "", err
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
