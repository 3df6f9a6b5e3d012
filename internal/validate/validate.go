// Package validate provides the structural checks applied to raw client
// input before any query is composed. Request bodies are decoded with
// json.Decoder.UseNumber so numeric values arrive as json.Number and can be
// checked for integer shape without float rounding.
package validate

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
)

// integerPattern matches an optional leading minus followed by one or more
// digits and nothing else.
var integerPattern = regexp.MustCompile(`^-?[0-9]+$`)

// IsIntegerString reports whether v is a string or json.Number whose textual
// form is an integer. Any other type fails.
func IsIntegerString(v any) bool {
	switch s := v.(type) {
	case string:
		return integerPattern.MatchString(s)
	case json.Number:
		return integerPattern.MatchString(s.String())
	default:
		return false
	}
}

// FirstMissingKey returns the first key, in declaration order, that is
// absent from body. The second return is false when all keys are present.
// Only the first missing key is ever reported so the resulting message is
// deterministic.
func FirstMissingKey(body map[string]any, keys ...string) (string, bool) {
	for _, key := range keys {
		if _, ok := body[key]; !ok {
			return key, true
		}
	}
	return "", false
}

// IntegerValue returns the int64 value of v when v passes IsIntegerString.
func IntegerValue(v any) (int64, bool) {
	if !IsIntegerString(v) {
		return 0, false
	}
	var text string
	switch s := v.(type) {
	case string:
		text = s
	case json.Number:
		text = s.String()
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// IsNonEmptyString reports whether v is a string whose trimmed form is
// non-empty.
func IsNonEmptyString(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) != ""
}

// AsIntegerArray converts v into a slice of int64 if v is an ordered
// sequence whose every element is an integer. Numeric strings and fractional
// numbers are rejected. A nil slice with ok=true is returned for an empty
// array.
func AsIntegerArray(v any) ([]int64, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}
	out := make([]int64, 0, len(items))
	for _, item := range items {
		num, ok := item.(json.Number)
		if !ok || !integerPattern.MatchString(num.String()) {
			return nil, false
		}
		n, err := num.Int64()
		if err != nil {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}
