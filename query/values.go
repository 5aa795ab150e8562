// Copyright 2026 Northern.tech AS
//
//    Licensed under the Apache License, Version 2.0 (the "License");
//    you may not use this file except in compliance with the License.
//    You may obtain a copy of the License at
//
//        http://www.apache.org/licenses/LICENSE-2.0
//
//    Unless required by applicable law or agreed to in writing, software
//    distributed under the License is distributed on an "AS IS" BASIS,
//    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//    See the License for the specific language governing permissions and
//    limitations under the License.

package query

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimeLayout is the layout timestamps are rendered in for string
// comparisons and LIKE matching.
const TimeLayout = "2006-01-02 15:04:05"

var timeLayouts = []string{
	TimeLayout,
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
}

// value is a field or filter value normalized to a Kind.
type value struct {
	kind Kind
	s    string
	n    float64
	t    time.Time
	b    bool
}

// normalize converts v to a value of the given kind. The second return is
// false when v is nil or cannot be represented in that kind.
func normalize(kind Kind, v interface{}) (value, bool) {
	if isNil(v) {
		return value{}, false
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr {
		v = rv.Elem().Interface()
	}
	switch kind {
	case KindNumber:
		n, ok := toNumber(v)
		return value{kind: kind, n: n}, ok
	case KindTime:
		t, ok := toTime(v)
		return value{kind: kind, t: t}, ok
	case KindBool:
		b, ok := toBool(v)
		return value{kind: kind, b: b}, ok
	default:
		return value{kind: KindString, s: toString(v)}, true
	}
}

func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

func toNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func toTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case string:
		s := strings.TrimSpace(t)
		for _, layout := range timeLayouts {
			if parsed, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return parsed.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

func toBool(v interface{}) (bool, bool) {
	switch b := v.(type) {
	case bool:
		return b, true
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		return parsed, err == nil
	}
	if n, ok := toNumber(v); ok {
		switch n {
		case 0:
			return false, true
		case 1:
			return true, true
		}
	}
	return false, false
}

func toString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case time.Time:
		return s.UTC().Format(TimeLayout)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		if s {
			return "1"
		}
		return "0"
	}
	return fmt.Sprint(v)
}

// render is the textual form of a value, used by LIKE.
func (v value) render() string {
	switch v.kind {
	case KindNumber:
		return toString(v.n)
	case KindTime:
		return toString(v.t)
	case KindBool:
		return toString(v.b)
	}
	return v.s
}

// compare returns -1, 0 or 1; both values must be of the same kind.
func compare(a, b value) int {
	switch a.kind {
	case KindNumber:
		switch {
		case a.n < b.n:
			return -1
		case a.n > b.n:
			return 1
		}
		return 0
	case KindTime:
		switch {
		case a.t.Before(b.t):
			return -1
		case a.t.After(b.t):
			return 1
		}
		return 0
	case KindBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b:
			return -1
		}
		return 1
	}
	return strings.Compare(a.s, b.s)
}

// likePattern compiles an SQL LIKE pattern: '%' matches any run of
// characters, '_' exactly one, a backslash escapes the next character.
// Matching is case-insensitive.
func likePattern(pattern string) *regexp.Regexp {
	var expr strings.Builder
	expr.WriteString("(?is)^")
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			expr.WriteString(regexp.QuoteMeta(string(r)))
			escaped = false
		case r == '\\':
			escaped = true
		case r == '%':
			expr.WriteString(".*")
		case r == '_':
			expr.WriteString(".")
		default:
			expr.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	if escaped {
		expr.WriteString(regexp.QuoteMeta(`\`))
	}
	expr.WriteString("$")
	return regexp.MustCompile(expr.String())
}

// listOf splits an IN operand into its members: slices and arrays are
// taken element-wise, strings are comma separated.
func listOf(v interface{}) []interface{} {
	if s, ok := v.(string); ok {
		parts := strings.Split(s, ",")
		list := make([]interface{}, len(parts))
		for i, p := range parts {
			list[i] = strings.TrimSpace(p)
		}
		return list
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		list := make([]interface{}, rv.Len())
		for i := range list {
			list[i] = rv.Index(i).Interface()
		}
		return list
	}
	return []interface{}{v}
}
