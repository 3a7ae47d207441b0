package resource

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/octofit/dashboard/internal/models"
)

// A field is present when its key exists and its value is not JSON null.
// Zero and the empty string count as present.

// Lookup returns the value of the first present key, in order
func Lookup(rec models.Record, keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := rec[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// TextOr returns the first present key rendered as text, else fallback
func TextOr(rec models.Record, fallback string, keys ...string) string {
	if v, ok := Lookup(rec, keys...); ok {
		return Text(v)
	}
	return fallback
}

// NumberOr returns the first present key if it holds a number. A present
// value that is not numeric yields fallback; later keys are not consulted.
func NumberOr(rec models.Record, fallback json.Number, keys ...string) json.Number {
	v, ok := Lookup(rec, keys...)
	if !ok {
		return fallback
	}
	if n, ok := asNumber(v); ok {
		return n
	}
	return fallback
}

// CountOr returns the first present key if it holds a whole number that fits
// in an int, else fallback. Later keys are not consulted.
func CountOr(rec models.Record, fallback int, keys ...string) int {
	v, ok := Lookup(rec, keys...)
	if !ok {
		return fallback
	}
	if n, ok := asCount(v); ok {
		return n
	}
	return fallback
}

// ListLen returns the length of the first present key holding a list
func ListLen(rec models.Record, keys ...string) (int, bool) {
	for _, k := range keys {
		if list, ok := rec[k].([]any); ok {
			return len(list), true
		}
	}
	return 0, false
}

// DateOr renders the first present key as a calendar date (2006-01-02).
// Values that do not parse as ISO-8601 are rendered verbatim.
func DateOr(rec models.Record, fallback string, keys ...string) string {
	v, ok := Lookup(rec, keys...)
	if !ok {
		return fallback
	}
	s := Text(v)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}

// Text renders a decoded JSON value for display
func Text(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

func asCount(v any) (int, bool) {
	n, ok := asNumber(v)
	if !ok {
		return 0, false
	}
	if i, err := n.Int64(); err == nil {
		if i < math.MinInt || i > math.MaxInt {
			return 0, false
		}
		return int(i), true
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f >= math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}

func asNumber(v any) (json.Number, bool) {
	switch t := v.(type) {
	case json.Number:
		return t, true
	case float64:
		return json.Number(strconv.FormatFloat(t, 'f', -1, 64)), true
	case int:
		return json.Number(strconv.Itoa(t)), true
	case int64:
		return json.Number(strconv.FormatInt(t, 10)), true
	case string:
		s := strings.TrimSpace(t)
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return json.Number(s), true
		}
	}
	return "", false
}
