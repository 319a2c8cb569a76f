package collection

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is a single API record: field name to scalar value.
// The shape is owned by the remote API and is not validated locally.
type Record map[string]any

// epoch is the timestamp used for missing or unparseable dates.
var epoch = time.Unix(0, 0).UTC()

// dateLayouts are tried in order when coercing a string to a timestamp.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Has reports whether the field is present and non-null.
func (r Record) Has(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}

// Text returns the field as display text. Missing fields yield "".
func (r Record) Text(field string) string {
	return Display(r[field])
}

// Number returns the field coerced to a number.
// PRE: none
// POST: missing or non-numeric values yield 0
func (r Record) Number(field string) float64 {
	return toNumber(r[field])
}

// Time returns the field coerced to a timestamp.
// PRE: none
// POST: missing or unparseable values yield the Unix epoch
func (r Record) Time(field string) time.Time {
	return toTime(r[field])
}

// Display renders a scalar the way it arrived on the wire.
func Display(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func toNumber(v any) float64 {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0
		}
		f = n
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = n
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func toTime(v any) time.Time {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return epoch
		}
		for _, layout := range dateLayouts {
			if ts, err := time.Parse(layout, s); err == nil {
				return ts
			}
		}
		return epoch
	case json.Number, float64, int, int64:
		// Numeric dates are milliseconds since the epoch.
		return time.UnixMilli(int64(toNumber(t))).UTC()
	default:
		return epoch
	}
}
