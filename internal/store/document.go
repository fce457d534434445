package store

import (
	"time"
)

// Document is one record of a collection. Values read back from a backend
// are strings, bools, float64/int64 numbers, time.Time (Mongo dates) or
// nested documents; times written through the libSQL backend come back as
// RFC 3339 strings.
type Document map[string]any

// String returns the value at key when it is a non-empty string.
func (d Document) String(key string) (string, bool) {
	s, ok := d[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func (d Document) Bool(key string) (bool, bool) {
	switch v := d[key].(type) {
	case bool:
		return v, true
	case int64:
		return v != 0, true
	case float64:
		return v != 0, true
	}
	return false, false
}

func (d Document) Number(key string) (float64, bool) {
	switch v := d[key].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

func (d Document) Time(key string) (time.Time, bool) {
	switch v := d[key].(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// clone returns a shallow copy of d with extra merged over it.
func (d Document) clone(extra Document) Document {
	out := make(Document, len(d)+len(extra))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}
