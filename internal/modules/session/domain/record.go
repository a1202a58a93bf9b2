package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// RawRecord is a stored session in whatever schema wrote it. Normalize is the
// only place that inspects its shape.
type RawRecord map[string]any

// Shape names the stored variants a RawRecord can take.
type Shape string

const (
	ShapeCanonical    Shape = "canonical"
	ShapeEndpoints    Shape = "endpoints"
	ShapeLegacyDate   Shape = "legacy-date"
	ShapeDurationOnly Shape = "duration-only"
	ShapeEmpty        Shape = "empty"
)

// Shape classifies r for diagnostics. It never affects normalization.
func (r RawRecord) Shape() Shape {
	_, hasStart := r.millis("startAt")
	_, hasEnd := r.millis("endAt")
	_, hasDuration := r.millis("durationMs")
	_, hasID := r["id"].(string)
	switch {
	case hasStart && hasEnd && hasDuration && hasID:
		return ShapeCanonical
	case hasEnd:
		return ShapeEndpoints
	case r.has("date"):
		return ShapeLegacyDate
	case hasDuration:
		return ShapeDurationOnly
	case hasStart:
		return ShapeEndpoints
	default:
		return ShapeEmpty
	}
}

func (r RawRecord) has(key string) bool {
	v, ok := r[key]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString {
		return strings.TrimSpace(s) != ""
	}
	return true
}

// millis reads key as a non-zero integer millisecond value. Zero, missing and
// non-numeric values are reported as absent.
func (r RawRecord) millis(key string) (int64, bool) {
	n, ok := toInt64(r[key])
	if !ok || n == 0 {
		return 0, false
	}
	return n, true
}

func (r RawRecord) text(key string) string {
	s, _ := r[key].(string)
	return s
}

func (r RawRecord) tags() []string {
	switch v := r["tags"].(type) {
	case []string:
		return CleanTags(v)
	case []any:
		tags := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
		return CleanTags(tags)
	default:
		return []string{}
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int64(math.Round(n)), true
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return toInt64(f)
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, false
		}
		return toInt64(f)
	default:
		return 0, false
	}
}
