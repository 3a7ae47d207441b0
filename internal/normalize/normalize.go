// Package normalize reduces the payload shapes accepted from the fitness API
// to a single ordered record sequence.
package normalize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/octofit/dashboard/internal/models"
)

// ResultsKey is the pagination envelope key holding the record list
const ResultsKey = "results"

// Shape names the rule that produced a collection
type Shape string

const (
	ShapeArray        Shape = "array"
	ShapeEnvelope     Shape = "envelope"
	ShapeUnrecognized Shape = "unrecognized"
)

// Normalize returns the ordered record sequence held by payload.
// Arrays are returned unchanged, envelopes yield their results list and
// any other shape yields an empty collection.
func Normalize(payload any) models.Collection {
	records, _ := Inspect(payload)
	return records
}

// Inspect is Normalize plus the shape that was matched
func Inspect(payload any) (models.Collection, Shape) {
	if seq, ok := asSequence(payload); ok {
		return seq, ShapeArray
	}

	if obj, ok := asObject(payload); ok {
		if results, present := obj[ResultsKey]; present {
			if seq, ok := asSequence(results); ok {
				return seq, ShapeEnvelope
			}
		}
	}

	return models.Collection{}, ShapeUnrecognized
}

// Describe summarises an unrecognized payload for diagnostics
func Describe(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case map[string]any:
		return describeObject(v)
	case models.Record:
		return describeObject(v)
	case string:
		return "string"
	case bool:
		return "boolean"
	default:
		if _, ok := asSequence(v); ok {
			return "array"
		}
		return fmt.Sprintf("%T", v)
	}
}

func describeObject(obj map[string]any) string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	detail := "object with keys [" + strings.Join(keys, ", ") + "]"
	if results, ok := obj[ResultsKey]; ok {
		detail += fmt.Sprintf("; %s is %s", ResultsKey, Describe(results))
	}
	return detail
}

func asSequence(v any) (models.Collection, bool) {
	switch seq := v.(type) {
	case models.Collection:
		return seq, true
	case []any:
		return models.Collection(seq), true
	case []map[string]any:
		out := make(models.Collection, len(seq))
		for i, r := range seq {
			out[i] = r
		}
		return out, true
	default:
		return nil, false
	}
}

func asObject(v any) (map[string]any, bool) {
	switch obj := v.(type) {
	case map[string]any:
		return obj, true
	case models.Record:
		return obj, true
	default:
		return nil, false
	}
}
