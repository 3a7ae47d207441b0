package models

// Record is one untyped JSON object as returned by the fitness API
type Record map[string]any

// Collection is an ordered sequence of untyped records in server order.
// Elements are kept as decoded; non-object elements are tolerated.
type Collection []any

// AsRecord returns v as a Record, or an empty Record if v is not a JSON object
func AsRecord(v any) Record {
	switch r := v.(type) {
	case Record:
		return r
	case map[string]any:
		return Record(r)
	default:
		return Record{}
	}
}
