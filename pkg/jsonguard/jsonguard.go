// Package jsonguard converts loosely-typed JSON column values into known
// shapes before they enter application state. A value that fails its guard is
// dropped in favor of the caller's zero value; nothing here ever panics.
package jsonguard

import "encoding/json"

// Guard validates an untyped value structurally and, when it matches, converts
// it to T. Guards check required fields only; primitive field types are not
// deep-checked (a documented limitation of the stored contract, kept as-is).
type Guard[T any] func(v any) (T, bool)

// Parse resolves raw into T.
//
// If raw already satisfies the guard it is returned unchanged. If raw is a
// JSON-encoded string or byte slice (drivers hand JSON columns back as bytes),
// it is decoded and the result guarded. Everything else, including malformed
// JSON and shape mismatches, yields ok=false.
func Parse[T any](raw any, guard Guard[T]) (T, bool) {
	var zero T
	if raw == nil {
		return zero, false
	}

	if v, ok := guard(raw); ok {
		return v, true
	}

	var encoded []byte
	switch s := raw.(type) {
	case string:
		encoded = []byte(s)
	case []byte:
		encoded = s
	default:
		return zero, false
	}

	var decoded any
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return zero, false
	}
	return guard(decoded)
}

// Decode is a convenience guard builder: it re-encodes a structurally valid
// value into T after check passes. check receives the decoded generic value.
func Decode[T any](check func(v any) bool) Guard[T] {
	return func(v any) (T, bool) {
		var zero T
		if t, ok := v.(T); ok {
			return t, true
		}
		if !check(v) {
			return zero, false
		}
		b, err := json.Marshal(v)
		if err != nil {
			return zero, false
		}
		var out T
		if err := json.Unmarshal(b, &out); err != nil {
			return zero, false
		}
		return out, true
	}
}
