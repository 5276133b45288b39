package jsonguard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reading struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

var readingsGuard = Decode[[]reading](func(v any) bool {
	arr, ok := v.([]any)
	if !ok {
		return false
	}
	for _, el := range arr {
		obj, ok := el.(map[string]any)
		if !ok {
			return false
		}
		if _, ok := obj["date"]; !ok {
			return false
		}
	}
	return true
})

func TestParseTypedValuePassesThrough(t *testing.T) {
	in := []reading{{Date: "2025-01-01", Value: 72}}

	out, ok := Parse[[]reading](in, readingsGuard)
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestParseDecodesJSONString(t *testing.T) {
	out, ok := Parse[[]reading](`[{"date":"2025-01-01","value":72}]`, readingsGuard)
	require.True(t, ok)
	require.Len(t, out, 1)
	assert.Equal(t, "2025-01-01", out[0].Date)
	assert.Equal(t, 72.0, out[0].Value)
}

func TestParseDecodesByteSlice(t *testing.T) {
	out, ok := Parse[[]reading]([]byte(`[{"date":"2025-01-02","value":68}]`), readingsGuard)
	require.True(t, ok)
	require.Len(t, out, 1)
	assert.Equal(t, 68.0, out[0].Value)
}

func TestParseRejectsWithoutPanicking(t *testing.T) {
	cases := map[string]any{
		"nil":            nil,
		"number":         42,
		"object":         map[string]any{"date": "2025-01-01"},
		"malformed json": `[{"date":`,
		"wrong shape":    `{"date":"2025-01-01"}`,
		"missing field":  `[{"value":72}]`,
		"mixed elements": `[{"date":"2025-01-01"},"oops"]`,
	}

	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			assert.NotPanics(t, func() {
				out, ok := Parse[[]reading](raw, readingsGuard)
				assert.False(t, ok)
				assert.Nil(t, out)
			})
		})
	}
}

func TestParseEmptyArray(t *testing.T) {
	out, ok := Parse[[]reading](`[]`, readingsGuard)
	require.True(t, ok)
	assert.Empty(t, out)
}

func TestDecodeDoesNotDeepCheckPrimitives(t *testing.T) {
	// Required fields present is enough; element field types are not
	// validated beyond what the final unmarshal tolerates.
	out, ok := Parse[[]reading](`[{"date":"2025-01-01","extra":true}]`, readingsGuard)
	require.True(t, ok)
	require.Len(t, out, 1)
	assert.Zero(t, out[0].Value)
}
