//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// Mutation edits a request body that was decoded into a generic map.
type Mutation func(m map[string]any)

// JSONMap encodes v the way a client would send it and applies muts, so a
// valid request DTO can be broken one field at a time.
func JSONMap(t *testing.T, v any, muts ...Mutation) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	for _, mut := range muts {
		if mut != nil {
			mut(m)
		}
	}
	return m
}

// Field sets key to value, or removes key when value is nil.
func Field(key string, value any) Mutation {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}

// Fields applies several mutations as one.
func Fields(muts ...Mutation) Mutation {
	return func(m map[string]any) {
		for _, mut := range muts {
			mut(m)
		}
	}
}
