package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeOptions_CallerWins(t *testing.T) {
	t.Parallel()

	defaults := Options{"k_factor": 1.0, "method": "raymer"}
	merged, err := MergeOptions("test.factory", defaults, Options{"k_factor": 0.95})

	require.NoError(t, err)
	assert.Equal(t, 0.95, merged["k_factor"])
	assert.Equal(t, "raymer", merged["method"])
	// Inputs stay untouched.
	assert.Equal(t, 1.0, defaults["k_factor"])
}

func TestMergeOptions_UndeclaredKey(t *testing.T) {
	t.Parallel()

	_, err := MergeOptions("test.factory", Options{"a": 1, "b": 2}, Options{"c": 3})

	var unknownErr *UnknownOptionError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "test.factory", unknownErr.FactoryName)
	assert.Equal(t, "c", unknownErr.OptionName)
	assert.Equal(t, []string{"a", "b"}, unknownErr.Declared)
}

func TestMergeOptions_NilOverrides(t *testing.T) {
	t.Parallel()

	merged, err := MergeOptions("test.factory", Options{"a": 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, Options{"a": 1}, merged)
}

func TestOptionsAccessors(t *testing.T) {
	t.Parallel()

	opts := Options{"f": 2.5, "i": 3, "s": "text", "b": true}

	assert.Equal(t, 2.5, opts.Float("f", 0))
	assert.Equal(t, 3.0, opts.Float("i", 0))
	assert.Equal(t, 9.0, opts.Float("missing", 9.0))
	assert.Equal(t, "text", opts.String("s", "fallback"))
	assert.Equal(t, "fallback", opts.String("missing", "fallback"))
	assert.True(t, opts.Bool("b", false))
	assert.False(t, opts.Bool("missing", false))
}
