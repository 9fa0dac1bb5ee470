package util

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoose_FencedAndPadded(t *testing.T) {
	raw := "Here is the result:\n```json\n[{\"a\":1},]\n```\nThanks!"

	v, err := ParseLoose(raw)
	require.NoError(t, err)
	assert.Equal(t, []any{map[string]any{"a": float64(1)}}, v)
}

func TestParseLoose_RoundTrip(t *testing.T) {
	original := map[string]any{
		"questionNumber": float64(1),
		"parts": []any{
			map[string]any{"label": "a", "marks": float64(4)},
		},
	}
	encoded, err := json.Marshal(original)
	require.NoError(t, err)

	// Fence it, pad it with prose, and sneak in a trailing comma.
	padded := "Sure! Here you go:\n```json\n" + string(encoded[:len(encoded)-1]) + ",}\n```\nLet me know if you need more."

	v, err := ParseLoose(padded)
	require.NoError(t, err)
	assert.Equal(t, original, v)
}

func TestCleanJSON_IdempotentOnCleanInput(t *testing.T) {
	clean := `{"a": [1, 2, 3], "b": "text"}`
	once := CleanJSON(clean)
	assert.Equal(t, clean, once)
	assert.Equal(t, once, CleanJSON(once))

	v, err := ParseLoose(clean)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": []any{float64(1), float64(2), float64(3)}, "b": "text"}, v)
}

func TestCleanJSON_StripsComments(t *testing.T) {
	raw := "{\n  // the answer\n  \"a\": 1, /* inline */ \"b\": 2\n}"

	v, err := ParseLoose(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1), "b": float64(2)}, v)
}

func TestParseLoose_ExtractsEmbeddedCandidate(t *testing.T) {
	// Strict parsing fails on the whole text; the scanner should find the
	// second, valid object.
	raw := `{not json} {"ok": true}`

	v, err := ParseLoose(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, v)
}

func TestParseLoose_NoJSON(t *testing.T) {
	_, err := ParseLoose("I am sorry, I cannot help with that.")
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.NotNil(t, perr.Err)
}

func TestParseLoose_SnippetIsBounded(t *testing.T) {
	long := "{" + strings.Repeat("x", 2000) + "oops"
	_, err := ParseLoose(long)
	require.Error(t, err)

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.LessOrEqual(t, len(perr.Snippet), 500)
}
