package llm

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		msg  string
		want Kind
	}{
		{"googleapi: Error 429: too many requests", KindRateLimited},
		{"Quota exceeded for quota metric", KindRateLimited},
		{"upstream Rate Limit hit", KindRateLimited},
		{"RESOURCE EXHAUSTED", KindRateLimited},
		{"models/gemini-x is not found", KindUnavailable},
		{"Invalid Model name", KindUnavailable},
		{"model not available in this region", KindUnavailable},
		{"model returned empty or invalid response", KindInvalidResponse},
		{"something exploded", KindUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(errors.New(tt.msg)))
		})
	}
}

func TestClassify_Nil(t *testing.T) {
	assert.Equal(t, KindUnknown, Classify(nil))
}

func TestErrorUnwrapping(t *testing.T) {
	inner := errors.New("boom")
	me := &ModelError{Model: "m", Kind: KindUnknown, Err: inner}
	assert.True(t, errors.Is(me, inner))

	wrapped := fmt.Errorf("outline generation: %w", &ExhaustedError{Last: &TimeoutError{Model: "m"}})
	var te *TimeoutError
	require.True(t, errors.As(wrapped, &te))
	assert.Equal(t, "m", te.Model)
}
