package llm

import (
	"fmt"
	"strings"
	"time"
)

// Kind classifies a model failure. Upstream SDK errors carry no stable
// typed codes for all cases, so classification falls back to substring
// matching on the error text.
type Kind string

const (
	KindRateLimited     Kind = "rate_limited"
	KindUnavailable     Kind = "unavailable"
	KindInvalidResponse Kind = "invalid_response"
	KindUnknown         Kind = "unknown"
)

// classifyTable maps case-insensitive keywords to failure kinds. Kept as
// data so it can be tested and extended without touching the invoker.
var classifyTable = []struct {
	kind     Kind
	keywords []string
}{
	{KindRateLimited, []string{"429", "quota", "rate limit", "resource exhausted"}},
	{KindUnavailable, []string{"not found", "invalid model", "model not available"}},
	{KindInvalidResponse, []string{"empty", "invalid response"}},
}

// Classify maps an upstream error to a failure Kind.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	msg := strings.ToLower(err.Error())
	for _, row := range classifyTable {
		for _, kw := range row.keywords {
			if strings.Contains(msg, kw) {
				return row.kind
			}
		}
	}
	return KindUnknown
}

// ModelError is a classified failure of a single model attempt.
type ModelError struct {
	Model string
	Kind  Kind
	Err   error
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("model %s failed (%s): %v", e.Model, e.Kind, e.Err)
}

func (e *ModelError) Unwrap() error { return e.Err }

// TimeoutError reports a generation attempt that ran past its deadline.
type TimeoutError struct {
	Model   string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("model %s timed out after %s", e.Model, e.Timeout)
}

// ExhaustedError reports that every fallback candidate failed. Last holds
// the final candidate's error.
type ExhaustedError struct {
	Last error
}

func (e *ExhaustedError) Error() string {
	if e.Last != nil {
		return fmt.Sprintf("all models failed to generate content: %v", e.Last)
	}
	return "all models failed to generate content"
}

func (e *ExhaustedError) Unwrap() error { return e.Last }
