package util

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Model output rarely arrives as clean JSON: fences, prose around the
// payload, trailing commas, sometimes comments. CleanJSON strips all of
// that; ParseLoose additionally hunts for an embedded JSON value when the
// cleaned text still does not parse.

var (
	reFenceJSON     = regexp.MustCompile("```json\\s*")
	reFence         = regexp.MustCompile("```\\s*")
	reTrailingComma = regexp.MustCompile(`,(\s*[}\]])`)
	reLineComment   = regexp.MustCompile(`//[^\n]*\n`)
	reBlockComment  = regexp.MustCompile(`(?s)/\*.*?\*/`)

	// Balanced-looking {...} or [...] substrings, one nesting level deep.
	reJSONCandidate = regexp.MustCompile(`(?s)\{[^{}]*(?:\{[^{}]*\}[^{}]*)*\}|\[[^\[\]]*(?:\[[^\[\]]*\][^\[\]]*)*\]`)
)

// ParseError reports that no JSON value could be recovered from a model
// response. Snippet holds the cleaned text for diagnostics.
type ParseError struct {
	Err     error
	Snippet string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unable to parse JSON from response: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// CleanJSON removes markdown fences, surrounding prose, trailing commas
// and comments. Each step operates on the output of the previous one.
func CleanJSON(raw string) string {
	s := reFenceJSON.ReplaceAllString(raw, "")
	s = reFence.ReplaceAllString(s, "")

	if i := strings.IndexAny(s, "{["); i >= 0 {
		s = s[i:]
	}
	if i := strings.LastIndexAny(s, "}]"); i >= 0 {
		s = s[:i+1]
	}

	s = reTrailingComma.ReplaceAllString(s, "$1")
	s = reLineComment.ReplaceAllString(s, "\n")
	s = reBlockComment.ReplaceAllString(s, "")

	return strings.TrimSpace(s)
}

// ParseLoose cleans raw model text and unmarshals it. When strict parsing
// fails it scans for balanced {...}/[...] candidates and returns the first
// one that parses. Fails with *ParseError if nothing does.
func ParseLoose(raw string) (any, error) {
	cleaned := CleanJSON(raw)

	var v any
	err := json.Unmarshal([]byte(cleaned), &v)
	if err == nil {
		return v, nil
	}

	for _, cand := range reJSONCandidate.FindAllString(cleaned, -1) {
		var c any
		if json.Unmarshal([]byte(cand), &c) == nil {
			return c, nil
		}
	}

	return nil, &ParseError{Err: err, Snippet: snippet(cleaned, 500)}
}

func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
