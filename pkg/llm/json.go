package llm

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// GenerationError reports that a model response could not be coerced into
// valid structured data after local repair attempts. Snippet keeps the head
// of the raw response for diagnostics.
type GenerationError struct {
	Op      string
	Snippet string
	Err     error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s: model returned invalid JSON: %v (response: %q)", e.Op, e.Err, e.Snippet)
}

func (e *GenerationError) Unwrap() error { return e.Err }

const snippetLen = 500

// NewGenerationError trims raw to a diagnostic snippet.
func NewGenerationError(op, raw string, err error) *GenerationError {
	s := strings.TrimSpace(raw)
	if len(s) > snippetLen {
		s = s[:snippetLen]
	}
	return &GenerationError{Op: op, Snippet: s, Err: err}
}

var (
	fencedRe        = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)```")
	trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)
)

// ExtractFenced returns the content of the first triple-backtick block,
// optionally tagged "json". ok is false when no fenced block is present.
func ExtractFenced(raw string) (string, bool) {
	m := fencedRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// StripTrailingCommas removes commas immediately preceding a closing brace
// or bracket, a frequent model formatting slip.
func StripTrailingCommas(raw string) string {
	return trailingCommaRe.ReplaceAllString(raw, "$1")
}

// UnmarshalResponse decodes a model response into v: direct parse first, then
// the first fenced code block if present. Used for extraction-style calls.
func UnmarshalResponse(raw string, v any) error {
	raw = strings.TrimSpace(raw)
	err := json.Unmarshal([]byte(raw), v)
	if err == nil {
		return nil
	}
	if inner, ok := ExtractFenced(raw); ok {
		if err2 := json.Unmarshal([]byte(inner), v); err2 == nil {
			return nil
		}
	}
	return err
}

// UnmarshalResponseRelaxed is UnmarshalResponse plus one trailing-comma repair
// pass. Used for open-ended generation calls where the model writes longer
// documents and slips more often.
func UnmarshalResponseRelaxed(raw string, v any) error {
	raw = strings.TrimSpace(raw)
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}
	candidate := raw
	if inner, ok := ExtractFenced(raw); ok {
		candidate = inner
		if err := json.Unmarshal([]byte(candidate), v); err == nil {
			return nil
		}
	}
	return json.Unmarshal([]byte(StripTrailingCommas(candidate)), v)
}
