package ai

import (
	"errors"
	"strings"
)

// Sanitizer/parser errors. Handlers never surface these directly; the
// service layer folds them into a single generic message per operation.
var (
	// ErrNoJSONFound means the model output contained no extractable object
	ErrNoJSONFound = errors.New("no valid JSON found in AI response")
	// ErrMalformedJSON means the extracted text failed to parse
	ErrMalformedJSON = errors.New("AI returned malformed JSON")
	// ErrIncompleteResponse means required fields were missing or empty
	ErrIncompleteResponse = errors.New("AI response is missing required fields")
)

// ExtractJSONObject pulls the outermost JSON object out of free-form model
// output. Models frequently wrap the payload in markdown fences or prose, so
// the text is trimmed, fence markers removed, and the result sliced from the
// first '{' to the last '}'. Returns ErrNoJSONFound when either boundary is
// absent or the end precedes the start; callers must not attempt a parse in
// that case.
func ExtractJSONObject(text string) (string, error) {
	clean := strings.TrimSpace(text)

	// Remove markdown code fences
	clean = strings.ReplaceAll(clean, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")

	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSONFound
	}

	return clean[start : end+1], nil
}
