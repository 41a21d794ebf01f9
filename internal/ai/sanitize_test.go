package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractJSONObject_PlainObject(t *testing.T) {
	out, err := ExtractJSONObject(`{"a": 1}`)
	assert.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, out)
}

func TestExtractJSONObject_StripsCodeFences(t *testing.T) {
	input := "```json\n{\"a\": 1}\n```"
	out, err := ExtractJSONObject(input)
	assert.NoError(t, err)
	assert.Equal(t, `{"a": 1}`, out)
}

func TestExtractJSONObject_SurroundingProse(t *testing.T) {
	input := "Here is the analysis you asked for:\n{\"a\": {\"b\": 2}}\nLet me know if you need anything else."
	out, err := ExtractJSONObject(input)
	assert.NoError(t, err)
	assert.Equal(t, `{"a": {"b": 2}}`, out)
}

func TestExtractJSONObject_UsesOutermostBraces(t *testing.T) {
	input := `prefix {"a": 1} middle {"b": 2} suffix`
	out, err := ExtractJSONObject(input)
	assert.NoError(t, err)
	// Span runs from the first { to the last }, even across multiple objects
	assert.Equal(t, `{"a": 1} middle {"b": 2}`, out)
}

func TestExtractJSONObject_NoBraces(t *testing.T) {
	_, err := ExtractJSONObject("I cannot help with that request.")
	assert.ErrorIs(t, err, ErrNoJSONFound)
}

func TestExtractJSONObject_OnlyOpeningBrace(t *testing.T) {
	_, err := ExtractJSONObject(`{"a": 1`)
	assert.ErrorIs(t, err, ErrNoJSONFound)
}

func TestExtractJSONObject_ClosingBeforeOpening(t *testing.T) {
	_, err := ExtractJSONObject(`} nothing here {`)
	assert.ErrorIs(t, err, ErrNoJSONFound)
}

func TestExtractJSONObject_Empty(t *testing.T) {
	_, err := ExtractJSONObject("")
	assert.ErrorIs(t, err, ErrNoJSONFound)

	_, err = ExtractJSONObject("   \n\t  ")
	assert.ErrorIs(t, err, ErrNoJSONFound)
}
