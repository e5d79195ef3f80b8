package iterbot

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesizeSystemPrompt_ListsToolsInOrder(t *testing.T) {
	r := NewRegistry(
		NewToolFunc("search_web", []Param{
			{Name: "query"},
			{Name: "num_results", Default: 4, HasDefault: true},
		}, nil),
		NewToolFunc("get_current_time", nil, nil),
	)

	prompt := SynthesizeSystemPrompt(r, "")

	assert.Contains(t, prompt, `1. search_web(query, num_results=4)`)
	assert.Contains(t, prompt, "2. get_current_time()")
	assert.Equal(t, 1, strings.Count(prompt, "search_web"))
	assert.Equal(t, 1, strings.Count(prompt, "get_current_time"))

	// The listing order follows insertion order, not alphabetical order.
	assert.Less(t,
		strings.Index(prompt, "search_web"),
		strings.Index(prompt, "get_current_time"))
}

func TestSynthesizeSystemPrompt_OmitsUnregisteredTools(t *testing.T) {
	r := NewRegistry(stubTool("alpha", nil), stubTool("bravo", nil))
	r.Unregister("alpha")

	prompt := SynthesizeSystemPrompt(r, "")

	assert.NotContains(t, prompt, "alpha")
	assert.Contains(t, prompt, "1. bravo()")
}

func TestSynthesizeSystemPrompt_FixedPreamble(t *testing.T) {
	prompt := SynthesizeSystemPrompt(NewRegistry(), "")

	assert.Contains(t, prompt, "Thought:")
	assert.Contains(t, prompt, `Action: {"tool": "tool_name", "args": {arg1: val1, ...}}`)
	assert.Contains(t, prompt, "Final Answer:")
	assert.Contains(t, prompt, "Never generate fake Observations.")
}

func TestSynthesizeSystemPrompt_CustomBlock(t *testing.T) {
	r := NewRegistry()

	withCustom := SynthesizeSystemPrompt(r, "Always answer in French.")
	withoutCustom := SynthesizeSystemPrompt(r, "")

	assert.Contains(t, withCustom, "Additional instructions:\nAlways answer in French.")
	assert.NotContains(t, withoutCustom, "Additional instructions:")
}

func TestSynthesizeSystemPrompt_Deterministic(t *testing.T) {
	r := NewRegistry(stubTool("alpha", nil))

	first := SynthesizeSystemPrompt(r, "custom")
	second := SynthesizeSystemPrompt(r, "custom")

	assert.Equal(t, first, second)
}

func TestValidateCustomPrompt(t *testing.T) {
	type input struct {
		prompt  string
		maxSize int
	}

	tests := []struct {
		name     string
		input    input
		expected string
	}{
		{
			name:     "short prompt unchanged",
			input:    input{prompt: "be brief", maxSize: 100},
			expected: "be brief",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    input{prompt: "  be brief \n", maxSize: 100},
			expected: "be brief",
		},
		{
			name:     "empty prompt",
			input:    input{prompt: "", maxSize: 100},
			expected: "",
		},
		{
			name:     "all-whitespace prompt",
			input:    input{prompt: "   \n\t  ", maxSize: 100},
			expected: "",
		},
		{
			name: "word boundary truncation when last space is past 80%",
			// First 10 chars are "hellohey w"; the last space at index 8 is
			// at 80% of the limit, so the split word is dropped.
			input:    input{prompt: "hellohey worldwide", maxSize: 10},
			expected: "hellohey",
		},
		{
			name: "hard truncation when last space is before 80%",
			// First 10 chars are "hello worl"; the last space at index 5 is
			// before 80% of the limit, so the hard cut stands.
			input:    input{prompt: "hello worldwide", maxSize: 10},
			expected: "hello worl",
		},
		{
			name:     "truncation without any space",
			input:    input{prompt: strings.Repeat("a", 20), maxSize: 10},
			expected: strings.Repeat("a", 10),
		},
		{
			name: "multi-byte runes counted as single characters",
			// "é" is two bytes; a byte-indexed cut would split the rune at
			// the limit and keep only half as many characters.
			input:    input{prompt: strings.Repeat("é", 300), maxSize: 250},
			expected: strings.Repeat("é", 250),
		},
		{
			name: "space just before 80% of an odd limit keeps the hard cut",
			// 80% of 13 is 10.4; the space at index 10 falls short of it, so
			// the split word stays.
			input:    input{prompt: "abcdefghij klmnopqr", maxSize: 13},
			expected: "abcdefghij kl",
		},
		{
			name: "space past 80% of an odd limit drops the split word",
			// The space at index 11 clears the 10.4 threshold.
			input:    input{prompt: "abcdefghijk lmnopqr", maxSize: 13},
			expected: "abcdefghijk",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateCustomPrompt(tt.input.prompt, tt.input.maxSize)

			assert.Equal(t, tt.expected, result)
			assert.LessOrEqual(t, utf8.RuneCountInString(result), tt.input.maxSize)
			assert.True(t, utf8.ValidString(result))
		})
	}
}

func TestValidateCustomPrompt_NeverExceedsLimit(t *testing.T) {
	inputs := []string{
		strings.Repeat("word ", 200),
		strings.Repeat("x", 1000),
		strings.Repeat("é", 1000),
		"short",
	}

	for _, in := range inputs {
		result := ValidateCustomPrompt(in, 500)
		require.LessOrEqual(t, utf8.RuneCountInString(result), 500)
	}
}
