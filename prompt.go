package iterbot

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed system.tmpl
var systemTemplateContent string

// systemTemplate is the fixed ReAct system prompt. It establishes the
// Thought/Action/Observation format, lists the registered tools, and
// instructs the model to stop after an Action instead of inventing its own
// Observation.
var systemTemplate = template.Must(
	template.New("iterbot_system").Parse(systemTemplateContent),
)

// systemPromptData is the data rendered into systemTemplate.
type systemPromptData struct {
	// Tools is the enumerated tool listing, one "<index>. <name><signature>"
	// line per registered tool.
	Tools string

	// Custom is the validated custom system prompt, empty when unset.
	Custom string
}

// SynthesizeSystemPrompt renders the ReAct system prompt for the given
// registry and optional custom instruction block.
//
// Synthesis is pure and deterministic: tools appear 1-indexed in registry
// insertion order, each with its declared call signature. The custom block,
// when non-empty, is appended under an "Additional instructions:" heading.
// Callers must re-synthesize after any registry or custom-prompt mutation; a
// stale prompt silently advertises tools that no longer exist.
func SynthesizeSystemPrompt(registry *Registry, customPrompt string) string {
	var lines []string
	for i, tool := range registry.List() {
		lines = append(lines, fmt.Sprintf("%d. %s%s", i+1, tool.Name(), Signature(tool.Params())))
	}

	data := systemPromptData{
		Tools:  strings.Join(lines, "\n"),
		Custom: customPrompt,
	}

	var buf bytes.Buffer
	if err := systemTemplate.Execute(&buf, data); err != nil {
		// The template is fixed and the data is two strings; execution
		// cannot fail at runtime.
		panic(fmt.Sprintf("iterbot: system template execution failed: %v", err))
	}
	return buf.String()
}

// ValidateCustomPrompt trims and size-bounds a custom system prompt.
//
// All-whitespace or empty input yields "" (no custom prompt). Input longer
// than maxSize is hard-truncated to maxSize characters; if the truncated
// text contains a space at or beyond 80% of maxSize, it is cut again at that
// space so a word is not split mid-way. Truncation closer to the start is
// left alone — losing most of the prompt to save one word is a bad trade.
func ValidateCustomPrompt(customPrompt string, maxSize int) string {
	customPrompt = strings.TrimSpace(customPrompt)
	if customPrompt == "" {
		return ""
	}

	runes := []rune(customPrompt)
	if len(runes) <= maxSize {
		return customPrompt
	}

	// The limit counts characters, so all indexing below is in runes: a byte
	// slice could split a multi-byte rune and leak invalid UTF-8 into the
	// system prompt.
	runes = []rune(strings.TrimSpace(string(runes[:maxSize])))
	lastSpace := -1
	for i, r := range runes {
		if r == ' ' {
			lastSpace = i
		}
	}
	// Cross-multiplied so the 80% threshold is not floored for limits that
	// are not divisible by 10.
	if lastSpace*10 >= maxSize*8 {
		runes = runes[:lastSpace]
	}
	return string(runes)
}
