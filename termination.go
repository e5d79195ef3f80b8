package iterbot

import (
	"regexp"
	"strings"
)

// finalAnswerPattern matches the terminal answer marker anywhere in the text,
// case-insensitively, tolerating whitespace before the colon.
var finalAnswerPattern = regexp.MustCompile(`(?i)final answer\s*:`)

// HasFinalAnswer reports whether the response text contains a terminal
// answer marker. The whole text is searched, not just single lines.
func HasFinalAnswer(content string) bool {
	return finalAnswerPattern.MatchString(content)
}

// ExtractFinalAnswer returns the answer text from a response that passed
// [HasFinalAnswer].
//
// Lines are scanned in order; the first line matching the marker is split on
// its first colon and the trimmed remainder is returned. If no line yields a
// split (which should not happen when detection passed, since the marker
// contains a colon), the entire raw response is returned verbatim.
func ExtractFinalAnswer(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if !finalAnswerPattern.MatchString(line) {
			continue
		}
		if _, after, found := strings.Cut(line, ":"); found {
			return strings.TrimSpace(after)
		}
	}
	return content
}
