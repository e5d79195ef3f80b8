package iterbot

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// actionMarker introduces a tool call in model output.
const actionMarker = "Action:"

// ErrMalformedAction is returned by [ParseAction] when an Action line exists
// but its payload is not a well-formed tool call. Use errors.Is to detect it;
// the wrapped error carries the original parse failure detail.
var ErrMalformedAction = errors.New("iterbot: malformed action")

// ErrMissingToolName is returned when an Action payload parses as JSON but
// names no tool.
var ErrMissingToolName = errors.New("iterbot: action is missing tool name")

// ErrMissingArgs is returned when an Action payload carries no "args" field.
// Tools with no arguments still take an explicit empty object.
var ErrMissingArgs = errors.New("iterbot: action is missing args")

// Action is a tool-invocation intent parsed from model output.
type Action struct {
	// Tool is the name of the tool to invoke.
	Tool string

	// Args maps argument names to values. Never nil after a successful parse.
	Args map[string]any
}

// ParseAction extracts a tool call from the model's response text.
//
// The response is scanned line by line; the first line whose trimmed content
// starts with "Action:" is the action line, and everything after the marker
// is parsed as JSON of the form {"tool": "name", "args": {...}}. Both fields
// are required; a payload without an "args" key is malformed even for tools
// that take no arguments. Later Action lines are ignored: first match wins.
//
// Returns (nil, nil) when no action line exists — the model simply produced
// no tool call, which is not an error. Returns an [ErrMalformedAction] error
// when the marker is present but the payload does not parse.
func ParseAction(content string) (*Action, error) {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, actionMarker) {
			continue
		}

		payload := strings.TrimSpace(strings.TrimPrefix(trimmed, actionMarker))
		var raw struct {
			Tool string          `json:"tool"`
			Args json.RawMessage `json:"args"`
		}
		if err := json.Unmarshal([]byte(payload), &raw); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedAction, err)
		}
		if raw.Tool == "" {
			return nil, fmt.Errorf("%w: %w", ErrMalformedAction, ErrMissingToolName)
		}
		if raw.Args == nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedAction, ErrMissingArgs)
		}
		args := map[string]any{}
		if err := json.Unmarshal(raw.Args, &args); err != nil {
			return nil, fmt.Errorf("%w: args: %v", ErrMalformedAction, err)
		}
		return &Action{Tool: raw.Tool, Args: args}, nil
	}
	return nil, nil
}
