package iterbot

import (
	"context"
	"fmt"
	"time"
)

// Layouts used by the built-in time tools.
const (
	timeLayout     = "15:04:05"
	dateLayout     = "2006-01-02"
	datetimeLayout = "2006-01-02 15:04:05"
)

// DefaultTools returns the built-in tool registry: current time, date,
// datetime, and epoch helpers.
//
// Every call builds a fresh Registry so no two agents ever share one by
// accident; a shared default registry would leak one agent's AddTool calls
// into every other agent's prompt.
func DefaultTools() *Registry {
	return NewRegistry(
		NewCurrentTimeTool(),
		NewCurrentDateTool(),
		NewCurrentDatetimeTool(),
		NewEpochTimeTool(),
	)
}

// NewCurrentTimeTool returns a tool reporting the current time as HH:MM:SS.
func NewCurrentTimeTool() Tool {
	return NewToolFunc("get_current_time", nil,
		func(_ context.Context, _ map[string]any) (any, error) {
			return time.Now().Format(timeLayout), nil
		})
}

// NewCurrentDateTool returns a tool reporting the current date as
// YYYY-MM-DD.
func NewCurrentDateTool() Tool {
	return NewToolFunc("get_current_date", nil,
		func(_ context.Context, _ map[string]any) (any, error) {
			return time.Now().Format(dateLayout), nil
		})
}

// NewCurrentDatetimeTool returns a tool reporting the current datetime. The
// optional "format" argument is a Go time layout string.
func NewCurrentDatetimeTool() Tool {
	params := []Param{
		{Name: "format", Default: datetimeLayout, HasDefault: true},
	}
	return NewToolFunc("get_current_datetime", params,
		func(_ context.Context, args map[string]any) (any, error) {
			layout := stringArg(args, "format", datetimeLayout)
			return time.Now().Format(layout), nil
		})
}

// NewEpochTimeTool returns a tool reporting the Unix epoch timestamp in
// seconds.
func NewEpochTimeTool() Tool {
	return NewToolFunc("get_epoch_time", nil,
		func(_ context.Context, _ map[string]any) (any, error) {
			return time.Now().Unix(), nil
		})
}

// NewTimezoneTimeTool returns a tool reporting a timezone-aware datetime.
// The "timezone" argument is an IANA zone name like "America/New_York"; it
// defaults to UTC. Not part of DefaultTools since zone data availability
// varies by platform.
func NewTimezoneTimeTool() Tool {
	params := []Param{
		{Name: "timezone", Default: "UTC", HasDefault: true},
	}
	return NewToolFunc("get_timezone_aware_time", params,
		func(_ context.Context, args map[string]any) (any, error) {
			name := stringArg(args, "timezone", "UTC")
			loc, err := time.LoadLocation(name)
			if err != nil {
				return nil, fmt.Errorf("unknown timezone %q: %w", name, err)
			}
			return time.Now().In(loc).Format("2006-01-02 15:04:05 MST-0700"), nil
		})
}

// stringArg reads a string argument, falling back to def when the argument
// is absent or not a string.
func stringArg(args map[string]any, name, def string) string {
	if v, ok := args[name].(string); ok && v != "" {
		return v
	}
	return def
}
