package iterbot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iterbot/iterbot/schema"
)

func TestSignature(t *testing.T) {
	tests := []struct {
		name     string
		params   []Param
		expected string
	}{
		{
			name:     "no parameters",
			params:   nil,
			expected: "()",
		},
		{
			name:     "single required parameter",
			params:   []Param{{Name: "query"}},
			expected: "(query)",
		},
		{
			name: "string default is quoted",
			params: []Param{
				{Name: "format", Default: "15:04:05", HasDefault: true},
			},
			expected: `(format="15:04:05")`,
		},
		{
			name: "numeric default",
			params: []Param{
				{Name: "query"},
				{Name: "num_results", Default: 4, HasDefault: true},
			},
			expected: "(query, num_results=4)",
		},
		{
			name: "boolean default",
			params: []Param{
				{Name: "strict", Default: true, HasDefault: true},
			},
			expected: "(strict=true)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Signature(tt.params))
		})
	}
}

func TestToolFunc(t *testing.T) {
	tool := NewToolFunc("echo", []Param{{Name: "text"}},
		func(_ context.Context, args map[string]any) (any, error) {
			return args["text"], nil
		})

	assert.Equal(t, "echo", tool.Name())
	assert.Equal(t, []Param{{Name: "text"}}, tool.Params())

	result, err := tool.Call(context.Background(), map[string]any{"text": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "hi", result)
}

func TestToolFunc_ErrorPassthrough(t *testing.T) {
	boom := errors.New("boom")
	tool := NewToolFunc("broken", nil,
		func(_ context.Context, _ map[string]any) (any, error) {
			return nil, boom
		})

	_, err := tool.Call(context.Background(), nil)

	assert.ErrorIs(t, err, boom)
}

func TestToolFunc_SchemaValidation(t *testing.T) {
	s := schema.MustCompile(schema.Object(map[string]*schema.Property{
		"query": schema.String("Search query"),
	}, "query"))

	called := false
	tool := NewToolFunc("search", []Param{{Name: "query"}},
		func(_ context.Context, _ map[string]any) (any, error) {
			called = true
			return "ok", nil
		}).WithSchema(s)

	t.Run("valid args reach the function", func(t *testing.T) {
		result, err := tool.Call(context.Background(), map[string]any{"query": "go"})

		require.NoError(t, err)
		assert.Equal(t, "ok", result)
		assert.True(t, called)
	})

	t.Run("missing required arg is rejected before the function runs", func(t *testing.T) {
		called = false

		_, err := tool.Call(context.Background(), map[string]any{})

		require.Error(t, err)
		var validationErr *schema.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.False(t, called)
	})

	t.Run("wrong arg type is rejected", func(t *testing.T) {
		_, err := tool.Call(context.Background(), map[string]any{"query": float64(7)})

		assert.Error(t, err)
	})
}
