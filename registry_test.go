package iterbot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubTool(name string, result any) Tool {
	return NewToolFunc(name, nil,
		func(_ context.Context, _ map[string]any) (any, error) {
			return result, nil
		})
}

func TestRegistry_InsertionOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(stubTool("charlie", nil))
	r.Register(stubTool("alpha", nil))
	r.Register(stubTool("bravo", nil))

	assert.Equal(t, []string{"charlie", "alpha", "bravo"}, r.Names())
	assert.Equal(t, 3, r.Len())
}

func TestRegistry_RegisterOverwritesKeepingPosition(t *testing.T) {
	r := NewRegistry()
	r.Register(stubTool("alpha", "old"))
	r.Register(stubTool("bravo", nil))
	r.Register(stubTool("alpha", "new"))

	assert.Equal(t, []string{"alpha", "bravo"}, r.Names())

	tool, ok := r.Get("alpha")
	require.True(t, ok)
	result, err := tool.Call(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "new", result)
}

func TestRegistry_UnregisterAbsentIsNoop(t *testing.T) {
	r := NewRegistry(stubTool("alpha", nil))

	r.Unregister("nonexistent")

	assert.Equal(t, []string{"alpha"}, r.Names())
}

func TestRegistry_Unregister(t *testing.T) {
	r := NewRegistry(
		stubTool("alpha", nil),
		stubTool("bravo", nil),
		stubTool("charlie", nil),
	)

	r.Unregister("bravo")

	assert.Equal(t, []string{"alpha", "charlie"}, r.Names())
	_, ok := r.Get("bravo")
	assert.False(t, ok)
}

func TestRegistry_List(t *testing.T) {
	r := NewRegistry(stubTool("alpha", nil), stubTool("bravo", nil))

	tools := r.List()

	require.Len(t, tools, 2)
	assert.Equal(t, "alpha", tools[0].Name())
	assert.Equal(t, "bravo", tools[1].Name())
}

func TestRegistry_GetMissing(t *testing.T) {
	r := NewRegistry()

	tool, ok := r.Get("missing")

	assert.False(t, ok)
	assert.Nil(t, tool)
}
