package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func searchSchema(t *testing.T) *Schema {
	t.Helper()
	s, err := Compile(Object(map[string]*Property{
		"query":          String("Search query"),
		"num_results":    Integer("Max results").Min(1).Max(100).Default(4),
		"search_engines": StringArray("Engines to use"),
		"safe":           Boolean("Safe search"),
		"threshold":      Number("Score threshold"),
	}, "query"))
	require.NoError(t, err)
	return s
}

func TestSchema_Validate(t *testing.T) {
	s := searchSchema(t)

	tests := []struct {
		name    string
		args    map[string]any
		wantErr bool
	}{
		{
			name: "all valid",
			args: map[string]any{
				"query":          "golang",
				"num_results":    2,
				"search_engines": []string{"duckduckgo"},
				"safe":           true,
				"threshold":      0.5,
			},
		},
		{
			name: "only required",
			args: map[string]any{"query": "golang"},
		},
		{
			name:    "missing required",
			args:    map[string]any{"num_results": 2},
			wantErr: true,
		},
		{
			name:    "wrong type",
			args:    map[string]any{"query": 42},
			wantErr: true,
		},
		{
			name:    "below minimum",
			args:    map[string]any{"query": "golang", "num_results": 0},
			wantErr: true,
		},
		{
			name:    "array of wrong element type",
			args:    map[string]any{"query": "golang", "search_engines": []any{1, 2}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Validate(tt.args)

			if tt.wantErr {
				require.Error(t, err)
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSchema_NilIsPermissive(t *testing.T) {
	var s *Schema

	assert.NoError(t, s.Validate(map[string]any{"anything": "goes"}))
	assert.Nil(t, s.Raw())
}

func TestCompile_NilSchema(t *testing.T) {
	s, err := Compile(nil)

	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestObject_RequiredAndProperties(t *testing.T) {
	raw := Object(map[string]*Property{
		"name": String("User name"),
	}, "name")

	assert.Equal(t, "object", raw["type"])
	assert.Equal(t, []string{"name"}, raw["required"])

	props := raw["properties"].(map[string]any)
	name := props["name"].(map[string]any)
	assert.Equal(t, "string", name["type"])
	assert.Equal(t, "User name", name["description"])
}

func TestProperty_Builders(t *testing.T) {
	prop := Integer("Max results").Min(1).Max(100).Default(4).build()

	assert.Equal(t, "integer", prop["type"])
	assert.Equal(t, float64(1), prop["minimum"])
	assert.Equal(t, float64(100), prop["maximum"])
	assert.Equal(t, 4, prop["default"])
}

func TestMustCompile_PanicsOnInvalidSchema(t *testing.T) {
	assert.Panics(t, func() {
		MustCompile(map[string]any{"type": 42})
	})
}
