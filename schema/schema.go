// Package schema builds and validates JSON Schemas for tool parameters.
//
// Tools declare their parameter shape once and the registry-side dispatch
// can reject bad argument mappings before the tool runs:
//
//	s := schema.MustCompile(schema.Object(map[string]*schema.Property{
//	    "query":       schema.String("Search query"),
//	    "num_results": schema.Integer("Max results").Min(1),
//	}, "query"))
//
//	tool := iterbot.NewToolFunc("search_web", params, fn).WithSchema(s)
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Schema pairs a raw schema document with its compiled validator.
type Schema struct {
	raw      map[string]any
	compiled *jsonschema.Schema
}

// Raw returns the underlying map representation, e.g. for serialization or
// inclusion in prompts.
func (s *Schema) Raw() map[string]any {
	if s == nil {
		return nil
	}
	return s.raw
}

// Validate checks the given argument mapping against the schema. Returns nil
// when valid, or a [ValidationError] describing the failure.
func (s *Schema) Validate(args map[string]any) error {
	if s == nil || s.compiled == nil {
		return nil
	}
	// The validator rejects typed maps; round-trip through JSON to get the
	// generic representation it expects (and the numeric coercion the model
	// output would have anyway).
	normalized, err := normalize(args)
	if err != nil {
		return &ValidationError{Err: err}
	}
	if err := s.compiled.Validate(normalized); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// ValidationError wraps a schema validation failure.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Compile compiles a raw schema map into a Schema with a validator attached.
func Compile(raw map[string]any) (*Schema, error) {
	if raw == nil {
		return nil, nil
	}

	doc, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema.json", parsed); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	compiled, err := c.Compile("schema.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}

	return &Schema{raw: raw, compiled: compiled}, nil
}

// MustCompile is like [Compile] but panics on error. Use for schemas defined
// at init time.
func MustCompile(raw map[string]any) *Schema {
	s, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return s
}

// normalize round-trips a value through JSON so all numbers become
// json.Number-free float64/maps the validator understands.
func normalize(v any) (any, error) {
	doc, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(doc))
}

// Object creates an object schema with the given properties. Names passed as
// trailing arguments are marked required.
func Object(properties map[string]*Property, required ...string) map[string]any {
	props := make(map[string]any, len(properties))
	for name, prop := range properties {
		props[name] = prop.build()
	}

	s := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

// Property is a builder for one property in an object schema.
type Property struct {
	typ         string
	description string
	items       map[string]any
	minimum     *float64
	maximum     *float64
	def         any
}

// String creates a string property.
func String(description string) *Property {
	return &Property{typ: "string", description: description}
}

// Integer creates an integer property.
func Integer(description string) *Property {
	return &Property{typ: "integer", description: description}
}

// Number creates a number property.
func Number(description string) *Property {
	return &Property{typ: "number", description: description}
}

// Boolean creates a boolean property.
func Boolean(description string) *Property {
	return &Property{typ: "boolean", description: description}
}

// StringArray creates an array-of-strings property.
func StringArray(description string) *Property {
	return &Property{
		typ:         "array",
		description: description,
		items:       map[string]any{"type": "string"},
	}
}

// Min sets the minimum value for numeric properties.
func (p *Property) Min(v float64) *Property {
	p.minimum = &v
	return p
}

// Max sets the maximum value for numeric properties.
func (p *Property) Max(v float64) *Property {
	p.maximum = &v
	return p
}

// Default records the property's default value in the schema document.
func (p *Property) Default(v any) *Property {
	p.def = v
	return p
}

func (p *Property) build() map[string]any {
	m := map[string]any{"type": p.typ}
	if p.description != "" {
		m["description"] = p.description
	}
	if p.items != nil {
		m["items"] = p.items
	}
	if p.minimum != nil {
		m["minimum"] = *p.minimum
	}
	if p.maximum != nil {
		m["maximum"] = *p.maximum
	}
	if p.def != nil {
		m["default"] = p.def
	}
	return m
}
