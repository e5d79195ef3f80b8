package iterbot

import (
	"context"
	"fmt"
	"strings"

	"github.com/iterbot/iterbot/schema"
)

// Tool is a named capability the agent can invoke by emitting an Action.
//
// Tools receive the argument mapping parsed from the model's Action JSON and
// return a value whose string rendering becomes the observation text. Tools
// should validate their own arguments; any error returned (or panic raised)
// during Call is caught at the dispatch boundary and surfaces as an error
// observation rather than aborting the run.
type Tool interface {
	// Name returns the tool's identifier used in Action JSON and in the
	// system prompt's tool listing.
	Name() string

	// Params returns the declared parameter descriptors. They are rendered
	// into the system prompt as the tool's call signature, so the model knows
	// which arguments exist and which have defaults.
	Params() []Param

	// Call executes the tool with the parsed arguments.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// Param describes a single declared tool parameter.
//
// Declared descriptors replace runtime signature reflection: the prompt
// synthesizer renders them as text, so prompt generation stays decoupled from
// how a tool is implemented.
type Param struct {
	// Name is the argument name the model must use in Action args.
	Name string

	// Default is the value used in the rendered signature when HasDefault is
	// true. The agent does not inject defaults into calls; applying them is
	// the tool's job.
	Default any

	// HasDefault marks the parameter as optional in the rendered signature.
	HasDefault bool
}

// Signature renders a parameter list as a call signature, e.g.
// `(query, num_results=4)`. String defaults are quoted.
func Signature(params []Param) string {
	var sb strings.Builder
	sb.WriteString("(")
	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		if p.HasDefault {
			sb.WriteString("=")
			sb.WriteString(renderDefault(p.Default))
		}
	}
	sb.WriteString(")")
	return sb.String()
}

func renderDefault(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%v", v)
}

// ToolFunc adapts a plain function into a [Tool].
//
// Example:
//
//	tool := iterbot.NewToolFunc("get_current_time", nil,
//	    func(ctx context.Context, args map[string]any) (any, error) {
//	        return time.Now().Format("15:04:05"), nil
//	    })
//
// An optional parameter schema can be attached with [ToolFunc.WithSchema];
// when set, arguments are validated against it before the function runs, and
// a validation failure is returned as the tool's error.
type ToolFunc struct {
	name   string
	params []Param
	schema *schema.Schema
	fn     func(ctx context.Context, args map[string]any) (any, error)
}

// NewToolFunc creates a ToolFunc with the given name, declared parameters,
// and implementation.
func NewToolFunc(
	name string,
	params []Param,
	fn func(ctx context.Context, args map[string]any) (any, error),
) *ToolFunc {
	return &ToolFunc{
		name:   name,
		params: params,
		fn:     fn,
	}
}

// WithSchema attaches a compiled JSON Schema used to validate arguments
// before each call. Returns the tool for chaining.
func (t *ToolFunc) WithSchema(s *schema.Schema) *ToolFunc {
	t.schema = s
	return t
}

// Name returns the tool's identifier.
func (t *ToolFunc) Name() string {
	return t.name
}

// Params returns the declared parameter descriptors.
func (t *ToolFunc) Params() []Param {
	return t.params
}

// Call validates args against the schema (if any) and runs the function.
func (t *ToolFunc) Call(ctx context.Context, args map[string]any) (any, error) {
	if t.schema != nil {
		if err := t.schema.Validate(args); err != nil {
			return nil, err
		}
	}
	return t.fn(ctx, args)
}

// Compile-time check that ToolFunc implements Tool.
var _ Tool = (*ToolFunc)(nil)
