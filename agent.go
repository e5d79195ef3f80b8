package iterbot

import (
	"context"
	"fmt"
	"io"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// Default configuration values.
const (
	DefaultMaxIterations       = 15
	DefaultMaxCustomPromptSize = 500
)

// loopDetectionWindow is the number of trailing identical tool attempts that
// trigger a deliberate stop. This is a heuristic guard against runaway
// repetition, not a proof the agent made no progress.
const loopDetectionWindow = 3

// Status describes how a run terminated.
type Status string

const (
	// StatusAnswer means the model emitted a final answer.
	StatusAnswer Status = "answer"

	// StatusLoopDetected means the same tool was attempted three times in a
	// row and the run was stopped before a fourth invocation.
	StatusLoopDetected Status = "loop_detected"

	// StatusIterationLimit means the iteration budget ran out before the
	// model produced a final answer.
	StatusIterationLimit Status = "iteration_limit"
)

// RunResult is the outcome of one [Agent.Execute] run.
type RunResult struct {
	// Answer is the extracted final answer, or a fixed human-readable stop
	// message when Status is not StatusAnswer.
	Answer string

	// Status describes how the run terminated.
	Status Status

	// Iterations is the number of completed loop iterations.
	Iterations int
}

// Agent drives a model through the ReAct loop: it owns the conversation
// history, invokes the model, parses tool calls out of the response text,
// dispatches them through its [Registry], and feeds observations back until
// the model emits a final answer or the iteration budget runs out.
//
// # Construction
//
//	agent := iterbot.New(model,
//	    iterbot.WithMaxIterations(10),
//	    iterbot.WithCustomSystemPrompt("Answer in French."),
//	)
//
// Without WithTools the agent gets a fresh [DefaultTools] registry; the
// default registry is never shared between agent instances.
//
// # Concurrency
//
// Each Execute call builds its own history and run state, but management
// calls (AddTool, SetCustomSystemPrompt, ...) mutate the registry and the
// synthesized system prompt. The design assumes a single active run at a
// time; do not mutate tools mid-run.
type Agent struct {
	model               Model
	registry            *Registry
	maxIterations       int
	maxCustomPromptSize int
	customPrompt        string
	systemPrompt        string
	transcript          io.Writer
}

// Option configures an Agent at construction.
type Option func(*Agent)

// WithTools sets the tool registry. The registry is used as-is, so callers
// sharing one registry across agents share its mutations too.
func WithTools(registry *Registry) Option {
	return func(a *Agent) {
		a.registry = registry
	}
}

// WithMaxIterations sets the iteration budget for each run.
func WithMaxIterations(n int) Option {
	return func(a *Agent) {
		a.maxIterations = n
	}
}

// WithCustomSystemPrompt sets the custom instruction block appended to the
// ReAct system prompt. It is validated and size-bounded like
// [Agent.SetCustomSystemPrompt].
func WithCustomSystemPrompt(prompt string) Option {
	return func(a *Agent) {
		a.customPrompt = prompt
	}
}

// WithMaxCustomPromptSize sets the character limit applied when validating
// custom system prompts.
func WithMaxCustomPromptSize(n int) Option {
	return func(a *Agent) {
		a.maxCustomPromptSize = n
	}
}

// WithTranscript sets a writer that receives each model response and
// observation as the run progresses. It only mirrors text that already flows
// through the loop; it never changes behavior. Nil disables the transcript.
func WithTranscript(w io.Writer) Option {
	return func(a *Agent) {
		a.transcript = w
	}
}

// New creates an Agent for the given model.
func New(model Model, opts ...Option) *Agent {
	a := &Agent{
		model:               model,
		maxIterations:       DefaultMaxIterations,
		maxCustomPromptSize: DefaultMaxCustomPromptSize,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.registry == nil {
		a.registry = DefaultTools()
	}
	a.customPrompt = ValidateCustomPrompt(a.customPrompt, a.maxCustomPromptSize)
	a.refreshSystemPrompt()
	return a
}

// refreshSystemPrompt re-synthesizes the system prompt from the current
// registry and custom prompt. Must be called after every mutation of either;
// a stale prompt is a correctness bug because the model would be told about
// tools that do not exist (or miss ones that do).
func (a *Agent) refreshSystemPrompt() {
	a.systemPrompt = SynthesizeSystemPrompt(a.registry, a.customPrompt)
}

// AddTool registers a tool and re-synthesizes the system prompt. Only future
// runs see the change; a running conversation's history is already fixed.
func (a *Agent) AddTool(tool Tool) {
	a.registry.Register(tool)
	a.refreshSystemPrompt()
}

// RemoveTool unregisters a tool by name and re-synthesizes the system
// prompt. Unknown names are ignored.
func (a *Agent) RemoveTool(name string) {
	a.registry.Unregister(name)
	a.refreshSystemPrompt()
}

// ToolNames returns the registered tool names in prompt listing order.
func (a *Agent) ToolNames() []string {
	return a.registry.Names()
}

// SetCustomSystemPrompt validates, size-bounds, and installs a new custom
// instruction block, then re-synthesizes the system prompt. Empty or
// all-whitespace input clears the block.
func (a *Agent) SetCustomSystemPrompt(prompt string) {
	a.customPrompt = ValidateCustomPrompt(prompt, a.maxCustomPromptSize)
	a.refreshSystemPrompt()
}

// CustomSystemPrompt returns the current custom instruction block, or ""
// when none is set.
func (a *Agent) CustomSystemPrompt() string {
	return a.customPrompt
}

// ClearCustomSystemPrompt removes the custom instruction block, reverting to
// the plain ReAct system prompt.
func (a *Agent) ClearCustomSystemPrompt() {
	a.customPrompt = ""
	a.refreshSystemPrompt()
}

// SystemPrompt returns the currently synthesized system prompt.
func (a *Agent) SystemPrompt() string {
	return a.systemPrompt
}

// Run executes the agent and returns the final answer text, or a fixed stop
// message when the run terminated without one. It is a convenience wrapper
// around [Agent.Execute]; the only possible error is a failing model call.
func (a *Agent) Run(ctx context.Context, userInput string) (string, error) {
	result, err := a.Execute(ctx, userInput)
	if err != nil {
		return "", err
	}
	return result.Answer, nil
}

// Execute runs the ReAct loop for the given user input.
//
// Each iteration calls the model with the full history, then:
//
//  1. Attempts to parse an Action. A malformed payload or an unknown or
//     failing tool becomes an error observation; a well-formed Action is
//     dispatched through the registry and its result becomes the
//     observation. Three consecutive attempts of the same tool stop the run
//     before a fourth invocation.
//  2. Checks the original response for a final answer. The answer only wins
//     when no tool executed this iteration: a model that emits both an
//     Action and a Final Answer in one turn is presumed mid-reasoning, and
//     the tool call it explicitly requested must not be short-circuited.
//  3. Otherwise appends the raw response and the observation to the history
//     and continues.
//
// Only a model call failure returns a non-nil error; every other failure
// mode is recovered inside the loop or reported through RunResult.Status.
func (a *Agent) Execute(ctx context.Context, userInput string) (*RunResult, error) {
	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, a.systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, userInput),
	}

	var recentActions []string

	for iteration := 0; iteration < a.maxIterations; iteration++ {
		content, err := a.model.Chat(ctx, messages)
		if err != nil {
			return nil, fmt.Errorf("model call failed: %w", err)
		}
		a.emit("\nAgent:\n%s\n", content)

		toolExecuted := false
		var observation string

		action, parseErr := ParseAction(content)
		switch {
		case parseErr != nil:
			observation = fmt.Sprintf("Observation: Error parsing tool call - %v", parseErr)

		case action == nil:
			observation = "Observation: No valid Action found."

		default:
			recentActions = append(recentActions, action.Tool)
			if isRepeated(recentActions, action.Tool) {
				stop := fmt.Sprintf("Agent stopped: repeated action %q detected.", action.Tool)
				a.emit("%s\n", stop)
				return &RunResult{
					Answer:     stop,
					Status:     StatusLoopDetected,
					Iterations: iteration,
				}, nil
			}

			tool, ok := a.registry.Get(action.Tool)
			if !ok {
				observation = fmt.Sprintf("Observation: Unknown tool %q", action.Tool)
			} else if result, callErr := callTool(ctx, tool, action.Args); callErr != nil {
				observation = fmt.Sprintf(
					"Observation: Error executing tool %q - %v", action.Tool, callErr)
			} else {
				observation = fmt.Sprintf("Observation: %v", result)
				toolExecuted = true
			}
		}

		// The answer check runs against the original response regardless of
		// what the action handling above produced.
		if HasFinalAnswer(content) && !toolExecuted {
			return &RunResult{
				Answer:     ExtractFinalAnswer(content),
				Status:     StatusAnswer,
				Iterations: iteration,
			}, nil
		}

		a.emit("%s\n", observation)
		messages = append(messages,
			llms.TextParts(schema.ChatMessageTypeAI, content),
			llms.TextParts(schema.ChatMessageTypeHuman, observation),
		)
	}

	a.emit("\nAgent stopped: iteration limit reached.\n")
	return &RunResult{
		Answer:     "Agent stopped: iteration limit reached.",
		Status:     StatusIterationLimit,
		Iterations: a.maxIterations,
	}, nil
}

// isRepeated reports whether the last loopDetectionWindow entries of
// recentActions all equal name.
func isRepeated(recentActions []string, name string) bool {
	if len(recentActions) < loopDetectionWindow {
		return false
	}
	for _, n := range recentActions[len(recentActions)-loopDetectionWindow:] {
		if n != name {
			return false
		}
	}
	return true
}

// callTool dispatches one tool call, converting a panic inside the tool into
// an error so a misbehaving tool cannot take down the run.
func callTool(ctx context.Context, tool Tool, args map[string]any) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("tool panicked: %v", r)
		}
	}()
	return tool.Call(ctx, args)
}

// emit writes to the transcript writer, if one is configured.
func (a *Agent) emit(format string, args ...any) {
	if a.transcript == nil {
		return
	}
	fmt.Fprintf(a.transcript, format, args...)
}
