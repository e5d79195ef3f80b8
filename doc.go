// Package iterbot implements a ReAct (Reasoning and Acting) agent loop.
//
// The agent drives a language model through repeated Thought -> Action ->
// Observation cycles: the model reasons in free text, requests tool calls as
// JSON on an "Action:" line, and receives tool results back as observations
// until it emits a "Final Answer:" line or runs out of iterations.
//
// # Quick Start
//
//	model, err := models.NewOllama(models.OllamaConfig{Model: "llama3.2"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	agent := iterbot.New(model)
//	answer, err := agent.Run(ctx, "What time is it?")
//
// By default the agent carries a small set of time and date tools. Register
// your own tools at construction or afterwards:
//
//	agent := iterbot.New(model,
//	    iterbot.WithMaxIterations(10),
//	    iterbot.WithCustomSystemPrompt("Always show your work."),
//	)
//	agent.AddTool(searxng.New(searxng.Config{BaseURL: "http://localhost:8080/search"}))
//
// # Components
//
//   - [Agent]: owns the conversation, calls the model, dispatches tools, and
//     decides when to stop.
//   - [Registry]: insertion-ordered mapping from tool name to [Tool].
//   - [Model]: the inference boundary, a single Chat call over role-tagged
//     messages. See the models subpackage for langchaingo-backed
//     implementations.
//   - [ParseAction], [HasFinalAnswer], [ExtractFinalAnswer]: pure text
//     matching over model output.
//
// # Error Recovery
//
// Malformed actions, unknown tools, and tool call failures never abort a run.
// Each is rendered as an observation and fed back into the conversation so
// the model can see its own mistake and correct course. Only a failing model
// call propagates out of [Agent.Run] as an error.
package iterbot
