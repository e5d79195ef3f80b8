// Command iterbot is an interactive REPL for the ReAct agent.
//
// Usage:
//
//	iterbot [-config config.yaml] [-model llama3.2] [-verbose]
//
// Each line you type is one agent run; the conversation does not carry over
// between questions. Ctrl-C interrupts the current run, Ctrl-D exits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/iterbot/iterbot"
	"github.com/iterbot/iterbot/models"
	"github.com/iterbot/iterbot/tools/searxng"
)

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorDim   = "\033[2m"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	modelName := flag.String("model", "", "Ollama model name (overrides config)")
	verbose := flag.Bool("verbose", false, "print intermediate thoughts and observations")
	flag.Parse()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *modelName != "" {
		cfg.Model = *modelName
	}

	model, err := models.NewOllama(models.OllamaConfig{
		Model:     cfg.Model,
		ServerURL: cfg.OllamaURL,
	})
	if err != nil {
		return fmt.Errorf("create model: %w", err)
	}

	agent := buildAgent(model, cfg, *verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return repl(ctx, agent)
}

func buildAgent(model iterbot.Model, cfg Config, verbose bool) *iterbot.Agent {
	opts := []iterbot.Option{}
	if cfg.MaxIterations > 0 {
		opts = append(opts, iterbot.WithMaxIterations(cfg.MaxIterations))
	}
	if cfg.MaxCustomPromptSize > 0 {
		opts = append(opts, iterbot.WithMaxCustomPromptSize(cfg.MaxCustomPromptSize))
	}
	if cfg.CustomSystemPrompt != "" {
		opts = append(opts, iterbot.WithCustomSystemPrompt(cfg.CustomSystemPrompt))
	}
	if verbose {
		opts = append(opts, iterbot.WithTranscript(os.Stderr))
	}

	agent := iterbot.New(model, opts...)
	if cfg.Timezones {
		agent.AddTool(iterbot.NewTimezoneTimeTool())
	}
	if cfg.SearXNGURL != "" {
		agent.AddTool(searxng.New(searxng.Config{BaseURL: cfg.SearXNGURL}))
	}
	return agent
}

func repl(ctx context.Context, agent *iterbot.Agent) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          colorCyan + "you> " + colorReset,
		HistoryFile:     historyFile(),
		InterruptPrompt: "^C",
	})
	if err != nil {
		return fmt.Errorf("init readline: %w", err)
	}
	defer rl.Close()

	fmt.Printf("%sTools: %s%s\n", colorDim,
		strings.Join(agent.ToolNames(), ", "), colorReset)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		answer, err := agent.Run(ctx, input)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			fmt.Fprintf(os.Stderr, "%srun failed: %v%s\n", colorRed, err, colorReset)
			continue
		}
		fmt.Println(answer)
	}
}

func historyFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return home + "/.iterbot_history"
}
