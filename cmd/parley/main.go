package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"parley/internal/config"
	"parley/internal/dispatch"
	"parley/internal/llm"
	"parley/internal/logger"
	"parley/internal/repl"
	"parley/internal/session"
	"parley/internal/tui"
)

func main() {
	plain := flag.Bool("plain", false, "use the line-oriented surface instead of the TUI")
	model := flag.String("model", "", "override the configured model id")
	flag.Parse()

	// Configuration problems are fatal before any core component exists.
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.SetLevel(cfg.LogLevel)

	modelID := cfg.LLM.Model
	if *model != "" {
		modelID = *model
	}

	client := llm.NewClient(cfg.LLM)
	s := session.New(dispatch.New(client), modelID)

	if *plain {
		if err := repl.Run(s, os.Stdin, os.Stdout); err != nil {
			logger.L.Error("chat loop failed", "error", err)
			os.Exit(1)
		}
		return
	}

	if _, err := tea.NewProgram(tui.New(s), tea.WithAltScreen()).Run(); err != nil {
		logger.L.Error("tui failed", "error", err)
		os.Exit(1)
	}
}
