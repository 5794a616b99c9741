// Package tui is the interactive surface: a scrolling transcript viewport,
// an input line, and a spinner while a response is pending. All conversation
// state lives in the session; this package only renders it and forwards
// input.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"parley/internal/session"
)

const (
	pollEvery   = 100 * time.Millisecond
	wordWrap    = 80
	inputHeight = 3
)

// tickMsg drives the relay poll. Every tick checks the relay before any new
// input is handled, so response delivery is never starved by typing.
type tickMsg time.Time

type Model struct {
	session  *session.Session
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	status string
	width  int
	height int
	ready  bool
}

func New(s *session.Session) Model {
	input := textinput.New()
	input.Placeholder = "Type your message..."
	input.Prompt = "> "
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Points
	sp.Style = spinnerStyle

	// Markdown rendering is best-effort; a nil renderer falls back to the
	// raw message text.
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		renderer = nil
	}

	return Model{
		session:  s,
		input:    input,
		spinner:  sp,
		renderer: renderer,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, tick())
}

func tick() tea.Cmd {
	return tea.Tick(pollEvery, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
