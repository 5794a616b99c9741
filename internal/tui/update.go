package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"parley/internal/session"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := max(1, m.height-inputHeight)
		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.refreshTranscript()

	case tickMsg:
		if res, ok := m.session.Poll(); ok {
			if res.Err != nil {
				m.status = "no response received, try again"
			} else {
				m.status = ""
			}
			m.refreshTranscript()
		}
		cmds = append(cmds, tick())

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			m = m.submit()
			return m, tea.Batch(cmds...)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) submit() Model {
	err := m.session.Submit(m.input.Value())
	switch {
	case err == nil:
		m.input.Reset()
		m.status = ""
		m.refreshTranscript()
	case errors.Is(err, session.ErrBusy):
		m.status = "still waiting for the previous reply"
	case errors.Is(err, session.ErrEmptySubmission):
		// Nothing to send.
	default:
		m.status = err.Error()
	}
	return m
}
