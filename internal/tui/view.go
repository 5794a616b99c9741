package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"parley/internal/transcript"
)

var (
	userLabelStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("2"))
	assistantLabelStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	timeStyle           = lipgloss.NewStyle().Faint(true)
	statusStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	spinnerStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	inputBarStyle       = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderTop(true)
)

func (m *Model) refreshTranscript() {
	var b strings.Builder
	for _, msg := range m.session.Messages() {
		b.WriteString(m.renderMessage(msg))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m *Model) renderMessage(msg transcript.Message) string {
	stamp := timeStyle.Render(msg.CreatedAt.Format("15:04"))
	if msg.Role == transcript.RoleUser {
		return userLabelStyle.Render("You") + " " + stamp + "\n" + msg.Content + "\n"
	}

	body := msg.Content + "\n"
	if m.renderer != nil {
		if rendered, err := m.renderer.Render(msg.Content); err == nil {
			body = strings.TrimRight(rendered, "\n") + "\n"
		}
	}
	return assistantLabelStyle.Render("Assistant") + " " + stamp + "\n" + body
}

func (m Model) View() string {
	if !m.ready {
		return "starting..."
	}

	inputView := m.input.View()
	if m.session.Pending() {
		waited := int(time.Since(m.session.PendingSince()).Seconds())
		inputView = fmt.Sprintf("%s thinking (%ds)", m.spinner.View(), waited)
	}

	var status string
	if m.status != "" {
		status = statusStyle.Render(m.status) + "\n"
	}

	return m.viewport.View() + "\n" + status + inputBarStyle.Width(m.width).Render(inputView)
}
