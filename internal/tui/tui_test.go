package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/require"

	"parley/internal/dispatch"
	"parley/internal/session"
)

type mockLLM struct {
	resp  openai.ChatCompletionResponse
	block chan struct{}
}

func (m *mockLLM) CreateChatCompletion(ctx context.Context, r openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if m.block != nil {
		<-m.block
	}
	return m.resp, nil
}

func reply(content string) openai.ChatCompletionResponse {
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Role: "assistant", Content: content},
		}},
	}
}

func newModel(t *testing.T, client *mockLLM) Model {
	t.Helper()
	m := New(session.New(dispatch.New(client), "test-model"))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return updated.(Model)
}

func typeText(m Model, text string) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return updated.(Model)
}

func pressEnter(m Model) Model {
	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return updated.(Model)
}

func TestEnterSubmitsAndClearsInput(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	m := newModel(t, &mockLLM{resp: reply("hi"), block: gate})

	m = typeText(m, "hello")
	require.Equal(t, "hello", m.input.Value())

	m = pressEnter(m)
	require.Empty(t, m.input.Value())
	require.True(t, m.session.Pending())

	msgs := m.session.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, "hello", msgs[0].Content)
}

func TestEnterOnEmptyInputIsIgnored(t *testing.T) {
	m := newModel(t, &mockLLM{resp: reply("unused")})

	m = pressEnter(m)
	require.False(t, m.session.Pending())
	require.Empty(t, m.session.Messages())
	require.Empty(t, m.status)
}

func TestSubmitWhileWaitingFlashesStatus(t *testing.T) {
	gate := make(chan struct{})
	defer close(gate)
	m := newModel(t, &mockLLM{resp: reply("slow"), block: gate})

	m = pressEnter(typeText(m, "first"))
	m = pressEnter(typeText(m, "second"))

	require.NotEmpty(t, m.status)
	require.Len(t, m.session.Messages(), 1)
}

// A tick observes the relay result: the assistant message lands in the
// transcript and the pending indicator clears.
func TestTickDeliversResponse(t *testing.T) {
	m := newModel(t, &mockLLM{resp: reply("hi there")})
	m = pressEnter(typeText(m, "hello"))

	require.Eventually(t, func() bool {
		updated, _ := m.Update(tickMsg(time.Now()))
		m = updated.(Model)
		return !m.session.Pending()
	}, 2*time.Second, 5*time.Millisecond)

	msgs := m.session.Messages()
	require.Len(t, msgs, 2)
	require.Equal(t, "hi there", msgs[1].Content)
}

func TestCtrlCQuits(t *testing.T) {
	m := newModel(t, &mockLLM{resp: reply("unused")})
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.Equal(t, tea.Quit(), cmd())
}
