// Package dispatch performs one completion exchange per send action, off the
// owning loop, and reports the outcome through the relay.
package dispatch

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"

	"parley/internal/llm"
	"parley/internal/logger"
	"parley/internal/relay"
	"parley/internal/transcript"
)

// Request is everything one exchange needs: an immutable conversation
// snapshot and the model to complete with. Each Request is consumed by
// exactly one dispatch.
type Request struct {
	Snapshot []transcript.Message
	Model    string
}

// ErrNoChoices reports a well-formed response that carried no completion.
var ErrNoChoices = errors.New("dispatch: response contained no choices")

// Dispatcher issues completion exchanges through a shared client. The client
// and its headers are read-only after construction, so dispatches can share
// them freely.
type Dispatcher struct {
	client llm.Client
}

func New(client llm.Client) *Dispatcher {
	return &Dispatcher{client: client}
}

// Dispatch starts one exchange in its own goroutine and returns immediately;
// the caller never waits on the exchange. Exactly one Result lands on the
// relay: the first returned choice mapped to an assistant message, or the
// error that prevented one. Transport failures, non-success statuses and
// undecodable bodies are all reported the same way. There is no cancellation
// or retry; a dispatch runs to completion or failure.
func (d *Dispatcher) Dispatch(req Request, out *relay.Relay) {
	go func() {
		out.Send(d.exchange(context.Background(), req))
	}()
}

func (d *Dispatcher) exchange(ctx context.Context, req Request) relay.Result {
	id := uuid.NewString()

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Snapshot))
	for _, m := range req.Snapshot {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	logger.L.Debug("dispatching completion request", "dispatch_id", id, "model", req.Model, "messages", len(messages))
	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: messages,
	})
	if err != nil {
		logger.L.Error("completion exchange failed", "dispatch_id", id, "model", req.Model, "error", err)
		return relay.Result{Err: err}
	}
	if len(resp.Choices) == 0 {
		logger.L.Warn("completion response had no choices", "dispatch_id", id, "model", req.Model)
		return relay.Result{Err: ErrNoChoices}
	}

	// Additional choices, if any, are discarded.
	return relay.Result{Message: transcript.Message{
		Role:      transcript.RoleAssistant,
		Content:   resp.Choices[0].Message.Content,
		CreatedAt: time.Now(),
	}}
}
