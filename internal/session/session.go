// Package session owns the interaction loop's conversation state: one
// transcript, at most one in-flight dispatch, and the relay reconciling
// results back in. A Session is driven by a single owning loop; dispatches
// run on their own goroutines and only ever touch the relay.
package session

import (
	"errors"
	"strings"
	"time"

	"github.com/qmuntal/stateless"

	"parley/internal/dispatch"
	"parley/internal/logger"
	"parley/internal/relay"
	"parley/internal/transcript"
)

// FSM states
var (
	StateIdle     stateless.State = "Idle"
	StateAwaiting stateless.State = "AwaitingResponse"
)

// FSM triggers
var (
	triggerSubmit   stateless.Trigger = "Submit"
	triggerResponse stateless.Trigger = "Response"
	triggerFailure  stateless.Trigger = "Failure"
)

var (
	// ErrBusy rejects a submission while a dispatch is in flight.
	ErrBusy = errors.New("session: a response is still pending")
	// ErrEmptySubmission rejects blank input.
	ErrEmptySubmission = errors.New("session: empty submission")
)

// Session is the core behind both surfaces. Submit and Poll must be called
// from the same loop; neither ever blocks.
type Session struct {
	transcript   *transcript.Transcript
	relay        *relay.Relay
	dispatcher   *dispatch.Dispatcher
	model        string
	fsm          *stateless.StateMachine
	pendingSince time.Time
}

func New(d *dispatch.Dispatcher, model string) *Session {
	s := &Session{
		transcript: transcript.New(),
		relay:      relay.New(),
		dispatcher: d,
		model:      model,
	}

	fsm := stateless.NewStateMachine(StateIdle)
	fsm.Configure(StateIdle).
		Permit(triggerSubmit, StateAwaiting)
	fsm.Configure(StateAwaiting).
		Permit(triggerResponse, StateIdle).
		Permit(triggerFailure, StateIdle)
	s.fsm = fsm

	return s
}

// Submit appends the user's message and launches one dispatch over a
// snapshot of the transcript. While a response is pending further
// submissions are rejected with ErrBusy, keeping a single exchange in
// flight at any time.
func (s *Session) Submit(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptySubmission
	}
	if s.Pending() {
		return ErrBusy
	}

	s.transcript.Append(transcript.Message{
		Role:      transcript.RoleUser,
		Content:   text,
		CreatedAt: time.Now(),
	})
	if err := s.fsm.Fire(triggerSubmit); err != nil {
		return err
	}
	s.pendingSince = time.Now()

	s.dispatcher.Dispatch(dispatch.Request{
		Snapshot: s.transcript.Snapshot(),
		Model:    s.model,
	}, s.relay)
	return nil
}

// Poll performs one non-blocking relay check. When a result is present the
// session leaves AwaitingResponse either way: a successful result is
// appended to the transcript, a failure is logged and nothing is appended.
// The result is returned so the surface can show a notice.
func (s *Session) Poll() (relay.Result, bool) {
	res, ok := s.relay.TryReceive()
	if !ok {
		return relay.Result{}, false
	}

	if res.Err != nil {
		logger.L.Warn("dispatch yielded no message", "error", res.Err)
		s.fire(triggerFailure)
	} else {
		s.transcript.Append(res.Message)
		s.fire(triggerResponse)
	}
	s.pendingSince = time.Time{}
	return res, true
}

func (s *Session) fire(trigger stateless.Trigger) {
	if err := s.fsm.Fire(trigger); err != nil {
		logger.L.Error("state machine fire failed", "trigger", trigger, "error", err)
	}
}

// Messages returns a display snapshot of the conversation.
func (s *Session) Messages() []transcript.Message {
	return s.transcript.Snapshot()
}

// Pending reports whether a dispatch is awaiting its response.
func (s *Session) Pending() bool {
	return s.fsm.MustState() == StateAwaiting
}

// PendingSince returns when the in-flight dispatch was launched; zero while
// idle.
func (s *Session) PendingSince() time.Time {
	return s.pendingSince
}

// Model returns the model id sent with every dispatch.
func (s *Session) Model() string {
	return s.model
}
