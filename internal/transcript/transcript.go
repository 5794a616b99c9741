// Package transcript holds the ordered conversation history shared between
// the interactive surface and in-flight completion dispatches. The store is
// owned by a single loop; dispatches only ever see value copies.
package transcript

import "time"

// Role identifies the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one conversation entry, immutable once created. CreatedAt is
// informational only and plays no part in ordering.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Transcript is an append-only message sequence; insertion order is
// conversation order. Only the owning loop appends, everyone else works
// from a Snapshot, so no locking is needed.
type Transcript struct {
	messages []Message
}

func New() *Transcript {
	return &Transcript{}
}

// Append adds a message to the end of the sequence. It never fails and is
// observable by the next Snapshot call.
func (t *Transcript) Append(m Message) {
	t.messages = append(t.messages, m)
}

// Snapshot returns an independent copy of the current sequence, safe to hand
// to a concurrently executing dispatch without synchronization.
func (t *Transcript) Snapshot() []Message {
	out := make([]Message, len(t.messages))
	copy(out, t.messages)
	return out
}

// Len reports the number of messages appended so far.
func (t *Transcript) Len() int {
	return len(t.messages)
}
