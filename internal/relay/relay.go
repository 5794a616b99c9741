// Package relay carries completed dispatch results back to the owning loop.
// It is the only synchronization point between dispatches and the loop;
// everything else crossing that boundary is passed by value.
package relay

import "parley/internal/transcript"

// Result is the payload of one finished dispatch: either an assistant
// message or the error that prevented one. Exactly one of the two is set.
type Result struct {
	Message transcript.Message
	Err     error
}

const defaultCapacity = 16

// Relay is a one-directional queue with many short-lived producers and a
// single consumer. Producers never block and the consumer never waits.
type Relay struct {
	ch chan Result
}

func New() *Relay {
	return &Relay{ch: make(chan Result, defaultCapacity)}
}

// Send enqueues a result. A full buffer means the consumer stopped
// draining; the result is dropped rather than blocking the producer.
func (r *Relay) Send(res Result) {
	select {
	case r.ch <- res:
	default:
	}
}

// TryReceive returns the next queued result if one is present, otherwise
// reports empty immediately. Results arrive in send order.
func (r *Relay) TryReceive() (Result, bool) {
	select {
	case res := <-r.ch:
		return res, true
	default:
		return Result{}, false
	}
}
