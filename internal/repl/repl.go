// Package repl is the plain line-oriented surface: one submission per line,
// the assistant's reply printed before the next prompt. It mirrors what the
// TUI does with the same session core, minus the rendering.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"parley/internal/relay"
	"parley/internal/session"
)

const pollInterval = 25 * time.Millisecond

// Run drives the session over in/out until EOF or a "quit" line.
func Run(s *session.Session, in io.Reader, out io.Writer) error {
	fmt.Fprintf(out, "Chat with %s. Type your message and press Enter. Type 'quit' to exit.\n", s.Model())

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if strings.EqualFold(strings.TrimSpace(line), "quit") {
			break
		}

		if err := s.Submit(line); err != nil {
			if errors.Is(err, session.ErrEmptySubmission) {
				continue
			}
			return err
		}

		res := waitResult(s)
		if res.Err != nil {
			fmt.Fprintf(out, "no response: %v\n", res.Err)
			continue
		}
		fmt.Fprintln(out, res.Message.Content)
	}
	return scanner.Err()
}

// waitResult polls until the in-flight dispatch reports back. There is no
// timeout: every dispatch produces exactly one result.
func waitResult(s *session.Session) relay.Result {
	for {
		if res, ok := s.Poll(); ok {
			return res
		}
		time.Sleep(pollInterval)
	}
}
