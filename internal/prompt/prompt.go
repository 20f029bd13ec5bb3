// Package prompt defines how the credvault core asks a human for text.
package prompt

import (
	"errors"
	"fmt"
)

var ErrScriptExhausted = errors.New("no scripted answer left")

// Provider returns the user's answer to promptText. Calls block until the
// answer is available and are never made concurrently.
type Provider interface {
	Prompt(promptText string) (string, error)
}

// Func adapts a plain function to Provider
type Func func(promptText string) (string, error)

// Prompt calls f
func (f Func) Prompt(promptText string) (string, error) {
	return f(promptText)
}

// Script answers prompts from a fixed list, in order, and records what it was asked
type Script struct {
	answers []string
	Asked   []string
}

// NewScript returns a Script that will answer with answers in order
func NewScript(answers ...string) *Script {
	return &Script{answers: answers}
}

// Prompt returns the next scripted answer
func (s *Script) Prompt(promptText string) (string, error) {
	s.Asked = append(s.Asked, promptText)
	if len(s.answers) == 0 {
		return "", fmt.Errorf("%w for %q", ErrScriptExhausted, promptText)
	}
	answer := s.answers[0]
	s.answers = s.answers[1:]
	return answer, nil
}

// Remaining returns how many answers have not been used
func (s *Script) Remaining() int {
	return len(s.answers)
}
