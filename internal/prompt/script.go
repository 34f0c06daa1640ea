package prompt

import "io"

// Script control lines.
const (
	// Interrupt makes ReadLine return ErrInterrupted.
	Interrupt = "\x03"
	// EndOfInput makes ReadLine return io.EOF once; later lines are still replayed.
	EndOfInput = "\x04"
)

// Script is an Input that replays fixed lines and returns io.EOF when they run out.
// It records every prompt and completion list it was asked with.
type Script struct {
	lines       []string
	pos         int
	Prompts     []string
	Completions [][]string
}

// NewScript creates a Script replaying lines in order.
func NewScript(lines ...string) *Script {
	return &Script{lines: lines}
}

// ReadLine implements Input.
func (s *Script) ReadLine(prompt string, completions []string) (string, error) {
	s.Prompts = append(s.Prompts, prompt)
	s.Completions = append(s.Completions, completions)
	if s.pos >= len(s.lines) {
		return "", io.EOF
	}
	line := s.lines[s.pos]
	s.pos++
	switch line {
	case Interrupt:
		return "", ErrInterrupted
	case EndOfInput:
		return "", io.EOF
	}
	return line, nil
}

// Remaining returns the number of unread lines.
func (s *Script) Remaining() int {
	return len(s.lines) - s.pos
}
