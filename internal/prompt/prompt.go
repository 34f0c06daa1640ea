// Package prompt reads interactive input for the editing operations.
//
// Operations receive an Input instead of talking to the terminal, so the same
// code runs against a bubbletea line editor, a plain reader, or a script.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrInterrupted is returned when the user interrupts input (Ctrl+C).
var ErrInterrupted = errors.New("input interrupted")

// Input reads one line after showing prompt. completions are candidate values
// for prefix completion; nil disables completion.
//
// ReadLine returns io.EOF when input ends and ErrInterrupted on interrupt.
// The returned line has its line terminator removed but is otherwise verbatim.
type Input interface {
	ReadLine(prompt string, completions []string) (string, error)
}

// Abandoned reports whether err means the user gave up on the current entry.
func Abandoned(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, ErrInterrupted)
}

// Ask reads a value after "label: ".
func Ask(in Input, label string) (string, error) {
	return in.ReadLine(label+": ", nil)
}

// AskComplete reads a value after "label: ", offering completions.
func AskComplete(in Input, label string, completions []string) (string, error) {
	return in.ReadLine(label+": ", completions)
}

// AskDefault reads a value after "label [def]: ". Empty input yields def.
func AskDefault(in Input, label, def string) (string, error) {
	line, err := in.ReadLine(fmt.Sprintf("%s [%s]: ", label, def), nil)
	if err != nil {
		return "", err
	}
	if line == "" {
		return def, nil
	}
	return line, nil
}

var (
	yesValues = []string{"y", "ye", "yes"}
	noValues  = []string{"n", "no"}
)

// Confirm asks a yes/no question until it gets a recognized answer.
// Answers are case-insensitive; empty input yields def.
func Confirm(in Input, question string, def bool) (bool, error) {
	hint := "[y/N]"
	if def {
		hint = "[Y/n]"
	}
	for {
		line, err := in.ReadLine(question+" "+hint+" ", nil)
		if err != nil {
			return false, err
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		switch {
		case answer == "":
			return def, nil
		case contains(yesValues, answer):
			return true, nil
		case contains(noValues, answer):
			return false, nil
		}
	}
}

func contains(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
