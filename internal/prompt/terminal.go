package prompt

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const maxHistory = 50

// Terminal is a line editor built on bubbletea. Tab accepts the current
// completion, up/down walk the history, Ctrl+D ends input and Ctrl+C interrupts.
type Terminal struct {
	in      *os.File
	out     io.Writer
	history []string
}

// NewTerminal creates a Terminal reading from in and drawing on out.
func NewTerminal(in *os.File, out io.Writer) *Terminal {
	return &Terminal{in: in, out: out}
}

// ReadLine implements Input.
func (t *Terminal) ReadLine(prompt string, completions []string) (string, error) {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.CharLimit = 1024
	ti.Focus()
	if len(completions) > 0 {
		ti.ShowSuggestions = true
		ti.SetSuggestions(Complete(completions, ""))
	}

	p := tea.NewProgram(lineModel{input: ti, history: t.history, historyIndex: -1},
		tea.WithInput(t.in), tea.WithOutput(t.out))
	final, err := p.Run()
	if err != nil {
		return "", err
	}
	m, ok := final.(lineModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type from bubbletea: %T", final)
	}

	switch {
	case m.eof:
		fmt.Fprintln(t.out, prompt)
		return "", io.EOF
	case m.interrupted:
		fmt.Fprintln(t.out, prompt)
		return "", ErrInterrupted
	}

	line := m.input.Value()
	fmt.Fprintln(t.out, prompt+line)
	t.addToHistory(line)
	return line, nil
}

func (t *Terminal) addToHistory(line string) {
	if line == "" {
		return
	}
	if n := len(t.history); n > 0 && t.history[n-1] == line {
		return
	}
	t.history = append(t.history, line)
	if len(t.history) > maxHistory {
		t.history = t.history[1:]
	}
}

type lineModel struct {
	input        textinput.Model
	history      []string
	historyIndex int
	pending      string
	done         bool
	eof          bool
	interrupted  bool
}

func (m lineModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC:
			m.interrupted = true
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlD:
			if m.input.Value() == "" {
				m.eof = true
				m.done = true
				return m, tea.Quit
			}
		case tea.KeyUp:
			if len(m.history) == 0 {
				return m, nil
			}
			if m.historyIndex == -1 {
				m.pending = m.input.Value()
				m.historyIndex = len(m.history) - 1
			} else if m.historyIndex > 0 {
				m.historyIndex--
			}
			m.input.SetValue(m.history[m.historyIndex])
			m.input.CursorEnd()
			return m, nil
		case tea.KeyDown:
			if m.historyIndex == -1 {
				return m, nil
			}
			if m.historyIndex < len(m.history)-1 {
				m.historyIndex++
				m.input.SetValue(m.history[m.historyIndex])
			} else {
				m.historyIndex = -1
				m.input.SetValue(m.pending)
			}
			m.input.CursorEnd()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m lineModel) View() string {
	if m.done {
		return ""
	}
	return m.input.View()
}
