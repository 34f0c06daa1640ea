package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// LineReader reads lines from a plain reader. It is used when stdin is not a
// terminal (piped input, scripts) and ignores completions.
type LineReader struct {
	r *bufio.Reader
	w io.Writer
}

// NewLineReader wraps r; prompts are written to w.
func NewLineReader(r io.Reader, w io.Writer) *LineReader {
	return &LineReader{r: bufio.NewReader(r), w: w}
}

// ReadLine implements Input.
func (l *LineReader) ReadLine(prompt string, _ []string) (string, error) {
	fmt.Fprint(l.w, prompt)
	line, err := l.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return trimEOL(line), nil
		}
		return "", err
	}
	return trimEOL(line), nil
}

func trimEOL(s string) string {
	return strings.TrimRight(s, "\r\n")
}

// New returns a terminal line editor when in is a TTY and a LineReader otherwise.
func New(in *os.File, out io.Writer) Input {
	if !isatty.IsTerminal(in.Fd()) && !isatty.IsCygwinTerminal(in.Fd()) {
		return NewLineReader(in, out)
	}
	return NewTerminal(in, out)
}
