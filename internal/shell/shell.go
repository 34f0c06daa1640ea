// Package shell runs the interactive command loop of tutor.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pavelanni/tutor/internal/editor"
	"github.com/pavelanni/tutor/internal/i18n"
	"github.com/pavelanni/tutor/internal/model"
	"github.com/pavelanni/tutor/internal/prompt"
	"github.com/pavelanni/tutor/internal/store"
)

// Prompt is shown before each command.
const Prompt = "(tutor) "

// Shell dispatches commands read from an Input to the editor and the store.
type Shell struct {
	store    *store.Store
	editor   *editor.Editor
	in       prompt.Input
	out      io.Writer
	style    styles
	changes  Changes
	commands []command
}

// Option configures a Shell.
type Option func(*Shell)

// WithChanges makes the shell warn about backing files changed on disk.
func WithChanges(c Changes) Option {
	return func(s *Shell) { s.changes = c }
}

// New creates a shell over st reading from in and writing to out.
func New(st *store.Store, in prompt.Input, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		store:  st,
		editor: editor.New(st, out),
		in:     in,
		out:    out,
		style:  newStyles(out),
	}
	s.commands = s.commandTable()
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run greets the user and executes commands until quit is confirmed or the
// context is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	s.intro(ctx)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.checkChanges(ctx)

		line, err := s.in.ReadLine(Prompt, s.commandNames())
		switch {
		case errors.Is(err, io.EOF):
			s.println("")
			quit, err := s.confirmQuit(ctx)
			if quit || errors.Is(err, io.EOF) {
				return nil
			}
			continue
		case errors.Is(err, prompt.ErrInterrupted):
			s.println("")
			continue
		case err != nil:
			return fmt.Errorf("read command: %w", err)
		}

		if s.Execute(ctx, line) {
			return nil
		}
	}
}

func (s *Shell) intro(ctx context.Context) {
	s.println(s.style.Title.Render(i18n.T(ctx, "Intro")))
	if s.store.SheetsCreated() {
		s.println(i18n.T(ctx, "NewSheetsFile"))
	}
	if s.store.GroupCreated() {
		s.println(i18n.T(ctx, "NewGroupFile"))
		if err := s.editor.SetTitles(ctx, s.in); err != nil {
			s.report(ctx, err, "")
		}
		s.println(i18n.T(ctx, "UseAddStudents"))
	}
	s.println("")
}

// Execute runs one command line and reports whether the shell should stop.
// Errors are reported to the user; none of them end the session.
func (s *Shell) Execute(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	if name == "?" {
		name = "help"
	}

	cmd, ok := s.lookup(name)
	if !ok {
		s.println(i18n.Td(ctx, "UnknownCommand", map[string]any{"Line": line}))
		return false
	}
	slog.Debug("command", "name", cmd.name, "arg", arg)

	quit, err := cmd.run(ctx, arg)
	if err != nil {
		s.report(ctx, err, arg)
	}
	return quit
}

// report prints err the way the user expects to see it.
func (s *Shell) report(ctx context.Context, err error, arg string) {
	switch {
	case prompt.Abandoned(err):
		s.println("")
	case errors.Is(err, model.ErrMissingSheetNumber):
		s.println(i18n.T(ctx, "SpecifySheet"))
	case errors.Is(err, model.ErrDuplicateSheet):
		s.println(s.style.Warning.Render(i18n.Td(ctx, "SheetDuplicate", map[string]any{"Sheet": arg})))
	case errors.Is(err, model.ErrSheetNotFound):
		s.println(i18n.T(ctx, "SheetNotDefined"))
	case errors.Is(err, model.ErrStudentNotUnique):
		slog.Warn("presenter lookup failed", "error", err)
		s.println(s.style.Error.Render(i18n.T(ctx, "Panic")))
	default:
		slog.Error("command failed", "error", err)
		s.println(s.style.Error.Render(i18n.Td(ctx, "Error", map[string]any{"Error": err.Error()})))
	}
}

func (s *Shell) confirmQuit(ctx context.Context) (bool, error) {
	ok, err := prompt.Confirm(s.in, i18n.T(ctx, "QuitConfirm"), false)
	if err != nil {
		s.println("")
		return false, err
	}
	return ok, nil
}

// checkChanges warns about backing files edited outside the session.
func (s *Shell) checkChanges(ctx context.Context) {
	if s.changes == nil {
		return
	}
	for _, path := range s.changes.Drain() {
		changed, err := s.store.Changed(path)
		if err != nil {
			slog.Warn("check file change", "path", path, "error", err)
			continue
		}
		if changed {
			s.println(s.style.Warning.Render(i18n.Td(ctx, "FileChanged", map[string]any{"Path": path})))
		}
	}
}

func (s *Shell) println(line string) {
	fmt.Fprintln(s.out, line)
}
