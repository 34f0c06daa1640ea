package shell

import (
	"context"
	"fmt"

	"github.com/pavelanni/tutor/internal/editor"
	"github.com/pavelanni/tutor/internal/i18n"
	"github.com/pavelanni/tutor/internal/report"
)

type command struct {
	name  string
	usage string // argument placeholder shown in help
	help  string // message id
	run   func(ctx context.Context, arg string) (quit bool, err error)
}

func (s *Shell) commandTable() []command {
	return []command{
		{name: "addstudents", help: "HelpAddStudents", run: s.addStudents},
		{name: "addids", help: "HelpAddIDs", run: s.addIDs},
		{name: "newsheet", help: "HelpNewSheet", run: s.newSheet},
		{name: "ratesheet", usage: "<no>", help: "HelpRateSheet", run: s.rateSheet},
		{name: "presented", usage: "<no>", help: "HelpPresented", run: s.presented},
		{name: "print", usage: "<no>", help: "HelpPrint", run: s.print},
		{name: "write", help: "HelpWrite", run: s.write},
		{name: "reload", help: "HelpReload", run: s.reload},
		{name: "quit", help: "HelpQuit", run: s.quit},
		{name: "help", usage: "[command]", help: "HelpHelp", run: s.help},
	}
}

func (s *Shell) lookup(name string) (command, bool) {
	for _, c := range s.commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func (s *Shell) commandNames() []string {
	names := make([]string, len(s.commands))
	for i, c := range s.commands {
		names[i] = c.name
	}
	return names
}

func (s *Shell) addStudents(ctx context.Context, _ string) (bool, error) {
	_, err := s.editor.AddStudents(ctx, s.in)
	s.store.RefreshNames()
	return false, err
}

func (s *Shell) addIDs(ctx context.Context, _ string) (bool, error) {
	return false, s.editor.EditIDs(ctx, s.in)
}

func (s *Shell) newSheet(ctx context.Context, _ string) (bool, error) {
	_, err := s.editor.NewSheet(ctx, s.in)
	return false, err
}

func (s *Shell) rateSheet(ctx context.Context, arg string) (bool, error) {
	return false, s.editor.RateSheet(ctx, arg, s.in)
}

func (s *Shell) presented(ctx context.Context, arg string) (bool, error) {
	return false, s.editor.RecordPresentations(ctx, arg, s.in, s.store.Names())
}

func (s *Shell) print(ctx context.Context, arg string) (bool, error) {
	sheet, err := s.store.Sheets().Sheet(arg)
	if err != nil {
		return false, err
	}
	opts, err := editor.AskReportOptions(ctx, s.in)
	if err != nil {
		return false, err
	}
	table, err := report.Build(s.store.Sheets(), s.store.Group(), sheet.Number, opts)
	if err != nil {
		return false, err
	}
	path := report.Path(s.store.GroupPath(), sheet.Number)
	if err := report.WriteFile(path, table); err != nil {
		return false, err
	}
	s.println(s.style.Success.Render(i18n.Td(ctx, "ReportWritten", map[string]any{"Path": path})))
	return false, nil
}

func (s *Shell) write(ctx context.Context, _ string) (bool, error) {
	if err := s.store.Save(); err != nil {
		return false, err
	}
	s.println(s.style.Success.Render(i18n.Td(ctx, "Saved", map[string]any{
		"Sheets": s.store.SheetsPath(),
		"Group":  s.store.GroupPath(),
	})))
	return false, nil
}

func (s *Shell) reload(ctx context.Context, _ string) (bool, error) {
	if err := s.store.Reload(); err != nil {
		return false, err
	}
	s.println(i18n.T(ctx, "Reloaded"))
	return false, nil
}

func (s *Shell) quit(ctx context.Context, _ string) (bool, error) {
	ok, err := s.confirmQuit(ctx)
	if err != nil {
		return false, nil
	}
	return ok, nil
}

func (s *Shell) help(ctx context.Context, arg string) (bool, error) {
	if arg != "" {
		if c, ok := s.lookup(arg); ok {
			s.println(i18n.T(ctx, c.help))
			return false, nil
		}
	}
	s.println(i18n.T(ctx, "HelpHeader"))
	for _, c := range s.commands {
		usage := c.name
		if c.usage != "" {
			usage += " " + c.usage
		}
		s.println(fmt.Sprintf("  %s  %s", s.style.Command.Render(fmt.Sprintf("%-20s", usage)), s.style.Muted.Render(i18n.T(ctx, c.help))))
	}
	return false, nil
}
