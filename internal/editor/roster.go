package editor

import (
	"context"
	"log/slog"
	"strings"

	"github.com/pavelanni/tutor/internal/i18n"
	"github.com/pavelanni/tutor/internal/model"
	"github.com/pavelanni/tutor/internal/prompt"
)

// AddStudents asks for names and ids until an empty name is entered and
// returns the number of students added. The caller refreshes the name index.
func (e *Editor) AddStudents(ctx context.Context, in prompt.Input) (int, error) {
	e.say(ctx, "AddStudentsHint")

	group := e.docs.Group()
	var added []model.Student
	taken := func(name string) bool {
		if group.HasStudent(name) {
			return true
		}
		for _, s := range added {
			if s.Name == name {
				return true
			}
		}
		return false
	}

	for {
		line, err := prompt.Ask(in, i18n.T(ctx, "PromptName"))
		if err != nil {
			return 0, err
		}
		name := strings.TrimSpace(line)
		if name == "" {
			break
		}
		if taken(name) {
			e.sayd(ctx, "DuplicateStudent", map[string]any{"Name": name})
			continue
		}
		id, err := prompt.Ask(in, i18n.T(ctx, "PromptID"))
		if err != nil {
			return 0, err
		}
		added = append(added, model.Student{Name: name, ID: strings.TrimSpace(id)})
	}

	group.Students = append(group.Students, added...)
	if len(added) > 0 {
		slog.Info("students added", "count", len(added))
		e.println(i18n.Tp(ctx, "StudentsAdded", len(added)))
	}
	return len(added), nil
}

// EditIDs walks the roster in document order and asks for each student's id,
// offering the current id as default.
func (e *Editor) EditIDs(ctx context.Context, in prompt.Input) error {
	group := e.docs.Group()
	ids := make([]string, len(group.Students))

	for i, st := range group.Students {
		e.println(st.Name)
		var (
			id  string
			err error
		)
		if st.ID != "" {
			id, err = prompt.AskDefault(in, i18n.T(ctx, "PromptID"), st.ID)
		} else {
			id, err = prompt.Ask(in, i18n.T(ctx, "PromptID"))
		}
		if err != nil {
			return err
		}
		ids[i] = strings.TrimSpace(id)
	}

	for i := range group.Students {
		group.Students[i].ID = ids[i]
	}
	return nil
}

// SetTitles asks for the title and subtitle of the group document.
// The subtitle is followed by the sheet number in reports.
func (e *Editor) SetTitles(ctx context.Context, in prompt.Input) error {
	title, err := prompt.Ask(in, i18n.T(ctx, "PromptTitle"))
	if err != nil {
		return err
	}
	subtitle, err := prompt.Ask(in, i18n.T(ctx, "PromptSubtitle"))
	if err != nil {
		return err
	}
	group := e.docs.Group()
	group.Title = title
	group.Subtitle = subtitle
	return nil
}
