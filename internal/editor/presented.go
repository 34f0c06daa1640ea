package editor

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/pavelanni/tutor/internal/i18n"
	"github.com/pavelanni/tutor/internal/model"
	"github.com/pavelanni/tutor/internal/prompt"
)

// RecordPresentations asks who presented each problem of sheetNo at the board
// and increments their board count. names is the completion index; only those
// names are accepted. An empty answer skips the problem.
func (e *Editor) RecordPresentations(ctx context.Context, sheetNo string, in prompt.Input, names []string) error {
	sheet, err := e.resolveSheet(sheetNo)
	if err != nil {
		return err
	}
	e.sayd(ctx, "PresentedIntro", map[string]any{"Sheet": sheet.Number})

	group := e.docs.Group()
	increments := make(map[int]int)
	for _, p := range sheet.Problems {
		presenter, err := e.askPresenter(ctx, in, p, names)
		if err != nil {
			return err
		}
		if presenter == "" {
			continue
		}
		idx := studentIndexes(group, presenter)
		if len(idx) != 1 {
			return fmt.Errorf("%w: %q matches %d students", model.ErrStudentNotUnique, presenter, len(idx))
		}
		increments[idx[0]]++
	}

	for i, n := range increments {
		group.Students[i].Board += n
	}
	slog.Info("presentations recorded", "sheet", sheet.Number, "students", len(increments))
	return nil
}

func (e *Editor) askPresenter(ctx context.Context, in prompt.Input, p model.Problem, names []string) (string, error) {
	label := i18n.Td(ctx, "PromptPresenter", map[string]any{"Problem": p.Number})
	for {
		line, err := prompt.AskComplete(in, label, names)
		if err != nil {
			return "", err
		}
		name := strings.TrimSpace(line)
		if name == "" || slices.Contains(names, name) {
			return name, nil
		}
		e.say(ctx, "UnknownStudent")
	}
}

func studentIndexes(g *model.GroupDocument, name string) []int {
	var idx []int
	for i, s := range g.Students {
		if s.Name == name {
			idx = append(idx, i)
		}
	}
	return idx
}
