package editor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pavelanni/tutor/internal/i18n"
	"github.com/pavelanni/tutor/internal/model"
	"github.com/pavelanni/tutor/internal/prompt"
)

// NewSheet interactively defines a new problem sheet and appends it to the
// sheets document. End of input inside the problem loop finishes the sheet
// with the problems entered so far; an interrupt discards it.
func (e *Editor) NewSheet(ctx context.Context, in prompt.Input) (model.Sheet, error) {
	e.say(ctx, "NewSheetHint")
	sheets := e.docs.Sheets()

	no, err := e.askSheetNumber(ctx, in, sheets)
	if err != nil {
		return model.Sheet{}, err
	}

	sheet := model.Sheet{Number: no}
	for {
		p, err := e.askProblem(ctx, in, sheets, &sheet)
		if errors.Is(err, io.EOF) {
			e.println("")
			break
		}
		if err != nil {
			return model.Sheet{}, err
		}
		sheet.Problems = append(sheet.Problems, p)
	}

	sheets.Sheets = append(sheets.Sheets, sheet)
	slog.Info("sheet created", "sheet", sheet.Number, "problems", len(sheet.Problems))
	e.println(i18n.Tpd(ctx, "SheetCreated", len(sheet.Problems), map[string]any{"Sheet": sheet.Number}))
	return sheet, nil
}

func (e *Editor) askSheetNumber(ctx context.Context, in prompt.Input, sheets *model.SheetsDocument) (string, error) {
	def := strconv.Itoa(sheets.NextSheetNumber())
	for {
		line, err := prompt.AskDefault(in, i18n.T(ctx, "PromptNumber"), def)
		if err != nil {
			return "", err
		}
		no := strings.TrimSpace(line)
		if no == "" {
			no = def
		}
		if len(sheets.FindSheets(no)) > 0 {
			e.sayd(ctx, "SheetExists", map[string]any{"Sheet": no})
			continue
		}
		return no, nil
	}
}

// nextProblemNumber proposes a number above every problem of the document
// and of the sheet being built.
func nextProblemNumber(sheets *model.SheetsDocument, pending *model.Sheet) int {
	return max(sheets.NextProblemNumber(), model.HighestProblemNumber([]model.Sheet{*pending})+1)
}

func (e *Editor) askProblem(ctx context.Context, in prompt.Input, sheets *model.SheetsDocument, pending *model.Sheet) (model.Problem, error) {
	def := strconv.Itoa(nextProblemNumber(sheets, pending))

	var p model.Problem
	for {
		e.println("")
		line, err := prompt.AskDefault(in, i18n.T(ctx, "PromptProblem"), def)
		if err != nil {
			return model.Problem{}, err
		}
		no := strings.TrimSpace(line)
		if no == "" {
			no = def
		}
		if hasProblem(pending, no) {
			e.sayd(ctx, "ProblemExists", map[string]any{"Problem": no})
			continue
		}
		p.Number = no
		break
	}

	for {
		line, err := prompt.AskDefault(in, i18n.T(ctx, "PromptType"), string(model.Voted))
		if err != nil {
			return model.Problem{}, err
		}
		if t, ok := model.ParseProblemType(strings.TrimSpace(line)); ok {
			p.Type = t
			break
		}
		e.say(ctx, "OnlyTypes")
	}

	for {
		line, err := prompt.Ask(in, i18n.T(ctx, "PromptPoints"))
		if err != nil {
			return model.Problem{}, err
		}
		points := strings.TrimSpace(line)
		if isDigits(points) {
			p.Max = points
			break
		}
		e.say(ctx, "OnlyDigits")
	}
	return p, nil
}

func hasProblem(s *model.Sheet, no string) bool {
	for _, p := range s.Problems {
		if p.Number == no {
			return true
		}
	}
	return false
}

// isDigits reports whether s is a non-empty run of ASCII digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
