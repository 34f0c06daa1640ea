package editor

import (
	"context"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/pavelanni/tutor/internal/i18n"
	"github.com/pavelanni/tutor/internal/model"
	"github.com/pavelanni/tutor/internal/prompt"
)

// RateSheet asks which problems of sheetNo to rate and then records a score
// for each selected problem of every student. Unselected problems keep their
// previous value. A student's records for the sheet are replaced only after
// every student has been rated.
func (e *Editor) RateSheet(ctx context.Context, sheetNo string, in prompt.Input) error {
	sheet, err := e.resolveSheet(sheetNo)
	if err != nil {
		return err
	}
	e.sayd(ctx, "RateSheetIntro", map[string]any{"Sheet": sheet.Number})

	selected := make(map[string]bool, len(sheet.Problems))
	for _, p := range sheet.Problems {
		question := i18n.Td(ctx, "RateProblem", map[string]any{"Problem": p.Number, "Type": string(p.Type)})
		ok, err := prompt.Confirm(in, question, true)
		if err != nil {
			return err
		}
		if ok {
			selected[p.Number] = true
		}
	}
	if len(selected) == 0 {
		e.say(ctx, "NothingToRate")
		return nil
	}

	group := e.docs.Group()
	staged := make([]model.ScoreSheet, len(group.Students))
	for i := range group.Students {
		st := &group.Students[i]
		e.println("")
		e.println(st.Name)

		scores := model.ScoreSheet{Number: sheet.Number}
		for _, p := range sheet.Problems {
			value := st.Score(sheet.Number, p.Number)
			if selected[p.Number] {
				if value, err = e.askScore(ctx, in, p); err != nil {
					return err
				}
			}
			scores.Scores = append(scores.Scores, model.Score{Problem: p.Number, Value: value})
		}
		staged[i] = scores
	}

	for i := range group.Students {
		group.Students[i].ReplaceSheet(staged[i])
	}
	slog.Info("sheet rated", "sheet", sheet.Number, "problems", len(selected), "students", len(staged))
	return nil
}

// askScore reads a score for p until it is a number between 0 and the
// problem's maximum. The value is stored as entered.
func (e *Editor) askScore(ctx context.Context, in prompt.Input, p model.Problem) (string, error) {
	label := i18n.Td(ctx, "PromptScore", map[string]any{"Problem": p.Number})
	def := strings.TrimSpace(p.Max)
	limit := p.MaxPoints()
	for {
		line, err := prompt.AskDefault(in, label, def)
		if err != nil {
			return "", err
		}
		score := strings.TrimSpace(line)
		v, err := strconv.ParseFloat(score, 64)
		switch {
		case err != nil || math.IsNaN(v) || math.IsInf(v, 0):
			e.say(ctx, "OnlyNumbers")
		case v < 0:
			e.say(ctx, "ScoreNegative")
		case v > limit:
			e.say(ctx, "ScoreTooHigh")
		default:
			return score, nil
		}
	}
}
