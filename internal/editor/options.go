package editor

import (
	"context"

	"github.com/pavelanni/tutor/internal/i18n"
	"github.com/pavelanni/tutor/internal/prompt"
	"github.com/pavelanni/tutor/internal/report"
)

// AskReportOptions asks what goes into a report, starting from
// report.DefaultOptions. The current-sheet questions are only asked when
// the score overview is included.
func AskReportOptions(ctx context.Context, in prompt.Input) (report.Options, error) {
	opts := report.DefaultOptions()
	var err error

	if opts.IncludeID, err = prompt.Confirm(in, i18n.T(ctx, "AskIncludeID"), opts.IncludeID); err != nil {
		return opts, err
	}
	if opts.IncludePercent, err = prompt.Confirm(in, i18n.T(ctx, "AskScoreOverview"), opts.IncludePercent); err != nil {
		return opts, err
	}
	if !opts.IncludePercent {
		return opts, nil
	}
	if opts.CurrentWritten, err = prompt.Confirm(in, i18n.T(ctx, "AskCurrentWritten"), opts.CurrentWritten); err != nil {
		return opts, err
	}
	if opts.CurrentVoted, err = prompt.Confirm(in, i18n.T(ctx, "AskCurrentVoted"), opts.CurrentVoted); err != nil {
		return opts, err
	}
	return opts, nil
}
