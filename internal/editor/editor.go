// Package editor implements the interactive edits of a tutorial group:
// the roster, new problem sheets, scores and board presentations.
//
// Every operation reads through a prompt.Input and stages its changes.
// Changes reach the documents only when the operation finishes normally;
// an abandoned operation (end of input or interrupt) leaves them untouched.
package editor

import (
	"context"
	"fmt"
	"io"

	"github.com/pavelanni/tutor/internal/i18n"
	"github.com/pavelanni/tutor/internal/model"
)

// Documents gives the editor access to the in-memory documents.
// *store.Store satisfies it.
type Documents interface {
	Sheets() *model.SheetsDocument
	Group() *model.GroupDocument
}

// Editor runs the interactive operations against a pair of documents.
type Editor struct {
	docs Documents
	out  io.Writer
}

// New creates an Editor that prints hints and messages to out.
func New(docs Documents, out io.Writer) *Editor {
	return &Editor{docs: docs, out: out}
}

func (e *Editor) println(s string) {
	fmt.Fprintln(e.out, s)
}

func (e *Editor) say(ctx context.Context, msgID string) {
	e.println(i18n.T(ctx, msgID))
}

func (e *Editor) sayd(ctx context.Context, msgID string, data map[string]any) {
	e.println(i18n.Td(ctx, msgID, data))
}

// resolveSheet looks up sheetNo, reporting the model errors unchanged.
func (e *Editor) resolveSheet(sheetNo string) (*model.Sheet, error) {
	return e.docs.Sheets().Sheet(sheetNo)
}
