package editor

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/pavelanni/tutor/internal/i18n"
	"github.com/pavelanni/tutor/internal/model"
	"github.com/pavelanni/tutor/internal/prompt"
	"github.com/pavelanni/tutor/internal/report"
)

func TestMain(m *testing.M) {
	if err := i18n.Init("en"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

type docs struct {
	sheets *model.SheetsDocument
	group  *model.GroupDocument
}

func (d *docs) Sheets() *model.SheetsDocument { return d.sheets }
func (d *docs) Group() *model.GroupDocument   { return d.group }

func newEditor(t *testing.T, sheets []model.Sheet, students []model.Student) (*Editor, *docs, *bytes.Buffer) {
	t.Helper()
	d := &docs{
		sheets: &model.SheetsDocument{Sheets: sheets},
		group:  &model.GroupDocument{Students: students},
	}
	var out bytes.Buffer
	return New(d, &out), d, &out
}

func rateSheets() []model.Sheet {
	return []model.Sheet{{Number: "1", Problems: []model.Problem{
		{Number: "1", Type: model.Written, Max: "10"},
		{Number: "2", Type: model.Voted, Max: "5"},
	}}}
}

func TestAddStudents(t *testing.T) {
	e, d, _ := newEditor(t, nil, nil)
	in := prompt.NewScript("Alice", "123", "Bob", "", "")

	n, err := e.AddStudents(context.Background(), in)
	if err != nil {
		t.Fatalf("AddStudents: %v", err)
	}
	if n != 2 {
		t.Errorf("added = %d, want 2", n)
	}
	want := []model.Student{{Name: "Alice", ID: "123"}, {Name: "Bob", ID: ""}}
	if !reflect.DeepEqual(d.group.Students, want) {
		t.Errorf("students = %+v, want %+v", d.group.Students, want)
	}
	if in.Prompts[0] != "Name: " || in.Prompts[1] != "ID: " {
		t.Errorf("unexpected prompts %q", in.Prompts)
	}
}

func TestAddStudentsDuplicate(t *testing.T) {
	e, d, out := newEditor(t, nil, []model.Student{{Name: "Alice"}})
	in := prompt.NewScript("Alice", " Carol ", "9", "Carol", "")

	n, err := e.AddStudents(context.Background(), in)
	if err != nil {
		t.Fatalf("AddStudents: %v", err)
	}
	if n != 1 {
		t.Errorf("added = %d, want 1", n)
	}
	if got := len(d.group.Students); got != 2 {
		t.Fatalf("roster size = %d, want 2", got)
	}
	if d.group.Students[1].Name != "Carol" || d.group.Students[1].ID != "9" {
		t.Errorf("new student = %+v", d.group.Students[1])
	}
	if c := strings.Count(out.String(), "already on the roster"); c != 2 {
		t.Errorf("duplicate message printed %d times, want 2:\n%s", c, out.String())
	}
}

func TestAddStudentsAbandoned(t *testing.T) {
	e, d, _ := newEditor(t, nil, nil)
	in := prompt.NewScript("Dan", "1")

	if _, err := e.AddStudents(context.Background(), in); !errors.Is(err, io.EOF) {
		t.Fatalf("AddStudents error = %v, want io.EOF", err)
	}
	if len(d.group.Students) != 0 {
		t.Errorf("abandoned pass added students: %+v", d.group.Students)
	}
}

func TestEditIDs(t *testing.T) {
	e, d, out := newEditor(t, nil, []model.Student{{Name: "Alice", ID: "123"}, {Name: "Bob"}})
	in := prompt.NewScript("", "456")

	if err := e.EditIDs(context.Background(), in); err != nil {
		t.Fatalf("EditIDs: %v", err)
	}
	if d.group.Students[0].ID != "123" || d.group.Students[1].ID != "456" {
		t.Errorf("ids = %q, %q", d.group.Students[0].ID, d.group.Students[1].ID)
	}
	if in.Prompts[0] != "ID [123]: " || in.Prompts[1] != "ID: " {
		t.Errorf("prompts = %q", in.Prompts)
	}
	if !strings.Contains(out.String(), "Alice\n") || !strings.Contains(out.String(), "Bob\n") {
		t.Errorf("names not printed:\n%s", out.String())
	}
}

func TestEditIDsAbandoned(t *testing.T) {
	e, d, _ := newEditor(t, nil, []model.Student{{Name: "Alice", ID: "123"}, {Name: "Bob"}})
	in := prompt.NewScript("999", prompt.Interrupt)

	if err := e.EditIDs(context.Background(), in); !errors.Is(err, prompt.ErrInterrupted) {
		t.Fatalf("EditIDs error = %v, want ErrInterrupted", err)
	}
	if d.group.Students[0].ID != "123" {
		t.Errorf("abandoned pass changed id to %q", d.group.Students[0].ID)
	}
}

func TestSetTitles(t *testing.T) {
	e, d, _ := newEditor(t, nil, nil)
	in := prompt.NewScript("Analysis I", "Blatt ")

	if err := e.SetTitles(context.Background(), in); err != nil {
		t.Fatalf("SetTitles: %v", err)
	}
	if d.group.Title != "Analysis I" || d.group.Subtitle != "Blatt " {
		t.Errorf("titles = %q / %q", d.group.Title, d.group.Subtitle)
	}
}

func numberedSheets() []model.Sheet {
	return []model.Sheet{
		{Number: "1", Problems: []model.Problem{{Number: "1", Type: model.Written, Max: "4"}, {Number: "2", Type: model.Voted, Max: "4"}}},
		{Number: "2", Problems: []model.Problem{{Number: "3", Type: model.Written, Max: "4"}}},
		{Number: "x"},
	}
}

func TestNewSheet(t *testing.T) {
	e, d, _ := newEditor(t, numberedSheets(), nil)
	in := prompt.NewScript("", "", "w", "10", "", "", "5")

	sheet, err := e.NewSheet(context.Background(), in)
	if err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	want := model.Sheet{Number: "3", Problems: []model.Problem{
		{Number: "4", Type: model.Written, Max: "10"},
		{Number: "5", Type: model.Voted, Max: "5"},
	}}
	if !reflect.DeepEqual(sheet, want) {
		t.Errorf("sheet = %+v, want %+v", sheet, want)
	}
	if got := d.sheets.Sheets[len(d.sheets.Sheets)-1]; !reflect.DeepEqual(got, want) {
		t.Errorf("appended sheet = %+v", got)
	}
	wantPrompts := []string{"Number [3]: ", "Problem [4]: ", "Type [v]: ", "Points: ", "Problem [5]: ", "Type [v]: ", "Points: ", "Problem [6]: "}
	if !reflect.DeepEqual(in.Prompts, wantPrompts) {
		t.Errorf("prompts = %q, want %q", in.Prompts, wantPrompts)
	}
}

func TestNewSheetRePrompts(t *testing.T) {
	e, d, out := newEditor(t, numberedSheets(), nil)
	in := prompt.NewScript("1", "7", "", "q", "w", "abc", "", "1.5", "12", "4", "", "", "3")

	sheet, err := e.NewSheet(context.Background(), in)
	if err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	want := model.Sheet{Number: "7", Problems: []model.Problem{
		{Number: "4", Type: model.Written, Max: "12"},
		{Number: "5", Type: model.Voted, Max: "3"},
	}}
	if !reflect.DeepEqual(sheet, want) {
		t.Errorf("sheet = %+v, want %+v", sheet, want)
	}
	if len(d.sheets.Sheets) != 4 {
		t.Errorf("sheet count = %d, want 4", len(d.sheets.Sheets))
	}
	for _, msg := range []string{"Sheet 1 already exists.", "Only v and w allowed as type", "Enter Points (only digits allowed)", "Problem 4 is already on this sheet."} {
		if !strings.Contains(out.String(), msg) {
			t.Errorf("output missing %q:\n%s", msg, out.String())
		}
	}
}

func TestNewSheetEmpty(t *testing.T) {
	e, d, _ := newEditor(t, nil, nil)
	in := prompt.NewScript("")

	sheet, err := e.NewSheet(context.Background(), in)
	if err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	if sheet.Number != "1" || len(sheet.Problems) != 0 {
		t.Errorf("sheet = %+v, want empty sheet 1", sheet)
	}
	if len(d.sheets.Sheets) != 1 {
		t.Errorf("sheet count = %d, want 1", len(d.sheets.Sheets))
	}
}

func TestNewSheetAbandoned(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		wantErr error
	}{
		{"eof at number", nil, io.EOF},
		{"interrupt at number", []string{prompt.Interrupt}, prompt.ErrInterrupted},
		{"interrupt in problem", []string{"", "", "w", prompt.Interrupt}, prompt.ErrInterrupted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, d, _ := newEditor(t, numberedSheets(), nil)
			_, err := e.NewSheet(context.Background(), prompt.NewScript(tt.lines...))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("NewSheet error = %v, want %v", err, tt.wantErr)
			}
			if len(d.sheets.Sheets) != 3 {
				t.Errorf("sheet count = %d, want 3", len(d.sheets.Sheets))
			}
		})
	}
}

func TestNewSheetEOFDropsPartialProblem(t *testing.T) {
	e, _, _ := newEditor(t, nil, nil)
	in := prompt.NewScript("", "", "w", "10", "", "v")

	sheet, err := e.NewSheet(context.Background(), in)
	if err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	if len(sheet.Problems) != 1 || sheet.Problems[0].Number != "1" {
		t.Errorf("problems = %+v, want only problem 1", sheet.Problems)
	}
}

func TestRateSheet(t *testing.T) {
	e, d, out := newEditor(t, rateSheets(), []model.Student{{Name: "Alice"}})
	in := prompt.NewScript("y", "n", "7")

	if err := e.RateSheet(context.Background(), "1", in); err != nil {
		t.Fatalf("RateSheet: %v", err)
	}
	want := []model.ScoreSheet{{Number: "1", Scores: []model.Score{{Problem: "1", Value: "7"}, {Problem: "2", Value: ""}}}}
	if !reflect.DeepEqual(d.group.Students[0].Sheets, want) {
		t.Errorf("scores = %+v, want %+v", d.group.Students[0].Sheets, want)
	}
	if !strings.Contains(out.String(), "Rate sheet no 1. Be gentle!") {
		t.Errorf("intro missing:\n%s", out.String())
	}
	if in.Prompts[0] != "Rate problem 1(w)? [Y/n] " {
		t.Errorf("question = %q", in.Prompts[0])
	}
	if in.Prompts[2] != "Problem 1 [10]: " {
		t.Errorf("score prompt = %q", in.Prompts[2])
	}
}

func TestRateSheetRePrompts(t *testing.T) {
	e, d, out := newEditor(t, rateSheets(), []model.Student{{Name: "Alice"}})
	in := prompt.NewScript("", "n", "11", "-1", "abc", "NaN", "Inf", "")

	if err := e.RateSheet(context.Background(), "1", in); err != nil {
		t.Fatalf("RateSheet: %v", err)
	}
	if got := d.group.Students[0].Score("1", "1"); got != "10" {
		t.Errorf("score = %q, want default 10", got)
	}
	text := out.String()
	if !strings.Contains(text, "Score is greater than maximal score") {
		t.Errorf("missing too-high message:\n%s", text)
	}
	if !strings.Contains(text, "Score must not be negative") {
		t.Errorf("missing negative message:\n%s", text)
	}
	if c := strings.Count(text, "Only numbers allowed"); c != 3 {
		t.Errorf("number message printed %d times, want 3", c)
	}
}

func TestRateSheetCarryForward(t *testing.T) {
	students := []model.Student{{Name: "Alice", Sheets: []model.ScoreSheet{
		{Number: "1", Scores: []model.Score{{Problem: "1", Value: "7"}, {Problem: "2", Value: "3"}}},
	}}}
	e, d, _ := newEditor(t, rateSheets(), students)

	if err := e.RateSheet(context.Background(), "1", prompt.NewScript("n", "y", "4")); err != nil {
		t.Fatalf("RateSheet: %v", err)
	}
	first := append([]model.ScoreSheet(nil), d.group.Students[0].Sheets...)
	want := []model.ScoreSheet{{Number: "1", Scores: []model.Score{{Problem: "1", Value: "7"}, {Problem: "2", Value: "4"}}}}
	if !reflect.DeepEqual(first, want) {
		t.Fatalf("scores = %+v, want %+v", first, want)
	}

	if err := e.RateSheet(context.Background(), "1", prompt.NewScript("n", "y", "4")); err != nil {
		t.Fatalf("RateSheet again: %v", err)
	}
	if !reflect.DeepEqual(d.group.Students[0].Sheets, first) {
		t.Errorf("second pass changed scores: %+v", d.group.Students[0].Sheets)
	}
}

func TestRateSheetNothingSelected(t *testing.T) {
	e, d, out := newEditor(t, rateSheets(), []model.Student{{Name: "Alice"}})
	in := prompt.NewScript("n", "no")

	if err := e.RateSheet(context.Background(), "1", in); err != nil {
		t.Fatalf("RateSheet: %v", err)
	}
	if len(d.group.Students[0].Sheets) != 0 {
		t.Errorf("unexpected scores: %+v", d.group.Students[0].Sheets)
	}
	if !strings.Contains(out.String(), "No problems selected.") {
		t.Errorf("missing message:\n%s", out.String())
	}
}

func TestRateSheetAbandoned(t *testing.T) {
	e, d, _ := newEditor(t, rateSheets(), []model.Student{{Name: "Alice"}, {Name: "Bob"}})
	in := prompt.NewScript("y", "n", "7")

	if err := e.RateSheet(context.Background(), "1", in); !errors.Is(err, io.EOF) {
		t.Fatalf("RateSheet error = %v, want io.EOF", err)
	}
	for _, st := range d.group.Students {
		if len(st.Sheets) != 0 {
			t.Errorf("%s has scores after abandoned pass: %+v", st.Name, st.Sheets)
		}
	}
}

func TestSheetResolution(t *testing.T) {
	sheets := append(rateSheets(), model.Sheet{Number: "2"}, model.Sheet{Number: "2"})
	tests := []struct {
		sheet   string
		wantErr error
	}{
		{"", model.ErrMissingSheetNumber},
		{"9", model.ErrSheetNotFound},
		{"2", model.ErrDuplicateSheet},
	}
	for _, tt := range tests {
		t.Run("sheet "+tt.sheet, func(t *testing.T) {
			e, d, _ := newEditor(t, sheets, []model.Student{{Name: "Alice"}})
			in := prompt.NewScript("y", "y", "1", "1")
			if err := e.RateSheet(context.Background(), tt.sheet, in); !errors.Is(err, tt.wantErr) {
				t.Errorf("RateSheet error = %v, want %v", err, tt.wantErr)
			}
			if err := e.RecordPresentations(context.Background(), tt.sheet, in, []string{"Alice"}); !errors.Is(err, tt.wantErr) {
				t.Errorf("RecordPresentations error = %v, want %v", err, tt.wantErr)
			}
			if in.Remaining() != 4 || len(d.group.Students[0].Sheets) != 0 {
				t.Error("failed lookup read input or changed the group")
			}
		})
	}
}

func TestRecordPresentations(t *testing.T) {
	sheets := []model.Sheet{{Number: "1", Problems: []model.Problem{
		{Number: "1", Type: model.Voted, Max: "4"},
		{Number: "2", Type: model.Voted, Max: "4"},
		{Number: "3", Type: model.Voted, Max: "4"},
	}}}
	e, d, out := newEditor(t, sheets, []model.Student{{Name: "Alice", Board: 2}, {Name: "Bob"}})
	names := []string{"Alice", "Bob"}
	in := prompt.NewScript("Alice", "Eve", "Bob", "")

	if err := e.RecordPresentations(context.Background(), "1", in, names); err != nil {
		t.Fatalf("RecordPresentations: %v", err)
	}
	if d.group.Students[0].Board != 3 || d.group.Students[1].Board != 1 {
		t.Errorf("boards = %d, %d, want 3, 1", d.group.Students[0].Board, d.group.Students[1].Board)
	}
	if !strings.Contains(out.String(), "Unknown student. Stop making up names!") {
		t.Errorf("missing unknown student message:\n%s", out.String())
	}
	if !reflect.DeepEqual(in.Completions[0], names) {
		t.Errorf("completions = %v, want %v", in.Completions[0], names)
	}
	if in.Prompts[0] != "Problem 1: " {
		t.Errorf("prompt = %q", in.Prompts[0])
	}
}

func TestRecordPresentationsSameStudentTwice(t *testing.T) {
	e, d, _ := newEditor(t, rateSheets(), []model.Student{{Name: "Alice"}})
	in := prompt.NewScript("Alice", "Alice")

	if err := e.RecordPresentations(context.Background(), "1", in, []string{"Alice"}); err != nil {
		t.Fatalf("RecordPresentations: %v", err)
	}
	if d.group.Students[0].Board != 2 {
		t.Errorf("board = %d, want 2", d.group.Students[0].Board)
	}
}

func TestRecordPresentationsNotUnique(t *testing.T) {
	e, d, _ := newEditor(t, rateSheets(), []model.Student{{Name: "Bob"}, {Name: "Alice"}, {Name: "Alice"}})
	in := prompt.NewScript("Bob", "Alice")

	err := e.RecordPresentations(context.Background(), "1", in, []string{"Alice", "Bob"})
	if !errors.Is(err, model.ErrStudentNotUnique) {
		t.Fatalf("error = %v, want ErrStudentNotUnique", err)
	}
	for _, st := range d.group.Students {
		if st.Board != 0 {
			t.Errorf("%s board = %d after failed pass", st.Name, st.Board)
		}
	}
}

func TestRecordPresentationsAbandoned(t *testing.T) {
	e, d, _ := newEditor(t, rateSheets(), []model.Student{{Name: "Alice"}})
	in := prompt.NewScript("Alice")

	if err := e.RecordPresentations(context.Background(), "1", in, []string{"Alice"}); !errors.Is(err, io.EOF) {
		t.Fatalf("error = %v, want io.EOF", err)
	}
	if d.group.Students[0].Board != 0 {
		t.Errorf("board = %d after abandoned pass", d.group.Students[0].Board)
	}
}

func TestAskReportOptions(t *testing.T) {
	tests := []struct {
		name        string
		lines       []string
		want        report.Options
		wantPrompts int
	}{
		{"defaults", []string{"", "", "", ""}, report.DefaultOptions(), 4},
		{"no overview", []string{"y", "n"}, report.Options{IncludeID: true, CurrentWritten: true}, 2},
		{"all on", []string{"yes", "Y", "ye", "YES"}, report.Options{IncludeID: true, IncludePercent: true, CurrentWritten: true, CurrentVoted: true}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := prompt.NewScript(tt.lines...)
			got, err := AskReportOptions(context.Background(), in)
			if err != nil {
				t.Fatalf("AskReportOptions: %v", err)
			}
			if got != tt.want {
				t.Errorf("options = %+v, want %+v", got, tt.want)
			}
			if len(in.Prompts) != tt.wantPrompts {
				t.Errorf("asked %d questions, want %d", len(in.Prompts), tt.wantPrompts)
			}
		})
	}
}
