// Package archive keeps a queryable SQLite copy of the sheets and group
// documents. Each snapshot replaces the previous content; only the snapshot
// log is kept across runs.
package archive

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pavelanni/tutor/internal/model"

	_ "modernc.org/sqlite"
)

// Archive is a snapshot database.
type Archive struct {
	db *sql.DB
}

// Snapshot describes one archiving run.
type Snapshot struct {
	ID       int64
	TakenAt  time.Time
	Title    string
	Subtitle string
	Sheets   int
	Students int
	Scores   int
}

// ScoreRow is one recorded score as stored in the archive.
type ScoreRow struct {
	Student string
	Sheet   string
	Problem string
	Value   string
}

// New opens (or creates) the archive at dbPath.
func New(dbPath string) (*Archive, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// one connection keeps ":memory:" databases shared across queries
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	a := &Archive{db: db}
	if err := a.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return a, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}

func (a *Archive) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		taken_at DATETIME NOT NULL,
		title TEXT NOT NULL DEFAULT '',
		subtitle TEXT NOT NULL DEFAULT '',
		sheet_count INTEGER NOT NULL DEFAULT 0,
		student_count INTEGER NOT NULL DEFAULT 0,
		score_count INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS problems (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sheet_no TEXT NOT NULL,
		problem_no TEXT NOT NULL,
		type TEXT NOT NULL,
		max_points TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS students (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		student_id TEXT NOT NULL DEFAULT '',
		board INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS scores (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		student INTEGER NOT NULL,
		sheet_no TEXT NOT NULL,
		problem_no TEXT NOT NULL,
		value TEXT NOT NULL DEFAULT '',
		FOREIGN KEY (student) REFERENCES students(id)
	);
	`
	_, err := a.db.Exec(schema)
	return err
}

// Snapshot replaces the archived problems, students and scores with the
// content of the documents and logs the run.
func (a *Archive) Snapshot(sheets *model.SheetsDocument, group *model.GroupDocument) (Snapshot, error) {
	snap := Snapshot{
		TakenAt:  time.Now().UTC().Truncate(time.Second),
		Title:    group.Title,
		Subtitle: group.Subtitle,
		Sheets:   len(sheets.Sheets),
		Students: len(group.Students),
	}

	tx, err := a.db.Begin()
	if err != nil {
		return snap, err
	}
	defer tx.Rollback()

	for _, table := range []string{"scores", "students", "problems"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return snap, fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for _, sh := range sheets.Sheets {
		for pos, p := range sh.Problems {
			if _, err := tx.Exec(
				`INSERT INTO problems (sheet_no, problem_no, type, max_points, position) VALUES (?, ?, ?, ?, ?)`,
				sh.Number, p.Number, string(p.Type), p.Max, pos,
			); err != nil {
				return snap, fmt.Errorf("insert problem %s/%s: %w", sh.Number, p.Number, err)
			}
		}
	}

	for pos, st := range group.Students {
		res, err := tx.Exec(
			`INSERT INTO students (name, student_id, board, position) VALUES (?, ?, ?, ?)`,
			st.Name, st.ID, st.Board, pos,
		)
		if err != nil {
			return snap, fmt.Errorf("insert student %q: %w", st.Name, err)
		}
		studentID, err := res.LastInsertId()
		if err != nil {
			return snap, err
		}
		for _, sh := range st.Sheets {
			for _, sc := range sh.Scores {
				if _, err := tx.Exec(
					`INSERT INTO scores (student, sheet_no, problem_no, value) VALUES (?, ?, ?, ?)`,
					studentID, sh.Number, sc.Problem, sc.Value,
				); err != nil {
					return snap, fmt.Errorf("insert score for %q: %w", st.Name, err)
				}
				snap.Scores++
			}
		}
	}

	res, err := tx.Exec(
		`INSERT INTO snapshots (taken_at, title, subtitle, sheet_count, student_count, score_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		snap.TakenAt, snap.Title, snap.Subtitle, snap.Sheets, snap.Students, snap.Scores,
	)
	if err != nil {
		return snap, fmt.Errorf("log snapshot: %w", err)
	}
	if snap.ID, err = res.LastInsertId(); err != nil {
		return snap, err
	}
	if err := tx.Commit(); err != nil {
		return snap, err
	}
	slog.Info("snapshot archived", "id", snap.ID, "students", snap.Students, "scores", snap.Scores)
	return snap, nil
}

// LastSnapshot returns the most recent snapshot, or nil if none was taken.
func (a *Archive) LastSnapshot() (*Snapshot, error) {
	var s Snapshot
	err := a.db.QueryRow(
		`SELECT id, taken_at, title, subtitle, sheet_count, student_count, score_count
		 FROM snapshots ORDER BY id DESC LIMIT 1`,
	).Scan(&s.ID, &s.TakenAt, &s.Title, &s.Subtitle, &s.Sheets, &s.Students, &s.Scores)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SnapshotCount returns the number of logged snapshots.
func (a *Archive) SnapshotCount() (int, error) {
	var count int
	err := a.db.QueryRow(`SELECT COUNT(*) FROM snapshots`).Scan(&count)
	return count, err
}

// ListStudents returns the archived students in roster order, without scores.
func (a *Archive) ListStudents() ([]model.Student, error) {
	rows, err := a.db.Query(`SELECT name, student_id, board FROM students ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []model.Student
	for rows.Next() {
		var st model.Student
		if err := rows.Scan(&st.Name, &st.ID, &st.Board); err != nil {
			return nil, err
		}
		students = append(students, st)
	}
	return students, rows.Err()
}

// ListProblems returns the archived problems of a sheet in sheet order.
func (a *Archive) ListProblems(sheetNo string) ([]model.Problem, error) {
	rows, err := a.db.Query(
		`SELECT problem_no, type, max_points FROM problems WHERE sheet_no = ? ORDER BY position`,
		sheetNo,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var problems []model.Problem
	for rows.Next() {
		var p model.Problem
		var typ string
		if err := rows.Scan(&p.Number, &typ, &p.Max); err != nil {
			return nil, err
		}
		p.Type = model.ProblemType(typ)
		problems = append(problems, p)
	}
	return problems, rows.Err()
}

// ListScores returns the archived scores of a sheet ordered by roster
// position and problem.
func (a *Archive) ListScores(sheetNo string) ([]ScoreRow, error) {
	rows, err := a.db.Query(
		`SELECT st.name, sc.sheet_no, sc.problem_no, sc.value
		 FROM scores sc JOIN students st ON st.id = sc.student
		 WHERE sc.sheet_no = ?
		 ORDER BY st.position, sc.id`,
		sheetNo,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []ScoreRow
	for rows.Next() {
		var r ScoreRow
		if err := rows.Scan(&r.Student, &r.Sheet, &r.Problem, &r.Value); err != nil {
			return nil, err
		}
		scores = append(scores, r)
	}
	return scores, rows.Err()
}
