package model

// GroupExport is the top-level structure for score table export.
type GroupExport struct {
	Title         string          `json:"title" yaml:"title"`
	Subtitle      string          `json:"subtitle" yaml:"subtitle"`
	Sheet         string          `json:"sheet" yaml:"sheet"`
	WrittenPoints float64         `json:"written_points" yaml:"written_points"`
	VotedPoints   float64         `json:"voted_points" yaml:"voted_points"`
	Problems      []ProblemExport `json:"problems" yaml:"problems"`
	Results       []StudentResult `json:"results" yaml:"results"`
}

// ProblemExport describes one problem column of the exported sheet.
type ProblemExport struct {
	Number string      `json:"number" yaml:"number"`
	Type   ProblemType `json:"type" yaml:"type"`
	Max    string      `json:"max" yaml:"max"`
}

// StudentResult holds one student's row for export.
type StudentResult struct {
	Name           string   `json:"name" yaml:"name"`
	ID             string   `json:"id,omitempty" yaml:"id,omitempty"`
	Board          int      `json:"board" yaml:"board"`
	WrittenPercent float64  `json:"written_percent" yaml:"written_percent"`
	VotedPercent   float64  `json:"voted_percent" yaml:"voted_percent"`
	Scores         []string `json:"scores" yaml:"scores"`
}
