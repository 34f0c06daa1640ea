package model

import "strconv"

// FindSheets returns all sheets with the given number.
func (d *SheetsDocument) FindSheets(no string) []*Sheet {
	var found []*Sheet
	for i := range d.Sheets {
		if d.Sheets[i].Number == no {
			found = append(found, &d.Sheets[i])
		}
	}
	return found
}

// Sheet returns the single sheet with the given number.
func (d *SheetsDocument) Sheet(no string) (*Sheet, error) {
	if no == "" {
		return nil, ErrMissingSheetNumber
	}
	found := d.FindSheets(no)
	switch len(found) {
	case 0:
		return nil, ErrSheetNotFound
	case 1:
		return found[0], nil
	default:
		return nil, ErrDuplicateSheet
	}
}

// Problem looks up a problem by sheet and problem number.
func (d *SheetsDocument) Problem(sheetNo, probNo string) (Problem, bool) {
	for _, s := range d.Sheets {
		if s.Number != sheetNo {
			continue
		}
		for _, p := range s.Problems {
			if p.Number == probNo {
				return p, true
			}
		}
	}
	return Problem{}, false
}

// NextSheetNumber proposes the highest numeric sheet number plus one.
// Non-numeric sheet numbers are ignored.
func (d *SheetsDocument) NextSheetNumber() int {
	highest := 0
	for _, s := range d.Sheets {
		if n, err := strconv.Atoi(s.Number); err == nil && n > highest {
			highest = n
		}
	}
	return highest + 1
}

// NextProblemNumber proposes the highest numeric problem number over all sheets plus one.
func (d *SheetsDocument) NextProblemNumber() int {
	return HighestProblemNumber(d.Sheets) + 1
}

// HighestProblemNumber returns the highest numeric problem number in sheets, 0 if none.
func HighestProblemNumber(sheets []Sheet) int {
	highest := 0
	for _, s := range sheets {
		for _, p := range s.Problems {
			if n, err := strconv.Atoi(p.Number); err == nil && n > highest {
				highest = n
			}
		}
	}
	return highest
}

// TotalPoints sums the maximum points of all problems of type t over all sheets.
func (d *SheetsDocument) TotalPoints(t ProblemType) float64 {
	var total float64
	for i := range d.Sheets {
		total += d.Sheets[i].Points(t)
	}
	return total
}

// Points sums the maximum points of the sheet's problems of type t.
func (s *Sheet) Points(t ProblemType) float64 {
	var total float64
	for _, p := range s.Problems {
		if p.Type == t {
			total += p.MaxPoints()
		}
	}
	return total
}
