package model

import "sort"

// FindStudents returns every student with the given name.
func (g *GroupDocument) FindStudents(name string) []*Student {
	var found []*Student
	for i := range g.Students {
		if g.Students[i].Name == name {
			found = append(found, &g.Students[i])
		}
	}
	return found
}

// HasStudent reports whether a student with that name exists.
func (g *GroupDocument) HasStudent(name string) bool {
	return len(g.FindStudents(name)) > 0
}

// Names returns the sorted, de-duplicated student names.
func (g *GroupDocument) Names() []string {
	seen := make(map[string]bool, len(g.Students))
	names := make([]string, 0, len(g.Students))
	for _, s := range g.Students {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		names = append(names, s.Name)
	}
	sort.Strings(names)
	return names
}

// Score returns the recorded value for a sheet/problem pair, "" if absent.
func (s *Student) Score(sheetNo, probNo string) string {
	for _, sh := range s.Sheets {
		if sh.Number != sheetNo {
			continue
		}
		for _, sc := range sh.Scores {
			if sc.Problem == probNo {
				return sc.Value
			}
		}
	}
	return ""
}

// ReplaceSheet drops all score records for sheet.Number and appends sheet.
func (s *Student) ReplaceSheet(sheet ScoreSheet) {
	kept := s.Sheets[:0]
	for _, sh := range s.Sheets {
		if sh.Number != sheet.Number {
			kept = append(kept, sh)
		}
	}
	s.Sheets = append(kept, sheet)
}
