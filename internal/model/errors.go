package model

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingSheetNumber is returned when an operation needs a sheet number but got none.
	ErrMissingSheetNumber = errors.New("sheet number required")
	// ErrSheetNotFound is returned when no sheet carries the requested number.
	ErrSheetNotFound = errors.New("sheet not defined")
	// ErrDuplicateSheet is returned when more than one sheet carries the requested number.
	// It matches ErrSheetNotFound under errors.Is.
	ErrDuplicateSheet = fmt.Errorf("%w: more than one sheet with that number", ErrSheetNotFound)
	// ErrDuplicateStudent is returned when a student name is already on the roster.
	ErrDuplicateStudent = errors.New("student already exists")
	// ErrStudentNotUnique means a name resolved to zero or several students.
	ErrStudentNotUnique = errors.New("student name does not resolve to exactly one student")
)
