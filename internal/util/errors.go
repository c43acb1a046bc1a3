package util

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidAdminToken = errors.New("invalid admin token")
	ErrNoQuestions       = errors.New("no questions available")
	ErrAlreadySubmitted  = errors.New("quiz already submitted")
)

// ValidationError reports a malformed question workbook without crashing
// the load, naming the offending row/column where one is known.
type ValidationError struct {
	Row    int
	Column string
	Reason string
}

func (e *ValidationError) Error() string {
	switch {
	case e.Row > 0 && e.Column != "":
		return fmt.Sprintf("invalid question file: row %d, column %q: %s", e.Row, e.Column, e.Reason)
	case e.Column != "":
		return fmt.Sprintf("invalid question file: column %q: %s", e.Column, e.Reason)
	default:
		return "invalid question file: " + e.Reason
	}
}
