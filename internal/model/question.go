package model

// Question is one multiple-choice entry from the question workbook.
// The loaded set is immutable; admin uploads replace it wholesale.
type Question struct {
	ID            int      `json:"id"`
	Text          string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"-"`
}

// OptionCount is the fixed number of options per question in the workbook
// contract (columns option1..option4).
const OptionCount = 4
