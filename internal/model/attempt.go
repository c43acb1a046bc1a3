package model

import "time"

// AttemptResult is one scored submission. It is derived at submit time and
// persisted only as a leaderboard row.
type AttemptResult struct {
	Name        string
	Correct     int
	Wrong       int
	Unattempted int
	Percentage  float64
	Timestamp   time.Time
}

// TotalMarks assumes one mark per correct answer, as the original sheet did.
func (a AttemptResult) TotalMarks() int {
	return a.Correct
}

// LeaderboardRow mirrors one row of the results workbook. Percentage and
// Timestamp keep their persisted string forms ("NN.N%", "YYYY-MM-DD HH:MM:SS").
type LeaderboardRow struct {
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	TotalMarks  int    `json:"totalMarks"`
	Correct     int    `json:"correct"`
	Wrong       int    `json:"wrong"`
	Unattempted int    `json:"unattempted"`
	Percentage  string `json:"percentage"`
	Timestamp   string `json:"timestamp"`
}

const TimestampLayout = "2006-01-02 15:04:05"
