package repository

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/model"

	"github.com/xuri/excelize/v2"
)

// ResultColumns is the header of the results workbook.
var ResultColumns = []string{"Rank", "Name", "Total Marks", "Correct Answers", "Wrong Answers", "Unattempted", "Percentage", "Timestamp"}

// ResultRepository owns results.xlsx. Every append is a read-sort-write of
// the full table under a single-writer mutex, so concurrent submissions
// cannot lose an update.
type ResultRepository struct {
	path string
	mu   sync.Mutex
}

func NewResultRepository(path string) *ResultRepository {
	return &ResultRepository{path: path}
}

func (r *ResultRepository) Path() string {
	return r.path
}

// Append persists one attempt, re-sorting all rows descending by total marks
// and reassigning ranks 1..N.
func (r *ResultRepository) Append(result model.AttemptResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.readAll()
	if err != nil {
		return err
	}

	rows = append(rows, model.LeaderboardRow{
		Name:        result.Name,
		TotalMarks:  result.TotalMarks(),
		Correct:     result.Correct,
		Wrong:       result.Wrong,
		Unattempted: result.Unattempted,
		Percentage:  fmt.Sprintf("%.1f%%", result.Percentage),
		Timestamp:   result.Timestamp.Format(model.TimestampLayout),
	})

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalMarks > rows[j].TotalMarks
	})
	for i := range rows {
		rows[i].Rank = i + 1
	}

	return writeResultWorkbook(r.path, rows)
}

// ReadAll returns the ranked table, or an empty slice if no results file
// exists yet.
func (r *ResultRepository) ReadAll() ([]model.LeaderboardRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.readAll()
}

func (r *ResultRepository) readAll() ([]model.LeaderboardRow, error) {
	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		return []model.LeaderboardRow{}, nil
	}

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("open results workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read results sheet: %w", err)
	}
	if len(rows) == 0 {
		return []model.LeaderboardRow{}, nil
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.TrimSpace(name)] = i
	}

	out := make([]model.LeaderboardRow, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if blankRow(row) {
			continue
		}

		cell := func(name string) string {
			idx, ok := cols[name]
			if ok && idx < len(row) {
				return row[idx]
			}
			return ""
		}
		num := func(name string) (int, error) {
			v, err := strconv.Atoi(strings.TrimSpace(cell(name)))
			if err != nil {
				return 0, fmt.Errorf("results workbook row %d: column %q is not a number", i+2, name)
			}
			return v, nil
		}

		var entry model.LeaderboardRow
		var err error
		if entry.Rank, err = num("Rank"); err != nil {
			return nil, err
		}
		if entry.TotalMarks, err = num("Total Marks"); err != nil {
			return nil, err
		}
		if entry.Correct, err = num("Correct Answers"); err != nil {
			return nil, err
		}
		if entry.Wrong, err = num("Wrong Answers"); err != nil {
			return nil, err
		}
		if entry.Unattempted, err = num("Unattempted"); err != nil {
			return nil, err
		}
		entry.Name = cell("Name")
		entry.Percentage = cell("Percentage")
		entry.Timestamp = cell("Timestamp")

		out = append(out, entry)
	}

	return out, nil
}

func writeResultWorkbook(path string, rows []model.LeaderboardRow) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(ResultColumns))
	for i, name := range ResultColumns {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{row.Rank, row.Name, row.TotalMarks, row.Correct, row.Wrong, row.Unattempted, row.Percentage, row.Timestamp}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
