package repository

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/model"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/util"

	"github.com/xuri/excelize/v2"
)

// QuestionColumns is the required header of the question workbook, in the
// order rows are written back.
var QuestionColumns = []string{"id", "question", "option1", "option2", "option3", "option4", "correct_answer"}

// QuestionRepository owns questions.xlsx. Readers get an immutable snapshot
// through an atomic pointer; Load and Replace swap the whole set so a reader
// never observes a partially-written bank.
type QuestionRepository struct {
	path     string
	mu       sync.Mutex // serializes writers: startup load, admin replace, watcher reload
	snapshot atomic.Pointer[[]model.Question]
}

func NewQuestionRepository(path string) *QuestionRepository {
	r := &QuestionRepository{path: path}
	r.swap(nil)
	return r
}

func (r *QuestionRepository) Path() string {
	return r.path
}

// Load reads the workbook from disk into the active snapshot. A missing file
// leaves the bank empty (quiz blocked) and is not an error; a malformed
// workbook keeps the previous snapshot active and returns a ValidationError.
func (r *QuestionRepository) Load() (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := os.Stat(r.path); os.IsNotExist(err) {
		r.swap(nil)
		return 0, nil
	}

	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return 0, &util.ValidationError{Reason: "cannot open workbook: " + err.Error()}
	}
	defer f.Close()

	questions, err := parseSheet(f)
	if err != nil {
		return 0, err
	}

	r.swap(questions)
	return len(questions), nil
}

// Snapshot returns the active question set. The returned slice must not be
// mutated.
func (r *QuestionRepository) Snapshot() []model.Question {
	return *r.snapshot.Load()
}

func (r *QuestionRepository) Count() int {
	return len(r.Snapshot())
}

// Replace validates an uploaded workbook, rewrites the active file in place,
// and swaps the snapshot. On any failure the previous set stays active.
func (r *QuestionRepository) Replace(data []byte) (int, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return 0, &util.ValidationError{Reason: "not a valid xlsx workbook: " + err.Error()}
	}
	defer f.Close()

	questions, err := parseSheet(f)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := writeQuestionWorkbook(r.path, questions); err != nil {
		return 0, err
	}

	r.swap(questions)
	return len(questions), nil
}

func (r *QuestionRepository) swap(questions []model.Question) {
	if questions == nil {
		questions = []model.Question{}
	}
	r.snapshot.Store(&questions)
}

func parseSheet(f *excelize.File) ([]model.Question, error) {
	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, &util.ValidationError{Reason: "cannot read sheet: " + err.Error()}
	}
	if len(rows) == 0 {
		return nil, &util.ValidationError{Reason: "missing header row; expected columns " + strings.Join(QuestionColumns, ", ")}
	}

	cols := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range QuestionColumns {
		if _, ok := cols[required]; !ok {
			return nil, &util.ValidationError{
				Column: required,
				Reason: "missing required column; expected " + strings.Join(QuestionColumns, ", "),
			}
		}
	}

	questions := make([]model.Question, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rowNum := i + 2 // 1-based, after the header

		if blankRow(row) {
			continue
		}

		// GetRows drops trailing empty cells, so index defensively.
		cell := func(name string) string {
			idx := cols[name]
			if idx < len(row) {
				return row[idx]
			}
			return ""
		}

		id, err := strconv.Atoi(strings.TrimSpace(cell("id")))
		if err != nil {
			return nil, &util.ValidationError{Row: rowNum, Column: "id", Reason: "must be an integer"}
		}

		options := make([]string, 0, model.OptionCount)
		for n := 1; n <= model.OptionCount; n++ {
			options = append(options, cell(fmt.Sprintf("option%d", n)))
		}

		questions = append(questions, model.Question{
			ID:            id,
			Text:          cell("question"),
			Options:       options,
			CorrectAnswer: cell("correct_answer"),
		})
	}

	return questions, nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func writeQuestionWorkbook(path string, questions []model.Question) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(QuestionColumns))
	for i, name := range QuestionColumns {
		header[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, q := range questions {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{q.ID, q.Text, q.Options[0], q.Options[1], q.Options[2], q.Options[3], q.CorrectAnswer}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.SaveAs(path)
}
