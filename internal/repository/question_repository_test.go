package repository

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/util"

	"github.com/xuri/excelize/v2"
)

var validHeader = []string{"id", "question", "option1", "option2", "option3", "option4", "correct_answer"}

func buildWorkbook(t *testing.T, header []string, rows [][]interface{}) *excelize.File {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	h := make([]interface{}, len(header))
	for i, name := range header {
		h[i] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &h); err != nil {
		t.Fatalf("write header: %v", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("write row: %v", err)
		}
	}

	return f
}

func writeQuestionFile(t *testing.T, path string, header []string, rows [][]interface{}) {
	t.Helper()

	f := buildWorkbook(t, header, rows)
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}

func workbookBytes(t *testing.T, header []string, rows [][]interface{}) []byte {
	t.Helper()

	f := buildWorkbook(t, header, rows)
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("serialize workbook: %v", err)
	}
	return buf.Bytes()
}

func sampleRows() [][]interface{} {
	return [][]interface{}{
		{1, "Capital of France?", "Paris", "London", "Rome", "Berlin", "Paris"},
		{2, "2+2?", "3", "4", "5", "6", "4"},
	}
}

func TestLoadMissingFileLeavesBankEmpty(t *testing.T) {
	repo := NewQuestionRepository(filepath.Join(t.TempDir(), "questions.xlsx"))

	total, err := repo.Load()
	if err != nil || total != 0 {
		t.Fatalf("Load = (%d, %v), want (0, nil) for a missing file", total, err)
	}
	if len(repo.Snapshot()) != 0 {
		t.Fatalf("snapshot must be empty")
	}
}

func TestLoadQuestions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.xlsx")
	writeQuestionFile(t, path, validHeader, sampleRows())

	repo := NewQuestionRepository(path)
	total, err := repo.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if total != 2 || repo.Count() != 2 {
		t.Fatalf("loaded %d questions, want 2", total)
	}

	q := repo.Snapshot()[0]
	if q.ID != 1 || q.Text != "Capital of France?" || q.CorrectAnswer != "Paris" {
		t.Fatalf("unexpected first question: %+v", q)
	}
	if len(q.Options) != 4 || q.Options[1] != "London" {
		t.Fatalf("unexpected options: %v", q.Options)
	}
}

func TestLoadMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.xlsx")
	writeQuestionFile(t, path,
		[]string{"id", "question", "option1", "option2", "option3", "option4"},
		[][]interface{}{{1, "Q?", "a", "b", "c", "d"}})

	repo := NewQuestionRepository(path)
	_, err := repo.Load()

	var verr *util.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Load = %v, want ValidationError", err)
	}
	if verr.Column != "correct_answer" {
		t.Fatalf("error names column %q, want correct_answer", verr.Column)
	}
	if !strings.Contains(verr.Error(), "correct_answer") {
		t.Fatalf("message must name the expected columns: %v", verr)
	}
}

func TestLoadNonNumericID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.xlsx")
	writeQuestionFile(t, path, validHeader,
		[][]interface{}{{"one", "Q?", "a", "b", "c", "d", "a"}})

	repo := NewQuestionRepository(path)
	_, err := repo.Load()

	var verr *util.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Load = %v, want ValidationError", err)
	}
	if verr.Row != 2 || verr.Column != "id" {
		t.Fatalf("error locates row %d column %q, want row 2 column id", verr.Row, verr.Column)
	}
}

func TestLoadFailureKeepsPreviousSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.xlsx")
	writeQuestionFile(t, path, validHeader, sampleRows())

	repo := NewQuestionRepository(path)
	if _, err := repo.Load(); err != nil {
		t.Fatalf("initial Load: %v", err)
	}

	writeQuestionFile(t, path,
		[]string{"id", "question"},
		[][]interface{}{{1, "Q?"}})

	if _, err := repo.Load(); err == nil {
		t.Fatalf("expected validation error on reload")
	}
	if repo.Count() != 2 {
		t.Fatalf("previous snapshot must stay active, got %d questions", repo.Count())
	}
}

func TestReplaceActivatesAndRewritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.xlsx")
	repo := NewQuestionRepository(path)
	if _, err := repo.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	total, err := repo.Replace(workbookBytes(t, validHeader, sampleRows()))
	if err != nil || total != 2 {
		t.Fatalf("Replace = (%d, %v), want (2, nil)", total, err)
	}
	if repo.Count() != 2 {
		t.Fatalf("snapshot not swapped")
	}

	// the rewritten file must round-trip through a fresh repository
	fresh := NewQuestionRepository(path)
	if n, err := fresh.Load(); err != nil || n != 2 {
		t.Fatalf("reload of rewritten file = (%d, %v), want (2, nil)", n, err)
	}
	if fresh.Snapshot()[1].CorrectAnswer != "4" {
		t.Fatalf("rewritten file lost data: %+v", fresh.Snapshot()[1])
	}
}

func TestReplaceRejectsMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.xlsx")
	writeQuestionFile(t, path, validHeader, sampleRows())

	repo := NewQuestionRepository(path)
	if _, err := repo.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	bad := workbookBytes(t,
		[]string{"id", "question", "option1", "option2", "option3", "option4"},
		[][]interface{}{{1, "Q?", "a", "b", "c", "d"}})

	if _, err := repo.Replace(bad); err == nil {
		t.Fatalf("expected rejection for missing column")
	}
	if repo.Count() != 2 {
		t.Fatalf("previous question set must stay active after a rejected upload")
	}

	// the file on disk must be untouched too
	fresh := NewQuestionRepository(path)
	if n, err := fresh.Load(); err != nil || n != 2 {
		t.Fatalf("active file was modified by a rejected upload: (%d, %v)", n, err)
	}
}

func TestReplaceRejectsGarbageBytes(t *testing.T) {
	repo := NewQuestionRepository(filepath.Join(t.TempDir(), "questions.xlsx"))

	var verr *util.ValidationError
	if _, err := repo.Replace([]byte("not an xlsx")); !errors.As(err, &verr) {
		t.Fatalf("Replace = %v, want ValidationError", err)
	}
}

func TestLoadSkipsBlankRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.xlsx")
	rows := sampleRows()
	rows = append(rows, []interface{}{"", "", "", "", "", "", ""})
	writeQuestionFile(t, path, validHeader, rows)

	repo := NewQuestionRepository(path)
	total, err := repo.Load()
	if err != nil || total != 2 {
		t.Fatalf("Load = (%d, %v), want blank trailing row skipped", total, err)
	}
}
