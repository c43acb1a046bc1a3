package service

import (
	"fmt"
	"math"
	"time"

	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/model"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/util"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/pkg/logger"

	"go.uber.org/zap"
)

// QuestionSource provides the active immutable question set.
type QuestionSource interface {
	Snapshot() []model.Question
}

// ResultLedger persists scored attempts as ranked leaderboard rows.
type ResultLedger interface {
	Append(result model.AttemptResult) error
	ReadAll() ([]model.LeaderboardRow, error)
}

type QuizService struct {
	Questions QuestionSource
	Results   ResultLedger
}

func NewQuizService(questions QuestionSource, results ResultLedger) *QuizService {
	return &QuizService{Questions: questions, Results: results}
}

// Score counts exact string matches between answers and each question's
// correct answer. Matching is case- and whitespace-sensitive. Answer keys
// with no matching question id (a bank swapped mid-session) are ignored.
func Score(answers map[int]string, questions []model.Question) (correct, total int) {
	for questionID, answer := range answers {
		for _, q := range questions {
			if q.ID == questionID {
				if answer == q.CorrectAnswer {
					correct++
				}
				break
			}
		}
	}
	return correct, len(questions)
}

// Stats splits the attempt into correct / wrong / unattempted by walking ids
// 1..total. This assumes the bank uses a dense 1..N id sequence: a question
// whose id falls outside that range is reported as unattempted even when it
// was answered. Kept deliberately for compatibility with the historic
// results files; see DESIGN.md.
func Stats(answers map[int]string, questions []model.Question, total int) (correct, wrong, unattempted int) {
	for questionID := 1; questionID <= total; questionID++ {
		answer, ok := answers[questionID]
		if !ok {
			unattempted++
			continue
		}
		for _, q := range questions {
			if q.ID == questionID {
				if answer == q.CorrectAnswer {
					correct++
				}
				break
			}
		}
	}
	wrong = total - correct - unattempted
	return correct, wrong, unattempted
}

// Percentage is correct/total*100 rounded to one decimal place. Returns 0
// for an empty bank.
func Percentage(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*1000) / 10
}

// QuestionOutcome is the per-question detail shown after submission. The
// correct answer is revealed only for answered-and-wrong questions.
type QuestionOutcome struct {
	QuestionID    int    `json:"questionId"`
	Question      string `json:"question"`
	Answered      bool   `json:"answered"`
	Correct       bool   `json:"correct"`
	YourAnswer    string `json:"yourAnswer,omitempty"`
	CorrectAnswer string `json:"correctAnswer,omitempty"`
}

type SubmissionResult struct {
	Name        string            `json:"name"`
	Correct     int               `json:"correct"`
	Wrong       int               `json:"wrong"`
	Unattempted int               `json:"unattempted"`
	Total       int               `json:"total"`
	Percentage  float64           `json:"percentage"`
	Status      string            `json:"status"`
	Details     []QuestionOutcome `json:"details"`
}

// Submit scores an answer sheet against the bank active right now, appends
// the attempt to the ledger, and returns the full breakdown. The total (and
// therefore the percentage denominator) comes from the current snapshot,
// not from whenever the quiz was started.
func (s *QuizService) Submit(name string, answers map[int]string, now time.Time) (*SubmissionResult, error) {
	questions := s.Questions.Snapshot()
	if len(questions) == 0 {
		return nil, util.ErrNoQuestions
	}

	correct, total := Score(answers, questions)
	statCorrect, wrong, unattempted := Stats(answers, questions, total)
	percentage := Percentage(correct, total)

	attempt := model.AttemptResult{
		Name:        name,
		Correct:     statCorrect,
		Wrong:       wrong,
		Unattempted: unattempted,
		Percentage:  percentage,
		Timestamp:   now,
	}
	if err := s.Results.Append(attempt); err != nil {
		return nil, fmt.Errorf("persist attempt: %w", err)
	}

	logger.Log.Info("Quiz submitted",
		zap.String("name", name),
		zap.Int("correct", correct),
		zap.Int("total", total),
		zap.Float64("percentage", percentage),
	)

	return &SubmissionResult{
		Name:        name,
		Correct:     statCorrect,
		Wrong:       wrong,
		Unattempted: unattempted,
		Total:       total,
		Percentage:  percentage,
		Status:      statusFor(percentage),
		Details:     outcomes(answers, questions),
	}, nil
}

func (s *QuizService) Leaderboard() ([]model.LeaderboardRow, error) {
	return s.Results.ReadAll()
}

func statusFor(percentage float64) string {
	switch {
	case percentage >= 80:
		return "Excellent"
	case percentage >= 60:
		return "Good"
	default:
		return "Needs Improvement"
	}
}

func outcomes(answers map[int]string, questions []model.Question) []QuestionOutcome {
	details := make([]QuestionOutcome, 0, len(questions))
	for _, q := range questions {
		answer, answered := answers[q.ID]
		outcome := QuestionOutcome{
			QuestionID: q.ID,
			Question:   q.Text,
			Answered:   answered,
			Correct:    answered && answer == q.CorrectAnswer,
			YourAnswer: answer,
		}
		if answered && !outcome.Correct {
			outcome.CorrectAnswer = q.CorrectAnswer
		}
		details = append(details, outcome)
	}
	return details
}
