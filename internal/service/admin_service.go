package service

import (
	"crypto/subtle"

	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/config"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/model"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/util"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// QuestionBank is the admin's view of the question store: inspect the
// active set, replace it wholesale.
type QuestionBank interface {
	Snapshot() []model.Question
	Replace(data []byte) (int, error)
}

type AdminService struct {
	cfg  *config.Config
	Bank QuestionBank
}

func NewAdminService(cfg *config.Config, bank QuestionBank) *AdminService {
	return &AdminService{cfg: cfg, Bank: bank}
}

// VerifyToken checks the shared secret. Plaintext secrets compare in
// constant time; hashed secrets go through bcrypt.
func (s *AdminService) VerifyToken(token string) bool {
	if token == "" {
		return false
	}
	if s.cfg.Admin.TokenHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.Admin.TokenHash), []byte(token)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.cfg.Admin.Token)) == 1
}

// IssueToken mints the bearer token handed out after a successful
// verification, so clients can hit admin endpoints without the cookie.
func (s *AdminService) IssueToken() (string, error) {
	return util.GenerateAdminJWT(s.cfg.JWT.Secret, s.cfg.JWT.ExpireTime)
}

func (s *AdminService) ParseToken(token string) (*util.Claims, error) {
	return util.ParseJWT(token, s.cfg.JWT.Secret)
}

// ReplaceQuestions validates and activates an uploaded workbook. On failure
// the previously active set is untouched.
func (s *AdminService) ReplaceQuestions(data []byte) (int, error) {
	total, err := s.Bank.Replace(data)
	if err != nil {
		logger.Log.Warn("Question upload rejected", zap.Error(err))
		return 0, err
	}

	logger.Log.Info("Question bank replaced", zap.Int("total", total))
	return total, nil
}

// BankQuestion is the admin overview entry: id and stem, no answer key.
type BankQuestion struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
}

type BankOverview struct {
	Total     int            `json:"total"`
	Questions []BankQuestion `json:"questions"`
}

func (s *AdminService) Overview() BankOverview {
	questions := s.Bank.Snapshot()
	overview := BankOverview{
		Total:     len(questions),
		Questions: make([]BankQuestion, 0, len(questions)),
	}
	for _, q := range questions {
		overview.Questions = append(overview.Questions, BankQuestion{ID: q.ID, Question: q.Text})
	}
	return overview
}
