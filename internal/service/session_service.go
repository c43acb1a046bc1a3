package service

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/util"
)

// Session is the per-visit state the rendering cycle reads and writes:
// name, in-progress answers, submitted flag, admin flag.
type Session struct {
	ID string

	mu          sync.Mutex
	quizStarted bool
	submitted   bool
	userName    string
	answers     map[int]string
	isAdmin     bool

	createdAt time.Time
	lastSeen  time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		ID:        id,
		answers:   make(map[int]string),
		createdAt: now,
		lastSeen:  now,
	}
}

// SessionState is an immutable snapshot of a session for rendering.
type SessionState struct {
	QuizStarted bool           `json:"quizStarted"`
	Submitted   bool           `json:"submitted"`
	UserName    string         `json:"userName"`
	Answers     map[int]string `json:"answers"`
	IsAdmin     bool           `json:"isAdmin"`
}

func (s *Session) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers := make(map[int]string, len(s.answers))
	for id, a := range s.answers {
		answers[id] = a
	}
	return SessionState{
		QuizStarted: s.quizStarted,
		Submitted:   s.submitted,
		UserName:    s.userName,
		Answers:     answers,
		IsAdmin:     s.isAdmin,
	}
}

// StartQuiz marks that the quiz form has been served at least once.
func (s *Session) StartQuiz() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quizStarted = true
}

func (s *Session) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userName = name
}

// RecordAnswer stores the selected option text for one question. The text is
// not checked against the question's options: the form constrains the input.
func (s *Session) RecordAnswer(questionID int, answer string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return util.ErrAlreadySubmitted
	}
	s.answers[questionID] = answer
	return nil
}

// Submit flips the session to submitted. Irreversible except via Retake.
func (s *Session) Submit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitted {
		return util.ErrAlreadySubmitted
	}
	s.submitted = true
	return nil
}

// Retake clears answers and the submitted flag, keeping the name.
func (s *Session) Retake() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers = make(map[int]string)
	s.submitted = false
}

func (s *Session) GrantAdmin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isAdmin = true
}

func (s *Session) RevokeAdmin() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.isAdmin = false
}

func (s *Session) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isAdmin
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = now
}

func (s *Session) expired(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen) > ttl
}

// SessionManager is the in-memory session store. Sessions are created on
// first visit and destroyed by the TTL sweep or logout.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
	}
}

// Create allocates a fresh session under a random opaque ID.
func (m *SessionManager) Create() *Session {
	now := time.Now()
	session := newSession(newSessionID(), now)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return session
}

func (m *SessionManager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	session, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		session.touch(time.Now())
	}
	return session, ok
}

func (m *SessionManager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Sweep drops sessions idle longer than the TTL and reports how many went.
func (m *SessionManager) Sweep(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, session := range m.sessions {
		if session.expired(now, m.ttl) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func newSessionID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		panic("session id entropy unavailable: " + err.Error())
	}
	return hex.EncodeToString(buf)
}
