package app

import (
	"sync"
	"time"

	"vocab-quiz-service/internal/domain"
)

// Session is the live state of one play-through of a single level: the
// prepared question sequence, the cursor, and the answers recorded so far.
// Completion is derived from the cursor, never stored, so it cannot
// desynchronize from the answer log. There is no way to skip or revisit a
// position.
type Session struct {
	playerID  string
	level     int
	questions []domain.Question
	byID      map[int]domain.Question
	startedAt time.Time
	now       func() time.Time

	mu       sync.Mutex
	position int
	answers  []domain.AnswerEntry
}

// Outcome reports the result of a single submitted answer.
type Outcome struct {
	QuestionID        int
	IsCorrect         bool
	IsSessionComplete bool
}

// NewSession opens a session at position zero with an empty answer log.
func NewSession(playerID string, level int, questions []domain.Question) *Session {
	return NewSessionWithClock(playerID, level, questions, time.Now)
}

// NewSessionWithClock allows deterministic timestamps in tests.
func NewSessionWithClock(playerID string, level int, questions []domain.Question, now func() time.Time) *Session {
	byID := make(map[int]domain.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return &Session{
		playerID:  playerID,
		level:     level,
		questions: questions,
		byID:      byID,
		startedAt: now(),
		now:       now,
	}
}

// SubmitAnswer records the chosen option against the current question and
// advances the cursor by exactly one. Correctness is exact string equality.
// Fails with domain.ErrNoActiveQuestion, without mutating anything, when the
// sequence is already complete.
func (s *Session) SubmitAnswer(chosenOption string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.position == len(s.questions) {
		return Outcome{}, domain.ErrNoActiveQuestion
	}

	question := s.questions[s.position]
	correct := chosenOption == question.CorrectAnswer
	s.answers = append(s.answers, domain.AnswerEntry{
		QuestionID:   question.ID,
		ChosenOption: chosenOption,
		IsCorrect:    correct,
	})
	s.position++

	return Outcome{
		QuestionID:        question.ID,
		IsCorrect:         correct,
		IsSessionComplete: s.position == len(s.questions),
	}, nil
}

// CurrentQuestion returns the question awaiting an answer, or false when the
// session is complete.
func (s *Session) CurrentQuestion() (domain.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.position == len(s.questions) {
		return domain.Question{}, false
	}
	return s.questions[s.position], true
}

// Question looks up a question by id for results review.
func (s *Session) Question(id int) (domain.Question, bool) {
	q, ok := s.byID[id]
	return q, ok
}

// Complete reports whether every question has been answered.
func (s *Session) Complete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position == len(s.questions)
}

// Position returns the cursor, equal to the number of recorded answers.
func (s *Session) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// Answers returns a copy of the answer log in presentation order.
func (s *Session) Answers() []domain.AnswerEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AnswerEntry, len(s.answers))
	copy(out, s.answers)
	return out
}

func (s *Session) PlayerID() string { return s.playerID }

func (s *Session) Level() int { return s.level }

func (s *Session) TotalQuestions() int { return len(s.questions) }

func (s *Session) StartedAt() time.Time { return s.startedAt }
