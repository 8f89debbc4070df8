package app

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"vocab-quiz-service/internal/domain"
)

// GameService drives the game use cases: level listing, starting a level
// session, and answering through to the final record. Sessions for one
// player are strictly sequential; starting a level while another session is
// active discards the old one, exactly like abandoning it.
type GameService struct {
	preparer    *Preparer
	progression *Progression
	recorder    *Recorder
	log         *logrus.Logger
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewGameService(preparer *Preparer, store ProgressionStore, sink RecordSink, log *logrus.Logger) *GameService {
	return &GameService{
		preparer:    preparer,
		progression: NewProgression(store),
		recorder:    NewRecorder(sink, log),
		log:         log,
		now:         time.Now,
		sessions:    make(map[string]*Session),
	}
}

// AnswerResult is what a single answer yields; Result is set only on the
// final answer of the session.
type AnswerResult struct {
	Outcome  Outcome
	Position int
	Total    int
	Result   *LevelResult
}

// LevelResult is the terminal outcome of a session.
type LevelResult struct {
	Record        domain.SessionRecord
	Passed        bool
	Advanced      bool
	UnlockedLevel int
}

// Levels lists all levels with their locked state for a player.
func (g *GameService) Levels(ctx context.Context, playerID string) ([]domain.LevelStatus, error) {
	unlocked, err := g.progression.UnlockedLevel(ctx, playerID)
	if err != nil {
		return nil, err
	}
	statuses := make([]domain.LevelStatus, 0, domain.MaxLevel)
	for level := 1; level <= domain.MaxLevel; level++ {
		statuses = append(statuses, domain.LevelStatus{Level: level, Unlocked: level <= unlocked})
	}
	return statuses, nil
}

// StartLevel prepares the question sequence and opens a session. Fails with
// domain.ErrLevelLocked for levels above the player's frontier or outside
// 1..MaxLevel, and with domain.ErrSourceUnavailable when no words can be
// obtained.
func (g *GameService) StartLevel(ctx context.Context, playerID string, level int) (*Session, error) {
	if level < 1 || level > domain.MaxLevel {
		return nil, domain.ErrLevelLocked
	}
	unlocked, err := g.progression.UnlockedLevel(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if level > unlocked {
		return nil, domain.ErrLevelLocked
	}

	questions, err := g.preparer.Prepare(ctx, level)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		// Scoring requires at least one question; an empty level never starts.
		return nil, domain.ErrSourceUnavailable
	}

	session := NewSessionWithClock(playerID, level, questions, g.now)
	g.mu.Lock()
	g.sessions[playerID] = session
	g.mu.Unlock()
	return session, nil
}

// Session returns the player's active session, if any.
func (g *GameService) Session(playerID string) (*Session, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	session, ok := g.sessions[playerID]
	return session, ok
}

// SubmitAnswer records an answer on the player's active session. On the
// final answer it scores the session, commits the single frontier mutation,
// emits the record, and closes the session. A sink failure never reaches the
// caller; a progression-store failure is logged and the frontier reported
// unchanged.
func (g *GameService) SubmitAnswer(ctx context.Context, playerID, chosenOption string) (AnswerResult, error) {
	session, ok := g.Session(playerID)
	if !ok {
		return AnswerResult{}, domain.ErrSessionNotFound
	}

	outcome, err := session.SubmitAnswer(chosenOption)
	if err != nil {
		return AnswerResult{}, err
	}

	result := AnswerResult{
		Outcome:  outcome,
		Position: session.Position(),
		Total:    session.TotalQuestions(),
	}
	if !outcome.IsSessionComplete {
		return result, nil
	}

	endedAt := g.now()
	score, err := ScoreAnswers(session.Answers(), session.TotalQuestions())
	if err != nil {
		return AnswerResult{}, err
	}

	unlocked, advanced, err := g.progression.Apply(ctx, playerID, session.Level(), score)
	if err != nil {
		g.log.WithError(err).WithField("player", playerID).Warn("failed to update progression")
		unlocked, advanced = session.Level(), false
	}

	record := g.recorder.Emit(ctx, session, score, endedAt)

	g.mu.Lock()
	delete(g.sessions, playerID)
	g.mu.Unlock()

	result.Result = &LevelResult{
		Record:        record,
		Passed:        Passed(score),
		Advanced:      advanced,
		UnlockedLevel: unlocked,
	}
	return result, nil
}

// Abandon discards the player's active session without emitting a record.
func (g *GameService) Abandon(playerID string) {
	g.mu.Lock()
	delete(g.sessions, playerID)
	g.mu.Unlock()
}
