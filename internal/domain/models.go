package domain

import "time"

const (
	// MaxLevel is the highest playable level.
	MaxLevel = 10
	// PassThresholdPercent is the inclusive accuracy required to clear a level.
	PassThresholdPercent = 90.0
)

// WordPair is a raw vocabulary entry as returned by a word source.
type WordPair struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}

// Question is a prepared multiple-choice question. Options contains the
// correct translation exactly once; the order is fixed at preparation and
// never reshuffled. The correct answer is withheld from wire payloads.
type Question struct {
	ID            int      `json:"id"`
	Prompt        string   `json:"prompt"`
	CorrectAnswer string   `json:"-"`
	Options       []string `json:"options"`
}

// AnswerEntry records one submitted answer, in presentation order.
type AnswerEntry struct {
	QuestionID   int    `json:"questionId"`
	ChosenOption string `json:"chosenOption"`
	IsCorrect    bool   `json:"isCorrect"`
}

// Score summarizes correctness over a session's recorded answers.
type Score struct {
	CorrectCount    int     `json:"correctCount"`
	AccuracyPercent float64 `json:"accuracyPercent"`
}

// LevelStatus reports whether a level is reachable for a player.
type LevelStatus struct {
	Level    int  `json:"level"`
	Unlocked bool `json:"unlocked"`
}

// SessionRecord is the immutable summary persisted when a session completes.
type SessionRecord struct {
	ID              string    `json:"id"`
	PlayerID        string    `json:"playerId"`
	StartedAt       time.Time `json:"startedAt"`
	EndedAt         time.Time `json:"endedAt"`
	DurationMs      int64     `json:"durationMs"`
	Level           int       `json:"level"`
	TotalQuestions  int       `json:"totalQuestions"`
	CorrectCount    int       `json:"correctCount"`
	AccuracyPercent float64   `json:"accuracyPercent"`
}
