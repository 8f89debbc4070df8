package app

import (
	"context"

	"vocab-quiz-service/internal/domain"
)

// WordSource supplies raw vocabulary and wrong-answer options for a level.
// FetchWords may return an empty slice to signal the caller should fall back
// to the next source in its chain. GenerateDistractors is best-effort: on
// internal failure implementations return placeholder strings of the
// requested count rather than an error.
type WordSource interface {
	FetchWords(ctx context.Context, level int) ([]domain.WordPair, error)
	GenerateDistractors(ctx context.Context, word, translation string, count int) ([]string, error)
}

// ProgressionStore persists each player's frontier (highest unlocked) level.
// Implementations must never let the stored level decrease.
type ProgressionStore interface {
	UnlockedLevel(ctx context.Context, playerID string) (int, error)
	SetUnlockedLevel(ctx context.Context, playerID string, level int) error
}

// RecordSink durably stores completed session summaries.
type RecordSink interface {
	Save(ctx context.Context, record domain.SessionRecord) error
}
