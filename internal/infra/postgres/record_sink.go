package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"vocab-quiz-service/internal/domain"
)

// RecordSink persists completed session records to Postgres.
type RecordSink struct {
	pool *pgxpool.Pool
}

func NewRecordSink(pool *pgxpool.Pool) *RecordSink {
	return &RecordSink{pool: pool}
}

func (s *RecordSink) Save(ctx context.Context, record domain.SessionRecord) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO session_records
			(id, player_id, started_at, ended_at, duration_ms, level, total_questions, correct_count, accuracy_percent)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		record.ID,
		record.PlayerID,
		record.StartedAt,
		record.EndedAt,
		record.DurationMs,
		record.Level,
		record.TotalQuestions,
		record.CorrectCount,
		record.AccuracyPercent,
	)
	if err != nil {
		return fmt.Errorf("save session record: %w", err)
	}
	return nil
}
