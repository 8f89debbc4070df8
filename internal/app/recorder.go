package app

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"vocab-quiz-service/internal/domain"
)

// Recorder assembles session summaries and hands them to the record sink.
// Sink failures are logged and swallowed: the player always gets their
// result, persisted or not.
type Recorder struct {
	sink RecordSink
	log  *logrus.Logger
}

func NewRecorder(sink RecordSink, log *logrus.Logger) *Recorder {
	return &Recorder{sink: sink, log: log}
}

// Emit snapshots the completed session into a SessionRecord and saves it.
// The returned record is valid regardless of sink success.
func (r *Recorder) Emit(ctx context.Context, session *Session, score domain.Score, endedAt time.Time) domain.SessionRecord {
	durationMs := endedAt.Sub(session.StartedAt()).Milliseconds()
	if durationMs < 0 {
		// Wall clock stepped backwards mid-session.
		durationMs = 0
	}
	record := domain.SessionRecord{
		ID:              uuid.NewString(),
		PlayerID:        session.PlayerID(),
		StartedAt:       session.StartedAt(),
		EndedAt:         endedAt,
		DurationMs:      durationMs,
		Level:           session.Level(),
		TotalQuestions:  session.TotalQuestions(),
		CorrectCount:    score.CorrectCount,
		AccuracyPercent: score.AccuracyPercent,
	}

	if err := r.sink.Save(ctx, record); err != nil {
		r.log.WithError(err).WithFields(logrus.Fields{
			"player": record.PlayerID,
			"level":  record.Level,
			"record": record.ID,
		}).Warn("failed to save session record")
	}
	return record
}
