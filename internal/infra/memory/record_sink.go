package memory

import (
	"context"
	"sync"

	"vocab-quiz-service/internal/domain"
)

// RecordSink collects session records in memory. Used in tests and in
// credential-less runs where no database is configured.
type RecordSink struct {
	mu      sync.Mutex
	records []domain.SessionRecord
}

func NewRecordSink() *RecordSink {
	return &RecordSink{}
}

func (s *RecordSink) Save(_ context.Context, record domain.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// Records returns a copy of everything saved so far.
func (s *RecordSink) Records() []domain.SessionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.SessionRecord, len(s.records))
	copy(out, s.records)
	return out
}
