package app

import (
	"context"

	"vocab-quiz-service/internal/domain"
)

// ScoreAnswers computes the score over a session's recorded answers. Pure;
// safe to call any number of times. Fails with domain.ErrEmptySession when
// totalQuestions is zero.
func ScoreAnswers(answers []domain.AnswerEntry, totalQuestions int) (domain.Score, error) {
	if totalQuestions == 0 {
		return domain.Score{}, domain.ErrEmptySession
	}
	correct := 0
	for _, entry := range answers {
		if entry.IsCorrect {
			correct++
		}
	}
	return domain.Score{
		CorrectCount:    correct,
		AccuracyPercent: 100 * float64(correct) / float64(totalQuestions),
	}, nil
}

// Passed reports whether a score clears the level. The threshold is
// inclusive: exactly 90.0 passes.
func Passed(score domain.Score) bool {
	return score.AccuracyPercent >= domain.PassThresholdPercent
}

// Progression applies the frontier-advance rule on top of a ProgressionStore.
// The frontier moves by one iff the cleared level IS the frontier, the score
// passes, and the frontier is below MaxLevel. Nothing else mutates it:
// replaying a level below the frontier is a no-op even at 100%.
type Progression struct {
	store ProgressionStore
}

func NewProgression(store ProgressionStore) *Progression {
	return &Progression{store: store}
}

// UnlockedLevel returns the player's current frontier, at least 1.
func (p *Progression) UnlockedLevel(ctx context.Context, playerID string) (int, error) {
	unlocked, err := p.store.UnlockedLevel(ctx, playerID)
	if err != nil {
		return 0, err
	}
	if unlocked < 1 {
		unlocked = 1
	}
	return unlocked, nil
}

// Apply commits the single frontier mutation for a finished session and
// returns the resulting frontier plus whether it advanced.
func (p *Progression) Apply(ctx context.Context, playerID string, level int, score domain.Score) (int, bool, error) {
	unlocked, err := p.UnlockedLevel(ctx, playerID)
	if err != nil {
		return 0, false, err
	}
	if !Passed(score) || level != unlocked || unlocked >= domain.MaxLevel {
		return unlocked, false, nil
	}
	unlocked++
	if err := p.store.SetUnlockedLevel(ctx, playerID, unlocked); err != nil {
		return unlocked - 1, false, err
	}
	return unlocked, true, nil
}
