package app

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"vocab-quiz-service/internal/domain"
)

// DefaultDistractorCount is the number of wrong options requested per word.
const DefaultDistractorCount = 3

// Preparer turns raw word/translation pairs into shuffled multiple-choice
// questions. Sources form a chain: the first one returning a non-empty pair
// list for the level wins, and its distractor generator is used for every
// word in that list.
type Preparer struct {
	sources     []WordSource
	distractors int
	rnd         *rand.Rand
}

func NewPreparer(sources []WordSource, distractorCount int) *Preparer {
	return NewPreparerWithRand(sources, distractorCount, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewPreparerWithRand allows deterministic shuffles in tests.
func NewPreparerWithRand(sources []WordSource, distractorCount int, rnd *rand.Rand) *Preparer {
	if distractorCount <= 0 {
		distractorCount = DefaultDistractorCount
	}
	return &Preparer{sources: sources, distractors: distractorCount, rnd: rnd}
}

// Prepare builds the question sequence for a level. It fails with
// domain.ErrSourceUnavailable only when every source in the chain is
// exhausted; distractor trouble is absorbed into smaller option sets.
func (p *Preparer) Prepare(ctx context.Context, level int) ([]domain.Question, error) {
	pairs, source, err := p.fetchPairs(ctx, level)
	if err != nil {
		return nil, err
	}

	// Distractor fetches for different words are independent; run them
	// concurrently and collect by index so question order stays the pair order.
	distractors := make([][]string, len(pairs))
	g, gctx := errgroup.WithContext(ctx)
	for i, pair := range pairs {
		i, pair := i, pair
		g.Go(func() error {
			opts, err := source.GenerateDistractors(gctx, pair.Word, pair.Translation, p.distractors)
			if err != nil {
				// Best-effort contract: a failing generator costs us
				// distractors, not the level.
				return nil
			}
			distractors[i] = opts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Shuffling uses the shared rnd, so it stays on this goroutine.
	questions := make([]domain.Question, 0, len(pairs))
	for i, pair := range pairs {
		options := buildOptions(pair.Translation, distractors[i])
		p.rnd.Shuffle(len(options), func(a, b int) {
			options[a], options[b] = options[b], options[a]
		})
		questions = append(questions, domain.Question{
			ID:            i,
			Prompt:        pair.Word,
			CorrectAnswer: pair.Translation,
			Options:       options,
		})
	}
	return questions, nil
}

func (p *Preparer) fetchPairs(ctx context.Context, level int) ([]domain.WordPair, WordSource, error) {
	for _, source := range p.sources {
		pairs, err := source.FetchWords(ctx, level)
		if err != nil {
			// A broken source is skipped; only total absence of words is fatal.
			continue
		}
		if len(pairs) > 0 {
			return pairs, source, nil
		}
	}
	return nil, nil, domain.ErrSourceUnavailable
}

// buildOptions assembles the option set: correct answer plus every distractor
// that is distinct from it and from the ones already taken. A short set is
// legal when the generator came up empty-handed.
func buildOptions(translation string, distractors []string) []string {
	options := []string{translation}
	seen := map[string]struct{}{translation: {}}
	for _, d := range distractors {
		if d == "" {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		options = append(options, d)
	}
	return options
}
