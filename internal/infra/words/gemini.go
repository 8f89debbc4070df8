package words

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"vocab-quiz-service/internal/domain"
)

const (
	geminiModel   = "gemini-2.0-flash"
	wordsPerLevel = 10
)

// GeminiSource generates level-appropriate vocabulary and plausible wrong
// translations with the Gemini API. The client reads its credential from the
// environment (GEMINI_API_KEY); construction fails without one, which is how
// the wiring decides to fall back to the static lists.
type GeminiSource struct {
	client *genai.Client
	log    *logrus.Logger
}

func NewGeminiSource(ctx context.Context, log *logrus.Logger) (*GeminiSource, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiSource{client: client, log: log}, nil
}

// FetchWords asks the model for a word list for the level. Any failure is
// returned to the caller, which treats it as "try the next source".
func (s *GeminiSource) FetchWords(ctx context.Context, level int) ([]domain.WordPair, error) {
	prompt := fmt.Sprintf(
		"Generate %d English words with their Spanish translations for a vocabulary quiz. "+
			"Difficulty tier %d of %d: tier 1 is everyday beginner words, tier %d is rare advanced words. "+
			"Respond with a pure JSON array only, no prose: "+
			`[{"word": "...", "translation": "..."}]`,
		wordsPerLevel, level, domain.MaxLevel, domain.MaxLevel,
	)

	result, err := s.client.Models.GenerateContent(ctx, geminiModel, genai.Text(prompt), nil)
	if err != nil {
		return nil, fmt.Errorf("generate words: %w", err)
	}

	var pairs []domain.WordPair
	if err := decodeModelJSON(result.Text(), &pairs); err != nil {
		return nil, fmt.Errorf("decode word list: %w", err)
	}

	clean := pairs[:0]
	for _, pair := range pairs {
		pair.Word = strings.TrimSpace(pair.Word)
		pair.Translation = strings.TrimSpace(pair.Translation)
		if pair.Word != "" && pair.Translation != "" {
			clean = append(clean, pair)
		}
	}
	return clean, nil
}

// GenerateDistractors asks the model for plausible wrong translations.
// Best-effort: any failure degrades to placeholder options so a flaky model
// never fails the level.
func (s *GeminiSource) GenerateDistractors(ctx context.Context, word, translation string, count int) ([]string, error) {
	prompt := fmt.Sprintf(
		"The English word %q translates to Spanish as %q. "+
			"Give %d plausible but WRONG Spanish translations a learner might confuse with it. "+
			"None may equal %q. Respond with a pure JSON array of strings only.",
		word, translation, count, translation,
	)

	result, err := s.client.Models.GenerateContent(ctx, geminiModel, genai.Text(prompt), nil)
	if err != nil {
		s.log.WithError(err).WithField("word", word).Debug("distractor generation failed, using placeholders")
		return placeholders(count), nil
	}

	var distractors []string
	if err := decodeModelJSON(result.Text(), &distractors); err != nil {
		s.log.WithError(err).WithField("word", word).Debug("bad distractor payload, using placeholders")
		return placeholders(count), nil
	}

	clean := distractors[:0]
	for _, d := range distractors {
		d = strings.TrimSpace(d)
		if d != "" && d != translation {
			clean = append(clean, d)
		}
	}
	if len(clean) == 0 {
		return placeholders(count), nil
	}
	return clean, nil
}

func placeholders(count int) []string {
	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		out = append(out, PlaceholderDistractor(i))
	}
	return out
}

// decodeModelJSON strips the markdown code fences models like to wrap JSON
// in, then unmarshals.
func decodeModelJSON(raw string, v any) error {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.Trim(clean, "`")
	clean = strings.TrimSpace(clean)
	if clean == "" {
		return fmt.Errorf("empty model response")
	}
	return json.Unmarshal([]byte(clean), v)
}
