package words

import (
	"context"
	"fmt"

	"vocab-quiz-service/internal/domain"
)

// StaticSource serves built-in word lists. It is the end of the source
// chain: when no AI credential is configured the whole game runs on it.
type StaticSource struct {
	lists map[int][]domain.WordPair
}

func NewStaticSource(lists map[int][]domain.WordPair) *StaticSource {
	return &StaticSource{lists: lists}
}

func (s *StaticSource) FetchWords(_ context.Context, level int) ([]domain.WordPair, error) {
	pairs, ok := s.lists[level]
	if !ok {
		return nil, nil
	}
	out := make([]domain.WordPair, len(pairs))
	copy(out, pairs)
	return out, nil
}

// GenerateDistractors picks translations of other words from the same level
// list, topping up with placeholders when the list is too small. Never fails.
func (s *StaticSource) GenerateDistractors(_ context.Context, _ string, translation string, count int) ([]string, error) {
	distractors := make([]string, 0, count)
	for _, pairs := range s.lists {
		for _, pair := range pairs {
			if len(distractors) == count {
				return distractors, nil
			}
			if pair.Translation != translation && !contains(distractors, pair.Translation) {
				distractors = append(distractors, pair.Translation)
			}
		}
	}
	for i := len(distractors); i < count; i++ {
		distractors = append(distractors, PlaceholderDistractor(i))
	}
	return distractors, nil
}

// PlaceholderDistractor is the filler option used when no real distractor
// can be produced. Callers tolerate these rather than fail the level.
func PlaceholderDistractor(i int) string {
	return fmt.Sprintf("option %d", i+1)
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}

// DefaultLists holds the built-in English to Spanish vocabulary for the
// first three levels, available with zero configuration.
func DefaultLists() map[int][]domain.WordPair {
	return map[int][]domain.WordPair{
		1: {
			{Word: "apple", Translation: "manzana"},
			{Word: "house", Translation: "casa"},
			{Word: "water", Translation: "agua"},
			{Word: "book", Translation: "libro"},
			{Word: "dog", Translation: "perro"},
			{Word: "cat", Translation: "gato"},
			{Word: "sun", Translation: "sol"},
			{Word: "moon", Translation: "luna"},
			{Word: "bread", Translation: "pan"},
			{Word: "milk", Translation: "leche"},
		},
		2: {
			{Word: "window", Translation: "ventana"},
			{Word: "street", Translation: "calle"},
			{Word: "morning", Translation: "mañana"},
			{Word: "friend", Translation: "amigo"},
			{Word: "family", Translation: "familia"},
			{Word: "school", Translation: "escuela"},
			{Word: "garden", Translation: "jardín"},
			{Word: "kitchen", Translation: "cocina"},
			{Word: "weather", Translation: "tiempo"},
			{Word: "journey", Translation: "viaje"},
		},
		3: {
			{Word: "knowledge", Translation: "conocimiento"},
			{Word: "behavior", Translation: "comportamiento"},
			{Word: "development", Translation: "desarrollo"},
			{Word: "environment", Translation: "medio ambiente"},
			{Word: "government", Translation: "gobierno"},
			{Word: "experience", Translation: "experiencia"},
			{Word: "research", Translation: "investigación"},
			{Word: "achievement", Translation: "logro"},
			{Word: "improvement", Translation: "mejora"},
			{Word: "agreement", Translation: "acuerdo"},
		},
	}
}
