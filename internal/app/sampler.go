package app

import (
	"math/rand"

	"quiz-runner/internal/domain"
)

// Sample builds the ordered quiz list for one session: an order-preserving
// filter pass, an optional unbiased permutation, then truncation to the
// requested count. An empty result is an error; no session may start on it.
func Sample(questions []domain.Question, criteria domain.FilterCriteria, settings domain.Settings, rnd *rand.Rand) ([]domain.Question, error) {
	filtered := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if criteria.Matches(q) {
			filtered = append(filtered, q)
		}
	}
	if len(filtered) == 0 {
		return nil, domain.ErrEmptySelection
	}

	if settings.Mode == domain.ModeRandom {
		shuffleQuestions(filtered, rnd)
	}

	if n := settings.Count; n < len(filtered) {
		filtered = filtered[:n]
	}
	return filtered, nil
}

// shuffleQuestions permutes in place with Fisher-Yates, so every ordering is
// equally likely. A sort-by-random-key would bias the draw.
func shuffleQuestions(qs []domain.Question, rnd *rand.Rand) {
	for i := len(qs) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		qs[i], qs[j] = qs[j], qs[i]
	}
}

// displayOrder returns a fresh permutation of the canonical indices 0..n-1
// for presentation. With shuffling disabled it is the identity order. The
// permutation is presentation-only; canonical indices never move.
func displayOrder(n int, shuffle bool, rnd *rand.Rand) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if !shuffle {
		return order
	}
	for i := n - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}
