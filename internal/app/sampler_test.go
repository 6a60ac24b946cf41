package app

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"quiz-runner/internal/domain"
)

func bankQuestions() []domain.Question {
	d1, d2 := 1, 2
	return []domain.Question{
		{ID: "q1", Source: "net", Difficulty: &d1, Type: domain.TypeSingle, Options: []string{"a", "b"}, Answer: []int{0}},
		{ID: "q2", Source: "net", Difficulty: &d2, Type: domain.TypeSingle, Options: []string{"a", "b"}, Answer: []int{1}},
		{ID: "q3", Source: "db", Difficulty: &d1, Type: domain.TypeSingle, Options: []string{"a", "b"}, Answer: []int{0}},
		{ID: "q4", Type: domain.TypeSingle, Options: []string{"a", "b"}, Answer: []int{1}}, // no source, no difficulty
	}
}

func seqSettings(count int) domain.Settings {
	return domain.Settings{Count: count, Mode: domain.ModeSequential}
}

func TestSampleFilterPredicates(t *testing.T) {
	qs := bankQuestions()
	rnd := rand.New(rand.NewSource(1))

	cases := []struct {
		name     string
		criteria domain.FilterCriteria
		want     []string
	}{
		{"all", domain.FilterCriteria{Source: "ALL", Difficulty: "ALL"}, []string{"q1", "q2", "q3", "q4"}},
		{"by source", domain.FilterCriteria{Source: "net", Difficulty: "ALL"}, []string{"q1", "q2"}},
		{"by difficulty", domain.FilterCriteria{Source: "ALL", Difficulty: "1"}, []string{"q1", "q3"}},
		{"both", domain.FilterCriteria{Source: "net", Difficulty: "2"}, []string{"q2"}},
		{"unclassified fallback", domain.FilterCriteria{Source: "unclassified", Difficulty: "ALL"}, []string{"q4"}},
	}
	for _, tc := range cases {
		got, err := Sample(qs, tc.criteria, seqSettings(10), rnd)
		if err != nil {
			t.Fatalf("%s: sample: %v", tc.name, err)
		}
		if len(got) != len(tc.want) {
			t.Fatalf("%s: expected %d questions, got %d", tc.name, len(tc.want), len(got))
		}
		for i, id := range tc.want {
			if got[i].ID != id {
				t.Fatalf("%s: position %d: expected %s, got %s", tc.name, i, id, got[i].ID)
			}
		}
	}
}

func TestSampleEmptySelection(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	_, err := Sample(bankQuestions(), domain.FilterCriteria{Source: "nope", Difficulty: "ALL"}, seqSettings(10), rnd)
	if !errors.Is(err, domain.ErrEmptySelection) {
		t.Fatalf("expected ErrEmptySelection, got %v", err)
	}
}

func TestSampleTruncation(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	got, err := Sample(bankQuestions(), domain.FilterCriteria{Source: "ALL", Difficulty: "ALL"}, seqSettings(2), rnd)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	if len(got) != 2 || got[0].ID != "q1" || got[1].ID != "q2" {
		t.Fatalf("expected first two questions in bank order, got %+v", got)
	}
}

func TestSampleSequentialPreservesOrder(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))
	got, err := Sample(bankQuestions(), domain.FilterCriteria{Source: "ALL", Difficulty: "ALL"}, seqSettings(10), rnd)
	if err != nil {
		t.Fatalf("sample: %v", err)
	}
	for i, id := range []string{"q1", "q2", "q3", "q4"} {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

// TestSampleRandomIsUnbiased draws many permutations of a 3-question set and
// checks the frequencies with a chi-square bound. With a seeded source the
// test is deterministic; df=5, p=0.001 critical value is 20.52.
func TestSampleRandomIsUnbiased(t *testing.T) {
	qs := bankQuestions()[:3]
	settings := domain.Settings{Count: 3, Mode: domain.ModeRandom}
	rnd := rand.New(rand.NewSource(7))

	const trials = 6000
	counts := make(map[string]int, 6)
	for i := 0; i < trials; i++ {
		got, err := Sample(qs, domain.FilterCriteria{Source: "ALL", Difficulty: "ALL"}, settings, rnd)
		if err != nil {
			t.Fatalf("sample: %v", err)
		}
		key := fmt.Sprintf("%s%s%s", got[0].ID, got[1].ID, got[2].ID)
		counts[key]++
	}

	if len(counts) != 6 {
		t.Fatalf("expected all 6 permutations to occur, got %d", len(counts))
	}
	expected := float64(trials) / 6
	chi := 0.0
	for _, c := range counts {
		diff := float64(c) - expected
		chi += diff * diff / expected
	}
	if chi > 20.52 {
		t.Fatalf("permutation frequencies too skewed: chi-square=%.2f counts=%v", chi, counts)
	}
}

func TestDisplayOrderIsPermutation(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))

	order := displayOrder(6, true, rnd)
	seen := make(map[int]bool, 6)
	for _, idx := range order {
		if idx < 0 || idx >= 6 || seen[idx] {
			t.Fatalf("not a permutation: %v", order)
		}
		seen[idx] = true
	}
	if len(seen) != 6 {
		t.Fatalf("expected full permutation, got %v", order)
	}
}

func TestDisplayOrderIdentityWithoutShuffle(t *testing.T) {
	rnd := rand.New(rand.NewSource(3))
	order := displayOrder(4, false, rnd)
	for i, idx := range order {
		if idx != i {
			t.Fatalf("expected identity order, got %v", order)
		}
	}
}
