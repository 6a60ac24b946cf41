package app

import (
	"testing"

	"quiz-runner/internal/domain"
)

func TestGradeSetEquality(t *testing.T) {
	q := domain.Question{
		Type:    domain.TypeMulti,
		Options: []string{"a", "b", "c", "d"},
		Answer:  []int{0, 1},
	}

	cases := []struct {
		name    string
		chosen  []int
		correct bool
	}{
		{"exact", []int{0, 1}, true},
		{"reversed order", []int{1, 0}, true},
		{"duplicates collapse", []int{0, 0, 1, 1}, true},
		{"subset", []int{1}, false},
		{"superset", []int{0, 1, 2}, false},
		{"disjoint", []int{2, 3}, false},
		{"empty", nil, false},
	}
	for _, tc := range cases {
		if got := Grade(q, tc.chosen).Correct; got != tc.correct {
			t.Fatalf("%s: expected correct=%v, got %v", tc.name, tc.correct, got)
		}
	}
}

func TestGradeOrderAndDuplicateIndependence(t *testing.T) {
	q := domain.Question{
		Type:    domain.TypeMulti,
		Options: []string{"a", "b", "c"},
		Answer:  []int{0, 1},
	}

	a := Grade(q, []int{1, 0})
	b := Grade(q, []int{0, 0, 1, 1})
	if a.Correct != b.Correct {
		t.Fatalf("expected identical correctness, got %v vs %v", a.Correct, b.Correct)
	}
	for i := range a.Options {
		if a.Options[i] != b.Options[i] {
			t.Fatalf("option %d verdicts differ: %s vs %s", i, a.Options[i], b.Options[i])
		}
	}
}

func TestGradePerOptionVerdicts(t *testing.T) {
	q := domain.Question{
		Type:    domain.TypeSingle,
		Options: []string{"a", "b", "c", "d"},
		Answer:  []int{1},
	}

	verdict := Grade(q, []int{0})
	if verdict.Correct {
		t.Fatalf("expected incorrect")
	}
	want := []OptionVerdict{VerdictIncorrectlyChosen, VerdictCorrect, VerdictNone, VerdictNone}
	for i, w := range want {
		if verdict.Options[i] != w {
			t.Fatalf("option %d: expected %s, got %s", i, w, verdict.Options[i])
		}
	}
}

func TestGradeIgnoresAnswerDuplicates(t *testing.T) {
	// The grader must not assume a well-formed answer set either.
	q := domain.Question{
		Type:    domain.TypeSingle,
		Options: []string{"a", "b"},
		Answer:  []int{1, 1},
	}
	if !Grade(q, []int{1}).Correct {
		t.Fatalf("expected duplicate answer indices to collapse")
	}
}
