package app

import "quiz-runner/internal/domain"

// OptionVerdict classifies one option after grading, keyed by canonical index.
type OptionVerdict string

const (
	// VerdictCorrect marks an option that belongs to the answer set.
	VerdictCorrect OptionVerdict = "correct"
	// VerdictIncorrectlyChosen marks a chosen option outside the answer set.
	VerdictIncorrectlyChosen OptionVerdict = "incorrectlyChosen"
	// VerdictNone marks an option that is neither correct nor chosen.
	VerdictNone OptionVerdict = "none"
)

// Verdict is the outcome of grading one submission.
type Verdict struct {
	Correct bool            `json:"correct"`
	Options []OptionVerdict `json:"options"` // indexed by canonical option index
}

// Grade compares the chosen canonical indices against the question's answer
// set. Both sides are treated as sets: order and duplicates are irrelevant,
// and no partial credit is given. Grading never looks at display order.
func Grade(q domain.Question, chosen []int) Verdict {
	want := indexSet(q.Answer)
	got := indexSet(chosen)

	correct := len(want) == len(got)
	if correct {
		for idx := range want {
			if _, ok := got[idx]; !ok {
				correct = false
				break
			}
		}
	}

	options := make([]OptionVerdict, len(q.Options))
	for i := range options {
		switch {
		case member(want, i):
			options[i] = VerdictCorrect
		case member(got, i):
			options[i] = VerdictIncorrectlyChosen
		default:
			options[i] = VerdictNone
		}
	}
	return Verdict{Correct: correct, Options: options}
}

func indexSet(indices []int) map[int]struct{} {
	set := make(map[int]struct{}, len(indices))
	for _, idx := range indices {
		set[idx] = struct{}{}
	}
	return set
}

func member(set map[int]struct{}, idx int) bool {
	_, ok := set[idx]
	return ok
}
