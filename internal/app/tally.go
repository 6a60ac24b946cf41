package app

import (
	"math"

	"quiz-runner/internal/domain"
)

// Tally accumulates grading outcomes for one session. It is not safe for
// concurrent use on its own; QuizSession serializes access.
type Tally struct {
	correct int
	missed  []domain.MissedRecord
	seconds int
}

func NewTally() *Tally {
	return &Tally{}
}

// RecordResult books one graded question: a correct answer bumps the counter,
// an incorrect one appends a detached snapshot in encounter order.
func (t *Tally) RecordResult(q domain.Question, chosen []int, correct bool) {
	if correct {
		t.correct++
		return
	}
	t.missed = append(t.missed, domain.SnapshotMissed(q, chosen))
}

// Graded returns how many questions have been graded so far.
func (t *Tally) Graded() int {
	return t.correct + len(t.missed)
}

func (t *Tally) tick() {
	t.seconds++
}

// Finalize produces the read-only summary. Accuracy is computed over the
// questions actually graded, so an aborted session reports the accuracy of
// what was answered, not of the full quiz list. The missed list is exposed
// only when review is allowed and something was missed.
func (t *Tally) Finalize(total int, allowReview bool) domain.SessionSummary {
	graded := t.Graded()
	accuracy := 0
	if graded > 0 {
		accuracy = int(math.Round(float64(t.correct) / float64(graded) * 100))
	}
	summary := domain.SessionSummary{
		Total:          total,
		Graded:         graded,
		Correct:        t.correct,
		Wrong:          len(t.missed),
		Accuracy:       accuracy,
		ElapsedSeconds: t.seconds,
	}
	if allowReview && len(t.missed) > 0 {
		summary.Missed = append([]domain.MissedRecord(nil), t.missed...)
	}
	return summary
}
