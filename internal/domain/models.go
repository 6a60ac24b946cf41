package domain

import (
	"fmt"
	"strconv"
)

// QuestionType determines how many answers a question expects.
type QuestionType string

const (
	// TypeSingle locks in the first chosen option immediately.
	TypeSingle QuestionType = "single"
	// TypeMulti accumulates a toggleable set until explicit submission.
	TypeMulti QuestionType = "multi"
)

// SourceUnclassified is the fallback label for questions without a source.
const SourceUnclassified = "unclassified"

// Explain carries the optional rationale attached to a question.
type Explain struct {
	Why     string   `json:"why,omitempty"`
	Options []string `json:"options,omitempty"` // aligned to canonical option order
}

// Question is an immutable bank record. Option identity is the canonical
// index into Options; display shuffling never changes it.
type Question struct {
	ID         string       `json:"id"`
	Source     string       `json:"source,omitempty"`
	Difficulty *int         `json:"difficulty,omitempty"`
	Tags       []string     `json:"tags,omitempty"`
	Type       QuestionType `json:"type"`
	Stem       string       `json:"stem"`
	Options    []string     `json:"options" validate:"required,min=2"`
	Answer     []int        `json:"answer" validate:"required,min=1"`
	Explain    *Explain     `json:"explain,omitempty"`
}

// SourceLabel returns the source or the unclassified fallback.
func (q Question) SourceLabel() string {
	if q.Source == "" {
		return SourceUnclassified
	}
	return q.Source
}

// DifficultyLabel returns the difficulty for display, "-" when unset.
func (q Question) DifficultyLabel() string {
	if q.Difficulty == nil {
		return "-"
	}
	return strconv.Itoa(*q.Difficulty)
}

// BankMeta describes the bank as a whole.
type BankMeta struct {
	Title string `json:"title,omitempty"`
}

// Bank is the loaded question collection. The core treats it as read-only.
type Bank struct {
	Meta      BankMeta   `json:"meta,omitempty"`
	Questions []Question `json:"questions"`
}

// SelectionMode controls how the sampler orders the filtered set.
type SelectionMode string

const (
	ModeSequential SelectionMode = "sequential"
	ModeRandom     SelectionMode = "random"
)

// FilterAll is the wildcard value accepted by both filter fields.
const FilterAll = "ALL"

// FilterCriteria narrows the bank before sampling. Difficulty is the decimal
// string of an exact level, or "ALL".
type FilterCriteria struct {
	Source     string `json:"source"`
	Difficulty string `json:"difficulty"`
}

// Matches reports whether q passes both filter predicates.
func (c FilterCriteria) Matches(q Question) bool {
	if c.Source != "" && c.Source != FilterAll && c.Source != q.SourceLabel() {
		return false
	}
	if c.Difficulty != "" && c.Difficulty != FilterAll {
		want, err := strconv.Atoi(c.Difficulty)
		if err != nil {
			return false
		}
		if q.Difficulty == nil || *q.Difficulty != want {
			return false
		}
	}
	return true
}

// Settings configure one quiz session.
type Settings struct {
	Count          int           `json:"count"`
	Mode           SelectionMode `json:"mode"`
	ShuffleOptions bool          `json:"shuffleOptions"`
	ShowExplain    bool          `json:"showExplain"`
	AllowReview    bool          `json:"allowReview"`
}

// Normalized applies the count floor and the default selection mode.
func (s Settings) Normalized() Settings {
	if s.Count < 1 {
		s.Count = 1
	}
	if s.Mode != ModeSequential {
		s.Mode = ModeRandom
	}
	return s
}

// MissedRecord is a point-in-time snapshot of a question answered incorrectly,
// plus the canonical indices the user chose. It is a deep copy: later bank
// reloads must not alter recorded misses.
type MissedRecord struct {
	ID         string       `json:"id"`
	Source     string       `json:"source,omitempty"`
	Difficulty *int         `json:"difficulty,omitempty"`
	Tags       []string     `json:"tags,omitempty"`
	Type       QuestionType `json:"type"`
	Stem       string       `json:"stem"`
	Options    []string     `json:"options"`
	Answer     []int        `json:"answer"`
	Explain    *Explain     `json:"explain,omitempty"`
	Chosen     []int        `json:"chosen"`
}

// SnapshotMissed copies q and the chosen set into a detached MissedRecord.
func SnapshotMissed(q Question, chosen []int) MissedRecord {
	rec := MissedRecord{
		ID:      q.ID,
		Source:  q.Source,
		Type:    q.Type,
		Stem:    q.Stem,
		Tags:    append([]string(nil), q.Tags...),
		Options: append([]string(nil), q.Options...),
		Answer:  append([]int(nil), q.Answer...),
		Chosen:  append([]int(nil), chosen...),
	}
	if q.Difficulty != nil {
		d := *q.Difficulty
		rec.Difficulty = &d
	}
	if q.Explain != nil {
		rec.Explain = &Explain{
			Why:     q.Explain.Why,
			Options: append([]string(nil), q.Explain.Options...),
		}
	}
	return rec
}

// SessionSummary is the read-only result of a finished (or aborted) session.
type SessionSummary struct {
	Total          int            `json:"total"`
	Graded         int            `json:"graded"`
	Correct        int            `json:"correct"`
	Wrong          int            `json:"wrong"`
	Accuracy       int            `json:"accuracy"` // percent, rounded
	ElapsedSeconds int            `json:"elapsedSeconds"`
	Missed         []MissedRecord `json:"missed,omitempty"`
}

// ElapsedText formats the elapsed time as mm:ss.
func (s SessionSummary) ElapsedText() string {
	return fmt.Sprintf("%02d:%02d", s.ElapsedSeconds/60, s.ElapsedSeconds%60)
}
