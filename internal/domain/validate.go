package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateQuestion checks the structural integrity of a bank record.
// Missing source or difficulty is tolerated (display fallbacks exist); a
// record without usable options or answer indices is rejected.
func ValidateQuestion(q Question) error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQuestion, err)
	}
	switch q.Type {
	case TypeSingle, TypeMulti:
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidQuestion, q.Type)
	}
	for _, idx := range q.Answer {
		if idx < 0 || idx >= len(q.Options) {
			return fmt.Errorf("%w: answer index %d out of range", ErrInvalidQuestion, idx)
		}
	}
	return nil
}

// SanitizeBank drops malformed records and reports the IDs it skipped.
// The remaining bank is safe for grading: every answer index is in range.
func SanitizeBank(b Bank) (Bank, []string) {
	if b.Questions == nil {
		return Bank{Meta: b.Meta}, nil
	}
	kept := make([]Question, 0, len(b.Questions))
	var skipped []string
	for _, q := range b.Questions {
		if err := ValidateQuestion(q); err != nil {
			skipped = append(skipped, q.ID)
			continue
		}
		kept = append(kept, q)
	}
	return Bank{Meta: b.Meta, Questions: kept}, skipped
}
