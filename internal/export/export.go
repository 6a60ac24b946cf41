// Package export turns the missed-question log of a finished session into a
// persisted JSON artifact. The snapshot is verbatim data: decoding an encoded
// snapshot yields the exact records that were exported.
package export

import (
	"encoding/json"
	"time"

	"quiz-runner/internal/domain"
)

// Snapshot is the exported document: a timestamp plus the missed records.
type Snapshot struct {
	ExportedAt time.Time             `json:"exportedAt"`
	Missed     []domain.MissedRecord `json:"missed"`
}

// NewSnapshot builds a snapshot from a finalized summary. Summaries without
// missed questions (or with review disabled) have nothing to export.
func NewSnapshot(summary domain.SessionSummary, now time.Time) (Snapshot, error) {
	if len(summary.Missed) == 0 {
		return Snapshot{}, domain.ErrNothingToExport
	}
	return Snapshot{
		ExportedAt: now.UTC(),
		Missed:     append([]domain.MissedRecord(nil), summary.Missed...),
	}, nil
}

// Encode renders the snapshot as indented JSON.
func (s Snapshot) Encode() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Decode parses a previously encoded snapshot.
func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}
