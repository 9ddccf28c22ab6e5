package domain

import (
	"time"
	"unicode/utf8"
)

// AuditTextLimit is the default number of runes of input text kept in an audit entry.
const AuditTextLimit = 500

// AuditEntry is one prediction record written to the audit log.
type AuditEntry struct {
	ID         string
	Text       string
	Label      Label
	Confidence float64
	Status     Status
	CreatedAt  time.Time
}

// NewAuditEntry builds an entry from a prediction, truncating text to limit runes.
func NewAuditEntry(id, text string, p Prediction, limit int, now time.Time) AuditEntry {
	return AuditEntry{
		ID:         id,
		Text:       TruncateRunes(text, limit),
		Label:      p.Label,
		Confidence: p.Confidence,
		Status:     p.Status,
		CreatedAt:  now.UTC(),
	}
}

// TruncateRunes cuts s to at most limit runes. limit <= 0 disables truncation.
func TruncateRunes(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
