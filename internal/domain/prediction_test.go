package domain

import (
	"testing"
	"time"
)

func TestLabelFromClass(t *testing.T) {
	tests := []struct {
		class int
		want  Label
	}{
		{ClassFake, LabelFake},
		{ClassReal, LabelReal},
		{2, LabelReal},
		{-1, LabelReal},
	}
	for _, tc := range tests {
		if got := LabelFromClass(tc.class); got != tc.want {
			t.Errorf("LabelFromClass(%d) = %q, want %q", tc.class, got, tc.want)
		}
	}
	if LabelFake.Class() != ClassFake || LabelReal.Class() != ClassReal {
		t.Error("Class() must invert LabelFromClass")
	}
}

func TestConfidencePercent(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.82, 82.0},
		{0.6, 60.0},
		{0.95, 95.0},
		{0.12345, 12.3},
		{0.99999, 100.0},
		{1.7, 100.0},
		{-0.1, 0.0},
	}
	for _, tc := range tests {
		got := Prediction{Confidence: tc.in}.ConfidencePercent()
		if got != tc.want {
			t.Errorf("ConfidencePercent(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"héllo", 2, "hé"},
		{"hello", 0, "hello"},
		{"", 5, ""},
	}
	for _, tc := range tests {
		if got := TruncateRunes(tc.in, tc.limit); got != tc.want {
			t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestNewAuditEntry(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("X", 3600))
	p := Prediction{Label: LabelFake, Confidence: 0.7, Status: StatusSuccess}
	e := NewAuditEntry("id-1", "abcdef", p, 4, now)

	if e.Text != "abcd" {
		t.Errorf("expected truncated text, got %q", e.Text)
	}
	if e.Label != LabelFake || e.Status != StatusSuccess || e.Confidence != 0.7 {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.CreatedAt.Location() != time.UTC {
		t.Error("expected UTC timestamp")
	}
}
