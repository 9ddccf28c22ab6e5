package lexicon

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokens(t *testing.T) {
	got := Tokens(`  "BREAKING:" You won't believe this mind-blowing SECRET!! `)
	want := []string{"breaking", "you", "won't", "believe", "this", "mind-blowing", "secret"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokens_PunctuationOnly(t *testing.T) {
	if got := Tokens("!!! ... ???"); len(got) != 0 {
		t.Errorf("expected no tokens, got %v", got)
	}
}

func TestSubjectivity(t *testing.T) {
	tests := []struct {
		name string
		text string
		want float64
	}{
		{"empty", "", 0},
		{"objective", "The senate passed the bill on a recorded vote", 0},
		{"half", "I think prices rose", 0.5},
		{"all", "really very so", 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Subjectivity(tc.text); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestListsAreLowercaseAndUnique(t *testing.T) {
	lists := map[string][]string{
		"angry":    Angry,
		"fear":     Fear,
		"triggers": ClickbaitTriggers,
	}
	for name, l := range lists {
		seen := map[string]bool{}
		for _, w := range l {
			if seen[w] {
				t.Errorf("%s: duplicate %q", name, w)
			}
			seen[w] = true
		}
	}
	for _, topic := range TopicOrder {
		if len(TopicKeywords[topic]) == 0 {
			t.Errorf("topic %s has no keywords", topic)
		}
	}
}
