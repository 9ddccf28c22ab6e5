package analyzer

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/domain/report"
	"github.com/kailas-cloud/verity/internal/nlp/lexicon"
)

func TestAnalyze_EmptyInput(t *testing.T) {
	a := New()
	for _, in := range []string{"", "   ", "\n\t "} {
		r, err := a.Analyze(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		data, err := json.Marshal(r)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(data) != "{}" {
			t.Errorf("Analyze(%q): expected {}, got %s", in, data)
		}
	}
}

func TestAnalyze_SensationalHeadline(t *testing.T) {
	r, err := New().Analyze("BREAKING: You won't believe this SHOCKING secret!!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ClickbaitScore < 65 {
		t.Errorf("expected clickbait >= 65, got %d", r.ClickbaitScore)
	}
	if r.Tone != report.ToneAlarmist && r.Tone != report.ToneEmotional {
		t.Errorf("expected Alarmist or Highly Emotional, got %q", r.Tone)
	}
	if r.Sentiment == report.Positive {
		t.Errorf("expected Neutral or Negative, got %q", r.Sentiment)
	}
	want := []report.Keyword{
		{Term: "shocking", Category: report.CategoryClickbait},
		{Term: "secret", Category: report.CategoryClickbait},
		{Term: "won't believe", Category: report.CategoryClickbait},
	}
	if diff := cmp.Diff(want, r.FlaggedKeywords); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyze_ClickbaitBreakdown(t *testing.T) {
	// triggers 35 (capped) + punctuation 15 + caps 15 + second person 10 + short headline 5
	r, err := New().Analyze("BREAKING: You won't believe this SHOCKING secret!!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ClickbaitScore != 80 {
		t.Errorf("expected 80, got %d", r.ClickbaitScore)
	}
}

func TestAnalyze_RepeatedTriggersCountEachOccurrence(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		// one trigger 15 + short headline 5
		{"The committee published a shocking report today", 20},
		// two occurrences 30 + short headline 5
		{"The committee published a shocking shocking report today", 35},
		// three occurrences capped at 35 + short headline 5
		{"The committee published a shocking shocking shocking report today", 40},
		// repeated phrase counts twice: 30 + short headline 5
		{"Officials say won't believe it and won't believe anything", 35},
	}
	a := New()
	for _, tc := range tests {
		r, err := a.Analyze(tc.text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.ClickbaitScore != tc.want {
			t.Errorf("Analyze(%q).ClickbaitScore = %d, want %d", tc.text, r.ClickbaitScore, tc.want)
		}
	}
}

func TestAnalyze_RepeatedTriggerFlaggedOnce(t *testing.T) {
	r, err := New().Analyze("The committee published a shocking shocking shocking report today")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []report.Keyword{{Term: "shocking", Category: report.CategoryClickbait}}
	if diff := cmp.Diff(want, r.FlaggedKeywords); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyze_ClickbaitCapped(t *testing.T) {
	text := "10 reasons you won't believe this is why SHOCKING SECRET EXPOSED!!! ?!"
	r, err := New().Analyze(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ClickbaitScore != report.MaxClickbait {
		t.Errorf("expected %d, got %d", report.MaxClickbait, r.ClickbaitScore)
	}
}

func TestAnalyze_ClickbaitBounds(t *testing.T) {
	a := New()
	inputs := []string{
		"x",
		"The committee met on Tuesday.",
		strings.Repeat("SHOCKING!!! ", 200),
		"5 ways what happened will melt your heart you your yours",
		strings.Repeat("a", 5000),
	}
	for _, in := range inputs {
		r, err := a.Analyze(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.ClickbaitScore < 0 || r.ClickbaitScore > report.MaxClickbait {
			t.Errorf("clickbait out of range for %.20q: %d", in, r.ClickbaitScore)
		}
	}
}

func TestAnalyze_LongRepeatedRun(t *testing.T) {
	r, err := New().Analyze(strings.Repeat("e", 5000))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.IsNaN(r.ReadingScore) || math.IsInf(r.ReadingScore, 0) {
		t.Errorf("expected finite reading score, got %v", r.ReadingScore)
	}
	if r.ReadingLevel == "" {
		t.Error("expected a reading level")
	}
}

func TestAnalyze_NegativeClickbaitFallsBackToFake(t *testing.T) {
	text := "7 secrets they hide: deadly fraud and corrupt lies, this is why you won't believe it!!"
	r, err := New().Analyze(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.ClickbaitScore <= 60 {
		t.Fatalf("expected clickbait > 60, got %d", r.ClickbaitScore)
	}
	if n := lexicon.Count(lexicon.Tokens(text), lexicon.Negative); n < 2 {
		t.Fatalf("expected at least two negative words, got %d", n)
	}
	if v := Fallback(r); v.Label != domain.LabelFake {
		t.Errorf("expected FAKE, got %s (score %v)", v.Label, FallbackScore(r))
	}
}

func TestAnalyze_Tone(t *testing.T) {
	tests := []struct {
		text string
		want report.Tone
	}{
		{"Outrage as furious crowd calls it disgusting and a shame", report.ToneAggressive},
		{"Panic and crisis: collapse is a deadly threat", report.ToneAlarmist},
		{"Outrage furious disgusting panic crisis collapse", report.ToneAggressive},
		{"I really think this is absolutely amazing", report.ToneEmotional},
		{"The committee published its annual budget report on schedule", report.ToneNeutral},
	}
	a := New()
	for _, tc := range tests {
		r, err := a.Analyze(tc.text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Tone != tc.want {
			t.Errorf("Analyze(%q).Tone = %q, want %q", tc.text, r.Tone, tc.want)
		}
	}
}

func TestAnalyze_SentimentAndObjectivity(t *testing.T) {
	a := New()

	r, _ := a.Analyze("Great success and wonderful progress for the region")
	if r.Sentiment != report.Positive {
		t.Errorf("expected Positive, got %q", r.Sentiment)
	}

	r, _ = a.Analyze("Deadly attack leaves the city in fear")
	if r.Sentiment != report.Negative {
		t.Errorf("expected Negative, got %q", r.Sentiment)
	}

	r, _ = a.Analyze("The senate passed the bill after a recorded vote")
	if r.Sentiment != report.Neutral {
		t.Errorf("expected Neutral, got %q", r.Sentiment)
	}
	if r.Objectivity != report.MostlyObjective {
		t.Errorf("expected Mostly Objective, got %q", r.Objectivity)
	}

	r, _ = a.Analyze("I honestly think this is totally ridiculous")
	if r.Objectivity != report.HighlySubjective {
		t.Errorf("expected Highly Subjective, got %q", r.Objectivity)
	}
}

func TestAnalyze_Topic(t *testing.T) {
	tests := []struct {
		text string
		want report.Topic
	}{
		{"Voters prepare for the elections", report.Politics},
		{"New doctors join understaffed hospitals", report.Health},
		{"The president visited a hospital", report.Politics},
		{"AI startups raise funding", report.Tech},
		{"The stock market rallied", report.Finance},
		{"Concert tickets sold out for the film premiere", report.Entertainment},
		{"A quiet afternoon by the lake", report.General},
	}
	a := New()
	for _, tc := range tests {
		r, err := a.Analyze(tc.text)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Topic != tc.want {
			t.Errorf("Analyze(%q).Topic = %q, want %q", tc.text, r.Topic, tc.want)
		}
	}
}

func TestAnalyze_FlaggedKeywordsOrderAndUniqueness(t *testing.T) {
	r, err := New().Analyze("Crisis! Outrage over the crisis, a shocking crime and more outrage.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []report.Keyword{
		{Term: "outrage", Category: report.CategoryAggressive},
		{Term: "crime", Category: report.CategoryAggressive},
		{Term: "crisis", Category: report.CategoryFearmongering},
		{Term: "shocking", Category: report.CategoryClickbait},
	}
	if diff := cmp.Diff(want, r.FlaggedKeywords); diff != "" {
		t.Errorf("keywords mismatch (-want +got):\n%s", diff)
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	a := New()
	text := "SHOCKING: 5 signs the economy will collapse, what happened next will make you cry!"
	first, _ := a.Analyze(text)
	for i := 0; i < 5; i++ {
		got, _ := a.Analyze(text)
		if diff := cmp.Diff(first, got); diff != "" {
			t.Fatalf("run %d differs (-first +got):\n%s", i, diff)
		}
	}
}

func TestAnalyze_ReadingScoreOneDecimal(t *testing.T) {
	a := New()
	for _, in := range []string{
		"The senate passed the bill after a recorded vote",
		"Notwithstanding considerable institutional opposition, legislators ratified the comprehensive amendment.",
		"Cats sit. Dogs run. Birds fly.",
	} {
		r, err := a.Analyze(in)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := math.Round(r.ReadingScore*10) / 10; got != r.ReadingScore {
			t.Errorf("Analyze(%q).ReadingScore = %v, want one decimal", in, r.ReadingScore)
		}
	}
}

func TestReadingLevel(t *testing.T) {
	tests := []struct {
		score float64
		want  report.ReadingLevel
	}{
		{95, report.VeryEasy},
		{90, report.Easy},
		{85, report.Easy},
		{80, report.Standard},
		{61, report.Standard},
		{60, report.Complex},
		{31, report.Complex},
		{30, report.VeryComplex},
		{-40, report.VeryComplex},
	}
	for _, tc := range tests {
		if got := ReadingLevel(tc.score); got != tc.want {
			t.Errorf("ReadingLevel(%v) = %q, want %q", tc.score, got, tc.want)
		}
	}
}
