// Package report defines the heuristic linguistic report attached to every prediction.
package report

import "encoding/json"

// ReadingLevel is the 5-way ordinal readability band.
type ReadingLevel string

// Reading levels from easiest to hardest.
const (
	VeryEasy    ReadingLevel = "Very Easy"
	Easy        ReadingLevel = "Easy"
	Standard    ReadingLevel = "Standard"
	Complex     ReadingLevel = "Complex"
	VeryComplex ReadingLevel = "Very Complex (Academic/Legal)"
)

// Sentiment is the polarity label.
type Sentiment string

// Sentiment labels.
const (
	Positive Sentiment = "Positive"
	Neutral  Sentiment = "Neutral"
	Negative Sentiment = "Negative"
)

// Objectivity is the subjectivity label.
type Objectivity string

// Objectivity labels. Unknown is only used by the neutral default report.
const (
	HighlySubjective Objectivity = "Highly Subjective"
	MostlyObjective  Objectivity = "Mostly Objective"
	UnknownStance    Objectivity = "Unknown"
)

// Tone is the dominant emotional register.
type Tone string

// Tone labels.
const (
	ToneNeutral    Tone = "Neutral"
	ToneAggressive Tone = "Aggressive"
	ToneAlarmist   Tone = "Alarmist"
	ToneEmotional  Tone = "Highly Emotional"
)

// Topic is the detected subject area.
type Topic string

// Topics in detection priority order, General last.
const (
	Politics      Topic = "Politics"
	Health        Topic = "Health"
	Tech          Topic = "Tech"
	Finance       Topic = "Finance"
	Entertainment Topic = "Entertainment"
	General       Topic = "General"
)

// Category tags a flagged keyword with the lexicon it came from.
type Category string

// Keyword categories.
const (
	CategoryAggressive    Category = "Aggressive"
	CategoryFearmongering Category = "Fearmongering"
	CategoryClickbait     Category = "Clickbait"
)

// MaxClickbait is the upper bound of the clickbait index.
const MaxClickbait = 100

// Keyword is a lexicon term found in the text.
type Keyword struct {
	Term     string   `json:"word"`
	Category Category `json:"category"`
}

// Report is the auxiliary analysis of a text. The zero value is the empty report.
type Report struct {
	ReadingLevel    ReadingLevel `json:"reading_level"`
	ReadingScore    float64      `json:"reading_score"`
	Sentiment       Sentiment    `json:"sentiment"`
	Objectivity     Objectivity  `json:"objectivity"`
	Tone            Tone         `json:"tone"`
	ClickbaitScore  int          `json:"clickbait_score"`
	Topic           Topic        `json:"topic"`
	FlaggedKeywords []Keyword    `json:"flagged_keywords"`
}

// IsEmpty reports whether r carries no analysis.
func (r Report) IsEmpty() bool {
	return r.ReadingLevel == "" && r.Sentiment == "" && r.Objectivity == "" &&
		r.Tone == "" && r.Topic == "" && r.ClickbaitScore == 0 &&
		r.ReadingScore == 0 && len(r.FlaggedKeywords) == 0
}

// Default is the fixed report substituted when analysis cannot run at all.
func Default() Report {
	return Report{
		ReadingLevel:    Standard,
		ReadingScore:    50,
		Sentiment:       Neutral,
		Objectivity:     UnknownStance,
		Tone:            ToneNeutral,
		Topic:           General,
		FlaggedKeywords: []Keyword{},
	}
}

// MarshalJSON writes the empty report as {} and never emits a null keyword list.
func (r Report) MarshalJSON() ([]byte, error) {
	if r.IsEmpty() {
		return []byte("{}"), nil
	}
	type plain Report
	p := plain(r)
	if p.FlaggedKeywords == nil {
		p.FlaggedKeywords = []Keyword{}
	}
	return json.Marshal(p)
}
