package explain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/verity/internal/domain"
	"github.com/kailas-cloud/verity/internal/domain/report"
)

const (
	noAnalysis     = "There is no linguistic analysis for this text, so the verdict rests on the classifier alone."
	checksAnswer   = "1. Verify the source domain. 2. Cross-check quotes with other major outlets. 3. Reverse image search any photos. 4. Check the author's other recent work."
	examplesAnswer = "Common similar patterns include: 'You won't believe what happened next', 'The secret doctors don't want you to know', or politically charged rants without sources."
	notFlagged     = "It wasn't flagged as fake, but we still detected some bias. However, it generally follows standard reporting patterns."
	unknownAnswer  = "I'm not sure about that specific detail, but the analysis fields above break the verdict down further."
)

// Summary is the one-line verdict in plain words.
func Summary(p domain.Prediction) string {
	reliability := "reliable"
	if p.Label == domain.LabelFake {
		reliability = "unreliable"
	}
	return fmt.Sprintf("I've analyzed this text. It appears to be roughly %.0f%% %s.",
		p.ConfidencePercent(), reliability)
}

// Describe renders the report in the requested register.
func Describe(mode domain.ExplainMode, r report.Report) string {
	if r.IsEmpty() {
		return noAnalysis
	}
	if mode == domain.ExplainProfessional {
		return professional(r)
	}
	return simple(r)
}

func simple(r report.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Basically, this article is written at a %s level. ", r.ReadingLevel)
	if r.ClickbaitScore > 50 {
		b.WriteString("It tries to grab your attention with flashy headlines. ")
	}
	switch r.Tone {
	case report.ToneAggressive:
		b.WriteString("The author seems pretty angry or aggressive. ")
	case report.ToneAlarmist:
		b.WriteString("It leans on fear and alarm. ")
	}
	fmt.Fprintf(&b, "Overall, it's mostly %s.", strings.ToLower(string(r.Sentiment)))
	return b.String()
}

func professional(r report.Report) string {
	return fmt.Sprintf(
		"Analysis indicates a Flesch reading ease score of %s, categorizing the text as %s. "+
			"Linguistic markers suggest a %s stance with %s polarity. "+
			"The clickbait index is %d/100, driven by %s tonal patterns.",
		strconv.FormatFloat(r.ReadingScore, 'f', -1, 64), r.ReadingLevel,
		r.Objectivity, r.Sentiment,
		r.ClickbaitScore, r.Tone,
	)
}

// Answer returns the canned answer to q.
func Answer(q domain.Question, p domain.Prediction) string {
	switch q {
	case domain.QuestionNone:
		return ""
	case domain.QuestionWhyFlagged:
		if p.Label != domain.LabelFake {
			return notFlagged
		}
		return whyFlagged(p.Analysis)
	case domain.QuestionChecks:
		return checksAnswer
	case domain.QuestionExamples:
		return examplesAnswer
	default:
		return unknownAnswer
	}
}

func whyFlagged(r report.Report) string {
	tone := r.Tone
	if tone == "" {
		tone = report.ToneNeutral
	}
	s := fmt.Sprintf("It was flagged because it matches patterns found in misinformation: "+
		"extensive use of emotional language (%s), low objectivity, and high clickbait potential.", tone)
	if len(r.FlaggedKeywords) == 0 {
		return s
	}
	terms := make([]string, len(r.FlaggedKeywords))
	for i, k := range r.FlaggedKeywords {
		terms[i] = k.Term
	}
	return s + " Flagged terms: " + strings.Join(terms, ", ") + "."
}
