package analyzer

import (
	"github.com/kljensen/snowball"

	"github.com/kailas-cloud/verity/internal/domain/report"
	"github.com/kailas-cloud/verity/internal/nlp/lexicon"
)

type topicStems struct {
	topic report.Topic
	stems map[string]struct{}
}

// stemTopics stems every topic keyword once, keeping lexicon priority order.
func stemTopics() []topicStems {
	out := make([]topicStems, 0, len(lexicon.TopicOrder))
	for _, name := range lexicon.TopicOrder {
		ts := topicStems{topic: report.Topic(name), stems: map[string]struct{}{}}
		for _, kw := range lexicon.TopicKeywords[name] {
			ts.stems[stem(kw)] = struct{}{}
		}
		out = append(out, ts)
	}
	return out
}

// stem returns the English snowball stem of w, or w itself if stemming fails.
func stem(w string) string {
	s, err := snowball.Stem(w, "english", true)
	if err != nil || s == "" {
		return w
	}
	return s
}

// topic returns the first topic, in priority order, sharing a stem with tokens.
func (a *Analyzer) topic(tokens []string) report.Topic {
	stems := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		stems[stem(t)] = struct{}{}
	}
	for _, ts := range a.topics {
		for s := range ts.stems {
			if _, ok := stems[s]; ok {
				return ts.topic
			}
		}
	}
	return report.General
}
