// Package lexicon holds the fixed word lists shared by the structural features and the heuristic analyzer.
//
// The lists are hand-tuned constants. Order matters where a slice is used: flagged keywords are
// reported in declaration order.
package lexicon

// Sensational is the vocabulary counted by the structural feature extractor.
var Sensational = newSet(
	"shocking", "exposed", "breaking", "urgent", "secret", "banned",
	"hidden", "truth", "hoax", "conspiracy", "mainstream", "media",
	"illegal", "arrested", "maga", "riot", "mob",
)

// Angry terms drive the Aggressive tone.
var Angry = []string{
	"outrage", "furious", "betrayal", "disgusting", "shame", "illegal", "crime",
}

// Fear terms drive the Alarmist tone.
var Fear = []string{
	"panic", "crisis", "collapse", "danger", "threat", "deadly", "catastrophe",
}

// ClickbaitTriggers are strong clickbait words and phrases.
var ClickbaitTriggers = []string{
	"shocking", "unbelievable", "exposed", "miracle", "secret", "banned",
	"mind-blowing", "life-changing", "hidden", "mystery", "confession",
	"hate", "won't believe", "proven", "genius", "destroy",
}

// Positive words for the sentiment score.
var Positive = newSet(
	"good", "great", "excellent", "positive", "success", "successful", "win", "wins", "won",
	"benefit", "benefits", "improve", "improved", "improvement", "growth", "gain", "gains",
	"happy", "hope", "hopeful", "safe", "secure", "support", "supported", "strong", "strengthen",
	"progress", "agree", "agreement", "peace", "peaceful", "celebrate", "praise", "praised",
	"recover", "recovery", "boost", "better", "best", "love", "wonderful", "amazing", "fantastic",
	"honest", "trust", "trusted", "helpful", "healthy", "thrive", "achieve", "achievement",
)

// Negative words for the sentiment score.
var Negative = newSet(
	"bad", "terrible", "awful", "horrible", "negative", "fail", "failed", "failure", "loss", "losses",
	"lose", "lost", "crisis", "collapse", "danger", "dangerous", "threat", "deadly", "death", "dead",
	"kill", "killed", "attack", "attacked", "war", "fear", "panic", "scandal", "fraud", "corrupt",
	"corruption", "lie", "lies", "liar", "fake", "hoax", "outrage", "furious", "disgusting", "shame",
	"betrayal", "crime", "criminal", "illegal", "riot", "violence", "violent", "destroy", "destroyed",
	"hate", "angry", "worst", "worse", "shocking", "catastrophe", "disaster", "toxic", "evil",
)

// SubjectivityMarkers are opinion, hedging and intensifier words.
var SubjectivityMarkers = newSet(
	"i", "we", "my", "our", "believe", "think", "feel", "felt", "opinion", "seems", "seem",
	"apparently", "clearly", "obviously", "surely", "certainly", "definitely", "absolutely",
	"totally", "completely", "extremely", "incredibly", "really", "very", "so", "truly",
	"must", "should", "never", "always", "everyone", "nobody", "amazing", "terrible", "awful",
	"horrible", "wonderful", "fantastic", "unbelievable", "shocking", "outrageous", "ridiculous",
	"disgusting", "beautiful", "ugly", "stupid", "insane", "crazy", "best", "worst", "love", "hate",
	"perhaps", "maybe", "probably", "likely", "arguably", "honestly", "frankly", "sadly", "luckily",
)

// TopicOrder is the detection priority of topics.
var TopicOrder = []string{"Politics", "Health", "Tech", "Finance", "Entertainment"}

// TopicKeywords maps each topic to its keyword set.
var TopicKeywords = map[string][]string{
	"Politics":      {"government", "president", "senate", "law", "election", "democrat", "republican", "vote"},
	"Health":        {"virus", "doctor", "hospital", "cancer", "diet", "medicine", "health", "study"},
	"Tech":          {"apple", "google", "ai", "internet", "software", "device", "phone", "tech"},
	"Finance":       {"stock", "market", "money", "economy", "inflation", "bank", "invest"},
	"Entertainment": {"movie", "star", "celebrity", "film", "music", "concert", "fame"},
}

// Set is an immutable word set.
type Set map[string]struct{}

// Has reports whether w is in the set.
func (s Set) Has(w string) bool {
	_, ok := s[w]
	return ok
}

func newSet(words ...string) Set {
	s := make(Set, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}
