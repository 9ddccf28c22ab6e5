package normalize

import "strings"

var contractions = map[string]string{
	"won't":   "will not",
	"can't":   "cannot",
	"shan't":  "shall not",
	"ain't":   "is not",
	"let's":   "let us",
	"it's":    "it is",
	"he's":    "he is",
	"she's":   "she is",
	"that's":  "that is",
	"there's": "there is",
	"here's":  "here is",
	"what's":  "what is",
	"who's":   "who is",
	"where's": "where is",
	"how's":   "how is",
	"y'all":   "you all",
	"ma'am":   "madam",
	"o'clock": "of the clock",
}

var suffixes = []struct{ from, to string }{
	{"n't", " not"},
	{"'re", " are"},
	{"'ve", " have"},
	{"'ll", " will"},
	{"'d", " would"},
	{"'m", " am"},
}

// expandContraction expands a single apostrophe word. Unknown forms are returned unchanged;
// possessive 's is left for punctuation stripping.
func expandContraction(w string) string {
	if full, ok := contractions[w]; ok {
		return full
	}
	for _, s := range suffixes {
		if strings.HasSuffix(w, s.from) && len(w) > len(s.from) {
			return w[:len(w)-len(s.from)] + s.to
		}
	}
	return w
}
