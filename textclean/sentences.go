package textclean

import (
	"strings"
	"unicode"
)

// Sentences splits text into sentences on terminal punctuation (. ! ?)
// followed by whitespace or end of text. The terminator stays attached to
// its sentence. Abbreviation handling is deliberately minimal: a period
// followed by a lowercase letter does not end a sentence.
func Sentences(text string) []string {
	var out []string
	var sb strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		sb.WriteRune(r)

		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// Consume trailing terminators ("?!", "...").
		for i+1 < len(runes) && (runes[i+1] == '.' || runes[i+1] == '!' || runes[i+1] == '?') {
			i++
			sb.WriteRune(runes[i])
		}
		// Sentence ends only when followed by whitespace or end of text.
		if i+1 < len(runes) && !unicode.IsSpace(runes[i+1]) {
			continue
		}
		// Peek past whitespace: lowercase continuation means an abbreviation.
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j < len(runes) && unicode.IsLower(runes[j]) && r == '.' {
			continue
		}

		s := strings.TrimSpace(sb.String())
		if s != "" {
			out = append(out, s)
		}
		sb.Reset()
	}

	if s := strings.TrimSpace(sb.String()); s != "" {
		out = append(out, s)
	}
	return out
}

// Tokens lowercases text and splits it into word tokens, dropping
// punctuation. Numbers are kept.
func Tokens(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// stopwords is the shared English stopword set used by the scoring
// components. Read-only after init.
var stopwords = map[string]bool{}

func init() {
	for _, w := range strings.Fields(`
		a an and are as at be been by for from has have he her his i in is it
		its may not of on or she shall that the their there these they this to
		was we were which will with you your would could should do does did
		but if then than so such only also into upon any all each other more
		no nor out over under after before between both during about above
		below further once here when where why how again against am what who
		whom can just very s t don now`) {
		stopwords[w] = true
	}
}

// IsStopword reports whether the lowercase token is an English stopword.
func IsStopword(token string) bool {
	return stopwords[token]
}
