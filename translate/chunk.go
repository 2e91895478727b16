package translate

import (
	"strings"

	"github.com/hazyhaar/docproc/textclean"
)

// Chunk is one bounded piece of text submitted to a provider.
type Chunk struct {
	Index int
	Text  string
}

// splitChunks packs sentences greedily into chunks of at most maxChars
// characters without splitting a sentence across chunks. A single sentence
// longer than the budget is split on word boundaries so the budget holds
// for every chunk.
func splitChunks(text string, maxChars int) []Chunk {
	var chunks []Chunk
	var current strings.Builder

	flush := func() {
		t := strings.TrimSpace(current.String())
		if t != "" {
			chunks = append(chunks, Chunk{Index: len(chunks), Text: t})
		}
		current.Reset()
	}

	for _, sentence := range textclean.Sentences(text) {
		if len([]rune(sentence)) > maxChars {
			flush()
			for _, piece := range splitLongSentence(sentence, maxChars) {
				chunks = append(chunks, Chunk{Index: len(chunks), Text: piece})
			}
			continue
		}

		joined := len([]rune(current.String())) + len([]rune(sentence))
		if current.Len() > 0 {
			joined++ // separating space
		}
		if joined > maxChars {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(sentence)
	}
	flush()

	return chunks
}

// splitLongSentence breaks an oversized sentence on word boundaries. Words
// longer than the budget are hard-split.
func splitLongSentence(sentence string, maxChars int) []string {
	var pieces []string
	var current strings.Builder

	flush := func() {
		t := strings.TrimSpace(current.String())
		if t != "" {
			pieces = append(pieces, t)
		}
		current.Reset()
	}

	for _, word := range strings.Fields(sentence) {
		runes := []rune(word)
		for len(runes) > maxChars {
			flush()
			pieces = append(pieces, string(runes[:maxChars]))
			runes = runes[maxChars:]
		}
		word = string(runes)

		joined := len([]rune(current.String())) + len(runes)
		if current.Len() > 0 {
			joined++
		}
		if joined > maxChars {
			flush()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}
	flush()

	return pieces
}
