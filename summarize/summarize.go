// CLAUDE:SUMMARY Extractive summarizer — frequency and position scored sentence selection in document order.
// Package summarize produces extractive summaries.
//
// The summarizer never generates text. It scores the document's own
// sentences by term frequency, position and length, selects the top K,
// and re-orders the selection back into document order so the summary
// reads as a narrative rather than a ranking.
package summarize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hazyhaar/docproc/textclean"
)

// Options configures the summarizer.
type Options struct {
	// MinSentenceLen excludes fragments shorter than this many characters.
	// Default: 25.
	MinSentenceLen int
	// MinSentences is the sentence count below which the truncation
	// fallback is used instead of scoring. Default: 3.
	MinSentences int
	// TopK is how many sentences the summary keeps. Default: 4.
	TopK int
	// IdealLenLow / IdealLenHigh bound the character band that earns the
	// length bonus. Defaults: 60 and 200.
	IdealLenLow  int
	IdealLenHigh int
	// MaxFallbackChars caps the truncation fallback. Default: 300.
	MaxFallbackChars int
}

func (o *Options) defaults() {
	if o.MinSentenceLen <= 0 {
		o.MinSentenceLen = 25
	}
	if o.MinSentences <= 0 {
		o.MinSentences = 3
	}
	if o.TopK <= 0 {
		o.TopK = 4
	}
	if o.IdealLenLow <= 0 {
		o.IdealLenLow = 60
	}
	if o.IdealLenHigh <= 0 {
		o.IdealLenHigh = 200
	}
	if o.MaxFallbackChars <= 0 {
		o.MaxFallbackChars = 300
	}
}

// Summary is the result of summarizing one document.
type Summary struct {
	Text             string  `json:"text"`
	SentenceCount    int     `json:"sentence_count"`
	WordCount        int     `json:"word_count"`
	CharCount        int     `json:"char_count"`
	CompressionRatio float64 `json:"compression_ratio"` // summary chars / source chars
	Truncated        bool    `json:"truncated"`         // true when the fallback path was used
}

type scoredSentence struct {
	index int
	text  string
	score float64
}

// Summarize produces an extractive summary of text.
func Summarize(text string, opts Options) (*Summary, error) {
	opts.defaults()

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("summarize: empty input")
	}

	sentences := eligibleSentences(text, opts.MinSentenceLen)
	if len(sentences) < opts.MinSentences {
		return truncationFallback(text, opts), nil
	}

	freq := termFrequencies(text)

	scored := make([]scoredSentence, 0, len(sentences))
	total := len(sentences)
	for i, s := range sentences {
		score := 0.0
		for _, tok := range textclean.Tokens(s) {
			if len(tok) > 2 && !textclean.IsStopword(tok) {
				score += freq[tok]
			}
		}
		// Earlier sentences carry more of the document's framing.
		score += 2.0 * float64(total-i) / float64(total)
		if n := len(s); n >= opts.IdealLenLow && n <= opts.IdealLenHigh {
			score += 1.0
		}
		scored = append(scored, scoredSentence{index: i, text: s, score: score})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})
	top := scored
	if len(top) > opts.TopK {
		top = top[:opts.TopK]
	}

	// Restore document order so the summary reads as a narrative.
	sort.Slice(top, func(a, b int) bool { return top[a].index < top[b].index })

	parts := make([]string, len(top))
	for i, s := range top {
		parts[i] = s.text
	}
	summaryText := strings.Join(parts, " ")

	return &Summary{
		Text:             summaryText,
		SentenceCount:    len(top),
		WordCount:        len(strings.Fields(summaryText)),
		CharCount:        len([]rune(summaryText)),
		CompressionRatio: compression(summaryText, text),
	}, nil
}

func eligibleSentences(text string, minLen int) []string {
	var out []string
	for _, s := range textclean.Sentences(text) {
		if len([]rune(s)) >= minLen {
			out = append(out, s)
		}
	}
	return out
}

// termFrequencies counts non-stopword tokens longer than two characters.
func termFrequencies(text string) map[string]float64 {
	freq := make(map[string]float64)
	for _, tok := range textclean.Tokens(text) {
		if len(tok) > 2 && !textclean.IsStopword(tok) {
			freq[tok]++
		}
	}
	return freq
}

func truncationFallback(text string, opts Options) *Summary {
	trimmed := strings.TrimSpace(text)
	runes := []rune(trimmed)
	out := trimmed
	if len(runes) > opts.MaxFallbackChars {
		cut := string(runes[:opts.MaxFallbackChars])
		// Back off to the last word boundary.
		if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
			cut = cut[:idx]
		}
		out = cut + "..."
	}
	return &Summary{
		Text:             out,
		SentenceCount:    len(textclean.Sentences(out)),
		WordCount:        len(strings.Fields(out)),
		CharCount:        len([]rune(out)),
		CompressionRatio: compression(out, text),
		Truncated:        true,
	}
}

func compression(summary, source string) float64 {
	src := len([]rune(strings.TrimSpace(source)))
	if src == 0 {
		return 0
	}
	return float64(len([]rune(summary))) / float64(src)
}
