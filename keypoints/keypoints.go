// CLAUDE:SUMMARY Key point extraction — author bullet lists when present, keyword/length/numeric scoring otherwise.
// Package keypoints extracts a ranked list of key points from a document.
//
// Extraction is two-phase. If the author already structured the document
// with bullet or numbered lists, those lines are returned verbatim (minus
// their markers) in document order: author intent beats inference. Only
// when no such structure exists does the statistical phase score sentences
// by domain keywords, length, numeric content and proper-noun density, and
// return the top N in score order — key points are a ranked list, unlike a
// summary.
package keypoints

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/hazyhaar/docproc/textclean"
)

// Source identifies which phase produced the points.
type Source string

const (
	SourceStructural  Source = "structural"
	SourceStatistical Source = "statistical"
)

// Options configures extraction.
type Options struct {
	// MinStructured is the minimum number of marker lines required to take
	// the structural path. Default: 3.
	MinStructured int
	// TopN caps the statistical point count. Default: 8.
	TopN int
	// MinSentenceLen excludes fragments from statistical scoring.
	// Default: 20.
	MinSentenceLen int
	// Keywords maps category name to terms. Nil uses the built-in legal,
	// business, technical and importance dictionaries.
	Keywords map[string][]string
}

func (o *Options) defaults() {
	if o.MinStructured <= 0 {
		o.MinStructured = 3
	}
	if o.TopN <= 0 {
		o.TopN = 8
	}
	if o.MinSentenceLen <= 0 {
		o.MinSentenceLen = 20
	}
	if o.Keywords == nil {
		o.Keywords = defaultKeywords
	}
}

// Result holds the extracted points.
type Result struct {
	Points []string `json:"points"`
	Source Source   `json:"source"`
}

// defaultKeywords are the built-in domain-importance dictionaries.
// Read-only after init; callers override via Options.Keywords.
var defaultKeywords = map[string][]string{
	"legal": {
		"agreement", "contract", "party", "parties", "clause", "liability",
		"obligation", "terminate", "termination", "warranty", "indemnify",
		"arbitration", "jurisdiction", "governing", "breach", "notice",
	},
	"business": {
		"payment", "invoice", "deadline", "delivery", "revenue", "cost",
		"budget", "price", "fee", "amount", "penalty", "discount", "interest",
	},
	"technical": {
		"system", "process", "specification", "requirement", "interface",
		"data", "security", "performance", "maintenance", "software",
	},
	"importance": {
		"must", "shall", "required", "critical", "important", "essential",
		"mandatory", "key", "significant", "deadline", "immediately",
	},
}

var bulletMarkerRe = regexp.MustCompile(`^\s*(?:[•●‣◦▪*]|-{1,2}|\d{1,3}[.)]|[a-zA-Z][.)])\s+`)

// Extract returns the document's key points.
func Extract(text string, opts Options) (*Result, error) {
	opts.defaults()

	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("keypoints: empty input")
	}

	if points := structuralPoints(text); len(points) >= opts.MinStructured {
		return &Result{Points: points, Source: SourceStructural}, nil
	}
	return &Result{
		Points: statisticalPoints(text, opts),
		Source: SourceStatistical,
	}, nil
}

// structuralPoints collects lines carrying explicit list markers, stripped
// of those markers, in document order.
func structuralPoints(text string) []string {
	var points []string
	for _, line := range strings.Split(text, "\n") {
		if bulletMarkerRe.MatchString(line) {
			point := strings.TrimSpace(bulletMarkerRe.ReplaceAllString(line, ""))
			if point != "" {
				points = append(points, point)
			}
		}
	}
	return points
}

type scoredPoint struct {
	text  string
	score float64
}

func statisticalPoints(text string, opts Options) []string {
	var sentences []string
	for _, s := range textclean.Sentences(text) {
		if len([]rune(s)) >= opts.MinSentenceLen {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) == 0 {
		return nil
	}

	freq := make(map[string]int)
	for _, tok := range textclean.Tokens(text) {
		if len(tok) > 3 && !textclean.IsStopword(tok) {
			freq[tok]++
		}
	}

	scored := make([]scoredPoint, 0, len(sentences))
	for _, s := range sentences {
		scored = append(scored, scoredPoint{text: s, score: scoreSentence(s, freq, opts)})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].score > scored[b].score
	})
	if len(scored) > opts.TopN {
		scored = scored[:opts.TopN]
	}

	// Score order is the output order, by design.
	points := make([]string, len(scored))
	for i, sp := range scored {
		points[i] = sp.text
	}
	return points
}

func scoreSentence(s string, freq map[string]int, opts Options) float64 {
	lower := strings.ToLower(s)
	score := 0.0

	// Domain keyword hits, weighted per category occurrence.
	for _, terms := range opts.Keywords {
		for _, term := range terms {
			if strings.Contains(lower, term) {
				score += 2.0
			}
		}
	}

	// Sentences in the readable band carry more complete statements.
	if n := len(s); n >= 40 && n <= 250 {
		score += 1.5
	}

	if containsDigit(s) {
		score += 2.0
	}

	score += 0.5 * float64(capitalizedTokens(s))

	// Terms repeated elsewhere in the document signal central topics.
	for _, tok := range textclean.Tokens(s) {
		if len(tok) > 3 && !textclean.IsStopword(tok) && freq[tok] > 1 {
			score += 0.3 * float64(freq[tok]-1)
		}
	}

	return score
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// capitalizedTokens counts words starting with an uppercase letter,
// excluding the sentence-initial word.
func capitalizedTokens(s string) int {
	fields := strings.Fields(s)
	n := 0
	for i, f := range fields {
		if i == 0 {
			continue
		}
		r := []rune(f)[0]
		if unicode.IsUpper(r) {
			n++
		}
	}
	return n
}
