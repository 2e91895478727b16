// CLAUDE:SUMMARY Native-PDF extraction scoring — decides when a payload is escalated to the OCR orchestrator.
package docpipe

import (
	"strings"
	"unicode"
)

// pdfQuality aggregates signals about how much usable text the native
// content-stream pass recovered from a PDF.
type pdfQuality struct {
	pages          int
	charsPerPage   float64
	printableRatio float64
	wordlikeRatio  float64
	hasImages      bool
}

// measurePDFText scores the native extraction output of a whole document.
func measurePDFText(text string, pages int, hasImages bool) pdfQuality {
	q := pdfQuality{
		pages:          pages,
		printableRatio: printableRatio(text),
		wordlikeRatio:  wordlikeRatio(text),
		hasImages:      hasImages,
	}
	if pages > 0 {
		q.charsPerPage = float64(len([]rune(text))) / float64(pages)
	}
	return q
}

// needsOCR reports whether the native pass looks like a scanned or garbled
// document: image streams with almost no text per page, text dominated by
// garbage runes, or image streams with character-soup tokens. Thresholds
// come from the pipeline configuration.
func (p *Pipeline) needsOCR(q pdfQuality) bool {
	if q.hasImages && q.charsPerPage < p.cfg.MinCharsPerPage {
		return true
	}
	if q.printableRatio < p.cfg.MinPrintableRatio {
		return true
	}
	return q.hasImages && q.wordlikeRatio < p.cfg.MinWordlikeRatio
}

// printableRatio is the share of printable runes in text. Private Use Area
// runes, the replacement character, and non-whitespace controls count as
// garbage; they are what CIDFont extraction without a ToUnicode map leaves
// behind.
func printableRatio(text string) float64 {
	if text == "" {
		return 1.0
	}
	total, printable := 0, 0
	for _, r := range text {
		total++
		if garbageRune(r) {
			continue
		}
		if unicode.IsPrint(r) || r == '\n' || r == '\r' || r == '\t' {
			printable++
		}
	}
	return float64(printable) / float64(total)
}

func garbageRune(r rune) bool {
	switch {
	case r >= 0xE000 && r <= 0xF8FF:
		return true
	case r == 0xFFFD:
		return true
	case r < 0x0020 && r != '\n' && r != '\r' && r != '\t':
		return true
	}
	return false
}

// wordlikeRatio is the share of whitespace-separated tokens between 2 and
// 15 runes long. Character-by-character extraction yields mostly 1-rune
// tokens and scores near zero.
func wordlikeRatio(text string) float64 {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0
	}
	wordlike := 0
	for _, f := range fields {
		if n := len([]rune(f)); n >= 2 && n <= 15 {
			wordlike++
		}
	}
	return float64(wordlike) / float64(len(fields))
}
