// CLAUDE:SUMMARY Deterministic OCR/extraction text normalizer — whitespace, merged tokens, punctuation spacing.
// Package textclean normalizes extracted and OCR-recovered text.
//
// Clean is a pure function: the same input always yields the same output and
// no rule consults anything outside the text itself. The rules target the
// typical damage done by OCR and naive extractors — merged tokens, broken
// words at line ends, erratic spacing around punctuation.
package textclean

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	// wordBreakRe matches a word fragment hyphenated across a line break.
	wordBreakRe = regexp.MustCompile(`(\pL)-\n[ \t]*(\pL)`)

	letterDigitRe = regexp.MustCompile(`(\pL)(\d)`)
	digitLetterRe = regexp.MustCompile(`(\d)(\pL)`)
	lowerUpperRe  = regexp.MustCompile(`(\p{Ll})(\p{Lu})`)

	sentenceJoinRe = regexp.MustCompile(`([.!?])(\p{Lu})`)

	ellipsisRe = regexp.MustCompile(`\.{3,}`)
	dashRunRe  = regexp.MustCompile(`-{2,}`)

	// commaSpaceRe captures the neighbors of a comma/semicolon/colon so
	// number and time tokens ("1,000", "12:30") can be left intact.
	commaSpaceRe = regexp.MustCompile(`(\S?)[ \t]*([,;:])[ \t]*(\S?)`)

	spaceRunRe   = regexp.MustCompile(`[ \t]+`)
	blankBlockRe = regexp.MustCompile(`\n{3,}`)
)

// Clean applies the normalization rule set in order and returns the result.
// An empty input returns an empty string.
func Clean(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	text = norm.NFC.String(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	// Rejoin words split across a line break before line structure is lost.
	text = wordBreakRe.ReplaceAllString(text, "$1$2")

	// Collapse whitespace runs, keeping paragraph breaks as double newlines.
	paragraphs := splitParagraphs(text)
	for i, p := range paragraphs {
		p = strings.ReplaceAll(p, "\n", " ")
		p = spaceRunRe.ReplaceAllString(p, " ")
		paragraphs[i] = cleanParagraph(strings.TrimSpace(p))
	}
	return strings.Join(paragraphs, "\n\n")
}

func cleanParagraph(p string) string {
	// OCR-merged token boundaries.
	p = letterDigitRe.ReplaceAllString(p, "$1 $2")
	p = digitLetterRe.ReplaceAllString(p, "$1 $2")
	p = lowerUpperRe.ReplaceAllString(p, "$1 $2")

	// Sentence boundary glued to the next sentence.
	p = sentenceJoinRe.ReplaceAllString(p, "$1 $2")

	// Repeated punctuation.
	p = ellipsisRe.ReplaceAllString(p, "...")
	p = dashRunRe.ReplaceAllString(p, "--")

	// One space after commas, semicolons and colons, none before. Glued
	// digit-punct-digit sequences are number or time tokens and stay.
	p = commaSpaceRe.ReplaceAllStringFunc(p, punctSpacing)

	p = spaceRunRe.ReplaceAllString(p, " ")
	return strings.TrimSpace(p)
}

// punctSpacing rewrites one commaSpaceRe match: no space before the
// punctuation, one space after. A digit-punct-digit sequence with no
// spacing is a number or time token and is returned untouched.
func punctSpacing(m string) string {
	sub := commaSpaceRe.FindStringSubmatch(m)
	before, punct, after := sub[1], sub[2], sub[3]
	if after == "" {
		return before + punct
	}
	if isASCIIDigit(before) && isASCIIDigit(after) && !strings.ContainsAny(m, " \t") {
		return m
	}
	return before + punct + " " + after
}

func isASCIIDigit(s string) bool {
	return len(s) == 1 && s[0] >= '0' && s[0] <= '9'
}

func splitParagraphs(text string) []string {
	text = blankBlockRe.ReplaceAllString(text, "\n\n")
	var out []string
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}
