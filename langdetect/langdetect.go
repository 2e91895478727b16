// CLAUDE:SUMMARY Shared language detection over extracted text — whatlanggo with a first-100-words window.
// Package langdetect identifies the dominant language of extracted text.
//
// Detection runs on a bounded prefix of the input (the first 100 words) so
// that very large documents do not slow the pipeline down, and it refuses to
// guess on fragments too short to carry a signal.
package langdetect

import (
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
)

// minSignificantChars is the minimum number of non-space characters required
// before detection is attempted. Shorter fragments return an empty Info.
const minSignificantChars = 10

// detectionWindowWords bounds how much of the text is fed to the detector.
const detectionWindowWords = 100

// Info describes a detection outcome.
type Info struct {
	// Code is the ISO 639-1 code ("en", "hi", ...). Empty when undetermined.
	Code string
	// Name is the English language name ("English", "Hindi", ...).
	Name string
	// Confidence is the detector's confidence in [0,1].
	Confidence float64
}

// Detect returns the dominant language of text, or a zero Info when the text
// is too short or the detector cannot decide. A detection the detector
// itself marks unreliable is treated as undecided: short Latin-script
// fragments otherwise come back labelled with whatever language happened to
// score first at near-zero confidence.
func Detect(text string) Info {
	trimmed := strings.TrimSpace(text)
	if significantChars(trimmed) < minSignificantChars {
		return Info{}
	}

	words := strings.Fields(trimmed)
	if len(words) > detectionWindowWords {
		words = words[:detectionWindowWords]
	}
	window := strings.Join(words, " ")

	info := whatlanggo.Detect(window)
	code := info.Lang.Iso6391()
	if code == "" || !info.IsReliable() {
		return Info{}
	}
	return Info{
		Code:       code,
		Name:       info.Lang.String(),
		Confidence: info.Confidence,
	}
}

// NonLatin reports whether text is dominated by a non-Latin script. OCR uses
// this to decide when a language-specific recognition pass is warranted.
func NonLatin(text string) bool {
	var latin, other int
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		if unicode.Is(unicode.Latin, r) {
			latin++
		} else {
			other++
		}
	}
	return other > latin
}

func significantChars(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}
