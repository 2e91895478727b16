package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// tessLangs maps ISO 639-1 codes to Tesseract traineddata names.
var tessLangs = map[string]string{
	"en": "eng",
	"es": "spa",
	"fr": "fra",
	"de": "deu",
	"it": "ita",
	"pt": "por",
	"nl": "nld",
	"ru": "rus",
	"zh": "chi_sim",
	"ja": "jpn",
	"ko": "kor",
	"ar": "ara",
	"hi": "hin",
}

// Tesseract is an Engine backed by a local Tesseract install via gosseract.
// A fresh client is created per call; gosseract clients are not safe for
// concurrent use.
type Tesseract struct {
	clientFactory func() *gosseract.Client
}

// NewTesseract constructs a Tesseract engine.
func NewTesseract() *Tesseract {
	return &Tesseract{clientFactory: gosseract.NewClient}
}

func (t *Tesseract) Name() string { return "tesseract" }

// Recognize runs Tesseract over the image. Confidence is the mean of the
// word-level box confidences when Tesseract reports them.
func (t *Tesseract) Recognize(ctx context.Context, img []byte, lang string) (Attempt, error) {
	if err := ctx.Err(); err != nil {
		return Attempt{}, err
	}

	c := t.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(img); err != nil {
		return Attempt{}, fmt.Errorf("tesseract set image: %w", err)
	}
	if tl := tesseractLang(lang); tl != "" {
		if err := c.SetLanguage(tl); err != nil {
			return Attempt{}, fmt.Errorf("tesseract set language %q: %w", tl, err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return Attempt{}, fmt.Errorf("tesseract recognize: %w", err)
	}

	att := Attempt{
		EngineID:     t.Name(),
		LanguageHint: lang,
		Text:         strings.TrimSpace(text),
	}
	if conf, ok := wordConfidence(c); ok {
		att.Confidence = &conf
	}
	return att, nil
}

func wordConfidence(c *gosseract.Client) (float64, bool) {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return 0, false
	}
	var sum float64
	for _, b := range boxes {
		sum += b.Confidence / 100.0
	}
	return sum / float64(len(boxes)), true
}

func tesseractLang(lang string) string {
	if lang == "" {
		return ""
	}
	if tl, ok := tessLangs[strings.ToLower(lang)]; ok {
		return tl
	}
	// Assume the caller passed a traineddata name already.
	if len(lang) >= 3 {
		return lang
	}
	return ""
}
