// CLAUDE:SUMMARY Translation orchestrator — sentence chunking, ordered provider chain, per-chunk fallback, rate pacing.
// Package translate drives an ordered chain of translation providers over
// bounded text chunks.
//
// Translation is best-effort per chunk, not atomic per document: a chunk
// whose every provider fails keeps its original text and the failure is
// reported as a warning, never as an error. The only error Translate
// returns is for empty input.
package translate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/time/rate"

	"github.com/hazyhaar/docproc/langdetect"
)

// Config configures a Translator.
type Config struct {
	// Providers is the ordered fallback chain. Default: MyMemory, then
	// LibreTranslate when LibreTranslateURL is set, then the local Glossary.
	Providers []Provider

	// LibreTranslateURL enables the LibreTranslate provider in the default
	// chain.
	LibreTranslateURL string

	// MaxChunkChars is the per-chunk character budget. Default: 500.
	MaxChunkChars int

	// RatePerSec paces successive provider calls. Default: 2.
	RatePerSec float64

	// DefaultSource is assumed when detection fails. Default: "en".
	DefaultSource string

	// Logger for chunk-level fallback events.
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if len(c.Providers) == 0 {
		c.Providers = append(c.Providers, NewMyMemory())
		if c.LibreTranslateURL != "" {
			c.Providers = append(c.Providers, NewLibreTranslate(c.LibreTranslateURL))
		}
		c.Providers = append(c.Providers, NewGlossary())
	}
	if c.MaxChunkChars <= 0 {
		c.MaxChunkChars = 500
	}
	if c.RatePerSec <= 0 {
		c.RatePerSec = 2
	}
	if c.DefaultSource == "" {
		c.DefaultSource = "en"
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Result is the outcome of one translation request.
type Result struct {
	TargetLanguage  string   `json:"target_language"`
	Text            string   `json:"text"`
	ProviderUsed    string   `json:"provider_used"` // provider serving the most chunks
	AlreadyInTarget bool     `json:"already_in_target"`
	Warnings        []string `json:"warnings,omitempty"`
}

// Translator drives the provider chain.
type Translator struct {
	cfg     Config
	limiter *rate.Limiter
	logger  *slog.Logger
}

// New creates a Translator.
func New(cfg Config) *Translator {
	cfg.defaults()
	return &Translator{
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1),
		logger:  cfg.Logger,
	}
}

// Translate converts text into the target language, given by ISO 639-1 code
// or English name ("es" or "Spanish").
func (t *Translator) Translate(ctx context.Context, text, targetLang string) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("translate: empty input")
	}

	target := LanguageCode(targetLang)
	if target == "" {
		return nil, fmt.Errorf("translate: unknown target language %q", targetLang)
	}

	source := t.cfg.DefaultSource
	if info := langdetect.Detect(text); info.Code != "" {
		source = info.Code
	}

	if source == target {
		return &Result{
			TargetLanguage:  target,
			Text:            text,
			AlreadyInTarget: true,
		}, nil
	}

	chunks := splitChunks(text, t.cfg.MaxChunkChars)

	res := &Result{TargetLanguage: target}
	outputs := make([]string, len(chunks))
	providerHits := make(map[string]int)

	for _, chunk := range chunks {
		out, provider := t.translateChunk(ctx, chunk, source, target)
		outputs[chunk.Index] = out
		if provider == "" {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("chunk %d left untranslated: all providers failed", chunk.Index+1))
			continue
		}
		providerHits[provider]++
	}

	res.Text = strings.Join(outputs, " ")
	res.ProviderUsed = t.dominantProvider(providerHits)
	return res, nil
}

// translateChunk walks the chain for one chunk. It returns the translated
// text and the serving provider name, or the original text and "" when the
// whole chain failed.
func (t *Translator) translateChunk(ctx context.Context, chunk Chunk, source, target string) (string, string) {
	for _, p := range t.cfg.Providers {
		if err := t.limiter.Wait(ctx); err != nil {
			return chunk.Text, ""
		}

		out, err := p.Translate(ctx, chunk.Text, source, target)
		if err != nil {
			t.logger.DebugContext(ctx, "translation provider failed, falling through",
				"provider", p.Name(),
				"chunk", chunk.Index,
				"error", err)
			if ctx.Err() != nil {
				// The caller gave up; don't burn the rest of the chain.
				return chunk.Text, ""
			}
			continue
		}
		out = strings.TrimSpace(out)
		if out == "" || strings.EqualFold(out, chunk.Text) {
			// An echo of the input for a cross-language request is not a
			// translation.
			continue
		}
		return out, p.Name()
	}
	return chunk.Text, ""
}

// dominantProvider picks the provider serving the most chunks. Ties go to
// the provider earliest in the chain, so the result does not depend on map
// iteration order.
func (t *Translator) dominantProvider(hits map[string]int) string {
	best, bestN := "", 0
	for _, p := range t.cfg.Providers {
		if n := hits[p.Name()]; n > bestN {
			best, bestN = p.Name(), n
		}
	}
	return best
}

// languageNames maps English language names to ISO 639-1 codes.
// Read-only at runtime.
var languageNames = map[string]string{
	"english": "en", "spanish": "es", "french": "fr", "german": "de",
	"italian": "it", "portuguese": "pt", "dutch": "nl", "russian": "ru",
	"chinese": "zh", "japanese": "ja", "korean": "ko", "arabic": "ar",
	"hindi": "hi", "bengali": "bn", "tamil": "ta", "telugu": "te",
	"marathi": "mr", "gujarati": "gu", "urdu": "ur", "turkish": "tr",
	"polish": "pl", "ukrainian": "uk", "swedish": "sv", "greek": "el",
}

// LanguageCode normalizes a language name or code to ISO 639-1. Unknown
// inputs return "".
func LanguageCode(lang string) string {
	l := strings.ToLower(strings.TrimSpace(lang))
	if l == "" {
		return ""
	}
	if code, ok := languageNames[l]; ok {
		return code
	}
	if len(l) == 2 && l[0] >= 'a' && l[0] <= 'z' && l[1] >= 'a' && l[1] <= 'z' {
		return l
	}
	return ""
}
