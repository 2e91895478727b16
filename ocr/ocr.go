// CLAUDE:SUMMARY OCR orchestrator — multi-engine recognition with language retry and page-level parallelism.
// Package ocr recovers text from images and scanned documents.
//
// Recognition runs through pluggable engines. When more than one engine is
// configured every engine gets a shot and the attempt that recovered the
// most characters wins, ties going to the engine listed first. A baseline
// pass uses the default language; if it comes back nearly empty or the
// recovered script is not latin, the pass is repeated with the caller's
// language hint, or with the language detected in the baseline text when
// the caller gave none.
package ocr

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hazyhaar/docproc/langdetect"
)

// ErrNoTextRecovered is returned when every engine came back empty for
// every page.
var ErrNoTextRecovered = errors.New("no text recovered")

// Attempt is the outcome of one engine pass over one image.
type Attempt struct {
	EngineID     string   `json:"engine_id"`
	LanguageHint string   `json:"language_hint"`
	Text         string   `json:"text"`
	Confidence   *float64 `json:"confidence,omitempty"`
}

// Engine recognizes text in a single image. lang is an ISO 639-1 code;
// engines translate it to their own language naming.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, img []byte, lang string) (Attempt, error)
}

// Config configures the orchestrator.
type Config struct {
	// Engines in priority order. At least one is required.
	Engines []Engine

	// DefaultLang is the baseline recognition language (default: "en").
	DefaultLang string

	// MinTextLen is the minimum recovered character count below which the
	// baseline pass is considered a miss and retried with the language
	// hint (default: 10).
	MinTextLen int

	// Parallelism bounds concurrent page recognition (default: 2).
	Parallelism int

	// Logger for per-engine debug output.
	Logger *slog.Logger
}

func (c *Config) defaults() {
	if c.DefaultLang == "" {
		c.DefaultLang = "en"
	}
	if c.MinTextLen <= 0 {
		c.MinTextLen = 10
	}
	if c.Parallelism <= 0 {
		c.Parallelism = 2
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Orchestrator drives one or more engines over images and paged documents.
type Orchestrator struct {
	cfg    Config
	logger *slog.Logger
}

// New creates an Orchestrator with the given configuration.
func New(cfg Config) *Orchestrator {
	cfg.defaults()
	return &Orchestrator{cfg: cfg, logger: cfg.Logger}
}

// Run recognizes text in a single image. langHint is an optional ISO 639-1
// code used for the retry pass; pass "" when the language is unknown.
func (o *Orchestrator) Run(ctx context.Context, img []byte, langHint string) (string, error) {
	if len(o.cfg.Engines) == 0 {
		return "", fmt.Errorf("ocr: no engines configured")
	}

	img = Preprocess(img)

	best := o.recognizeAll(ctx, img, o.cfg.DefaultLang)
	if o.needsRetry(best.Text) {
		hint := langHint
		if hint == "" {
			// No caller hint: the baseline pass itself tells us which
			// language to retry with.
			hint = langdetect.Detect(best.Text).Code
		}
		if hint != "" && hint != o.cfg.DefaultLang {
			o.logger.DebugContext(ctx, "baseline ocr pass weak, retrying with hint",
				"chars", len([]rune(best.Text)), "hint", hint)
			retry := o.recognizeAll(ctx, img, hint)
			if len([]rune(retry.Text)) > len([]rune(best.Text)) {
				best = retry
			}
		}
	}

	text := strings.TrimSpace(best.Text)
	if text == "" {
		return "", ErrNoTextRecovered
	}
	return text, nil
}

// RunPages recognizes every page independently and joins the results in
// page order under "--- Page N ---" markers. A failed page yields no block;
// only when every page is empty does RunPages fail.
func (o *Orchestrator) RunPages(ctx context.Context, pages [][]byte, langHint string) (string, error) {
	if len(pages) == 0 {
		return "", ErrNoTextRecovered
	}

	texts := make([]string, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.cfg.Parallelism)

	for i, page := range pages {
		g.Go(func() error {
			text, err := o.Run(gctx, page, langHint)
			if err != nil {
				if !errors.Is(err, ErrNoTextRecovered) {
					return err
				}
				return nil
			}
			texts[i] = text
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	out := joinPages(texts)
	if out == "" {
		return "", ErrNoTextRecovered
	}
	return out, nil
}

// recognizeAll runs every engine for one language and keeps the attempt
// that recovered the most characters. Engine failures are logged and score
// as empty attempts.
func (o *Orchestrator) recognizeAll(ctx context.Context, img []byte, lang string) Attempt {
	best := Attempt{LanguageHint: lang}
	for _, eng := range o.cfg.Engines {
		att, err := eng.Recognize(ctx, img, lang)
		if err != nil {
			o.logger.DebugContext(ctx, "ocr engine failed",
				"engine", eng.Name(), "lang", lang, "error", err)
			continue
		}
		if len([]rune(att.Text)) > len([]rune(best.Text)) {
			best = att
		}
	}
	return best
}

func (o *Orchestrator) needsRetry(text string) bool {
	t := strings.TrimSpace(text)
	if len([]rune(t)) < o.cfg.MinTextLen {
		return true
	}
	return langdetect.NonLatin(t)
}

// joinPages assembles non-empty page texts under 1-based page markers.
func joinPages(texts []string) string {
	var sb strings.Builder
	for i, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		fmt.Fprintf(&sb, "--- Page %d ---\n%s", i+1, t)
	}
	return sb.String()
}
