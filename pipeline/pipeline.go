// CLAUDE:SUMMARY Processing facade — wires extraction, OCR, translation, summarizing, key points, and comparison.
// Package pipeline assembles the document processing components behind one
// request-scoped facade. Every operation takes a context, holds no shared
// mutable state, and reports failures through a small error taxonomy.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hazyhaar/docproc/compare"
	"github.com/hazyhaar/docproc/docpipe"
	"github.com/hazyhaar/docproc/keypoints"
	"github.com/hazyhaar/docproc/ocr"
	"github.com/hazyhaar/docproc/summarize"
	"github.com/hazyhaar/docproc/textclean"
	"github.com/hazyhaar/docproc/translate"
)

// Pipeline is the processing facade.
type Pipeline struct {
	cfg    Config
	docs   *docpipe.Pipeline
	trans  *translate.Translator
	logger *slog.Logger
}

// ProcessResult is the outcome of processing one document.
type ProcessResult struct {
	Text     string          `json:"text"`
	Tables   []docpipe.Table `json:"tables,omitempty"`
	Language string          `json:"language,omitempty"`
	Pages    int             `json:"pages,omitempty"`
	Method   string          `json:"method"`
	Warnings []string        `json:"warnings,omitempty"`
}

// Envelope is the uniform response wrapper for the analysis operations.
type Envelope struct {
	Success  bool     `json:"success"`
	Payload  any      `json:"payload,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// New assembles a Pipeline from the configuration.
func New(cfg Config) (*Pipeline, error) {
	cfg.defaults()

	var orch *ocr.Orchestrator
	if cfg.OCR.Enabled {
		var engines []ocr.Engine
		if cfg.OCR.Tesseract == nil || *cfg.OCR.Tesseract {
			engines = append(engines, ocr.NewTesseract())
		}
		if cfg.OCR.RemoteEndpoint != "" {
			remote := ocr.NewRemote(cfg.OCR.RemoteEndpoint)
			remote.APIKey = cfg.OCR.RemoteAPIKey
			engines = append(engines, remote)
		}
		if len(engines) == 0 {
			return nil, fmt.Errorf("pipeline: ocr enabled but no engines selected")
		}
		orch = ocr.New(ocr.Config{
			Engines:     engines,
			Parallelism: cfg.OCR.Parallelism,
			Logger:      cfg.Logger,
		})
	}

	glossary := translate.NewGlossary()
	for _, path := range cfg.Translate.GlossaryFiles {
		if err := glossary.LoadFile(path); err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
	}
	providers := []translate.Provider{translate.NewMyMemory()}
	if cfg.Translate.LibreTranslateURL != "" {
		providers = append(providers, translate.NewLibreTranslate(cfg.Translate.LibreTranslateURL))
	}
	providers = append(providers, glossary)

	return &Pipeline{
		cfg: cfg,
		docs: docpipe.New(docpipe.Config{
			MaxFileSize: cfg.MaxInputSize,
			OCR:         orch,
			Logger:      cfg.Logger,
		}),
		trans: translate.New(translate.Config{
			Providers:     providers,
			MaxChunkChars: cfg.Translate.MaxChunkChars,
			RatePerSec:    cfg.Translate.RatePerSec,
			DefaultSource: cfg.Translate.DefaultSource,
			Logger:        cfg.Logger,
		}),
		logger: cfg.Logger,
	}, nil
}

// Process runs detection, extraction, optional OCR, and cleaning over one
// document payload.
func (p *Pipeline) Process(ctx context.Context, data []byte, filename string) (*ProcessResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("process %s: %w", filename, ErrEmptyInput)
	}
	if int64(len(data)) > p.cfg.MaxInputSize {
		return nil, fmt.Errorf("process %s: %w (%d bytes, max %d)",
			filename, ErrInputTooLarge, len(data), p.cfg.MaxInputSize)
	}

	res, err := p.docs.Extract(ctx, data, filename)
	if err != nil {
		return nil, err
	}

	text := textclean.Clean(res.Text)
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("process %s: %w", filename, ErrNoTextRecovered)
	}

	p.logger.InfoContext(ctx, "document processed",
		"filename", filename,
		"method", res.Method,
		"language", res.Language,
		"chars", len(text))

	return &ProcessResult{
		Text:     text,
		Tables:   res.Tables,
		Language: res.Language,
		Pages:    res.Pages,
		Method:   res.Method,
		Warnings: res.Warnings,
	}, nil
}

// Translate converts text to the target language through the provider chain.
func (p *Pipeline) Translate(ctx context.Context, text, targetLang string) *Envelope {
	if strings.TrimSpace(text) == "" {
		return p.failure(ErrEmptyInput)
	}
	res, err := p.trans.Translate(ctx, text, targetLang)
	if err != nil {
		return p.failure(err)
	}
	return &Envelope{Success: true, Payload: res, Warnings: res.Warnings}
}

// Summarize produces an extractive summary of the text.
func (p *Pipeline) Summarize(ctx context.Context, text string) *Envelope {
	if strings.TrimSpace(text) == "" {
		return p.failure(ErrEmptyInput)
	}
	sum, err := summarize.Summarize(text, summarize.Options{})
	if err != nil {
		return p.failure(err)
	}
	return &Envelope{Success: true, Payload: sum}
}

// BulletPoints extracts the text's key points.
func (p *Pipeline) BulletPoints(ctx context.Context, text string) *Envelope {
	if strings.TrimSpace(text) == "" {
		return p.failure(ErrEmptyInput)
	}
	res, err := keypoints.Extract(text, keypoints.Options{})
	if err != nil {
		return p.failure(err)
	}
	return &Envelope{Success: true, Payload: res}
}

// Compare diffs two texts line by line.
func (p *Pipeline) Compare(ctx context.Context, left, right string) *Envelope {
	if strings.TrimSpace(left) == "" || strings.TrimSpace(right) == "" {
		return p.failure(ErrEmptyInput)
	}
	res, err := compare.Compare(left, right)
	if err != nil {
		return p.failure(err)
	}
	return &Envelope{Success: true, Payload: res}
}

func (p *Pipeline) failure(err error) *Envelope {
	return &Envelope{Success: false, Error: sanitizeError(p.logger, err)}
}
