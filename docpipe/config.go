// CLAUDE:SUMMARY Configuration struct and defaults for the docpipe extraction pipeline.
package docpipe

import (
	"log/slog"

	"github.com/hazyhaar/docproc/ocr"
)

// Config configures the document pipeline.
type Config struct {
	// MaxFileSize is the maximum payload size to process (default: 16 MiB).
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size"`

	// OCR handles image inputs and scanned PDFs. When nil those inputs
	// fail with ErrExtractionFailure and sparse PDFs extract with a
	// warning instead of an OCR pass.
	OCR *ocr.Orchestrator `json:"-" yaml:"-"`

	// MinCharsPerPage is the native-PDF text density below which a PDF
	// with image streams is treated as scanned (default: 50).
	MinCharsPerPage float64 `json:"min_chars_per_page" yaml:"min_chars_per_page"`

	// MinPrintableRatio is the printable-rune share below which native PDF
	// text is treated as garbled (default: 0.85).
	MinPrintableRatio float64 `json:"min_printable_ratio" yaml:"min_printable_ratio"`

	// MinWordlikeRatio is the word-shaped token share below which a PDF
	// with image streams is treated as scanned (default: 0.3).
	MinWordlikeRatio float64 `json:"min_wordlike_ratio" yaml:"min_wordlike_ratio"`

	// Logger for debug/error messages.
	Logger *slog.Logger `json:"-" yaml:"-"`
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = 16 << 20
	}
	if c.MinCharsPerPage <= 0 {
		c.MinCharsPerPage = 50
	}
	if c.MinPrintableRatio <= 0 {
		c.MinPrintableRatio = 0.85
	}
	if c.MinWordlikeRatio <= 0 {
		c.MinWordlikeRatio = 0.3
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}
