// CLAUDE:SUMMARY Error taxonomy sentinels and client-safe message sanitizing.
package pipeline

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hazyhaar/docproc/docpipe"
	"github.com/hazyhaar/docproc/ocr"
)

// Taxonomy sentinels, matchable with errors.Is. Format and recognition
// failures surface the underlying packages' sentinels unchanged.
var (
	ErrEmptyInput    = errors.New("empty input")
	ErrInputTooLarge = errors.New("input too large")

	ErrUnsupportedFormat = docpipe.ErrUnsupportedFormat
	ErrExtractionFailure = docpipe.ErrExtractionFailure
	ErrNoTextRecovered   = ocr.ErrNoTextRecovered
)

// sanitizeError maps an internal error to a stable human-readable message.
// The full error is logged server-side; callers only see the category.
func sanitizeError(logger *slog.Logger, err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrEmptyInput):
		return "input is empty"
	case errors.Is(err, ErrInputTooLarge):
		return "input exceeds the size limit"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported document format"
	case errors.Is(err, ErrNoTextRecovered):
		return "no text could be recovered from the document"
	case errors.Is(err, ErrExtractionFailure):
		return "document could not be parsed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "request cancelled"
	}
	logger.Error("internal error sanitized for client", "error", err)
	return "processing failed"
}
