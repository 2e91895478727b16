package docpipe

import (
	"context"
	"fmt"
)

// extractImage delegates an image payload to the OCR orchestrator.
func (p *Pipeline) extractImage(ctx context.Context, data []byte) (*Result, error) {
	if p.cfg.OCR == nil {
		return nil, fmt.Errorf("%w: image input requires an ocr engine", ErrExtractionFailure)
	}
	text, err := p.cfg.OCR.Run(ctx, data, "")
	if err != nil {
		return nil, fmt.Errorf("image ocr: %w", err)
	}
	return &Result{
		Text:   text,
		Pages:  1,
		Method: "ocr",
	}, nil
}
