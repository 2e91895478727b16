package translate

import (
	"context"
	"errors"
)

// Provider is one translation backend in the fallback chain.
//
// Translate converts text from the source to the target ISO 639-1 language
// code. An error or an unusable response (empty, or identical to the input
// for a cross-language request) makes the orchestrator fall through to the
// next provider in the chain.
type Provider interface {
	Name() string
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// ErrProviderUnavailable signals that a backend could not serve the request.
// Providers wrap it so the orchestrator can distinguish backend trouble
// from caller errors.
var ErrProviderUnavailable = errors.New("translation provider unavailable")
