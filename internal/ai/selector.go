package ai

import (
	"context"
	"fmt"
	"log/slog"
)

// NoBackendReply is the synthetic placeholder returned (and logged)
// when every backend fails or none is configured. It is a value, not
// an error: the chat surface must always get a displayable string.
const NoBackendReply = "(no LLM backend configured — install ollama or set a remote endpoint)"

// StrictUnavailableReply builds the placeholder for strict mode when
// the primary backend cannot serve.
func StrictUnavailableReply(backend string) string {
	return fmt.Sprintf("(LLM error: %s required but not available)", backend)
}

// Selector holds the configured backends in preference order. In
// strict mode only the first backend may be used and no fallback
// happens.
type Selector struct {
	backends []Backend
	strict   bool
}

func NewSelector(strict bool, backends ...Backend) *Selector {
	return &Selector{backends: backends, strict: strict}
}

// Backends exposes the configured chain for status reporting.
func (s *Selector) Backends() []Backend { return s.backends }

func (s *Selector) Strict() bool { return s.strict }

// Dispatch asks the backends in preference order until one succeeds.
// It never returns an error: every failure mode, including a backend
// panic, degrades to a placeholder string so the transcript stays
// gap-free.
func (s *Selector) Dispatch(ctx context.Context, model string, messages []Message) string {
	if len(s.backends) == 0 {
		return NoBackendReply
	}

	if s.strict {
		primary := s.backends[0]
		text, err := safeGenerate(ctx, primary, model, messages)
		if err != nil {
			slog.Warn("strict backend failed", "backend", primary.Name(), "err", err)
			return StrictUnavailableReply(primary.Name())
		}
		return text
	}

	for _, b := range s.backends {
		text, err := safeGenerate(ctx, b, model, messages)
		if err != nil {
			slog.Warn("backend failed, trying next", "backend", b.Name(), "err", err)
			continue
		}
		return text
	}
	return NoBackendReply
}

// safeGenerate contains any fault from a single backend call so it
// can only ever advance the fallback chain.
func safeGenerate(ctx context.Context, b Backend, model string, messages []Message) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("backend panic: %v", r)
		}
	}()
	return b.Generate(ctx, model, messages)
}
