package preview

import (
	"context"
	"log"
)

// Service resolves a URL into link preview metadata.
type Service interface {
	Resolve(ctx context.Context, rawURL string) (*Result, error)
}

type service struct {
	strategies []Strategy
	breaker    *circuitBreaker
}

// ServiceOption configures the preview service.
type ServiceOption func(*service)

// WithCircuitBreaker replaces the default per-strategy circuit breaker.
func WithCircuitBreaker(cb *circuitBreaker) ServiceOption {
	return func(s *service) {
		s.breaker = cb
	}
}

// NewService creates a preview service that tries strategies in order and
// falls back to a bare URL result when none of them produce metadata.
func NewService(strategies []Strategy, opts ...ServiceOption) Service {
	s := &service{
		strategies: strategies,
		breaker:    newCircuitBreaker(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Resolve validates the URL, then walks the strategy chain. A strategy may
// decline (nil, nil), fail with an error, or return a result. Failures are
// logged and recorded in the circuit breaker but never surfaced; the only
// error a caller can see is ErrInvalidURL.
func (s *service) Resolve(ctx context.Context, rawURL string) (*Result, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, err
	}

	for _, strategy := range s.strategies {
		name := strategy.Name()
		if ok, cbErr := s.breaker.canAttempt(name); !ok {
			log.Printf("[PREVIEW] Skipping strategy %s: %v", name, cbErr)
			continue
		}

		result, err := strategy.TryResolve(ctx, rawURL)
		if err != nil {
			log.Printf("[PREVIEW] Strategy %s failed for %s: %v", name, rawURL, err)
			s.breaker.recordFailure(name, err)
			continue
		}
		if result == nil {
			continue
		}

		s.breaker.recordSuccess(name)
		return result, nil
	}

	log.Printf("[PREVIEW] All strategies exhausted for %s, returning fallback", rawURL)
	return Fallback(rawURL), nil
}
