package usecase

import (
	"context"
	"time"

	"github.com/allisson/credseal/internal/metrics"
)

// sealerUseCaseWithMetrics decorates SealerUseCase with metrics instrumentation.
type sealerUseCaseWithMetrics struct {
	next    SealerUseCase
	metrics metrics.BusinessMetrics
}

// NewSealerUseCaseWithMetrics wraps a SealerUseCase with metrics recording.
func NewSealerUseCaseWithMetrics(useCase SealerUseCase, m metrics.BusinessMetrics) SealerUseCase {
	return &sealerUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *sealerUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, s.metrics, "crypto", operation, start, metrics.StatusFromError(err))
}

// Seal records metrics for envelope sealing.
func (s *sealerUseCaseWithMetrics) Seal(ctx context.Context, plaintext string) (string, error) {
	start := time.Now()
	envelope, err := s.next.Seal(ctx, plaintext)
	s.record(ctx, "seal", start, err)
	return envelope, err
}

// Open records metrics for envelope opening.
func (s *sealerUseCaseWithMetrics) Open(ctx context.Context, envelope string) (string, error) {
	start := time.Now()
	plaintext, err := s.next.Open(ctx, envelope)
	s.record(ctx, "open", start, err)
	return plaintext, err
}

// Reseal records metrics for envelope resealing.
func (s *sealerUseCaseWithMetrics) Reseal(ctx context.Context, envelope string) (string, error) {
	start := time.Now()
	resealed, err := s.next.Reseal(ctx, envelope)
	s.record(ctx, "reseal", start, err)
	return resealed, err
}
