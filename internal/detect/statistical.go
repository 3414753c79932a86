package detect

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"horse.fit/lingo/internal/language"
)

// Identification is a subword provider's raw verdict: a language tag that
// may or may not map onto the supported set, with the model's own score.
type Identification struct {
	Tag   string
	Score float64
}

// SubwordProvider abstracts the optional pretrained language-identification
// model. Load is expensive and may fail when the model artifact is not
// deployed; Identify may fail at inference time. Either failure marks the
// stage unavailable for the rest of the process.
type SubwordProvider interface {
	Load(ctx context.Context) error
	Identify(ctx context.Context, text string) (Identification, error)
}

// statisticalStage memoizes the provider's one-time initialization.
// sync.Once makes concurrent first callers share the in-flight load instead
// of triggering duplicates, and a failed load is never retried.
type statisticalStage struct {
	provider SubwordProvider
	floor    float64
	logger   zerolog.Logger

	loadOnce sync.Once
	loadErr  error
	broken   atomic.Bool
}

func newStatisticalStage(provider SubwordProvider, floor float64, logger zerolog.Logger) *statisticalStage {
	if floor <= 0 {
		floor = DefaultStatisticalFloor
	}
	return &statisticalStage{provider: provider, floor: floor, logger: logger}
}

// tryDetect returns nil whenever the stage cannot contribute: no provider
// configured, provider unavailable, unsupported top language, or model
// confidence under the floor.
func (s *statisticalStage) tryDetect(ctx context.Context, text string) *Result {
	if s == nil || s.provider == nil {
		return nil
	}
	if s.broken.Load() {
		return nil
	}

	s.loadOnce.Do(func() {
		if err := s.provider.Load(ctx); err != nil {
			s.loadErr = err
			s.broken.Store(true)
			s.logger.Warn().Err(err).Msg("subword model unavailable, statistical stage disabled")
		}
	})
	if s.loadErr != nil {
		return nil
	}

	id, err := s.provider.Identify(ctx, text)
	if err != nil {
		// An inference failure is treated like an absent model: disable
		// the stage instead of failing again on every snippet.
		s.broken.Store(true)
		s.logger.Warn().Err(err).Msg("subword model inference failed, statistical stage disabled")
		return nil
	}

	code, ok := language.Parse(id.Tag)
	if !ok {
		return nil
	}
	if id.Score < s.floor {
		return nil
	}

	return &Result{
		Language:   code,
		Confidence: id.Score,
		Method:     MethodStatistical,
		Reasoning:  fmt.Sprintf("subword model scored %s at %.2f", language.Name(code), id.Score),
	}
}
