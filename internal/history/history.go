// Package history keeps an optional sqlite log of idle samples.
package history

import (
	"context"

	"codeberg.org/mutker/xprintidle/internal/errors"
	"codeberg.org/mutker/xprintidle/internal/logger"
)

type service struct {
	repo Repository
}

// No-op implementation
type noopRecorder struct{}

// NewService returns a Recorder backed by sqlite, or a no-op Recorder when
// history is disabled.
func NewService(cfg Config, log logger.Logger) (Recorder, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		log.Debug().Msg("History disabled, using no-op recorder")
		return &noopRecorder{}, nil
	}

	repo, err := NewRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	return &service{repo: repo}, nil
}

func (s *service) Record(ctx context.Context, sample *Sample) error {
	errFactory := errors.New()

	if sample == nil || sample.Timestamp.IsZero() {
		return errFactory.New(ErrInvalidSample)
	}

	if err := s.repo.Insert(ctx, sample); err != nil {
		return errFactory.Wrap(ErrRecordFailed, err)
	}

	return nil
}

func (s *service) Close() error {
	return s.repo.Close()
}

func (*noopRecorder) Record(_ context.Context, _ *Sample) error {
	return nil
}

func (*noopRecorder) Close() error {
	return nil
}
