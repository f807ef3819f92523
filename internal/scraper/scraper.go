package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jobboard-scraper/internal/host"
	"jobboard-scraper/internal/job"
	"jobboard-scraper/internal/normalize"
	"jobboard-scraper/internal/observability"
)

// Scraper — общий движок, привязанный к конфигурации одной площадки.
// Снаружи доступны только ScrapeList и ScrapeDetail.
type Scraper struct {
	cfg          AdapterConfig
	logger       *observability.Logger
	normalizer   *normalize.Normalizer
	now          func() time.Time
	readyTimeout time.Duration
}

type Option func(*Scraper)

// WithClock подменяет часы (временные метки записей и журнала)
func WithClock(now func() time.Time) Option {
	return func(s *Scraper) {
		if now != nil {
			s.now = now
		}
	}
}

// WithReadyTimeout ограничивает ожидание загрузки документа; 0 — ждать без ограничения
func WithReadyTimeout(d time.Duration) Option {
	return func(s *Scraper) {
		s.readyTimeout = d
	}
}

func WithNormalizer(n *normalize.Normalizer) Option {
	return func(s *Scraper) {
		if n != nil {
			s.normalizer = n
		}
	}
}

func NewScraper(cfg AdapterConfig, logger *observability.Logger, opts ...Option) (*Scraper, error) {
	if err := cfg.Compile(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = observability.NewNopLogger()
	}

	s := &Scraper{
		cfg:        cfg,
		logger:     logger.With("source", string(cfg.Source)),
		normalizer: normalize.NewNormalizer(normalize.Options{TrimNBSP: true, CollapseSpaces: true}),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *Scraper) Source() job.Source {
	return s.cfg.Source
}

func (s *Scraper) Label() string {
	return s.cfg.Label
}

// Config возвращает копию конфигурации площадки
func (s *Scraper) Config() AdapterConfig {
	return s.cfg
}

func (s *Scraper) Matches(url string) bool {
	return s.cfg.Matches(url)
}

// waitReady ждёт readyState == complete. Без таймаута ожидание не ограничено.
func (s *Scraper) waitReady(ctx context.Context, h host.Host, sess *Session) error {
	state, err := h.ReadyState(ctx)
	if err != nil {
		sess.Log.Add("Failed to read ready state: %v", err)
	}
	if err == nil && state == host.ReadyComplete {
		return nil
	}

	sess.Log.Add("Document not ready (%s), waiting for load event", state)

	waitCtx := ctx
	if s.readyTimeout > 0 {
		var cancel context.CancelFunc
		waitCtx, cancel = context.WithTimeout(ctx, s.readyTimeout)
		defer cancel()
	}

	if err := h.WaitLoad(waitCtx); err != nil {
		switch {
		case ctx.Err() != nil:
			return fmt.Errorf("%w: %v", ErrReadinessInterrupted, ctx.Err())
		case errors.Is(err, context.DeadlineExceeded):
			return fmt.Errorf("%w after %s", ErrReadinessTimeout, s.readyTimeout)
		default:
			return fmt.Errorf("%w: %v", ErrDocumentUnavailable, err)
		}
	}

	sess.Log.Add("Document loaded")
	return nil
}
