package scraper

import (
	"fmt"
	"sync"

	"jobboard-scraper/internal/job"
	"jobboard-scraper/internal/observability"
)

// Registry хранит адаптеры в порядке регистрации; Match отдаёт первый подходящий
type Registry struct {
	mu       sync.RWMutex
	scrapers []*Scraper
	logger   *observability.Logger
	opts     []Option
}

// NewRegistry создаёт пустой реестр; opts применяются к каждому адаптеру
func NewRegistry(logger *observability.Logger, opts ...Option) *Registry {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &Registry{logger: logger, opts: opts}
}

// Register добавляет площадку. Повторная регистрация того же source
// заменяет адаптер, сохраняя его место в очереди.
func (r *Registry) Register(cfg AdapterConfig) error {
	s, err := NewScraper(cfg, r.logger, r.opts...)
	if err != nil {
		return fmt.Errorf("failed to register adapter: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.scrapers {
		if existing.Source() == s.Source() {
			r.scrapers[i] = s
			r.logger.Info("Adapter replaced", "source", string(s.Source()), "position", i)
			return nil
		}
	}

	r.scrapers = append(r.scrapers, s)
	r.logger.Info("Adapter registered", "source", string(s.Source()), "position", len(r.scrapers)-1)
	return nil
}

// Match возвращает первый адаптер, чей предикат принимает url
func (r *Registry) Match(url string) (*Scraper, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.scrapers {
		if s.Matches(url) {
			return s, true
		}
	}
	return nil, false
}

// Sources — источники в порядке регистрации
func (r *Registry) Sources() []job.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sources := make([]job.Source, 0, len(r.scrapers))
	for _, s := range r.scrapers {
		sources = append(sources, s.Source())
	}
	return sources
}
