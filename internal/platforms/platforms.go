package platforms

import (
	"fmt"

	"jobboard-scraper/internal/config"
	"jobboard-scraper/internal/observability"
	"jobboard-scraper/internal/scraper"
)

// Builtin — встроенные площадки в порядке приоритета
func Builtin() []scraper.AdapterConfig {
	return []scraper.AdapterConfig{
		Seek(),
		LinkedIn(),
		Indeed(),
	}
}

// NewRegistry регистрирует встроенные площадки, затем адаптеры из YAML.
// YAML с тем же source заменяет встроенный адаптер на его месте.
func NewRegistry(logger *observability.Logger, adapterFiles []string, opts ...scraper.Option) (*scraper.Registry, error) {
	reg := scraper.NewRegistry(logger, opts...)

	for _, cfg := range Builtin() {
		if err := reg.Register(cfg); err != nil {
			return nil, fmt.Errorf("builtin adapter %s: %w", cfg.Source, err)
		}
	}

	for _, path := range adapterFiles {
		cfg, err := config.LoadAdapter(path)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(*cfg); err != nil {
			return nil, fmt.Errorf("adapter %s: %w", path, err)
		}
	}

	return reg, nil
}
