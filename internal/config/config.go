package config

import (
	"fmt"
	"time"

	"jobboard-scraper/internal/normalize"
)

// Способы получения страницы
const (
	HostBrowser = "browser"
	HostHTTP    = "http"
)

type Config struct {
	Rod           RodConfig           `yaml:"rod"`
	HTTP          HTTPConfig          `yaml:"http"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit"`
	Scrape        ScrapeConfig        `yaml:"scrape"`
	Adapters      AdaptersConfig      `yaml:"adapters"`
	Normalize     normalize.Options   `yaml:"normalize"`
	Storage       StorageConfig       `yaml:"storage"`
	Observability ObservabilityConfig `yaml:"observability"`
}

type RodConfig struct {
	ChromePath   string `yaml:"chrome_path"`
	Headless     bool   `yaml:"headless"`
	PageTimeoutS int    `yaml:"page_timeout_s"`
}

// HTTPConfig — загрузка серверно отрендеренных страниц без браузера
type HTTPConfig struct {
	UserAgent      string `yaml:"user_agent"`
	AcceptLanguage string `yaml:"accept_language"`
	TimeoutMS      int    `yaml:"timeout_ms"`
	MaxRetries     int    `yaml:"max_retries"`
	BackoffMinMS   int    `yaml:"backoff_min_ms"`
	BackoffMaxMS   int    `yaml:"backoff_max_ms"`
	JitterPct      int    `yaml:"jitter_pct"`
	RespectRobots  bool   `yaml:"respect_robots"`
}

type RateLimitConfig struct {
	RPM                  int `yaml:"rpm"`
	Burst                int `yaml:"burst"`
	MaxConcurrentPerHost int `yaml:"max_concurrent_per_host"`
}

type ScrapeConfig struct {
	// Host — browser (rod) или http; пусто означает browser
	Host string `yaml:"host"`
	// ReadyTimeoutS — 0 означает ждать загрузку без ограничения
	ReadyTimeoutS    int `yaml:"ready_timeout_s"`
	ShutdownTimeoutS int `yaml:"shutdown_timeout_s"`
}

// AdaptersConfig — YAML-файлы дополнительных площадок (или переопределений встроенных)
type AdaptersConfig struct {
	Files []string `yaml:"files"`
}

type StorageConfig struct {
	Enabled          bool   `yaml:"enabled"`
	Driver           string `yaml:"driver"`
	DSN              string `yaml:"dsn"`
	CommandTimeoutMS int    `yaml:"command_timeout_ms"`
	// SkipKnown — не перезаписывать вакансии, чей идентификатор площадки уже есть в хранилище
	SkipKnown        bool   `yaml:"skip_known"`
}

type ObservabilityConfig struct {
	LogPath       string `yaml:"log_path"`
	LogLevel      string `yaml:"log_level"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb"`
	LogMaxBackups int    `yaml:"log_max_backups"`
	LogMaxAgeDays int    `yaml:"log_max_age_days"`
	ArtifactDir   string `yaml:"artifact_dir"`
}

// Validation
func (c *Config) Validate() error {
	if c.Rod.PageTimeoutS < 0 {
		return fmt.Errorf("rod.page_timeout_s must be >= 0")
	}
	switch c.Scrape.Host {
	case "", HostBrowser:
	case HostHTTP:
		if err := c.validateHTTP(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("scrape.host must be '%s' or '%s'", HostBrowser, HostHTTP)
	}
	if c.Scrape.ReadyTimeoutS < 0 {
		return fmt.Errorf("scrape.ready_timeout_s must be >= 0")
	}
	if c.Scrape.ShutdownTimeoutS <= 0 {
		return fmt.Errorf("scrape.shutdown_timeout_s must be > 0")
	}
	for i, file := range c.Adapters.Files {
		if file == "" {
			return fmt.Errorf("adapters.files[%d] is empty", i)
		}
	}
	if c.Normalize.MaxPreviewChars < 0 {
		return fmt.Errorf("normalize.max_preview_chars must be >= 0")
	}
	if c.Storage.Enabled {
		if c.Storage.Driver != "mssql" {
			return fmt.Errorf("storage.driver must be 'mssql'")
		}
		if c.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required when storage.enabled is true")
		}
		if c.Storage.CommandTimeoutMS <= 0 {
			return fmt.Errorf("storage.command_timeout_ms must be > 0")
		}
	}
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("observability.log_level is required")
	}
	switch c.Observability.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("observability.log_level must be one of debug, info, warn, error")
	}
	if c.Observability.LogPath != "" && c.Observability.LogMaxSizeMB <= 0 {
		return fmt.Errorf("observability.log_max_size_mb must be > 0 when log_path is set")
	}
	return nil
}

func (c *Config) validateHTTP() error {
	if c.HTTP.UserAgent == "" {
		return fmt.Errorf("http.user_agent is required when scrape.host is 'http'")
	}
	if c.HTTP.TimeoutMS <= 0 {
		return fmt.Errorf("http.timeout_ms must be > 0")
	}
	if c.HTTP.MaxRetries < 0 {
		return fmt.Errorf("http.max_retries must be >= 0")
	}
	if c.HTTP.BackoffMinMS <= 0 || c.HTTP.BackoffMaxMS < c.HTTP.BackoffMinMS {
		return fmt.Errorf("http.backoff_min_ms must be > 0 and <= http.backoff_max_ms")
	}
	if c.HTTP.JitterPct < 0 || c.HTTP.JitterPct > 100 {
		return fmt.Errorf("http.jitter_pct must be between 0 and 100")
	}
	if c.RateLimit.RPM <= 0 {
		return fmt.Errorf("rate_limit.rpm must be > 0")
	}
	if c.RateLimit.MaxConcurrentPerHost <= 0 {
		return fmt.Errorf("rate_limit.max_concurrent_per_host must be > 0")
	}
	return nil
}

// HostMode возвращает способ получения страницы (browser по умолчанию)
func (c *Config) HostMode() string {
	if c.Scrape.Host == "" {
		return HostBrowser
	}
	return c.Scrape.Host
}

// Getters
func (c *Config) GetRodPageTimeout() time.Duration {
	return time.Duration(c.Rod.PageTimeoutS) * time.Second
}

func (c *Config) GetReadyTimeout() time.Duration {
	return time.Duration(c.Scrape.ReadyTimeoutS) * time.Second
}

func (c *Config) GetShutdownTimeout() time.Duration {
	return time.Duration(c.Scrape.ShutdownTimeoutS) * time.Second
}

func (c *Config) GetCommandTimeout() time.Duration {
	return time.Duration(c.Storage.CommandTimeoutMS) * time.Millisecond
}

func (c *Config) GetHTTPTimeout() time.Duration {
	return time.Duration(c.HTTP.TimeoutMS) * time.Millisecond
}
