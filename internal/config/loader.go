package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Переменные окружения, перекрывающие YAML (секреты не храним в конфиге)
const (
	EnvStorageDSN = "JOBSCRAPER_STORAGE_DSN"
	EnvChromePath = "JOBSCRAPER_CHROME_PATH"
	EnvLogLevel   = "JOBSCRAPER_LOG_LEVEL"
)

func LoadConfig(filePath string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			// Логируем ошибку, но не возвращаем — иначе перезапишем основную ошибку
			log.Printf("Warning: failed to close config file: %v", closeErr)
		}
	}()

	var cfg Config
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if dsn := strings.TrimSpace(os.Getenv(EnvStorageDSN)); dsn != "" {
		c.Storage.DSN = dsn
	}
	if chrome := strings.TrimSpace(os.Getenv(EnvChromePath)); chrome != "" {
		c.Rod.ChromePath = chrome
	}
	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		c.Observability.LogLevel = strings.ToLower(level)
	}
}
