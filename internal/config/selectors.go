package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"jobboard-scraper/internal/scraper"
)

// LoadAdapter загружает конфигурацию площадки из YAML файла
func LoadAdapter(filePath string) (*scraper.AdapterConfig, error) {
	if filePath == "" {
		return nil, fmt.Errorf("adapter file path is empty")
	}

	// Проверяем существование файла
	if _, err := os.Stat(filePath); err != nil {
		return nil, fmt.Errorf("adapter file not found: %s: %w", filePath, err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open adapter file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close adapter file: %v\n", closeErr)
		}
	}()

	var adapter scraper.AdapterConfig
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(&adapter); err != nil {
		return nil, fmt.Errorf("failed to parse adapter YAML %s: %w", filePath, err)
	}

	if err := adapter.Validate(); err != nil {
		return nil, fmt.Errorf("invalid adapter %s: %w", filePath, err)
	}

	return &adapter, nil
}

// AdapterPaths возвращает пути к файлам адаптеров; относительные — от каталога конфига
func (c *Config) AdapterPaths(configPath string) []string {
	baseDir := filepath.Dir(configPath)

	paths := make([]string, 0, len(c.Adapters.Files))
	for _, file := range c.Adapters.Files {
		if !filepath.IsAbs(file) {
			file = filepath.Join(baseDir, file)
		}
		paths = append(paths, file)
	}
	return paths
}
