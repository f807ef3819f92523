package artifact

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"jobboard-scraper/internal/job"
)

// Sink принимает журнал прохода и сохраняет его как артефакт.
// Возвращает место, куда артефакт записан.
type Sink interface {
	Export(ctx context.Context, name, content string) (string, error)
}

// LogName — имя артефакта журнала: <source>-<sessionID>.log
func LogName(source job.Source, sessionID string) string {
	return fmt.Sprintf("%s-%s.log", source, sessionID)
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("artifact name is empty")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("invalid artifact name: %q", name)
	}
	return nil
}

// FileSink пишет артефакты файлами в каталог
type FileSink struct {
	dir string
}

func NewFileSink(dir string) (*FileSink, error) {
	if dir == "" {
		return nil, fmt.Errorf("artifact dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact dir: %w", err)
	}
	return &FileSink{dir: dir}, nil
}

func (s *FileSink) Export(ctx context.Context, name, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateName(name); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", path, err)
	}
	return path, nil
}

// MemorySink хранит артефакты в памяти (тесты, пробные запуски)
type MemorySink struct {
	mu    sync.Mutex
	items map[string]string
}

func NewMemorySink() *MemorySink {
	return &MemorySink{items: make(map[string]string)}
}

func (s *MemorySink) Export(ctx context.Context, name, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := validateName(name); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[name] = content
	return "memory://" + name, nil
}

// Get возвращает сохранённый артефакт
func (s *MemorySink) Get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.items[name]
	return content, ok
}
