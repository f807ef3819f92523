package host

import (
	"context"
	"sync"

	"jobboard-scraper/internal/dom"
)

// Static — хост поверх готового HTML в памяти (тесты, сохранённые страницы)
type Static struct {
	url  string
	html string
	root dom.Node

	mu     sync.Mutex
	state  string
	loaded chan struct{}
	once   sync.Once
}

// NewStatic создаёт уже загруженную страницу
func NewStatic(url, html string) *Static {
	s := &Static{url: url, html: html, state: ReadyComplete, loaded: make(chan struct{})}
	s.once.Do(func() { close(s.loaded) })
	return s
}

// NewLoadingStatic создаёт страницу в состоянии "loading";
// событие загрузки срабатывает при вызове FireLoad.
func NewLoadingStatic(url, html string) *Static {
	return &Static{url: url, html: html, state: "loading", loaded: make(chan struct{})}
}

// NewStaticTree отдаёт заранее построенное дерево вместо парсинга HTML
func NewStaticTree(url string, root dom.Node) *Static {
	s := NewStatic(url, "")
	s.root = root
	return s
}

// FireLoad переводит страницу в "complete" и будит ожидающих (однократно)
func (s *Static) FireLoad() {
	s.once.Do(func() {
		s.mu.Lock()
		s.state = ReadyComplete
		s.mu.Unlock()
		close(s.loaded)
	})
}

func (s *Static) URL() string {
	return s.url
}

func (s *Static) ReadyState(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, nil
}

func (s *Static) WaitLoad(ctx context.Context) error {
	select {
	case <-s.loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Static) Document(_ context.Context) (dom.Node, error) {
	if s.root != nil {
		return s.root, nil
	}
	return dom.Parse(s.html)
}
