package host

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"jobboard-scraper/internal/dom"
)

// BrowserOptions — параметры запуска headless Chrome
type BrowserOptions struct {
	ChromePath  string
	Headless    bool
	PageTimeout time.Duration
}

// Browser — запущенный Chrome, из которого открываются страницы
type Browser struct {
	browser     *rod.Browser
	pageTimeout time.Duration
}

// LaunchBrowser запускает Chrome через launcher и подключается к нему
func LaunchBrowser(opts BrowserOptions) (*Browser, error) {
	l := launcher.New().Headless(opts.Headless)
	if opts.ChromePath != "" {
		l = l.Bin(opts.ChromePath)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch chrome: %w", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to chrome: %w", err)
	}

	return &Browser{browser: browser, pageTimeout: opts.PageTimeout}, nil
}

// Open открывает новую вкладку с url. Навигация не дожидается загрузки:
// готовность страницы проверяет сам экстрактор.
func (b *Browser) Open(ctx context.Context, url string) (Host, func(), error) {
	page, err := b.browser.Context(ctx).Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, func() {}, fmt.Errorf("failed to open page %s: %w", url, err)
	}

	release := func() { _ = page.Close() }

	if b.pageTimeout > 0 {
		return &Page{page: page.Timeout(b.pageTimeout)}, release, nil
	}
	return NewPage(page), release, nil
}

func (b *Browser) Close() error {
	if b.browser == nil {
		return nil
	}
	return b.browser.Close()
}

// Page — Host поверх вкладки rod
type Page struct {
	page *rod.Page
}

// NewPage оборачивает уже открытую вкладку
func NewPage(page *rod.Page) *Page {
	return &Page{page: page}
}

func (p *Page) URL() string {
	info, err := p.page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func (p *Page) ReadyState(ctx context.Context) (string, error) {
	res, err := p.page.Context(ctx).Eval(`() => document.readyState`)
	if err != nil {
		return "", fmt.Errorf("failed to read document.readyState: %w", err)
	}
	return res.Value.Str(), nil
}

func (p *Page) WaitLoad(ctx context.Context) error {
	if err := p.page.Context(ctx).WaitLoad(); err != nil {
		return fmt.Errorf("wait load: %w", err)
	}
	return nil
}

func (p *Page) Document(ctx context.Context) (dom.Node, error) {
	html, err := p.page.Context(ctx).HTML()
	if err != nil {
		return nil, fmt.Errorf("failed to read page HTML: %w", err)
	}
	return dom.Parse(html)
}
