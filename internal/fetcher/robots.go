package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"

	"jobboard-scraper/internal/observability"
)

// RobotsCache кеширует robots.txt по хосту на ttl
type RobotsCache struct {
	cache  map[string]*robotsEntry
	ttl    time.Duration
	mu     sync.RWMutex
	logger *observability.Logger
}

type robotsEntry struct {
	data      *robotstxt.RobotsData
	expiresAt time.Time
}

func NewRobotsCache(ttl time.Duration, logger *observability.Logger) *RobotsCache {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &RobotsCache{
		cache:  make(map[string]*robotsEntry),
		ttl:    ttl,
		logger: logger,
	}
}

// IsAllowed проверяет путь по группе user-agent (или "*").
// Если robots.txt недоступен, доступ разрешён.
func (rc *RobotsCache) IsAllowed(ctx context.Context, u *url.URL, userAgent string, client *http.Client) bool {
	data, err := rc.robotsFor(ctx, u, userAgent, client)
	if err != nil {
		rc.logger.Debug("robots.txt unavailable, assuming allowed",
			"host", u.Host,
			"error", err.Error(),
		)
		return true
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return data.TestAgent(path, userAgent)
}

func (rc *RobotsCache) robotsFor(ctx context.Context, u *url.URL, userAgent string, client *http.Client) (*robotstxt.RobotsData, error) {
	rc.mu.RLock()
	cached, exists := rc.cache[u.Host]
	rc.mu.RUnlock()

	if exists && time.Now().Before(cached.expiresAt) {
		return cached.data, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			rc.logger.Warn("Failed to close response body", "error", err.Error())
		}
	}()

	// FromResponse: 4xx — всё разрешено, 5xx — всё запрещено
	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, err
	}

	rc.mu.Lock()
	rc.cache[u.Host] = &robotsEntry{
		data:      data,
		expiresAt: time.Now().Add(rc.ttl),
	}
	rc.mu.Unlock()

	return data, nil
}
