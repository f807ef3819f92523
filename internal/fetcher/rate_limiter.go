package fetcher

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter ограничивает запросы к одному хосту: RPM и число одновременных запросов
type RateLimiter struct {
	maxConcurrent int
	limit         rate.Limit
	burst         int
	hosts         map[string]*hostLimiter
	mu            sync.Mutex
}

type hostLimiter struct {
	sem     chan struct{}
	limiter *rate.Limiter
}

func NewRateLimiter(maxConcurrent, rpm, burst int) *RateLimiter {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}
	if burst <= 0 {
		burst = 1
	}

	limit := rate.Inf
	if rpm > 0 {
		limit = rate.Every(time.Minute / time.Duration(rpm))
	}

	return &RateLimiter{
		maxConcurrent: maxConcurrent,
		limit:         limit,
		burst:         burst,
		hosts:         make(map[string]*hostLimiter),
	}
}

func (rl *RateLimiter) limiterFor(host string) *hostLimiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	limiter, exists := rl.hosts[host]
	if !exists {
		limiter = &hostLimiter{
			sem:     make(chan struct{}, rl.maxConcurrent),
			limiter: rate.NewLimiter(rl.limit, rl.burst),
		}
		rl.hosts[host] = limiter
	}
	return limiter
}

// Wait занимает слот хоста и ждёт разрешения по RPM.
// Возвращённую функцию нужно вызвать после завершения запроса.
func (rl *RateLimiter) Wait(ctx context.Context, host string) (func(), error) {
	limiter := rl.limiterFor(host)

	// Acquire semaphore (concurrency control)
	select {
	case limiter.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var once sync.Once
	release := func() { once.Do(func() { <-limiter.sem }) }

	if err := limiter.limiter.Wait(ctx); err != nil {
		release()
		return nil, err
	}

	return release, nil
}
