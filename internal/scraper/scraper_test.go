package scraper

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-scraper/internal/dom"
	"jobboard-scraper/internal/host"
)

var fixedNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

const testPageURL = "https://jobs.example.com/search?q=golang"

func testAdapter() AdapterConfig {
	return AdapterConfig{
		Source:       "testboard",
		Label:        "TestBoard",
		Origin:       "https://jobs.example.com",
		MatchPattern: `^https://jobs\.example\.com/`,
		LoginWall:    []string{"form.login-wall"},
		Cards:        []string{"article.job-card", "div.legacy-card"},
		Fields: FieldSelectors{
			Title:       []string{"h3.title", ".job-title"},
			Company:     []string{".company"},
			Location:    []string{".location"},
			Metadata:    []string{"ul.meta li"},
			Description: []string{"p.snippet"},
			PostedDate:  []string{"time.posted"},
		},
		Detail: DetailSelectors{
			Title:        []string{"h1.job-title"},
			Company:      []string{".employer"},
			Location:     []string{".job-location"},
			Salary:       []string{".job-salary"},
			JobType:      []string{".job-type"},
			Description:  []string{"div.job-description"},
			PostedDate:   []string{".posted-at"},
			Requirements: []string{"ul.requirements li"},
		},
		Pagination: PaginationConfig{
			Strategy:      PaginationNextControl,
			NextSelectors: []string{"a.next"},
		},
		SourceIDAttrs:   []string{"data-job-id"},
		SourceIDPattern: `/job/(\d+)`,
	}
}

func newTestScraper(t *testing.T, cfg AdapterConfig, opts ...Option) *Scraper {
	t.Helper()
	opts = append([]Option{WithClock(func() time.Time { return fixedNow })}, opts...)
	s, err := NewScraper(cfg, nil, opts...)
	require.NoError(t, err)
	return s
}

// cardHTML — типовая карточка; tag/class задают, каким селектором её найдут
func cardHTML(tag, class, id, title, company string) string {
	return fmt.Sprintf(`
<%[1]s class="%[2]s">
	<a href="/job/%[3]s?ref=search#top"><h3 class="title">%[4]s</h3></a>
	<span class="company">%[5]s</span>
	<span class="location">Auckland CBD</span>
	<p class="snippet">Build services in Go.</p>
	<time class="posted">3d ago</time>
	<ul class="meta"><li>$80k - $100k per year</li><li>Full-time</li><li>Auckland</li></ul>
</%[1]s>`, tag, class, id, title, company)
}

func card(id, title, company string) string {
	return cardHTML("article", "job-card", id, title, company)
}

func pageHTML(body ...string) string {
	return `<html><body><main>` + strings.Join(body, "\n") +
		`<nav><a class="next" href="/search?q=golang&page=2">Next</a></nav></main></body></html>`
}

func TestWaitReadyWaitsForLoadEvent(t *testing.T) {
	s := newTestScraper(t, testAdapter())
	h := host.NewLoadingStatic(testPageURL, pageHTML(card("1", "Go Developer", "Acme")))

	go func() {
		time.Sleep(10 * time.Millisecond)
		h.FireLoad()
	}()

	res := s.ScrapeList(context.Background(), h)
	require.Empty(t, res.Error)
	assert.Len(t, res.Jobs, 1)
	assert.Contains(t, res.Log, "waiting for load event")
	assert.Contains(t, res.Log, "Document loaded")
}

func TestWaitReadyTimeout(t *testing.T) {
	s := newTestScraper(t, testAdapter(), WithReadyTimeout(10*time.Millisecond))
	h := host.NewLoadingStatic(testPageURL, pageHTML(card("1", "Go Developer", "Acme")))

	res := s.ScrapeList(context.Background(), h)
	assert.Equal(t, "Readiness timeout", res.Error)
	assert.True(t, errors.Is(res.Err, ErrReadinessTimeout))
	assert.Empty(t, res.Jobs)
	assert.Empty(t, res.NextURL)
}

func TestWaitReadyInterruptedByContext(t *testing.T) {
	s := newTestScraper(t, testAdapter())
	h := host.NewLoadingStatic(testPageURL, pageHTML(card("1", "Go Developer", "Acme")))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	res := s.ScrapeList(ctx, h)
	assert.Equal(t, "Readiness wait interrupted", res.Error)
	assert.ErrorIs(t, res.Err, ErrReadinessInterrupted)
}

type failingDocumentHost struct {
	*host.Static
}

func (failingDocumentHost) Document(context.Context) (dom.Node, error) {
	return nil, errors.New("target closed")
}

func TestDocumentUnavailable(t *testing.T) {
	s := newTestScraper(t, testAdapter())
	h := failingDocumentHost{host.NewStatic(testPageURL, "")}

	res := s.ScrapeList(context.Background(), h)
	assert.Equal(t, "Document unavailable", res.Error)
	assert.Empty(t, res.Jobs)

	assert.Nil(t, s.ScrapeDetail(context.Background(), h))
}

func TestNewScraperRejectsInvalidConfig(t *testing.T) {
	cfg := testAdapter()
	cfg.MatchPattern = "(["
	_, err := NewScraper(cfg, nil)
	assert.Error(t, err)

	cfg = testAdapter()
	cfg.Pagination = PaginationConfig{Strategy: PaginationOffset, OffsetParam: "start"}
	_, err = NewScraper(cfg, nil)
	assert.ErrorContains(t, err, "pagination.page_size")

	cfg = testAdapter()
	cfg.Fields.Company = nil
	_, err = NewScraper(cfg, nil)
	assert.ErrorContains(t, err, "fields.company")
}
