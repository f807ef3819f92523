package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard-scraper/internal/dom"
	"jobboard-scraper/internal/host"
	"jobboard-scraper/internal/job"
)

func scrape(t *testing.T, s *Scraper, pageURL, html string) *ListResult {
	t.Helper()
	return s.ScrapeList(context.Background(), host.NewStatic(pageURL, html))
}

func titles(jobs []*job.Record) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.Title)
	}
	return out
}

func TestScrapeListWellFormedCards(t *testing.T) {
	s := newTestScraper(t, testAdapter())
	res := scrape(t, s, testPageURL, pageHTML(
		card("1", "Go Developer", "Acme"),
		card("2", "Backend Engineer", "Globex"),
		card("3", "Platform Engineer", "Initech"),
	))

	require.Empty(t, res.Error)
	require.Len(t, res.Jobs, 3)
	assert.Equal(t, []string{"Go Developer", "Backend Engineer", "Platform Engineer"}, titles(res.Jobs))
	assert.Equal(t, "https://jobs.example.com/search?q=golang&page=2", res.NextURL)
	assert.NotEmpty(t, res.SessionID)

	first := res.Jobs[0]
	assert.Equal(t, "Acme", first.Company)
	assert.Equal(t, "Auckland CBD", first.Location)
	assert.Equal(t, "Build services in Go.", first.Description)
	assert.Equal(t, "https://jobs.example.com/job/1?ref=search", first.SourceURL)
	assert.Equal(t, "1", first.SourceID)
	assert.Equal(t, job.Source("testboard"), first.Source)
	assert.Equal(t, "TestBoard", first.Platform)
	assert.Equal(t, job.StatusUnapplied, first.Status)
	assert.Equal(t, fixedNow, first.CreatedAt)
	assert.Equal(t, "3d ago", first.PostedDate)
	require.NotNil(t, first.PostedAt)
	assert.Equal(t, "2025-03-07", first.PostedAt.Format("2006-01-02"))
}

func TestScrapeListRejectsIncompleteCards(t *testing.T) {
	s := newTestScraper(t, testAdapter())
	res := scrape(t, s, testPageURL, pageHTML(
		card("1", "Go Developer", "Acme"),
		card("2", "", "Globex"),
		card("3", "Platform Engineer", "   "),
		card("4", "SRE", "Hooli"),
	))

	require.Empty(t, res.Error)
	assert.Equal(t, []string{"Go Developer", "SRE"}, titles(res.Jobs))
	require.Len(t, res.CardErrors, 2)
	assert.Equal(t, 1, res.CardErrors[0].Index)
	assert.Equal(t, 2, res.CardErrors[1].Index)
	assert.ErrorIs(t, res.CardErrors[0], ErrCardRejected)
	assert.Contains(t, res.Log, "Skipping card 1")
}

func TestScrapeListSelectorFallback(t *testing.T) {
	s := newTestScraper(t, testAdapter())

	primary := scrape(t, s, testPageURL, pageHTML(
		card("1", "Go Developer", "Acme"),
		card("2", "Backend Engineer", "Globex"),
	))
	fallback := scrape(t, s, testPageURL, pageHTML(
		cardHTML("div", "legacy-card", "1", "Go Developer", "Acme"),
		cardHTML("div", "legacy-card", "2", "Backend Engineer", "Globex"),
	))

	require.Empty(t, fallback.Error)
	assert.Equal(t, primary.Jobs, fallback.Jobs)
	assert.Contains(t, fallback.Log, `selector "div.legacy-card"`)
}

// explodingNode: любой потомок тоже взрывается, Closest всегда падает
type explodingNode struct {
	dom.Node
	panics bool
}

func (n explodingNode) Find(selector string) ([]dom.Node, error) {
	nodes, err := n.Node.Find(selector)
	for i := range nodes {
		nodes[i] = explodingNode{Node: nodes[i], panics: n.panics}
	}
	return nodes, err
}

func (n explodingNode) Closest(string) (dom.Node, bool, error) {
	if n.panics {
		panic("node detached")
	}
	return nil, false, errors.New("node detached")
}

// faultyRoot подменяет одну карточку на взрывающуюся
type faultyRoot struct {
	dom.Node
	cardSelector string
	index        int
	panics       bool
}

func (r faultyRoot) Find(selector string) ([]dom.Node, error) {
	nodes, err := r.Node.Find(selector)
	if err == nil && selector == r.cardSelector && r.index < len(nodes) {
		nodes[r.index] = explodingNode{Node: nodes[r.index], panics: r.panics}
	}
	return nodes, err
}

func TestScrapeListFaultIsolation(t *testing.T) {
	for _, panics := range []bool{false, true} {
		s := newTestScraper(t, testAdapter())

		doc, err := dom.Parse(pageHTML(
			card("1", "Go Developer", "Acme"),
			card("2", "Backend Engineer", "Globex"),
			card("3", "Platform Engineer", "Initech"),
		))
		require.NoError(t, err)

		root := faultyRoot{Node: doc, cardSelector: "article.job-card", index: 1, panics: panics}
		faulty := s.ScrapeList(context.Background(), host.NewStaticTree(testPageURL, root))

		baseline := scrape(t, s, testPageURL, pageHTML(
			card("1", "Go Developer", "Acme"),
			card("3", "Platform Engineer", "Initech"),
		))

		require.Empty(t, faulty.Error)
		require.Len(t, faulty.Jobs, 2)
		require.Len(t, faulty.CardErrors, 1)
		assert.Equal(t, 1, faulty.CardErrors[0].Index)
		assert.NotErrorIs(t, faulty.CardErrors[0], ErrCardRejected)
		assert.Contains(t, faulty.Log, "Error processing card 1")

		got, err := json.Marshal(faulty.Jobs)
		require.NoError(t, err)
		want, err := json.Marshal(baseline.Jobs)
		require.NoError(t, err)
		assert.Equal(t, string(want), string(got))
	}
}

func TestScrapeListLoginWall(t *testing.T) {
	s := newTestScraper(t, testAdapter())
	res := scrape(t, s, testPageURL, pageHTML(
		`<form class="login-wall"><input name="email"></form>`,
		card("1", "Go Developer", "Acme"),
	))

	assert.Empty(t, res.Jobs)
	assert.NotNil(t, res.Jobs)
	assert.Empty(t, res.NextURL)
	assert.Equal(t, "Login required", res.Error)
	assert.ErrorIs(t, res.Err, ErrLoginRequired)
	assert.True(t, res.Aborted())

	payload, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(payload), `"jobs":[],"nextUrl":null,"error":"Login required"`)
}

func TestScrapeListNoItemsFound(t *testing.T) {
	s := newTestScraper(t, testAdapter())
	res := scrape(t, s, testPageURL, `<html><body><p>No jobs match your search</p></body></html>`)

	assert.Empty(t, res.Jobs)
	assert.Empty(t, res.NextURL)
	assert.Equal(t, "No items found", res.Error)
	assert.ErrorIs(t, res.Err, ErrNoItemsFound)
}

func TestScrapeListOffsetPagination(t *testing.T) {
	cfg := testAdapter()
	cfg.Pagination = PaginationConfig{Strategy: PaginationOffset, OffsetParam: "start", PageSize: 25}
	s := newTestScraper(t, cfg)

	res := scrape(t, s, "https://jobs.example.com/search?keywords=go&start=50", pageHTML(card("1", "Go Developer", "Acme")))

	require.Empty(t, res.Error)
	assert.Contains(t, res.NextURL, "start=75")
	assert.Equal(t, "https://jobs.example.com/search?keywords=go&start=75", res.NextURL)
}

func TestScrapeListDedup(t *testing.T) {
	html := pageHTML(
		card("1", "Go Developer", "Acme"),
		card("2", "Go Developer", "Acme"),
		card("3", "Go Developer", "Globex"),
	)

	cfg := testAdapter()
	cfg.Dedup = true
	deduped := scrape(t, newTestScraper(t, cfg), testPageURL, html)
	require.Len(t, deduped.Jobs, 2)
	assert.Equal(t, "1", deduped.Jobs[0].SourceID)
	assert.Equal(t, "Globex", deduped.Jobs[1].Company)
	assert.Contains(t, deduped.Log, "Duplicate job skipped: Go Developer at Acme")

	cfg.Dedup = false
	all := scrape(t, newTestScraper(t, cfg), testPageURL, html)
	assert.Len(t, all.Jobs, 3)
}

func TestScrapeListHeuristics(t *testing.T) {
	s := newTestScraper(t, testAdapter())
	res := scrape(t, s, testPageURL, pageHTML(card("1", "Go Developer", "Acme")))

	require.Len(t, res.Jobs, 1)
	assert.Equal(t, "$80k - $100k per year", res.Jobs[0].Salary)
	assert.Equal(t, "Full-time", res.Jobs[0].JobType)
}

func TestScrapeListIdempotent(t *testing.T) {
	cfg := testAdapter()
	cfg.Dedup = true
	s := newTestScraper(t, cfg)
	h := host.NewStatic(testPageURL, pageHTML(
		card("1", "Go Developer", "Acme"),
		card("2", "Backend Engineer", "Globex"),
	))

	first := s.ScrapeList(context.Background(), h)
	second := s.ScrapeList(context.Background(), h)

	assert.Equal(t, first.Jobs, second.Jobs)
	assert.Equal(t, first.NextURL, second.NextURL)
	assert.NotEqual(t, first.SessionID, second.SessionID)
}

func TestScrapeListLogTrail(t *testing.T) {
	s := newTestScraper(t, testAdapter())
	res := scrape(t, s, testPageURL, pageHTML(card("1", "Go Developer", "Acme")))

	lines := strings.Split(res.Log, "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "[09:00:00] Starting TestBoard list scrape: "+testPageURL, lines[0])
	assert.Contains(t, lines[len(lines)-1], "Scrape complete: 1 jobs, 0 skipped")
}
