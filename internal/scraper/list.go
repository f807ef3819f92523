package scraper

import (
	"context"
	"errors"
	"fmt"

	"jobboard-scraper/internal/dom"
	"jobboard-scraper/internal/host"
	"jobboard-scraper/internal/job"
)

// ScrapeList выполняет один проход по странице списка:
// готовность → логин-стена → поиск карточек → извлечение → пагинация.
// Ошибки уровня прохода возвращаются в результате, а не паникой.
func (s *Scraper) ScrapeList(ctx context.Context, h host.Host) *ListResult {
	sess := newSession(s.now, s.logger)
	pageURL := h.URL()

	sess.Log.Add("Starting %s list scrape: %s", s.cfg.Label, pageURL)

	if err := s.waitReady(ctx, h, sess); err != nil {
		return s.finish(sess.abort(err))
	}

	root, err := h.Document(ctx)
	if err != nil {
		return s.finish(sess.abort(fmt.Errorf("%w: %v", ErrDocumentUnavailable, err)))
	}

	if selector, found := Exists(root, s.cfg.LoginWall); found {
		sess.Log.Add("Login wall detected (%s)", selector)
		return s.finish(sess.abort(ErrLoginRequired))
	}

	cards, selector := locateCards(root, s.cfg.Cards)
	if len(cards) == 0 {
		sess.Log.Add("No cards matched any of %d selectors", len(s.cfg.Cards))
		return s.finish(sess.abort(ErrNoItemsFound))
	}
	sess.Log.Add("Found %d cards with selector %q", len(cards), selector)

	p := s.newPass(pageURL)
	for i, card := range cards {
		rec, err := s.safeExtract(card, p)
		if err != nil {
			cardErr := &CardError{Index: i, Err: err}
			sess.cardErrors = append(sess.cardErrors, cardErr)
			if errors.Is(err, ErrCardRejected) {
				sess.Log.Add("Skipping card %d: %v", i, err)
			} else {
				sess.Log.Add("Error processing card %d: %v", i, err)
			}
			continue
		}

		if s.cfg.Dedup && !sess.remember(rec) {
			sess.Log.Add("Duplicate job skipped: %s at %s", rec.Title, rec.Company)
			continue
		}

		sess.jobs = append(sess.jobs, rec)
		sess.Log.Add("Extracted job %d: %s at %s", i, rec.Title, rec.Company)
	}

	next, err := s.nextURL(root, pageURL)
	if err != nil {
		sess.Log.Add("Failed to compute next page: %v", err)
		next = ""
	}
	sess.nextURL = next
	if next != "" {
		sess.Log.Add("Next page: %s", next)
	} else {
		sess.Log.Add("No next page")
	}

	sess.Log.Add("Scrape complete: %d jobs, %d skipped", len(sess.jobs), len(sess.cardErrors))
	return s.finish(sess.result())
}

// safeExtract — граница отказа для одной карточки: паника превращается в ошибку
func (s *Scraper) safeExtract(card dom.Node, p *pass) (rec *job.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			rec, err = nil, fmt.Errorf("panic during extraction: %v", r)
		}
	}()
	return s.extractCard(card, p)
}

// locateCards: первый кандидат, нашедший хоть один элемент, побеждает
func locateCards(root dom.Node, candidates []string) ([]dom.Node, string) {
	for _, selector := range candidates {
		if nodes, ok := findAll(root, selector); ok {
			return nodes, selector
		}
	}
	return nil, ""
}

func (s *Scraper) finish(res *ListResult) *ListResult {
	if res.Err != nil {
		s.logger.Warn("List scrape aborted",
			"session_id", res.SessionID,
			"reason", res.Error,
			"error", res.Err.Error(),
		)
		return res
	}

	s.logger.Info("List scrape completed",
		"session_id", res.SessionID,
		"jobs", len(res.Jobs),
		"skipped", len(res.CardErrors),
		"next_url", res.NextURL,
	)
	return res
}
