package scraper

import (
	"context"
	"strings"

	"jobboard-scraper/internal/host"
	"jobboard-scraper/internal/job"
)

// ScrapeDetail извлекает одну запись со страницы вакансии по плоской карте полей.
// nil возвращается только если документ не удалось получить.
func (s *Scraper) ScrapeDetail(ctx context.Context, h host.Host) *job.Record {
	sess := newSession(s.now, s.logger)
	pageURL := h.URL()

	sess.Log.Add("Starting %s detail scrape: %s", s.cfg.Label, pageURL)

	if err := s.waitReady(ctx, h, sess); err != nil {
		sess.Log.Add("Aborted: %v", err)
		s.logger.Warn("Detail scrape aborted", "session_id", sess.ID, "url", pageURL, "error", err.Error())
		return nil
	}

	root, err := h.Document(ctx)
	if err != nil {
		sess.Log.Add("Aborted: document unavailable: %v", err)
		s.logger.Warn("Detail scrape aborted", "session_id", sess.ID, "url", pageURL, "error", err.Error())
		return nil
	}

	d := s.cfg.Detail
	p := s.newPass(pageURL)

	rec := job.New(s.cfg.Source, s.cfg.Label, p.now)
	rec.Title = s.titleText(Resolve(root, d.Title))
	rec.Company = Resolve(root, d.Company).Value
	rec.Location = Resolve(root, d.Location).Value
	rec.Salary = Resolve(root, d.Salary).Value
	rec.Description = s.description(Resolve(root, d.Description))
	rec.Requirements = ResolveOrdered(root, d.Requirements)
	rec.SourceURL = s.cleanLink(pageURL)
	rec.SourceID = s.sourceIDFrom(rec.SourceURL)

	if jobType := Resolve(root, d.JobType); jobType.Present() {
		rec.JobType = canonicalJobType(jobType.Value)
	}

	if posted := Resolve(root, d.PostedDate); posted.Present() {
		rec.PostedDate = posted.Value
	}

	if posting, ok := findJobPosting(root); ok {
		sess.Log.Add("Found JSON-LD JobPosting")
		s.fillFromPosting(rec, posting)
	}

	if rec.PostedDate != "" {
		if t, err := p.dates.Parse(rec.PostedDate); err == nil {
			rec.PostedAt = &t
		}
	}

	sess.Log.Add("Detail scrape complete: %s at %s", rec.Title, rec.Company)
	s.logger.Info("Detail scrape completed",
		"session_id", sess.ID,
		"url", pageURL,
		"title", rec.Title,
		"company", rec.Company,
		"accepted", rec.Accepted(),
	)

	return rec
}

// description: очищенный HTML контейнера, иначе его текст
func (s *Scraper) description(f Field) string {
	if f.Node == nil {
		return ""
	}
	html, err := f.Node.HTML()
	if err == nil {
		if text := s.normalizer.CleanHTML(html); text != "" {
			return text
		}
	}
	return f.Value
}

// fillFromPosting заполняет только пустые поля
func (s *Scraper) fillFromPosting(rec *job.Record, posting *jobPosting) {
	if rec.Title == "" {
		rec.Title = posting.Title
	}
	if rec.Company == "" {
		rec.Company = posting.Company
	}
	if rec.Location == "" {
		rec.Location = posting.Location
	}
	if rec.Description == "" && posting.Description != "" {
		rec.Description = s.normalizer.CleanHTML(posting.Description)
	}
	if rec.JobType == "" && posting.EmploymentType != "" {
		rec.JobType = canonicalJobType(strings.ReplaceAll(posting.EmploymentType, "_", " "))
	}
	if rec.PostedDate == "" {
		rec.PostedDate = posting.DatePosted
	}
	if rec.SourceID == "" {
		rec.SourceID = posting.Identifier
	}
}

// canonicalJobType приводит тип занятости к словарному написанию, если узнаёт его
func canonicalJobType(value string) string {
	if canonical, ok := DetectJobType([]string{value}); ok {
		return canonical
	}
	return value
}
