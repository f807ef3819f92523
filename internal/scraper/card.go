package scraper

import (
	"fmt"
	"strings"
	"time"

	"jobboard-scraper/internal/dom"
	"jobboard-scraper/internal/job"
	"jobboard-scraper/internal/normalize"
)

// pass — неизменяемые параметры одного прохода
type pass struct {
	pageURL string
	base    string
	now     time.Time
	dates   *DateParser
}

func (s *Scraper) newPass(pageURL string) *pass {
	now := s.now()
	base := s.cfg.Origin
	if base == "" {
		base = pageURL
	}
	return &pass{
		pageURL: pageURL,
		base:    base,
		now:     now,
		dates:   NewDateParser(func() time.Time { return now }),
	}
}

// extractCard собирает запись из одной карточки. Может вернуть ошибку;
// изоляция ошибок — задача вызывающего.
func (s *Scraper) extractCard(card dom.Node, p *pass) (*job.Record, error) {
	f := s.cfg.Fields

	title := Resolve(card, f.Title)
	if !title.Present() {
		return nil, fmt.Errorf("%w: title not found", ErrCardRejected)
	}
	company := Resolve(card, f.Company)
	if !company.Present() {
		return nil, fmt.Errorf("%w: company not found", ErrCardRejected)
	}

	link, err := s.cardURL(card, title, p)
	if err != nil {
		return nil, err
	}

	rec := job.New(s.cfg.Source, s.cfg.Label, p.now)
	rec.Title = s.titleText(title)
	rec.Company = company.Value
	rec.Location = Resolve(card, f.Location).Value
	rec.Description = Resolve(card, f.Description).Value
	rec.SourceURL = link
	rec.SourceID = s.sourceID(card, link)

	fragments := ResolveOrdered(card, f.Metadata)
	if salary := Resolve(card, f.Salary); salary.Present() {
		rec.Salary = salary.Value
	} else if salary, ok := DetectSalary(fragments); ok {
		rec.Salary = salary
	}
	if jobType, ok := DetectJobType(fragments); ok {
		rec.JobType = jobType
	}

	if posted := Resolve(card, f.PostedDate); posted.Present() {
		rec.PostedDate = posted.Value
		if t, err := p.dates.Parse(posted.Value); err == nil {
			rec.PostedAt = &t
		}
	}

	if logo := ResolveAttr(card, f.Logo, "src", "data-src", "data-delayed-url"); logo.Present() {
		rec.LogoURL = normalize.Absolute(logo.Value, p.base)
	}

	return rec, nil
}

// titleText применяет хук title_first_line к сырому тексту заголовка
func (s *Scraper) titleText(title Field) string {
	if !s.cfg.TitleFirstLine {
		return title.Value
	}
	if first := normalize.Text(normalize.FirstLine(title.Raw)); first != "" {
		return first
	}
	return title.Value
}

// cardURL: явная ссылка → ближайший a[href] вокруг заголовка → URL страницы
func (s *Scraper) cardURL(card dom.Node, title Field, p *pass) (string, error) {
	href := ResolveAttr(card, s.cfg.Fields.Link, "href").Value

	if href == "" && title.Node != nil {
		anchor, ok, err := title.Node.Closest("a[href]")
		if err != nil {
			return "", fmt.Errorf("failed to find enclosing link: %w", err)
		}
		if ok {
			if v, found := anchor.Attr("href"); found {
				href = strings.TrimSpace(v)
			}
		}
	}

	if href == "" {
		return p.pageURL, nil
	}

	return s.cleanLink(normalize.Absolute(href, p.base)), nil
}

func (s *Scraper) cleanLink(link string) string {
	link = normalize.NormalizeURL(link)
	if s.cfg.StripLinkQuery {
		link = normalize.StripQuery(link)
	}
	return link
}

// sourceID: первый непустой атрибут карточки (или её потомка), затем URL.
// Значение атрибута проходит через source_id_pattern, если тот совпадает;
// из URL id берётся только по шаблону.
func (s *Scraper) sourceID(card dom.Node, link string) string {
	for _, attr := range s.cfg.SourceIDAttrs {
		value, ok := readAttr(card, attr)
		value = strings.TrimSpace(value)
		if !ok || value == "" {
			value = ResolveAttr(card, []string{"[" + attr + "]"}, attr).Value
		}
		if value == "" {
			continue
		}
		if id := s.sourceIDFrom(value); id != "" {
			return id
		}
		return value
	}

	return s.sourceIDFrom(link)
}

// sourceIDFrom применяет source_id_pattern: первая группа, иначе всё совпадение
func (s *Scraper) sourceIDFrom(value string) string {
	if s.cfg.sourceIDRe == nil || value == "" {
		return ""
	}
	m := s.cfg.sourceIDRe.FindStringSubmatch(value)
	switch {
	case m == nil:
		return ""
	case len(m) > 1:
		return m[1]
	default:
		return m[0]
	}
}
