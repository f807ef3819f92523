package scraper

import (
	"fmt"
	"regexp"
	"strings"

	"jobboard-scraper/internal/job"
)

// Стратегии вычисления следующей страницы
const (
	PaginationNextControl = "next_control"
	PaginationOffset      = "offset"
)

// FieldSelectors — списки кандидатов-селекторов для полей карточки
type FieldSelectors struct {
	Title       []string `yaml:"title"`
	Company     []string `yaml:"company"`
	Location    []string `yaml:"location"`
	Salary      []string `yaml:"salary"`
	Metadata    []string `yaml:"metadata"`
	Description []string `yaml:"description"`
	PostedDate  []string `yaml:"posted_date"`
	Logo        []string `yaml:"logo"`
	Link        []string `yaml:"link"`
}

// DetailSelectors — плоская карта полей страницы вакансии
type DetailSelectors struct {
	Title        []string `yaml:"title"`
	Company      []string `yaml:"company"`
	Location     []string `yaml:"location"`
	Salary       []string `yaml:"salary"`
	JobType      []string `yaml:"job_type"`
	Description  []string `yaml:"description"`
	PostedDate   []string `yaml:"posted_date"`
	Requirements []string `yaml:"requirements"`
}

type PaginationConfig struct {
	Strategy      string   `yaml:"strategy"`
	NextSelectors []string `yaml:"next_selectors"`
	OffsetParam   string   `yaml:"offset_param"`
	PageSize      int      `yaml:"page_size"`
}

// AdapterConfig — всё, что отличает одну площадку от другой.
// Движок один, площадка задаётся только конфигурацией.
type AdapterConfig struct {
	Source       job.Source       `yaml:"source"`
	Label        string           `yaml:"label"`
	Origin       string           `yaml:"origin"`
	MatchPattern string           `yaml:"match_pattern"`
	LoginWall    []string         `yaml:"login_wall"`
	Cards        []string         `yaml:"cards"`
	Fields       FieldSelectors   `yaml:"fields"`
	Detail       DetailSelectors  `yaml:"detail"`
	Pagination   PaginationConfig `yaml:"pagination"`

	Dedup           bool     `yaml:"dedup"`
	TitleFirstLine  bool     `yaml:"title_first_line"`
	StripLinkQuery  bool     `yaml:"strip_link_query"`
	SourceIDAttrs   []string `yaml:"source_id_attrs"`
	SourceIDPattern string   `yaml:"source_id_pattern"`

	matcher    *regexp.Regexp
	sourceIDRe *regexp.Regexp
}

// Validate проверяет минимальный набор полей
func (c *AdapterConfig) Validate() error {
	if strings.TrimSpace(string(c.Source)) == "" {
		return fmt.Errorf("source is required")
	}
	if c.MatchPattern == "" {
		return fmt.Errorf("%s: match_pattern is required", c.Source)
	}
	if len(c.Cards) == 0 {
		return fmt.Errorf("%s: cards is required", c.Source)
	}
	if len(c.Fields.Title) == 0 {
		return fmt.Errorf("%s: fields.title is required", c.Source)
	}
	if len(c.Fields.Company) == 0 {
		return fmt.Errorf("%s: fields.company is required", c.Source)
	}

	switch c.Pagination.Strategy {
	case PaginationNextControl:
		if len(c.Pagination.NextSelectors) == 0 {
			return fmt.Errorf("%s: pagination.next_selectors is required for strategy %q", c.Source, PaginationNextControl)
		}
	case PaginationOffset:
		if c.Pagination.OffsetParam == "" {
			return fmt.Errorf("%s: pagination.offset_param is required for strategy %q", c.Source, PaginationOffset)
		}
		if c.Pagination.PageSize <= 0 {
			return fmt.Errorf("%s: pagination.page_size must be > 0", c.Source)
		}
	default:
		return fmt.Errorf("%s: pagination.strategy must be '%s' or '%s'", c.Source, PaginationNextControl, PaginationOffset)
	}

	return nil
}

// Compile валидирует конфиг и компилирует регулярные выражения
func (c *AdapterConfig) Compile() error {
	if err := c.Validate(); err != nil {
		return err
	}

	matcher, err := regexp.Compile(c.MatchPattern)
	if err != nil {
		return fmt.Errorf("%s: invalid match_pattern: %w", c.Source, err)
	}
	c.matcher = matcher

	c.sourceIDRe = nil
	if c.SourceIDPattern != "" {
		re, err := regexp.Compile(c.SourceIDPattern)
		if err != nil {
			return fmt.Errorf("%s: invalid source_id_pattern: %w", c.Source, err)
		}
		c.sourceIDRe = re
	}

	if c.Label == "" {
		c.Label = string(c.Source)
	}

	return nil
}

// Matches — предикат площадки по полному URL
func (c *AdapterConfig) Matches(url string) bool {
	return c.matcher != nil && c.matcher.MatchString(url)
}
