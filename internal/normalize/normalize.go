package normalize

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

var spaceRe = regexp.MustCompile(`\s+`)

// Options — настройки очистки текста (секция normalize в конфиге)
type Options struct {
	StripBlocks     []string `yaml:"strip_blocks"`
	TrimNBSP        bool     `yaml:"trim_nbsp"`
	CollapseSpaces  bool     `yaml:"collapse_spaces"`
	MaxPreviewChars int      `yaml:"max_preview_chars"`
}

type Normalizer struct {
	opts Options
}

func NewNormalizer(opts Options) *Normalizer {
	return &Normalizer{opts: opts}
}

// Text схлопывает пробельные последовательности (включая NBSP) и обрезает края.
// Результат приводится к NFC, чтобы одинаковые строки с разных площадок совпадали побайтно.
func Text(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = norm.NFC.String(s)
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// FirstLine оставляет только первую строку (бейджи вроде "New" часто идут второй строкой)
func FirstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexAny(s, "\r\n"); idx > -1 {
		return s[:idx]
	}
	return s
}

// CleanHTML парсит HTML и извлекает текст
func (n *Normalizer) CleanHTML(html string) string {
	html = n.stripBlocks(html)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	// Удаляем script, style, nav
	doc.Find("script, style, noscript, nav, footer, form, button").Remove()

	text := doc.Text()

	if n.opts.TrimNBSP {
		text = strings.ReplaceAll(text, " ", " ")
	}

	if n.opts.CollapseSpaces {
		text = spaceRe.ReplaceAllString(text, " ")
	}

	return strings.TrimSpace(text)
}

// stripBlocks удаляет блоки типа "Similar jobs", "Apply now" по заголовку
func (n *Normalizer) stripBlocks(html string) string {
	result := html

	for _, blockName := range n.opts.StripBlocks {
		name := regexp.QuoteMeta(blockName)
		patterns := []string{
			`<div[^>]*>\s*<h\d[^>]*>` + name + `</h\d>[\s\S]*?</div>`,
			`<section[^>]*>\s*<h\d[^>]*>` + name + `</h\d>[\s\S]*?</section>`,
			`<aside[^>]*>[^<]*` + name + `[\s\S]*?</aside>`,
		}

		for _, pattern := range patterns {
			re := regexp.MustCompile(`(?i)` + pattern)
			result = re.ReplaceAllString(result, "")
		}
	}

	return result
}

// TruncatePreview обрезает текст до MaxPreviewChars (в рунах)
func (n *Normalizer) TruncatePreview(text string) string {
	limit := n.opts.MaxPreviewChars
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}

	truncated := string(runes[:limit-1])
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > 0 {
		truncated = truncated[:lastSpace]
	}

	return truncated + "…"
}

// NormalizeURL убирает якорь и пробелы
func NormalizeURL(urlStr string) string {
	urlStr = strings.TrimSpace(urlStr)
	if idx := strings.Index(urlStr, "#"); idx > -1 {
		urlStr = urlStr[:idx]
	}
	return urlStr
}

// StripQuery убирает query-параметры (трекинговые refId, trackingId и т.п.)
func StripQuery(urlStr string) string {
	if idx := strings.Index(urlStr, "?"); idx > -1 {
		return urlStr[:idx]
	}
	return urlStr
}

// Absolute делает ссылку абсолютной относительно base.
// Если base пустой или невалидный, ссылка возвращается как есть.
func Absolute(ref, base string) string {
	ref = NormalizeURL(ref)
	if ref == "" {
		return ""
	}

	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	if refURL.IsAbs() {
		return refURL.String()
	}

	baseURL, err := url.Parse(base)
	if err != nil || base == "" || !baseURL.IsAbs() {
		return ref
	}

	return baseURL.ResolveReference(refURL).String()
}

// Origin возвращает scheme://host для URL или пустую строку
func Origin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}
