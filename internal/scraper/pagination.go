package scraper

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"jobboard-scraper/internal/dom"
	"jobboard-scraper/internal/normalize"
)

// nextURL вычисляет ссылку на следующую страницу; "" — следующей нет
func (s *Scraper) nextURL(root dom.Node, pageURL string) (string, error) {
	pg := s.cfg.Pagination

	switch pg.Strategy {
	case PaginationOffset:
		return OffsetURL(pageURL, pg.OffsetParam, pg.PageSize)
	case PaginationNextControl:
		return nextFromControl(root, pg.NextSelectors, pageURL), nil
	}

	return "", fmt.Errorf("unknown pagination strategy: %s", pg.Strategy)
}

func nextFromControl(root dom.Node, candidates []string, pageURL string) string {
	control := ResolveAttr(root, candidates, "href")
	if control.Node == nil || isDisabled(control.Node) || !control.Present() {
		return ""
	}
	return normalize.Absolute(control.Value, pageURL)
}

func isDisabled(node dom.Node) bool {
	if _, ok := readAttr(node, "disabled"); ok {
		return true
	}
	if v, ok := readAttr(node, "aria-disabled"); ok && strings.EqualFold(strings.TrimSpace(v), "true") {
		return true
	}
	if class, ok := readAttr(node, "class"); ok {
		for _, c := range strings.Fields(class) {
			if strings.Contains(strings.ToLower(c), "disabled") {
				return true
			}
		}
	}
	return false
}

// OffsetURL прибавляет pageSize к параметру param (по умолчанию 0)
// в копии URL. Порядок остальных параметров сохраняется.
func OffsetURL(pageURL, param string, pageSize int) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid page URL: %w", err)
	}

	var parts []string
	if u.RawQuery != "" {
		parts = strings.Split(u.RawQuery, "&")
	}

	found := false
	for i, part := range parts {
		rawKey, rawValue, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil || key != param {
			continue
		}

		current := 0
		if value, err := url.QueryUnescape(rawValue); err == nil {
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				current = n
			}
		}

		parts[i] = rawKey + "=" + strconv.Itoa(current+pageSize)
		found = true
		break
	}

	if !found {
		parts = append(parts, url.QueryEscape(param)+"="+strconv.Itoa(pageSize))
	}

	next := *u
	next.RawQuery = strings.Join(parts, "&")
	return next.String(), nil
}
