package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// Префиксы, которые площадки ставят перед датой
	datePrefixes = []string{"posted on", "posted", "listed on", "listed", "active", "reposted", "updated", "on"}

	todayWords     = []string{"just posted", "just now", "today"}
	yesterdayWords = []string{"yesterday"}

	// "3d ago", "30+ days ago", "5 hours ago", "2mo ago"
	relativeRe = regexp.MustCompile(`(\d+)\+?\s*(minutes?|mins?|months?|mos?|m|hours?|hrs?|h|days?|d|weeks?|wks?|w|years?|yrs?|y)\b`)

	absoluteLayouts = []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02",
		"2 Jan 2006",
		"2 January 2006",
		"Jan 2, 2006",
		"January 2, 2006",
		"Jan 2 2006",
		"02/01/2006",
	}
)

type DateParser struct {
	now func() time.Time
}

func NewDateParser(now func() time.Time) *DateParser {
	if now == nil {
		now = time.Now
	}
	return &DateParser{now: now}
}

// Parse разбирает дату публикации ("3d ago", "Posted today", "2 Jan 2025")
// относительно часов парсера. Дни и более крупные единицы округляются до полуночи UTC.
func (dp *DateParser) Parse(dateStr string) (time.Time, error) {
	raw := strings.TrimSpace(dateStr)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date string")
	}

	lower := strings.ToLower(raw)
	for _, prefix := range datePrefixes {
		if strings.HasPrefix(lower, prefix+" ") || strings.HasPrefix(lower, prefix+":") {
			raw = strings.TrimLeft(raw[len(prefix):], ": ")
			lower = strings.ToLower(raw)
			break
		}
	}

	now := dp.now().UTC()
	today := now.Truncate(24 * time.Hour)

	for _, word := range todayWords {
		if strings.Contains(lower, word) {
			return today, nil
		}
	}
	for _, word := range yesterdayWords {
		if strings.Contains(lower, word) {
			return today.AddDate(0, 0, -1), nil
		}
	}

	if m := relativeRe.FindStringSubmatch(lower); m != nil {
		return dp.parseRelative(now, m[1], m[2])
	}

	return dp.parseAbsolute(raw)
}

func (dp *DateParser) parseRelative(now time.Time, amount, unit string) (time.Time, error) {
	n, err := strconv.Atoi(amount)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid amount: %q: %w", amount, err)
	}

	today := now.Truncate(24 * time.Hour)

	// "mo" проверяется раньше "m": m — это минуты
	switch {
	case strings.HasPrefix(unit, "mo"):
		return today.AddDate(0, -n, 0), nil
	case strings.HasPrefix(unit, "m"):
		return now.Add(-time.Duration(n) * time.Minute), nil
	case strings.HasPrefix(unit, "h"):
		return now.Add(-time.Duration(n) * time.Hour), nil
	case strings.HasPrefix(unit, "d"):
		return today.AddDate(0, 0, -n), nil
	case strings.HasPrefix(unit, "w"):
		return today.AddDate(0, 0, -7*n), nil
	case strings.HasPrefix(unit, "y"):
		return today.AddDate(-n, 0, 0), nil
	}

	return time.Time{}, fmt.Errorf("unknown unit: %s", unit)
}

func (dp *DateParser) parseAbsolute(dateStr string) (time.Time, error) {
	// Layout-ы чувствительны к регистру месяцев
	candidate := titleMonths(dateStr)

	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, candidate); err == nil {
			return t.UTC(), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

func titleMonths(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 && w[0] >= 'a' && w[0] <= 'z' {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
