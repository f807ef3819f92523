package scraper

import (
	"regexp"
	"strings"
)

// Валюта или период оплаты
var salaryPattern = regexp.MustCompile(`(?i)[$€£¥₹]|\b(?:per|annum|year|yearly|month|monthly|hour|hourly|week|weekly)\b`)

// Порядок важен: contractor раньше contract
var jobTypePattern = regexp.MustCompile(`(?i)\b(full[- ]time|part[- ]time|contractor|contract|temporary|internship|casual)\b`)

var jobTypeCanonical = map[string]string{
	"full-time":  "Full-time",
	"part-time":  "Part-time",
	"contractor": "Contractor",
	"contract":   "Contract",
	"temporary":  "Temporary",
	"internship": "Internship",
	"casual":     "Casual",
}

// DetectSalary возвращает первый фрагмент, похожий на зарплату
func DetectSalary(fragments []string) (string, bool) {
	for _, fragment := range fragments {
		if salaryPattern.MatchString(fragment) {
			return fragment, true
		}
	}
	return "", false
}

// DetectJobType возвращает каноническое написание первого найденного типа занятости
func DetectJobType(fragments []string) (string, bool) {
	for _, fragment := range fragments {
		m := jobTypePattern.FindStringSubmatch(fragment)
		if m == nil {
			continue
		}
		key := strings.ReplaceAll(strings.ToLower(m[1]), " ", "-")
		return jobTypeCanonical[key], true
	}
	return "", false
}
