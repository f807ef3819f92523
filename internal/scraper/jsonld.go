package scraper

import (
	"encoding/json"
	"fmt"
	"strings"

	"jobboard-scraper/internal/dom"
)

// jobPosting — поля schema.org JobPosting, которые умеем переносить в запись
type jobPosting struct {
	Title          string
	Company        string
	Location       string
	Description    string
	DatePosted     string
	EmploymentType string
	Identifier     string
	URL            string
}

// findJobPosting ищет первый JobPosting среди script[type="application/ld+json"]
func findJobPosting(root dom.Node) (*jobPosting, bool) {
	scripts, ok := findAll(root, `script[type="application/ld+json"]`)
	if !ok {
		return nil, false
	}

	for _, script := range scripts {
		raw, ok := readText(script)
		if !ok {
			continue
		}
		if postings := parseJobPostings(raw); len(postings) > 0 {
			return &postings[0], true
		}
	}
	return nil, false
}

func parseJobPostings(raw string) []jobPosting {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var payload any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil
	}
	var postings []jobPosting
	collectJobPostings(payload, &postings)
	return postings
}

func collectJobPostings(payload any, out *[]jobPosting) {
	switch t := payload.(type) {
	case map[string]any:
		if posting := postingFromMap(t); posting != nil {
			*out = append(*out, *posting)
		}
		if graph, ok := t["@graph"].([]any); ok {
			for _, item := range graph {
				collectJobPostings(item, out)
			}
		}
	case []any:
		for _, item := range t {
			collectJobPostings(item, out)
		}
	}
}

func postingFromMap(payload map[string]any) *jobPosting {
	if !isJobPostingType(payload["@type"]) {
		return nil
	}

	posting := &jobPosting{
		Title:          stringField(payload["title"]),
		Company:        orgName(payload["hiringOrganization"]),
		Location:       locationField(payload["jobLocation"]),
		Description:    stringField(payload["description"]),
		DatePosted:     stringField(payload["datePosted"]),
		EmploymentType: listField(payload["employmentType"]),
		Identifier:     identifierField(payload["identifier"]),
		URL:            stringField(payload["url"]),
	}

	if posting.Title == "" && posting.Description == "" {
		return nil
	}
	return posting
}

func isJobPostingType(t any) bool {
	switch v := t.(type) {
	case string:
		return v == "JobPosting"
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "JobPosting" {
				return true
			}
		}
	}
	return false
}

func stringField(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		return fmt.Sprintf("%.0f", t)
	case map[string]any:
		if val, ok := t["@value"]; ok {
			return stringField(val)
		}
	}
	return ""
}

func listField(v any) string {
	if items, ok := v.([]any); ok {
		for _, item := range items {
			if s := stringField(item); s != "" {
				return s
			}
		}
		return ""
	}
	return stringField(v)
}

func orgName(v any) string {
	if name := stringField(v); name != "" {
		return name
	}
	if org, ok := v.(map[string]any); ok {
		return stringField(org["name"])
	}
	return ""
}

func identifierField(v any) string {
	if id := stringField(v); id != "" {
		return id
	}
	if m, ok := v.(map[string]any); ok {
		return stringField(m["value"])
	}
	return ""
}

func locationField(v any) string {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if loc := locationField(item); loc != "" {
				return loc
			}
		}
	case map[string]any:
		if address, ok := t["address"]; ok {
			if s := stringField(address); s != "" {
				return s
			}
			if addr, ok := address.(map[string]any); ok {
				var parts []string
				for _, key := range []string{"addressLocality", "addressRegion", "addressCountry"} {
					if s := orgName(addr[key]); s != "" {
						parts = append(parts, s)
					}
				}
				return strings.Join(parts, ", ")
			}
		}
		return stringField(t["name"])
	case string:
		return strings.TrimSpace(t)
	}
	return ""
}
