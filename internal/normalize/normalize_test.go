package normalize

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncatePreview(t *testing.T) {
	normalizer := NewNormalizer(Options{MaxPreviewChars: 50})

	input := "We are looking for a backend engineer who enjoys distributed systems and Go"
	result := normalizer.TruncatePreview(input)

	if utf8.RuneCountInString(result) > 50 {
		t.Errorf("TruncatePreview result too long: %d > 50", utf8.RuneCountInString(result))
	}

	if !strings.HasSuffix(result, "…") {
		t.Errorf("TruncatePreview should end with …")
	}

	short := "Short text"
	if got := normalizer.TruncatePreview(short); got != short {
		t.Errorf("TruncatePreview(%q) = %q, want unchanged", short, got)
	}
}

func TestCleanHTML(t *testing.T) {
	normalizer := NewNormalizer(Options{
		TrimNBSP:       true,
		CollapseSpaces: true,
		StripBlocks:    []string{"Similar jobs"},
	})

	html := `
		<article>
			<p>Text&nbsp;&nbsp;&nbsp;with&nbsp;NBSP</p>
			<script>alert('xss')</script>
			<p>More   text    with spaces</p>
			<section><h3>Similar jobs</h3><p>Other vacancy</p></section>
		</article>
	`

	result := normalizer.CleanHTML(html)

	if strings.Contains(result, "script") || strings.Contains(result, "alert") {
		t.Errorf("Script tag not removed")
	}

	if strings.Contains(result, " ") {
		t.Errorf("NBSP not replaced")
	}

	if strings.Contains(result, "   ") {
		t.Errorf("Multiple spaces not collapsed")
	}

	if strings.Contains(result, "Other vacancy") {
		t.Errorf("Strip block not removed: %q", result)
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Senior\n\t Go   Engineer  ", "Senior Go Engineer"},
		{"Acme Ltd", "Acme Ltd"},
		{"", ""},
		{"Café", "Café"},
	}

	for _, tt := range tests {
		if result := Text(tt.input); result != tt.expected {
			t.Errorf("Text(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestFirstLine(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Go Developer\nPromoted", "Go Developer"},
		{"\n   Go Developer\n  New\n", "Go Developer"},
		{"Single line", "Single line"},
	}

	for _, tt := range tests {
		if result := FirstLine(tt.input); result != tt.expected {
			t.Errorf("FirstLine(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestAbsolute(t *testing.T) {
	tests := []struct {
		ref      string
		base     string
		expected string
	}{
		{"/job/123#apply", "https://www.seek.co.nz", "https://www.seek.co.nz/job/123"},
		{"job/5", "https://nz.indeed.com/jobs?q=go", "https://nz.indeed.com/job/5"},
		{"https://example.com/a", "https://other.com", "https://example.com/a"},
		{"/relative", "", "/relative"},
		{"", "https://example.com", ""},
	}

	for _, tt := range tests {
		if result := Absolute(tt.ref, tt.base); result != tt.expected {
			t.Errorf("Absolute(%q, %q) = %q, want %q", tt.ref, tt.base, result, tt.expected)
		}
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://example.com/page#anchor", "https://example.com/page"},
		{"  https://example.com  ", "https://example.com"},
	}

	for _, tt := range tests {
		if result := NormalizeURL(tt.input); result != tt.expected {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}

	if got := StripQuery("https://www.linkedin.com/jobs/view/1/?refId=abc"); got != "https://www.linkedin.com/jobs/view/1/" {
		t.Errorf("StripQuery = %q", got)
	}
	if got := Origin("https://www.seek.co.nz/jobs?page=2"); got != "https://www.seek.co.nz" {
		t.Errorf("Origin = %q", got)
	}
}
