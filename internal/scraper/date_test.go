package scraper

import (
	"testing"
	"time"
)

func TestDateParser(t *testing.T) {
	now := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)
	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	parser := NewDateParser(func() time.Time { return now })

	tests := []struct {
		input    string
		expected time.Time
		wantErr  bool
	}{
		{"Just posted", today, false},
		{"Posted today", today, false},
		{"Yesterday", today.AddDate(0, 0, -1), false},
		{"3d ago", today.AddDate(0, 0, -3), false},
		{"Posted 30+ days ago", today.AddDate(0, 0, -30), false},
		{"Active 2 days ago", today.AddDate(0, 0, -2), false},
		{"5h ago", now.Add(-5 * time.Hour), false},
		{"45m ago", now.Add(-45 * time.Minute), false},
		{"1 week ago", today.AddDate(0, 0, -7), false},
		{"2 months ago", today.AddDate(0, -2, 0), false},
		{"2mo ago", today.AddDate(0, -2, 0), false},
		{"1 year ago", today.AddDate(-1, 0, 0), false},
		{"2025-01-02", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"Posted on 2 Jan 2025", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"January 2, 2025", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), false},
		{"2025-01-02T09:15:00Z", time.Date(2025, 1, 2, 9, 15, 0, 0, time.UTC), false},
		{"", time.Time{}, true},
		{"sometime soon", time.Time{}, true},
	}

	for _, tt := range tests {
		result, err := parser.Parse(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && !result.Equal(tt.expected) {
			t.Errorf("Parse(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}
