package job

import (
	"strings"
	"time"
)

// Status — статус отклика по вакансии
type Status string

const (
	StatusUnapplied    Status = "unapplied"
	StatusApplied      Status = "applied"
	StatusInterviewing Status = "interviewing"
	StatusOffered      Status = "offered"
	StatusRejected     Status = "rejected"
	StatusArchived     Status = "archived"
)

// Valid проверяет, что статус из известного набора
func (s Status) Valid() bool {
	switch s {
	case StatusUnapplied, StatusApplied, StatusInterviewing, StatusOffered, StatusRejected, StatusArchived:
		return true
	}
	return false
}

// Source — идентификатор площадки (seek, linkedin, indeed, ...)
type Source string

// Record — каноническая запись вакансии, к которой приводят все адаптеры
type Record struct {
	Title        string     `json:"title"`
	Company      string     `json:"company"`
	Location     string     `json:"location"`
	Description  string     `json:"description"`
	Salary       string     `json:"salary"`
	JobType      string     `json:"jobType"`
	Notes        string     `json:"notes"`
	Requirements []string   `json:"requirements"`
	Status       Status     `json:"status"`
	Source       Source     `json:"source"`
	SourceID     string     `json:"sourceId"`
	SourceURL    string     `json:"sourceUrl"`
	Platform     string     `json:"platform"`
	PostedDate   string     `json:"postedDate,omitempty"`
	PostedAt     *time.Time `json:"postedAt,omitempty"`
	LogoURL      string     `json:"logoUrl,omitempty"`
	AppliedDate  *time.Time `json:"appliedDate,omitempty"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// New создаёт пустую запись площадки с дефолтами и временными метками
func New(source Source, platform string, now time.Time) *Record {
	return &Record{
		Requirements: []string{},
		Status:       StatusUnapplied,
		Source:       source,
		Platform:     platform,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Accepted — запись допустима только с непустыми title и company
func (r *Record) Accepted() bool {
	return strings.TrimSpace(r.Title) != "" && strings.TrimSpace(r.Company) != ""
}

// Fingerprint — ключ дедупликации внутри одного прохода
type Fingerprint struct {
	Title   string
	Company string
}

func (r *Record) Fingerprint() Fingerprint {
	return Fingerprint{Title: r.Title, Company: r.Company}
}
