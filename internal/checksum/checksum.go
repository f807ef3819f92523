package checksum

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"jobboard-scraper/internal/job"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateContentHash генерирует SHA256 хеш содержимого вакансии
// Формула: SHA256(source|sourceId|url|title|company|location|salary|jobType|description|requirements|posted_iso)
func (g *Generator) GenerateContentHash(rec *job.Record) string {
	// Дата публикации без времени
	postedISO := ""
	if rec.PostedAt != nil {
		postedISO = rec.PostedAt.UTC().Format(time.DateOnly)
	}

	content := strings.Join([]string{
		string(rec.Source),
		rec.SourceID,
		rec.SourceURL,
		rec.Title,
		rec.Company,
		rec.Location,
		rec.Salary,
		rec.JobType,
		rec.Description,
		strings.Join(rec.Requirements, "\n"),
		postedISO,
	}, "|")

	hash := sha256.Sum256([]byte(content))

	return fmt.Sprintf("%x", hash)
}

// VerifyContentHash проверяет соответствие хеша
func (g *Generator) VerifyContentHash(expectedHash string, rec *job.Record) bool {
	return g.GenerateContentHash(rec) == expectedHash
}
