package storage

import (
	"context"

	"jobboard-scraper/internal/job"
)

// Repository интерфейс нижестоящего хранилища вакансий.
// Уникальность по (source, sourceId) обеспечивает хранилище, а не экстрактор.
type Repository interface {
	// UpsertJob сохраняет или обновляет вакансию, возвращает isNew для вставленной строки.
	// Запись с пустым sourceId всегда вставляется.
	UpsertJob(ctx context.Context, rec *job.Record, checksum string) (isNew bool, err error)

	// ExistsBySourceID проверяет наличие вакансии площадки по её идентификатору
	ExistsBySourceID(ctx context.Context, source job.Source, sourceID string) (bool, error)

	Close() error
}
