package storage

import (
	"context"
	"fmt"
	"sync"

	"jobboard-scraper/internal/job"
)

type storedJob struct {
	record   job.Record
	checksum string
}

// MemoryRepository — хранилище в памяти для пробных запусков и тестов
type MemoryRepository struct {
	mu     sync.Mutex
	jobs   []storedJob
	bySrc  map[string]int
	closed bool
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{bySrc: make(map[string]int)}
}

func sourceKey(source job.Source, sourceID string) string {
	return string(source) + "|" + sourceID
}

// UpsertJob сохраняет копию записи
func (r *MemoryRepository) UpsertJob(ctx context.Context, rec *job.Record, checksum string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if rec == nil {
		return false, fmt.Errorf("record is nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false, fmt.Errorf("repository is closed")
	}

	stored := storedJob{record: *rec, checksum: checksum}
	stored.record.Requirements = append([]string{}, rec.Requirements...)

	if rec.SourceID == "" {
		r.jobs = append(r.jobs, stored)
		return true, nil
	}

	key := sourceKey(rec.Source, rec.SourceID)
	if idx, ok := r.bySrc[key]; ok {
		r.jobs[idx] = stored
		return false, nil
	}

	r.bySrc[key] = len(r.jobs)
	r.jobs = append(r.jobs, stored)
	return true, nil
}

func (r *MemoryRepository) ExistsBySourceID(ctx context.Context, source job.Source, sourceID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.bySrc[sourceKey(source, sourceID)]
	return ok, nil
}

// Jobs возвращает копии сохранённых записей в порядке вставки
func (r *MemoryRepository) Jobs() []job.Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]job.Record, 0, len(r.jobs))
	for _, s := range r.jobs {
		out = append(out, s.record)
	}
	return out
}

// Checksum возвращает сохранённый хеш вакансии площадки
func (r *MemoryRepository) Checksum(source job.Source, sourceID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.bySrc[sourceKey(source, sourceID)]
	if !ok {
		return "", false
	}
	return r.jobs[idx].checksum, true
}

func (r *MemoryRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}
