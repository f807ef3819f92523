package mssql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/microsoft/go-mssqldb"

	"jobboard-scraper/internal/job"
	"jobboard-scraper/internal/observability"
)

const upsertJobQuery = `
	MERGE INTO TblJobs AS target
	USING (SELECT @Source AS Source, @SourceID AS SourceID) AS source
	ON target.[Source] = source.Source AND target.[SourceID] = source.SourceID
	WHEN MATCHED AND target.[CheckSum] <> @CheckSum THEN
		UPDATE SET
			[Title] = @Title,
			[Company] = @Company,
			[Location] = @Location,
			[Description] = @Description,
			[Salary] = @Salary,
			[JobType] = @JobType,
			[Requirements] = @Requirements,
			[SourceURL] = @SourceURL,
			[Platform] = @Platform,
			[PostedDate] = @PostedDate,
			[PostedAt] = @PostedAt,
			[LogoURL] = @LogoURL,
			[CheckSum] = @CheckSum,
			[UpdatedAt] = @UpdatedAt
	WHEN NOT MATCHED THEN
		INSERT ([Source], [SourceID], [Title], [Company], [Location], [Description], [Salary], [JobType],
			[Notes], [Requirements], [Status], [SourceURL], [Platform], [PostedDate], [PostedAt], [LogoURL],
			[CheckSum], [CreatedAt], [UpdatedAt])
		VALUES (@Source, @SourceID, @Title, @Company, @Location, @Description, @Salary, @JobType,
			@Notes, @Requirements, @Status, @SourceURL, @Platform, @PostedDate, @PostedAt, @LogoURL,
			@CheckSum, @CreatedAt, @UpdatedAt)
	OUTPUT $action;
`

const insertJobQuery = `
	INSERT INTO TblJobs ([Source], [SourceID], [Title], [Company], [Location], [Description], [Salary], [JobType],
		[Notes], [Requirements], [Status], [SourceURL], [Platform], [PostedDate], [PostedAt], [LogoURL],
		[CheckSum], [CreatedAt], [UpdatedAt])
	VALUES (@Source, @SourceID, @Title, @Company, @Location, @Description, @Salary, @JobType,
		@Notes, @Requirements, @Status, @SourceURL, @Platform, @PostedDate, @PostedAt, @LogoURL,
		@CheckSum, @CreatedAt, @UpdatedAt)
`

type Repository struct {
	db             *sql.DB
	commandTimeout time.Duration
	logger         *observability.Logger
}

func NewRepository(dsn string, commandTimeout time.Duration, logger *observability.Logger) (*Repository, error) {
	db, err := sql.Open("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Тестируем соединение
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if logger == nil {
		logger = observability.NewNopLogger()
	}

	return &Repository{
		db:             db,
		commandTimeout: commandTimeout,
		logger:         logger,
	}, nil
}

// UpsertJob сохраняет или обновляет вакансию по (Source, SourceID).
// Без SourceID запись всегда вставляется.
func (r *Repository) UpsertJob(ctx context.Context, rec *job.Record, checksum string) (bool, error) {
	if rec == nil {
		return false, fmt.Errorf("record is nil")
	}

	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	args, err := jobParams(rec, checksum)
	if err != nil {
		return false, err
	}

	if rec.SourceID == "" {
		if _, err := r.db.ExecContext(ctx, insertJobQuery, args...); err != nil {
			return false, fmt.Errorf("failed to execute insert: %w", err)
		}
		return true, nil
	}

	stmt, err := r.db.PrepareContext(ctx, upsertJobQuery)
	if err != nil {
		return false, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.logger.Error("Failed to close statement", "error", err.Error())
		}
	}()

	// MERGE возвращает INSERT/UPDATE, либо ни одной строки, если CheckSum не изменился
	var action string
	err = stmt.QueryRowContext(ctx, args...).Scan(&action)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to execute upsert: %w", err)
	}

	if action == "UPDATE" {
		r.logger.Debug("Job updated",
			"source", string(rec.Source),
			"source_id", rec.SourceID,
		)
	}

	return action == "INSERT", nil
}

// ExistsBySourceID проверяет наличие вакансии по идентификатору площадки
func (r *Repository) ExistsBySourceID(ctx context.Context, source job.Source, sourceID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.commandTimeout)
	defer cancel()

	query := `SELECT COUNT(*) FROM TblJobs WHERE [Source] = @Source AND [SourceID] = @SourceID`

	stmt, err := r.db.PrepareContext(ctx, query)
	if err != nil {
		return false, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			r.logger.Error("Failed to close statement", "error", err.Error())
		}
	}()

	var count int
	err = stmt.QueryRowContext(ctx,
		sql.Named("Source", string(source)),
		sql.Named("SourceID", sourceID),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query database: %w", err)
	}

	return count > 0, nil
}

// Close закрывает соединение с БД
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// jobParams собирает именованные параметры запросов; требования хранятся как JSON массив
func jobParams(rec *job.Record, checksum string) ([]any, error) {
	requirements := rec.Requirements
	if requirements == nil {
		requirements = []string{}
	}
	reqJSON, err := json.Marshal(requirements)
	if err != nil {
		return nil, fmt.Errorf("failed to encode requirements: %w", err)
	}

	return []any{
		sql.Named("Source", string(rec.Source)),
		sql.Named("SourceID", rec.SourceID),
		sql.Named("Title", rec.Title),
		sql.Named("Company", rec.Company),
		sql.Named("Location", rec.Location),
		sql.Named("Description", rec.Description),
		sql.Named("Salary", rec.Salary),
		sql.Named("JobType", rec.JobType),
		sql.Named("Notes", rec.Notes),
		sql.Named("Requirements", string(reqJSON)),
		sql.Named("Status", string(rec.Status)),
		sql.Named("SourceURL", rec.SourceURL),
		sql.Named("Platform", rec.Platform),
		sql.Named("PostedDate", rec.PostedDate),
		sql.Named("PostedAt", nullTime(rec.PostedAt)),
		sql.Named("LogoURL", rec.LogoURL),
		sql.Named("CheckSum", checksum),
		sql.Named("CreatedAt", rec.CreatedAt),
		sql.Named("UpdatedAt", rec.UpdatedAt),
	}, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
