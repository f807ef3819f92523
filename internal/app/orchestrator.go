package app

import (
	"context"
	"fmt"

	"jobboard-scraper/internal/artifact"
	"jobboard-scraper/internal/checksum"
	"jobboard-scraper/internal/config"
	"jobboard-scraper/internal/host"
	"jobboard-scraper/internal/job"
	"jobboard-scraper/internal/normalize"
	"jobboard-scraper/internal/observability"
	"jobboard-scraper/internal/scraper"
	"jobboard-scraper/internal/storage"
)

// Режимы запуска
const (
	ModeList   = "list"
	ModeDetail = "detail"
)

type Orchestrator struct {
	cfg        *config.Config
	logger     *observability.Logger
	opener     host.Opener
	registry   *scraper.Registry
	repo       storage.Repository
	artifacts  artifact.Sink
	checksum   *checksum.Generator
	normalizer *normalize.Normalizer
}

// NewOrchestrator собирает оболочку запуска. repo и artifacts могут быть nil:
// тогда записи и журнал никуда не передаются.
func NewOrchestrator(
	cfg *config.Config,
	logger *observability.Logger,
	opener host.Opener,
	registry *scraper.Registry,
	repo storage.Repository,
	artifacts artifact.Sink,
) *Orchestrator {
	if logger == nil {
		logger = observability.NewNopLogger()
	}
	return &Orchestrator{
		cfg:        cfg,
		logger:     logger,
		opener:     opener,
		registry:   registry,
		repo:       repo,
		artifacts:  artifacts,
		checksum:   checksum.NewGenerator(),
		normalizer: normalize.NewNormalizer(cfg.Normalize),
	}
}

// RunReport — итог одного запуска
type RunReport struct {
	Mode          string `json:"mode"`
	URL           string `json:"url"`
	Source        string `json:"source"`
	TotalJobs     int    `json:"totalJobs"`
	NewJobs       int    `json:"newJobs"`
	ExistingJobs  int    `json:"existingJobs"`
	SkippedCards  int    `json:"skippedCards"`
	StoreErrors   int    `json:"storeErrors"`
	NextURL       string `json:"nextUrl,omitempty"`
	StoppedReason string `json:"stoppedReason,omitempty"`
	ArtifactPath  string `json:"artifactPath,omitempty"`

	Result *scraper.ListResult `json:"-"`
	Job    *job.Record         `json:"-"`
}

// RunList открывает одну страницу списка и выполняет один проход.
// По nextUrl не переходит.
func (o *Orchestrator) RunList(ctx context.Context, url string) (*RunReport, error) {
	scr, h, release, err := o.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer release()

	report := &RunReport{Mode: ModeList, URL: url, Source: string(scr.Source())}

	o.logger.Info("Starting list run",
		"source", report.Source,
		"url", url,
	)

	res := scr.ScrapeList(ctx, h)
	report.Result = res
	report.TotalJobs = len(res.Jobs)
	report.SkippedCards = len(res.CardErrors)
	report.NextURL = res.NextURL
	report.StoppedReason = res.Error

	for i, rec := range res.Jobs {
		o.logger.Debug("Job info",
			"source", report.Source,
			"job_num", i+1,
			"title", rec.Title,
			"company", rec.Company,
			"url", rec.SourceURL,
			"preview", o.normalizer.TruncatePreview(rec.Description),
		)
		o.store(ctx, rec, report)
	}

	report.ArtifactPath = o.exportLog(ctx, scr.Source(), res)

	o.logger.Info("List run completed",
		"source", report.Source,
		"url", url,
		"total_jobs", report.TotalJobs,
		"new_jobs", report.NewJobs,
		"skipped_cards", report.SkippedCards,
		"next_url", report.NextURL,
		"reason", report.StoppedReason,
	)

	return report, nil
}

// RunDetail открывает страницу вакансии и извлекает одну запись
func (o *Orchestrator) RunDetail(ctx context.Context, url string) (*RunReport, error) {
	scr, h, release, err := o.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer release()

	report := &RunReport{Mode: ModeDetail, URL: url, Source: string(scr.Source())}

	rec := scr.ScrapeDetail(ctx, h)
	report.Job = rec

	switch {
	case rec == nil:
		report.StoppedReason = scraper.ErrDocumentUnavailable.Error()
	case !rec.Accepted():
		report.StoppedReason = "Missing title or company"
		report.SkippedCards = 1
	default:
		report.TotalJobs = 1
		o.store(ctx, rec, report)
	}

	o.logger.Info("Detail run completed",
		"source", report.Source,
		"url", url,
		"new_jobs", report.NewJobs,
		"reason", report.StoppedReason,
	)

	return report, nil
}

func (o *Orchestrator) open(ctx context.Context, url string) (*scraper.Scraper, host.Host, func(), error) {
	scr, ok := o.registry.Match(url)
	if !ok {
		return nil, nil, nil, fmt.Errorf("no adapter matches url: %s", url)
	}

	h, release, err := o.opener.Open(ctx, url)
	if err != nil {
		o.logger.Error("Open failed",
			"source", string(scr.Source()),
			"url", url,
			"error", err.Error(),
		)
		return nil, nil, nil, fmt.Errorf("failed to open %s: %w", url, err)
	}
	if release == nil {
		release = func() {}
	}

	return scr, h, release, nil
}

// store передаёт запись в хранилище; ошибка хранилища не прерывает запуск
func (o *Orchestrator) store(ctx context.Context, rec *job.Record, report *RunReport) {
	if o.repo == nil {
		return
	}

	if o.cfg.Storage.SkipKnown && rec.SourceID != "" {
		known, err := o.repo.ExistsBySourceID(ctx, rec.Source, rec.SourceID)
		if err != nil {
			o.logger.Warn("Failed to check job existence",
				"source", string(rec.Source),
				"source_id", rec.SourceID,
				"error", err.Error(),
			)
		} else if known {
			report.ExistingJobs++
			o.logger.Debug("Job already stored, skipping",
				"source", string(rec.Source),
				"source_id", rec.SourceID,
			)
			return
		}
	}

	sum := o.checksum.GenerateContentHash(rec)
	isNew, err := o.repo.UpsertJob(ctx, rec, sum)
	if err != nil {
		report.StoreErrors++
		o.logger.Error("Failed to store job",
			"source", string(rec.Source),
			"source_id", rec.SourceID,
			"title", rec.Title,
			"error", err.Error(),
		)
		return
	}

	if isNew {
		report.NewJobs++
	} else {
		report.ExistingJobs++
	}
}

func (o *Orchestrator) exportLog(ctx context.Context, source job.Source, res *scraper.ListResult) string {
	if o.artifacts == nil || res.Log == "" {
		return ""
	}

	path, err := o.artifacts.Export(ctx, artifact.LogName(source, res.SessionID), res.Log)
	if err != nil {
		o.logger.Warn("Failed to export log artifact",
			"source", string(source),
			"session_id", res.SessionID,
			"error", err.Error(),
		)
		return ""
	}
	return path
}
