package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"jobboard-scraper/internal/app"
	"jobboard-scraper/internal/artifact"
	"jobboard-scraper/internal/config"
	"jobboard-scraper/internal/fetcher"
	"jobboard-scraper/internal/host"
	"jobboard-scraper/internal/normalize"
	"jobboard-scraper/internal/observability"
	"jobboard-scraper/internal/platforms"
	"jobboard-scraper/internal/scraper"
	"jobboard-scraper/internal/storage"
	"jobboard-scraper/internal/storage/mssql"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run выполняет один запуск и возвращает код выхода; отложенные Close отрабатывают до os.Exit
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("jobboard-scraper", flag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "configs/config.yaml", "path to config file")
	pageURL := flags.String("url", "", "job board page to scrape")
	detail := flags.Bool("detail", false, "treat url as a single job posting")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *pageURL == "" {
		fmt.Fprintln(stderr, "Missing -url")
		return 2
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger := observability.NewLogger(observability.Options{
		LogPath:    cfg.Observability.LogPath,
		LogLevel:   cfg.Observability.LogLevel,
		MaxSizeMB:  cfg.Observability.LogMaxSizeMB,
		MaxBackups: cfg.Observability.LogMaxBackups,
		MaxAgeDays: cfg.Observability.LogMaxAgeDays,
		Stdout:     stderr,
	})
	defer func() {
		if err := logger.Close(); err != nil {
			fmt.Fprintf(stderr, "Warning: failed to close logger: %v\n", err)
		}
	}()

	ctx, stop := app.GracefulShutdown(logger, cfg.GetShutdownTimeout())
	defer stop()

	// Площадки: встроенные + YAML из конфига
	registry, err := platforms.NewRegistry(logger, cfg.AdapterPaths(*configPath),
		scraper.WithReadyTimeout(cfg.GetReadyTimeout()),
		scraper.WithNormalizer(normalize.NewNormalizer(cfg.Normalize)),
	)
	if err != nil {
		logger.Error("Failed to build adapter registry", "error", err.Error())
		return 1
	}

	var repo storage.Repository
	if cfg.Storage.Enabled {
		dbRepo, err := mssql.NewRepository(cfg.Storage.DSN, cfg.GetCommandTimeout(), logger)
		if err != nil {
			logger.Error("Failed to connect to storage", "error", err.Error())
			return 1
		}
		repo = dbRepo
	} else {
		repo = storage.NewMemoryRepository()
	}
	defer func() {
		if err := repo.Close(); err != nil {
			logger.Error("Failed to close storage", "error", err.Error())
		}
	}()

	var sink artifact.Sink
	if cfg.Observability.ArtifactDir != "" {
		fileSink, err := artifact.NewFileSink(cfg.Observability.ArtifactDir)
		if err != nil {
			logger.Error("Failed to prepare artifact dir", "error", err.Error())
			return 1
		}
		sink = fileSink
	}

	var opener host.Opener
	switch cfg.HostMode() {
	case config.HostHTTP:
		opener = fetcher.NewFetcher(cfg, logger)
	default:
		browser, err := host.LaunchBrowser(host.BrowserOptions{
			ChromePath:  cfg.Rod.ChromePath,
			Headless:    cfg.Rod.Headless,
			PageTimeout: cfg.GetRodPageTimeout(),
		})
		if err != nil {
			logger.Error("Failed to launch browser", "error", err.Error())
			return 1
		}
		defer func() {
			if err := browser.Close(); err != nil {
				logger.Error("Failed to close browser", "error", err.Error())
			}
		}()
		opener = browser
	}

	orchestrator := app.NewOrchestrator(cfg, logger, opener, registry, repo, sink)

	var (
		report *app.RunReport
		output any
	)
	if *detail {
		report, err = orchestrator.RunDetail(ctx, *pageURL)
		if report != nil {
			output = report.Job
		}
	} else {
		report, err = orchestrator.RunList(ctx, *pageURL)
		if report != nil {
			output = report.Result
		}
	}
	if err != nil {
		logger.Error("Run failed", "url", *pageURL, "error", err.Error())
		return 1
	}

	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		logger.Error("Failed to write result", "error", err.Error())
		return 1
	}

	logger.Info("Run finished",
		"mode", report.Mode,
		"source", report.Source,
		"total_jobs", report.TotalJobs,
		"new_jobs", report.NewJobs,
		"artifact", report.ArtifactPath,
	)
	return 0
}
