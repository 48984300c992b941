package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/cdpscan/cdpscan/app/api"
	"github.com/cdpscan/cdpscan/app/cfg"
	"github.com/cdpscan/cdpscan/app/config"
	"github.com/cdpscan/cdpscan/app/database"
	"github.com/cdpscan/cdpscan/app/export"
	"github.com/cdpscan/cdpscan/app/harvest"
	"github.com/cdpscan/cdpscan/app/scan"
	"github.com/cdpscan/cdpscan/app/sources"
	"github.com/cdpscan/cdpscan/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting cdpscan", "version", appCfg.Version)

	scanConfig, err := config.Load(appCfg.ConfigPath)
	if err != nil {
		slog.Error("Failed to load scan configuration", "error", err)
		os.Exit(1)
	}

	registry, err := scan.NewRegistry(scanConfig.Keywords.Lists(), scanConfig.Scoring)
	if err != nil {
		slog.Error("Invalid scan configuration", "error", err)
		os.Exit(1)
	}

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "migration_version", version, "dirty", dirty)

	scanRepo := database.NewScanRepository(db)
	signalRepo := database.NewSignalRepository(db)

	runner := harvest.NewRunner(
		buildSources(appCfg, scanConfig),
		scan.NewPipeline(registry),
		scan.NewAggregator(),
	)

	if appCfg.OneShot() {
		if err := runOneShot(appCfg, runner, scanRepo, signalRepo); err != nil {
			slog.Error("Scan failed", "error", err)
			os.Exit(1)
		}
		return
	}

	runServer(appCfg, scanConfig, runner, scanRepo, signalRepo)
}

// buildSources assembles the enabled source adapters. Credential-backed
// sources stay out of the set when their keys are absent.
func buildSources(appCfg *cfg.Cfg, scanConfig *config.Config) []sources.Source {
	httpClient := &http.Client{Timeout: scanConfig.Sources.GetTimeout()}
	userAgent := scanConfig.Sources.UserAgent

	srcs := []sources.Source{
		sources.NewGreenhouse(httpClient, userAgent),
		sources.NewCareers(httpClient, userAgent),
		sources.NewNewsfeed(httpClient, userAgent),
	}

	if appCfg.GoogleCSEID != "" && appCfg.GoogleAPIKey != "" {
		probes := append([]string{"customer data platform"}, scanConfig.Keywords.CDPVendors...)
		srcs = append(srcs, sources.NewGoogleCSE(httpClient, userAgent, appCfg.GoogleCSEID, appCfg.GoogleAPIKey, probes))
	} else {
		slog.Info("Google Custom Search source disabled (GOOGLE_CSE_ID / GOOGLE_API_KEY not set)")
	}

	if appCfg.SerpAPIKey != "" {
		srcs = append(srcs, sources.NewIndeed(httpClient, userAgent, appCfg.SerpAPIKey))
	} else {
		slog.Info("Indeed source disabled (SERPAPI_API_KEY not set)")
	}

	return srcs
}

// runOneShot scans the given companies, persists every run, writes the
// ranked CSV and prints a summary.
func runOneShot(appCfg *cfg.Cfg, runner *harvest.Runner,
	scanRepo database.ScanRepository, signalRepo database.SignalRepository) error {
	companies, err := companyList(appCfg)
	if err != nil {
		return err
	}
	if len(companies) == 0 {
		return fmt.Errorf("no companies to scan")
	}

	slog.Info("Starting one-shot scan", "companies", len(companies))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bar := export.NewProgressBar(len(companies), "Scanning companies")
	results := make([]scan.ScanResult, 0, len(companies))

	for _, company := range companies {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		task := tasks.NewScanCompanyTask(company, runner, scanRepo, signalRepo)
		task.Start()
		result, err := task.ExecuteWithResult(ctx)
		if err != nil {
			slog.Warn("Company scan failed", "company", company, "error", err)
			bar.Add(1)
			continue
		}

		results = append(results, result)
		bar.Add(1)
	}
	bar.Finish()

	export.PrintSummary(results)

	if err := export.WriteCSV(appCfg.Output, results); err != nil {
		return err
	}
	slog.Info("Results written", "path", appCfg.Output, "companies", len(results))

	return nil
}

func companyList(appCfg *cfg.Cfg) ([]string, error) {
	var companies []string

	for _, company := range strings.Split(appCfg.Companies, ",") {
		if company = strings.TrimSpace(company); company != "" {
			companies = append(companies, company)
		}
	}

	if appCfg.CompaniesFile != "" {
		file, err := os.Open(appCfg.CompaniesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open companies file: %w", err)
		}
		defer file.Close()

		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" && !strings.HasPrefix(line, "#") {
				companies = append(companies, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read companies file: %w", err)
		}
	}

	return companies, nil
}

func runServer(appCfg *cfg.Cfg, scanConfig *config.Config, runner *harvest.Runner,
	scanRepo database.ScanRepository, signalRepo database.SignalRepository) {
	scheduler := tasks.NewScheduler(runner, scanRepo, signalRepo)
	scheduler.Start()
	defer scheduler.Stop()
	slog.Info("Background workers started", "count", appCfg.WorkerCount)

	handler := api.NewHandler(scanConfig, scanRepo, signalRepo, scheduler)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Shutdown signal received", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
