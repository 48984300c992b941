package cfg

import (
	"cmp"
	"fmt"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Storage
	DBPath string `long:"db-path" env:"DB_PATH" default:"./cdpscan.db" description:"Path to the sqlite database file"`

	// Scan input
	Companies     string `long:"companies" env:"COMPANIES" description:"Comma-separated list of company names to scan (one-shot mode)"`
	CompaniesFile string `long:"companies-file" env:"COMPANIES_FILE" description:"File with one company name per line (one-shot mode)"`
	Output        string `long:"output" env:"OUTPUT" default:"signals.csv" description:"CSV output path for one-shot scans"`

	// Application configuration
	ConfigPath   string `long:"config" env:"CONFIG_PATH" default:"./config.yml" description:"Scan configuration file (keywords and scoring weights)"`
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	WorkerCount  int    `long:"worker-count" env:"WORKER_COUNT" default:"5" description:"Number of background scan workers"`
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for scan-triggering endpoints (optional)"`

	// Source credentials
	GoogleCSEID  string `long:"google-cse-id" env:"GOOGLE_CSE_ID" description:"Google Custom Search engine ID (enables the googlecse source)"`
	GoogleAPIKey string `long:"google-api-key" env:"GOOGLE_API_KEY" description:"Google API key for Custom Search"`
	SerpAPIKey   string `long:"serpapi-key" env:"SERPAPI_API_KEY" description:"SerpAPI key (enables the indeed source)"`

	// Application metadata
	Timezone string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug    bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		DBPath:        raw.DBPath,
		Companies:     raw.Companies,
		CompaniesFile: raw.CompaniesFile,
		Output:        raw.Output,
		ConfigPath:    raw.ConfigPath,
		Port:          raw.Port,
		WorkerCount:   raw.WorkerCount,
		APIAccessKey:  raw.APIAccessKey,
		GoogleCSEID:   raw.GoogleCSEID,
		GoogleAPIKey:  raw.GoogleAPIKey,
		SerpAPIKey:    raw.SerpAPIKey,
		Timezone:      raw.Timezone,
		Debug:         raw.Debug,
		Version:       GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// OneShot reports whether the process runs a single CLI scan instead of the
// server.
func (c *Cfg) OneShot() bool {
	return c.Companies != "" || c.CompaniesFile != ""
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
