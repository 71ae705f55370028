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
	// Application configuration
	Port        string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	DBPath      string `long:"db-path" env:"DB_PATH" default:"./data/newslens.db" description:"Path to the SQLite database file"`
	SourcesFile string `long:"sources-file" env:"SOURCES_FILE" description:"YAML file overriding the embedded source reputation seed (optional)"`
	WorkerCount int    `long:"worker-count" env:"WORKER_COUNT" default:"4" description:"Number of analysis workers"`

	// Scraper configuration
	ScrapeTimeout int `long:"scrape-timeout" env:"SCRAPE_TIMEOUT" default:"10" description:"Per-attempt article fetch timeout in seconds"`
	ScrapeRate    int `long:"scrape-rate" env:"SCRAPE_RATE" default:"4" description:"Outbound scrape requests per second"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"NewsLens/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
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
		Port:          raw.Port,
		DBPath:        raw.DBPath,
		SourcesFile:   raw.SourcesFile,
		WorkerCount:   raw.WorkerCount,
		ScrapeTimeout: raw.ScrapeTimeout,
		ScrapeRate:    raw.ScrapeRate,
		UserAgent:     raw.UserAgent,
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

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
