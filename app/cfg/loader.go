package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Output configuration
	OutputPath  string `long:"output" env:"OUTPUT_PATH" default:"data/update.json" description:"Path of the JSON snapshot to write" validate:"required"`
	SourcesFile string `long:"sources" env:"SOURCES_FILE" description:"YAML file replacing the built-in source list (optional)"`

	// Digest limits
	MaxItemsPerFeed int `long:"max-items-per-feed" env:"MAX_ITEMS_PER_FEED" default:"6" description:"Entries kept per feed before normalization" validate:"gte=1"`
	MaxItems        int `long:"max-items" env:"MAX_ITEMS" default:"20" description:"Items kept in the digest after sorting" validate:"gte=1"`
	TitleLimit      int `long:"title-limit" env:"TITLE_LIMIT" default:"140" description:"Maximum title length in characters" validate:"gte=1"`
	SummaryLimit    int `long:"summary-limit" env:"SUMMARY_LIMIT" default:"280" description:"Maximum summary length in characters before the ellipsis" validate:"gte=1"`

	// Fetching
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"SkyBrief/1.0" description:"User agent string for HTTP requests"`
	Timeout   int    `long:"timeout" env:"FETCH_TIMEOUT" default:"30" description:"Per-feed fetch timeout in seconds" validate:"gte=1"`

	// Envelope metadata
	Project  string `long:"project" env:"PROJECT" default:"SkyBrief" description:"Project name written to the snapshot"`
	Headline string `long:"headline" env:"HEADLINE" default:"Tonight’s SkyBrief: top open updates across the sky" description:"Headline written to the snapshot"`
	Window   string `long:"window" env:"WINDOW_LOCAL" default:"Nightly around 02:30 America/Los_Angeles" description:"Human description of the build window"`
	Timezone string `long:"timezone" env:"TZ" default:"America/Los_Angeles" description:"Timezone for night_of and local timestamps (e.g., UTC, America/New_York)"`

	PreviewAddr string `long:"preview-addr" env:"PREVIEW_ADDR" description:"Serve the written snapshot on this address until interrupted (e.g., :8080)"`
	Debug       bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load reads .env (if present), command-line flags and environment variables.
// It returns nil, nil when help was requested.
func Load() (*Cfg, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to load .env file", "error", err)
	}

	return parse(os.Args[1:])
}

func parse(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	if err := validator.New().Struct(raw); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg := &Cfg{
		OutputPath:      raw.OutputPath,
		SourcesFile:     raw.SourcesFile,
		MaxItemsPerFeed: raw.MaxItemsPerFeed,
		MaxItems:        raw.MaxItems,
		TitleLimit:      raw.TitleLimit,
		SummaryLimit:    raw.SummaryLimit,
		UserAgent:       raw.UserAgent,
		Timeout:         raw.Timeout,
		Project:         raw.Project,
		Headline:        raw.Headline,
		Window:          raw.Window,
		Timezone:        raw.Timezone,
		PreviewAddr:     raw.PreviewAddr,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	loc, err := loadLocation(cfg.Timezone)
	if err != nil {
		slog.Warn("Invalid timezone, using UTC", "timezone", cfg.Timezone, "error", err)
		loc = time.UTC
	}
	cfg.Location = loc

	return cfg, nil
}

func loadLocation(timezone string) (*time.Location, error) {
	if timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(timezone)
}
