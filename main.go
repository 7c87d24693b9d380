package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/davidpaquet/sekai-chart-browser/internal/assets"
	"github.com/davidpaquet/sekai-chart-browser/internal/browse"
	"github.com/davidpaquet/sekai-chart-browser/internal/catalog"
	"github.com/davidpaquet/sekai-chart-browser/internal/config"
	"github.com/davidpaquet/sekai-chart-browser/internal/locale"
	"github.com/davidpaquet/sekai-chart-browser/internal/logging"
	"github.com/davidpaquet/sekai-chart-browser/internal/phonetic"
	"github.com/davidpaquet/sekai-chart-browser/internal/prefs"
	"github.com/davidpaquet/sekai-chart-browser/internal/ui"
)

const version = "v0.3.0"

func main() {
	var configPath, catalogFile, catalogURL, lang, logLevel string
	flag.StringVar(&configPath, "config", "", "Config file (default: $SEKAI_CONFIG or ./sekai.yaml)")
	flag.StringVar(&configPath, "c", "", "Config file (shorthand)")
	flag.StringVar(&catalogFile, "file", "", "Load the catalog from a local JSON file")
	flag.StringVar(&catalogFile, "f", "", "Local catalog file (shorthand)")
	flag.StringVar(&catalogURL, "url", "", "Catalog endpoint")
	flag.StringVar(&lang, "lang", "", "Display language: ko or jp (overrides the saved preference)")
	flag.StringVar(&logLevel, "log-level", "", "Log level: trace, debug, info, warn, error, off")

	var help, showVersion bool
	flag.BoolVar(&help, "help", false, "Show help")
	flag.BoolVar(&help, "h", false, "Show help (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Print the version")

	flag.Parse()

	if help {
		showHelp()
		os.Exit(0)
	}
	if showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if catalogFile != "" {
		cfg.Catalog.File = catalogFile
	}
	if catalogURL != "" {
		cfg.Catalog.URL = catalogURL
		cfg.Catalog.File = ""
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	// The TUI owns the terminal; logs go to a file
	logFile, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to open log file")
	}
	defer logFile.Close()
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: logFile})
	logging.Info().Str("version", version).Msg("Starting browser")

	store, err := prefs.Open(cfg.Prefs.Dir, cfg.Prefs.InMemory)
	if err != nil {
		logging.Fatal().Err(err).Str("dir", cfg.Prefs.Dir).Msg("Failed to open preference store")
	}
	defer store.Close()

	settings, err := store.Load()
	if err != nil {
		logging.Warn().Err(err).Msg("Using default preferences")
		settings = prefs.Defaults()
	}
	if lang != "" {
		settings.Language = locale.Parse(lang)
	}

	var source catalog.Source
	if cfg.Catalog.File != "" {
		source = catalog.File{Path: cfg.Catalog.File}
	} else {
		source = catalog.NewClient(cfg.Catalog.URL, cfg.Catalog.Timeout)
	}

	var indexerOpts []phonetic.Option
	if cfg.Indexer.Readings {
		indexerOpts = append(indexerOpts, phonetic.WithReader(phonetic.NewKagomeReader()))
	}

	session := browse.New(
		browse.WithLocale(settings.Language),
		browse.WithDelays(browse.Delays{
			Query:    cfg.Debounce.Query,
			Choseong: cfg.Debounce.Choseong,
			Range:    cfg.Debounce.Range,
		}),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := ui.NewApp(ui.Options{
		Context:     ctx,
		Version:     version,
		Source:      source,
		Session:     session,
		Indexer:     phonetic.NewIndexer(indexerOpts...),
		Host:        assets.NewHost(cfg.Assets.BaseURL),
		Prefs:       store,
		Preferences: settings,
	})

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		logging.Error().Err(err).Msg("Program exited with error")
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		os.Exit(1)
	}
}

func showHelp() {
	fmt.Println(`Sekai Chart Browser

A terminal browser for the rhythm-game song catalog: search by title or
composer in Korean or Japanese, filter by level, unit, MV and ranges, and
copy chart links.

Usage:
  sekai-browser [options]

Options:
  -c, --config PATH      Config file (default: $SEKAI_CONFIG or ./sekai.yaml)
  -f, --file PATH        Load the catalog from a local JSON file
      --url URL          Catalog endpoint
      --lang ko|jp       Display language
      --log-level LEVEL  Log level
  -h, --help             Show this help message
      --version          Print the version

Environment Variables:
  SEKAI_CONFIG           Config file path
  SEKAI_<SECTION>__<KEY> Override any config key, e.g. SEKAI_DEBOUNCE__QUERY=150ms

Keyboard Shortcuts:
  ↑/↓, j/k               Navigate songs
  /                      Search
  e, m, a                Cycle expert / master / append level (0 clears)
  f                      Unit, classification and MV facets
  n                      Length, BPM, date and note-count ranges
  s, S                   Cycle sort key, flip direction
  [, ]                   Choose a chart
  Enter                  Copy the chart link
  g                      Statistics
  h                      Hide upcoming songs
  i                      Initial-consonant search
  L                      Switch language
  w, v                   Chart format, mirrored charts
  z, Z                   Save / restore filters
  Backspace              Remove the last filter
  R                      Reset all filters
  q                      Quit`)
}
