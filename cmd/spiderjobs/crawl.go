package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"spiderjobs-engine/internal/config"
	"spiderjobs-engine/internal/export"
	"spiderjobs-engine/internal/fetch"
	"spiderjobs-engine/internal/scrape"
	"spiderjobs-engine/internal/scrape/itviec"
	"spiderjobs-engine/internal/scrape/types"
	"spiderjobs-engine/internal/store"
)

var (
	flagPages   int
	flagQuery   string
	flagOutput  string
	flagDataDir string
	flagNoStore bool
	flagVerbose bool
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl the configured job boards once",
	Long: `Crawl fetches the configured listing pages, extracts job records and
writes them to the CSV output and the sqlite store.

Examples:
  spiderjobs crawl
  spiderjobs crawl --pages 5 --query golang
  spiderjobs crawl --output jobs.csv --no-store`,
	RunE: runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)

	crawlCmd.Flags().IntVar(&flagPages, "pages", 0, "Pages to crawl (overrides config)")
	crawlCmd.Flags().StringVar(&flagQuery, "query", "", "Search query (overrides config)")
	crawlCmd.Flags().StringVar(&flagOutput, "output", "", "CSV output path (overrides config)")
	crawlCmd.Flags().StringVar(&flagDataDir, "data-dir", "", "Data directory (default $SPIDERJOBS_DATA_DIR or .)")
	crawlCmd.Flags().BoolVar(&flagNoStore, "no-store", false, "Skip the sqlite store")
	crawlCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Debug logging")
}

func runCrawl(cmd *cobra.Command, args []string) error {
	if flagVerbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	dataDir := flagDataDir
	if dataDir == "" {
		dataDir = os.Getenv("SPIDERJOBS_DATA_DIR")
	}
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	// One crawl at a time per data dir, or two runs race on the db and CSV.
	lock := flock.New(filepath.Join(dataDir, "spiderjobs.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another crawl is already running in %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	cfgPath, err := config.EnsureUserConfig(dataDir)
	if err != nil {
		return fmt.Errorf("config bootstrap: %w", err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("config load (%s): %w", cfgPath, err)
	}

	// Flag overrides
	if flagPages > 0 {
		cfg.Crawler.Pages = flagPages
	}
	if flagQuery != "" {
		cfg.Crawler.Query = flagQuery
	}
	if flagOutput != "" {
		cfg.Output.CSVPath = flagOutput
	}
	if flagNoStore {
		cfg.Output.Store = false
	}

	cfg, vr := config.NormalizeAndValidate(cfg)
	for _, w := range vr.Warnings {
		log.Warn().Msg(w)
	}
	if !vr.OK() {
		return fmt.Errorf("invalid config: %v", vr.Errors)
	}

	var db *store.DB
	if cfg.Output.Store {
		db, err = store.Open(filepath.Join(dataDir, "spiderjobs.db"))
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer db.Close()
	}

	client := fetch.New(fetch.Config{
		UserAgent:   cfg.HTTP.UserAgent,
		Timeout:     cfg.Timeout(),
		MaxAttempts: cfg.HTTP.MaxAttempts,
		Backoff:     cfg.Backoff(),
		ReqPerSec:   cfg.HTTP.RequestsPerSec,
		Burst:       cfg.HTTP.Burst,
	})

	sources := []types.Source{
		itviec.New(itviec.Config{
			BaseURL:  cfg.Crawler.BaseURL,
			JobsPath: cfg.Crawler.JobsPath,
			Query:    cfg.Crawler.Query,
			MaxPages: cfg.Crawler.Pages,
		}, client),
	}

	log.Info().Int("pages", cfg.Crawler.Pages).Str("query", cfg.Crawler.Query).Msg("starting crawl")

	jobs, added, err := scrape.RunOnce(cmd.Context(), db, sources)
	if err != nil {
		return err
	}

	if cfg.Output.CSVPath != "" {
		if err := export.WriteCSV(cfg.Output.CSVPath, jobs); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		log.Info().Str("path", cfg.Output.CSVPath).Int("jobs", len(jobs)).Msg("wrote csv")
	}

	log.Info().Int("total", len(jobs)).Int("new", added).Msg("crawl done")

	// sample of what came back
	for i, j := range jobs {
		if i == 3 {
			break
		}
		log.Info().Msgf("  %d. %s at %s (%s)", i+1, j.Title, j.Company, j.Location)
	}
	return nil
}
