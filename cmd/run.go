package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jfmyers9/crate/internal/browser"
	"github.com/jfmyers9/crate/internal/config"
	"github.com/jfmyers9/crate/internal/download"
	"github.com/jfmyers9/crate/internal/fetcher"
	"github.com/jfmyers9/crate/internal/pipeline"
	"github.com/jfmyers9/crate/internal/scraper"
	"github.com/jfmyers9/crate/internal/tagger"
	"github.com/jfmyers9/crate/pkg/genius"
	"github.com/jfmyers9/crate/pkg/lastfm"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Download and tag every recommended track",
	Long: `Run the full pipeline once.

crate will:
- Log into Last.fm and read the recommended tracks feed
- Download each track's audio as MP3 with yt-dlp
- Look up cover art and lyrics on Genius and save them next to the MP3
- Write title, artist, album, cover and lyrics into the MP3's ID3 tag

A track that fails at any step is logged and skipped; the rest still run.
The command exits 0 once the feed has been processed, even if some
tracks failed.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("output-dir", "", "Music directory to write into (overrides NAVIDROME_MUSIC_DIR)")
	runCmd.Flags().IntP("concurrency", "c", 0, "Tracks to fetch in parallel (overrides config)")
	runCmd.Flags().Bool("raw-lyrics", false, "Save lyrics pages as fetched instead of extracting the text")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		cfg.OutputDir = dir
	}
	if n, _ := cmd.Flags().GetInt("concurrency"); n > 0 {
		cfg.Concurrency = n
	}
	if raw, _ := cmd.Flags().GetBool("raw-lyrics"); raw {
		cfg.Lyrics.Raw = true
	}

	if err := cfg.Validate(); err != nil {
		return configError(err)
	}

	logger := setupLogger(logFile, logLevel)
	logger.Info().
		Str("version", version).
		Str("output_dir", cfg.OutputDir).
		Int("concurrency", cfg.Concurrency).
		Msg("Starting crate")

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.YTDLP.Install {
		logger.Info().Msg("Ensuring yt-dlp is installed")
		if err := fetcher.InstallYTDLP(ctx); err != nil {
			return err
		}
	}

	songs, err := newGeniusClient(cfg, logger)
	if err != nil {
		return err
	}

	s := newScraper(cfg, logger)
	f := fetcher.New(
		fetcher.Config{OutputDir: cfg.OutputDir, RawLyrics: cfg.Lyrics.Raw},
		fetcher.YTDLP{},
		songs,
		newAlbumLookup(cfg, logger),
		download.NewClient(),
		logger,
	)
	t := tagger.New(tagger.Config{AppendFrames: cfg.Tags.AppendFrames})

	runner := pipeline.New(pipeline.Config{
		Concurrency: cfg.Concurrency,
		Progress:    os.Stderr,
	}, s, f, t, logger)

	summary := runner.Run(ctx)
	printSummary(cmd, summary)
	return nil
}

// newScraper builds a scraper that drives the configured WebDriver hub
func newScraper(cfg *config.Config, logger zerolog.Logger) *scraper.Scraper {
	return scraper.New(scraper.Config{
		Username:    cfg.LastFM.Username,
		Password:    cfg.LastFM.Password,
		LoginURL:    cfg.LastFM.LoginURL,
		FeedURL:     cfg.LastFM.FeedURL,
		WaitTimeout: cfg.WaitTimeout,
	}, browser.RemoteDialer(cfg.WebDriver.URL, cfg.WebDriver.Browser), logger)
}

func newGeniusClient(cfg *config.Config, logger zerolog.Logger) (*genius.Client, error) {
	client, err := genius.NewClient(genius.Config{
		AccessToken: cfg.Genius.APIKey,
		BaseURL:     cfg.Genius.BaseURL,
		Logger:      debugLogger{logger.With().Str("component", "genius").Logger()},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Genius client: %w", err)
	}
	return client, nil
}

// newAlbumLookup returns a Last.fm track service, or nil when no API key is
// configured so album enrichment is skipped
func newAlbumLookup(cfg *config.Config, logger zerolog.Logger) fetcher.AlbumLookup {
	if cfg.LastFM.APIKey == "" {
		return nil
	}

	client, err := lastfm.NewClient(lastfm.Config{
		APIKey:     cfg.LastFM.APIKey,
		MaxRetries: 3,
		Logger:     debugLogger{logger.With().Str("component", "lastfm").Logger()},
	})
	if err != nil {
		logger.Warn().Err(err).Msg("Album enrichment disabled")
		return nil
	}
	return client.Track()
}

// configError points the user at the config file when validation fails
func configError(err error) error {
	path := filepath.Join(config.GetConfigDir(), "config.yaml")
	return fmt.Errorf("%w\nset it in %s, a .env file, or the environment", err, path)
}

func printSummary(cmd *cobra.Command, summary pipeline.Summary) {
	out := cmd.OutOrStdout()

	if summary.Scrape.Err != nil {
		fmt.Fprintf(out, "Scrape failed: %v\n", summary.Scrape.Err)
	}
	for _, skip := range summary.Scrape.Skipped {
		fmt.Fprintf(out, "Skipped feed item %d: %s\n", skip.Index, skip.Reason)
	}
	for _, r := range summary.Results {
		if r.Failed() {
			fmt.Fprintf(out, "FAILED  %s (%s): %v\n", r.Track, r.Stage, r.Err)
		}
	}

	fmt.Fprintf(out, "%d downloaded, %d failed, %d skipped\n",
		summary.Succeeded(), summary.Failed(), len(summary.Scrape.Skipped))
}
