// Package pipeline runs scrape, fetch and tag over the recommended tracks.
package pipeline

import (
	"context"
	"io"

	"github.com/jfmyers9/crate/internal/fetcher"
	"github.com/jfmyers9/crate/internal/music"
	"github.com/jfmyers9/crate/internal/scraper"
	"github.com/jfmyers9/crate/internal/tagger"
	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
)

// Scraper produces the ordered list of tracks to process
type Scraper interface {
	Scrape(ctx context.Context) scraper.Result
}

// Fetcher downloads one track and its sidecar files
type Fetcher interface {
	Fetch(ctx context.Context, track music.Track) fetcher.Result
}

// Tagger writes metadata into a downloaded file
type Tagger interface {
	Write(path string, tags tagger.Tags) error
}

// Config holds pipeline configuration
type Config struct {
	Concurrency int       // Tracks processed at once; 1 or less is strictly sequential
	Progress    io.Writer // Where the progress bar is drawn; nil disables it
}

// Summary is the outcome of one run
type Summary struct {
	Scrape  scraper.Result
	Results []fetcher.Result // One per scraped track, in scrape order
}

// Succeeded returns the number of tracks that were downloaded and tagged
func (s Summary) Succeeded() int {
	n := 0
	for _, r := range s.Results {
		if !r.Failed() {
			n++
		}
	}
	return n
}

// Failed returns the number of tracks that failed at any stage
func (s Summary) Failed() int {
	return len(s.Results) - s.Succeeded()
}

// Runner wires the three stages together
type Runner struct {
	config  Config
	scraper Scraper
	fetcher Fetcher
	tagger  Tagger
	logger  zerolog.Logger
}

// New creates a new Runner
func New(cfg Config, s Scraper, f Fetcher, t Tagger, logger zerolog.Logger) *Runner {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Runner{
		config:  cfg,
		scraper: s,
		fetcher: f,
		tagger:  t,
		logger:  logger.With().Str("component", "pipeline").Logger(),
	}
}

// Run scrapes the feed, then fetches and tags every track. A failed track
// is logged and recorded in the Summary; it never stops the others.
func (r *Runner) Run(ctx context.Context) Summary {
	summary := Summary{Scrape: r.scraper.Scrape(ctx)}
	tracks := summary.Scrape.Tracks

	r.logger.Info().
		Int("tracks", len(tracks)).
		Int("skipped", len(summary.Scrape.Skipped)).
		Msg("Scrape finished")

	if len(tracks) == 0 {
		return summary
	}

	bar := r.newProgressBar(len(tracks))
	summary.Results = make([]fetcher.Result, len(tracks))

	if r.config.Concurrency == 1 {
		for i, track := range tracks {
			summary.Results[i] = r.process(ctx, track)
			_ = bar.Add(1)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(r.config.Concurrency)
		for i, track := range tracks {
			g.Go(func() error {
				summary.Results[i] = r.process(ctx, track)
				_ = bar.Add(1)
				return nil
			})
		}
		_ = g.Wait()
	}
	_ = bar.Finish()

	r.logger.Info().
		Int("succeeded", summary.Succeeded()).
		Int("failed", summary.Failed()).
		Msg("Run finished")

	return summary
}

// process fetches then tags one track
func (r *Runner) process(ctx context.Context, track music.Track) fetcher.Result {
	if err := ctx.Err(); err != nil {
		result := fetcher.Result{Track: track, Stage: fetcher.StageDownload, Err: err}
		r.logFailure(result)
		return result
	}

	result := r.fetcher.Fetch(ctx, track)
	if result.Failed() {
		r.logFailure(result)
		return result
	}

	tags := tagger.Tags{
		Title:      track.Name,
		Artist:     track.Artist,
		Album:      result.Album,
		CoverPath:  result.CoverPath,
		LyricsPath: result.LyricsPath,
	}
	if err := r.tagger.Write(result.AudioPath, tags); err != nil {
		result.Stage = fetcher.StageTag
		result.Err = err
		r.logFailure(result)
		return result
	}

	r.logger.Info().
		Str("artist", track.Artist).
		Str("track", track.Name).
		Str("path", result.AudioPath).
		Msg("Track done")
	return result
}

func (r *Runner) logFailure(result fetcher.Result) {
	r.logger.Error().
		Err(result.Err).
		Str("stage", string(result.Stage)).
		Str("link", result.Track.PlayLink).
		Str("artist", result.Track.Artist).
		Str("track", result.Track.Name).
		Msg("Track failed")
}

func (r *Runner) newProgressBar(total int) *progressbar.ProgressBar {
	out := r.config.Progress
	if out == nil {
		out = io.Discard
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription("Fetching tracks"),
		progressbar.OptionClearOnFinish(),
	)
}
