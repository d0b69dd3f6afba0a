package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jfmyers9/crate/internal/config"
	"github.com/jfmyers9/crate/internal/music"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "List the recommended tracks without downloading them",
	Long: `Log into Last.fm, read the recommended tracks feed and print it as a table.

Nothing is downloaded or written. Useful for checking credentials and the
WebDriver setup before a full run.`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().IntP("width", "w", 40, "Column width for title and artist")
}

func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.ValidateLogin(); err != nil {
		return configError(err)
	}

	logger := setupLogger(logFile, logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result := newScraper(cfg, logger).Scrape(ctx)

	width, _ := cmd.Flags().GetInt("width")
	printTracks(cmd.OutOrStdout(), result.Tracks, width)

	for _, skip := range result.Skipped {
		fmt.Fprintf(cmd.OutOrStdout(), "Skipped feed item %d: %s\n", skip.Index, skip.Reason)
	}
	if result.Err != nil {
		return fmt.Errorf("scrape failed after %d tracks: %w", len(result.Tracks), result.Err)
	}
	return nil
}

// printTracks writes one row per track with the title and artist padded to width
func printTracks(w io.Writer, tracks []music.Track, width int) {
	fmt.Fprintf(w, "%s  %s  %s\n", padToWidth("TITLE", width), padToWidth("ARTIST", width), "LINK")
	for _, track := range tracks {
		fmt.Fprintf(w, "%s  %s  %s\n", padToWidth(track.Name, width), padToWidth(track.Artist, width), track.PlayLink)
	}
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		truncated := runewidth.Truncate(text, width-ellipsisWidth, "")
		result := truncated + ellipsis

		// a wide rune at the cut can leave the result one column short
		if resultWidth := runewidth.StringWidth(result); resultWidth < width {
			return result + strings.Repeat(" ", width-resultWidth)
		}
		return result
	}

	return text + strings.Repeat(" ", width-currentWidth)
}
