package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/jfmyers9/crate/internal/config"
	"github.com/jfmyers9/crate/pkg/genius"
	"github.com/jfmyers9/crate/pkg/lastfm"
	"github.com/spf13/cobra"
)

// lookupCmd represents the lookup command
var lookupCmd = &cobra.Command{
	Use:   "lookup TITLE ARTIST",
	Short: "Show the Genius match for a track",
	Long: `Search Genius for a track and print the lyrics page and cover art URLs
of the first hit whose title and artist match exactly (ignoring case).

When LASTFM_API_KEY is set the album from Last.fm is printed as well.`,
	Args: cobra.ExactArgs(2),
	RunE: runLookup,
}

func init() {
	rootCmd.AddCommand(lookupCmd)
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.ValidateGenius(); err != nil {
		return configError(err)
	}

	logger := setupLogger(logFile, logLevel)

	client, err := newGeniusClient(cfg, logger)
	if err != nil {
		return err
	}

	title, artist := args[0], args[1]
	song, err := client.FindSong(ctx, title, artist)
	if err != nil {
		if errors.Is(err, genius.ErrUnauthorized) {
			return fmt.Errorf("genius rejected the API key: %w", err)
		}
		return fmt.Errorf("lookup failed: %w", err)
	}

	var album *lastfm.Album
	if albums := newAlbumLookup(cfg, logger); albums != nil {
		info, err := albums.GetInfo(ctx, artist, title)
		if err != nil {
			logger.Warn().Err(err).Msg("Album lookup failed")
		} else {
			album = &info.Album
		}
	}

	printLookup(cmd.OutOrStdout(), song, album)
	return nil
}

func printLookup(w io.Writer, song *genius.Song, album *lastfm.Album) {
	if song == nil {
		fmt.Fprintln(w, "No match")
	} else {
		fmt.Fprintf(w, "Match:  %s\n", song.FullTitle)
		fmt.Fprintf(w, "Lyrics: %s\n", orNone(song.URL))
		fmt.Fprintf(w, "Cover:  %s\n", orNone(song.SongArtImageURL))
	}

	if album != nil && album.Title != "" {
		fmt.Fprintf(w, "Album:  %s\n", album.Title)
		if image := album.LargestImage(); image != "" {
			fmt.Fprintf(w, "Art:    %s\n", image)
		}
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
