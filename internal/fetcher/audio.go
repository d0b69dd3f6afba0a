package fetcher

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lrstanley/go-ytdlp"
)

// AudioDownloader saves the audio behind a play link as an MP3 at audioPath
type AudioDownloader interface {
	Download(ctx context.Context, link, audioPath string) error
}

// YTDLP downloads audio with the yt-dlp binary
type YTDLP struct {
	// Quality is the target audio bitrate passed to yt-dlp (default "192K")
	Quality string
}

// Download extracts the best available audio stream and converts it to MP3.
// yt-dlp picks the extension, so the output template is audioPath with its
// extension replaced by %(ext)s.
func (y YTDLP) Download(ctx context.Context, link, audioPath string) error {
	quality := y.Quality
	if quality == "" {
		quality = "192K"
	}

	dl := ytdlp.New().
		Format("bestaudio/best").
		ExtractAudio().
		AudioFormat("mp3").
		AudioQuality(quality).
		ForceOverwrites().
		Output(outputTemplate(audioPath))

	if _, err := dl.Run(ctx, link); err != nil {
		return fmt.Errorf("yt-dlp failed for %s: %w", link, err)
	}
	return nil
}

// outputTemplate swaps the extension of audioPath for the yt-dlp placeholder
func outputTemplate(audioPath string) string {
	return strings.TrimSuffix(audioPath, filepath.Ext(audioPath)) + ".%(ext)s"
}

// InstallYTDLP makes sure a yt-dlp binary is available, downloading one
// into the user cache when none is found on PATH
func InstallYTDLP(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("failed to install yt-dlp: %w", err)
	}
	return nil
}
