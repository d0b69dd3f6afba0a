// Package fetcher turns a scraped track into files on disk: the audio, the
// cover art and the lyrics page for it.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jfmyers9/crate/internal/lyrics"
	"github.com/jfmyers9/crate/internal/music"
	"github.com/jfmyers9/crate/pkg/genius"
	"github.com/jfmyers9/crate/pkg/lastfm"
	"github.com/rs/zerolog"
)

// Stage names the step at which a track failed
type Stage string

const (
	StageDownload Stage = "download"
	StageLookup   Stage = "lookup"
	StageCover    Stage = "cover"
	StageLyrics   Stage = "lyrics"
	StageTag      Stage = "tag"
)

// ErrEmptyStem is returned for a track whose title has no usable filename characters
var ErrEmptyStem = errors.New("track title is empty after sanitizing")

// SongFinder looks up cover art and lyrics URLs for a track.
// A nil song with a nil error means no match.
type SongFinder interface {
	FindSong(ctx context.Context, title, artist string) (*genius.Song, error)
}

// AlbumLookup returns track metadata used to fill in the album
type AlbumLookup interface {
	GetInfo(ctx context.Context, artist, track string) (*lastfm.TrackInfo, error)
}

// Downloader fetches files over HTTP
type Downloader interface {
	Get(ctx context.Context, url string) ([]byte, error)
	ToFile(ctx context.Context, url, destPath string) error
}

// Config holds fetcher configuration
type Config struct {
	OutputDir string
	RawLyrics bool // Write the lyrics page as fetched instead of extracting text
}

// Result is the outcome of fetching one track. Err is nil on success;
// otherwise Stage says where it failed.
type Result struct {
	Track      music.Track
	AudioPath  string
	CoverPath  string // Empty when no cover was saved
	LyricsPath string // Empty when no lyrics were saved
	Album      string
	Stage      Stage
	Err        error
}

// Failed reports whether the track did not make it through
func (r Result) Failed() bool {
	return r.Err != nil
}

func (r Result) fail(stage Stage, err error) Result {
	r.Stage = stage
	r.Err = err
	return r
}

// Fetcher downloads audio and sidecar files for tracks
type Fetcher struct {
	config Config
	audio  AudioDownloader
	songs  SongFinder
	albums AlbumLookup // optional
	files  Downloader
	logger zerolog.Logger
}

// New creates a new Fetcher. albums may be nil to skip album enrichment.
func New(cfg Config, audio AudioDownloader, songs SongFinder, albums AlbumLookup, files Downloader, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		config: cfg,
		audio:  audio,
		songs:  songs,
		albums: albums,
		files:  files,
		logger: logger.With().Str("component", "fetcher").Logger(),
	}
}

// Fetch downloads the audio for track, then saves the cover and lyrics
// Genius has for it. Failures are reported in the Result; Fetch never
// returns an error of its own.
func (f *Fetcher) Fetch(ctx context.Context, track music.Track) Result {
	result := Result{Track: track}
	logger := f.logger.With().
		Str("artist", track.Artist).
		Str("track", track.Name).
		Logger()

	if music.Sanitize(track.Name) == "" {
		return result.fail(StageDownload, ErrEmptyStem)
	}
	paths := music.PathsFor(f.config.OutputDir, track)

	logger.Info().Str("link", track.PlayLink).Msg("Downloading audio")
	if err := f.audio.Download(ctx, track.PlayLink, paths.Audio); err != nil {
		return result.fail(StageDownload, err)
	}
	result.AudioPath = paths.Audio

	song, err := f.songs.FindSong(ctx, track.Name, track.Artist)
	if err != nil {
		return result.fail(StageLookup, fmt.Errorf("genius lookup failed: %w", err))
	}
	if song == nil {
		logger.Info().Msg("No Genius match, tagging without cover or lyrics")
	}

	coverURL := ""
	if song != nil {
		coverURL = song.SongArtImageURL
	}

	if album, ok := f.lookupAlbum(ctx, track, logger); ok {
		result.Album = album.Title
		if coverURL == "" {
			coverURL = album.LargestImage()
		}
	}

	if coverURL != "" {
		if err := f.files.ToFile(ctx, coverURL, paths.Cover); err != nil {
			return result.fail(StageCover, err)
		}
		result.CoverPath = paths.Cover
		logger.Debug().Str("path", paths.Cover).Msg("Saved cover")
	}

	if song != nil && song.URL != "" {
		if err := f.saveLyrics(ctx, song.URL, paths.Lyrics, logger); err != nil {
			return result.fail(StageLyrics, err)
		}
		result.LyricsPath = paths.Lyrics
		logger.Debug().Str("path", paths.Lyrics).Msg("Saved lyrics")
	}

	return result
}

// lookupAlbum asks Last.fm for the track's album. Errors only warn.
func (f *Fetcher) lookupAlbum(ctx context.Context, track music.Track, logger zerolog.Logger) (lastfm.Album, bool) {
	if f.albums == nil {
		return lastfm.Album{}, false
	}

	info, err := f.albums.GetInfo(ctx, track.Artist, track.Name)
	if err != nil {
		if errors.Is(err, lastfm.ErrNotFound) {
			logger.Debug().Msg("Track not found on Last.fm")
		} else {
			logger.Warn().Err(err).Msg("Album lookup failed")
		}
		return lastfm.Album{}, false
	}
	if info.Album.Title == "" && len(info.Album.Images) == 0 {
		return lastfm.Album{}, false
	}
	return info.Album, true
}

// saveLyrics writes the lyrics page at url to dest, reduced to plain text
// unless raw output is configured or the page has no lyrics container
func (f *Fetcher) saveLyrics(ctx context.Context, url, dest string, logger zerolog.Logger) error {
	page, err := f.files.Get(ctx, url)
	if err != nil {
		return err
	}

	data := page
	if !f.config.RawLyrics {
		text, err := lyrics.Extract(page)
		switch {
		case err == nil:
			data = []byte(text + "\n")
		case errors.Is(err, lyrics.ErrNoLyrics):
			logger.Debug().Str("url", url).Msg("No lyrics container, keeping raw page")
		default:
			return err
		}
	}

	if err := os.WriteFile(dest, data, 0644); err != nil {
		return fmt.Errorf("failed to write lyrics: %w", err)
	}
	return nil
}
