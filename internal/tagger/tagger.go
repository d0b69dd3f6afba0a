// Package tagger writes ID3v2 metadata into downloaded MP3 files.
package tagger

import (
	"fmt"
	"os"
	"strings"

	"github.com/bogem/id3v2"
)

// Tags is the metadata written to one file. CoverPath and LyricsPath are
// optional; empty means no frame is written for them.
type Tags struct {
	Title      string
	Artist     string
	Album      string
	CoverPath  string
	LyricsPath string
}

// Config controls how frames are written
type Config struct {
	// AppendFrames adds cover and lyrics frames next to existing ones
	// instead of replacing them
	AppendFrames bool
}

// Tagger writes ID3 tags to MP3 files in place
type Tagger struct {
	config Config
}

// New creates a new Tagger
func New(cfg Config) *Tagger {
	return &Tagger{config: cfg}
}

// Write sets title and artist (and album when known), attaches the cover
// image as a front cover and the lyrics as an unsynchronised lyrics frame,
// then saves the tag back to path.
//
// Running Write twice with the same Tags leaves a single cover and a
// single lyrics frame unless AppendFrames is set.
func (t *Tagger) Write(path string, tags Tags) error {
	var cover, text []byte
	var err error

	// Load sidecars first so a missing file leaves the MP3 untouched
	if tags.CoverPath != "" {
		if cover, err = os.ReadFile(tags.CoverPath); err != nil {
			return fmt.Errorf("failed to read cover: %w", err)
		}
	}
	if tags.LyricsPath != "" {
		if text, err = os.ReadFile(tags.LyricsPath); err != nil {
			return fmt.Errorf("failed to read lyrics: %w", err)
		}
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer tag.Close()

	// Text frames
	tag.SetDefaultEncoding(id3v2.EncodingUTF8)
	tag.SetTitle(tags.Title)
	tag.SetArtist(tags.Artist)
	if tags.Album != "" {
		tag.SetAlbum(tags.Album)
	}

	// Front cover (APIC)
	if cover != nil {
		pictureID := tag.CommonID("Attached picture")
		if !t.config.AppendFrames {
			tag.DeleteFrames(pictureID)
		}
		tag.AddAttachedPicture(id3v2.PictureFrame{
			Encoding:    id3v2.EncodingUTF8,
			MimeType:    "image/jpeg",
			PictureType: id3v2.PTFrontCover,
			Description: nextDescriptor("Cover", len(tag.GetFrames(pictureID))),
			Picture:     cover,
		})
	}

	// Lyrics (USLT)
	if text != nil {
		lyricsID := tag.CommonID("Unsynchronised lyrics/text transcription")
		if !t.config.AppendFrames {
			tag.DeleteFrames(lyricsID)
		}
		tag.AddUnsynchronisedLyricsFrame(id3v2.UnsynchronisedLyricsFrame{
			Encoding:          id3v2.EncodingUTF8,
			Language:          "eng",
			ContentDescriptor: nextDescriptor("", len(tag.GetFrames(lyricsID))),
			Lyrics:            string(text),
		})
	}

	if err := tag.Save(); err != nil {
		return fmt.Errorf("failed to save tags to %s: %w", path, err)
	}
	return nil
}

// nextDescriptor returns base for the first frame of a kind and a numbered
// variant after that. id3v2 overwrites frames with an equal description.
func nextDescriptor(base string, existing int) string {
	if existing == 0 {
		return base
	}
	return strings.TrimSpace(fmt.Sprintf("%s %d", base, existing+1))
}
