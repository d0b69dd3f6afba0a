package music

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Track represents one recommendation scraped from the Last.fm feed
type Track struct {
	PlayLink string // Video page the recommendation links to
	Name     string // Track title with any duration suffix removed
	Artist   string // Artist name
}

// String returns "Artist - Name" for log lines and tables
func (t Track) String() string {
	return fmt.Sprintf("%s - %s", t.Artist, t.Name)
}

// durationSuffix matches a trailing " (3:45)" annotation
var durationSuffix = regexp.MustCompile(`\s\(\d+:\d+\)$`)

// StripDuration removes a trailing " (m:ss)" duration from a feed title.
// Titles without a trailing duration are returned unchanged.
func StripDuration(title string) string {
	return durationSuffix.ReplaceAllString(title, "")
}

// NewTrack builds a Track from raw feed values, normalizing the title
func NewTrack(playLink, rawTitle, artist string) Track {
	return Track{
		PlayLink: playLink,
		Name:     StripDuration(rawTitle),
		Artist:   artist,
	}
}

// unsafeChars are removed from names used on disk
const unsafeChars = `<>:"/\|?*`

// Sanitize removes characters that are unsafe in file names.
// All other characters are kept in their original order, so
// Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafeChars, r) {
			return -1
		}
		return r
	}, name)
}

// Paths holds the files written for a single track. Every path shares
// the sanitized title as its stem.
type Paths struct {
	Stem   string
	Audio  string
	Cover  string
	Lyrics string
}

// PathsFor returns the audio, cover and lyrics paths for a track in dir
func PathsFor(dir string, track Track) Paths {
	stem := Sanitize(track.Name)
	return Paths{
		Stem:   stem,
		Audio:  filepath.Join(dir, stem+".mp3"),
		Cover:  filepath.Join(dir, stem+"_cover.jpg"),
		Lyrics: filepath.Join(dir, stem+"_lyrics.txt"),
	}
}
