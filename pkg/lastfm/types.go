package lastfm

import (
	"time"
)

// ImageSize is the size label Last.fm attaches to image URLs.
type ImageSize string

const (
	ImageSmall      ImageSize = "small"
	ImageMedium     ImageSize = "medium"
	ImageLarge      ImageSize = "large"
	ImageExtraLarge ImageSize = "extralarge"
	ImageMega       ImageSize = "mega"
)

// imageRank orders sizes from smallest to largest.
var imageRank = map[ImageSize]int{
	ImageSmall:      1,
	ImageMedium:     2,
	ImageLarge:      3,
	ImageExtraLarge: 4,
	ImageMega:       5,
}

// Image is a sized artwork URL.
type Image struct {
	Size ImageSize
	URL  string
}

// Album describes the album a track appears on.
type Album struct {
	Title  string
	Artist string
	Images []Image
}

// LargestImage returns the URL of the biggest non-empty image, or "".
func (a Album) LargestImage() string {
	best, bestRank := "", 0
	for _, img := range a.Images {
		if img.URL == "" {
			continue
		}
		if rank := imageRank[img.Size]; rank >= bestRank {
			best, bestRank = img.URL, rank
		}
	}
	return best
}

// TrackInfo represents the response from track.getInfo.
type TrackInfo struct {
	Name      string
	Artist    string
	URL       string
	Duration  time.Duration
	Listeners int
	Playcount int
	Album     Album
	Tags      []string
}
