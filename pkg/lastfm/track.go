package lastfm

import (
	"context"
	"encoding/xml"
	"fmt"
	"time"
)

// TrackService provides track lookups for the Last.fm API.
type TrackService struct {
	client *Client
}

// GetInfo returns metadata for a track by artist and name.
//
// Last.fm's autocorrection is enabled, so minor spelling differences in
// the artist or track name still resolve. Unknown tracks return an error
// matching ErrNotFound.
//
// Example:
//
//	info, err := client.Track().GetInfo(ctx, "The Beatles", "Yesterday")
//	if errors.Is(err, lastfm.ErrNotFound) {
//	    // No such track
//	}
func (s *TrackService) GetInfo(ctx context.Context, artist, track string) (*TrackInfo, error) {
	if artist == "" || track == "" {
		return nil, fmt.Errorf("lastfm: artist and track are required")
	}

	params := map[string]string{
		"artist":      artist,
		"track":       track,
		"autocorrect": "1",
	}

	resp, err := s.client.call(ctx, "track.getInfo", params)
	if err != nil {
		return nil, err
	}

	info, err := unmarshalTrackInfo(resp)
	if err != nil {
		return nil, fmt.Errorf("lastfm: failed to parse track info response: %w", err)
	}

	return info, nil
}

// trackInfoResponse represents the XML response from track.getInfo.
type trackInfoResponse struct {
	Track struct {
		Name      string `xml:"name"`
		URL       string `xml:"url"`
		Duration  int64  `xml:"duration"` // milliseconds
		Listeners int    `xml:"listeners"`
		Playcount int    `xml:"playcount"`
		Artist    struct {
			Name string `xml:"name"`
		} `xml:"artist"`
		Album struct {
			Artist string `xml:"artist"`
			Title  string `xml:"title"`
			Images []struct {
				Size string `xml:"size,attr"`
				URL  string `xml:",chardata"`
			} `xml:"image"`
		} `xml:"album"`
		Tags []struct {
			Name string `xml:"name"`
		} `xml:"toptags>tag"`
	} `xml:"track"`
}

// unmarshalTrackInfo parses the XML response from track.getInfo.
func unmarshalTrackInfo(data []byte) (*TrackInfo, error) {
	// Wrap inner XML in root element for proper unmarshaling
	wrapped := []byte("<root>" + string(data) + "</root>")

	var resp trackInfoResponse
	if err := xml.Unmarshal(wrapped, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal track info response: %w", err)
	}

	t := resp.Track
	info := &TrackInfo{
		Name:      t.Name,
		Artist:    t.Artist.Name,
		URL:       t.URL,
		Duration:  time.Duration(t.Duration) * time.Millisecond,
		Listeners: t.Listeners,
		Playcount: t.Playcount,
		Album: Album{
			Title:  t.Album.Title,
			Artist: t.Album.Artist,
		},
	}

	for _, img := range t.Album.Images {
		info.Album.Images = append(info.Album.Images, Image{Size: ImageSize(img.Size), URL: img.URL})
	}
	for _, tag := range t.Tags {
		info.Tags = append(info.Tags, tag.Name)
	}

	return info, nil
}
