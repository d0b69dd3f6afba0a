package genius

import (
	"context"
	"net/url"
	"strings"
)

// Search runs a free-text search and returns the hits in API order.
//
// Example:
//
//	hits, err := client.Search(ctx, "Yesterday The Beatles")
func (c *Client) Search(ctx context.Context, query string) ([]Hit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	var resp searchResponse
	if err := get(ctx, c, "/search", url.Values{"q": {query}}, &resp); err != nil {
		return nil, err
	}
	return resp.Hits, nil
}

// FindSong searches for "title artist" and returns the first hit whose
// title and primary artist equal the request, ignoring case. It returns
// nil and no error when nothing matches.
//
// Example:
//
//	song, err := client.FindSong(ctx, "Yesterday", "The Beatles")
//	if err == nil && song != nil {
//	    fmt.Println(song.URL, song.SongArtImageURL)
//	}
func (c *Client) FindSong(ctx context.Context, title, artist string) (*Song, error) {
	hits, err := c.Search(ctx, title+" "+artist)
	if err != nil {
		return nil, err
	}
	return Match(hits, title, artist), nil
}

// Match returns the first hit whose title and primary artist name equal
// title and artist case-insensitively, or nil.
func Match(hits []Hit, title, artist string) *Song {
	for i := range hits {
		song := &hits[i].Result
		if strings.EqualFold(song.Title, title) && strings.EqualFold(song.PrimaryArtist.Name, artist) {
			return song
		}
	}
	return nil
}
