package genius

// Song is a Genius song as returned in search hits.
type Song struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	FullTitle       string `json:"full_title"`
	URL             string `json:"url"`                // Lyrics page on genius.com
	SongArtImageURL string `json:"song_art_image_url"` // Cover art image
	PrimaryArtist   Artist `json:"primary_artist"`
}

// Artist is a Genius artist.
type Artist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Hit is one search result.
type Hit struct {
	Type   string `json:"type"`
	Result Song   `json:"result"`
}

// meta is the status block present in every API response.
type meta struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// envelope is the outer shape of every API response.
type envelope[T any] struct {
	Meta     meta `json:"meta"`
	Response T    `json:"response"`

	// OAuth failures use a different shape
	ErrorCode        string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

type searchResponse struct {
	Hits []Hit `json:"hits"`
}
