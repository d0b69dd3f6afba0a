// Package genius provides a minimal client for the Genius API.
//
// # Overview
//
// Only song search is implemented. It is enough to resolve a track title
// and artist to a lyrics page URL and a cover art image URL.
//
// # Quick Start
//
//	client, err := genius.NewClient(genius.Config{
//	    AccessToken: os.Getenv("GENIUS_API_KEY"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	song, err := client.FindSong(ctx, "Yesterday", "The Beatles")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if song == nil {
//	    fmt.Println("no match")
//	    return
//	}
//	fmt.Println("lyrics:", song.URL)
//	fmt.Println("cover:", song.SongArtImageURL)
//
// # Matching
//
// FindSong searches for "title artist" and keeps the first hit whose
// title and primary artist name are equal to the request ignoring case.
// Hits are considered in the order the API returns them.
//
// # Error Handling
//
// API failures are returned as *genius.Error carrying the HTTP status:
//
//	var apiErr *genius.Error
//	if errors.As(err, &apiErr) && apiErr.Unauthorized() {
//	    // Check GENIUS_API_KEY
//	}
//
// # Genius API Documentation
//
// https://docs.genius.com/
package genius
