// Package lastfm provides a client library for the Last.fm API 2.0.
//
// # Overview
//
// This package implements the read-only Last.fm methods that are
// authenticated with an API key alone. No session key, signature or
// user authorization is involved.
//
// # Quick Start
//
// Create a client with your API key:
//
//	import "github.com/jfmyers9/crate/pkg/lastfm"
//
//	client, err := lastfm.NewClient(lastfm.Config{
//	    APIKey: "your-api-key",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Track Info
//
//	info, err := client.Track().GetInfo(ctx, "The Beatles", "Yesterday")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(info.Album.Title)          // "Help!"
//	fmt.Println(info.Album.LargestImage()) // cover art URL
//
// # Error Handling
//
// The package provides structured errors with retry information:
//
//	info, err := client.Track().GetInfo(ctx, artist, track)
//	if err != nil {
//	    if errors.Is(err, lastfm.ErrNotFound) {
//	        // Last.fm does not know this track
//	    }
//	    var lastfmErr *lastfm.Error
//	    if errors.As(err, &lastfmErr) && lastfmErr.Temporary() {
//	        // Try again later
//	    }
//	}
//
// # Retries
//
// Calls are made once by default. Set Config.MaxRetries to retry
// temporary API errors, 5xx responses and network errors with
// exponential backoff starting at Config.RetryBackoff.
//
// # Context Support
//
// All API methods accept a context.Context for cancellation and timeouts:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	info, err := client.Track().GetInfo(ctx, artist, track)
//
// # API Coverage
//
// Currently implemented:
//   - track.getInfo
//
// # Last.fm API Documentation
//
// https://www.last.fm/api/show/track.getInfo
package lastfm
