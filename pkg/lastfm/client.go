// Package lastfm provides a client for the Last.fm API 2.0.
//
// This package implements the read-only parts of the Last.fm API that
// need only an API key. It is designed to be used as a standalone SDK.
//
// Example usage:
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
//	info, err := client.Track().GetInfo(ctx, "The Beatles", "Yesterday")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Album:", info.Album.Title)
package lastfm

import (
	"net/http"
	"time"
)

// Config holds client configuration.
type Config struct {
	APIKey       string        // Required: Last.fm API key
	HTTPClient   *http.Client  // Optional: HTTP client (defaults to http.DefaultClient)
	BaseURL      string        // Optional: Base URL for API (defaults to Last.fm API, used for testing)
	MaxRetries   int           // Optional: Attempts per call for temporary failures (defaults to 1, no retry)
	RetryBackoff time.Duration // Optional: Initial backoff between attempts (defaults to 1s)
	Logger       Logger        // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Last.fm API operations.
type Client struct {
	apiKey       string
	httpClient   *http.Client
	baseURL      string
	maxRetries   int
	retryBackoff time.Duration
	logger       Logger

	track *TrackService
}

const (
	// DefaultBaseURL is the default Last.fm API endpoint.
	DefaultBaseURL = "https://ws.audioscrobbler.com/2.0/"
)

// NewClient creates a new Last.fm API client.
//
// Returns ErrInvalidConfig if the API key is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, ErrInvalidConfig
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}

	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = 1 * time.Second
	}

	c := &Client{
		apiKey:       cfg.APIKey,
		httpClient:   httpClient,
		baseURL:      baseURL,
		maxRetries:   maxRetries,
		retryBackoff: backoff,
		logger:       cfg.Logger,
	}

	c.track = &TrackService{client: c}

	return c, nil
}

// Track returns the track service.
func (c *Client) Track() *TrackService {
	return c.track
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
