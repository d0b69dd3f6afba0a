package genius

import (
	"fmt"
	"net/http"
	"time"
)

// Config holds client configuration.
type Config struct {
	AccessToken string       // Required: Genius API client access token
	HTTPClient  *http.Client // Optional: HTTP client (defaults to a 30s timeout client)
	BaseURL     string       // Optional: Base URL for API (defaults to Genius API, used for testing)
	UserAgent   string       // Optional: User-Agent header
	Logger      Logger       // Optional: Logger interface for debug logging
}

// Logger is an optional interface for logging.
type Logger interface {
	// Debugf logs a debug message with format and arguments.
	Debugf(format string, args ...interface{})
}

// Client is the main entry point for Genius API operations.
type Client struct {
	accessToken string
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	logger      Logger
}

const (
	// DefaultBaseURL is the default Genius API endpoint.
	DefaultBaseURL = "https://api.genius.com"

	defaultUserAgent = "crate/1.0"
)

// NewClient creates a new Genius API client.
//
// Returns an error if the access token is missing.
func NewClient(cfg Config) (*Client, error) {
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("genius: AccessToken is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		accessToken: cfg.AccessToken,
		httpClient:  httpClient,
		baseURL:     baseURL,
		userAgent:   userAgent,
		logger:      cfg.Logger,
	}, nil
}

// logDebugf logs a debug message if a logger is configured.
func (c *Client) logDebugf(format string, args ...interface{}) {
	if c.logger != nil {
		c.logger.Debugf(format, args...)
	}
}
