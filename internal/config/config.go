package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// placeholderOutputDir is the sample value shipped in example .env files
const placeholderOutputDir = "/path/to/your/navidrome/music"

var (
	// ErrInvalidOutputDir is returned when no usable output directory is configured
	ErrInvalidOutputDir = errors.New("config: output directory is not configured")

	// ErrMissingCredentials is returned when Last.fm login credentials are absent
	ErrMissingCredentials = errors.New("config: Last.fm username and password are required")

	// ErrMissingGeniusKey is returned when no Genius API key is configured
	ErrMissingGeniusKey = errors.New("config: Genius API key is required")
)

// Config holds application configuration
type Config struct {
	// Directory where tagged MP3s and sidecar files are written
	OutputDir string

	// How long to wait for each element or URL change in the browser
	WaitTimeout time.Duration

	// Number of tracks fetched in parallel (1 = sequential)
	Concurrency int

	LastFM    LastFMConfig
	Genius    GeniusConfig
	WebDriver WebDriverConfig
	Lyrics    LyricsConfig
	Tags      TagsConfig
	YTDLP     YTDLPConfig
}

// LastFMConfig holds Last.fm login and API settings
type LastFMConfig struct {
	Username string
	Password string
	APIKey   string // Optional: enables album enrichment via track.getInfo
	LoginURL string
	FeedURL  string
}

// GeniusConfig holds Genius API settings
type GeniusConfig struct {
	APIKey  string
	BaseURL string
}

// WebDriverConfig holds the remote browser endpoint
type WebDriverConfig struct {
	URL     string
	Browser string
}

// LyricsConfig controls how lyrics pages are stored
type LyricsConfig struct {
	// Raw writes the fetched lyrics page unchanged instead of extracting text
	Raw bool
}

// TagsConfig controls ID3 frame handling
type TagsConfig struct {
	// AppendFrames adds cover/lyrics frames without removing existing ones
	AppendFrames bool
}

// YTDLPConfig controls the yt-dlp binary
type YTDLPConfig struct {
	// Install downloads a yt-dlp binary when none is found
	Install bool
}

// envBindings maps config keys to the environment variables they read
var envBindings = map[string]string{
	"output_dir":         "NAVIDROME_MUSIC_DIR",
	"wait_timeout":       "CRATE_WAIT_TIMEOUT",
	"concurrency":        "CRATE_CONCURRENCY",
	"lastfm.username":    "LASTFM_USERNAME",
	"lastfm.password":    "LASTFM_PASSWORD",
	"lastfm.api_key":     "LASTFM_API_KEY",
	"lastfm.login_url":   "CRATE_LOGIN_URL",
	"lastfm.feed_url":    "CRATE_FEED_URL",
	"genius.api_key":     "GENIUS_API_KEY",
	"genius.base_url":    "GENIUS_API_URL",
	"webdriver.url":      "WEBDRIVER_URL",
	"webdriver.browser":  "WEBDRIVER_BROWSER",
	"lyrics.raw":         "CRATE_LYRICS_RAW",
	"tags.append_frames": "CRATE_TAGS_APPEND",
	"ytdlp.install":      "CRATE_YTDLP_INSTALL",
}

// Load reads configuration from .env, the config file and the environment
func Load() (*Config, error) {
	// .env is optional; variables already set in the environment win
	_ = godotenv.Load()

	return load(getConfigDir())
}

func load(configDir string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetDefault("wait_timeout", 10*time.Second)
	v.SetDefault("concurrency", 1)
	v.SetDefault("lastfm.login_url", "https://www.last.fm/login")
	v.SetDefault("lastfm.feed_url", "https://www.last.fm/home/tracks")
	v.SetDefault("genius.base_url", "https://api.genius.com")
	v.SetDefault("webdriver.url", "http://localhost:4444/wd/hub")
	v.SetDefault("webdriver.browser", "chrome")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	cfg := &Config{
		OutputDir:   v.GetString("output_dir"),
		WaitTimeout: v.GetDuration("wait_timeout"),
		Concurrency: v.GetInt("concurrency"),
		LastFM: LastFMConfig{
			Username: v.GetString("lastfm.username"),
			Password: v.GetString("lastfm.password"),
			APIKey:   v.GetString("lastfm.api_key"),
			LoginURL: v.GetString("lastfm.login_url"),
			FeedURL:  v.GetString("lastfm.feed_url"),
		},
		Genius: GeniusConfig{
			APIKey:  v.GetString("genius.api_key"),
			BaseURL: v.GetString("genius.base_url"),
		},
		WebDriver: WebDriverConfig{
			URL:     v.GetString("webdriver.url"),
			Browser: v.GetString("webdriver.browser"),
		},
		Lyrics: LyricsConfig{
			Raw: v.GetBool("lyrics.raw"),
		},
		Tags: TagsConfig{
			AppendFrames: v.GetBool("tags.append_frames"),
		},
		YTDLP: YTDLPConfig{
			Install: v.GetBool("ytdlp.install"),
		},
	}

	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}

	return cfg, nil
}

// ValidateOutputDir checks that the output directory is set to a real path
func (c *Config) ValidateOutputDir() error {
	dir := strings.TrimSpace(c.OutputDir)
	if dir == "" || filepath.Clean(dir) == placeholderOutputDir {
		return ErrInvalidOutputDir
	}
	return nil
}

// ValidateLogin checks that Last.fm credentials are present
func (c *Config) ValidateLogin() error {
	if c.LastFM.Username == "" || c.LastFM.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

// ValidateGenius checks that a Genius API key is present
func (c *Config) ValidateGenius() error {
	if c.Genius.APIKey == "" {
		return ErrMissingGeniusKey
	}
	return nil
}

// Validate checks everything the full pipeline needs
func (c *Config) Validate() error {
	return errors.Join(c.ValidateOutputDir(), c.ValidateLogin(), c.ValidateGenius())
}

// getConfigDir returns the configuration directory path
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(homeDir, ".config", "crate")
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}
