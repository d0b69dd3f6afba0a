package scraper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jfmyers9/crate/internal/browser"
	"github.com/jfmyers9/crate/internal/music"
	"github.com/rs/zerolog"
)

// Page elements on last.fm
var (
	cookieAccept  = browser.ID("onetrust-accept-btn-handler")
	usernameField = browser.Name("username_or_email")
	passwordField = browser.Name("password")
	submitButton  = browser.Name("submit")
	feedItem      = browser.CSS(".recs-feed-item")
	feedPlayLink  = browser.CSS(".recs-feed-playlink")
	feedTitle     = browser.CSS(".recs-feed-title a")
	feedArtist    = browser.CSS(".recs-feed-description a")
)

// ErrMissingCredentials is returned when no username or password is configured
var ErrMissingCredentials = errors.New("scraper: username and password are required")

// Config holds scraper configuration
type Config struct {
	Username    string
	Password    string
	LoginURL    string
	FeedURL     string
	WaitTimeout time.Duration // Bound for each element or URL wait
}

// Skip records a feed item that could not be turned into a track
type Skip struct {
	Index  int    // Position of the item in the feed
	Reason string // Why the item was skipped
}

// Result is the outcome of a scrape. Tracks holds everything collected
// before Err (if any) ended the session.
type Result struct {
	Tracks  []music.Track
	Skipped []Skip
	Err     error
}

// Scraper logs into last.fm and reads the recommended tracks feed
type Scraper struct {
	config Config
	dial   browser.Dialer
	logger zerolog.Logger
}

// New creates a new Scraper
func New(cfg Config, dial browser.Dialer, logger zerolog.Logger) *Scraper {
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = 10 * time.Second
	}
	return &Scraper{
		config: cfg,
		dial:   dial,
		logger: logger.With().Str("component", "scraper").Logger(),
	}
}

// Scrape runs one browser session and returns the recommended tracks in
// feed order. It never returns an error directly: session-fatal failures
// are logged and reported in Result.Err alongside any tracks collected.
func (s *Scraper) Scrape(ctx context.Context) Result {
	var result Result

	// Credentials are checked before a browser is started
	if s.config.Username == "" || s.config.Password == "" {
		result.Err = ErrMissingCredentials
		s.logger.Error().Err(result.Err).Msg("Cannot log in")
		return result
	}

	// Start browser session
	session, err := s.dial(ctx)
	if err != nil {
		result.Err = fmt.Errorf("failed to start browser session: %w", err)
		s.logger.Error().Err(result.Err).Msg("Scrape failed")
		return result
	}
	defer func() {
		if err := session.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to close browser session")
		}
	}()

	if err := s.login(session); err != nil {
		result.Err = err
		s.logger.Error().Err(err).Msg("Scrape failed")
		return result
	}

	if err := s.readFeed(session, &result); err != nil {
		result.Err = err
		s.logger.Error().Err(err).Int("collected", len(result.Tracks)).Msg("Scrape failed")
		return result
	}

	s.logger.Info().
		Int("tracks", len(result.Tracks)).
		Int("skipped", len(result.Skipped)).
		Msg("Scrape complete")
	return result
}

// login signs in and waits until the browser leaves the login page
func (s *Scraper) login(session browser.Session) error {
	if err := session.Navigate(s.config.LoginURL); err != nil {
		return err
	}

	s.dismissCookieConsent(session)

	// Fill in and submit the login form
	fields, err := session.WaitFor(usernameField, s.config.WaitTimeout)
	if err != nil {
		return fmt.Errorf("login form not found: %w", err)
	}
	if err := fields[0].SendKeys(s.config.Username); err != nil {
		return fmt.Errorf("failed to enter username: %w", err)
	}

	password, err := session.Find(passwordField)
	if err != nil {
		return fmt.Errorf("password field not found: %w", err)
	}
	if err := password.SendKeys(s.config.Password); err != nil {
		return fmt.Errorf("failed to enter password: %w", err)
	}

	submit, err := session.Find(submitButton)
	if err != nil {
		return fmt.Errorf("login button not found: %w", err)
	}
	if err := submit.Click(); err != nil {
		return fmt.Errorf("failed to submit login: %w", err)
	}

	// Last.fm redirects away from the login page on success
	if err := session.WaitForURLChange(s.config.LoginURL, s.config.WaitTimeout); err != nil {
		return fmt.Errorf("login did not complete: %w", err)
	}

	s.logger.Info().Str("username", s.config.Username).Msg("Logged in")
	return nil
}

// dismissCookieConsent clicks the consent banner if it shows up in time
func (s *Scraper) dismissCookieConsent(session browser.Session) {
	buttons, err := session.WaitFor(cookieAccept, s.config.WaitTimeout)
	if err != nil {
		s.logger.Info().Msg("No cookie consent popup found, continuing")
		return
	}

	if err := buttons[0].Click(); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to close cookie consent popup")
		return
	}
	s.logger.Info().Msg("Cookie consent popup closed")
}

// readFeed extracts a track from every feed item, skipping broken items
func (s *Scraper) readFeed(session browser.Session, result *Result) error {
	if err := session.Navigate(s.config.FeedURL); err != nil {
		return err
	}

	// Wait for the feed to render
	items, err := session.WaitFor(feedItem, s.config.WaitTimeout)
	if err != nil {
		return fmt.Errorf("recommendations feed not found: %w", err)
	}

	for i, item := range items {
		track, err := readItem(item)
		if err != nil {
			s.logger.Warn().Err(err).Int("item", i).Msg("Skipping feed item")
			result.Skipped = append(result.Skipped, Skip{Index: i, Reason: err.Error()})
			continue
		}

		s.logger.Info().
			Str("playlink", track.PlayLink).
			Str("track", track.Name).
			Str("artist", track.Artist).
			Msg("Found recommendation")
		result.Tracks = append(result.Tracks, track)
	}

	return nil
}

// readItem reads the play link, title and artist of one feed item
func readItem(item browser.Element) (music.Track, error) {
	link, err := item.Find(feedPlayLink)
	if err != nil {
		return music.Track{}, fmt.Errorf("playlink missing: %w", err)
	}
	href, err := link.Attribute("href")
	if err != nil {
		return music.Track{}, fmt.Errorf("playlink href unreadable: %w", err)
	}
	if href == "" {
		return music.Track{}, errors.New("playlink has no href")
	}

	title, err := elementText(item, feedTitle)
	if err != nil {
		return music.Track{}, fmt.Errorf("title missing: %w", err)
	}

	artist, err := elementText(item, feedArtist)
	if err != nil {
		return music.Track{}, fmt.Errorf("artist missing: %w", err)
	}

	return music.NewTrack(href, title, artist), nil
}

func elementText(parent browser.Element, sel browser.Selector) (string, error) {
	el, err := parent.Find(sel)
	if err != nil {
		return "", err
	}
	return el.Text()
}
