package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jfmyers9/crate/internal/browser"
	"github.com/rs/zerolog"
)

const (
	loginURL = "https://www.last.fm/login"
	feedURL  = "https://www.last.fm/home/tracks"
)

// fakeElement is an in-memory page node
type fakeElement struct {
	text     string
	attrs    map[string]string
	children map[browser.Selector]*fakeElement
	keys     string
	clicks   int
	onClick  func()
}

func (e *fakeElement) Click() error {
	e.clicks++
	if e.onClick != nil {
		e.onClick()
	}
	return nil
}

func (e *fakeElement) SendKeys(text string) error {
	e.keys += text
	return nil
}

func (e *fakeElement) Text() (string, error) {
	return e.text, nil
}

func (e *fakeElement) Attribute(name string) (string, error) {
	return e.attrs[name], nil
}

func (e *fakeElement) Find(sel browser.Selector) (browser.Element, error) {
	child, ok := e.children[sel]
	if !ok {
		return nil, browser.ErrNoSuchElement
	}
	return child, nil
}

// fakeSession serves a fixed set of elements per URL
type fakeSession struct {
	url       string
	pages     map[string]map[browser.Selector][]*fakeElement
	navigated []string
	closed    int
}

func (s *fakeSession) Navigate(url string) error {
	s.url = url
	s.navigated = append(s.navigated, url)
	return nil
}

func (s *fakeSession) CurrentURL() (string, error) {
	return s.url, nil
}

func (s *fakeSession) Find(sel browser.Selector) (browser.Element, error) {
	els := s.pages[s.url][sel]
	if len(els) == 0 {
		return nil, browser.ErrNoSuchElement
	}
	return els[0], nil
}

func (s *fakeSession) WaitFor(sel browser.Selector, timeout time.Duration) ([]browser.Element, error) {
	els := s.pages[s.url][sel]
	if len(els) == 0 {
		return nil, browser.ErrTimeout
	}
	out := make([]browser.Element, len(els))
	for i, el := range els {
		out[i] = el
	}
	return out, nil
}

func (s *fakeSession) WaitForURLChange(url string, timeout time.Duration) error {
	if s.url == url {
		return browser.ErrTimeout
	}
	return nil
}

func (s *fakeSession) Close() error {
	s.closed++
	return nil
}

func feedEntry(link, title, artist string) *fakeElement {
	children := map[browser.Selector]*fakeElement{
		feedTitle:  {text: title},
		feedArtist: {text: artist},
	}
	if link != "" {
		children[feedPlayLink] = &fakeElement{attrs: map[string]string{"href": link}}
	}
	return &fakeElement{children: children}
}

type fixture struct {
	session  *fakeSession
	username *fakeElement
	password *fakeElement
	submit   *fakeElement
	consent  *fakeElement
}

// newFixture builds a last.fm login page and a feed with the given items.
// Submitting the login form redirects to the home page.
func newFixture(withConsent bool, items ...*fakeElement) *fixture {
	f := &fixture{
		username: &fakeElement{},
		password: &fakeElement{},
		consent:  &fakeElement{},
	}
	f.session = &fakeSession{pages: map[string]map[browser.Selector][]*fakeElement{}}
	f.submit = &fakeElement{onClick: func() { f.session.url = "https://www.last.fm/home" }}

	login := map[browser.Selector][]*fakeElement{
		usernameField: {f.username},
		passwordField: {f.password},
		submitButton:  {f.submit},
	}
	if withConsent {
		login[cookieAccept] = []*fakeElement{f.consent}
	}
	f.session.pages[loginURL] = login
	f.session.pages[feedURL] = map[browser.Selector][]*fakeElement{feedItem: items}
	return f
}

func (f *fixture) dialer() browser.Dialer {
	return func(ctx context.Context) (browser.Session, error) {
		return f.session, nil
	}
}

func testConfig() Config {
	return Config{
		Username:    "listener",
		Password:    "secret",
		LoginURL:    loginURL,
		FeedURL:     feedURL,
		WaitTimeout: time.Millisecond,
	}
}

func TestScrape_CollectsFeed(t *testing.T) {
	f := newFixture(true,
		feedEntry("https://video/abc", "Test Song (2:30)", "Test Artist"),
		feedEntry("", "No Link (1:00)", "Nobody"),
		feedEntry("https://video/def", "Other Song", "Other Artist"),
	)

	s := New(testConfig(), f.dialer(), zerolog.Nop())
	result := s.Scrape(context.Background())

	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Tracks) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(result.Tracks))
	}

	first := result.Tracks[0]
	if first.PlayLink != "https://video/abc" || first.Name != "Test Song" || first.Artist != "Test Artist" {
		t.Errorf("unexpected first track: %+v", first)
	}
	if result.Tracks[1].Name != "Other Song" {
		t.Errorf("expected feed order to be preserved, got %+v", result.Tracks[1])
	}

	if len(result.Skipped) != 1 || result.Skipped[0].Index != 1 {
		t.Fatalf("expected item 1 to be skipped, got %+v", result.Skipped)
	}
	if result.Skipped[0].Reason == "" {
		t.Error("expected a skip reason")
	}

	if f.consent.clicks != 1 {
		t.Errorf("expected consent popup to be clicked once, got %d", f.consent.clicks)
	}
	if f.username.keys != "listener" || f.password.keys != "secret" {
		t.Errorf("credentials entered as %q/%q", f.username.keys, f.password.keys)
	}
	if f.submit.clicks != 1 {
		t.Errorf("expected one login click, got %d", f.submit.clicks)
	}
	if f.session.closed != 1 {
		t.Errorf("expected session to be closed once, got %d", f.session.closed)
	}

	wantNav := []string{loginURL, feedURL}
	if len(f.session.navigated) != len(wantNav) {
		t.Fatalf("navigated %v, want %v", f.session.navigated, wantNav)
	}
	for i := range wantNav {
		if f.session.navigated[i] != wantNav[i] {
			t.Errorf("navigation %d = %q, want %q", i, f.session.navigated[i], wantNav[i])
		}
	}
}

func TestScrape_NoCookiePopup(t *testing.T) {
	f := newFixture(false, feedEntry("https://video/abc", "Song", "Artist"))

	result := New(testConfig(), f.dialer(), zerolog.Nop()).Scrape(context.Background())

	if result.Err != nil {
		t.Fatalf("missing consent popup should not fail the scrape: %v", result.Err)
	}
	if len(result.Tracks) != 1 {
		t.Errorf("expected 1 track, got %d", len(result.Tracks))
	}
}

func TestScrape_FeedTimeout(t *testing.T) {
	f := newFixture(true)

	result := New(testConfig(), f.dialer(), zerolog.Nop()).Scrape(context.Background())

	if !errors.Is(result.Err, browser.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", result.Err)
	}
	if len(result.Tracks) != 0 {
		t.Errorf("expected no tracks, got %d", len(result.Tracks))
	}
	if f.session.closed != 1 {
		t.Errorf("expected session to be closed once, got %d", f.session.closed)
	}
}

func TestScrape_LoginFormMissing(t *testing.T) {
	f := newFixture(false, feedEntry("https://video/abc", "Song", "Artist"))
	delete(f.session.pages[loginURL], usernameField)

	result := New(testConfig(), f.dialer(), zerolog.Nop()).Scrape(context.Background())

	if result.Err == nil {
		t.Fatal("expected error when login form is missing")
	}
	if len(result.Tracks) != 0 {
		t.Errorf("expected no tracks, got %d", len(result.Tracks))
	}
	if f.session.closed != 1 {
		t.Errorf("expected session to be closed once, got %d", f.session.closed)
	}
}

func TestScrape_LoginRejected(t *testing.T) {
	f := newFixture(false, feedEntry("https://video/abc", "Song", "Artist"))
	f.submit.onClick = nil // stays on the login page

	result := New(testConfig(), f.dialer(), zerolog.Nop()).Scrape(context.Background())

	if !errors.Is(result.Err, browser.ErrTimeout) {
		t.Fatalf("expected ErrTimeout, got %v", result.Err)
	}
	if f.session.closed != 1 {
		t.Errorf("expected session to be closed once, got %d", f.session.closed)
	}
}

func TestScrape_DialFailure(t *testing.T) {
	dialErr := errors.New("connection refused")
	dial := func(ctx context.Context) (browser.Session, error) {
		return nil, dialErr
	}

	result := New(testConfig(), dial, zerolog.Nop()).Scrape(context.Background())

	if !errors.Is(result.Err, dialErr) {
		t.Fatalf("expected dial error, got %v", result.Err)
	}
	if len(result.Tracks) != 0 {
		t.Errorf("expected no tracks, got %d", len(result.Tracks))
	}
}

func TestScrape_MissingCredentials(t *testing.T) {
	dialed := false
	dial := func(ctx context.Context) (browser.Session, error) {
		dialed = true
		return nil, errors.New("unreachable")
	}

	cfg := testConfig()
	cfg.Password = ""

	result := New(cfg, dial, zerolog.Nop()).Scrape(context.Background())

	if !errors.Is(result.Err, ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", result.Err)
	}
	if dialed {
		t.Error("browser should not be started without credentials")
	}
}
