package genius

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const searchResponseJSON = `{
  "meta": {"status": 200},
  "response": {
    "hits": [
      {
        "type": "song",
        "result": {
          "id": 1,
          "title": "Yesterday (Remastered)",
          "url": "https://genius.com/The-beatles-yesterday-remastered-lyrics",
          "song_art_image_url": "https://images.genius.com/remastered.jpg",
          "primary_artist": {"id": 10, "name": "The Beatles"}
        }
      },
      {
        "type": "song",
        "result": {
          "id": 2,
          "title": "Yesterday",
          "url": "https://genius.com/The-beatles-yesterday-lyrics",
          "song_art_image_url": "https://images.genius.com/yesterday.jpg",
          "primary_artist": {"id": 10, "name": "The Beatles"}
        }
      }
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(Config{
		AccessToken: "test-token",
		BaseURL:     server.URL,
	})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	return client
}

func TestNewClient(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Error("expected error without access token")
	}

	client, err := NewClient(Config{AccessToken: "token"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}
	if client.httpClient == nil {
		t.Error("expected default HTTP client")
	}
}

func TestClient_Search(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET request, got %s", r.Method)
		}
		if r.URL.Path != "/search" {
			t.Errorf("expected /search, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("q"); got != "Yesterday The Beatles" {
			t.Errorf("q = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchResponseJSON))
	})

	hits, err := client.Search(context.Background(), "Yesterday The Beatles")
	if err != nil {
		t.Fatalf("Search() failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}
	if hits[1].Result.PrimaryArtist.Name != "The Beatles" {
		t.Errorf("unexpected artist: %q", hits[1].Result.PrimaryArtist.Name)
	}
}

func TestClient_SearchEmptyQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty query")
	})

	if _, err := client.Search(context.Background(), "  "); !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestClient_FindSong(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(searchResponseJSON))
	})

	song, err := client.FindSong(context.Background(), "yesterday", "THE BEATLES")
	if err != nil {
		t.Fatalf("FindSong() failed: %v", err)
	}
	if song == nil {
		t.Fatal("expected a match")
	}
	if song.ID != 2 {
		t.Errorf("expected exact title match (id 2), got id %d", song.ID)
	}
	if song.URL != "https://genius.com/The-beatles-yesterday-lyrics" {
		t.Errorf("URL = %q", song.URL)
	}
	if song.SongArtImageURL != "https://images.genius.com/yesterday.jpg" {
		t.Errorf("SongArtImageURL = %q", song.SongArtImageURL)
	}

	song, err = client.FindSong(context.Background(), "Nonexistent", "Nobody")
	if err != nil {
		t.Fatalf("FindSong() failed: %v", err)
	}
	if song != nil {
		t.Errorf("expected no match, got %+v", song)
	}
}

func TestClient_Errors(t *testing.T) {
	tests := []struct {
		name        string
		statusCode  int
		response    string
		wantStatus  int
		errContains string
	}{
		{
			name:        "meta error",
			statusCode:  http.StatusUnauthorized,
			response:    `{"meta": {"status": 401, "message": "This call requires an access_token."}}`,
			wantStatus:  http.StatusUnauthorized,
			errContains: "access_token",
		},
		{
			name:        "oauth error",
			statusCode:  http.StatusUnauthorized,
			response:    `{"error": "invalid_token", "error_description": "The access token provided is expired"}`,
			wantStatus:  http.StatusUnauthorized,
			errContains: "invalid_token",
		},
		{
			name:        "non-json server error",
			statusCode:  http.StatusBadGateway,
			response:    `<html>bad gateway</html>`,
			wantStatus:  http.StatusBadGateway,
			errContains: "error 502",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.response))
			})

			_, err := client.Search(context.Background(), "anything")
			if err == nil {
				t.Fatal("expected error")
			}

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %T: %v", err, err)
			}
			if apiErr.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", apiErr.Status, tt.wantStatus)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.errContains)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	err := &Error{Status: http.StatusUnauthorized, Message: "expired"}
	if !errors.Is(err, ErrUnauthorized) {
		t.Error("expected errors.Is to match ErrUnauthorized")
	}
	if !err.Unauthorized() {
		t.Error("expected Unauthorized() to be true")
	}
	if errors.Is(&Error{Status: http.StatusNotFound}, ErrUnauthorized) {
		t.Error("404 should not match ErrUnauthorized")
	}
}

func TestMatch(t *testing.T) {
	hits := []Hit{
		{Result: Song{ID: 1, Title: "Foo", PrimaryArtist: Artist{Name: "Bar"}}},
		{Result: Song{ID: 2, Title: "foo", PrimaryArtist: Artist{Name: "BAR"}}},
		{Result: Song{ID: 3, Title: "Foo", PrimaryArtist: Artist{Name: "Baz"}}},
	}

	tests := []struct {
		name   string
		title  string
		artist string
		wantID int64
	}{
		{name: "first wins on ties", title: "Foo", artist: "Bar", wantID: 1},
		{name: "case-insensitive", title: "FOO", artist: "bar", wantID: 1},
		{name: "artist must match", title: "Foo", artist: "Baz", wantID: 3},
		{name: "no match", title: "Nonexistent", artist: "Nobody", wantID: 0},
		{name: "partial title is not a match", title: "Fo", artist: "Bar", wantID: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			song := Match(hits, tt.title, tt.artist)
			if tt.wantID == 0 {
				if song != nil {
					t.Errorf("expected no match, got id %d", song.ID)
				}
				return
			}
			if song == nil {
				t.Fatalf("expected id %d, got no match", tt.wantID)
			}
			if song.ID != tt.wantID {
				t.Errorf("got id %d, want %d", song.ID, tt.wantID)
			}
		})
	}

	if Match(nil, "Foo", "Bar") != nil {
		t.Error("expected nil for empty hit list")
	}
}
