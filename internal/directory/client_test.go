package directory

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const stationsJSON = `[
  {
    "stationuuid": "a1b2",
    "name": " KEXP 90.3 FM ",
    "url": "http://live.kexp.org/listen.pls",
    "url_resolved": "http://live.kexp.org/kexp128.mp3",
    "homepage": "https://kexp.org",
    "country": "United States",
    "codec": "MP3",
    "bitrate": 128,
    "tags": "alternative, seattle,indie"
  },
  {
    "stationuuid": "c3d4",
    "name": "Dead Entry",
    "url": "",
    "url_resolved": "",
    "tags": ""
  }
]`

func newTestClient(serverURL string) *Client {
	return NewClient(serverURL, "airwav-test/1.0", zerolog.Nop())
}

func TestSearchSuccess(t *testing.T) {
	var gotPath, gotQuery, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(stationsJSON))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	stations, err := client.Search(context.Background(), Query{Name: "kexp", Limit: 10})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if gotPath != "/json/stations/search" {
		t.Errorf("Unexpected request path: %s", gotPath)
	}
	if gotAgent != "airwav-test/1.0" {
		t.Errorf("Unexpected user agent: %s", gotAgent)
	}
	for _, want := range []string{"name=kexp", "limit=10", "order=clickcount", "reverse=true", "hidebroken=true"} {
		if !containsParam(gotQuery, want) {
			t.Errorf("Expected query to contain %q, got %q", want, gotQuery)
		}
	}

	// The record without a stream URL is dropped
	if len(stations) != 1 {
		t.Fatalf("Expected 1 station, got %d", len(stations))
	}

	station := stations[0]
	if station.UUID != "a1b2" {
		t.Errorf("Unexpected UUID: %s", station.UUID)
	}
	if station.Name != "KEXP 90.3 FM" {
		t.Errorf("Expected trimmed name, got %q", station.Name)
	}
	if station.StreamURL != "http://live.kexp.org/kexp128.mp3" {
		t.Errorf("Expected resolved URL to win, got %s", station.StreamURL)
	}
	if len(station.Tags) != 3 || station.Tags[1] != "seattle" {
		t.Errorf("Unexpected tags: %v", station.Tags)
	}
}

func TestBrowseUsesTagQuery(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(stationsJSON))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.Browse(context.Background(), "jazz", 20); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !containsParam(gotQuery, "tag=jazz") {
		t.Errorf("Expected tag=jazz in query, got %q", gotQuery)
	}
	if !containsParam(gotQuery, "limit=20") {
		t.Errorf("Expected limit=20 in query, got %q", gotQuery)
	}
}

func TestSearchEmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Search(context.Background(), Query{Name: "nothing"})

	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("Expected *LookupError, got %T", err)
	}
	if lookupErr.Kind != ErrEmpty {
		t.Errorf("Expected kind %s, got %s", ErrEmpty, lookupErr.Kind)
	}
}

func TestSearchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Search(context.Background(), Query{Name: "kexp"})

	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("Expected *LookupError, got %T", err)
	}
	if lookupErr.Kind != ErrBadResponse {
		t.Errorf("Expected kind %s, got %s", ErrBadResponse, lookupErr.Kind)
	}
}

func TestSearchMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Search(context.Background(), Query{Name: "kexp"})

	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("Expected *LookupError, got %T", err)
	}
	if lookupErr.Kind != ErrBadResponse {
		t.Errorf("Expected kind %s, got %s", ErrBadResponse, lookupErr.Kind)
	}
}

func TestSearchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Search(ctx, Query{Name: "kexp"})

	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("Expected *LookupError, got %T", err)
	}
	if lookupErr.Kind != ErrTimeout {
		t.Errorf("Expected kind %s, got %s", ErrTimeout, lookupErr.Kind)
	}
}

func TestSearchUnreachableHost(t *testing.T) {
	// A closed server yields a connection error
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL)
	_, err := client.Search(context.Background(), Query{Name: "kexp"})

	var lookupErr *LookupError
	if !errors.As(err, &lookupErr) {
		t.Fatalf("Expected *LookupError, got %T", err)
	}
	if lookupErr.Kind != ErrNetworkUnreachable {
		t.Errorf("Expected kind %s, got %s", ErrNetworkUnreachable, lookupErr.Kind)
	}
}

func containsParam(query, param string) bool {
	for _, part := range strings.Split(query, "&") {
		if part == param {
			return true
		}
	}
	return false
}
