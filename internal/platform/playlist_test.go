package platform

import "testing"

func TestIsPlaylistURL(t *testing.T) {
	tests := []struct {
		url      string
		expected bool
	}{
		{"http://somafm.com/groovesalad.pls", true},
		{"http://example.com/stream.m3u", true},
		{"https://example.com/live/playlist.m3u8", true},
		{"http://example.com/stream.M3U", true},
		{"http://live.kexp.org/kexp128.mp3", false},
		{"http://example.com/listen?format=pls", false},
		{"://not a url", false},
	}

	for _, tt := range tests {
		if got := IsPlaylistURL(tt.url); got != tt.expected {
			t.Errorf("IsPlaylistURL(%q) = %v, expected %v", tt.url, got, tt.expected)
		}
	}
}

func TestParsePlaylistM3U(t *testing.T) {
	data := `#EXTM3U
#EXTINF:-1,Groove Salad
http://ice1.somafm.com/groovesalad-128-mp3

http://ice2.somafm.com/groovesalad-128-mp3
`

	urls, err := ParsePlaylist(data)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("Expected 2 URLs, got %d", len(urls))
	}
	if urls[0] != "http://ice1.somafm.com/groovesalad-128-mp3" {
		t.Errorf("Unexpected first URL: %s", urls[0])
	}
}

func TestParsePlaylistPLS(t *testing.T) {
	data := `[playlist]
numberofentries=2
File1=http://ice1.somafm.com/groovesalad-128-mp3
Title1=Groove Salad
File2=https://ice2.somafm.com/groovesalad-128-mp3
Title2=Groove Salad (backup)
Version=2
`

	urls, err := ParsePlaylist(data)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(urls) != 2 {
		t.Fatalf("Expected 2 URLs, got %d", len(urls))
	}
	if urls[1] != "https://ice2.somafm.com/groovesalad-128-mp3" {
		t.Errorf("Unexpected second URL: %s", urls[1])
	}
}

func TestParsePlaylistErrors(t *testing.T) {
	if _, err := ParsePlaylist(""); err == nil {
		t.Error("Expected error for empty playlist")
	}

	if _, err := ParsePlaylist("#EXTM3U\n# only comments\n"); err == nil {
		t.Error("Expected error for playlist without URLs")
	}

	if _, err := ParsePlaylist("[playlist]\nTitle1=no files here\n"); err == nil {
		t.Error("Expected error for PLS without File entries")
	}
}
