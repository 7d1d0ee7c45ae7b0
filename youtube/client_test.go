package youtube

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"google.golang.org/api/option"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(context.Background(), Config{
		APIKey:  "test-key",
		Options: []option.ClientOption{option.WithEndpoint(server.URL + "/")},
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestListCaptionTracks(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/captions") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("videoId"); got != "dQw4w9WgXcQ" {
			t.Fatalf("videoId = %q", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []any{
				map[string]any{"id": "track-en"},
				map[string]any{"id": "track-de"},
			},
		})
	})

	ids, err := client.ListCaptionTracks(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("ListCaptionTracks: %v", err)
	}
	if len(ids) != 2 || ids[0] != "track-en" || ids[1] != "track-de" {
		t.Fatalf("unexpected ids %v", ids)
	}
}

func TestDownloadSRT(t *testing.T) {
	const srt = "1\n00:00:00,000 --> 00:00:01,000\nhello\n"
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/captions/track-en") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("tfmt"); got != "srt" {
			t.Fatalf("tfmt = %q", got)
		}
		_, _ = w.Write([]byte(srt))
	})

	body, err := client.DownloadSRT(context.Background(), "track-en")
	if err != nil {
		t.Fatalf("DownloadSRT: %v", err)
	}
	if body != srt {
		t.Fatalf("body = %q", body)
	}
}

func TestDownloadSRTForbidden(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"forbidden"}}`))
	})

	if _, err := client.DownloadSRT(context.Background(), "track-en"); err == nil {
		t.Fatal("expected error on 403")
	}
}

func TestSearchSkipsItemsWithoutVideoID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/search") {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("q") != "golang" || r.URL.Query().Get("type") != "video" {
			t.Fatalf("unexpected query %s", r.URL.RawQuery)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []any{
				map[string]any{
					"id": map[string]any{"videoId": "dQw4w9WgXcQ"},
					"snippet": map[string]any{
						"title":        "Go in 100 seconds",
						"description":  "fast",
						"channelTitle": "chan",
						"thumbnails":   map[string]any{"medium": map[string]any{"url": "https://img/medium.jpg"}},
					},
				},
				map[string]any{
					"id":      map[string]any{"channelId": "UC123"},
					"snippet": map[string]any{"title": "a channel"},
				},
			},
		})
	})

	videos, err := client.Search(context.Background(), "golang", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(videos) != 1 {
		t.Fatalf("expected 1 video, got %d", len(videos))
	}
	v := videos[0]
	if v.VideoID != "dQw4w9WgXcQ" || v.Title != "Go in 100 seconds" || v.Thumbnail != "https://img/medium.jpg" {
		t.Fatalf("unexpected video %+v", v)
	}
	if v.URL != "https://www.youtube.com/watch?v=dQw4w9WgXcQ" {
		t.Fatalf("URL = %q", v.URL)
	}
}
