// Package youtube wraps the YouTube Data API v3 calls the backend relies on:
// caption track listing, caption download and video search.
package youtube

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"widviz/types"
	"widviz/videoid"
)

// maxCaptionBytes caps a downloaded caption body.
const maxCaptionBytes = 4 << 20

// Config selects how the client authenticates. Caption download requires
// OAuth credentials; listing and search work with an API key alone.
type Config struct {
	APIKey          string
	CredentialsFile string
	// Options are appended last; tests use them to point at a fake endpoint.
	Options []option.ClientOption
}

// Client is a thin adapter over *youtube.Service.
type Client struct {
	service *youtube.Service
}

// NewClient builds the underlying service from cfg.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	var opts []option.ClientOption

	switch {
	case cfg.CredentialsFile != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read credentials file: %w", err)
		}
		jwt, err := google.JWTConfigFromJSON(data, youtube.YoutubeForceSslScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account: %w", err)
		}
		opts = append(opts, option.WithHTTPClient(jwt.Client(ctx)))
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	opts = append(opts, cfg.Options...)

	service, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create YouTube service: %w", err)
	}
	return &Client{service: service}, nil
}

// ListCaptionTracks returns caption track IDs for videoID in platform order.
func (c *Client) ListCaptionTracks(ctx context.Context, videoID string) ([]string, error) {
	resp, err := c.service.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("captions.list %s: %w", videoID, err)
	}
	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item != nil && item.Id != "" {
			ids = append(ids, item.Id)
		}
	}
	return ids, nil
}

// DownloadSRT downloads a caption track in SubRip format.
func (c *Client) DownloadSRT(ctx context.Context, trackID string) (string, error) {
	resp, err := c.service.Captions.Download(trackID).Tfmt("srt").Context(ctx).Download()
	if err != nil {
		return "", fmt.Errorf("captions.download %s: %w", trackID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("captions.download %s: status %d", trackID, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCaptionBytes))
	if err != nil {
		return "", fmt.Errorf("read caption body: %w", err)
	}
	return string(body), nil
}

// Search runs search.list restricted to videos.
func (c *Client) Search(ctx context.Context, query string, maxResults int64) ([]types.VideoSearchResult, error) {
	resp, err := c.service.Search.List([]string{"snippet"}).
		Q(query).
		MaxResults(maxResults).
		Type("video").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("search.list: %w", err)
	}

	videos := make([]types.VideoSearchResult, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item == nil || item.Id == nil || item.Id.VideoId == "" {
			slog.Warn("search result without video id, skipping")
			continue
		}
		v := types.VideoSearchResult{
			VideoID: item.Id.VideoId,
			URL:     videoid.WatchURL(item.Id.VideoId),
		}
		if s := item.Snippet; s != nil {
			v.Title = s.Title
			v.Description = s.Description
			v.ChannelTitle = s.ChannelTitle
			if s.Thumbnails != nil && s.Thumbnails.Medium != nil {
				v.Thumbnail = s.Thumbnails.Medium.Url
			}
		}
		videos = append(videos, v)
	}
	return videos, nil
}
