package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"ewintr.nl/tldw/model"
)

const oEmbedEndpoint = "https://www.youtube.com/oembed"

// OEmbed resolves video metadata through the public YouTube oEmbed endpoint.
// It needs no API key, which makes it the default backend.
type OEmbed struct {
	endpoint string
	client   *http.Client
}

func NewOEmbed() *OEmbed {
	return &OEmbed{
		endpoint: oEmbedEndpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// NewOEmbedWithEndpoint exists for tests that point the fetcher at a local
// server.
func NewOEmbedWithEndpoint(endpoint string) *OEmbed {
	o := NewOEmbed()
	o.endpoint = endpoint
	return o
}

func (o *OEmbed) FetchMetadata(ctx context.Context, videoID string) (model.VideoMetadata, error) {
	watchURL := fmt.Sprintf("https://www.youtube.com/watch?v=%s", videoID)
	reqURL := fmt.Sprintf("%s?format=json&url=%s", o.endpoint, url.QueryEscape(watchURL))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return model.VideoMetadata{}, fmt.Errorf("oembed: failed to create request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return model.VideoMetadata{}, fmt.Errorf("oembed: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.VideoMetadata{}, fmt.Errorf("oembed: unexpected status %d for video %s", resp.StatusCode, videoID)
	}

	var md model.VideoMetadata
	if err := json.NewDecoder(resp.Body).Decode(&md); err != nil {
		return model.VideoMetadata{}, fmt.Errorf("oembed: failed to parse response: %w", err)
	}

	return md, nil
}
