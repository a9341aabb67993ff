package fetcher

import (
	"context"
	"fmt"

	"ewintr.nl/tldw/model"
	"google.golang.org/api/youtube/v3"
)

// Youtube resolves video metadata through the YouTube Data API. Used when an
// API key is configured, since it is not rate limited the way the anonymous
// oEmbed endpoint is.
type Youtube struct {
	client *youtube.Service
}

func NewYoutube(client *youtube.Service) *Youtube {
	return &Youtube{client: client}
}

func (y *Youtube) FetchMetadata(ctx context.Context, videoID string) (model.VideoMetadata, error) {
	response, err := y.client.Videos.
		List([]string{"snippet"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return model.VideoMetadata{}, fmt.Errorf("youtube: failed to fetch video %s: %w", videoID, err)
	}
	if len(response.Items) == 0 || response.Items[0].Snippet == nil {
		return model.VideoMetadata{}, fmt.Errorf("youtube: video %s not found", videoID)
	}

	snippet := response.Items[0].Snippet
	md := model.VideoMetadata{
		Title:      snippet.Title,
		AuthorName: snippet.ChannelTitle,
	}
	if snippet.Thumbnails != nil {
		switch {
		case snippet.Thumbnails.Medium != nil:
			md.ThumbnailURL = snippet.Thumbnails.Medium.Url
		case snippet.Thumbnails.Default != nil:
			md.ThumbnailURL = snippet.Thumbnails.Default.Url
		}
	}

	return md, nil
}
