package fetcher

import (
	"context"

	"ewintr.nl/tldw/model"
)

type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, videoID string) (model.VideoMetadata, error)
}
