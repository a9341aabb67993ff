package model

// VideoMetadata is the resolved identity of a candidate URL. The JSON field
// names follow the YouTube oEmbed payload, which is also the persisted form.
type VideoMetadata struct {
	ThumbnailURL string `json:"thumbnail_url"`
	Title        string `json:"title"`
	AuthorName   string `json:"author_name"`
}

// HistoryItem is one persisted record of a completed summarization. Items are
// created only when a summarization finishes with resolved metadata present
// and are immutable afterwards.
type HistoryItem struct {
	ID           string        `json:"id"`
	URL          string        `json:"url"`
	Summary      string        `json:"summary"`
	Language     string        `json:"language"`
	LanguageCode string        `json:"language_code,omitempty"`
	Timestamp    string        `json:"timestamp"`
	VideoMeta    VideoMetadata `json:"videoMeta"`
}
