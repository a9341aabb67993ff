package summarize

import (
	"context"
	"errors"
)

var (
	// ErrInvalidURL is returned when the candidate URL does not match one
	// of the accepted video URL shapes.
	ErrInvalidURL = errors.New("not a valid youtube video url (e.g., youtube.com/watch?v=...)")

	// ErrInvalidCredentials marks a generation failure caused by a
	// rejected or missing API key.
	ErrInvalidCredentials = errors.New("the api key is invalid or missing, check your configuration")
)

// Stream is a lazy, finite, non-restartable sequence of text chunks from the
// generation service. Recv returns io.EOF on normal completion.
type Stream interface {
	Recv() (string, error)
	Close() error
}

// Streamer opens a summarization stream for a video in the given language.
type Streamer interface {
	Start(ctx context.Context, videoURL, language string) (Stream, error)
}
