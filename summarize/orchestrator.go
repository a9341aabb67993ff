package summarize

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"ewintr.nl/tldw/model"
	"ewintr.nl/tldw/storage"
	"github.com/google/uuid"
)

// Session holds the state of one summarization: the candidate URL, the chosen
// language, the metadata resolved for the URL (if any) and the raw summary
// buffer as received so far. The structured document is always re-derived
// from the buffer, never stored.
type Session struct {
	URL      string
	Language model.LanguageOption
	Meta     *model.VideoMetadata

	buffer strings.Builder
}

func (s *Session) Append(chunk string) {
	s.buffer.WriteString(chunk)
}

func (s *Session) Text() string {
	return s.buffer.String()
}

func (s *Session) Reset() {
	s.buffer.Reset()
}

func (s *Session) Document() model.SummaryDocument {
	return model.ParseSummary(s.Text())
}

// Export renders the buffer as plain text for clipboard use.
func (s *Session) Export() string {
	return model.ExportSummary(s.Text())
}

// Summarizer drives one summarization attempt: validate, stream, record.
type Summarizer struct {
	streamer Streamer
	history  *storage.HistoryStore
	logger   *slog.Logger
	now      func() time.Time
}

func NewSummarizer(streamer Streamer, history *storage.HistoryStore, logger *slog.Logger) *Summarizer {
	return &Summarizer{
		streamer: streamer,
		history:  history,
		logger:   logger,
		now:      time.Now,
	}
}

// Summarize streams a summary for the session's URL, appending each chunk to
// the session buffer in arrival order and passing it to onChunk. On normal
// completion a history item is recorded when metadata was resolved; recording
// is best-effort and never fails the summarization. On any stream failure the
// buffer is reset, nothing is recorded and a single descriptive error is
// returned.
func (s *Summarizer) Summarize(ctx context.Context, sess *Session, onChunk func(chunk string)) error {
	if !model.IsVideoURL(sess.URL) {
		return ErrInvalidURL
	}

	sess.Reset()
	stream, err := s.streamer.Start(ctx, sess.URL, sess.Language.Name)
	if err != nil {
		return generationErr(err)
	}
	defer stream.Close()

	for {
		chunk, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			sess.Reset()
			return generationErr(err)
		}
		sess.Append(chunk)
		if onChunk != nil {
			onChunk(chunk)
		}
	}

	s.record(sess)

	return nil
}

// record writes a history item for a completed session. Skipped when no
// metadata was resolved for the URL.
func (s *Summarizer) record(sess *Session) {
	if sess.Meta == nil {
		s.logger.Info("no metadata resolved, skipping history", slog.String("url", sess.URL))
		return
	}

	item := model.HistoryItem{
		ID:           uuid.NewString(),
		URL:          sess.URL,
		Summary:      sess.Text(),
		Language:     sess.Language.Name,
		LanguageCode: sess.Language.Code,
		Timestamp:    s.now().UTC().Format(time.RFC3339),
		VideoMeta:    *sess.Meta,
	}
	if _, err := s.history.Record(item); err != nil {
		s.logger.Error("failed to record history item", slog.String("url", sess.URL), slog.String("error", err.Error()))
	}
}

func generationErr(err error) error {
	if errors.Is(err, ErrInvalidCredentials) {
		return err
	}
	return fmt.Errorf("failed to generate summary, the video might be private, unavailable, or could not be processed: %w", err)
}
