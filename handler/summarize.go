package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"ewintr.nl/tldw/fetcher"
	"ewintr.nl/tldw/model"
	"ewintr.nl/tldw/summarize"
)

type SummarizeAPI struct {
	summarizer *summarize.Summarizer
	resolver   *fetcher.Resolver
	logger     *slog.Logger
}

func NewSummarizeAPI(summarizer *summarize.Summarizer, resolver *fetcher.Resolver, logger *slog.Logger) *SummarizeAPI {
	return &SummarizeAPI{
		summarizer: summarizer,
		resolver:   resolver,
		logger:     logger,
	}
}

type summarizeRequest struct {
	URL      string `json:"url"`
	Language string `json:"language"`
}

type summarizeResult struct {
	Document model.SummaryDocument `json:"document"`
	Export   string                `json:"export"`
	Recorded bool                  `json:"recorded"`
}

// ServeHTTP streams the summary as Server-Sent Events: a chunk event per text
// fragment, then a single done event with the parsed document, or a single
// error event.
func (s *SummarizeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		Error(w, http.StatusMethodNotAllowed, "method not allowed", fmt.Errorf("method %s was not registered on the summarize api", r.Method))
		return
	}

	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if !model.IsVideoURL(req.URL) {
		Error(w, http.StatusBadRequest, "invalid url", fmt.Errorf("%q is not a valid youtube video url", req.URL))
		return
	}

	language, ok := model.FindLanguage(req.Language)
	if !ok {
		language = model.DefaultLanguage()
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		Error(w, http.StatusInternalServerError, "streaming unsupported", fmt.Errorf("response writer is not a flusher"))
		return
	}

	sess := &summarize.Session{
		URL:      req.URL,
		Language: language,
	}
	if md, err := s.resolver.Resolve(r.Context(), req.URL); err == nil {
		sess.Meta = &md
	} else {
		// metadata failure blocks only history recording, not the
		// summary itself
		s.logger.Info("metadata resolution failed", slog.String("url", req.URL), slog.String("error", err.Error()))
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	err := s.summarizer.Summarize(r.Context(), sess, func(chunk string) {
		writeEvent(w, "chunk", chunk)
		flusher.Flush()
	})
	if err != nil {
		s.logger.Error("summarization failed", slog.String("url", req.URL), slog.String("error", err.Error()))
		writeEvent(w, "error", err.Error())
		flusher.Flush()
		return
	}

	writeEvent(w, "done", summarizeResult{
		Document: sess.Document(),
		Export:   sess.Export(),
		Recorded: sess.Meta != nil,
	})
	flusher.Flush()
}

// writeEvent frames one Server-Sent Event. The payload is JSON-encoded, which
// also keeps multi-line chunks within a single data field.
func writeEvent(w http.ResponseWriter, event string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload)
}
