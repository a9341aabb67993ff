package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"ewintr.nl/tldw/fetcher"
	"ewintr.nl/tldw/handler"
	"ewintr.nl/tldw/model"
	"ewintr.nl/tldw/storage"
	"ewintr.nl/tldw/summarize"
	"github.com/stretchr/testify/require"
)

const validURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

type fakeFetcher struct {
	meta model.VideoMetadata
	err  error
}

func (f *fakeFetcher) FetchMetadata(_ context.Context, _ string) (model.VideoMetadata, error) {
	return f.meta, f.err
}

type fakeStream struct {
	chunks []string
	err    error
}

func (s *fakeStream) Recv() (string, error) {
	if len(s.chunks) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	chunk := s.chunks[0]
	s.chunks = s.chunks[1:]
	return chunk, nil
}

func (s *fakeStream) Close() error { return nil }

type fakeStreamer struct {
	chunks []string
	err    error
}

func (f *fakeStreamer) Start(_ context.Context, _, _ string) (summarize.Stream, error) {
	return &fakeStream{chunks: append([]string{}, f.chunks...), err: f.err}, nil
}

type env struct {
	server  *httptest.Server
	history *storage.HistoryStore
}

func newEnv(t *testing.T, streamer summarize.Streamer, fetch fetcher.MetadataFetcher) env {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	kv := storage.NewMemory()
	history := storage.NewHistory(kv, logger)
	require.NoError(t, history.Load())
	resolver := fetcher.NewResolver(fetch, time.Millisecond, nil)
	summarizer := summarize.NewSummarizer(streamer, history, logger)
	settings := storage.NewSettings(kv)

	srv := httptest.NewServer(handler.NewServer(summarizer, resolver, history, settings, logger))
	t.Cleanup(srv.Close)

	return env{server: srv, history: history}
}

func TestHistoryEndpoints(t *testing.T) {
	t.Parallel()

	e := newEnv(t, &fakeStreamer{}, &fakeFetcher{})
	_, err := e.history.Record(model.HistoryItem{
		ID:        "one",
		URL:       validURL,
		Summary:   "Title: T\n",
		Language:  "English",
		Timestamp: "2026-09-01T10:00:00Z",
		VideoMeta: model.VideoMetadata{Title: "a video"},
	})
	require.NoError(t, err)

	resp, err := http.Get(e.server.URL + "/history")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var items []model.HistoryItem
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&items))
	require.Len(t, items, 1)
	require.Equal(t, "a video", items[0].VideoMeta.Title)

	// delete without confirmation is a no-op
	req, err := http.NewRequest(http.MethodDelete, e.server.URL+"/history", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, e.history.Items(), 1)

	// delete with confirmation clears
	req, err = http.NewRequest(http.MethodDelete, e.server.URL+"/history?confirm=true", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Empty(t, e.history.Items())
}

func TestMetadataEndpoint(t *testing.T) {
	t.Parallel()

	e := newEnv(t, &fakeStreamer{}, &fakeFetcher{meta: model.VideoMetadata{
		Title:      "a video",
		AuthorName: "an author",
	}})

	resp, err := http.Get(e.server.URL + "/metadata?url=" + validURL)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var md model.VideoMetadata
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&md))
	require.Equal(t, "a video", md.Title)

	resp, err = http.Get(e.server.URL + "/metadata?url=https://example.com/nope")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestMetadataEndpointFailure(t *testing.T) {
	t.Parallel()

	e := newEnv(t, &fakeStreamer{}, &fakeFetcher{err: errors.New("upstream down")})

	resp, err := http.Get(e.server.URL + "/metadata?url=" + validURL)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestSummarizeEndpoint(t *testing.T) {
	t.Parallel()

	e := newEnv(t,
		&fakeStreamer{chunks: []string{"Title: T\n", "* one\n"}},
		&fakeFetcher{meta: model.VideoMetadata{Title: "a video"}},
	)

	body := strings.NewReader(`{"url":"` + validURL + `","language":"German"}`)
	resp, err := http.Post(e.server.URL+"/summarize", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	events := string(raw)
	require.Contains(t, events, "event: chunk\ndata: \"Title: T\\n\"\n\n")
	require.Contains(t, events, "event: chunk\ndata: \"* one\\n\"\n\n")
	require.Contains(t, events, "event: done\n")
	require.Contains(t, events, `"title":"T"`)
	require.Contains(t, events, `"recorded":true`)

	items := e.history.Items()
	require.Len(t, items, 1)
	require.Equal(t, "Title: T\n* one\n", items[0].Summary)
	require.Equal(t, "German", items[0].Language)
}

func TestSummarizeEndpointInvalidURL(t *testing.T) {
	t.Parallel()

	e := newEnv(t, &fakeStreamer{}, &fakeFetcher{})

	body := strings.NewReader(`{"url":"https://example.com/watch?v=dQw4w9WgXcQ","language":"English"}`)
	resp, err := http.Post(e.server.URL+"/summarize", "application/json", body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSummarizeEndpointGenerationFailure(t *testing.T) {
	t.Parallel()

	e := newEnv(t,
		&fakeStreamer{chunks: []string{"partial"}, err: errors.New("stream broke")},
		&fakeFetcher{meta: model.VideoMetadata{Title: "a video"}},
	)

	body := strings.NewReader(`{"url":"` + validURL + `","language":"English"}`)
	resp, err := http.Post(e.server.URL+"/summarize", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(raw), "event: error\n")
	require.Empty(t, e.history.Items(), "no partial commit on failure")
}

func TestSummarizeEndpointWithoutMetadata(t *testing.T) {
	t.Parallel()

	e := newEnv(t,
		&fakeStreamer{chunks: []string{"Title: T\n"}},
		&fakeFetcher{err: errors.New("no metadata")},
	)

	body := strings.NewReader(`{"url":"` + validURL + `","language":"English"}`)
	resp, err := http.Post(e.server.URL+"/summarize", "application/json", body)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"recorded":false`)
	require.Empty(t, e.history.Items())
}

func TestSettingsEndpoint(t *testing.T) {
	t.Parallel()

	e := newEnv(t, &fakeStreamer{}, &fakeFetcher{})

	resp, err := http.Get(e.server.URL + "/settings/theme")
	require.NoError(t, err)
	var body struct {
		Theme string `json:"theme"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	require.Equal(t, "dark", body.Theme)

	req, err := http.NewRequest(http.MethodPut, e.server.URL+"/settings/theme", strings.NewReader(`{"theme":"light"}`))
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(e.server.URL + "/settings/theme")
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	resp.Body.Close()
	require.Equal(t, "light", body.Theme)
}

func TestUnknownPath(t *testing.T) {
	t.Parallel()

	e := newEnv(t, &fakeStreamer{}, &fakeFetcher{})

	resp, err := http.Get(e.server.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestShiftPath(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		path string
		head string
		tail string
	}{
		{"/", "", "/"},
		{"/history", "history", "/"},
		{"/settings/theme", "settings", "/theme"},
		{"settings/theme/", "settings", "/theme"},
	} {
		head, tail := handler.ShiftPath(tc.path)
		require.Equal(t, tc.head, head, tc.path)
		require.Equal(t, tc.tail, tail, tc.path)
	}
}
