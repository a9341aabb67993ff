package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"ewintr.nl/tldw/fetcher"
	"ewintr.nl/tldw/model"
)

type MetadataAPI struct {
	resolver *fetcher.Resolver
	logger   *slog.Logger
}

func NewMetadataAPI(resolver *fetcher.Resolver, logger *slog.Logger) *MetadataAPI {
	return &MetadataAPI{
		resolver: resolver,
		logger:   logger,
	}
}

func (m *MetadataAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		Error(w, http.StatusMethodNotAllowed, "method not allowed", fmt.Errorf("method %s was not registered on the metadata api", r.Method))
		return
	}

	candidate := r.URL.Query().Get("url")
	if !model.IsVideoURL(candidate) {
		Error(w, http.StatusBadRequest, "invalid url", fmt.Errorf("%q is not a valid youtube video url", candidate))
		return
	}

	md, err := m.resolver.Resolve(r.Context(), candidate)
	if err != nil {
		m.logger.Info("metadata resolution failed", slog.String("url", candidate), slog.String("error", err.Error()))
		Error(w, http.StatusBadGateway, "could not resolve video metadata", err)
		return
	}

	writeJSON(w, http.StatusOK, md)
}
