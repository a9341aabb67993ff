package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"

	"ewintr.nl/tldw/fetcher"
	"ewintr.nl/tldw/handler"
	"ewintr.nl/tldw/storage"
	"ewintr.nl/tldw/summarize"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var kv storage.KeyValue
	switch backend := getParam("STORAGE", "sqlite"); backend {
	case "sqlite":
		sqlite, err := storage.NewSqlite(getParam("SQLITE_PATH", "tldw.db"))
		if err != nil {
			logger.Error("unable to open sqlite store", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer sqlite.Close()
		kv = sqlite
	case "postgres":
		postgres, err := storage.NewPostgres(storage.PostgresInfo{
			Host:     getParam("POSTGRES_HOST", "localhost"),
			Port:     getParam("POSTGRES_PORT", "5432"),
			User:     getParam("POSTGRES_USER", "tldw"),
			Password: getParam("POSTGRES_PASSWORD", "tldw"),
			Database: getParam("POSTGRES_DB", "tldw"),
		})
		if err != nil {
			logger.Error("unable to connect to postgres", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer postgres.Close()
		kv = postgres
	case "memory":
		kv = storage.NewMemory()
	default:
		logger.Error("unknown storage backend", slog.String("backend", backend))
		os.Exit(1)
	}

	history := storage.NewHistory(kv, logger)
	if err := history.Load(); err != nil {
		logger.Error("unable to load history", slog.String("error", err.Error()))
		os.Exit(1)
	}
	settings := storage.NewSettings(kv)

	var metadataFetcher fetcher.MetadataFetcher
	if apiKey := getParam("YOUTUBE_API_KEY", ""); apiKey != "" {
		ytClient, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
		if err != nil {
			logger.Error("unable to create youtube service", slog.String("error", err.Error()))
			os.Exit(1)
		}
		metadataFetcher = fetcher.NewYoutube(ytClient)
	} else {
		metadataFetcher = fetcher.NewOEmbed()
	}
	resolver := fetcher.NewResolver(metadataFetcher, fetcher.DefaultDebounce, nil)
	defer resolver.Stop()

	streamer := summarize.NewOpenAI(getParam("OPENAI_API_KEY", ""), getParam("OPENAI_MODEL", ""))
	summarizer := summarize.NewSummarizer(streamer, history, logger)

	port, err := strconv.Atoi(getParam("API_PORT", "8080"))
	if err != nil {
		logger.Error("invalid port", slog.String("error", err.Error()))
		os.Exit(1)
	}
	go http.ListenAndServe(fmt.Sprintf(":%d", port), handler.NewServer(summarizer, resolver, history, settings, logger))
	logger.Info("http server started", slog.Int("port", port))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt)
	<-done

	logger.Info("service stopped")
}

func getParam(param, def string) string {
	if val, ok := os.LookupEnv(param); ok {
		return val
	}
	return def
}
