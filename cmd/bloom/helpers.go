package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	json "github.com/goccy/go-json"

	"github.com/Veraticus/bloom/internal/behavior"
	"github.com/Veraticus/bloom/internal/chat"
	"github.com/Veraticus/bloom/internal/intent"
	"github.com/Veraticus/bloom/internal/recommend"
	"github.com/Veraticus/bloom/internal/service"
	"github.com/Veraticus/bloom/internal/storage"
)

// initStorage opens the configured database and brings its schema up to date.
func initStorage(ctx context.Context) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(settings.Database.Path)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// closeStorage closes store, logging any failure.
func closeStorage(store service.Storage) {
	if err := store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}

// withStorage runs fn against an initialized store and closes it afterwards.
func withStorage(ctx context.Context, fn func(service.Storage) error) error {
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)
	return fn(store)
}

// newEngine wires the aggregator and ranker over store.
func newEngine(store service.Storage) *recommend.Engine {
	return recommend.NewEngine(behavior.NewAggregator(store), recommend.NewRanker(store))
}

// newChatService wires the classifier, composer and engine into a chat service.
func newChatService(store service.Storage) (*chat.Service, error) {
	classifier, err := intent.NewDefaultClassifier()
	if err != nil {
		return nil, fmt.Errorf("failed to build intent classifier: %w", err)
	}
	composer := chat.NewComposer(store, store, newEngine(store), settings.Chat.RecommendationLimit)
	return chat.NewService(store, classifier, composer,
		chat.WithHistoryLimit(settings.Chat.HistoryLimit)), nil
}

// writeJSON prints v as indented JSON.
func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// limitOrDefault falls back to def for non-positive limits.
func limitOrDefault(limit, def int) int {
	if limit < 1 {
		return def
	}
	return limit
}
