package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/balisaldo/saldo/internal/classify"
	"github.com/balisaldo/saldo/internal/common"
	"github.com/balisaldo/saldo/internal/config"
	"github.com/balisaldo/saldo/internal/embed"
	"github.com/balisaldo/saldo/internal/model"
	"github.com/balisaldo/saldo/internal/resolver"
	"github.com/balisaldo/saldo/internal/storage"

	"github.com/spf13/viper"
)

// initStorage opens the database and brings the schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = config.DefaultDatabasePath()
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

func embedConfig() embed.Config {
	cfg := embed.Config{
		Provider:   viper.GetString("embeddings.provider"),
		APIKey:     viper.GetString("embeddings.api_key"),
		Model:      viper.GetString("embeddings.model"),
		Timeout:    viper.GetDuration("embeddings.timeout"),
		RetryDelay: viper.GetDuration("embeddings.retry_delay"),
		MaxRetries: viper.GetInt("embeddings.max_retries"),
		RateLimit:  viper.GetInt("embeddings.rate_limit"),
	}

	// Provider-native key variables win over nothing, not over the
	// saldo-specific setting.
	if cfg.APIKey == "" {
		switch cfg.Provider {
		case "gemini":
			cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		default:
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	return cfg
}

func resolverConfig() resolver.Config {
	cfg := resolver.DefaultConfig()
	if viper.IsSet("resolver.similarity_threshold") {
		cfg.SimilarityThreshold = viper.GetFloat64("resolver.similarity_threshold")
	}
	if viper.IsSet("resolver.candidate_limit") {
		cfg.CandidateLimit = viper.GetInt("resolver.candidate_limit")
	}
	if viper.IsSet("resolver.top_k") {
		cfg.TopK = viper.GetInt("resolver.top_k")
	}
	return cfg
}

// initResolver wires the resolver and its collaborators. The returned
// cleanup stops the embedding generator's rate limiter.
func initResolver(ctx context.Context, store *storage.SQLiteStorage) (*resolver.Resolver, func(), error) {
	classifier, err := classify.NewKeywordClassifier(model.DefaultKeywordRules())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build keyword classifier: %w", err)
	}

	generator, err := embed.NewGenerator(ctx, embedConfig(), slog.Default())
	if err != nil {
		if errors.Is(err, common.ErrMissingConfig) {
			return nil, nil, common.NewUserError(
				"embedding provider is not configured: set embeddings.api_key or OPENAI_API_KEY", err)
		}
		return nil, nil, fmt.Errorf("failed to create embedding generator: %w", err)
	}

	res, err := resolver.New(store, generator, classifier, resolverConfig(), slog.Default())
	if err != nil {
		generator.Close()
		return nil, nil, err
	}

	return res, generator.Close, nil
}

// parseDate accepts the formats bank CSV exports actually use.
func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02", "02/01/2006", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", value)
}
