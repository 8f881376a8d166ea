package statusapi

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/chainsafe/swap-status/pkg/config"
	"github.com/chainsafe/swap-status/pkg/llm"
	"github.com/chainsafe/swap-status/pkg/logquery"
	"github.com/chainsafe/swap-status/pkg/logsource"
	"github.com/chainsafe/swap-status/pkg/narrator"
	"github.com/chainsafe/swap-status/pkg/orderbook"
	"github.com/chainsafe/swap-status/pkg/orderstore"
	"github.com/chainsafe/swap-status/pkg/pgutil"
	"github.com/chainsafe/swap-status/pkg/txstatus"
)

// NewStatusService connects every collaborator described by cfg and returns the logged
// status service with a cleanup func that releases connections. On error everything opened
// so far is already released.
func NewStatusService(ctx context.Context, cfg *config.StatusServerConfig, logger *zap.Logger) (txstatus.Service, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	db, err := pgutil.ConnectDB(ctx, &cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	closers = append(closers, func() { _ = db.Close() })

	lokiClient, err := logquery.NewClient(&cfg.LogQuery, logquery.WithLogger(logger))
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("create log query client: %w", err)
	}
	fetcher := logquery.NewFetcher(lokiClient, &cfg.LogQuery, logquery.WithLogger(logger))

	matched, err := orderbook.NewClient(&cfg.Orderbook, orderbook.WithLogger(logger))
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("create matched order client: %w", err)
	}

	var gen llm.Generator = llm.Disabled{}
	if cfg.Summarizer.IsEnabled() {
		gemini, err := llm.NewGemini(&cfg.Summarizer, llm.WithLogger(logger))
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("create summarizer: %w", err)
		}
		gen = gemini
	} else {
		logger.Info("log summarizer disabled, analyses will fall back to filtered logs")
	}

	catalog := logsource.NewCatalog(cfg.LogSources)
	narratorOpts := []narrator.Option{
		narrator.WithLogger(logger),
		narrator.WithMaxLines(cfg.Summarizer.MaxLogLines),
	}
	if cfg.Cache.Enabled {
		cache, err := narrator.NewRedisCache(ctx, &cfg.Cache)
		if err != nil {
			logger.Warn("narration cache unavailable, continuing without it", zap.Error(err))
		} else {
			closers = append(closers, func() { _ = cache.Close() })
			narratorOpts = append(narratorOpts, narrator.WithCache(cache))
		}
	}

	svc := txstatus.NewService(
		orderstore.NewStore(db),
		fetcher,
		matched,
		narrator.New(gen, catalog, narratorOpts...),
		catalog,
		&cfg.Status,
		logger,
	)
	return txstatus.NewLog(svc, logger), cleanup, nil
}
