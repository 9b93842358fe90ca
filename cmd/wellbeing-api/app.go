// Package main wires the application dependencies for the API server.
package main

import (
	"context"
	"fmt"

	"github.com/xinkuaihuo/wellbeing-engine/internal/advice"
	"github.com/xinkuaihuo/wellbeing-engine/internal/cache"
	"github.com/xinkuaihuo/wellbeing-engine/internal/catalog"
	"github.com/xinkuaihuo/wellbeing-engine/internal/config"
	"github.com/xinkuaihuo/wellbeing-engine/internal/embedding"
	"github.com/xinkuaihuo/wellbeing-engine/internal/geo"
	"github.com/xinkuaihuo/wellbeing-engine/internal/intent"
	"github.com/xinkuaihuo/wellbeing-engine/internal/locale"
	"github.com/xinkuaihuo/wellbeing-engine/internal/observability"
	"github.com/xinkuaihuo/wellbeing-engine/internal/search"
	"github.com/xinkuaihuo/wellbeing-engine/internal/session"
	"github.com/xinkuaihuo/wellbeing-engine/internal/taxonomy"
)

// App holds the wired application services.
type App struct {
	Catalog  *catalog.Catalog
	Taxonomy *taxonomy.Taxonomy
	Search   *search.Service
	Sessions *session.Store
	Router   *intent.Router
	Cache    cache.Client
}

// NewApp loads the data files and wires every service from configuration.
func NewApp(logger *observability.Logger, cfg *config.Config) (*App, error) {
	cat, err := catalog.Load(cfg.Data.UnitsPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	logger.Info().Int("units", cat.Len()).Msg("Catalog loaded")

	tax, err := taxonomy.Load(cfg.Data.KeywordsPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.Data.KeywordsPath).Msg("Keywords file unavailable, using built-in taxonomy")
		tax = taxonomy.Default()
	}

	points, err := geo.LoadPoints(cfg.Data.PointsPath)
	if err != nil {
		return nil, fmt.Errorf("loading points: %w", err)
	}
	logger.Info().Int("points", points.Len()).Msg("Support points loaded")

	var cacheClient cache.Client
	if cfg.Cache.Driver == "redis" {
		cacheClient, err = cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting redis cache: %w", err)
		}
	} else {
		cacheClient = cache.NewMemoryClient(cfg.Cache.MaxEntries)
	}

	var vectors *search.Index
	if cfg.Retrieval.VectorEnabled && cfg.Embedding.APIKey != "" {
		embedder, err := embedding.NewClient(embedding.Config{
			APIKey:    cfg.Embedding.APIKey,
			BaseURL:   cfg.Embedding.BaseURL,
			Model:     cfg.Embedding.Model,
			Dimension: cfg.Embedding.Dimension,
			Timeout:   cfg.Embedding.Timeout,
		})
		if err != nil {
			logger.Warn().Err(err).Msg("Embedding client unavailable, running lexical only")
		} else {
			vectors = search.NewIndex(embedder)

			if cfg.Retrieval.IndexOnStartup {
				if err := vectors.Build(context.Background(), cat, cfg.Embedding.BatchSize, nil); err != nil {
					logger.Warn().Err(err).Msg("Vector index build failed, running lexical only")
				} else {
					logger.Info().Int("units", cat.Len()).Msg("Vector index built")
				}
			}
		}
	}

	searchSvc := search.NewService(cat, tax, vectors, logger, cfg.Retrieval.VectorTopK)
	sessions := session.NewStore(cfg.Session.HistoryLimit)

	var localeSvc *locale.Service
	if cfg.Translator.Enabled && cfg.Translator.BaseURL != "" {
		translator := locale.NewHTTPTranslator(cfg.Translator.BaseURL, cfg.Translator.APIKey, cfg.Translator.Timeout)
		localeSvc = locale.NewService(translator, cacheClient, cfg.Cache.TTL, logger)
	} else {
		localeSvc = locale.NewService(nil, nil, 0, logger)
	}

	geocoder := geo.NewNominatimClient(geo.NominatimOptions{
		BaseURL:   cfg.Geocoder.BaseURL,
		UserAgent: cfg.Geocoder.UserAgent,
		Timeout:   cfg.Geocoder.Timeout,
		Logger:    logger,
	})

	router := intent.NewRouter(intent.RouterOptions{
		Sessions: sessions,
		Search:   searchSvc,
		Points:   points,
		Geocoder: geocoder,
		Advice:   advice.Default(),
		Locale:   localeSvc,
		Logger:   logger,
		PageSize: cfg.Retrieval.PageSize,
		MaxKm:    cfg.Geocoder.MaxKm,
		TopK:     cfg.Geocoder.TopK,
	})

	return &App{
		Catalog:  cat,
		Taxonomy: tax,
		Search:   searchSvc,
		Sessions: sessions,
		Router:   router,
		Cache:    cacheClient,
	}, nil
}

// Close releases held resources.
func (a *App) Close() {
	if a.Cache != nil {
		a.Cache.Close()
	}
}
