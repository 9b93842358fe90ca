// Package main wires local services for the CLI commands.
package main

import (
	"fmt"

	"github.com/xinkuaihuo/wellbeing-engine/internal/advice"
	"github.com/xinkuaihuo/wellbeing-engine/internal/catalog"
	"github.com/xinkuaihuo/wellbeing-engine/internal/embedding"
	"github.com/xinkuaihuo/wellbeing-engine/internal/geo"
	"github.com/xinkuaihuo/wellbeing-engine/internal/intent"
	"github.com/xinkuaihuo/wellbeing-engine/internal/locale"
	"github.com/xinkuaihuo/wellbeing-engine/internal/search"
	"github.com/xinkuaihuo/wellbeing-engine/internal/session"
	"github.com/xinkuaihuo/wellbeing-engine/internal/taxonomy"
)

func loadCatalog() (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.Data.UnitsPath)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return cat, nil
}

func loadTaxonomy() *taxonomy.Taxonomy {
	tax, err := taxonomy.Load(cfg.Data.KeywordsPath)
	if err != nil {
		logger.Warn().Err(err).Msg("keywords file unavailable, using built-in taxonomy")
		return taxonomy.Default()
	}
	return tax
}

func newEmbedder() (embedding.Embedder, error) {
	return embedding.NewClient(embedding.Config{
		APIKey:    cfg.Embedding.APIKey,
		BaseURL:   cfg.Embedding.BaseURL,
		Model:     cfg.Embedding.Model,
		Dimension: cfg.Embedding.Dimension,
		Timeout:   cfg.Embedding.Timeout,
	})
}

// buildRouter wires a full local intent router: catalog, taxonomy, points,
// geocoder and, when an index file exists, saved vectors.
func buildRouter(indexPath string) (*intent.Router, error) {
	cat, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	tax := loadTaxonomy()

	points, err := geo.LoadPoints(cfg.Data.PointsPath)
	if err != nil {
		return nil, fmt.Errorf("loading points: %w", err)
	}

	var vectors *search.Index
	if indexPath != "" && cfg.Embedding.APIKey != "" {
		embedder, err := newEmbedder()
		if err == nil {
			ix := search.NewIndex(embedder)
			if err := ix.Load(indexPath, cat); err != nil {
				logger.Warn().Err(err).Str("path", indexPath).Msg("vector index unavailable, running lexical only")
			} else {
				vectors = ix
			}
		}
	}

	searchSvc := search.NewService(cat, tax, vectors, logger, cfg.Retrieval.VectorTopK)

	geocoder := geo.NewNominatimClient(geo.NominatimOptions{
		BaseURL:   cfg.Geocoder.BaseURL,
		UserAgent: cfg.Geocoder.UserAgent,
		Timeout:   cfg.Geocoder.Timeout,
		Logger:    logger,
	})

	return intent.NewRouter(intent.RouterOptions{
		Sessions: session.NewStore(cfg.Session.HistoryLimit),
		Search:   searchSvc,
		Points:   points,
		Geocoder: geocoder,
		Advice:   advice.Default(),
		Locale:   locale.NewService(nil, nil, 0, logger),
		Logger:   logger,
		PageSize: cfg.Retrieval.PageSize,
		MaxKm:    cfg.Geocoder.MaxKm,
		TopK:     cfg.Geocoder.TopK,
	}), nil
}
