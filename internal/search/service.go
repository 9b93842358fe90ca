package search

import (
	"context"
	"errors"
	"strings"

	"github.com/xinkuaihuo/wellbeing-engine/internal/catalog"
	"github.com/xinkuaihuo/wellbeing-engine/internal/observability"
	"github.com/xinkuaihuo/wellbeing-engine/internal/taxonomy"
)

// ErrNoSearchableTerms means a query was empty after stripping stop words
// and functional phrases.
var ErrNoSearchableTerms = errors.New("query has no searchable terms")

// MediaFilter restricts results by content type.
type MediaFilter string

const (
	FilterNone     MediaFilter = ""
	FilterArticles MediaFilter = "article"
	FilterVideos   MediaFilter = "video"
)

var articlePreferences = []string{"只要文章", "只看文章", "articles only", "only articles"}
var videoPreferences = []string{"只要影片", "只看影片", "videos only", "only videos"}

// ParseMediaPreference detects an explicit article/video preference in a raw
// query.
func ParseMediaPreference(query string) MediaFilter {
	lower := strings.ToLower(query)
	for _, p := range articlePreferences {
		if strings.Contains(lower, p) {
			return FilterArticles
		}
	}
	for _, p := range videoPreferences {
		if strings.Contains(lower, p) {
			return FilterVideos
		}
	}
	return FilterNone
}

// StripMediaPreference removes preference phrases from a query so they do
// not pollute term extraction.
func StripMediaPreference(query string) string {
	out := query
	for _, p := range append(append([]string{}, articlePreferences...), videoPreferences...) {
		out = strings.ReplaceAll(out, p, "")
	}
	return strings.TrimSpace(out)
}

// Service runs the full retrieval pipeline: term extraction, lexical
// scoring, vector search, hybrid merge, media filtering and episode
// grouping.
type Service struct {
	catalog    *catalog.Catalog
	normalizer *Normalizer
	vectors    *Index
	logger     *observability.Logger
	vectorTopK int
}

// NewService builds a retrieval service. vectors may be nil to run lexical
// only.
func NewService(cat *catalog.Catalog, tax *taxonomy.Taxonomy, vectors *Index, logger *observability.Logger, vectorTopK int) *Service {
	if vectorTopK <= 0 {
		vectorTopK = 10
	}
	return &Service{
		catalog:    cat,
		normalizer: NewNormalizer(tax),
		vectors:    vectors,
		logger:     logger,
		vectorTopK: vectorTopK,
	}
}

// Search runs the pipeline for a query. model overrides the default
// embedding model for this call. Vector failures degrade to lexical-only
// results; an empty term set returns ErrNoSearchableTerms.
func (s *Service) Search(ctx context.Context, query, model string, filter MediaFilter) ([]ScoredResult, error) {
	terms := s.normalizer.Normalize(query)
	if terms.IsEmpty() {
		return nil, ErrNoSearchableTerms
	}

	var lexical []ScoredResult
	for _, unit := range s.catalog.Units() {
		score, seg := Score(unit, terms)
		if score <= 0 {
			continue
		}
		lexical = append(lexical, ScoredResult{Unit: unit, Score: score, BestSegment: seg})
	}

	var vector []UnitScore
	if s.vectors != nil && s.vectors.Ready() {
		vs, err := s.vectors.Search(ctx, query, model, s.vectorTopK)
		if err != nil {
			s.logger.Warn().Err(err).Msg("vector search failed, using lexical results only")
		} else {
			vector = vs
		}
	}

	merged := MergeHybrid(lexical, vector)

	if filter != FilterNone {
		filtered := merged[:0:0]
		for _, r := range merged {
			if filter == FilterArticles && !r.Unit.IsArticle {
				continue
			}
			if filter == FilterVideos && r.Unit.IsArticle {
				continue
			}
			filtered = append(filtered, r)
		}
		merged = filtered
	}

	grouped := GroupEpisodes(merged)

	s.logger.Debug().
		Str("query", query).
		Int("core_terms", len(terms.UserCore)).
		Int("results", len(grouped)).
		Msg("search completed")

	return grouped, nil
}

// Paginate slices a result list. hasMore reports whether another page exists
// past offset+limit.
func Paginate(results []ScoredResult, offset, limit int) (page []ScoredResult, total int, hasMore bool) {
	total = len(results)
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 5
	}
	if offset >= total {
		return nil, total, false
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return results[offset:end], total, end < total
}
