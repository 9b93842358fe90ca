package intent

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/xinkuaihuo/wellbeing-engine/internal/advice"
	"github.com/xinkuaihuo/wellbeing-engine/internal/chat"
	"github.com/xinkuaihuo/wellbeing-engine/internal/geo"
	"github.com/xinkuaihuo/wellbeing-engine/internal/locale"
	"github.com/xinkuaihuo/wellbeing-engine/internal/observability"
	"github.com/xinkuaihuo/wellbeing-engine/internal/search"
	"github.com/xinkuaihuo/wellbeing-engine/internal/session"
)

// Router handles one conversational turn end to end: language handling,
// intent classification, payload assembly and history append. Every turn is
// recorded, including failures.
type Router struct {
	sessions   *session.Store
	search     *search.Service
	points     *geo.PointStore
	geocoder   geo.Geocoder
	advice     *advice.Library
	locale     *locale.Service
	classifier *Classifier
	logger     *observability.Logger

	pageSize int
	maxKm    float64
	topK     int
}

// RouterOptions configures a Router.
type RouterOptions struct {
	Sessions *session.Store
	Search   *search.Service
	Points   *geo.PointStore
	Geocoder geo.Geocoder
	Advice   *advice.Library
	Locale   *locale.Service
	Logger   *observability.Logger

	PageSize int
	MaxKm    float64
	TopK     int
}

// NewRouter wires a router. Advice defaults to the built-in library,
// PageSize to 5 and the nearby limits to 5 km / top 5.
func NewRouter(opts RouterOptions) *Router {
	if opts.Advice == nil {
		opts.Advice = advice.Default()
	}
	if opts.Logger == nil {
		opts.Logger = observability.NopLogger()
	}
	if opts.PageSize <= 0 {
		opts.PageSize = 5
	}
	if opts.MaxKm <= 0 {
		opts.MaxKm = geo.DefaultMaxKm
	}
	if opts.TopK <= 0 {
		opts.TopK = geo.DefaultTopK
	}
	return &Router{
		sessions:   opts.Sessions,
		search:     opts.Search,
		points:     opts.Points,
		geocoder:   opts.Geocoder,
		advice:     opts.Advice,
		locale:     opts.Locale,
		classifier: NewClassifier(opts.Advice),
		logger:     opts.Logger,
		pageSize:   opts.PageSize,
		maxKm:      opts.MaxKm,
		topK:       opts.TopK,
	}
}

// Handle processes one turn for a session and returns the response. The
// raw query and the final response are always appended to session history.
func (r *Router) Handle(ctx context.Context, sessionID, rawQuery, model string) chat.Response {
	sess := r.sessions.Get(sessionID)
	logger := r.logger.WithSession(sessionID)

	query := strings.TrimSpace(rawQuery)
	detected := locale.LangChinese
	if r.locale != nil {
		query, detected = r.locale.ToSearchLanguage(ctx, query)
	}

	tag := r.classifier.Classify(query)
	logger.Debug().
		Str("intent", string(tag)).
		Str("query", query).
		Str("language", detected).
		Msg("turn classified")

	var resp chat.Response
	switch tag {
	case IntentNearbyClinic:
		resp = r.handleNearbyClinic(ctx, query)
	case IntentDirectAddress:
		resp = r.handleAddress(ctx, query)
	case IntentPaginationContinue:
		resp = r.handleContinuation(ctx, sess)
	case IntentMediaPreferenceOnly:
		resp = r.handleMediaPreference(ctx, sess, query)
	case IntentSpecialAdvice:
		resp = r.handleAdvice(query)
	default:
		resp = r.handleRecommendation(ctx, query, model)
	}

	if r.locale != nil && detected != locale.SearchLanguage && resp.Message != "" {
		resp.Message = r.locale.Localize(ctx, resp.Message, detected)
	}

	sess.Append(rawQuery, resp, detected)
	return resp
}

func (r *Router) handleNearbyClinic(ctx context.Context, query string) chat.Response {
	addr := geo.ExtractAddress(query)
	if addr == "" {
		return chat.AddressNotFoundResponse()
	}
	return r.lookupPoints(ctx, addr)
}

func (r *Router) handleAddress(ctx context.Context, query string) chat.Response {
	return r.lookupPoints(ctx, strings.TrimSpace(query))
}

// LookupAddress resolves an address and returns nearby points. Shared by
// the chat flow and the direct /nearby surface.
func (r *Router) LookupAddress(ctx context.Context, address string) chat.Response {
	address = strings.TrimSpace(address)
	if address == "" {
		return chat.ProvideFullAddressResponse()
	}
	return r.lookupPoints(ctx, address)
}

func (r *Router) lookupPoints(ctx context.Context, addr string) chat.Response {
	loc, err := r.geocoder.Geocode(ctx, addr)
	if err != nil {
		if !errors.Is(err, geo.ErrGeocodeMiss) {
			r.logger.Warn().Err(err).Str("address", addr).Msg("geocoder failed")
		}
		return chat.GeocodeMissResponse(addr)
	}

	nearby := r.points.FindNearby(loc, r.maxKm, r.topK)
	entries := make([]chat.PointEntry, 0, len(nearby))
	for _, n := range nearby {
		entries = append(entries, chat.PointEntry{
			Title:      n.Point.Title,
			Address:    n.Point.Address,
			Tel:        n.Point.Tel,
			DistanceKm: math.Round(n.DistanceKm*100) / 100,
		})
	}
	return chat.BuildPoints(addr, entries, r.maxKm)
}

// handleContinuation recomputes the previous result set from the stored
// originating query and serves the next page. There is no inter-page cache;
// recomputation keeps pages correct across taxonomy reloads.
func (r *Router) handleContinuation(ctx context.Context, sess *session.Session) chat.Response {
	last, ok := sess.FindLastRecommendation()
	if !ok {
		return chat.TextResponse(chat.MsgNothingToContinue)
	}

	limit := last.Limit
	if limit <= 0 {
		limit = r.pageSize
	}
	offset := last.Offset + limit

	return r.runSearch(ctx, last.Query, last.Model, search.MediaFilter(last.FilterType), offset, limit)
}

// handleMediaPreference re-runs the last recommendation topic with the
// requested media filter, from the first page.
func (r *Router) handleMediaPreference(ctx context.Context, sess *session.Session, query string) chat.Response {
	last, ok := sess.FindLastRecommendation()
	if !ok {
		return chat.TextResponse(chat.MsgNothingToContinue)
	}

	filter := search.ParseMediaPreference(query)
	return r.runSearch(ctx, last.Query, last.Model, filter, 0, r.pageSize)
}

func (r *Router) handleAdvice(query string) chat.Response {
	doc, ok := r.advice.Match(strings.ToLower(query))
	if !ok {
		// the classifier only picks this branch on a match
		return chat.TextResponse(chat.MsgNoSuggestion)
	}
	return chat.AdviceResponse(doc)
}

func (r *Router) handleRecommendation(ctx context.Context, query, model string) chat.Response {
	filter := search.ParseMediaPreference(query)
	stripped := search.StripMediaPreference(query)
	return r.runSearch(ctx, stripped, model, filter, 0, r.pageSize)
}

func (r *Router) runSearch(ctx context.Context, query, model string, filter search.MediaFilter, offset, limit int) chat.Response {
	results, err := r.search.Search(ctx, query, model, filter)
	if err != nil {
		if errors.Is(err, search.ErrNoSearchableTerms) {
			return chat.BuildRecommendation(query, model, nil, 0, limit, 0, false, filter)
		}
		r.logger.Error().Err(err).Str("query", query).Msg("search failed")
		return chat.BuildRecommendation(query, model, nil, 0, limit, 0, false, filter)
	}

	page, total, hasMore := search.Paginate(results, offset, limit)
	return chat.BuildRecommendation(query, model, page, offset, limit, total, hasMore, filter)
}
