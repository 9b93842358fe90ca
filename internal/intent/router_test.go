package intent

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinkuaihuo/wellbeing-engine/internal/advice"
	"github.com/xinkuaihuo/wellbeing-engine/internal/catalog"
	"github.com/xinkuaihuo/wellbeing-engine/internal/chat"
	"github.com/xinkuaihuo/wellbeing-engine/internal/geo"
	"github.com/xinkuaihuo/wellbeing-engine/internal/observability"
	"github.com/xinkuaihuo/wellbeing-engine/internal/search"
	"github.com/xinkuaihuo/wellbeing-engine/internal/session"
	"github.com/xinkuaihuo/wellbeing-engine/internal/taxonomy"
)

type fakeGeocoder struct {
	locations map[string]geo.Location
}

func (f *fakeGeocoder) Geocode(ctx context.Context, address string) (geo.Location, error) {
	if loc, ok := f.locations[address]; ok {
		return loc, nil
	}
	return geo.Location{}, geo.ErrGeocodeMiss
}

func testCatalog() *catalog.Catalog {
	units := []*catalog.ContentUnit{
		{
			SectionTitle: "睡眠", Title: "失眠的自我照顧",
			ContentText: "失眠是常見的困擾。", IsArticle: true,
			ArticleURL: "https://example.org/a",
		},
		{SectionTitle: "睡眠", Title: "睡前放鬆（上）", YoutubeURL: "https://youtu.be/1",
			ContentText: "失眠時可以放鬆。"},
		{SectionTitle: "睡眠", Title: "睡前放鬆（下）", YoutubeURL: "https://youtu.be/2",
			ContentText: "失眠時繼續放鬆。"},
		{SectionTitle: "壓力", Title: "職場壓力調適", ContentText: "壓力需要出口。"},
	}
	return catalog.New(units)
}

func newTestRouter(t *testing.T) *Router {
	t.Helper()

	svc := search.NewService(testCatalog(), taxonomy.Default(), nil, observability.NopLogger(), 10)

	points := geo.NewPointStore([]geo.Point{
		{Title: "東區心據點", Address: "台南市東區", Tel: "06-1234567", Lat: 22.99, Lon: 120.22},
		{Title: "台北據點", Address: "台北市", Tel: "02-7654321", Lat: 25.03, Lon: 121.56},
	})

	geocoder := &fakeGeocoder{locations: map[string]geo.Location{
		"台南市東區大學路1號": {Lat: 22.99, Lon: 120.21},
		"台南市東區":      {Lat: 22.99, Lon: 120.21},
	}}

	return NewRouter(RouterOptions{
		Sessions: session.NewStore(0),
		Search:   svc,
		Points:   points,
		Geocoder: geocoder,
		Logger:   observability.NopLogger(),
		PageSize: 2,
	})
}

func TestHandleNearbyClinic(t *testing.T) {
	r := newTestRouter(t)

	resp := r.Handle(context.Background(), "s1", "我住在台南市東區大學路1號附近有心據點嗎", "")

	require.Equal(t, chat.TypePoints, resp.Type)
	assert.Equal(t, "台南市東區大學路1號", resp.Address)
	require.Len(t, resp.Points, 1)
	assert.Equal(t, "東區心據點", resp.Points[0].Title)
	assert.Empty(t, resp.Message)
}

func TestHandleNearbyClinicAddressNotFound(t *testing.T) {
	r := newTestRouter(t)

	resp := r.Handle(context.Background(), "s1", "我家附近有心據點嗎", "")

	assert.Equal(t, chat.TypePoints, resp.Type)
	assert.Equal(t, chat.MsgAddressNotFound, resp.Message)
	assert.NotNil(t, resp.Points)
	assert.Empty(t, resp.Points)
}

func TestHandleNearbyClinicGeocodeMiss(t *testing.T) {
	r := newTestRouter(t)

	resp := r.Handle(context.Background(), "s1", "我住在火星市外星區第八基地附近有心據點嗎", "")

	assert.Equal(t, chat.TypePoints, resp.Type)
	assert.Contains(t, resp.Message, "火星市外星區第八基地")
	assert.Empty(t, resp.Points)
}

func TestHandleDirectAddress(t *testing.T) {
	r := newTestRouter(t)

	resp := r.Handle(context.Background(), "s1", "台南市東區大學路1號", "")

	require.Equal(t, chat.TypePoints, resp.Type)
	require.Len(t, resp.Points, 1)
}

func TestHandleRecommendationAndContinuation(t *testing.T) {
	r := newTestRouter(t)
	ctx := context.Background()

	first := r.Handle(ctx, "s1", "我最近一直失眠", "")
	require.Equal(t, chat.TypeRecommendation, first.Type)
	require.Len(t, first.Results, 2)
	assert.Equal(t, 0, first.Offset)
	assert.True(t, first.HasMore)

	second := r.Handle(ctx, "s1", "更多", "")
	require.Equal(t, chat.TypeRecommendation, second.Type)
	assert.Equal(t, 2, second.Offset)
	assert.Equal(t, first.Query, second.Query)
	assert.NotEmpty(t, second.Results)

	// pages never overlap
	for _, a := range first.Results {
		for _, b := range second.Results {
			assert.NotEqual(t, a.Title, b.Title)
		}
	}
}

func TestHandleContinuationWithoutPrior(t *testing.T) {
	r := newTestRouter(t)

	resp := r.Handle(context.Background(), "s1", "給我下五個", "")

	assert.Equal(t, chat.TypeText, resp.Type)
	assert.Equal(t, chat.MsgNothingToContinue, resp.Message)
}

func TestHandleContinuationPastEnd(t *testing.T) {
	r := newTestRouter(t)
	ctx := context.Background()

	r.Handle(ctx, "s1", "職場壓力好大", "")
	resp := r.Handle(ctx, "s1", "更多", "")

	assert.Equal(t, chat.TypeRecommendation, resp.Type)
	assert.Empty(t, resp.Results)
	assert.Equal(t, chat.MsgNoMoreResults, resp.Message)
}

func TestHandleMediaPreferenceOnly(t *testing.T) {
	r := newTestRouter(t)
	ctx := context.Background()

	r.Handle(ctx, "s1", "我最近一直失眠", "")
	resp := r.Handle(ctx, "s1", "只要文章", "")

	require.Equal(t, chat.TypeRecommendation, resp.Type)
	assert.Equal(t, string(search.FilterArticles), resp.FilterType)
	require.NotEmpty(t, resp.Results)
	for _, item := range resp.Results {
		assert.Equal(t, "article", item.Type)
	}
}

func TestHandleSpecialAdvice(t *testing.T) {
	r := newTestRouter(t)

	resp := r.Handle(context.Background(), "s1", "我很憂鬱，在考慮要不要去看醫生", "")

	require.Equal(t, chat.TypeAdvice, resp.Type)
	require.NotNil(t, resp.Advice)
	assert.Equal(t, "depression_doctor", resp.Advice.ID)
}

func TestHandleAppendsEveryTurn(t *testing.T) {
	r := newTestRouter(t)
	ctx := context.Background()

	r.Handle(ctx, "s1", "我最近一直失眠", "")
	r.Handle(ctx, "s1", "給我下五個", "")
	r.Handle(ctx, "s1", "完全找不到的主題嗎", "")

	history := r.sessions.Get("s1").History()
	assert.Len(t, history, 3)
}

func TestClassifyPriorityOrder(t *testing.T) {
	c := NewClassifier(advice.Default())

	tests := []struct {
		query string
		want  Intent
	}{
		{"我住在台南市東區大學路1號附近有心據點嗎", IntentNearbyClinic},
		{"台南市東區大學路1號", IntentDirectAddress},
		{"更多", IntentPaginationContinue},
		{"下一頁", IntentPaginationContinue},
		{"只要影片", IntentMediaPreferenceOnly},
		{"我很憂鬱想去看醫生", IntentSpecialAdvice},
		{"我最近睡不好", IntentGeneralRecommendation},
		// a proximity question about clinics wins even when the text
		// also mentions a curated-advice topic
		{"我很憂鬱，台南市東區附近有門診嗎", IntentNearbyClinic},
		// fresh topic containing a continuation word is not a continuation
		{"想了解更多憂鬱症的知識", IntentGeneralRecommendation},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Classify(tt.query), "query %q", tt.query)
	}
}
