package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinkuaihuo/wellbeing-engine/internal/catalog"
	"github.com/xinkuaihuo/wellbeing-engine/internal/observability"
	"github.com/xinkuaihuo/wellbeing-engine/internal/taxonomy"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	cat := catalog.New([]*catalog.ContentUnit{
		{
			SectionTitle: "睡眠系列",
			Title:        "失眠的自我照顧",
			ContentText:  "失眠是常見的困擾,建立規律作息有幫助。",
			IsArticle:    true,
			ArticleURL:   "https://example.org/insomnia",
		},
		{
			SectionTitle: "睡眠系列",
			Title:        "睡前放鬆練習",
			YoutubeURL:   "https://youtu.be/relax",
			Subtitles: []catalog.Subtitle{
				{Text: "睡不著的時候可以這樣做", StartSec: 12},
			},
		},
		{
			SectionTitle: "親子系列",
			Title:        "與青少年溝通",
			ContentText:  "青少年需要被理解。",
		},
	})
	return NewService(cat, taxonomy.Default(), nil, observability.NopLogger(), 10)
}

func TestServiceSearchLexical(t *testing.T) {
	svc := newTestService(t)

	results, err := svc.Search(context.Background(), "最近一直失眠", "", FilterNone)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "失眠的自我照顧", results[0].Unit.Title)
	// the sibling keyword 睡不著 pulls in the relaxation video
	titles := make([]string, len(results))
	for i, r := range results {
		titles[i] = r.Unit.Title
	}
	assert.Contains(t, titles, "睡前放鬆練習")
	assert.NotContains(t, titles, "與青少年溝通")
}

func TestServiceSearchNoTerms(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Search(context.Background(), "嗎", "", FilterNone)
	assert.ErrorIs(t, err, ErrNoSearchableTerms)
}

func TestServiceSearchMediaFilter(t *testing.T) {
	svc := newTestService(t)

	articles, err := svc.Search(context.Background(), "失眠", "", FilterArticles)
	require.NoError(t, err)
	for _, r := range articles {
		assert.True(t, r.Unit.IsArticle)
	}

	videos, err := svc.Search(context.Background(), "失眠", "", FilterVideos)
	require.NoError(t, err)
	for _, r := range videos {
		assert.False(t, r.Unit.IsArticle)
	}
}

func TestParseMediaPreference(t *testing.T) {
	assert.Equal(t, FilterArticles, ParseMediaPreference("只要文章 失眠"))
	assert.Equal(t, FilterVideos, ParseMediaPreference("失眠 只看影片"))
	assert.Equal(t, FilterNone, ParseMediaPreference("失眠"))

	assert.Equal(t, "失眠", StripMediaPreference("只要文章 失眠"))
}

func TestPaginate(t *testing.T) {
	results := make([]ScoredResult, 12)

	page, total, hasMore := Paginate(results, 0, 5)
	assert.Len(t, page, 5)
	assert.Equal(t, 12, total)
	assert.True(t, hasMore)

	page, _, hasMore = Paginate(results, 10, 5)
	assert.Len(t, page, 2)
	assert.False(t, hasMore)

	page, total, hasMore = Paginate(results, 20, 5)
	assert.Nil(t, page)
	assert.Equal(t, 12, total)
	assert.False(t, hasMore)
}
