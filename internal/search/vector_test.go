package search

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinkuaihuo/wellbeing-engine/internal/catalog"
	"github.com/xinkuaihuo/wellbeing-engine/internal/embedding"
)

func vectorCatalog() *catalog.Catalog {
	return catalog.New([]*catalog.ContentUnit{
		{SectionTitle: "睡眠", Title: "失眠的自我照顧", ContentText: "失眠是常見的困擾。"},
		{SectionTitle: "親子", Title: "與青少年溝通", ContentText: "青少年需要被理解。"},
		{SectionTitle: "壓力", Title: "職場壓力調適", ContentText: "壓力需要出口。"},
	})
}

func TestIndexBuildAndSearch(t *testing.T) {
	cat := vectorCatalog()
	ix := NewIndex(embedding.NewMockClient(64))

	assert.False(t, ix.Ready())

	var progress []int
	require.NoError(t, ix.Build(context.Background(), cat, 2, func(done int) {
		progress = append(progress, done)
	}))

	assert.True(t, ix.Ready())
	assert.Equal(t, []int{2, 3}, progress)

	results, err := ix.Search(context.Background(), "失眠是常見的困擾。", "", 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	// an identical text is most similar to its own unit
	assert.Equal(t, "失眠的自我照顧", results[0].Unit.Title)
	assert.InDelta(t, 1.0, results[0].Similarity, 1e-3)
}

// misreportingEmbedder claims a dimension different from the vectors it
// actually produces, like a provider that ignores the configured size.
type misreportingEmbedder struct {
	*embedding.MockClient
}

func (m misreportingEmbedder) Dimension() int {
	return 1536
}

func TestIndexDimensionMeasuredFromVectors(t *testing.T) {
	cat := vectorCatalog()
	ix := NewIndex(misreportingEmbedder{embedding.NewMockClient(64)})
	require.NoError(t, ix.Build(context.Background(), cat, 0, nil))

	results, err := ix.Search(context.Background(), "失眠是常見的困擾。", "", 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "失眠的自我照顧", results[0].Unit.Title)
}

func TestIndexSearchUnbuilt(t *testing.T) {
	ix := NewIndex(embedding.NewMockClient(64))

	results, err := ix.Search(context.Background(), "失眠", "", 5)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestIndexSaveLoad(t *testing.T) {
	cat := vectorCatalog()
	ix := NewIndex(embedding.NewMockClient(64))
	require.NoError(t, ix.Build(context.Background(), cat, 0, nil))

	path := filepath.Join(t.TempDir(), "index.json")
	require.NoError(t, ix.Save(path))

	restored := NewIndex(embedding.NewMockClient(64))
	require.NoError(t, restored.Load(path, cat))
	assert.True(t, restored.Ready())

	want, err := ix.Search(context.Background(), "職場壓力", "", 3)
	require.NoError(t, err)
	got, err := restored.Search(context.Background(), "職場壓力", "", 3)
	require.NoError(t, err)

	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.Equal(t, want[i].Unit.ID, got[i].Unit.ID)
		assert.InDelta(t, want[i].Similarity, got[i].Similarity, 1e-6)
	}
}
