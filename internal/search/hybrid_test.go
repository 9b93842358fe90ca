package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinkuaihuo/wellbeing-engine/internal/catalog"
)

func TestMergeHybridOverlapBoost(t *testing.T) {
	units := testUnits(t, []*catalog.ContentUnit{
		{Title: "失眠的自我照顧"},
		{Title: "正念呼吸練習"},
	})

	lexical := []ScoredResult{{Unit: units[0], Score: 10}}
	vector := []UnitScore{{Unit: units[0], Similarity: 0.8}}

	out := MergeHybrid(lexical, vector)

	require.Len(t, out, 1)
	assert.InDelta(t, 10+0.8*VectorOverlapBoost, out[0].Score, 1e-9)
}

func TestMergeHybridVectorOnlyAdmission(t *testing.T) {
	units := testUnits(t, []*catalog.ContentUnit{
		{Title: "失眠的自我照顧"},
		{Title: "正念呼吸練習"},
		{Title: "無關的課程"},
	})

	lexical := []ScoredResult{{Unit: units[0], Score: 10}}
	vector := []UnitScore{
		{Unit: units[1], Similarity: 0.6},
		{Unit: units[2], Similarity: 0.2}, // below the floor, dropped
	}

	out := MergeHybrid(lexical, vector)

	require.Len(t, out, 2)
	assert.Equal(t, "失眠的自我照顧", out[0].Unit.Title)
	assert.Equal(t, "正念呼吸練習", out[1].Unit.Title)
	assert.InDelta(t, 0.6*VectorOnlyWeight, out[1].Score, 1e-9)
}

func TestMergeHybridDeterministic(t *testing.T) {
	units := testUnits(t, []*catalog.ContentUnit{
		{Title: "課程甲"},
		{Title: "課程乙"},
		{Title: "課程丙"},
	})

	lexical := []ScoredResult{
		{Unit: units[0], Score: 5},
		{Unit: units[1], Score: 5},
	}
	vector := []UnitScore{
		{Unit: units[2], Similarity: 0.5},
	}

	first := MergeHybrid(lexical, vector)
	second := MergeHybrid(lexical, vector)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Unit.Title, second[i].Unit.Title)
		assert.Equal(t, first[i].Score, second[i].Score)
	}
	// equal lexical scores keep their input order
	assert.Equal(t, "課程甲", first[0].Unit.Title)
	assert.Equal(t, "課程乙", first[1].Unit.Title)
}
