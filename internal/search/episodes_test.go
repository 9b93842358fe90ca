package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinkuaihuo/wellbeing-engine/internal/catalog"
)

func TestBaseKey(t *testing.T) {
	tests := []struct {
		name    string
		section string
		title   string
		want    string
	}{
		{"fullwidth part one", "親子系列", "與青少年溝通（上）", "親子系列與青少年溝通"},
		{"fullwidth part two", "親子系列", "與青少年溝通（下）", "親子系列與青少年溝通"},
		{"halfwidth marker", "", "情緒管理(一)", "情緒管理"},
		{"english marker", "", "Mindfulness Part 1", "Mindfulness"},
		{"whitespace stripped", "壓力 調適", "好好 生活", "壓力調適好好生活"},
		{"no marker", "系列", "單集", "系列單集"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BaseKey(tt.section, tt.title))
		})
	}
}

func TestPartRank(t *testing.T) {
	assert.Equal(t, 2, partRank("單集標題"))
	assert.Equal(t, 0, partRank("溝通（上）"))
	assert.Equal(t, 1, partRank("溝通（下）"))
	assert.Equal(t, 0, partRank("溝通上集"))
	assert.Equal(t, 1, partRank("Stress Part 2"))
}

func TestGroupEpisodesKeepsPairsAdjacent(t *testing.T) {
	units := testUnits(t, []*catalog.ContentUnit{
		{SectionTitle: "親子", Title: "與青少年溝通（下）"},
		{SectionTitle: "睡眠", Title: "好好睡覺"},
		{SectionTitle: "親子", Title: "與青少年溝通（上）"},
	})

	in := []ScoredResult{
		{Unit: units[0], Score: 8},
		{Unit: units[1], Score: 7},
		{Unit: units[2], Score: 5},
	}

	out := GroupEpisodes(in)

	require.Len(t, out, 3)
	// the pair's best score (8) puts the group first, and part one
	// leads part two inside the group
	assert.Equal(t, "與青少年溝通（上）", out[0].Unit.Title)
	assert.Equal(t, "與青少年溝通（下）", out[1].Unit.Title)
	assert.Equal(t, "好好睡覺", out[2].Unit.Title)

	// input untouched
	assert.Equal(t, "與青少年溝通（下）", in[0].Unit.Title)
}

func TestGroupEpisodesTieBreaksByFirstSeen(t *testing.T) {
	units := testUnits(t, []*catalog.ContentUnit{
		{Title: "課程甲"},
		{Title: "課程乙"},
	})

	in := []ScoredResult{
		{Unit: units[0], Score: 3},
		{Unit: units[1], Score: 3},
	}

	out := GroupEpisodes(in)

	require.Len(t, out, 2)
	assert.Equal(t, "課程甲", out[0].Unit.Title)
	assert.Equal(t, "課程乙", out[1].Unit.Title)
}
