package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xinkuaihuo/wellbeing-engine/internal/catalog"
)

func testUnits(t *testing.T, units []*catalog.ContentUnit) []*catalog.ContentUnit {
	t.Helper()
	return catalog.New(units).Units()
}

func TestScoreEmptyUnit(t *testing.T) {
	units := testUnits(t, []*catalog.ContentUnit{{}})

	score, seg := Score(units[0], TermSet{UserCore: []string{"失眠"}})

	assert.Zero(t, score)
	assert.Nil(t, seg)
}

func TestScoreTitleAndBodyWeights(t *testing.T) {
	units := testUnits(t, []*catalog.ContentUnit{
		{
			SectionTitle: "睡眠系列",
			Title:        "失眠的自我照顧",
			ContentText:  "失眠是常見的困擾。長期失眠需要專業協助。",
		},
	})

	terms := TermSet{UserCore: []string{"失眠"}}

	score, _ := Score(units[0], terms)

	// one title hit plus two body occurrences
	assert.InDelta(t, WeightCoreTitle+2*WeightCoreBody, score, 1e-9)
}

func TestScoreExpandedOnlyInSegmentsWithoutCoreHit(t *testing.T) {
	units := testUnits(t, []*catalog.ContentUnit{
		{
			Title: "好好睡覺",
			Subtitles: []catalog.Subtitle{
				{Text: "很多人晚上睡不著", StartSec: 0},
				{Text: "失眠與睡不著常常一起出現", StartSec: 30},
			},
		},
	})

	terms := TermSet{UserCore: []string{"失眠"}, Expanded: []string{"睡不著"}}

	_, seg := Score(units[0], terms)

	// the second segment carries a core hit so it outranks the
	// expanded-only first segment
	require.NotNil(t, seg)
	assert.Equal(t, 1, seg.Index)
	assert.InDelta(t, 30.0, seg.StartSec, 1e-9)
}

func TestScoreContinuityBonus(t *testing.T) {
	base := []*catalog.ContentUnit{
		{
			Title: "壓力調適",
			Subtitles: []catalog.Subtitle{
				{Text: "壓力第一段"},
				{Text: "壓力第二段"},
				{Text: "壓力第三段"},
			},
		},
		{
			Title: "壓力調適",
			Subtitles: []catalog.Subtitle{
				{Text: "壓力第一段"},
				{Text: "休息一下"},
				{Text: "壓力第三段"},
			},
		},
	}
	units := testUnits(t, base)

	terms := TermSet{UserCore: []string{"壓力"}}

	sustained, _ := Score(units[0], terms)
	broken, _ := Score(units[1], terms)

	// the sustained unit earns one continuity window plus one extra
	// segment hit over the broken unit
	assert.InDelta(t, ContinuityBonus+SegmentCoreWeight, sustained-broken, 1e-9)
}
