package search

import (
	"strings"

	"github.com/xinkuaihuo/wellbeing-engine/internal/catalog"
)

// SegmentRef points at the subtitle segment most relevant to a query.
type SegmentRef struct {
	Index    int
	Text     string
	StartSec float64
}

// ScoredResult is one unit with its relevance score for a query. Created
// fresh per search call.
type ScoredResult struct {
	Unit        *catalog.ContentUnit
	Score       float64
	BestSegment *SegmentRef
}

// Score computes the lexical relevance of a unit against a term set. A unit
// with neither title nor searchable text scores zero. Units scoring zero are
// excluded from results by the caller; the cutoff is a hard contract.
func Score(unit *catalog.ContentUnit, terms TermSet) (float64, *SegmentRef) {
	title := unit.FullTitle()
	body := unit.ContentText

	if title == "" && unit.SearchText() == "" {
		return 0, nil
	}

	var total float64

	for _, term := range terms.UserCore {
		if strings.Contains(title, term) {
			total += WeightCoreTitle
		}
		total += float64(strings.Count(body, term)) * WeightCoreBody
	}
	for _, term := range terms.Expanded {
		if strings.Contains(title, term) {
			total += WeightExpandedTitle
		}
		total += float64(strings.Count(body, term)) * WeightExpandedBody
	}
	for _, term := range terms.Other {
		if strings.Contains(title, term) {
			total += WeightOtherTitle
		}
		total += float64(strings.Count(body, term)) * WeightOtherBody
	}

	best, segTotal, coreHits := scanSegments(unit.Subtitles, terms)
	total += segTotal
	total += continuityBonus(coreHits)

	return total, best
}

// scanSegments scores the subtitle segments, finds the best one, and records
// which segments carry at least one core-term hit.
func scanSegments(segments []catalog.Subtitle, terms TermSet) (*SegmentRef, float64, []bool) {
	if len(segments) == 0 {
		return nil, 0, nil
	}

	coreHits := make([]bool, len(segments))
	var best *SegmentRef
	var bestScore, total float64

	for i, seg := range segments {
		var segScore float64
		for _, term := range terms.UserCore {
			n := strings.Count(seg.Text, term)
			if n > 0 {
				coreHits[i] = true
			}
			segScore += float64(n) * SegmentCoreWeight
		}
		if segScore == 0 {
			for _, term := range terms.Expanded {
				segScore += float64(strings.Count(seg.Text, term)) * SegmentExpandedWeight
			}
		}
		total += segScore
		if segScore > bestScore {
			bestScore = segScore
			best = &SegmentRef{Index: i, Text: seg.Text, StartSec: seg.StartSec}
		}
	}

	return best, total, coreHits
}

// continuityBonus rewards sustained topical discussion: every window of
// ContinuityWindow consecutive segments that all carry a core hit adds
// ContinuityBonus.
func continuityBonus(coreHits []bool) float64 {
	if len(coreHits) < ContinuityWindow {
		return 0
	}

	var bonus float64
	for i := 0; i+ContinuityWindow <= len(coreHits); i++ {
		all := true
		for j := i; j < i+ContinuityWindow; j++ {
			if !coreHits[j] {
				all = false
				break
			}
		}
		if all {
			bonus += ContinuityBonus
		}
	}
	return bonus
}
