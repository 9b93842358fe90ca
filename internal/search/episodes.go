package search

import (
	"sort"
	"strings"
	"unicode"
)

// Episode part markers. Many courses are split into two videos whose titles
// differ only by a suffix like （上）/（下）; grouping keeps the pair adjacent
// in result lists.
var (
	partOneMarkers = []string{"（上）", "(上)", "上集", "（一）", "(一)", "(1)", "Part 1", "part 1"}
	partTwoMarkers = []string{"（下）", "(下)", "下集", "（二）", "(二)", "(2)", "Part 2", "part 2"}
)

// BaseKey derives a grouping key for a unit title: part markers and all
// whitespace are stripped so both halves of a pair share a key.
func BaseKey(sectionTitle, title string) string {
	s := sectionTitle + title
	for _, m := range partOneMarkers {
		s = strings.ReplaceAll(s, m, "")
	}
	for _, m := range partTwoMarkers {
		s = strings.ReplaceAll(s, m, "")
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

// partRank orders episodes within a group: part one, then part two, with
// unmarked titles after both.
func partRank(title string) int {
	for _, m := range partOneMarkers {
		if strings.Contains(title, m) {
			return 0
		}
	}
	for _, m := range partTwoMarkers {
		if strings.Contains(title, m) {
			return 1
		}
	}
	return 2
}

// GroupEpisodes reorders scored results so episode pairs sit next to each
// other. Groups are ranked by their best member score; within a group the
// part order wins, then score. The input slice is not modified.
func GroupEpisodes(results []ScoredResult) []ScoredResult {
	if len(results) <= 1 {
		out := make([]ScoredResult, len(results))
		copy(out, results)
		return out
	}

	type group struct {
		members   []ScoredResult
		bestScore float64
		firstSeen int
	}

	byKey := make(map[string]*group)
	var order []*group

	for i, r := range results {
		key := BaseKey(r.Unit.SectionTitle, r.Unit.Title)
		g, ok := byKey[key]
		if !ok {
			g = &group{firstSeen: i}
			byKey[key] = g
			order = append(order, g)
		}
		g.members = append(g.members, r)
		if r.Score > g.bestScore {
			g.bestScore = r.Score
		}
	}

	for _, g := range order {
		members := g.members
		sort.SliceStable(members, func(a, b int) bool {
			ra := partRank(members[a].Unit.Title)
			rb := partRank(members[b].Unit.Title)
			if ra != rb {
				return ra < rb
			}
			return members[a].Score > members[b].Score
		})
	}

	sort.SliceStable(order, func(a, b int) bool {
		if order[a].bestScore != order[b].bestScore {
			return order[a].bestScore > order[b].bestScore
		}
		return order[a].firstSeen < order[b].firstSeen
	})

	out := make([]ScoredResult, 0, len(results))
	for _, g := range order {
		out = append(out, g.members...)
	}
	return out
}
