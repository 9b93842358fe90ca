package search

import "sort"

// MergeHybrid folds vector similarities into the lexical result set. Units
// present in both lists get a similarity boost; vector-only units above the
// floor are admitted with a scaled-down score so strong lexical matches stay
// on top.
func MergeHybrid(lexical []ScoredResult, vector []UnitScore) []ScoredResult {
	merged := make([]ScoredResult, len(lexical))
	copy(merged, lexical)

	index := make(map[string]int, len(merged))
	for i, r := range merged {
		index[BaseKey(r.Unit.SectionTitle, r.Unit.Title)] = i
	}

	for _, vs := range vector {
		key := BaseKey(vs.Unit.SectionTitle, vs.Unit.Title)
		if i, ok := index[key]; ok {
			merged[i].Score += vs.Similarity * VectorOverlapBoost
			continue
		}
		if vs.Similarity <= VectorFloor {
			continue
		}
		merged = append(merged, ScoredResult{
			Unit:  vs.Unit,
			Score: vs.Similarity * VectorOnlyWeight,
		})
		index[key] = len(merged) - 1
	}

	sort.SliceStable(merged, func(a, b int) bool {
		return merged[a].Score > merged[b].Score
	})
	return merged
}
