package search

// Scoring weights for the hybrid ranking pipeline. Tuning is a one-place
// change here; nothing else in the package carries scoring literals.
const (
	// Lexical weights per term class: title presence / per body occurrence.
	WeightCoreTitle     = 10.0
	WeightCoreBody      = 4.0
	WeightExpandedTitle = 5.0
	WeightExpandedBody  = 2.0
	WeightOtherTitle    = 1.0
	WeightOtherBody     = 0.5

	// Subtitle segment scan weights. Expanded terms count only for segments
	// with zero core hits.
	SegmentCoreWeight     = 1.0
	SegmentExpandedWeight = 0.5

	// ContinuityBonus is added for every window of ContinuityWindow
	// consecutive subtitle segments that each contain a core-term hit.
	ContinuityBonus  = 2.0
	ContinuityWindow = 3

	// Hybrid merge: lexical scores of units also found by vector search are
	// boosted by similarity * VectorOverlapBoost; vector-only units are
	// admitted at similarity * VectorOnlyWeight when above VectorFloor.
	VectorOverlapBoost = 20.0
	VectorOnlyWeight   = 10.0
	VectorFloor        = 0.25
)
