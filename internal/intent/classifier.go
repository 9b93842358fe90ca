// Package intent routes conversational turns to a response mode and
// assembles the payload for each.
package intent

import (
	"strings"

	"github.com/xinkuaihuo/wellbeing-engine/internal/advice"
	"github.com/xinkuaihuo/wellbeing-engine/internal/geo"
	"github.com/xinkuaihuo/wellbeing-engine/internal/search"
)

// Intent tags the classified response mode of a turn.
type Intent string

const (
	IntentNearbyClinic          Intent = "nearby_clinic"
	IntentDirectAddress         Intent = "direct_address"
	IntentPaginationContinue    Intent = "pagination_continue"
	IntentMediaPreferenceOnly   Intent = "media_preference_only"
	IntentSpecialAdvice         Intent = "special_advice"
	IntentGeneralRecommendation Intent = "general_recommendation"
)

// Classifier decides which mode a turn belongs to. Rules are evaluated in
// strict priority order; the first match wins.
type Classifier struct {
	proximityPatterns    []string
	clinicPatterns       []string
	continuationPatterns []string
	advice               *advice.Library
}

// NewClassifier creates a classifier backed by the given advice library.
func NewClassifier(lib *advice.Library) *Classifier {
	return &Classifier{
		proximityPatterns: []string{"附近", "nearby", "near me"},
		clinicPatterns:    []string{"心據點", "門診", "看診"},
		continuationPatterns: []string{
			"給我下五個",
			"下五個",
			"下5個",
			"再五個",
			"再來五個",
			"再來",
			"更多",
			"還有嗎",
			"還有沒有",
			"下一頁",
			"繼續",
			"more",
			"show me more",
			"show more",
			"next",
			"next page",
		},
		advice: lib,
	}
}

// Classify tags a query. The order here is the routing contract: proximity
// questions beat bare addresses, which beat continuations, and curated
// advice is checked only after every conversational shortcut has missed.
func (c *Classifier) Classify(query string) Intent {
	q := strings.TrimSpace(query)

	if c.containsAny(q, c.proximityPatterns) && c.containsAny(q, c.clinicPatterns) {
		return IntentNearbyClinic
	}
	if geo.IsDirectAddress(q) {
		return IntentDirectAddress
	}
	if c.isContinuation(q) {
		return IntentPaginationContinue
	}
	if c.isMediaPreferenceOnly(q) {
		return IntentMediaPreferenceOnly
	}
	if _, ok := c.advice.Match(q); ok {
		return IntentSpecialAdvice
	}
	return IntentGeneralRecommendation
}

func (c *Classifier) containsAny(query string, patterns []string) bool {
	lower := strings.ToLower(query)
	for _, p := range patterns {
		if strings.Contains(lower, p) {
			return true
		}
	}
	return false
}

// isContinuation matches only when the whole utterance is a continuation
// phrase, so a fresh topic containing "更多" is not swallowed.
func (c *Classifier) isContinuation(query string) bool {
	q := strings.ToLower(strings.Trim(query, " 　。！!？?，,"))
	for _, p := range c.continuationPatterns {
		if q == p {
			return true
		}
	}
	return false
}

func (c *Classifier) isMediaPreferenceOnly(query string) bool {
	if search.ParseMediaPreference(query) == search.FilterNone {
		return false
	}
	residual := strings.Trim(search.StripMediaPreference(query), " 　。！!？?，,")
	return residual == ""
}
