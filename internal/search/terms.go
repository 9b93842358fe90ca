package search

import (
	"strings"
	"unicode/utf8"

	"github.com/xinkuaihuo/wellbeing-engine/internal/taxonomy"
)

// TermSet is the normalized form of a query. The three term classes are
// pairwise disjoint.
type TermSet struct {
	// UserCore holds taxonomy keywords the user actually typed.
	UserCore []string
	// Expanded holds taxonomy siblings of matched categories that the user
	// did not type.
	Expanded []string
	// Other holds residual tokens that are neither stop words nor
	// functional words.
	Other []string
}

// IsEmpty reports whether the set carries no searchable terms.
func (t TermSet) IsEmpty() bool {
	return len(t.UserCore) == 0 && len(t.Expanded) == 0 && len(t.Other) == 0
}

// functionalWords express media-type intent and must never contribute to
// scoring. Longer phrases come first so stripping removes them before their
// substrings.
var functionalWords = []string{
	"只要文章", "只看文章", "只要影片", "只看影片",
	"only articles", "only videos", "articles only", "videos only",
	"show me", "文章", "影片", "只要", "只看", "給我",
	"article", "video", "only",
}

// queryDelimiters split the residual query into tokens.
const queryDelimiters = "，。！!？?、；;:：,.\t\n 　"

// Normalizer turns raw queries into term sets using the current taxonomy
// snapshot.
type Normalizer struct {
	tax *taxonomy.Taxonomy
}

// NewNormalizer creates a normalizer over the given taxonomy.
func NewNormalizer(tax *taxonomy.Taxonomy) *Normalizer {
	return &Normalizer{tax: tax}
}

// Normalize lower-cases and trims the query, collects taxonomy hits as core
// terms, taxonomy siblings as expanded terms, and residual tokens as other
// terms. When the query misses the taxonomy entirely, the cleaned query is
// substituted as a single core term so short queries still search.
func (n *Normalizer) Normalize(query string) TermSet {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return TermSet{}
	}

	snap := n.tax.Current()

	var ts TermSet
	seen := make(map[string]struct{})
	matchedCategories := make([]string, 0, 2)
	categorySeen := make(map[string]struct{})

	for _, cat := range snap.Categories() {
		for _, kw := range cat.Keywords {
			if !strings.Contains(q, kw) {
				continue
			}
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			ts.UserCore = append(ts.UserCore, kw)
			if _, dup := categorySeen[cat.Name]; !dup {
				categorySeen[cat.Name] = struct{}{}
				matchedCategories = append(matchedCategories, cat.Name)
			}
		}
	}

	for _, cat := range matchedCategories {
		for _, kw := range snap.Siblings(cat) {
			if _, dup := seen[kw]; dup {
				continue
			}
			seen[kw] = struct{}{}
			ts.Expanded = append(ts.Expanded, kw)
		}
	}

	cleaned := q
	for _, kw := range ts.UserCore {
		cleaned = strings.ReplaceAll(cleaned, kw, " ")
	}
	for _, fw := range functionalWords {
		cleaned = strings.ReplaceAll(cleaned, fw, " ")
	}

	for _, tok := range strings.FieldsFunc(cleaned, func(r rune) bool {
		return strings.ContainsRune(queryDelimiters, r)
	}) {
		tok = strings.TrimSpace(tok)
		if utf8.RuneCountInString(tok) < 2 {
			continue
		}
		if snap.IsStopWord(tok) {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		ts.Other = append(ts.Other, tok)
	}

	if len(ts.UserCore) == 0 {
		fallback := strings.Join(strings.Fields(stripFunctional(q)), " ")
		if utf8.RuneCountInString(fallback) >= 2 {
			ts.UserCore = []string{fallback}
			// The fallback may equal a residual token; keep the classes
			// disjoint.
			ts.Other = removeTerm(ts.Other, fallback)
		}
	}

	return ts
}

func stripFunctional(q string) string {
	for _, fw := range functionalWords {
		q = strings.ReplaceAll(q, fw, " ")
	}
	return q
}

func removeTerm(terms []string, term string) []string {
	out := terms[:0]
	for _, t := range terms {
		if t != term {
			out = append(out, t)
		}
	}
	return out
}
