// Package taxonomy holds the curated category keyword lists and stop words
// that drive query normalization. The mapping is read-mostly: request
// handlers read an immutable snapshot, and reload swaps the snapshot
// atomically so readers never observe a half-updated map.
package taxonomy

import (
	"fmt"
	"os"
	"sync/atomic"

	"gopkg.in/yaml.v3"
)

// Category is one taxonomy category with its ordered keyword list.
type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Snapshot is an immutable view of the taxonomy.
type Snapshot struct {
	categories []Category
	byKeyword  map[string]string // keyword -> category name
	stopWords  map[string]struct{}
}

// Categories returns the ordered category list.
func (s *Snapshot) Categories() []Category {
	return s.categories
}

// CategoryOf returns the category a keyword belongs to.
func (s *Snapshot) CategoryOf(keyword string) (string, bool) {
	c, ok := s.byKeyword[keyword]
	return c, ok
}

// Siblings returns the ordered keyword list of a category.
func (s *Snapshot) Siblings(category string) []string {
	for _, c := range s.categories {
		if c.Name == category {
			return c.Keywords
		}
	}
	return nil
}

// IsStopWord reports whether a token is a stop word.
func (s *Snapshot) IsStopWord(token string) bool {
	_, ok := s.stopWords[token]
	return ok
}

type taxonomyFile struct {
	Categories []Category `yaml:"categories"`
	StopWords  []string   `yaml:"stop_words"`
}

func newSnapshot(f taxonomyFile) *Snapshot {
	snap := &Snapshot{
		categories: f.Categories,
		byKeyword:  make(map[string]string),
		stopWords:  make(map[string]struct{}, len(f.StopWords)),
	}
	for _, c := range f.Categories {
		for _, kw := range c.Keywords {
			if _, exists := snap.byKeyword[kw]; !exists {
				snap.byKeyword[kw] = c.Name
			}
		}
	}
	for _, w := range f.StopWords {
		snap.stopWords[w] = struct{}{}
	}
	return snap
}

// Taxonomy provides atomically swappable access to the current snapshot.
type Taxonomy struct {
	path string
	snap atomic.Pointer[Snapshot]
}

// Load reads the taxonomy from a YAML file.
func Load(path string) (*Taxonomy, error) {
	t := &Taxonomy{path: path}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// New builds a taxonomy from in-memory categories and stop words.
func New(categories []Category, stopWords []string) *Taxonomy {
	t := &Taxonomy{}
	t.snap.Store(newSnapshot(taxonomyFile{Categories: categories, StopWords: stopWords}))
	return t
}

// Default returns the built-in taxonomy used when no keywords file is
// configured.
func Default() *Taxonomy {
	return New(defaultCategories(), defaultStopWords())
}

// Current returns the current snapshot.
func (t *Taxonomy) Current() *Snapshot {
	return t.snap.Load()
}

// Reload re-reads the keywords file and atomically swaps the snapshot.
func (t *Taxonomy) Reload() error {
	if t.path == "" {
		return fmt.Errorf("taxonomy has no backing file")
	}

	data, err := os.ReadFile(t.path)
	if err != nil {
		return fmt.Errorf("read keywords file: %w", err)
	}

	var f taxonomyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse keywords file: %w", err)
	}

	if len(f.Categories) == 0 {
		return fmt.Errorf("keywords file has no categories")
	}

	t.snap.Store(newSnapshot(f))
	return nil
}

func defaultCategories() []Category {
	return []Category{
		{Name: "mood", Keywords: []string{
			"憂鬱", "情緒低落", "心情不好", "心情低落", "心情", "低落", "難過", "沮喪", "沒動力",
		}},
		{Name: "anxiety", Keywords: []string{
			"焦慮", "緊張", "恐慌", "壓力", "職場壓力",
		}},
		{Name: "sleep", Keywords: []string{
			"睡不著", "失眠",
		}},
		{Name: "loneliness", Keywords: []string{
			"孤單", "寂寞",
		}},
		{Name: "family", Keywords: []string{
			"婆媳", "婆婆", "公婆", "家庭衝突", "家庭關係", "夫妻", "婚姻",
		}},
		{Name: "parenting", Keywords: []string{
			"小孩", "孩子", "幼兒", "青少年", "教養", "親子", "親子衝突", "親子關係",
			"吵架", "頂嘴", "哭鬧", "情緒失控", "脾氣",
		}},
	}
}

func defaultStopWords() []string {
	return []string{
		"我", "你", "他", "她", "它", "我們", "你們", "他們",
		"最近", "一直", "覺得", "有點", "有一點",
		"如果", "好像", "是不是",
		"該怎麼辦", "怎麼辦", "怎麼做", "該怎麼做",
		"可以", "自己",
		"的", "了", "呢", "嗎", "吧",
	}
}
