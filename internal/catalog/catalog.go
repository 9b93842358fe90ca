// Package catalog loads and holds the recommendable content units.
// The catalog is built once at startup and read-only afterwards, so request
// handlers may share it without synchronization.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Subtitle is one timed caption segment of a video unit.
type Subtitle struct {
	Text     string  `json:"text"`
	StartSec float64 `json:"start_sec"`
}

// ContentUnit is one recommendable item: a video lesson or an article.
type ContentUnit struct {
	ID           string     `json:"id"`
	SectionTitle string     `json:"section_title"`
	Title        string     `json:"title"`
	ContentText  string     `json:"content_text"`
	IsArticle    bool       `json:"is_article"`
	YoutubeURL   string     `json:"youtube_url,omitempty"`
	ArticleURL   string     `json:"article_url,omitempty"`
	Subtitles    []Subtitle `json:"subtitles,omitempty"`

	// searchText concatenates section title, title, body text and subtitle
	// text; computed once at load time.
	searchText string
}

// MediaURL returns the unit's link, whichever kind it is.
func (u *ContentUnit) MediaURL() string {
	if u.IsArticle {
		return u.ArticleURL
	}
	return u.YoutubeURL
}

// FullTitle returns section title and title joined, the string scored for
// title hits.
func (u *ContentUnit) FullTitle() string {
	return u.SectionTitle + u.Title
}

// SearchText returns the precomputed searchable text of the unit.
func (u *ContentUnit) SearchText() string {
	return u.searchText
}

// Catalog holds all loaded content units.
type Catalog struct {
	units []*ContentUnit
}

type unitsFile struct {
	Units []*ContentUnit `json:"units"`
}

// Load reads the unit catalog from a JSON file and precomputes search text.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read units file: %w", err)
	}

	var f unitsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse units file: %w", err)
	}

	return New(f.Units), nil
}

// New builds a catalog from already-decoded units.
func New(units []*ContentUnit) *Catalog {
	for i, u := range units {
		if u.ID == "" {
			u.ID = fmt.Sprintf("unit-%d", i)
		}
		u.searchText = buildSearchText(u)
	}
	return &Catalog{units: units}
}

// Units returns all content units. Callers must not mutate them.
func (c *Catalog) Units() []*ContentUnit {
	return c.units
}

// Len returns the number of units.
func (c *Catalog) Len() int {
	return len(c.units)
}

func buildSearchText(u *ContentUnit) string {
	parts := make([]string, 0, 4)
	for _, s := range []string{u.SectionTitle, u.Title, u.ContentText} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	if len(u.Subtitles) > 0 {
		texts := make([]string, 0, len(u.Subtitles))
		for _, seg := range u.Subtitles {
			if seg.Text != "" {
				texts = append(texts, seg.Text)
			}
		}
		if len(texts) > 0 {
			parts = append(parts, strings.Join(texts, " "))
		}
	}
	return strings.Join(parts, " ")
}
