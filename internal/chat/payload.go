// Package chat defines the response payloads exchanged with clients. Every
// turn produces exactly one Response; the Type field discriminates the
// payload shape.
package chat

import "github.com/xinkuaihuo/wellbeing-engine/internal/advice"

// Response types.
const (
	TypeRecommendation = "course_recommendation"
	TypePoints         = "xin_points"
	TypeAdvice         = "advice"
	TypeText           = "text"
)

// Response is the payload returned for one conversational turn.
type Response struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`

	// course_recommendation fields. Query and Model carry the originating
	// search input so a later continuation can recompute the same result
	// set without re-deriving it from conversation context.
	// Pagination fields and the item lists are always present on the wire
	// so clients can read them without probing for the key.
	Query      string               `json:"query,omitempty"`
	Model      string               `json:"model,omitempty"`
	Results    []RecommendationItem `json:"results"`
	Offset     int                  `json:"offset"`
	Limit      int                  `json:"limit,omitempty"`
	Total      int                  `json:"total"`
	HasMore    bool                 `json:"has_more"`
	FilterType string               `json:"filter_type,omitempty"`

	// xin_points fields.
	Address string       `json:"address,omitempty"`
	Points  []PointEntry `json:"points"`

	// advice fields.
	Advice *advice.Document `json:"advice,omitempty"`
}

// RecommendationItem is one ranked content unit. Articles carry a snippet
// and link; videos carry a viewing hint and link.
type RecommendationItem struct {
	SectionTitle string  `json:"section_title"`
	Title        string  `json:"title"`
	Score        float64 `json:"score"`
	Type         string  `json:"type"`

	ArticleURL string `json:"article_url,omitempty"`
	Snippet    string `json:"snippet,omitempty"`

	YoutubeURL string `json:"youtube_url,omitempty"`
	Hint       string `json:"hint,omitempty"`
}

// PointEntry is one nearby support-service location.
type PointEntry struct {
	Title      string  `json:"title"`
	Address    string  `json:"address"`
	Tel        string  `json:"tel"`
	DistanceKm float64 `json:"distance_km"`
}
