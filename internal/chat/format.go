package chat

import (
	"fmt"
	"strings"

	"github.com/xinkuaihuo/wellbeing-engine/internal/advice"
	"github.com/xinkuaihuo/wellbeing-engine/internal/search"
)

const (
	snippetRunes     = 100
	hintSegmentRunes = 30
)

// Canned user-facing messages, Traditional Chinese like the content corpus.
const (
	MsgAddressNotFound      = "我有點抓不到地址，請嘗試輸入完整地址，例如：台南市東區大學路1號"
	MsgProvideFullAddress   = "請提供完整地址，例如：台南市東區大學路1號"
	MsgNoSuggestion         = "目前找不到很符合的課程，可以試著用：婆媳、壓力、憂鬱、失眠… 等詞再試試看。"
	MsgNothingToContinue    = "目前沒有可以繼續顯示的課程推薦，先跟我說說你想了解的主題吧。"
	MsgNoMoreResults        = "已經沒有更多相關課程了。"
	MsgWatchFromStart       = "字幕裡沒有特別命中關鍵句，可以從頭開始看。"
	MsgTranslationDegraded  = "翻譯服務暫時無法使用，以下用原文回覆。"
	MsgEmbeddingUnavailable = "語意比對暫時無法使用，以下結果以關鍵字比對為主。"
)

// GeocodeMissMessage reports that an address could not be geocoded.
func GeocodeMissMessage(address string) string {
	return fmt.Sprintf("查不到「%s」這個地址，請改成更正式的寫法試試看", address)
}

// NoPointsMessage reports that no locations sit within range of an address.
func NoPointsMessage(address string, maxKm float64) string {
	return fmt.Sprintf("在「%s」%.0f 公里內沒有找到心據點", address, maxKm)
}

// FormatTime renders seconds as mm:ss, or hh:mm:ss past the hour mark.
func FormatTime(seconds float64) string {
	s := int(seconds)
	h := s / 3600
	m := (s % 3600) / 60
	sec := s % 60
	if h > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", m, sec)
}

// newResponse returns a response of the given type with both item lists
// present, so marshaled payloads never carry a null array.
func newResponse(typ string) Response {
	return Response{
		Type:    typ,
		Results: []RecommendationItem{},
		Points:  []PointEntry{},
	}
}

// BuildRecommendation converts one page of scored results into a
// course_recommendation response. An empty result set carries the keyword
// suggestion message instead of items.
func BuildRecommendation(query, model string, page []search.ScoredResult, offset, limit, total int, hasMore bool, filter search.MediaFilter) Response {
	resp := newResponse(TypeRecommendation)
	resp.Query = query
	resp.Model = model
	resp.Offset = offset
	resp.Limit = limit
	resp.Total = total
	resp.HasMore = hasMore
	resp.FilterType = string(filter)

	if len(page) == 0 {
		if offset > 0 {
			resp.Message = MsgNoMoreResults
		} else {
			resp.Message = MsgNoSuggestion
		}
		return resp
	}

	items := make([]RecommendationItem, 0, len(page))
	for _, r := range page {
		title := r.Unit.Title
		if title == "" {
			title = "(無標題)"
		}
		section := r.Unit.SectionTitle
		if section == "" {
			section = "(未分類小節)"
		}

		item := RecommendationItem{
			SectionTitle: section,
			Title:        title,
			Score:        r.Score,
		}

		if r.Unit.IsArticle {
			item.Type = "article"
			item.ArticleURL = r.Unit.ArticleURL
			item.Snippet = Snippet(r.Unit.ContentText)
		} else {
			item.Type = "video"
			item.YoutubeURL = r.Unit.YoutubeURL
			item.Hint = segmentHint(r.BestSegment)
		}

		items = append(items, item)
	}
	resp.Results = items
	return resp
}

// Snippet returns the first hundred runes of an article body, newlines
// flattened, with an ellipsis when truncated.
func Snippet(contentText string) string {
	flat := strings.ReplaceAll(contentText, "\n", " ")
	runes := []rune(flat)
	if len(runes) <= snippetRunes {
		return flat
	}
	return string(runes[:snippetRunes]) + "..."
}

func segmentHint(seg *search.SegmentRef) string {
	if seg == nil {
		return MsgWatchFromStart
	}
	text := []rune(seg.Text)
	if len(text) > hintSegmentRunes {
		text = text[:hintSegmentRunes]
	}
	return fmt.Sprintf("該單元在 %s 有提到：「%s...」", FormatTime(seg.StartSec), string(text))
}

// BuildPoints converts nearby lookup results into an xin_points response.
func BuildPoints(address string, points []PointEntry, maxKm float64) Response {
	resp := newResponse(TypePoints)
	resp.Address = address
	if len(points) == 0 {
		resp.Message = NoPointsMessage(address, maxKm)
		return resp
	}
	resp.Points = points
	return resp
}

// AddressNotFoundResponse reports that no address could be pulled from a
// nearby-clinic question.
func AddressNotFoundResponse() Response {
	resp := newResponse(TypePoints)
	resp.Message = MsgAddressNotFound
	return resp
}

// GeocodeMissResponse reports that an extracted address did not resolve.
func GeocodeMissResponse(address string) Response {
	resp := newResponse(TypePoints)
	resp.Address = address
	resp.Message = GeocodeMissMessage(address)
	return resp
}

// ProvideFullAddressResponse asks for a usable address on the direct lookup
// surface.
func ProvideFullAddressResponse() Response {
	resp := newResponse(TypePoints)
	resp.Message = MsgProvideFullAddress
	return resp
}

// AdviceResponse wraps a curated advice document.
func AdviceResponse(doc *advice.Document) Response {
	resp := newResponse(TypeAdvice)
	resp.Advice = doc
	resp.Message = doc.Summary
	return resp
}

// TextResponse wraps a plain message.
func TextResponse(msg string) Response {
	resp := newResponse(TypeText)
	resp.Message = msg
	return resp
}
