// Package locale detects the language of incoming queries and translates
// non-Chinese queries into the search language. Translation is an external
// collaborator; failures degrade to the original text.
package locale

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/xinkuaihuo/wellbeing-engine/internal/cache"
	"github.com/xinkuaihuo/wellbeing-engine/internal/observability"
)

// Supported language tags.
const (
	LangChinese = "zh-TW"
	LangEnglish = "en"
)

// SearchLanguage is the language the content corpus is written in.
const SearchLanguage = LangChinese

// Detect classifies a query by Han-character ratio. Short mixed input leans
// Chinese since the corpus is Chinese.
func Detect(text string) string {
	var han, letters int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			han++
		case unicode.IsLetter(r):
			letters++
		}
	}
	if han == 0 && letters > 0 {
		return LangEnglish
	}
	return LangChinese
}

// Translator converts text between languages.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
}

// HTTPTranslator calls a JSON translation endpoint.
type HTTPTranslator struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPTranslator creates a translator client.
func NewHTTPTranslator(baseURL, apiKey string, timeout time.Duration) *HTTPTranslator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPTranslator{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type translateRequest struct {
	Text   string `json:"text"`
	Target string `json:"target"`
}

type translateResponse struct {
	Text string `json:"text"`
}

// Translate posts the text and target language and returns the translation.
func (t *HTTPTranslator) Translate(ctx context.Context, text, targetLang string) (string, error) {
	body, err := json.Marshal(translateRequest{Text: text, Target: targetLang})
	if err != nil {
		return "", fmt.Errorf("encoding translate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating translate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translate request: status %d", resp.StatusCode)
	}

	var out translateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding translate response: %w", err)
	}
	if out.Text == "" {
		return "", fmt.Errorf("translate request: empty result")
	}
	return out.Text, nil
}

// Service wraps detection and translation with caching and degradation. A
// nil translator disables translation entirely.
type Service struct {
	translator Translator
	cache      cache.Client
	ttl        time.Duration
	logger     *observability.Logger
}

// NewService builds a locale service. cacheClient may be nil to skip
// caching.
func NewService(translator Translator, cacheClient cache.Client, ttl time.Duration, logger *observability.Logger) *Service {
	if logger == nil {
		logger = observability.NopLogger()
	}
	return &Service{translator: translator, cache: cacheClient, ttl: ttl, logger: logger}
}

// ToSearchLanguage translates a query into the corpus language when needed.
// The detected language tag is always returned; on translation failure the
// original text comes back unchanged.
func (s *Service) ToSearchLanguage(ctx context.Context, text string) (translated, detected string) {
	detected = Detect(text)
	if detected == SearchLanguage || s.translator == nil {
		return text, detected
	}
	return s.translate(ctx, text, SearchLanguage), detected
}

// Localize translates a response message back into the user's language.
func (s *Service) Localize(ctx context.Context, text, targetLang string) string {
	if targetLang == SearchLanguage || s.translator == nil || text == "" {
		return text
	}
	return s.translate(ctx, text, targetLang)
}

func (s *Service) translate(ctx context.Context, text, targetLang string) string {
	key := cache.TranslationKey(text, targetLang)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			return string(cached)
		}
	}

	out, err := s.translator.Translate(ctx, text, targetLang)
	if err != nil {
		s.logger.Warn().Err(err).Str("target", targetLang).Msg("translation failed, returning original text")
		return text
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, []byte(out), s.ttl); err != nil {
			s.logger.Warn().Err(err).Msg("translation cache write failed")
		}
	}
	return out
}
