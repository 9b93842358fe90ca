package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/xinkuaihuo/wellbeing-engine/internal/observability"
)

// ErrGeocodeMiss means no candidate form of the address resolved to
// coordinates.
var ErrGeocodeMiss = errors.New("address could not be geocoded")

// Location is a WGS84 coordinate pair.
type Location struct {
	Lat float64
	Lon float64
}

// Geocoder resolves a free-form address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Location, error)
}

// NominatimClient geocodes through the OpenStreetMap nominatim search API.
// Formal address variants are tried in order until one resolves.
type NominatimClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *observability.Logger
}

// NominatimOptions configures a NominatimClient.
type NominatimOptions struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
	Logger    *observability.Logger
}

// NewNominatimClient creates a client with sane defaults for zero options.
func NewNominatimClient(opts NominatimOptions) *NominatimClient {
	if opts.BaseURL == "" {
		opts.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "xin-bot/1.0"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = observability.NopLogger()
	}
	return &NominatimClient{
		baseURL:    strings.TrimSuffix(opts.BaseURL, "/"),
		userAgent:  opts.UserAgent,
		httpClient: &http.Client{Timeout: opts.Timeout},
		logger:     opts.Logger,
	}
}

var (
	houseNumberRe = regexp.MustCompile(`\d+號.*`)
	alleyRe       = regexp.MustCompile(`\d+弄.*`)
	laneRe        = regexp.MustCompile(`\d+巷.*`)
)

// addressVariants lists progressively simpler forms of an address: the
// original, a 臺→台 swap, house/alley/lane detail stripped, and finally the
// bare city+district prefix.
func addressVariants(address string) []string {
	variants := []string{address}
	seen := map[string]bool{address: true}
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v != "" && !seen[v] {
			seen[v] = true
			variants = append(variants, v)
		}
	}

	if strings.Contains(address, "臺") {
		add(strings.ReplaceAll(address, "臺", "台"))
	}
	add(houseNumberRe.ReplaceAllString(address, ""))
	add(alleyRe.ReplaceAllString(address, ""))
	add(laneRe.ReplaceAllString(address, ""))
	if cd, ok := cityDistrict(address); ok {
		add(cd)
	}
	return variants
}

// Geocode tries each address variant in order and returns the first hit.
// ErrGeocodeMiss means every variant came back empty; transport errors on
// one variant do not abort the remaining ones.
func (c *NominatimClient) Geocode(ctx context.Context, address string) (Location, error) {
	if address == "" {
		return Location{}, ErrGeocodeMiss
	}

	for _, variant := range addressVariants(address) {
		loc, ok, err := c.lookup(ctx, variant)
		if err != nil {
			c.logger.Warn().Err(err).Str("address", variant).Msg("geocode lookup failed")
			continue
		}
		if ok {
			c.logger.Debug().
				Str("address", variant).
				Float64("lat", loc.Lat).
				Float64("lon", loc.Lon).
				Msg("geocode hit")
			return loc, nil
		}
	}
	return Location{}, ErrGeocodeMiss
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

func (c *NominatimClient) lookup(ctx context.Context, address string) (Location, bool, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return Location{}, false, fmt.Errorf("creating geocode request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Location{}, false, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Location{}, false, fmt.Errorf("geocode request: status %d", resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Location{}, false, fmt.Errorf("decoding geocode response: %w", err)
	}
	if len(results) == 0 {
		return Location{}, false, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Location{}, false, fmt.Errorf("parsing latitude: %w", err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Location{}, false, fmt.Errorf("parsing longitude: %w", err)
	}
	return Location{Lat: lat, Lon: lon}, true, nil
}
