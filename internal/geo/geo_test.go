package geo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAddress(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"full sentence", "我住在台南市東區大學路1號附近有心據點嗎", "台南市東區大學路1號"},
		{"clinic word cut", "台北市大安區心據點在哪", "台北市大安區"},
		{"prefix and tail", "住在高雄市左營區有沒有", "高雄市左營區"},
		{"question marks trimmed", "在新北市板橋區附近?", "新北市板橋區"},
		{"too short", "我住台北附近", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractAddress(tt.query))
		})
	}
}

func TestIsDirectAddress(t *testing.T) {
	assert.True(t, IsDirectAddress("台南市東區大學路1號"))
	assert.True(t, IsDirectAddress("臺中市西屯區文心路"))
	assert.True(t, IsDirectAddress("苗栗縣頭份市中正路"))
	assert.False(t, IsDirectAddress("我最近睡不好"))
	assert.False(t, IsDirectAddress("大學路1號"))
}

func TestAddressVariants(t *testing.T) {
	variants := addressVariants("臺南市東區大學路18巷2弄1號")

	assert.Equal(t, "臺南市東區大學路18巷2弄1號", variants[0])
	assert.Contains(t, variants, "台南市東區大學路18巷2弄1號")
	assert.Contains(t, variants, "臺南市東區大學路18巷2弄")
	assert.Contains(t, variants, "臺南市東區大學路18巷")
	assert.Contains(t, variants, "臺南市東區大學路")
	assert.Contains(t, variants, "臺南市東區")

	// no duplicates
	seen := map[string]bool{}
	for _, v := range variants {
		assert.False(t, seen[v], "duplicate variant %q", v)
		seen[v] = true
	}
}

func TestNominatimGeocodeFallback(t *testing.T) {
	var queries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		queries = append(queries, q)
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		if q == "台南市東區" {
			json.NewEncoder(w).Encode([]map[string]string{{"lat": "22.98", "lon": "120.22"}})
			return
		}
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client := NewNominatimClient(NominatimOptions{BaseURL: srv.URL, UserAgent: "test-agent"})

	loc, err := client.Geocode(context.Background(), "台南市東區大學路1號")
	require.NoError(t, err)
	assert.InDelta(t, 22.98, loc.Lat, 1e-9)
	assert.InDelta(t, 120.22, loc.Lon, 1e-9)
	// the full address missed and the fallback chain reached city+district
	assert.Greater(t, len(queries), 1)
	assert.Equal(t, "台南市東區", queries[len(queries)-1])
}

func TestNominatimGeocodeMiss(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	client := NewNominatimClient(NominatimOptions{BaseURL: srv.URL})

	_, err := client.Geocode(context.Background(), "不存在的地方四號")
	assert.ErrorIs(t, err, ErrGeocodeMiss)

	_, err = client.Geocode(context.Background(), "")
	assert.ErrorIs(t, err, ErrGeocodeMiss)
}

func TestFindNearby(t *testing.T) {
	// Tainan city center
	center := Location{Lat: 22.9908, Lon: 120.2133}

	store := NewPointStore([]Point{
		{Title: "近點", Lat: 22.9950, Lon: 120.2100},
		{Title: "遠點", Lat: 25.0330, Lon: 121.5654}, // Taipei, ~300 km away
		{Title: "更近點", Lat: 22.9910, Lon: 120.2140},
		{Title: "無座標"},
	})

	results := store.FindNearby(center, DefaultMaxKm, DefaultTopK)

	require.Len(t, results, 2)
	assert.Equal(t, "更近點", results[0].Point.Title)
	assert.Equal(t, "近點", results[1].Point.Title)
	assert.Less(t, results[0].DistanceKm, results[1].DistanceKm)
}

func TestFindNearbyTopK(t *testing.T) {
	center := Location{Lat: 22.99, Lon: 120.21}
	var points []Point
	for i := 0; i < 8; i++ {
		points = append(points, Point{Title: "p", Lat: 22.99, Lon: 120.21 + float64(i)*0.001})
	}

	results := NewPointStore(points).FindNearby(center, 5, 5)
	assert.Len(t, results, 5)
}

func TestHaversineKm(t *testing.T) {
	taipei := Location{Lat: 25.0330, Lon: 121.5654}
	tainan := Location{Lat: 22.9908, Lon: 120.2133}

	d := HaversineKm(taipei, tainan)
	assert.InDelta(t, 264, d, 15)

	assert.Zero(t, HaversineKm(taipei, taipei))
}
