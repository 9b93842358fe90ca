package geo

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
)

// Defaults for nearby lookup.
const (
	DefaultMaxKm = 5.0
	DefaultTopK  = 5

	earthRadiusKm = 6371
)

// Point is one support-service location.
type Point struct {
	Title   string  `json:"title"`
	Address string  `json:"address"`
	Tel     string  `json:"tel"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// Nearby pairs a point with its distance from a query location.
type Nearby struct {
	Point      Point
	DistanceKm float64
}

// PointStore holds the loaded point directory. Immutable after load.
type PointStore struct {
	points []Point
}

type pointsFile struct {
	Data []Point `json:"data"`
}

// LoadPoints reads the point directory from a JSON file.
func LoadPoints(path string) (*PointStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading points file: %w", err)
	}
	var f pointsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing points file: %w", err)
	}
	return &PointStore{points: f.Data}, nil
}

// NewPointStore wraps an in-memory point list, for tests.
func NewPointStore(points []Point) *PointStore {
	return &PointStore{points: points}
}

// Len reports the number of loaded points.
func (s *PointStore) Len() int { return len(s.points) }

// FindNearby returns up to topK points within maxKm of a location, closest
// first. Points without coordinates are skipped.
func (s *PointStore) FindNearby(loc Location, maxKm float64, topK int) []Nearby {
	if maxKm <= 0 {
		maxKm = DefaultMaxKm
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	var results []Nearby
	for _, p := range s.points {
		if p.Lat == 0 && p.Lon == 0 {
			continue
		}
		d := HaversineKm(loc, Location{Lat: p.Lat, Lon: p.Lon})
		if d <= maxKm {
			results = append(results, Nearby{Point: p, DistanceKm: d})
		}
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].DistanceKm < results[b].DistanceKm
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

// HaversineKm computes the great-circle distance between two locations.
func HaversineKm(a, b Location) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dlat := (b.Lat - a.Lat) * math.Pi / 180
	dlon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
