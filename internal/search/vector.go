package search

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/xinkuaihuo/wellbeing-engine/internal/catalog"
	"github.com/xinkuaihuo/wellbeing-engine/internal/embedding"
)

// UnitScore pairs a unit with its cosine similarity to a query embedding.
type UnitScore struct {
	Unit       *catalog.ContentUnit
	Similarity float64
}

// Index holds one embedding per content unit and answers nearest-neighbour
// queries over them. Safe for concurrent readers; Build takes the write lock.
type Index struct {
	mu        sync.RWMutex
	embedder  embedding.Embedder
	units     []*catalog.ContentUnit
	vectors   [][]float32
	dimension int
}

// NewIndex returns an empty index backed by the given embedder.
func NewIndex(embedder embedding.Embedder) *Index {
	return &Index{embedder: embedder}
}

// Ready reports whether the index holds any vectors.
func (ix *Index) Ready() bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.vectors) > 0
}

// Build embeds every unit in the catalog in batches and replaces the index
// contents. progress, if non-nil, is called after each batch with the count
// of units embedded so far.
func (ix *Index) Build(ctx context.Context, cat *catalog.Catalog, batchSize int, progress func(done int)) error {
	units := cat.Units()
	if batchSize <= 0 {
		batchSize = 32
	}

	texts := make([]string, len(units))
	for i, u := range units {
		texts[i] = u.SearchText()
	}

	vectors := make([][]float32, 0, len(units))
	for start := 0; start < len(texts); start += batchSize {
		end := start + batchSize
		if end > len(texts) {
			end = len(texts)
		}
		batch, err := ix.embedder.Embed(ctx, texts[start:end])
		if err != nil {
			return fmt.Errorf("embedding batch at %d: %w", start, err)
		}
		vectors = append(vectors, batch...)
		if progress != nil {
			progress(len(vectors))
		}
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.units = units
	ix.vectors = vectors
	// Measure the dimension off the built vectors rather than trusting the
	// configured value; the API decides what it returns.
	ix.dimension = ix.embedder.Dimension()
	if len(vectors) > 0 {
		ix.dimension = len(vectors[0])
	}
	return nil
}

// Search embeds the query with the given model variant and returns the top-k
// units by cosine similarity, filtered at VectorFloor. An unbuilt index or a
// dimension mismatch yields an empty result rather than an error.
func (ix *Index) Search(ctx context.Context, query, model string, k int) ([]UnitScore, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if len(ix.vectors) == 0 || k <= 0 {
		return nil, nil
	}

	emb := ix.embedder
	if model != "" && model != emb.Model() {
		emb = emb.WithModel(model)
	}
	qv, err := emb.EmbedSingle(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(qv) != ix.dimension {
		return nil, nil
	}

	scores := make([]UnitScore, 0, len(ix.vectors))
	for i, v := range ix.vectors {
		sim := cosineSimilarity(qv, v)
		if sim < VectorFloor {
			continue
		}
		scores = append(scores, UnitScore{Unit: ix.units[i], Similarity: sim})
	}

	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].Similarity > scores[b].Similarity
	})
	if len(scores) > k {
		scores = scores[:k]
	}
	return scores, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

type indexFile struct {
	Dimension int                  `json:"dimension"`
	Vectors   map[string][]float32 `json:"vectors"`
}

// Save writes the index vectors to path, keyed by unit ID.
func (ix *Index) Save(path string) error {
	ix.mu.RLock()
	out := indexFile{
		Dimension: ix.dimension,
		Vectors:   make(map[string][]float32, len(ix.units)),
	}
	for i, u := range ix.units {
		out.Vectors[u.ID] = ix.vectors[i]
	}
	ix.mu.RUnlock()

	data, err := json.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding index: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing index: %w", err)
	}
	return nil
}

// Load restores saved vectors for the given catalog. Units without a saved
// vector are skipped.
func (ix *Index) Load(path string, cat *catalog.Catalog) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading index: %w", err)
	}
	var in indexFile
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decoding index: %w", err)
	}

	var units []*catalog.ContentUnit
	var vectors [][]float32
	for _, u := range cat.Units() {
		v, ok := in.Vectors[u.ID]
		if !ok {
			continue
		}
		units = append(units, u)
		vectors = append(vectors, v)
	}

	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.units = units
	ix.vectors = vectors
	ix.dimension = in.Dimension
	return nil
}
