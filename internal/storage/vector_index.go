// ABOUTME: In-memory vector index with exhaustive cosine similarity search
// ABOUTME: Atomic rebuild via pointer swap; readers never observe a partial index
package storage

import (
	"fmt"
	"math"
	"sort"
	"sync/atomic"

	"github.com/harper/studygen/internal/models"
)

// DimensionMismatchError is returned when a query vector's dimension
// disagrees with the index's. It signals stale vectors that require full
// re-embedding, never partial use.
type DimensionMismatchError struct {
	IndexDim int
	QueryDim int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("vector dimension mismatch: index has %d, query has %d", e.IndexDim, e.QueryDim)
}

// IndexEntry associates one chunk with its embedding vector
type IndexEntry struct {
	Chunk  models.Chunk
	Vector models.EmbeddingVector
}

type indexSnapshot struct {
	entries   []IndexEntry
	dimension int
}

// VectorIndex is an exhaustive-scan nearest-neighbor store over chunk
// vectors. At session scale (tens to low hundreds of chunks) a linear scan
// is both sufficient and deterministic. Rebuild replaces the whole index
// atomically; concurrent searches see either the old or the new index.
type VectorIndex struct {
	snapshot atomic.Pointer[indexSnapshot]
}

// NewVectorIndex creates an empty index
func NewVectorIndex() *VectorIndex {
	ix := &VectorIndex{}
	ix.snapshot.Store(&indexSnapshot{})
	return ix
}

// Rebuild replaces the index contents with the given entries. All vectors
// must share one dimension; a mixed set is rejected wholesale so the index
// never holds vectors that disagree with the active embedding model.
func (ix *VectorIndex) Rebuild(entries []IndexEntry) error {
	snap := &indexSnapshot{}
	if len(entries) > 0 {
		snap.dimension = entries[0].Vector.Dimension
		snap.entries = make([]IndexEntry, len(entries))
		for i, e := range entries {
			if e.Vector.Dimension != snap.dimension || len(e.Vector.Values) != snap.dimension {
				return &DimensionMismatchError{IndexDim: snap.dimension, QueryDim: len(e.Vector.Values)}
			}
			snap.entries[i] = e
		}
	}
	ix.snapshot.Store(snap)
	return nil
}

// Len returns the number of indexed chunks
func (ix *VectorIndex) Len() int {
	return len(ix.snapshot.Load().entries)
}

// Dimension returns the vector dimension of the current index (0 when empty)
func (ix *VectorIndex) Dimension() int {
	return ix.snapshot.Load().dimension
}

// Search returns the top-k entries by cosine similarity, highest first.
// Ties are broken by ascending sequence index, then document ID, so results
// are deterministic for a fixed index.
func (ix *VectorIndex) Search(query []float64, k int) (models.RetrievalResult, error) {
	snap := ix.snapshot.Load()
	if len(snap.entries) == 0 {
		return models.RetrievalResult{}, nil
	}
	if len(query) != snap.dimension {
		return nil, &DimensionMismatchError{IndexDim: snap.dimension, QueryDim: len(query)}
	}
	if k <= 0 {
		return models.RetrievalResult{}, nil
	}

	scored := make(models.RetrievalResult, len(snap.entries))
	for i, entry := range snap.entries {
		scored[i] = models.ScoredChunk{
			Chunk: entry.Chunk,
			Score: cosineSimilarity(query, entry.Vector.Values),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		if scored[i].Chunk.SequenceIndex != scored[j].Chunk.SequenceIndex {
			return scored[i].Chunk.SequenceIndex < scored[j].Chunk.SequenceIndex
		}
		return scored[i].Chunk.DocumentID < scored[j].Chunk.DocumentID
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored, nil
}

// cosineSimilarity calculates cosine similarity between two vectors
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
