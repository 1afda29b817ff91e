// ABOUTME: Tests for the in-memory vector index
// ABOUTME: Verifies ranking, tie-breaks, dimension guards, and atomic rebuild
package storage

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/harper/studygen/internal/models"
)

func entry(docID string, seq int, vector []float64) IndexEntry {
	return IndexEntry{
		Chunk: models.Chunk{
			ID:            fmt.Sprintf("%s_%d", docID, seq),
			DocumentID:    docID,
			SequenceIndex: seq,
		},
		Vector: models.EmbeddingVector{
			ChunkID:   fmt.Sprintf("%s_%d", docID, seq),
			Values:    vector,
			Dimension: len(vector),
			Model:     "test-model",
		},
	}
}

func TestSearch_RankingOrder(t *testing.T) {
	ix := NewVectorIndex()
	err := ix.Rebuild([]IndexEntry{
		entry("doc_a", 0, []float64{1, 0, 0}),
		entry("doc_a", 1, []float64{0, 1, 0}),
		entry("doc_a", 2, []float64{0.9, 0.1, 0}),
	})
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	results, err := ix.Search([]float64{1, 0, 0}, 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	// Scores must be non-increasing
	for i := 1; i < len(results); i++ {
		if results[i].Score > results[i-1].Score {
			t.Errorf("scores not non-increasing at %d: %f > %f", i, results[i].Score, results[i-1].Score)
		}
	}
	if results[0].Chunk.SequenceIndex != 0 {
		t.Errorf("best match sequence = %d, want 0", results[0].Chunk.SequenceIndex)
	}
}

func TestSearch_PrefixProperty(t *testing.T) {
	ix := NewVectorIndex()
	var entries []IndexEntry
	for i := 0; i < 8; i++ {
		entries = append(entries, entry("doc_a", i, []float64{float64(i), 1, 0.5}))
	}
	if err := ix.Rebuild(entries); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	query := []float64{3, 1, 0.5}
	for k := 1; k < 8; k++ {
		small, err := ix.Search(query, k)
		if err != nil {
			t.Fatalf("Search(k=%d) error = %v", k, err)
		}
		large, err := ix.Search(query, k+1)
		if err != nil {
			t.Fatalf("Search(k=%d) error = %v", k+1, err)
		}
		for i := range small {
			if small[i].Chunk.ID != large[i].Chunk.ID {
				t.Errorf("k=%d: result %d differs between k and k+1", k, i)
			}
		}
	}
}

func TestSearch_TieBreak(t *testing.T) {
	// Identical vectors force score ties; order must fall back to
	// sequence index, then document ID.
	same := []float64{1, 1, 0}
	ix := NewVectorIndex()
	err := ix.Rebuild([]IndexEntry{
		entry("doc_b", 3, same),
		entry("doc_a", 3, same),
		entry("doc_a", 1, same),
	})
	if err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	results, err := ix.Search(same, 3)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	wantOrder := []struct {
		doc string
		seq int
	}{
		{"doc_a", 1},
		{"doc_a", 3},
		{"doc_b", 3},
	}
	for i, want := range wantOrder {
		got := results[i].Chunk
		if got.DocumentID != want.doc || got.SequenceIndex != want.seq {
			t.Errorf("result %d = %s#%d, want %s#%d", i, got.DocumentID, got.SequenceIndex, want.doc, want.seq)
		}
	}
}

func TestSearch_DimensionMismatch(t *testing.T) {
	ix := NewVectorIndex()
	var entries []IndexEntry
	for i := 0; i < 2; i++ {
		entries = append(entries, entry("doc_a", i, []float64{1, 2, 3, 4, 5, 6, 7, 8}))
	}
	if err := ix.Rebuild(entries); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	_, err := ix.Search([]float64{1, 2, 3, 4, 5}, 3)
	var dimErr *DimensionMismatchError
	if !errors.As(err, &dimErr) {
		t.Fatalf("error = %v, want *DimensionMismatchError", err)
	}
	if dimErr.IndexDim != 8 || dimErr.QueryDim != 5 {
		t.Errorf("mismatch dims = %d/%d, want 8/5", dimErr.IndexDim, dimErr.QueryDim)
	}
}

func TestRebuild_RejectsMixedDimensions(t *testing.T) {
	ix := NewVectorIndex()
	err := ix.Rebuild([]IndexEntry{
		entry("doc_a", 0, []float64{1, 0}),
		entry("doc_a", 1, []float64{1, 0, 0}),
	})
	var dimErr *DimensionMismatchError
	if !errors.As(err, &dimErr) {
		t.Fatalf("error = %v, want *DimensionMismatchError", err)
	}
	// A failed rebuild must leave the previous (empty) index intact
	if ix.Len() != 0 {
		t.Errorf("Len() = %d after failed rebuild, want 0", ix.Len())
	}
}

func TestSearch_KLargerThanIndex(t *testing.T) {
	ix := NewVectorIndex()
	if err := ix.Rebuild([]IndexEntry{entry("doc_a", 0, []float64{1, 0})}); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	results, err := ix.Search([]float64{1, 0}, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1 (k capped at index size)", len(results))
	}
}

func TestSearch_EmptyIndex(t *testing.T) {
	ix := NewVectorIndex()
	results, err := ix.Search([]float64{1, 0}, 5)
	if err != nil {
		t.Fatalf("Search() on empty index error = %v", err)
	}
	if len(results) != 0 {
		t.Errorf("got %d results from empty index, want 0", len(results))
	}
}

func TestRebuild_AtomicUnderConcurrentSearch(t *testing.T) {
	ix := NewVectorIndex()
	build := func(n int) []IndexEntry {
		var entries []IndexEntry
		for i := 0; i < n; i++ {
			entries = append(entries, entry("doc_a", i, []float64{float64(i + 1), 1}))
		}
		return entries
	}
	if err := ix.Rebuild(build(4)); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			results, err := ix.Search([]float64{1, 1}, 100)
			if err != nil {
				t.Errorf("Search() error = %v", err)
				return
			}
			// Readers must see a complete index: either the old 4 entries
			// or the new 8, never something in between.
			if len(results) != 4 && len(results) != 8 {
				t.Errorf("observed partial index with %d entries", len(results))
				return
			}
		}
	}()

	for i := 0; i < 50; i++ {
		if err := ix.Rebuild(build(8)); err != nil {
			t.Fatalf("Rebuild() error = %v", err)
		}
		if err := ix.Rebuild(build(4)); err != nil {
			t.Fatalf("Rebuild() error = %v", err)
		}
	}
	close(stop)
	wg.Wait()
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1.0},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0.0},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1.0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0.0},
		{"length mismatch", []float64{1, 0}, []float64{1, 0, 0}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("cosineSimilarity() = %f, want %f", got, tt.want)
			}
		})
	}
}

func BenchmarkSearch(b *testing.B) {
	ix := NewVectorIndex()
	var entries []IndexEntry
	for i := 0; i < 200; i++ {
		vec := make([]float64, 256)
		for j := range vec {
			vec[j] = float64((i*j)%17) / 17
		}
		entries = append(entries, entry("doc_bench", i, vec))
	}
	if err := ix.Rebuild(entries); err != nil {
		b.Fatalf("Rebuild() error = %v", err)
	}
	query := make([]float64, 256)
	for j := range query {
		query[j] = float64(j%13) / 13
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := ix.Search(query, 5); err != nil {
			b.Fatal(err)
		}
	}
}
