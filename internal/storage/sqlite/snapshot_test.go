// ABOUTME: Tests for snapshot persistence
// ABOUTME: Covers roundtrips, transactional replace, and model-drift staleness
package sqlite

import (
	"math"
	"testing"
	"time"

	"github.com/harper/studygen/internal/models"
)

func testSnapshotStore(t *testing.T) *SnapshotStore {
	t.Helper()
	db, err := OpenInMemory()
	if err != nil {
		t.Fatalf("OpenInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewSnapshotStore(db)
}

func sampleLibrary() ([]models.Document, []models.Chunk, map[string]models.EmbeddingVector) {
	docs := []models.Document{
		{
			ID:           "doc_1",
			DisplayName:  "biology.txt",
			SourceFormat: models.FormatText,
			RawText:      "cells divide by mitosis",
			UploadedAt:   time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		},
	}
	chunks := []models.Chunk{
		{ID: "doc_1_0", DocumentID: "doc_1", DocumentName: "biology.txt", SequenceIndex: 0, Text: "cells divide", CharOffsetStart: 0, CharOffsetEnd: 12},
		{ID: "doc_1_1", DocumentID: "doc_1", DocumentName: "biology.txt", SequenceIndex: 1, Text: "by mitosis", CharOffsetStart: 13, CharOffsetEnd: 23},
	}
	vectors := map[string]models.EmbeddingVector{
		"doc_1_0": {ChunkID: "doc_1_0", Values: []float64{0.1, -0.2, 0.3}, Dimension: 3, Model: "text-embedding-3-small"},
		"doc_1_1": {ChunkID: "doc_1_1", Values: []float64{0.4, 0.5, -0.6}, Dimension: 3, Model: "text-embedding-3-small"},
	}
	return docs, chunks, vectors
}

func TestSnapshot_SaveLoadRoundtrip(t *testing.T) {
	store := testSnapshotStore(t)
	docs, chunks, vectors := sampleLibrary()

	if err := store.Save(docs, chunks, vectors); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	snap, err := store.Load("text-embedding-3-small")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if snap.Stale {
		t.Error("snapshot should not be stale for matching model")
	}
	if len(snap.Documents) != 1 {
		t.Fatalf("got %d documents, want 1", len(snap.Documents))
	}
	if snap.Documents[0].DisplayName != "biology.txt" {
		t.Errorf("DisplayName = %q", snap.Documents[0].DisplayName)
	}
	if snap.Documents[0].SourceFormat != models.FormatText {
		t.Errorf("SourceFormat = %q", snap.Documents[0].SourceFormat)
	}
	if len(snap.Chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(snap.Chunks))
	}
	if snap.Chunks[0].SequenceIndex != 0 || snap.Chunks[1].SequenceIndex != 1 {
		t.Error("chunks should be ordered by sequence index")
	}
	if len(snap.Vectors) != 2 {
		t.Fatalf("got %d vectors, want 2", len(snap.Vectors))
	}
	vec := snap.Vectors["doc_1_0"]
	want := []float64{0.1, -0.2, 0.3}
	for i, v := range want {
		if math.Abs(vec.Values[i]-v) > 1e-12 {
			t.Errorf("vector[%d] = %v, want %v", i, vec.Values[i], v)
		}
	}
}

func TestSnapshot_StaleModel(t *testing.T) {
	store := testSnapshotStore(t)
	docs, chunks, vectors := sampleLibrary()

	if err := store.Save(docs, chunks, vectors); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	snap, err := store.Load("text-embedding-3-large")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !snap.Stale {
		t.Error("snapshot should be stale when embedding model changed")
	}
	if len(snap.Vectors) != 0 {
		t.Errorf("stale snapshot returned %d vectors, want 0", len(snap.Vectors))
	}
	// Documents and chunks survive a model change; only vectors are discarded
	if len(snap.Documents) != 1 || len(snap.Chunks) != 2 {
		t.Error("stale snapshot should still carry documents and chunks")
	}
}

func TestSnapshot_SaveReplacesPrevious(t *testing.T) {
	store := testSnapshotStore(t)
	docs, chunks, vectors := sampleLibrary()

	if err := store.Save(docs, chunks, vectors); err != nil {
		t.Fatalf("first Save() error = %v", err)
	}

	replacement := []models.Document{
		{
			ID:           "doc_2",
			DisplayName:  "chemistry.txt",
			SourceFormat: models.FormatText,
			RawText:      "atoms bond",
			UploadedAt:   time.Now().UTC(),
		},
	}
	if err := store.Save(replacement, nil, nil); err != nil {
		t.Fatalf("second Save() error = %v", err)
	}

	snap, err := store.Load("text-embedding-3-small")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(snap.Documents) != 1 || snap.Documents[0].DisplayName != "chemistry.txt" {
		t.Errorf("snapshot not replaced: %+v", snap.Documents)
	}
	if len(snap.Chunks) != 0 || len(snap.Vectors) != 0 {
		t.Error("old chunks and vectors should be gone after replace")
	}
}

func TestSnapshot_EmptyDatabase(t *testing.T) {
	store := testSnapshotStore(t)

	snap, err := store.Load("text-embedding-3-small")
	if err != nil {
		t.Fatalf("Load() on empty db error = %v", err)
	}
	if snap.Stale {
		t.Error("empty snapshot should not be stale")
	}
	if len(snap.Documents) != 0 || len(snap.Chunks) != 0 || len(snap.Vectors) != 0 {
		t.Error("empty database should load an empty snapshot")
	}

	count, err := store.DocumentCount()
	if err != nil {
		t.Fatalf("DocumentCount() error = %v", err)
	}
	if count != 0 {
		t.Errorf("DocumentCount() = %d, want 0", count)
	}
}

func TestVectorBlobRoundtrip(t *testing.T) {
	original := []float64{0.0, 1.0, -1.0, math.Pi, math.SmallestNonzeroFloat64, -math.MaxFloat64}
	got := blobToVector(vectorToBlob(original))
	if len(got) != len(original) {
		t.Fatalf("roundtrip length = %d, want %d", len(got), len(original))
	}
	for i := range original {
		if got[i] != original[i] {
			t.Errorf("roundtrip[%d] = %v, want %v", i, got[i], original[i])
		}
	}
}
