// ABOUTME: Library holds the session's documents and keeps the vector index current
// ABOUTME: Rebuilds chunk and embedding state atomically on every mutation
package core

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/harper/studygen/internal/models"
	"github.com/harper/studygen/internal/storage"
)

// ErrDocumentNotFound is returned when removing a document that is not in the library
var ErrDocumentNotFound = errors.New("document not found")

// Embedder produces embedding vectors for a batch of texts, order-preserving.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([]models.EmbeddingVector, error)
	Model() string
}

// Library is the mutable collection of study documents. Every mutation
// re-derives chunks, embeds whatever is not already cached, and swaps in a
// freshly built vector index. A failed mutation leaves the previous state
// fully intact.
type Library struct {
	mu       sync.Mutex
	docs     map[string]models.Document
	chunks   []models.Chunk
	cache    map[string]models.EmbeddingVector
	index    *storage.VectorIndex
	engine   *ChunkEngine
	embedder Embedder
}

// NewLibrary creates an empty library
func NewLibrary(engine *ChunkEngine, embedder Embedder) *Library {
	return &Library{
		docs:     make(map[string]models.Document),
		cache:    make(map[string]models.EmbeddingVector),
		index:    storage.NewVectorIndex(),
		engine:   engine,
		embedder: embedder,
	}
}

// AddDocument ingests a document. A document with the same display name
// replaces the existing one wholesale.
func (l *Library) AddDocument(ctx context.Context, doc *models.Document) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	next := l.cloneDocsLocked()
	next[doc.DisplayName] = *doc
	return l.applyLocked(ctx, next, l.cache)
}

// RemoveDocument removes a document by display name and rebuilds the index
func (l *Library) RemoveDocument(ctx context.Context, displayName string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.docs[displayName]; !ok {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, displayName)
	}
	next := l.cloneDocsLocked()
	delete(next, displayName)
	return l.applyLocked(ctx, next, l.cache)
}

// Restore replaces the library contents from persisted state. Vectors whose
// model matches the current embedder are reused; everything else is re-embedded.
func (l *Library) Restore(ctx context.Context, docs []models.Document, vectors map[string]models.EmbeddingVector) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	reusable := make(map[string]models.EmbeddingVector, len(vectors))
	model := l.embedder.Model()
	for id, vec := range vectors {
		if vec.Model == model {
			reusable[id] = vec
		}
	}

	next := make(map[string]models.Document, len(docs))
	for _, doc := range docs {
		next[doc.DisplayName] = doc
	}
	return l.applyLocked(ctx, next, reusable)
}

// applyLocked derives the full library state for the candidate document set
// and commits it only if every step succeeds. Chunk IDs are deterministic per
// document, so vectors in the reusable cache are kept; only new chunks hit
// the embedding service. Nothing on the receiver changes until commit.
func (l *Library) applyLocked(ctx context.Context, docs map[string]models.Document, reusable map[string]models.EmbeddingVector) error {
	names := make([]string, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}
	sort.Strings(names)

	var chunks []models.Chunk
	for _, name := range names {
		doc := docs[name]
		docChunks, err := l.engine.ChunkDocument(&doc)
		if err != nil {
			return fmt.Errorf("failed to chunk %s: %w", name, err)
		}
		chunks = append(chunks, docChunks...)
	}

	model := l.embedder.Model()
	var missingIDs []string
	var missingTexts []string
	for _, chunk := range chunks {
		if vec, ok := reusable[chunk.ID]; ok && vec.Model == model {
			continue
		}
		missingIDs = append(missingIDs, chunk.ID)
		missingTexts = append(missingTexts, chunk.Text)
	}

	embedded, err := l.embedder.EmbedBatch(ctx, missingTexts)
	if err != nil {
		return fmt.Errorf("failed to embed %d chunks: %w", len(missingTexts), err)
	}
	if len(embedded) != len(missingTexts) {
		return fmt.Errorf("embedder returned %d vectors for %d texts", len(embedded), len(missingTexts))
	}

	// New cache holds exactly the current chunk set; stale entries fall away
	cache := make(map[string]models.EmbeddingVector, len(chunks))
	for i, id := range missingIDs {
		vec := embedded[i]
		vec.ChunkID = id
		cache[id] = vec
	}
	entries := make([]storage.IndexEntry, 0, len(chunks))
	for _, chunk := range chunks {
		vec, ok := cache[chunk.ID]
		if !ok {
			vec = reusable[chunk.ID]
			cache[chunk.ID] = vec
		}
		entries = append(entries, storage.IndexEntry{Chunk: chunk, Vector: vec})
	}

	if err := l.index.Rebuild(entries); err != nil {
		return fmt.Errorf("failed to rebuild index: %w", err)
	}

	l.docs = docs
	l.chunks = chunks
	l.cache = cache
	return nil
}

func (l *Library) cloneDocsLocked() map[string]models.Document {
	next := make(map[string]models.Document, len(l.docs)+1)
	for name, doc := range l.docs {
		next[name] = doc
	}
	return next
}

// Documents returns all documents sorted by display name
func (l *Library) Documents() []models.Document {
	l.mu.Lock()
	defer l.mu.Unlock()

	docs := make([]models.Document, 0, len(l.docs))
	for _, doc := range l.docs {
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].DisplayName < docs[j].DisplayName })
	return docs
}

// Chunks returns the current chunk set in document-name, sequence order
func (l *Library) Chunks() []models.Chunk {
	l.mu.Lock()
	defer l.mu.Unlock()

	chunks := make([]models.Chunk, len(l.chunks))
	copy(chunks, l.chunks)
	return chunks
}

// Vectors returns the current embedding cache keyed by chunk ID
func (l *Library) Vectors() map[string]models.EmbeddingVector {
	l.mu.Lock()
	defer l.mu.Unlock()

	vectors := make(map[string]models.EmbeddingVector, len(l.cache))
	for id, vec := range l.cache {
		vectors[id] = vec
	}
	return vectors
}

// DocumentCount returns the number of documents in the library
func (l *Library) DocumentCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.docs)
}

// Index returns the searchable vector index
func (l *Library) Index() *storage.VectorIndex {
	return l.index
}
