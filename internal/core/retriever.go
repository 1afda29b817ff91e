// ABOUTME: Retriever embeds a query and finds the most relevant chunks
// ABOUTME: Distinguishes an empty library from a query with no good matches
package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/studygen/internal/models"
	"github.com/harper/studygen/internal/storage"
)

// ErrEmptyIndex is returned when retrieval runs against a library with no
// indexed documents. Callers surface this as "add documents first" rather
// than answering from nothing.
var ErrEmptyIndex = errors.New("no documents in the library")

// Retriever answers similarity queries over the library's vector index
type Retriever struct {
	index    *storage.VectorIndex
	embedder Embedder
}

// NewRetriever creates a Retriever over the given index
func NewRetriever(index *storage.VectorIndex, embedder Embedder) *Retriever {
	return &Retriever{index: index, embedder: embedder}
}

// Retrieve embeds the query and returns the top-k most similar chunks,
// highest score first.
func (r *Retriever) Retrieve(ctx context.Context, query string, k int) (models.RetrievalResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query is empty")
	}
	if r.index.Len() == 0 {
		return nil, ErrEmptyIndex
	}

	vectors, err := r.embedder.EmbedBatch(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one query", len(vectors))
	}

	return r.index.Search(vectors[0].Values, k)
}
