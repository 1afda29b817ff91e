// ABOUTME: EmbeddingVector and retrieval result types for semantic search
// ABOUTME: Every vector is tagged with the model that produced it for staleness checks
package models

// EmbeddingVector is the embedding of one chunk (or one query). The Model and
// Dimension tags allow stale vectors to be detected when the embedding model
// configuration changes; stale vectors are discarded wholesale, never mixed.
type EmbeddingVector struct {
	ChunkID   string    `json:"chunk_id"`
	Values    []float64 `json:"values"`
	Dimension int       `json:"dimension"`
	Model     string    `json:"model"`
}

// ScoredChunk pairs a retrieved chunk with its similarity score
type ScoredChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}

// RetrievalResult is an ordered sequence of scored chunks, highest
// similarity first, length at most the requested k
type RetrievalResult []ScoredChunk
