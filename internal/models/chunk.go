// ABOUTME: Chunk is a bounded passage of a document sized for embedding
// ABOUTME: Carries source attribution (document, sequence, rune offsets)
package models

// Chunk is a derived passage of a document. Chunks are regenerated whenever
// the parent document or the chunking configuration changes; they are never
// edited in place.
type Chunk struct {
	ID              string `json:"chunk_id"`
	DocumentID      string `json:"document_id"`
	DocumentName    string `json:"document_name"`
	SequenceIndex   int    `json:"sequence_index"`
	Text            string `json:"text"`
	CharOffsetStart int    `json:"char_offset_start"`
	CharOffsetEnd   int    `json:"char_offset_end"`
}
