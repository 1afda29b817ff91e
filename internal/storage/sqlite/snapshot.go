// ABOUTME: Whole-library snapshot persistence for documents, chunks, and vectors
// ABOUTME: Detects embedding-model drift on load so callers can re-embed everything
package sqlite

import (
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/harper/studygen/internal/models"
)

// Snapshot is the persisted state of a study library. Vectors is keyed by
// chunk ID. Stale is true when the stored vectors were produced by a
// different embedding model than the one currently configured; stale
// snapshots carry no vectors, forcing a full re-embed on restore.
type Snapshot struct {
	Documents []models.Document
	Chunks    []models.Chunk
	Vectors   map[string]models.EmbeddingVector
	Stale     bool
}

// SnapshotStore persists whole-library snapshots
type SnapshotStore struct {
	db *DB
}

// NewSnapshotStore creates a new SnapshotStore
func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// Save replaces the persisted snapshot with the given library state. The
// write is transactional: a failed save leaves the previous snapshot intact.
func (s *SnapshotStore) Save(docs []models.Document, chunks []models.Chunk, vectors map[string]models.EmbeddingVector) error {
	tx, err := s.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"embeddings", "chunks", "documents"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, doc := range docs {
		_, err := tx.Exec(`
			INSERT INTO documents (id, display_name, source_format, raw_text, uploaded_at)
			VALUES (?, ?, ?, ?, ?)
		`, doc.ID, doc.DisplayName, string(doc.SourceFormat), doc.RawText, doc.UploadedAt)
		if err != nil {
			return fmt.Errorf("failed to save document %s: %w", doc.DisplayName, err)
		}
	}

	for _, chunk := range chunks {
		_, err := tx.Exec(`
			INSERT INTO chunks (id, document_id, document_name, sequence_index, text, char_offset_start, char_offset_end)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, chunk.ID, chunk.DocumentID, chunk.DocumentName, chunk.SequenceIndex, chunk.Text, chunk.CharOffsetStart, chunk.CharOffsetEnd)
		if err != nil {
			return fmt.Errorf("failed to save chunk %s: %w", chunk.ID, err)
		}
	}

	for chunkID, vec := range vectors {
		_, err := tx.Exec(`
			INSERT INTO embeddings (chunk_id, model, dimension, vector)
			VALUES (?, ?, ?, ?)
		`, chunkID, vec.Model, vec.Dimension, vectorToBlob(vec.Values))
		if err != nil {
			return fmt.Errorf("failed to save embedding for chunk %s: %w", chunkID, err)
		}
	}

	return tx.Commit()
}

// Load reads the persisted snapshot. currentModel is the embedding model the
// caller will use; if any stored vector was produced by a different model the
// snapshot is marked stale and returned without vectors.
func (s *SnapshotStore) Load(currentModel string) (*Snapshot, error) {
	snap := &Snapshot{Vectors: make(map[string]models.EmbeddingVector)}

	docs, err := s.loadDocuments()
	if err != nil {
		return nil, err
	}
	snap.Documents = docs

	chunks, err := s.loadChunks()
	if err != nil {
		return nil, err
	}
	snap.Chunks = chunks

	vectors, stale, err := s.loadVectors(currentModel)
	if err != nil {
		return nil, err
	}
	snap.Stale = stale
	if !stale {
		snap.Vectors = vectors
	}

	return snap, nil
}

func (s *SnapshotStore) loadDocuments() ([]models.Document, error) {
	rows, err := s.db.Query(`
		SELECT id, display_name, source_format, raw_text, uploaded_at
		FROM documents
		ORDER BY display_name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var docs []models.Document
	for rows.Next() {
		var (
			doc    models.Document
			format string
		)
		if err := rows.Scan(&doc.ID, &doc.DisplayName, &format, &doc.RawText, &doc.UploadedAt); err != nil {
			return nil, err
		}
		doc.SourceFormat = models.SourceFormat(format)
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

func (s *SnapshotStore) loadChunks() ([]models.Chunk, error) {
	rows, err := s.db.Query(`
		SELECT id, document_id, document_name, sequence_index, text, char_offset_start, char_offset_end
		FROM chunks
		ORDER BY document_name ASC, sequence_index ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load chunks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var chunks []models.Chunk
	for rows.Next() {
		var chunk models.Chunk
		if err := rows.Scan(&chunk.ID, &chunk.DocumentID, &chunk.DocumentName, &chunk.SequenceIndex,
			&chunk.Text, &chunk.CharOffsetStart, &chunk.CharOffsetEnd); err != nil {
			return nil, err
		}
		chunks = append(chunks, chunk)
	}
	return chunks, rows.Err()
}

// loadVectors returns all stored vectors, or stale=true if any vector's
// model differs from currentModel. Staleness is all-or-nothing: mixed-model
// vectors are never partially reused.
func (s *SnapshotStore) loadVectors(currentModel string) (map[string]models.EmbeddingVector, bool, error) {
	rows, err := s.db.Query(`SELECT chunk_id, model, dimension, vector FROM embeddings`)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load embeddings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	vectors := make(map[string]models.EmbeddingVector)
	stale := false
	for rows.Next() {
		var (
			chunkID   string
			model     string
			dimension int
			blob      []byte
		)
		if err := rows.Scan(&chunkID, &model, &dimension, &blob); err != nil {
			return nil, false, err
		}
		if model != currentModel {
			stale = true
		}
		vectors[chunkID] = models.EmbeddingVector{
			ChunkID:   chunkID,
			Values:    blobToVector(blob),
			Dimension: dimension,
			Model:     model,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return vectors, stale, nil
}

// DocumentCount returns the number of persisted documents
func (s *SnapshotStore) DocumentCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM documents").Scan(&count)
	if err != nil && err != sql.ErrNoRows {
		return 0, err
	}
	return count, nil
}

// vectorToBlob converts a float64 slice to binary blob
func vectorToBlob(vector []float64) []byte {
	blob := make([]byte, len(vector)*8)
	for i, v := range vector {
		binary.LittleEndian.PutUint64(blob[i*8:], math.Float64bits(v))
	}
	return blob
}

// blobToVector converts a binary blob to float64 slice
func blobToVector(blob []byte) []float64 {
	count := len(blob) / 8
	vector := make([]float64, count)
	for i := 0; i < count; i++ {
		bits := binary.LittleEndian.Uint64(blob[i*8:])
		vector[i] = math.Float64frombits(bits)
	}
	return vector
}
