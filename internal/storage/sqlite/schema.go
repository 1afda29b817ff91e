// ABOUTME: SQLite schema for the persisted study library snapshot
// ABOUTME: Documents, their chunks, and cached embedding vectors
package sqlite

// Schema contains all SQL statements for database initialization
const Schema = `
-- Uploaded source documents
CREATE TABLE IF NOT EXISTS documents (
    id TEXT PRIMARY KEY,
    display_name TEXT NOT NULL UNIQUE,
    source_format TEXT NOT NULL,
    raw_text TEXT NOT NULL,
    uploaded_at DATETIME NOT NULL
);

-- Chunks derived from documents, ordered by sequence within each document
CREATE TABLE IF NOT EXISTS chunks (
    id TEXT PRIMARY KEY,
    document_id TEXT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
    document_name TEXT NOT NULL,
    sequence_index INTEGER NOT NULL,
    text TEXT NOT NULL,
    char_offset_start INTEGER NOT NULL,
    char_offset_end INTEGER NOT NULL
);

-- Cached embedding vectors, tagged with the model that produced them
CREATE TABLE IF NOT EXISTS embeddings (
    chunk_id TEXT PRIMARY KEY REFERENCES chunks(id) ON DELETE CASCADE,
    model TEXT NOT NULL,
    dimension INTEGER NOT NULL,
    vector BLOB NOT NULL
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_chunks_document ON chunks(document_id);
CREATE INDEX IF NOT EXISTS idx_chunks_sequence ON chunks(document_id, sequence_index);
CREATE INDEX IF NOT EXISTS idx_embeddings_model ON embeddings(model);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
