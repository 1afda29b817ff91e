// ABOUTME: Shared wiring for CLI commands: config, client, library, snapshot store
// ABOUTME: Restores persisted state so every invocation sees the same library
package commands

import (
	"context"
	"fmt"

	"github.com/harper/studygen/internal/config"
	"github.com/harper/studygen/internal/core"
	"github.com/harper/studygen/internal/llm"
	"github.com/harper/studygen/internal/storage/sqlite"
	"github.com/joho/godotenv"
	openai "github.com/sashabaranov/go-openai"
)

// engine bundles everything a command needs to operate on the library
type engine struct {
	cfg       *config.Config
	client    *llm.OpenAIClient
	library   *core.Library
	retriever *core.Retriever
	store     *sqlite.SnapshotStore
	db        *sqlite.DB
}

// newEngine wires the pipeline and restores the persisted library snapshot
func newEngine(ctx context.Context) (*engine, error) {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if cfg.OpenAIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}

	client, err := llm.NewOpenAIClient(&llm.ClientConfig{
		APIKey:         cfg.OpenAIKey,
		ChatModel:      cfg.ChatModel,
		EmbeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		Temperature:    cfg.Temperature,
		MaxTokens:      cfg.MaxTokens,
		MaxBatchSize:   cfg.MaxBatchSize,
		MaxRetries:     cfg.MaxRetries,
		RetryDelay:     cfg.RetryDelay,
		Timeout:        cfg.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing OpenAI client: %w", err)
	}

	chunkEngine := core.NewChunkEngine(core.ChunkConfig{
		TargetSize: cfg.ChunkTargetSize,
		Overlap:    cfg.ChunkOverlap,
	})
	library := core.NewLibrary(chunkEngine, client)

	dbPath := cfg.SnapshotPath
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot database: %w", err)
	}

	store := sqlite.NewSnapshotStore(db)
	snap, err := store.Load(client.Model())
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("loading library snapshot: %w", err)
	}
	if len(snap.Documents) > 0 {
		if err := library.Restore(ctx, snap.Documents, snap.Vectors); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("restoring library: %w", err)
		}
	}

	return &engine{
		cfg:       cfg,
		client:    client,
		library:   library,
		retriever: core.NewRetriever(library.Index(), client),
		store:     store,
		db:        db,
	}, nil
}

// save persists the current library state
func (e *engine) save() error {
	return e.store.Save(e.library.Documents(), e.library.Chunks(), e.library.Vectors())
}

// close releases the snapshot database
func (e *engine) close() {
	_ = e.db.Close()
}

// generateOptions builds orchestrator options from config
func (e *engine) generateOptions() core.GenerateOptions {
	return core.GenerateOptions{
		TopK:       e.cfg.TopK,
		QuizFormat: e.cfg.QuizFormat,
	}
}
