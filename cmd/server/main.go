// ABOUTME: Main entry point for the study content MCP server with stdio transport
// ABOUTME: Wires config, OpenAI client, library, and snapshot persistence together
package main

import (
	"context"
	"log"

	"github.com/harper/studygen/internal/config"
	"github.com/harper/studygen/internal/core"
	"github.com/harper/studygen/internal/llm"
	"github.com/harper/studygen/internal/mcp"
	"github.com/harper/studygen/internal/storage/sqlite"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	openai "github.com/sashabaranov/go-openai"
)

func main() {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	if cfg.OpenAIKey == "" {
		log.Fatal("OPENAI_API_KEY not set - the server cannot embed or generate without it")
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
		log.Fatalf("Failed to initialize OpenAI client: %v", err)
	}

	engine := core.NewChunkEngine(core.ChunkConfig{
		TargetSize: cfg.ChunkTargetSize,
		Overlap:    cfg.ChunkOverlap,
	})
	library := core.NewLibrary(engine, client)
	retriever := core.NewRetriever(library.Index(), client)

	// Open the snapshot store and restore any persisted library
	dbPath := cfg.SnapshotPath
	if dbPath == "" {
		dbPath = sqlite.DefaultDBPath()
	}
	db, err := sqlite.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open snapshot database: %v", err)
	}
	defer func() { _ = db.Close() }()
	store := sqlite.NewSnapshotStore(db)

	snap, err := store.Load(client.Model())
	if err != nil {
		log.Fatalf("Failed to load library snapshot: %v", err)
	}
	if len(snap.Documents) > 0 {
		if snap.Stale {
			log.Printf("Embedding model changed; re-embedding %d document(s)", len(snap.Documents))
		}
		if err := library.Restore(context.Background(), snap.Documents, snap.Vectors); err != nil {
			log.Fatalf("Failed to restore library: %v", err)
		}
		log.Printf("Restored %d document(s) from %s", library.DocumentCount(), dbPath)
	}

	server := mcpserver.NewMCPServer(
		"Study Content Generator",
		"0.1.0",
	)

	opts := core.GenerateOptions{
		TopK:       cfg.TopK,
		QuizFormat: cfg.QuizFormat,
	}
	mcp.RegisterTools(server, library, retriever, client, opts, store)

	log.Println("Study content MCP server starting on stdio...")
	if err := mcpserver.ServeStdio(server); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
