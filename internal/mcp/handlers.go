// ABOUTME: MCP tool handler implementations for the study content server
// ABOUTME: Wraps library mutations and generation requests with JSON results
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/harper/studygen/internal/core"
	"github.com/harper/studygen/internal/loader"
	"github.com/harper/studygen/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// SnapshotSaver persists the library state after mutations. May be nil when
// persistence is disabled.
type SnapshotSaver interface {
	Save(docs []models.Document, chunks []models.Chunk, vectors map[string]models.EmbeddingVector) error
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	library   *core.Library
	retriever *core.Retriever
	completer core.Completer
	opts      core.GenerateOptions
	snapshots SnapshotSaver
}

// IngestDocument handles the ingest_document tool
func (h *Handlers) IngestDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError("path argument is required and must be a string"), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read file: %v", err)), nil
	}

	doc, err := loader.Load(filepath.Base(path), data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load document: %v", err)), nil
	}

	if err := h.library.AddDocument(ctx, doc); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to ingest document: %v", err)), nil
	}
	h.saveSnapshot()

	chunkCount := 0
	for _, chunk := range h.library.Chunks() {
		if chunk.DocumentID == doc.ID {
			chunkCount++
		}
	}

	return jsonResult(map[string]interface{}{
		"document": doc.DisplayName,
		"format":   string(doc.SourceFormat),
		"chars":    doc.CharCount(),
		"chunks":   chunkCount,
	})
}

// ListDocuments handles the list_documents tool
func (h *Handlers) ListDocuments(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs := h.library.Documents()

	summaries := make([]map[string]interface{}, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, map[string]interface{}{
			"name":        doc.DisplayName,
			"format":      string(doc.SourceFormat),
			"chars":       doc.CharCount(),
			"uploaded_at": doc.UploadedAt,
		})
	}

	return jsonResult(map[string]interface{}{
		"count":     len(summaries),
		"documents": summaries,
	})
}

// RemoveDocument handles the remove_document tool
func (h *Handlers) RemoveDocument(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError("name argument is required and must be a string"), nil
	}

	if err := h.library.RemoveDocument(ctx, name); err != nil {
		if errors.Is(err, core.ErrDocumentNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no document named %q in the library", name)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to remove document: %v", err)), nil
	}
	h.saveSnapshot()

	return jsonResult(map[string]interface{}{
		"removed":   name,
		"remaining": h.library.DocumentCount(),
	})
}

// AskQuestion handles the ask_question tool
func (h *Handlers) AskQuestion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	opts := h.opts
	if topK := request.GetInt("top_k", 0); topK > 0 {
		opts.TopK = topK
	}

	artifact, err := core.NewOrchestrator(h.retriever, h.completer, opts).
		Generate(ctx, models.TaskAnswer, question)
	if err != nil {
		return generationError(err)
	}
	return jsonResult(artifact)
}

// GenerateContent handles the generate_content tool
func (h *Handlers) GenerateContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskStr, err := request.RequireString("task")
	if err != nil {
		return mcp.NewToolResultError("task argument is required and must be a string"), nil
	}
	task, ok := models.ParseTaskKind(taskStr)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown task %q: use answer, notes, flashcards, quiz, or mindmap", taskStr)), nil
	}

	topic, err := request.RequireString("topic")
	if err != nil {
		return mcp.NewToolResultError("topic argument is required and must be a string"), nil
	}

	opts := h.opts
	if format := request.GetString("quiz_format", ""); format != "" {
		opts.QuizFormat = format
	}
	if count := request.GetInt("count", 0); count > 0 {
		opts.QuizQuestionCount = count
		opts.FlashcardCount = count
	}
	if topK := request.GetInt("top_k", 0); topK > 0 {
		opts.TopK = topK
	}

	artifact, err := core.NewOrchestrator(h.retriever, h.completer, opts).
		Generate(ctx, task, topic)
	if err != nil {
		return generationError(err)
	}
	return jsonResult(artifact)
}

// saveSnapshot persists the current library state, logging failures instead
// of failing the request that triggered them
func (h *Handlers) saveSnapshot() {
	if h.snapshots == nil {
		return
	}
	if err := h.snapshots.Save(h.library.Documents(), h.library.Chunks(), h.library.Vectors()); err != nil {
		log.Printf("Warning: failed to save library snapshot: %v", err)
	}
}

func generationError(err error) (*mcp.CallToolResult, error) {
	if errors.Is(err, core.ErrEmptyIndex) {
		return mcp.NewToolResultError("the library is empty: ingest documents before asking questions"), nil
	}
	return mcp.NewToolResultError(fmt.Sprintf("generation failed: %v", err)), nil
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
