// ABOUTME: MCP tool definitions and registration for the study content server
// ABOUTME: Defines JSON schemas for document management and generation tools
package mcp

import (
	"github.com/harper/studygen/internal/core"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, library *core.Library, retriever *core.Retriever, completer core.Completer, opts core.GenerateOptions, snapshots SnapshotSaver) *Handlers {
	handlers := &Handlers{
		library:   library,
		retriever: retriever,
		completer: completer,
		opts:      opts,
		snapshots: snapshots,
	}

	// 1. ingest_document - Load a study document into the library
	server.AddTool(mcp.Tool{
		Name:        "ingest_document",
		Description: "Load a study document (PDF, DOCX, or plain text) into the library. A document with the same filename replaces the previous version.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Filesystem path to the document to ingest",
				},
			},
			Required: []string{"path"},
		},
	}, handlers.IngestDocument)

	// 2. list_documents - List the documents currently in the library
	server.AddTool(mcp.Tool{
		Name:        "list_documents",
		Description: "List all documents currently in the study library with their formats and sizes.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListDocuments)

	// 3. remove_document - Remove a document from the library
	server.AddTool(mcp.Tool{
		Name:        "remove_document",
		Description: "Remove a document from the study library by filename.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"name": map[string]interface{}{
					"type":        "string",
					"description": "Display name of the document to remove",
				},
			},
			Required: []string{"name"},
		},
	}, handlers.RemoveDocument)

	// 4. ask_question - Answer a question grounded in the library
	server.AddTool(mcp.Tool{
		Name:        "ask_question",
		Description: "Answer a question using only the ingested study documents. Cites the document sections the answer is based on.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "The question to answer from the study material",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "How many document sections to retrieve (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskQuestion)

	// 5. generate_content - Generate study artifacts from the library
	server.AddTool(mcp.Tool{
		Name:        "generate_content",
		Description: "Generate study content (notes, flashcards, quiz, or mindmap) for a topic, grounded in the ingested documents.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"task": map[string]interface{}{
					"type":        "string",
					"description": "Kind of content to generate: answer, notes, flashcards, quiz, or mindmap",
					"enum":        []string{"answer", "notes", "flashcards", "quiz", "mindmap"},
				},
				"topic": map[string]interface{}{
					"type":        "string",
					"description": "Topic or question to generate content for",
				},
				"quiz_format": map[string]interface{}{
					"type":        "string",
					"description": "Quiz output format: marker or json (quiz task only)",
					"enum":        []string{core.QuizFormatMarker, core.QuizFormatJSON},
				},
				"count": map[string]interface{}{
					"type":        "number",
					"description": "How many questions or flashcards to generate",
				},
				"top_k": map[string]interface{}{
					"type":        "number",
					"description": "How many document sections to retrieve (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"task", "topic"},
		},
	}, handlers.GenerateContent)

	return handlers
}
