// ABOUTME: Orchestrator runs the retrieve-then-generate pipeline for study tasks
// ABOUTME: Dispatches raw model output to per-task parsers with tolerant degradation
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/studygen/internal/models"
)

// Quiz output formats
const (
	QuizFormatMarker = "marker"
	QuizFormatJSON   = "json"
)

// Completer produces one text completion for a grounded prompt.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GenerateOptions tunes a generation request
type GenerateOptions struct {
	TopK              int
	QuizFormat        string
	QuizQuestionCount int
	FlashcardCount    int
}

// DefaultGenerateOptions returns the standard generation settings
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		TopK:              5,
		QuizFormat:        QuizFormatMarker,
		QuizQuestionCount: 5,
		FlashcardCount:    10,
	}
}

// Orchestrator coordinates retrieval and generation into finished artifacts
type Orchestrator struct {
	retriever *Retriever
	completer Completer
	opts      GenerateOptions
}

// NewOrchestrator creates an Orchestrator with the given options.
// Zero-valued options fall back to defaults.
func NewOrchestrator(retriever *Retriever, completer Completer, opts GenerateOptions) *Orchestrator {
	def := DefaultGenerateOptions()
	if opts.TopK <= 0 {
		opts.TopK = def.TopK
	}
	if opts.QuizFormat != QuizFormatJSON {
		opts.QuizFormat = QuizFormatMarker
	}
	if opts.QuizQuestionCount <= 0 {
		opts.QuizQuestionCount = def.QuizQuestionCount
	}
	if opts.FlashcardCount <= 0 {
		opts.FlashcardCount = def.FlashcardCount
	}
	return &Orchestrator{retriever: retriever, completer: completer, opts: opts}
}

// Generate runs one study task end to end: retrieve relevant passages, build
// the task prompt, call the model, and parse the raw output. Parse problems
// degrade the artifact and are reported in Warnings; only retrieval and
// completion failures fail the request.
func (o *Orchestrator) Generate(ctx context.Context, task models.TaskKind, query string) (*models.Artifact, error) {
	results, err := o.retriever.Retrieve(ctx, query, o.opts.TopK)
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(task, query, results, o.opts)
	raw, err := o.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generation failed: %w", err)
	}

	artifact := &models.Artifact{
		Task:         task,
		PassagesUsed: len(results),
	}

	switch task {
	case models.TaskAnswer, models.TaskNotes:
		artifact.Text = strings.TrimSpace(raw) + fmt.Sprintf("\n\n(Based on %d document sections)", len(results))
	case models.TaskFlashcards:
		artifact.Flashcards, artifact.Warnings = ParseFlashcards(raw)
	case models.TaskQuiz:
		if o.opts.QuizFormat == QuizFormatJSON {
			artifact.Quiz, artifact.Warnings = ParseQuizJSON(raw)
		} else {
			artifact.Quiz, artifact.Warnings = ParseQuizMarker(raw)
		}
	case models.TaskMindmap:
		artifact.Mindmap = ParseMindmap(raw)
	default:
		return nil, fmt.Errorf("unknown task kind: %s", task)
	}

	return artifact, nil
}
