// ABOUTME: CLI command to generate study artifacts for a topic
// ABOUTME: Supports notes, flashcards, quizzes, and mind maps
package commands

import (
	"fmt"
	"strings"

	"github.com/harper/studygen/internal/core"
	"github.com/harper/studygen/internal/models"
	"github.com/spf13/cobra"
)

var (
	generateTopK       int
	generateCount      int
	generateQuizFormat string
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <task> <topic>",
		Short: "Generate study content for a topic",
		Long: `Generate study content for a topic, grounded in the ingested documents.

Tasks:
  answer      Answer the topic as a question
  notes       Structured study notes
  flashcards  Q/A flashcards for active recall
  quiz        Multiple-choice quiz with answer key
  mindmap     Mermaid mind map of the topic

Examples:
  studygen generate notes "photosynthesis"
  studygen generate flashcards "cell organelles" --count 15
  studygen generate quiz "the French Revolution" --quiz-format json
  studygen generate mindmap "plate tectonics"`,
		Args: cobra.MinimumNArgs(2),
		RunE: runGenerate,
	}

	cmd.Flags().IntVar(&generateTopK, "top-k", 0, "How many document sections to retrieve (default from config)")
	cmd.Flags().IntVar(&generateCount, "count", 0, "How many questions or flashcards to generate")
	cmd.Flags().StringVar(&generateQuizFormat, "quiz-format", "", "Quiz output format: marker or json (default from config)")

	return cmd
}

func runGenerate(cmd *cobra.Command, args []string) error {
	task, ok := models.ParseTaskKind(args[0])
	if !ok {
		return fmt.Errorf("unknown task %q: use answer, notes, flashcards, quiz, or mindmap", args[0])
	}
	topic := strings.Join(args[1:], " ")

	if err := validatePositiveIntOrZero(generateTopK, "top-k"); err != nil {
		return err
	}
	if err := validatePositiveIntOrZero(generateCount, "count"); err != nil {
		return err
	}
	if generateQuizFormat != "" && generateQuizFormat != core.QuizFormatMarker && generateQuizFormat != core.QuizFormatJSON {
		return fmt.Errorf("quiz-format must be %q or %q, got %q", core.QuizFormatMarker, core.QuizFormatJSON, generateQuizFormat)
	}

	ctx := cmd.Context()
	eng, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.close()

	opts := eng.generateOptions()
	if generateTopK > 0 {
		opts.TopK = generateTopK
	}
	if generateCount > 0 {
		opts.QuizQuestionCount = generateCount
		opts.FlashcardCount = generateCount
	}
	if generateQuizFormat != "" {
		opts.QuizFormat = generateQuizFormat
	}

	orch := core.NewOrchestrator(eng.retriever, eng.client, opts)
	artifact, err := orch.Generate(ctx, task, topic)
	if err != nil {
		return err
	}

	return renderArtifact(cmd.OutOrStdout(), artifact)
}
