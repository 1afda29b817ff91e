// ABOUTME: CLI command to answer questions from the study library
// ABOUTME: Runs the retrieve-then-generate pipeline for the answer task
package commands

import (
	"strings"

	"github.com/harper/studygen/internal/core"
	"github.com/harper/studygen/internal/models"
	"github.com/spf13/cobra"
)

var askTopK int

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer a question from your study documents",
		Long: `Answer a question using only the ingested study documents.

The answer cites the document sections it is based on. If the documents
do not cover the question, the answer says so instead of guessing.

Examples:
  studygen ask "What is the difference between mitosis and meiosis?"
  studygen ask --top-k 8 "Explain the Krebs cycle"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().IntVar(&askTopK, "top-k", 0, "How many document sections to retrieve (default from config)")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	eng, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer eng.close()

	question := strings.Join(args, " ")
	if err := validatePositiveIntOrZero(askTopK, "top-k"); err != nil {
		return err
	}

	opts := eng.generateOptions()
	if askTopK > 0 {
		opts.TopK = askTopK
	}

	orch := core.NewOrchestrator(eng.retriever, eng.client, opts)
	artifact, err := orch.Generate(ctx, models.TaskAnswer, question)
	if err != nil {
		return err
	}

	return renderArtifact(cmd.OutOrStdout(), artifact)
}
