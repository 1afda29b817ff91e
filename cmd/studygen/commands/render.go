// ABOUTME: Artifact rendering for terminal and JSON output
// ABOUTME: Formats each task's result the way a student would read it
package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/harper/studygen/internal/models"
)

// renderArtifact writes a generated artifact in the selected output format
func renderArtifact(w io.Writer, artifact *models.Artifact) error {
	if outputFormat == "json" {
		data, err := json.MarshalIndent(artifact, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	switch artifact.Task {
	case models.TaskAnswer, models.TaskNotes:
		fmt.Fprintln(w, artifact.Text)
	case models.TaskFlashcards:
		renderFlashcards(w, artifact.Flashcards)
	case models.TaskQuiz:
		renderQuiz(w, artifact.Quiz)
	case models.TaskMindmap:
		if artifact.Mindmap != nil {
			fmt.Fprintln(w, artifact.Mindmap.Source)
		}
	}

	for _, warning := range artifact.Warnings {
		fmt.Fprintf(w, "\nWarning: %s\n", warning)
	}
	return nil
}

func renderFlashcards(w io.Writer, cards []models.Flashcard) {
	for i, card := range cards {
		fmt.Fprintf(w, "Card %d\n  Q: %s\n  A: %s\n\n", i+1, card.Question, card.Answer)
	}
	if len(cards) > 0 {
		fmt.Fprintf(w, "%d flashcard(s)\n", len(cards))
	}
}

func renderQuiz(w io.Writer, quiz []models.QuizQuestion) {
	for i, q := range quiz {
		fmt.Fprintf(w, "Q%d: %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(w, "  %c. %s\n", 'A'+j, opt)
		}
		fmt.Fprintln(w)
	}

	if len(quiz) > 0 {
		fmt.Fprintln(w, "Answer key:")
		for i, q := range quiz {
			fmt.Fprintf(w, "  Q%d: %s\n", i+1, q.Answer)
		}
	}
}
