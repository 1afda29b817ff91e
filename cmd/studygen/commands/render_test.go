// ABOUTME: Tests for artifact rendering
// ABOUTME: Verifies terminal layout and JSON output per task kind
package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/harper/studygen/internal/models"
)

func TestRenderArtifact_Quiz(t *testing.T) {
	outputFormat = "auto"
	artifact := &models.Artifact{
		Task: models.TaskQuiz,
		Quiz: []models.QuizQuestion{
			{Question: "Which organelle produces ATP?", Options: []string{"Nucleus", "Mitochondria"}, Answer: "B", AnswerIndex: 1},
		},
		PassagesUsed: 3,
	}

	var buf bytes.Buffer
	if err := renderArtifact(&buf, artifact); err != nil {
		t.Fatalf("renderArtifact() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Q1: Which organelle produces ATP?", "A. Nucleus", "B. Mitochondria", "Answer key:", "Q1: B"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderArtifact_FlashcardsWithWarnings(t *testing.T) {
	outputFormat = "auto"
	artifact := &models.Artifact{
		Task:       models.TaskFlashcards,
		Flashcards: []models.Flashcard{{Question: "What is osmosis?", Answer: "Water diffusion."}},
		Warnings:   []string{"dropped 1 malformed flashcard(s)"},
	}

	var buf bytes.Buffer
	if err := renderArtifact(&buf, artifact); err != nil {
		t.Fatalf("renderArtifact() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Q: What is osmosis?") {
		t.Errorf("output missing card:\n%s", out)
	}
	if !strings.Contains(out, "Warning: dropped 1") {
		t.Errorf("output missing warning:\n%s", out)
	}
}

func TestRenderArtifact_JSON(t *testing.T) {
	outputFormat = "json"
	defer func() { outputFormat = "auto" }()

	artifact := &models.Artifact{
		Task:         models.TaskAnswer,
		Text:         "Mitosis divides somatic cells.",
		PassagesUsed: 2,
	}

	var buf bytes.Buffer
	if err := renderArtifact(&buf, artifact); err != nil {
		t.Fatalf("renderArtifact() error = %v", err)
	}

	var decoded models.Artifact
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Text != artifact.Text || decoded.PassagesUsed != 2 {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestRenderArtifact_Mindmap(t *testing.T) {
	outputFormat = "auto"
	artifact := &models.Artifact{
		Task: models.TaskMindmap,
		Mindmap: &models.MindmapGraph{
			Source: "flowchart TD\nA[Root] --> B[Leaf]",
			Nodes:  []string{"Root", "Leaf"},
			Edges:  [][2]string{{"Root", "Leaf"}},
		},
	}

	var buf bytes.Buffer
	if err := renderArtifact(&buf, artifact); err != nil {
		t.Fatalf("renderArtifact() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "flowchart TD") {
		t.Errorf("output = %q", buf.String())
	}
}
