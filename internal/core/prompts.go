// ABOUTME: Prompt templates for grounded study-content generation
// ABOUTME: Every prompt embeds retrieved passages tagged with source and section
package core

import (
	"fmt"
	"strings"

	"github.com/harper/studygen/internal/models"
)

const answerTemplate = `You are a study assistant. Answer the question using ONLY the source material below. If the sources do not contain the answer, say so explicitly. Cite the source tags you used.

%s

Question: %s

Answer:`

const notesTemplate = `You are a study assistant. Create structured study notes on the topic below using ONLY the source material provided. Use this structure:

## Overview
## Key Concepts
## Important Details
## Summary

Keep every point grounded in the sources.

%s

Topic: %s

Study notes:`

const flashcardsTemplate = `You are a study assistant. Create %d flashcards for the topic below using ONLY the source material provided. Format each card exactly as:

Q: <question>
A: <answer>

One blank line between cards. No numbering, no extra commentary.

%s

Topic: %s

Flashcards:`

const quizMarkerTemplate = `You are a study assistant. Create %d multiple-choice questions for the topic below using ONLY the source material provided. Format each question exactly as:

Q1: <question text>
A. <option>
B. <option>
C. <option>
D. <option>
Answer: <letter>

One blank line between questions. No extra commentary.

%s

Topic: %s

Quiz:`

const quizJSONTemplate = `You are a study assistant. Create %d multiple-choice questions for the topic below using ONLY the source material provided. Respond with a JSON array only, no prose. Each element must have the fields "question" (string), "options" (array of strings), and "answer_index" (zero-based integer).

%s

Topic: %s

JSON:`

const mindmapTemplate = `You are a study assistant. Create a Mermaid mind map for the topic below using ONLY the source material provided. Respond with Mermaid "flowchart TD" syntax only, one edge per line in the form:

    A[Label] --> B[Other label]

No code fences, no commentary.

%s

Topic: %s

Mermaid:`

// formatPassages renders retrieved chunks as tagged source blocks. Tags name
// the document and section so generated citations stay traceable.
func formatPassages(results models.RetrievalResult) string {
	var sb strings.Builder
	sb.WriteString("Source material:\n\n")
	for i, scored := range results {
		fmt.Fprintf(&sb, "[Source %d: %s (section %d)]\n%s\n\n",
			i+1, scored.Chunk.DocumentName, scored.Chunk.SequenceIndex+1, scored.Chunk.Text)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// buildPrompt assembles the task-specific prompt around the retrieved passages
func buildPrompt(task models.TaskKind, query string, results models.RetrievalResult, opts GenerateOptions) string {
	passages := formatPassages(results)

	switch task {
	case models.TaskAnswer:
		return fmt.Sprintf(answerTemplate, passages, query)
	case models.TaskNotes:
		return fmt.Sprintf(notesTemplate, passages, query)
	case models.TaskFlashcards:
		return fmt.Sprintf(flashcardsTemplate, opts.FlashcardCount, passages, query)
	case models.TaskQuiz:
		if opts.QuizFormat == QuizFormatJSON {
			return fmt.Sprintf(quizJSONTemplate, opts.QuizQuestionCount, passages, query)
		}
		return fmt.Sprintf(quizMarkerTemplate, opts.QuizQuestionCount, passages, query)
	case models.TaskMindmap:
		return fmt.Sprintf(mindmapTemplate, passages, query)
	}
	return fmt.Sprintf(answerTemplate, passages, query)
}
