// ABOUTME: Tolerant parser for flashcard output in Q:/A: format
// ABOUTME: Salvages well-formed cards and reports malformed ones as warnings
package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/harper/studygen/internal/models"
)

// cardDecoration matches numbering the model sometimes adds despite the
// prompt, like "**Card 3:**" or "Card 3:"
var cardDecoration = regexp.MustCompile(`(?i)\*{0,2}card\s+\d+:?\*{0,2}`)

// ParseFlashcards extracts Q:/A: pairs from raw model output. The parser is
// deliberately forgiving: cards may sit on one line or many, with or without
// decorations. Malformed fragments are dropped, not fatal.
func ParseFlashcards(raw string) ([]models.Flashcard, []string) {
	var cards []models.Flashcard
	var warnings []string

	cleaned := cardDecoration.ReplaceAllString(raw, "")
	segments := strings.Split(cleaned, "Q:")
	dropped := 0

	for _, segment := range segments[1:] {
		question, answer, found := strings.Cut(segment, "A:")
		if !found {
			dropped++
			continue
		}
		question = trimCardText(question)
		answer = trimCardText(answer)
		if question == "" || answer == "" {
			dropped++
			continue
		}
		cards = append(cards, models.Flashcard{Question: question, Answer: answer})
	}

	if dropped > 0 {
		warnings = append(warnings, fmt.Sprintf("dropped %d malformed flashcard(s)", dropped))
	}
	if len(cards) == 0 {
		warnings = append(warnings, "no flashcards could be parsed from model output")
	}
	return cards, warnings
}

func trimCardText(s string) string {
	return strings.Trim(strings.TrimSpace(s), "*_ \t")
}
