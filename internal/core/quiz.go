// ABOUTME: Parsers for multiple-choice quiz output in marker and JSON formats
// ABOUTME: Salvages valid questions, drops broken ones, and scores answer sheets
package core

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/harper/studygen/internal/models"
)

var (
	questionMarker = regexp.MustCompile(`(?m)^Q\d+[:.]\s*`)
	optionLine     = regexp.MustCompile(`^([A-F])[.)]\s*(.+)$`)
	answerLine     = regexp.MustCompile(`(?i)^answer:\s*([A-F])\b`)
)

// ParseQuizMarker extracts questions from marker-formatted output: numbered
// "Q1:" headers, lettered options, and a trailing "Answer: X" line. A block
// that cannot be fully parsed is dropped with a warning; the surviving
// questions still make a usable quiz.
func ParseQuizMarker(raw string) ([]models.QuizQuestion, []string) {
	var quiz []models.QuizQuestion
	var warnings []string

	markers := questionMarker.FindAllStringIndex(raw, -1)
	dropped := 0

	for i, loc := range markers {
		blockEnd := len(raw)
		if i+1 < len(markers) {
			blockEnd = markers[i+1][0]
		}
		block := raw[loc[1]:blockEnd]

		question, ok := parseQuizBlock(block)
		if !ok {
			dropped++
			continue
		}
		quiz = append(quiz, question)
	}

	if dropped > 0 {
		warnings = append(warnings, fmt.Sprintf("dropped %d malformed quiz question(s)", dropped))
	}
	if len(quiz) == 0 {
		warnings = append(warnings, "no quiz questions could be parsed from model output")
	}
	return quiz, warnings
}

// parseQuizBlock parses one question block: text lines, then option lines,
// then the answer line. Requires 2-6 options and an answer letter that points
// at one of them.
func parseQuizBlock(block string) (models.QuizQuestion, bool) {
	var q models.QuizQuestion
	var questionLines []string

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if m := optionLine.FindStringSubmatch(line); m != nil {
			q.Options = append(q.Options, strings.TrimSpace(m[2]))
			continue
		}
		if m := answerLine.FindStringSubmatch(line); m != nil {
			q.Answer = strings.ToUpper(m[1])
			continue
		}
		if len(q.Options) == 0 {
			questionLines = append(questionLines, line)
		}
	}

	q.Question = strings.TrimSpace(strings.Join(questionLines, " "))
	if q.Question == "" || q.Answer == "" {
		return q, false
	}
	if len(q.Options) < 2 || len(q.Options) > 6 {
		return q, false
	}
	q.AnswerIndex = int(q.Answer[0] - 'A')
	if q.AnswerIndex >= len(q.Options) {
		return q, false
	}
	return q, true
}

// ParseQuizJSON extracts questions from JSON-formatted output. Code fences
// and surrounding prose are tolerated; an unparseable payload yields an empty
// quiz with a warning rather than an error.
func ParseQuizJSON(raw string) ([]models.QuizQuestion, []string) {
	var warnings []string

	var payload []struct {
		Question    string   `json:"question"`
		Options     []string `json:"options"`
		AnswerIndex int      `json:"answer_index"`
	}

	cleaned := stripCodeFence(raw)
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		// Fall back to the outermost JSON array, in case the model wrapped
		// it in prose
		open := strings.Index(cleaned, "[")
		end := strings.LastIndex(cleaned, "]")
		if open < 0 || end <= open || json.Unmarshal([]byte(cleaned[open:end+1]), &payload) != nil {
			return nil, []string{"quiz output was not valid JSON"}
		}
	}

	var quiz []models.QuizQuestion
	dropped := 0
	for _, item := range payload {
		if strings.TrimSpace(item.Question) == "" ||
			len(item.Options) < 2 || len(item.Options) > 6 ||
			item.AnswerIndex < 0 || item.AnswerIndex >= len(item.Options) {
			dropped++
			continue
		}
		quiz = append(quiz, models.QuizQuestion{
			Question:    strings.TrimSpace(item.Question),
			Options:     item.Options,
			Answer:      string(rune('A' + item.AnswerIndex)),
			AnswerIndex: item.AnswerIndex,
		})
	}

	if dropped > 0 {
		warnings = append(warnings, fmt.Sprintf("dropped %d malformed quiz question(s)", dropped))
	}
	if len(quiz) == 0 {
		warnings = append(warnings, "no quiz questions could be parsed from model output")
	}
	return quiz, warnings
}

func stripCodeFence(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	// Drop the opening fence line wholesale; it may carry a language tag
	if idx := strings.Index(cleaned, "\n"); idx >= 0 {
		cleaned = cleaned[idx+1:]
	} else {
		cleaned = strings.TrimPrefix(cleaned, "```")
	}
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}

// QuizScore summarizes a graded answer sheet
type QuizScore struct {
	Correct    int
	Wrong      int
	Unanswered int
}

// ScoreQuiz grades an answer sheet against a quiz. answers[i] is the chosen
// option index for question i; a negative or missing entry counts as
// unanswered.
func ScoreQuiz(quiz []models.QuizQuestion, answers []int) QuizScore {
	var score QuizScore
	for i, q := range quiz {
		if i >= len(answers) || answers[i] < 0 {
			score.Unanswered++
			continue
		}
		if answers[i] == q.AnswerIndex {
			score.Correct++
		} else {
			score.Wrong++
		}
	}
	return score
}
