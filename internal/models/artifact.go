// ABOUTME: Generated study artifacts (notes, flashcards, quiz, mindmap)
// ABOUTME: Outputs of the generation orchestrator; immutable once produced
package models

// TaskKind selects which kind of study content to generate
type TaskKind string

const (
	TaskAnswer     TaskKind = "answer"
	TaskNotes      TaskKind = "notes"
	TaskFlashcards TaskKind = "flashcards"
	TaskQuiz       TaskKind = "quiz"
	TaskMindmap    TaskKind = "mindmap"
)

// ParseTaskKind converts a user-supplied string into a TaskKind
func ParseTaskKind(s string) (TaskKind, bool) {
	switch TaskKind(s) {
	case TaskAnswer, TaskNotes, TaskFlashcards, TaskQuiz, TaskMindmap:
		return TaskKind(s), true
	}
	return "", false
}

// Flashcard is one question/answer pair for active recall practice
type Flashcard struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QuizQuestion is one multiple-choice question. AnswerIndex is the index of
// the correct option; Answer is its letter (A-F) as the model emitted it.
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	AnswerIndex int      `json:"answer_index"`
}

// MindmapGraph is a renderer-ready Mermaid flowchart plus the directed graph
// parsed out of it. Source always begins with a flowchart declaration.
type MindmapGraph struct {
	Source string      `json:"source"`
	Nodes  []string    `json:"nodes"`
	Edges  [][2]string `json:"edges"`
}

// Artifact is the result of one generation request. Exactly one of the
// content fields is populated depending on Task. Warnings carry parse
// problems that degraded the artifact without failing the request.
type Artifact struct {
	Task         TaskKind       `json:"task"`
	Text         string         `json:"text,omitempty"`
	Flashcards   []Flashcard    `json:"flashcards,omitempty"`
	Quiz         []QuizQuestion `json:"quiz,omitempty"`
	Mindmap      *MindmapGraph  `json:"mindmap,omitempty"`
	PassagesUsed int            `json:"passages_used"`
	Warnings     []string       `json:"warnings,omitempty"`
}
