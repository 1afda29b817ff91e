// ABOUTME: Parser and sanitizer for Mermaid mind map output
// ABOUTME: Guarantees a flowchart declaration and renderer-safe node labels
package core

import (
	"regexp"
	"strings"

	"github.com/harper/studygen/internal/models"
)

// forbiddenLabelChars breaks Mermaid rendering inside node labels
var forbiddenLabelChars = regexp.MustCompile(`[\?:"<>]`)

// nodeRef matches a Mermaid node reference: an identifier with an optional
// bracketed label, e.g. `A[Cell Division]` or a bare `A`
var nodeRef = regexp.MustCompile(`^([A-Za-z0-9_]+)(?:[\[({]+(.*?)[\])}]+)?$`)

// ParseMindmap turns raw model output into a well-formed Mermaid graph. The
// source is sanitized (no characters that break the renderer) and always
// begins with a flowchart declaration. Edges and node labels are extracted
// so callers can work with the graph structurally.
func ParseMindmap(raw string) *models.MindmapGraph {
	graph := &models.MindmapGraph{}

	var lines []string
	for _, line := range strings.Split(stripCodeFence(raw), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, forbiddenLabelChars.ReplaceAllString(line, ""))
	}

	hasDeclaration := false
	if len(lines) > 0 {
		first := strings.TrimSpace(lines[0])
		hasDeclaration = strings.HasPrefix(first, "flowchart") || strings.HasPrefix(first, "graph")
	}
	if !hasDeclaration {
		lines = append([]string{"flowchart TD"}, lines...)
	}
	graph.Source = strings.Join(lines, "\n")

	seen := make(map[string]bool)
	addNode := func(label string) {
		if label != "" && !seen[label] {
			seen[label] = true
			graph.Nodes = append(graph.Nodes, label)
		}
	}

	for _, line := range lines[1:] {
		if !strings.Contains(line, "-->") {
			continue
		}
		refs := strings.Split(line, "-->")
		labels := make([]string, 0, len(refs))
		for _, ref := range refs {
			label, ok := parseNodeRef(ref)
			if !ok {
				labels = nil
				break
			}
			labels = append(labels, label)
		}
		// A chain like A --> B --> C contributes each consecutive pair
		for i := 1; i < len(labels); i++ {
			addNode(labels[i-1])
			addNode(labels[i])
			graph.Edges = append(graph.Edges, [2]string{labels[i-1], labels[i]})
		}
	}

	return graph
}

// parseNodeRef extracts the display label from one side of an edge. A
// bracketed label wins over the node identifier.
func parseNodeRef(ref string) (string, bool) {
	m := nodeRef.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil {
		return "", false
	}
	if label := strings.TrimSpace(m[2]); label != "" {
		return label, true
	}
	return m[1], true
}
