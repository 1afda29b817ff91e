// ABOUTME: Tests for the Mermaid mind map parser
// ABOUTME: Covers sanitization, declaration handling, and edge extraction
package core

import (
	"strings"
	"testing"
)

func TestParseMindmap_WellFormed(t *testing.T) {
	raw := `flowchart TD
    A[Cell Biology] --> B[Organelles]
    A --> C[Cell Division]
    B --> D[Mitochondria]`

	graph := ParseMindmap(raw)

	if !strings.HasPrefix(graph.Source, "flowchart TD") {
		t.Errorf("Source should start with declaration, got %q", graph.Source)
	}
	if len(graph.Edges) != 3 {
		t.Fatalf("got %d edges, want 3", len(graph.Edges))
	}
	if graph.Edges[0] != [2]string{"Cell Biology", "Organelles"} {
		t.Errorf("edge 0 = %v", graph.Edges[0])
	}
	// Bare reference A reuses the identifier since no label is attached there
	if graph.Edges[1][0] != "A" {
		t.Errorf("edge 1 source = %q, want bare identifier A", graph.Edges[1][0])
	}

	wantNodes := map[string]bool{"Cell Biology": true, "Organelles": true, "Mitochondria": true}
	for want := range wantNodes {
		found := false
		for _, node := range graph.Nodes {
			if node == want {
				found = true
			}
		}
		if !found {
			t.Errorf("node %q missing from %v", want, graph.Nodes)
		}
	}
}

func TestParseMindmap_AddsMissingDeclaration(t *testing.T) {
	graph := ParseMindmap("A[Topic] --> B[Subtopic]")

	lines := strings.Split(graph.Source, "\n")
	if lines[0] != "flowchart TD" {
		t.Errorf("first line = %q, want flowchart TD", lines[0])
	}
	if len(graph.Edges) != 1 {
		t.Errorf("got %d edges, want 1", len(graph.Edges))
	}
}

func TestParseMindmap_SanitizesLabels(t *testing.T) {
	raw := `flowchart TD
    A[What is DNA?] --> B[Structure: double helix]
    B --> C[Bases <A T G C>]`

	graph := ParseMindmap(raw)

	for _, bad := range []string{"?", ":", "<", ">", `"`} {
		if strings.Contains(strings.TrimPrefix(graph.Source, "flowchart TD"), bad) {
			t.Errorf("Source still contains forbidden %q:\n%s", bad, graph.Source)
		}
	}
	if graph.Edges[0][0] != "What is DNA" {
		t.Errorf("sanitized label = %q", graph.Edges[0][0])
	}
}

func TestParseMindmap_ChainedEdges(t *testing.T) {
	graph := ParseMindmap("A[One] --> B[Two] --> C[Three]")

	if len(graph.Edges) != 2 {
		t.Fatalf("got %d edges, want 2 from chain", len(graph.Edges))
	}
	if graph.Edges[0] != [2]string{"One", "Two"} || graph.Edges[1] != [2]string{"Two", "Three"} {
		t.Errorf("edges = %v", graph.Edges)
	}
}

func TestParseMindmap_StripsCodeFence(t *testing.T) {
	raw := "```mermaid\nflowchart TD\n    A[Root] --> B[Leaf]\n```"

	graph := ParseMindmap(raw)
	if strings.Contains(graph.Source, "```") {
		t.Errorf("Source kept the code fence: %q", graph.Source)
	}
	if len(graph.Edges) != 1 {
		t.Errorf("got %d edges, want 1", len(graph.Edges))
	}
}

func TestParseMindmap_EmptyOutput(t *testing.T) {
	graph := ParseMindmap("")

	if graph.Source != "flowchart TD" {
		t.Errorf("Source = %q, want bare declaration", graph.Source)
	}
	if len(graph.Nodes) != 0 || len(graph.Edges) != 0 {
		t.Error("empty output should yield an empty graph")
	}
}
