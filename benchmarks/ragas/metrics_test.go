// ABOUTME: Tests for RAGAS metric calculations
// ABOUTME: Deterministic scoring without any network calls

package ragas

import "testing"

func TestCalculateFaithfulness(t *testing.T) {
	m := NewMetricsCalculator()

	tests := []struct {
		name      string
		response  string
		expected  []string
		forbidden []string
		want      float64
	}{
		{"perfect", "The cycle has five phases including the Q phase.", []string{"five", "Q phase"}, []string{"four phases"}, 1.0},
		{"missing expected", "The cycle has several phases.", []string{"five"}, nil, 0.5},
		{"forbidden present", "There are four phases in the cycle.", nil, []string{"four phases"}, 0.0},
		{"both failures", "There are four phases.", []string{"five"}, []string{"four phases"}, 0.0},
		{"case insensitive", "the q PHASE exists", []string{"Q phase"}, nil, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _ := m.CalculateFaithfulness(tt.response, tt.expected, tt.forbidden)
			if got != tt.want {
				t.Errorf("CalculateFaithfulness() = %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestCalculateContextRecall(t *testing.T) {
	m := NewMetricsCalculator()

	passages := []string{
		"Mitosis produces two genetically identical daughter cells.",
		"Meiosis produces four genetically distinct gametes.",
	}

	score, _ := m.CalculateContextRecall(passages, []string{"two genetically identical", "four genetically distinct"})
	if score != 1.0 {
		t.Errorf("full recall = %.2f, want 1.0", score)
	}

	score, _ = m.CalculateContextRecall(passages, []string{"two genetically identical", "crossing over"})
	if score != 0.5 {
		t.Errorf("partial recall = %.2f, want 0.5", score)
	}

	score, _ = m.CalculateContextRecall(passages, nil)
	if score != 1.0 {
		t.Errorf("no expectations = %.2f, want 1.0", score)
	}
}

func TestCalculateOverall(t *testing.T) {
	m := NewMetricsCalculator()
	if got := m.CalculateOverall(1.0, 0.5); got != 0.75 {
		t.Errorf("CalculateOverall() = %.2f, want 0.75", got)
	}
}
