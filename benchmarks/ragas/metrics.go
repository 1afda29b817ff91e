// ABOUTME: RAGAS metrics for grounded study-content generation
// ABOUTME: Deterministic faithfulness and context-recall scoring against ground truth

package ragas

import (
	"fmt"
	"strings"
)

// MetricsCalculator computes RAGAS scores for benchmark scenarios
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateFaithfulness scores whether the generated answer sticks to the
// ground truth: every expected string present, no forbidden string present.
// Forbidden strings catch hallucinations the source documents cannot support.
func (m *MetricsCalculator) CalculateFaithfulness(
	response string,
	expectedInResponse []string,
	forbiddenInResponse []string,
) (float64, string) {
	responseUpper := strings.ToUpper(response)

	missingItems := []string{}
	for _, expected := range expectedInResponse {
		if !strings.Contains(responseUpper, strings.ToUpper(expected)) {
			missingItems = append(missingItems, expected)
		}
	}

	forbiddenFound := []string{}
	for _, forbidden := range forbiddenInResponse {
		if strings.Contains(responseUpper, strings.ToUpper(forbidden)) {
			forbiddenFound = append(forbiddenFound, forbidden)
		}
	}

	if len(missingItems) == 0 && len(forbiddenFound) == 0 {
		return 1.0, "Perfect faithfulness - answer matches expected ground truth"
	}
	if len(missingItems) > 0 && len(forbiddenFound) > 0 {
		return 0.0, fmt.Sprintf(
			"Faithfulness failure - missing expected items: %v, forbidden items found: %v",
			missingItems, forbiddenFound,
		)
	}
	if len(missingItems) > 0 {
		return 0.5, fmt.Sprintf("Partial faithfulness - missing expected items: %v", missingItems)
	}
	return 0.0, fmt.Sprintf("Faithfulness failure - forbidden items found: %v", forbiddenFound)
}

// CalculateContextRecall scores retrieval quality: what fraction of the
// expected context items appear in the retrieved passages.
func (m *MetricsCalculator) CalculateContextRecall(
	retrievedPassages []string,
	expectedContextItems []string,
) (float64, string) {
	if len(expectedContextItems) == 0 {
		return 1.0, "No expected context items defined"
	}

	combined := strings.ToUpper(strings.Join(retrievedPassages, "\n"))

	found := 0
	missing := []string{}
	for _, item := range expectedContextItems {
		if strings.Contains(combined, strings.ToUpper(item)) {
			found++
		} else {
			missing = append(missing, item)
		}
	}

	score := float64(found) / float64(len(expectedContextItems))
	if len(missing) == 0 {
		return score, "All expected context items retrieved"
	}
	return score, fmt.Sprintf("Missing context items: %v", missing)
}

// CalculateOverall combines faithfulness and context recall into one score
func (m *MetricsCalculator) CalculateOverall(faithfulness, contextRecall float64) float64 {
	return (faithfulness + contextRecall) / 2.0
}
