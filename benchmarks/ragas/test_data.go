// ABOUTME: Benchmark scenario definitions: documents, queries, and ground truth
// ABOUTME: Each scenario exercises retrieval grounding over a small study corpus

package ragas

// EvalDocument is one source document a scenario ingests before querying
type EvalDocument struct {
	Name string
	Text string
}

// TestScenario represents a complete benchmark test
type TestScenario struct {
	ID          string
	Name        string
	Description string
	Documents   []EvalDocument
	Query       string

	// Ground truth for RAGAS evaluation
	ExpectedInResponse   []string // Strings that MUST appear in the answer
	ForbiddenInResponse  []string // Strings that MUST NOT appear in the answer
	ExpectedContextItems []string // Passages that should be retrieved
}

// TestResult represents the outcome of a benchmark test
type TestResult struct {
	TestID             string                 `json:"test_id"`
	TestName           string                 `json:"test_name"`
	FaithfulnessScore  float64                `json:"faithfulness_score"`
	ContextRecallScore float64                `json:"context_recall_score"`
	OverallScore       float64                `json:"overall_score"`
	Status             string                 `json:"status"` // "PASS" or "FAIL"
	Details            map[string]interface{} `json:"details,omitempty"`
	ErrorMessage       string                 `json:"error_message,omitempty"`
}

// GetTestGrounding returns the basic grounding scenario: the answer must come
// from the ingested document, not from the model's own knowledge.
func GetTestGrounding() TestScenario {
	return TestScenario{
		ID:          "grounding",
		Name:        "Answer grounding",
		Description: "The answer to a factual question must use the document's (deliberately unusual) claim, not general knowledge.",
		Documents: []EvalDocument{
			{
				Name: "course-notes.txt",
				Text: "In this course we use the Hartwell convention: the cell cycle is divided " +
					"into five phases, with the extra phase named the Q phase occurring between " +
					"G1 and S. The Q phase is when the cell commits irreversibly to division. " +
					"Standard textbooks describe four phases, but all exam answers in this " +
					"course must follow the five-phase Hartwell convention.",
			},
		},
		Query:                "How many phases does the cell cycle have, and what is the extra one called?",
		ExpectedInResponse:   []string{"five", "Q phase"},
		ForbiddenInResponse:  []string{"four phases"},
		ExpectedContextItems: []string{"Hartwell convention", "Q phase"},
	}
}

// GetTestMultiDocument returns the cross-document scenario: retrieval must
// pull the right sections from two different documents.
func GetTestMultiDocument() TestScenario {
	return TestScenario{
		ID:          "multidoc",
		Name:        "Multi-document retrieval",
		Description: "A comparison question whose halves live in separate documents.",
		Documents: []EvalDocument{
			{
				Name: "mitosis.txt",
				Text: "Mitosis produces two genetically identical diploid daughter cells. " +
					"It is used for growth and tissue repair in somatic cells. The stages " +
					"are prophase, metaphase, anaphase, and telophase.",
			},
			{
				Name: "meiosis.txt",
				Text: "Meiosis produces four genetically distinct haploid gametes. " +
					"It occurs only in germ cells and includes two rounds of division. " +
					"Crossing over during prophase I creates genetic variation.",
			},
		},
		Query:                "Compare the products of mitosis and meiosis.",
		ExpectedInResponse:   []string{"diploid", "haploid"},
		ExpectedContextItems: []string{"two genetically identical", "four genetically distinct"},
	}
}

// GetTestIrrelevant returns the refusal scenario: when the library does not
// cover the question, the answer must say so rather than hallucinate.
func GetTestIrrelevant() TestScenario {
	return TestScenario{
		ID:          "irrelevant",
		Name:        "Out-of-scope refusal",
		Description: "The question is unrelated to the ingested material; the answer must admit that.",
		Documents: []EvalDocument{
			{
				Name: "photosynthesis.txt",
				Text: "Photosynthesis converts light energy into chemical energy stored in " +
					"glucose. It takes place in the chloroplasts, using chlorophyll to absorb " +
					"light. The overall equation combines carbon dioxide and water into " +
					"glucose and oxygen.",
			},
		},
		Query:               "Who won the 1998 FIFA World Cup?",
		ExpectedInResponse:  []string{},
		ForbiddenInResponse: []string{"France won"},
	}
}

// AllScenarios returns every benchmark scenario
func AllScenarios() []TestScenario {
	return []TestScenario{
		GetTestGrounding(),
		GetTestMultiDocument(),
		GetTestIrrelevant(),
	}
}

// GetScenario returns a scenario by ID, or false if unknown
func GetScenario(id string) (TestScenario, bool) {
	for _, scenario := range AllScenarios() {
		if scenario.ID == id {
			return scenario, true
		}
	}
	return TestScenario{}, false
}
