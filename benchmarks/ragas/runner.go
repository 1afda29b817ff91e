// ABOUTME: Benchmark runner - ingests scenario documents and scores generation
// ABOUTME: Builds an isolated pipeline per test so scenarios cannot contaminate each other

package ragas

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/harper/studygen/internal/core"
	"github.com/harper/studygen/internal/llm"
	"github.com/harper/studygen/internal/loader"
	"github.com/harper/studygen/internal/models"
)

// PassThreshold is the minimum overall score for a PASS verdict
const PassThreshold = 0.7

// BenchmarkRunner executes RAGAS benchmark tests against the live pipeline
type BenchmarkRunner struct {
	client  *llm.OpenAIClient
	metrics *MetricsCalculator
	verbose bool
}

// NewBenchmarkRunner creates a new benchmark runner
func NewBenchmarkRunner(apiKey string, verbose bool) (*BenchmarkRunner, error) {
	client, err := llm.NewOpenAIClient(llm.DefaultConfig(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	return &BenchmarkRunner{
		client:  client,
		metrics: NewMetricsCalculator(),
		verbose: verbose,
	}, nil
}

// RunTest executes a single benchmark test with a fresh in-memory library
func (r *BenchmarkRunner) RunTest(ctx context.Context, scenario TestScenario) (TestResult, error) {
	if r.verbose {
		fmt.Printf("\n========================================\n")
		fmt.Printf("RUNNING: %s\n", scenario.Name)
		fmt.Printf("========================================\n")
		fmt.Printf("Description: %s\n\n", scenario.Description)
	}

	result := TestResult{
		TestID:   scenario.ID,
		TestName: scenario.Name,
		Status:   "FAIL",
		Details:  map[string]interface{}{},
	}

	engine := core.NewChunkEngine(core.DefaultChunkConfig())
	library := core.NewLibrary(engine, r.client)

	for _, evalDoc := range scenario.Documents {
		doc, err := loader.Load(evalDoc.Name, []byte(evalDoc.Text))
		if err != nil {
			result.ErrorMessage = fmt.Sprintf("loading %s: %v", evalDoc.Name, err)
			return result, err
		}
		if err := library.AddDocument(ctx, doc); err != nil {
			result.ErrorMessage = fmt.Sprintf("ingesting %s: %v", evalDoc.Name, err)
			return result, err
		}
	}

	retriever := core.NewRetriever(library.Index(), r.client)

	// Score retrieval before generation so a recall failure is attributable
	retrieved, err := retriever.Retrieve(ctx, scenario.Query, core.DefaultGenerateOptions().TopK)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("retrieval: %v", err)
		return result, err
	}
	passages := make([]string, len(retrieved))
	for i, scored := range retrieved {
		passages[i] = scored.Chunk.Text
	}
	recall, recallDetail := r.metrics.CalculateContextRecall(passages, scenario.ExpectedContextItems)
	result.ContextRecallScore = recall
	result.Details["context_recall"] = recallDetail

	orchestrator := core.NewOrchestrator(retriever, r.client, core.DefaultGenerateOptions())
	artifact, err := orchestrator.Generate(ctx, models.TaskAnswer, scenario.Query)
	if err != nil {
		result.ErrorMessage = fmt.Sprintf("generation: %v", err)
		return result, err
	}

	faithfulness, faithDetail := r.metrics.CalculateFaithfulness(
		artifact.Text, scenario.ExpectedInResponse, scenario.ForbiddenInResponse)
	result.FaithfulnessScore = faithfulness
	result.Details["faithfulness"] = faithDetail
	result.Details["passages_used"] = artifact.PassagesUsed

	result.OverallScore = r.metrics.CalculateOverall(faithfulness, recall)
	if result.OverallScore >= PassThreshold {
		result.Status = "PASS"
	}

	if r.verbose {
		fmt.Printf("Faithfulness:   %.2f (%s)\n", faithfulness, faithDetail)
		fmt.Printf("Context recall: %.2f (%s)\n", recall, recallDetail)
		fmt.Printf("Overall:        %.2f [%s]\n", result.OverallScore, result.Status)
	}

	return result, nil
}

// RunAll executes every scenario and returns the collected results
func (r *BenchmarkRunner) RunAll(ctx context.Context) ([]TestResult, error) {
	var results []TestResult
	for _, scenario := range AllScenarios() {
		result, err := r.RunTest(ctx, scenario)
		if err != nil && r.verbose {
			fmt.Printf("Test %s errored: %v\n", scenario.ID, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// SaveResults writes benchmark results as JSON
func SaveResults(results []TestResult, path string) error {
	report := map[string]interface{}{
		"generated_at": time.Now().UTC().Format(time.RFC3339),
		"results":      results,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}
