// ABOUTME: Command-line benchmark runner for RAGAS tests
// ABOUTME: Executes grounding benchmarks against the live pipeline and writes JSON results

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/harper/studygen/benchmarks/ragas"
	"github.com/joho/godotenv"
)

func main() {
	testID := flag.String("test", "", "Run specific test (grounding, multidoc, irrelevant). If empty, runs all tests.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	_ = godotenv.Load()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("OPENAI_API_KEY is required to run benchmarks")
	}

	runner, err := ragas.NewBenchmarkRunner(apiKey, *verbose)
	if err != nil {
		log.Fatalf("Failed to create benchmark runner: %v", err)
	}

	ctx := context.Background()
	var results []ragas.TestResult

	if *testID != "" {
		scenario, ok := ragas.GetScenario(*testID)
		if !ok {
			log.Fatalf("Unknown test ID %q", *testID)
		}
		result, err := runner.RunTest(ctx, scenario)
		if err != nil {
			log.Printf("Test errored: %v", err)
		}
		results = append(results, result)
	} else {
		results, err = runner.RunAll(ctx)
		if err != nil {
			log.Fatalf("Benchmark run failed: %v", err)
		}
	}

	passed := 0
	for _, result := range results {
		if result.Status == "PASS" {
			passed++
		}
		fmt.Printf("%-12s %-28s %.2f [%s]\n", result.TestID, result.TestName, result.OverallScore, result.Status)
	}
	fmt.Printf("\n%d/%d tests passed\n", passed, len(results))

	if err := ragas.SaveResults(results, *outputPath); err != nil {
		log.Fatalf("Failed to save results: %v", err)
	}
	fmt.Printf("Results written to %s\n", *outputPath)

	if passed < len(results) {
		os.Exit(1)
	}
}
