// Command cli runs one solve against a JSON request file and prints a
// report, mirroring the batch-mode entry point in the teacher
// repository's cmd/cli/main.go (load input, run, print state/cost/
// timer, export to disk) but reading a single JSON document instead of
// a set of CSV files, and reporting search diagnostics instead of a
// schedule cost.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rhyrak/coursecsp/internal/config"
	"github.com/rhyrak/coursecsp/internal/csp"
	"github.com/rhyrak/coursecsp/internal/exportcsv"
	"github.com/rhyrak/coursecsp/internal/normalize"
	"github.com/rhyrak/coursecsp/internal/validate"
	"github.com/rhyrak/coursecsp/pkg/model"
)

func main() {
	inputPath := flag.String("input", "request.json", "Path to a JSON scheduling request.")
	outputPath := flag.String("output", "schedule.csv", "Path to write the solved schedule as CSV.")
	retries := flag.Int("retries", 0, "Number of randomized retries to attempt on failure.")
	flag.Parse()

	raw, err := os.ReadFile(*inputPath)
	if err != nil {
		fmt.Println("Failed to read input:", err)
		os.Exit(1)
	}

	var in model.Input
	if err := json.Unmarshal(raw, &in); err != nil {
		fmt.Println("Failed to parse input:", err)
		os.Exit(1)
	}
	normalize.Input(&in)

	if errs := validate.Input(&in); len(errs) > 0 {
		fmt.Println("Request failed pre-flight validation:")
		for _, e := range errs {
			fmt.Println(" -", e)
		}
		os.Exit(1)
	}

	cfg := config.Default()
	cfg.RandomRetries = *retries

	start := time.Now()
	inst, result := csp.Solve(context.Background(), &in, cfg)
	elapsed := time.Since(start)

	if !result.Success {
		fmt.Println("No solution found.")
		fmt.Println(result.Diagnostics.Summary())
		os.Exit(1)
	}

	fmt.Println("Solved.")
	fmt.Printf("Sections: %d\n", len(in.Sections))
	fmt.Printf("Variables: %d\n", len(inst.Variables))
	fmt.Printf("Iterations: %d\n", result.Diagnostics.Iterations)
	fmt.Printf("Timer: %s\n", elapsed)

	if err := exportcsv.ToFile(inst, *outputPath); err != nil {
		fmt.Println("Failed to export schedule:", err)
		os.Exit(1)
	}
	fmt.Println("Exported output to:", *outputPath)
}
