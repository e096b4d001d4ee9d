// Package main provides a performance benchmarking tool for the cvss2 CLI.
// It measures batch scoring times across input sizes and output formats,
// running each test multiple times, treating the first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - cvss2 binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where generated vector files and outputs are written
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (cold run and average of warm runs).
type BenchmarkResult struct {
	Vectors  int
	Output   string
	ColdTime string
	WarmTime string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir string
	Timeout time.Duration
	Runs    int
	Sizes   []int
	Outputs []string
}

func main() {
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir: os.Args[1],
		Timeout: 2 * time.Minute,
		Runs:    4,
		Sizes:   []int{100, 10_000, 100_000},
		Outputs: []string{"text", "csv", "json", "parquet"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(config, results)
}

// checkPrerequisites verifies that the cvss2 binary and the work directory exist
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("cvss2"); err != nil {
		return fmt.Errorf("cvss2 binary not found in PATH")
	}
	if info, err := os.Stat(config.WorkDir); err != nil || !info.IsDir() {
		return fmt.Errorf("work directory %s not found", config.WorkDir)
	}
	return nil
}

// Values cycled through when generating vectors.
var (
	accessVectors = []string{"L", "A", "N"}
	complexities  = []string{"H", "M", "L"}
	authModes     = []string{"M", "S", "N"}
	impacts       = []string{"N", "P", "C"}
	exploits      = []string{"U", "POC", "F", "H", "ND"}
	remediations  = []string{"OF", "TF", "W", "U", "ND"}
	confidences   = []string{"UC", "UR", "C", "ND"}
	damages       = []string{"N", "L", "LM", "MH", "H", "ND"}
	distributions = []string{"N", "L", "M", "H", "ND"}
	requirements  = []string{"L", "M", "H", "ND"}
)

// generateVectors writes n full vectors, one per line, and returns the file path.
func generateVectors(dir string, n int) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("vectors_%d.txt", n))
	var b strings.Builder
	b.WriteString("# generated by the cvss2 benchmark\n")
	for i := range n {
		pick := func(values []string, stride int) string {
			return values[(i/stride)%len(values)]
		}
		fmt.Fprintf(&b, "AV:%s/AC:%s/Au:%s/C:%s/I:%s/A:%s/E:%s/RL:%s/RC:%s/CDP:%s/TD:%s/CR:%s/IR:%s/AR:%s\n",
			pick(accessVectors, 1), pick(complexities, 3), pick(authModes, 9),
			pick(impacts, 27), pick(impacts, 81), pick(impacts, 243),
			pick(exploits, 2), pick(remediations, 5), pick(confidences, 7),
			pick(damages, 11), pick(distributions, 13),
			pick(requirements, 17), pick(requirements, 19), pick(requirements, 23))
	}
	return path, os.WriteFile(path, []byte(b.String()), 0o644)
}

// runBenchmarks executes all benchmark tests across configured sizes and outputs
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: sizes %v, outputs %v, %v timeout, %d runs\n",
		config.Sizes, config.Outputs, config.Timeout, config.Runs)

	for _, size := range config.Sizes {
		input, err := generateVectors(config.WorkDir, size)
		if err != nil {
			return nil, fmt.Errorf("failed to generate %d vectors: %w", size, err)
		}
		fmt.Printf("Benchmarking %d vectors\n", size)

		for _, output := range config.Outputs {
			results = append(results, runBenchmarkSuite(config, input, size, output))
		}
	}
	return results, nil
}

// runBenchmarkSuite runs one input and output format combination several times
func runBenchmarkSuite(config BenchmarkConfig, input string, size int, output string) BenchmarkResult {
	outputFile := filepath.Join(config.WorkDir, "scores."+output)
	args := []string{"batch", input, "--all", "--output", output, "--output-file", outputFile}

	cold, warm := runBenchmark(config, args, outputFile)

	coldTimeStr := "TIMEOUT"
	if cold > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", cold)
	}
	warmAvg := "TIMEOUT"
	if len(warm) > 0 {
		var sum float64
		for _, t := range warm {
			sum += t
		}
		warmAvg = fmt.Sprintf("%.3fs", sum/float64(len(warm)))
	}

	fmt.Printf("  %-8s Cold time: %s, Warm average: %s\n", output, coldTimeStr, warmAvg)
	return BenchmarkResult{
		Vectors:  size,
		Output:   output,
		ColdTime: coldTimeStr,
		WarmTime: warmAvg,
	}
}

// runBenchmark executes a cvss2 command multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, args []string, outputFile string) (coldTime float64, warmTimes []float64) {
	var times []float64
	for range config.Runs {
		_ = os.Remove(outputFile)
		start := time.Now()

		cmd := exec.Command("cvss2", args...)

		done := make(chan error, 1)
		go func() {
			done <- cmd.Run()
		}()

		select {
		case err := <-done:
			if err == nil && isSuccess(outputFile) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks that the command produced a non-empty output file
func isSuccess(outputFile string) bool {
	info, err := os.Stat(outputFile)
	return err == nil && info.Size() > 0
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/cvss2_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write([]string{"vectors", "output", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{fmt.Sprint(result.Vectors), result.Output, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(config BenchmarkConfig, results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, output := range config.Outputs {
		fmt.Printf("%s output:\n", strings.ToUpper(output))
		for _, result := range results {
			if result.Output == output {
				fmt.Printf("  %8d vectors: Cold: %s, Warm: %s\n", result.Vectors, result.ColdTime, result.WarmTime)
			}
		}
	}
}
