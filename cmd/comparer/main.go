package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"banktx/internal/codec"
	"banktx/internal/domain"
	"banktx/internal/gateway"
	"banktx/internal/logger"
	"banktx/internal/usecase"
)

func main() {
	// Define command-line flags
	leftPath := flag.String("left", "", "Path to the first transaction file (required)")
	leftTag := flag.String("left-format", "", "Format of the first file: csv, txt or binary (required)")
	rightPath := flag.String("right", "", "Path to the second transaction file (required)")
	rightTag := flag.String("right-format", "", "Format of the second file: csv, txt or binary (required)")
	jsonOut := flag.Bool("json", false, "Emit the report as JSON instead of lines")
	flag.Parse()

	_ = godotenv.Load()
	log := logger.New()

	// Validate required flags before touching the core.
	if *leftPath == "" || *leftTag == "" || *rightPath == "" || *rightTag == "" {
		fmt.Fprintln(os.Stderr, "Error: all flags (-left, -left-format, -right, -right-format) are required.")
		flag.Usage()
		os.Exit(1)
	}
	leftFormat, err := codec.ParseFormat(*leftTag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -left-format: %v\n", err)
		os.Exit(1)
	}
	rightFormat, err := codec.ParseFormat(*rightTag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -right-format: %v\n", err)
		os.Exit(1)
	}

	// --- Dependency Injection (Wiring the application) ---
	repo := gateway.NewFileTransactionRepository(log)
	comparer := usecase.NewComparerUseCase(repo)

	// --- Execute the Usecase ---
	report, err := comparer.Compare(context.Background(),
		usecase.Source{Path: *leftPath, Format: leftFormat},
		usecase.Source{Path: *rightPath, Format: rightFormat},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("comparison failed")
	}

	// --- Present the Output ---
	// Differences are a report, not a failure: exit 0 either way.
	if *jsonOut {
		output, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatal().Err(err).Msg("failed to generate JSON report")
		}
		fmt.Println(string(output))
		return
	}
	printReport(report)
}

func printReport(report *domain.CompareReport) {
	if report.Identical() {
		fmt.Printf("The transaction records in '%s' and '%s' are identical.\n",
			report.LeftSource, report.RightSource)
		return
	}
	for _, id := range report.MissingInRight {
		fmt.Printf("Transaction %d is missing in '%s'\n", id, report.RightSource)
	}
	for _, id := range report.MissingInLeft {
		fmt.Printf("Transaction %d is missing in '%s'\n", id, report.LeftSource)
	}
	for _, diff := range report.Differing {
		names := make([]string, 0, len(diff.Fields))
		for _, f := range diff.Fields {
			names = append(names, f.Field)
		}
		fmt.Printf("Transaction %d differs between '%s' and '%s': %s\n",
			diff.TransactionID, report.LeftSource, report.RightSource, strings.Join(names, ", "))
		fmt.Printf("  %s: %s\n", report.LeftSource, diff.Left)
		fmt.Printf("  %s: %s\n", report.RightSource, diff.Right)
	}
}
