package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"banktx/internal/codec"
	"banktx/internal/gateway"
	"banktx/internal/logger"
	"banktx/internal/usecase"
)

func main() {
	// Define command-line flags
	inputPath := flag.String("input", "", "Path to the input transaction file (required)")
	fromTag := flag.String("from", "", "Input format: csv, txt or binary (required)")
	toTag := flag.String("to", "", "Output format: csv, txt or binary (required)")
	flag.Parse()

	// Optional .env for environment settings such as the log level;
	// operational inputs stay on flags.
	_ = godotenv.Load()
	log := logger.New()

	// Validate required flags before touching the core.
	if *inputPath == "" || *fromTag == "" || *toTag == "" {
		fmt.Fprintln(os.Stderr, "Error: all flags (-input, -from, -to) are required.")
		flag.Usage()
		os.Exit(1)
	}
	from, err := codec.ParseFormat(*fromTag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -from: %v\n", err)
		os.Exit(1)
	}
	to, err := codec.ParseFormat(*toTag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: -to: %v\n", err)
		os.Exit(1)
	}
	if from == to {
		fmt.Fprintln(os.Stderr, "Error: input and output formats must differ.")
		os.Exit(1)
	}

	// --- Dependency Injection (Wiring the application) ---
	repo := gateway.NewFileTransactionRepository(log)
	converter := usecase.NewConverterUseCase(repo)

	// --- Execute the Usecase ---
	// Serialized output goes to stdout, diagnostics to stderr.
	log.Debug().Str("input", *inputPath).Str("from", string(from)).Str("to", string(to)).Msg("converting")
	if err := converter.Convert(context.Background(), *inputPath, from, to, os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("conversion failed")
	}
}
