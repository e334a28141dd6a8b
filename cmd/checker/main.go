package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/UnknownOlympus/hermes/internal/config"
	"github.com/UnknownOlympus/hermes/internal/metrics"
	"github.com/UnknownOlympus/hermes/internal/models"
	"github.com/UnknownOlympus/hermes/internal/report"
	"github.com/UnknownOlympus/hermes/internal/resolver"
	"github.com/UnknownOlympus/hermes/internal/routing"
	"github.com/UnknownOlympus/hermes/internal/validate"
	"github.com/prometheus/client_golang/prometheus"
)

// main runs a single batch check from the command line: it reads candidate
// addresses from a file (or stdin), resolves them against the reference and
// writes the results as CSV (and optionally XLSX).
func main() {
	reference := flag.String("reference", "", "reference (origin) address")
	threshold := flag.Float64("threshold", 15, "drive-time threshold in minutes")
	input := flag.String("input", "-", "file with one candidate address per line, or - for stdin")
	output := flag.String("output", "", "CSV output path (default: stdout)")
	xlsx := flag.String("xlsx", "", "optional XLSX output path")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(ctx, logger, *reference, *threshold, *input, *output, *xlsx); err != nil {
		logger.Error("Check failed", "error", err)
		os.Exit(1)
	}
}

func run(
	ctx context.Context,
	logger *slog.Logger,
	reference string,
	threshold float64,
	input, output, xlsx string,
) error {
	cfg := config.MustLoad()

	lines, err := readLines(input)
	if err != nil {
		return fmt.Errorf("failed to read candidate addresses: %w", err)
	}

	candidates := validate.Candidates(reference, lines)
	if len(candidates) == 0 {
		return errors.New("no candidate addresses after normalization")
	}

	provider, err := routing.NewProvider(routing.ProviderConfig{
		Type:      routing.ProviderType(cfg.ProviderType),
		APIKey:    cfg.APIKey,
		RateLimit: cfg.RateLimit,
		Timeout:   cfg.Timeout,
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create routing provider: %w", err)
	}

	retried := routing.NewRetry(provider, cfg.MaxRetries, cfg.Timeout, logger)
	batchResolver := resolver.NewBatchResolver(
		logger, retried, cfg.ProviderType, metrics.NewMetrics(prometheus.NewRegistry()), cfg.Workers,
	)

	done := 0
	progress := func(res models.RouteResult) {
		done++
		logger.Info("Candidate resolved",
			"progress", fmt.Sprintf("%d/%d", done, len(candidates)),
			"address", res.Address,
			"status", string(res.Status),
		)
	}

	results, runErr := batchResolver.ResolveBatch(
		ctx, reference, candidates, threshold, resolver.WithProgress(progress),
	)
	if runErr != nil && !errors.Is(runErr, resolver.ErrAllCandidatesFailed) {
		return runErr
	}

	if err = writeOutputs(results, output, xlsx); err != nil {
		return err
	}

	_, summary := report.Aggregate(results)
	logger.Info("Batch finished",
		"total", summary.Total,
		"within_range", summary.WithinRange,
		"out_of_range", summary.OutOfRange,
		"errored", summary.Errored,
	)

	return runErr
}

// readLines reads candidate addresses, one per line, from path or stdin.
func readLines(path string) ([]string, error) {
	var reader io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		reader = file
	}

	var lines []string
	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}

	return lines, scanner.Err()
}

func writeOutputs(results []models.RouteResult, output, xlsx string) error {
	var out io.Writer = os.Stdout
	if output != "" {
		file, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	if err := report.WriteCSV(out, results); err != nil {
		return err
	}

	if xlsx != "" {
		if err := report.WriteXLSX(xlsx, results); err != nil {
			return err
		}
	}

	return nil
}
