// Package main provides librarian, the command line interface of the lending catalog.
//
// Every sub-command maps to one catalog operation and prints its result as JSON to stdout.
// Logs are written as JSON to stderr. Metrics are pushed over OTLP gRPC if CATALOG_OTLP_METRICS_ENDPOINT is set. The exit code is 0 on success, 2 for refusals and invalid input,
// and 1 for any other failure.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"strings"
	"syscall"
	"time"

	jsoniter "github.com/json-iterator/go"
	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/AntonStoeckl/lending-catalog-go/catalogstore"
	"github.com/AntonStoeckl/lending-catalog-go/catalogstore/oteladapters"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell"
	"github.com/AntonStoeckl/lending-catalog-go/library/shared/shell/config"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitRefused = 2

	instrumentationName = "github.com/AntonStoeckl/lending-catalog-go/library/cmd/librarian"

	metricsShutdownTimeout = 5 * time.Second
)

// errUsage is returned for unknown sub-commands and invalid flags.
var errUsage = errors.New("usage error")

// app holds what every sub-command needs.
type app struct {
	logger  *slog.Logger
	metrics shell.MetricsCollector
	stdin   io.Reader
	stdout  io.Writer
	store   catalogstore.Store
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return exitRefused
	}

	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(stderr, "loading .env failed:", err)
		return exitFailure
	}

	logger := newLogger(stderr, config.LogLevel())

	name, subArgs := args[0], args[1:]

	sub, ok := subCommands()[name]
	if !ok {
		printUsage(stderr)
		return exitRefused
	}

	meterProvider, err := config.NewMeterProvider(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "setting up the metrics export failed", "error", err.Error())
		return exitFailure
	}

	if meterProvider != nil {
		otel.SetMeterProvider(meterProvider)
		defer shutdownMeterProvider(logger, meterProvider)
	}

	// Without CATALOG_OTLP_METRICS_ENDPOINT the global MeterProvider is the no-op default.
	metrics := oteladapters.NewMetricsCollector(otel.Meter(instrumentationName))

	a := &app{logger: logger, metrics: metrics, stdin: stdin, stdout: stdout}

	if sub.needsStore {
		store, closeStore, err := openStore(ctx, logger, metrics)
		if err != nil {
			logger.ErrorContext(ctx, "opening the catalog store failed", "error", err.Error())
			return exitFailure
		}
		defer closeStore()

		a.store = store
	}

	result, err := sub.run(ctx, a, subArgs)
	if err != nil {
		return reportError(stderr, err)
	}

	if result == nil {
		return exitOK
	}

	if err = writeJSON(stdout, result); err != nil {
		logger.ErrorContext(ctx, "writing the result failed", "error", err.Error())
		return exitFailure
	}

	return exitOK
}

// shutdownMeterProvider flushes the measurements of this run, also after the run context was canceled.
func shutdownMeterProvider(logger *slog.Logger, provider *sdkmetric.MeterProvider) {
	ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
	defer cancel()

	if err := provider.Shutdown(ctx); err != nil {
		logger.WarnContext(ctx, "flushing metrics failed", "error", err.Error())
	}
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var slogLevel slog.Level
	if err := slogLevel.UnmarshalText([]byte(level)); err != nil {
		slogLevel = slog.LevelInfo
	}

	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slogLevel}))
}

func writeJSON(w io.Writer, v any) error {
	encoder := jsoniter.ConfigFastest.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return encoder.Encode(v)
}

// reportError prints err and maps its class to the exit code.
func reportError(stderr io.Writer, err error) int {
	if errors.Is(err, errUsage) {
		fmt.Fprintln(stderr, err)
		return exitRefused
	}

	class := shell.ClassifyError(err)
	fmt.Fprintf(stderr, "%s: %v\n", class, err)

	switch class {
	case shell.ClassRefused, shell.ClassInvalidInput, shell.ClassIntegrity:
		return exitRefused
	default:
		return exitFailure
	}
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(subCommands()))
	for name := range subCommands() {
		names = append(names, name)
	}

	slices.Sort(names)

	fmt.Fprintln(w, "usage: librarian <command> [flags]")
	fmt.Fprintln(w, "commands: "+strings.Join(names, ", "))
}
