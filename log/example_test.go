package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/cargo-instruments/log"
)

func Example_basic() {
	logger := log.Make(os.Stdout, log.WithPretty(false))
	logger.Info("profiling", slog.String("template", "Time Profiler"))
	// Output: level=INFO msg=profiling template="Time Profiler"
}

func Example_levels() {
	logger := log.Make(os.Stdout, log.WithLevel(log.LevelWarn))

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("no terminal found")
	// Output: WARN  no terminal found
}

func Example_json() {
	logger := log.Make(os.Stdout, log.WithFormat(log.FormatJSON))
	logger.Info("trace written", slog.String("path", "a.trace"))
	// Output: {"level":"INFO","msg":"trace written","path":"a.trace"}
}
