// Package log provides the structured logger used by cargo-instruments.
//
// It is a thin layer over [log/slog] that adds a trace level, named time
// layouts, and a colorized text handler for interactive terminals. Loggers
// are immutable values configured with functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"))
//
//	logger.Debug("running command", slog.String("argv", cmd.String()))
//
// A process-wide default logger writing to standard error backs the
// package-level functions ([Debug], [InfoContext], ...). The CLI
// reconfigures it with [Config] while flags are parsed.
//
// # Levels
//
// [LevelTrace], [LevelDebug], [LevelInfo], [LevelWarn] and [LevelError].
// Messages below the configured level are discarded.
//
// # Formats
//
// [FormatText] (default) and [FormatJSON]. With [WithPretty] enabled, text
// output is styled with lipgloss; styling is dropped automatically when the
// output is not a terminal.
package log
