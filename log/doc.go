// Package log provides structured logging for lineprof built on [log/slog].
//
// It adds a Trace level below Debug, a colorized pretty text handler, and a
// package-level default logger that the CLI reconfigures from command-line
// flags via [Config].
//
// The zero value of [Logger] is a no-op. Library types embed one so that
// logging is opt-in:
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
//	logger.Debug("session enabled", slog.String("mode", "pattern"))
package log
