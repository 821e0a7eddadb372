package types

// Logger defines methods for structured logging.
//
// Compatible with zap.SugaredLogger and other structured loggers.
// All methods accept key-value pairs for structured fields.
type Logger interface {
	// Debug logs a message at DebugLevel with structured key-value fields.
	Debug(msg string, keysAndValues ...any)

	// Info logs a message at InfoLevel with structured key-value fields.
	Info(msg string, keysAndValues ...any)

	// Warn logs a message at WarnLevel with structured key-value fields.
	Warn(msg string, keysAndValues ...any)

	// Error logs a message at ErrorLevel with structured key-value fields.
	Error(msg string, keysAndValues ...any)

	// Fatal logs a message at FatalLevel and calls os.Exit(1), even if
	// logging at FatalLevel is disabled.
	Fatal(msg string, keysAndValues ...any)
}
