package pdf2db

// Logger is the logging contract used across the pipeline.
//
// Implementations:
//   - logging.ConsoleLogger: writes to stderr, gates Verbose on a flag
//   - logging.NullLogger: discards everything (tests)
type Logger interface {
	// Verbose logs detailed diagnostic information.
	Verbose(format string, args ...interface{})

	// Info logs informational messages about normal operations.
	Info(format string, args ...interface{})

	// Error logs error messages.
	Error(format string, args ...interface{})
}
