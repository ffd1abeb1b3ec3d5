package i

// Logger is the leveled logger every subsystem writes through.
type Logger interface {
	// Info logs a routine operational message.
	Info(string)

	// Warning logs a recoverable anomaly.
	Warning(string)

	// Error logs a failure.
	Error(string)
}
