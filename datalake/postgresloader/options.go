package postgresloader

import (
	"errors"
	"fmt"
)

var ErrNilDatabaseConnection = errors.New("database connection must not be nil")
var ErrInvalidBatchSize = errors.New("batch size must be at least 1")
var ErrUnknownDriver = errors.New("unknown database driver")
var ErrEmptyDSN = errors.New("database dsn must not be empty")
var ErrBuildingStatementFailed = errors.New("building sql statement failed")
var ErrExecutingStatementFailed = errors.New("executing sql statement failed")
var ErrCountingRowsFailed = errors.New("counting table rows failed")

// Logger interface for SQL statement logging, load metrics, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring the Loader.
type Option func(*Loader) error

// WithBatchSize sets the maximum number of rows per INSERT statement.
func WithBatchSize(size int) Option {
	return func(l *Loader) error {
		if size < 1 {
			return fmt.Errorf("%w: got %d", ErrInvalidBatchSize, size)
		}

		l.batchSize = size

		return nil
	}
}

// WithTruncate empties all data lake tables before loading.
func WithTruncate(truncate bool) Option {
	return func(l *Loader) error {
		l.truncate = truncate
		return nil
	}
}

// WithLogger sets the logger for the Loader.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL statements with execution timing (development use)
// Info level: row counts and durations per loaded entity set
// Warn level: non-critical issues like failing to close result rows
// Error level: failures that abort the load.
func WithLogger(logger Logger) Option {
	return func(l *Loader) error {
		l.logger = logger
		return nil
	}
}
