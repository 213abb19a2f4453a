package csvsink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/synthetic-datalake-go/datalake"
)

const (
	// ManifestFileName is the name of the manifest written next to the CSV files.
	ManifestFileName = "manifest.json"

	logMsgSetWritten      = "entity set written"
	logMsgManifestWritten = "manifest written"
	logMsgStaleRemoved    = "stale file removed"
	logAttrSet            = "set"
	logAttrRows           = "rows"
	logAttrPath           = "path"
	logAttrDurationMS     = "duration_ms"
)

var ErrEmptyOutputDir = errors.New("output directory must not be empty")
var ErrNilClock = errors.New("clock must not be nil")

// Logger interface for progress reporting, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Option defines a functional option for configuring the Sink.
type Option func(*Sink) error

// WithLogger sets the logger for the Sink.
// Info level: one message per written file with its row count and duration.
func WithLogger(logger Logger) Option {
	return func(s *Sink) error {
		s.logger = logger
		return nil
	}
}

// WithClock sets the source of the manifest's generated_at timestamp.
func WithClock(clock func() time.Time) Option {
	return func(s *Sink) error {
		if clock == nil {
			return ErrNilClock
		}

		s.clock = clock

		return nil
	}
}

// WithMetadata adds a key/value pair to the manifest, e.g. the seed or the id strategy of a run.
func WithMetadata(key, value string) Option {
	return func(s *Sink) error {
		s.metadata[key] = value
		return nil
	}
}

// Manifest describes the content of an output directory.
type Manifest struct {
	GeneratedAt time.Time                     `json:"generated_at"`
	Files       map[datalake.EntitySet]string `json:"files"`
	RowCounts   map[datalake.EntitySet]int    `json:"row_counts"`
	Metadata    map[string]string             `json:"metadata,omitempty"`
}

// Sink writes datasets into one output directory.
type Sink struct {
	dir      string
	clock    func() time.Time
	metadata map[string]string
	logger   Logger
}

// NewSink creates a Sink writing into dir. The directory is created on Write if it does not exist.
func NewSink(dir string, options ...Option) (*Sink, error) {
	if dir == "" {
		return nil, ErrEmptyOutputDir
	}

	s := &Sink{
		dir:      dir,
		clock:    time.Now,
		metadata: make(map[string]string),
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Dir returns the output directory.
func (s *Sink) Dir() string {
	return s.dir
}

// Write replaces the CSV files of the output directory with the given dataset and writes the manifest.
// Without market data, a market_data.csv left over from an earlier run is removed.
func (s *Sink) Write(dataset datalake.Dataset) (Manifest, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Manifest{}, fmt.Errorf("failed to create output directory: %w", err)
	}

	manifest := Manifest{
		GeneratedAt: s.clock().UTC().Truncate(time.Second),
		Files:       make(map[datalake.EntitySet]string),
		RowCounts:   make(map[datalake.EntitySet]int),
		Metadata:    s.metadata,
	}

	writers := []func() error{
		func() error { return writeTable(s, &manifest, clientsTable, dataset.Clients) },
		func() error { return writeTable(s, &manifest, productsTable, dataset.Products) },
		func() error { return writeTable(s, &manifest, transactionsTable, dataset.Transactions) },
		func() error { return writeTable(s, &manifest, interactionsTable, dataset.Interactions) },
	}

	if len(dataset.MarketData) > 0 {
		writers = append(writers, func() error { return writeTable(s, &manifest, marketDataTable, dataset.MarketData) })
	} else {
		writers = append(writers, s.removeStaleMarketData)
	}

	for _, write := range writers {
		if err := write(); err != nil {
			return Manifest{}, err
		}
	}

	if err := s.writeManifest(manifest); err != nil {
		return Manifest{}, err
	}

	return manifest, nil
}

func writeTable[T any](s *Sink, manifest *Manifest, tbl table[T], rows []T) (err error) {
	start := time.Now()
	path := filepath.Join(s.dir, FileName(tbl.set))

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close %s: %w", path, closeErr))
		}
	}()

	w := csv.NewWriter(file)

	if err = w.Write(tbl.header); err != nil {
		return fmt.Errorf("failed to write header of %s: %w", path, err)
	}

	for _, row := range rows {
		if err = w.Write(tbl.encode(row)); err != nil {
			return fmt.Errorf("failed to write record to %s: %w", path, err)
		}
	}

	w.Flush()
	if err = w.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}

	manifest.Files[tbl.set] = FileName(tbl.set)
	manifest.RowCounts[tbl.set] = len(rows)

	if s.logger != nil {
		s.logger.Info(logMsgSetWritten,
			logAttrSet, string(tbl.set),
			logAttrRows, len(rows),
			logAttrPath, path,
			logAttrDurationMS, float64(time.Since(start).Microseconds())/1000.0,
		)
	}

	return nil
}

func (s *Sink) removeStaleMarketData() error {
	path := filepath.Join(s.dir, FileName(datalake.EntitySetMarketData))

	err := os.Remove(path)
	switch {
	case err == nil:
		if s.logger != nil {
			s.logger.Debug(logMsgStaleRemoved, logAttrPath, path)
		}
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("failed to remove stale %s: %w", path, err)
	}
}

func (s *Sink) writeManifest(manifest Manifest) error {
	path := filepath.Join(s.dir, ManifestFileName)

	data, err := jsoniter.ConfigFastest.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err = os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	if s.logger != nil {
		s.logger.Debug(logMsgManifestWritten, logAttrPath, path)
	}

	return nil
}
