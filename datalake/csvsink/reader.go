package csvsink

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	jsoniter "github.com/json-iterator/go"

	"github.com/AntonStoeckl/synthetic-datalake-go/datalake"
)

var ErrUnexpectedHeader = errors.New("unexpected csv header")
var ErrMalformedRecord = errors.New("malformed csv record")
var ErrRowCountMismatch = errors.New("row count differs from manifest")

// ReadDataset reads the CSV files of dir back into a Dataset.
// The market data file is optional; all other files must exist.
func ReadDataset(dir string) (datalake.Dataset, error) {
	var dataset datalake.Dataset
	var err error

	if dataset.Clients, err = readTable(dir, clientsTable, true); err != nil {
		return datalake.Dataset{}, err
	}

	if dataset.Products, err = readTable(dir, productsTable, true); err != nil {
		return datalake.Dataset{}, err
	}

	if dataset.Transactions, err = readTable(dir, transactionsTable, true); err != nil {
		return datalake.Dataset{}, err
	}

	if dataset.Interactions, err = readTable(dir, interactionsTable, true); err != nil {
		return datalake.Dataset{}, err
	}

	if dataset.MarketData, err = readTable(dir, marketDataTable, false); err != nil {
		return datalake.Dataset{}, err
	}

	return dataset, nil
}

func readTable[T any](dir string, tbl table[T], required bool) ([]T, error) {
	path := filepath.Join(dir, FileName(tbl.set))

	file, err := os.Open(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() {
		_ = file.Close() // read-only, nothing to lose
	}()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(tbl.header)
	r.ReuseRecord = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	if !slices.Equal(header, tbl.header) {
		return nil, fmt.Errorf("%w in %s: got %v, want %v", ErrUnexpectedHeader, path, header, tbl.header)
	}

	rows := make([]T, 0)
	for line := 2; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}

		row, err := tbl.decode(record)
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// ReadManifest reads the manifest of dir.
func ReadManifest(dir string) (Manifest, error) {
	path := filepath.Join(dir, ManifestFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("failed to read manifest: %w", err)
	}

	var manifest Manifest
	if err = jsoniter.ConfigFastest.Unmarshal(data, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	return manifest, nil
}

// CompareRowCounts checks that the dataset holds as many records per set as the manifest recorded.
// Every mismatch is reported, joined into one error wrapping ErrRowCountMismatch.
func CompareRowCounts(manifest Manifest, dataset datalake.Dataset) error {
	actual := dataset.RowCounts()
	var errs []error

	for _, set := range datalake.AllEntitySets() {
		expected := manifest.RowCounts[set]
		if actual[set] != expected {
			errs = append(errs, fmt.Errorf("%w: %s has %d rows, manifest says %d", ErrRowCountMismatch, set, actual[set], expected))
		}
	}

	return errors.Join(errs...)
}
