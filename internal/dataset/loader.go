// Package dataset reads the KDD Cup 1999 intrusion-detection CSV splits.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/xela07ax/netsec-analytics/internal/domain"
)

// DefaultDir is where the raw splits are expected relative to the working directory.
const DefaultDir = "data/raw/kdd_cup_1999"

var (
	ErrEmpty         = errors.New("dataset: no header row")
	ErrTooManyFields = errors.New("dataset: record has more fields than the header")
)

// Frame is an in-memory table: one header plus string records.
type Frame struct {
	Header []string
	Rows   [][]string
}

// Shape returns rows x columns, excluding the header.
func (f *Frame) Shape() (rows, cols int) {
	if f == nil {
		return 0, 0
	}
	return len(f.Rows), len(f.Header)
}

// ReadCSV loads path fully into memory. Short records are padded with empty
// cells, which Validate counts as missing; longer records are an error.
func ReadCSV(path string) (*Frame, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("dataset: %s: %w", path, ErrEmpty)
	}
	if err != nil {
		return nil, fmt.Errorf("dataset: read header of %s: %w", path, err)
	}

	var rows [][]string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: parse %s: %w", path, err)
		}

		switch {
		case len(record) > len(header):
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("dataset: %s line %d: %w (%d > %d)",
				path, line, ErrTooManyFields, len(record), len(header))
		case len(record) < len(header):
			padded := make([]string, len(header))
			copy(padded, record)
			record = padded
		}
		rows = append(rows, record)
	}
	return &Frame{Header: header, Rows: rows}, nil
}

// Loader resolves a split to its file under Dir.
type Loader struct {
	Dir    string
	logger *zap.Logger
}

func NewLoader(dir string, logger *zap.Logger) *Loader {
	if dir == "" {
		dir = DefaultDir
	}
	return &Loader{Dir: dir, logger: logger.Named("dataset")}
}

// Path returns the CSV location of kind.
func (l *Loader) Path(kind domain.DatasetKind) string {
	name := "Test_data.csv"
	if kind == domain.DatasetTrain {
		name = "Train_data.csv"
	}
	return filepath.Join(l.Dir, name)
}

// Load returns nil on any failure after logging the cause. Callers must
// check for nil before using the frame.
func (l *Loader) Load(kind domain.DatasetKind) *Frame {
	path := l.Path(kind)
	frame, err := ReadCSV(path)
	if err != nil {
		l.logger.Error("error loading data",
			zap.String("kind", string(kind)),
			zap.String("path", path),
			zap.Error(err))
		return nil
	}

	rows, cols := frame.Shape()
	l.logger.Info("loaded data",
		zap.String("kind", string(kind)),
		zap.Int("rows", rows),
		zap.Int("columns", cols))
	return frame
}

// naTokens mirrors the strings pandas treats as missing by default.
var naTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsMissing reports whether a cell counts as a missing value.
func IsMissing(cell string) bool {
	_, ok := naTokens[cell]
	return ok
}

// Validate summarizes the frame; a nil frame yields zeros.
func Validate(kind domain.DatasetKind, f *Frame) domain.ValidationSummary {
	rows, cols := f.Shape()
	summary := domain.ValidationSummary{Kind: kind, Rows: rows, Columns: cols}
	if f == nil {
		return summary
	}
	for _, row := range f.Rows {
		for _, cell := range row {
			if IsMissing(cell) {
				summary.MissingValues++
			}
		}
	}
	return summary
}
