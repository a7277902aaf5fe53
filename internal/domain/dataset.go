package domain

import "fmt"

// DatasetKind selects one of the KDD Cup 1999 splits.
type DatasetKind string

const (
	DatasetTest  DatasetKind = "test"
	DatasetTrain DatasetKind = "train"
)

// ParseDatasetKind accepts "test" or "train".
func ParseDatasetKind(s string) (DatasetKind, error) {
	switch DatasetKind(s) {
	case DatasetTest, DatasetTrain:
		return DatasetKind(s), nil
	default:
		return "", fmt.Errorf("unknown dataset kind %q (want test or train)", s)
	}
}

// ValidationSummary is the shape report of a loaded dataset.
type ValidationSummary struct {
	Kind          DatasetKind `json:"kind"`
	Rows          int         `json:"rows"`
	Columns       int         `json:"columns"`
	MissingValues int         `json:"missing_values"`
}
