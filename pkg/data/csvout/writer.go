// Package csvout dumps labelled numeric series as delimited text, the
// interchange format consumed by external plotting tools.
package csvout

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

var ErrColumnMismatch = errors.New("series differ in length")

// Write emits one header row of labels followed by one row per sample,
// twelve digits after the decimal point. Labels and series must pair
// up and all series must share a length.
func Write(w io.Writer, labels []string, series ...[]float64) error {
	if len(labels) != len(series) {
		return fmt.Errorf("%w: %d labels for %d series", ErrColumnMismatch, len(labels), len(series))
	}
	if len(series) == 0 {
		return fmt.Errorf("%w: no series", ErrColumnMismatch)
	}
	n := len(series[0])
	for i, s := range series {
		if len(s) != n {
			return fmt.Errorf("%w: %q has %d samples, %q has %d", ErrColumnMismatch, labels[i], len(s), labels[0], n)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(labels); err != nil {
		return err
	}
	record := make([]string, len(series))
	for row := 0; row < n; row++ {
		for col, s := range series {
			record[col] = strconv.FormatFloat(s[row], 'f', 12, 64)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile writes the series to a file, creating or truncating it.
func WriteFile(path string, labels []string, series ...[]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %q: %w", path, err)
	}
	if err := Write(f, labels, series...); err != nil {
		_ = f.Close()
		return fmt.Errorf("unable to write %q: %w", path, err)
	}
	return f.Close()
}
