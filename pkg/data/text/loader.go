// Package text loads SEAREV simulation traces from the whitespace
// delimited text files produced by the hydrodynamic simulator: four
// header lines followed by rows of (time, elevation, angle, speed,
// torque).
package text

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/wavegrid/searev/pkg/searev"
)

const (
	headerLines = 4
	columns     = 5
)

// Load reads a trace file and assembles the dataset, regenerating the
// time vector on the dt grid.
func Load(path string, dt float64) (*searev.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open trace %q: %w", path, err)
	}
	defer f.Close()

	ds, err := LoadFrom(f, dt)
	if err != nil {
		return nil, fmt.Errorf("trace %q: %w", path, err)
	}
	return ds, nil
}

// LoadFrom parses a trace from r.
func LoadFrom(r io.Reader, dt float64) (*searev.Dataset, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	cols := make([][]float64, columns)
	line := 0
	for scanner.Scan() {
		line++
		if line <= headerLines {
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != columns {
			return nil, fmt.Errorf("line %d: %d columns, want %d", line, len(fields), columns)
		}
		for i, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			cols[i] = append(cols[i], v)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read trace: %w", err)
	}
	if len(cols[0]) == 0 {
		return nil, fmt.Errorf("trace holds no samples")
	}

	return searev.NewDataset(cols[0], cols[1], cols[2], cols[3], cols[4], dt)
}
