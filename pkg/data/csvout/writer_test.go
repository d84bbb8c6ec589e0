package csvout

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf,
		[]string{"P_sto", "P_grid"},
		[]float64{0.5, -0.25},
		[]float64{1.0, 1.25},
	)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "P_sto,P_grid", lines[0])
	assert.Equal(t, "0.500000000000,1.000000000000", lines[1])
	assert.Equal(t, "-0.250000000000,1.250000000000", lines[2])
}

func TestWrite_mismatches(t *testing.T) {
	var buf bytes.Buffer

	err := Write(&buf, []string{"a"}, []float64{1}, []float64{2})
	assert.ErrorIs(t, err, ErrColumnMismatch)

	err = Write(&buf, []string{"a", "b"}, []float64{1, 2}, []float64{3})
	assert.ErrorIs(t, err, ErrColumnMismatch)

	err = Write(&buf, nil)
	assert.ErrorIs(t, err, ErrColumnMismatch)
}
