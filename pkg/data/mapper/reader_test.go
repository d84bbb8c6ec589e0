package mapper

import (
	"os"
	"path/filepath"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSamples(t *testing.T, samples []BinarySample) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.bin")

	var buf []byte
	for i := range samples {
		record := (*[unsafe.Sizeof(BinarySample{})]byte)(unsafe.Pointer(&samples[i]))
		buf = append(buf, record[:]...)
	}
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func TestReader(t *testing.T) {
	samples := []BinarySample{
		{Time: 0, Elevation: 0.1, Angle: 0.01, Speed: 0.5, Torque: 2e6},
		{Time: 0.1, Elevation: 0.2, Angle: 0.02, Speed: 0.6, Torque: 2.4e6},
	}
	path := writeSamples(t, samples)

	r := NewReader[BinarySample](path)
	require.NoError(t, r.Open())
	defer r.Close()

	count, err := r.EntryCount()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	var got BinarySample
	require.NoError(t, r.Read(1, &got))
	assert.Equal(t, samples[1], got)

	assert.ErrorIs(t, r.Read(2, &got), ErrEOF)
}

func TestReader_truncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 17), 0o644))

	r := NewReader[BinarySample](path)
	_, err := r.EntryCount()
	assert.Error(t, err)
}

func TestReadDataset(t *testing.T) {
	samples := []BinarySample{
		{Time: 0, Speed: 0.5, Torque: 2e6},
		{Time: 0.1, Speed: 0.6, Torque: 2.4e6},
		{Time: 0.2, Speed: 0.4, Torque: 1.6e6},
	}
	path := writeSamples(t, samples)

	r := NewReader[BinarySample](path)
	require.NoError(t, r.Open())
	defer r.Close()

	ds, err := ReadDataset(r, 0.1)
	require.NoError(t, err)
	require.Equal(t, 3, ds.Len())
	assert.Equal(t, []float64{0.5, 0.6, 0.4}, ds.Speed)
	assert.Equal(t, []float64{0, 0.1, 0.2}, ds.Time)
}
