// Package mapper reads packed binary trace records through a memory
// mapped file, for traces converted once from text and re-read many
// times during fitting experiments.
package mapper

import (
	"errors"
	"fmt"
	"io"
	"os"
	"unsafe"

	"golang.org/x/exp/mmap"
)

var ErrEOF = errors.New("EOF")

// Reader maps a file of fixed-size records of type T. T must be a
// plain struct of float64 fields with no padding, since records are
// reinterpreted in place.
type Reader[T any] struct {
	path   string
	reader *mmap.ReaderAt
	buf    []byte
}

func NewReader[T any](path string) *Reader[T] {
	return &Reader[T]{
		path: path,
		buf:  make([]byte, int(unsafe.Sizeof(*new(T)))),
	}
}

func (r *Reader[T]) Open() error {
	var err error
	r.reader, err = mmap.Open(r.path)
	if err != nil {
		return fmt.Errorf("unable to open trace %q: %w", r.path, err)
	}
	return nil
}

func (r *Reader[T]) Close() {
	if r.reader != nil {
		_ = r.reader.Close()
	}
}

// Read fills data with the record at the given index. Past the last
// record it returns ErrEOF.
func (r *Reader[T]) Read(index int64, data *T) error {
	offset := index * int64(len(r.buf))

	n, err := r.reader.ReadAt(r.buf, offset)
	if err != nil && err != io.EOF {
		return fmt.Errorf("unable to read record %d: %w", index, err)
	}
	if n < len(r.buf) {
		return ErrEOF
	}

	*data = *(*T)(unsafe.Pointer(&r.buf[0]))
	return nil
}

// EntryCount reports how many whole records the file holds.
func (r *Reader[T]) EntryCount() (int64, error) {
	entrySize := int64(len(r.buf))

	info, err := os.Stat(r.path)
	if err != nil {
		return 0, fmt.Errorf("unable to stat trace %q: %w", r.path, err)
	}
	if info.Size()%entrySize != 0 {
		return 0, fmt.Errorf("trace %q: size %d is not a multiple of the %d-byte record", r.path, info.Size(), entrySize)
	}
	return info.Size() / entrySize, nil
}
