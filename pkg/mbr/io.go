package mbr

import (
	"errors"
	"fmt"
	"io"
)

// Read reads one sector from r at off and decodes it. A short read is
// reported as a BufferWrongSizeError carrying the number of bytes read.
func Read(r io.ReaderAt, off int64) (*MasterBootRecord, error) {
	sector := make([]byte, BufferSize)
	n, err := r.ReadAt(sector, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read sector at offset %d: %w", off, err)
	}
	return FromBytes(sector[:n])
}

// Write encodes the record over the existing sector at off, preserving the
// bootstrap code and unmodeled entry bytes already stored there.
func Write(rw ReaderWriterAt, off int64, m *MasterBootRecord) error {
	sector := make([]byte, BufferSize)
	if _, err := rw.ReadAt(sector, off); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to read sector at offset %d: %w", off, err)
	}
	if _, err := m.Serialize(sector); err != nil {
		return err
	}
	if _, err := rw.WriteAt(sector, off); err != nil {
		return fmt.Errorf("failed to write sector at offset %d: %w", off, err)
	}
	return nil
}

// ReaderWriterAt is satisfied by *os.File and other random access stores.
type ReaderWriterAt interface {
	io.ReaderAt
	io.WriterAt
}
