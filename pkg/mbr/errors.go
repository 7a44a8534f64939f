package mbr

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error below matches its sentinel with errors.Is.
var (
	ErrBufferWrongSize        = errors.New("mbr: buffer wrong size")
	ErrInvalidSuffix          = errors.New("mbr: invalid signature")
	ErrUnsupportedPartition   = errors.New("mbr: unsupported partition type")
	ErrIndexOutOfRange        = errors.New("mbr: partition index out of range")
	ErrPartitionsOverlap      = errors.New("mbr: partitions overlap")
	ErrPartitionEndOutOfRange = errors.New("mbr: partition ends beyond 32-bit LBA range")
)

// BufferWrongSizeError is returned when a buffer is shorter than a sector.
type BufferWrongSizeError struct {
	Expected int
	Actual   int
}

func (e *BufferWrongSizeError) Error() string {
	return fmt.Sprintf("%v: expected at least %d bytes, got %d", ErrBufferWrongSize, e.Expected, e.Actual)
}

func (e *BufferWrongSizeError) Is(target error) bool {
	return target == ErrBufferWrongSize
}

// InvalidSuffixError is returned when the last two bytes of the sector are not 0x55 0xAA.
type InvalidSuffixError struct {
	Actual [2]byte
}

func (e *InvalidSuffixError) Error() string {
	return fmt.Sprintf("%v: expected 0x55 0xAA, got 0x%02X 0x%02X", ErrInvalidSuffix, e.Actual[0], e.Actual[1])
}

func (e *InvalidSuffixError) Is(target error) bool {
	return target == ErrInvalidSuffix
}

// UnsupportedPartitionError is returned for the first slot whose type tag is not recognized.
type UnsupportedPartitionError struct {
	Tag byte
}

func (e *UnsupportedPartitionError) Error() string {
	return fmt.Sprintf("%v: tag 0x%02X", ErrUnsupportedPartition, e.Tag)
}

func (e *UnsupportedPartitionError) Is(target error) bool {
	return target == ErrUnsupportedPartition
}
