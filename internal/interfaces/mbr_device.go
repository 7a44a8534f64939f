// File: internal/interfaces/mbr_device.go
package interfaces

import (
	"io"

	"github.com/deploymenttheory/go-mbr/pkg/mbr"
)

// MBRDeviceReader provides methods for reading the Master Boot Record of a device
type MBRDeviceReader interface {
	// ReadMBR reads and decodes the MBR sector
	ReadMBR() (*mbr.MasterBootRecord, error)

	// Offset returns the byte offset of the MBR sector within the device
	Offset() int64

	// Size returns the total size of the device in bytes
	Size() int64

	// Path returns the system path to the device
	Path() string
}

// MBRDeviceWriter provides methods for writing the Master Boot Record of a device
type MBRDeviceWriter interface {
	// WriteMBR encodes the record over the MBR sector
	WriteMBR(record *mbr.MasterBootRecord) error

	// Sync ensures all pending writes are committed to storage
	Sync() error

	// IsWritable checks if the device was opened for writing
	IsWritable() bool
}

// MBRDevice represents a complete MBR device interface
type MBRDevice interface {
	MBRDeviceReader
	MBRDeviceWriter
	io.Closer
}
