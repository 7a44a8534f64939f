package device

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/deploymenttheory/go-mbr/internal/interfaces"
	"github.com/deploymenttheory/go-mbr/pkg/mbr"
)

// ImageDevice provides access to the Master Boot Record of a disk image,
// block device or any other file.
type ImageDevice struct {
	file     *os.File
	path     string
	size     int64
	offset   int64 // Byte offset of the MBR sector within the file
	writable bool
	stats    *Statistics
}

// Compile-time check
var _ interfaces.MBRDevice = (*ImageDevice)(nil)

// Statistics tracks sector access on a device.
type Statistics struct {
	sectorsRead    int64
	sectorsWritten int64
	mu             sync.RWMutex
}

// SectorsRead returns the number of sectors read through the device.
func (s *Statistics) SectorsRead() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sectorsRead
}

// SectorsWritten returns the number of sectors written through the device.
func (s *Statistics) SectorsWritten() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sectorsWritten
}

// Open opens the file at path. The device is read-only unless writable is set.
func Open(path string, config *Config, writable bool) (*ImageDevice, error) {
	flag := os.O_RDONLY
	if writable {
		flag = os.O_RDWR
	}

	file, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open image %s", path)
	}

	return newImageDevice(file, path, config, writable)
}

// Create opens the file at path for writing, creating it when it does not exist
// and the config allows it. A new file is sized to hold the MBR sector.
func Create(path string, config *Config) (*ImageDevice, error) {
	if _, err := os.Stat(path); err == nil || !os.IsNotExist(err) || !config.CreateIfMissing {
		return Open(path, config, true)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create image %s", path)
	}
	if err := file.Truncate(config.SectorOffset + mbr.BufferSize); err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "failed to size image %s", path)
	}
	log.Debugf("created image %s (%d bytes)", path, config.SectorOffset+mbr.BufferSize)

	return newImageDevice(file, path, config, true)
}

func newImageDevice(file *os.File, path string, config *Config, writable bool) (*ImageDevice, error) {
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "failed to stat image %s", path)
	}

	if err := config.Validate(); err != nil {
		file.Close()
		return nil, err
	}

	d := &ImageDevice{
		file:     file,
		path:     path,
		size:     stat.Size(),
		offset:   config.SectorOffset,
		writable: writable,
		stats:    &Statistics{},
	}
	log.Debugf("opened %s: size %d bytes, MBR at offset %d (0x%x)", path, d.size, d.offset, d.offset)

	return d, nil
}

// ReadMBR reads and decodes the Master Boot Record.
func (d *ImageDevice) ReadMBR() (*mbr.MasterBootRecord, error) {
	record, err := mbr.Read(d.file, d.offset)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode MBR in %s", d.path)
	}
	d.stats.mu.Lock()
	d.stats.sectorsRead++
	d.stats.mu.Unlock()
	return record, nil
}

// WriteMBR encodes the record over the MBR sector, keeping the bootstrap code
// and unmodeled entry bytes already on disk.
func (d *ImageDevice) WriteMBR(record *mbr.MasterBootRecord) error {
	if !d.writable {
		return errors.Errorf("image %s is opened read-only", d.path)
	}
	if err := mbr.Write(d.file, d.offset, record); err != nil {
		return errors.Wrapf(err, "failed to write MBR to %s", d.path)
	}
	d.stats.mu.Lock()
	d.stats.sectorsWritten++
	if end := d.offset + mbr.BufferSize; end > d.size {
		d.size = end
	}
	d.stats.mu.Unlock()
	log.Debugf("wrote MBR to %s at offset %d", d.path, d.offset)
	return nil
}

// Sync commits written data to stable storage.
func (d *ImageDevice) Sync() error {
	return errors.Wrapf(d.file.Sync(), "failed to sync %s", d.path)
}

// Path returns the path the device was opened from.
func (d *ImageDevice) Path() string {
	return d.path
}

// Size returns the size of the underlying file.
func (d *ImageDevice) Size() int64 {
	d.stats.mu.RLock()
	defer d.stats.mu.RUnlock()
	return d.size
}

// Offset returns the byte offset of the MBR sector.
func (d *ImageDevice) Offset() int64 {
	return d.offset
}

// IsWritable reports whether the device was opened for writing.
func (d *ImageDevice) IsWritable() bool {
	return d.writable
}

// GetStats returns the access statistics.
func (d *ImageDevice) GetStats() *Statistics {
	return d.stats
}

// Close closes the underlying file.
func (d *ImageDevice) Close() error {
	if d.file != nil {
		return d.file.Close()
	}
	return nil
}
