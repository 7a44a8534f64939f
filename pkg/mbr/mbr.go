// Package mbr decodes and encodes the Master Boot Record found in the first
// 512-byte sector of legacy PC-partitioned media.
//
// Only the partition type tag, first LBA and sector count of each of the four
// primary entries are modeled. The bootstrap code, boot indicator and CHS
// fields are neither interpreted nor written.
package mbr

import (
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-mbr/internal/types"
	"github.com/deploymenttheory/go-mbr/pkg/partitions"
)

const (
	// BufferSize is the size of an encoded Master Boot Record.
	BufferSize = types.MbrBufferSize
	// MaxEntries is the number of primary partition slots.
	MaxEntries = types.MbrMaxEntries
)

// MasterBootRecord holds the four primary partition table entries.
type MasterBootRecord struct {
	entries [MaxEntries]partitions.PartitionTableEntry
}

// Compile-time check
var _ partitions.PartitionTable = (*MasterBootRecord)(nil)

// New creates a record from caller-supplied entries.
func New(entries [MaxEntries]partitions.PartitionTableEntry) *MasterBootRecord {
	return &MasterBootRecord{entries: entries}
}

// Empty creates a record whose slots are all unused.
func Empty() *MasterBootRecord {
	m := &MasterBootRecord{}
	for i := range m.entries {
		m.entries[i] = partitions.EmptyPartitionTableEntry()
	}
	return m
}

// FromBytes validates and decodes a Master Boot Record. Only the first
// BufferSize bytes are consulted. Slots are decoded in ascending order and
// decoding stops at the first slot with an unrecognized type tag.
func FromBytes(buffer []byte) (*MasterBootRecord, error) {
	if len(buffer) < BufferSize {
		return nil, &BufferWrongSizeError{Expected: BufferSize, Actual: len(buffer)}
	}

	suffix := [2]byte{buffer[types.MbrSignatureOffset], buffer[types.MbrSignatureOffset+1]}
	if suffix != [2]byte{types.MbrSignature0, types.MbrSignature1} {
		return nil, &InvalidSuffixError{Actual: suffix}
	}

	var entries [MaxEntries]partitions.PartitionTableEntry
	for idx := 0; idx < MaxEntries; idx++ {
		offset := types.MbrEntryOffset(idx)

		partitionType := partitions.FromMBRTagByte(buffer[offset+types.MbrEntryTypeOffset])
		if partitionType.IsUnknown() {
			return nil, &UnsupportedPartitionError{Tag: partitionType.Tag}
		}

		lba := binary.LittleEndian.Uint32(buffer[offset+types.MbrEntryLBAOffset : offset+types.MbrEntryLBAOffset+4])
		count := binary.LittleEndian.Uint32(buffer[offset+types.MbrEntrySectorCountOffset : offset+types.MbrEntrySectorCountOffset+4])
		entries[idx] = partitions.NewPartitionTableEntry(partitionType, lba, count)
	}

	return &MasterBootRecord{entries: entries}, nil
}

// Serialize writes the signature and the four entries into buffer and returns
// the number of bytes in the sector region it covers. The bootstrap region and
// the unmodeled bytes of each entry are left untouched. Nothing is written when
// the buffer is too small.
func (m *MasterBootRecord) Serialize(buffer []byte) (int, error) {
	if len(buffer) < BufferSize {
		return 0, &BufferWrongSizeError{Expected: BufferSize, Actual: len(buffer)}
	}

	buffer[types.MbrSignatureOffset] = types.MbrSignature0
	buffer[types.MbrSignatureOffset+1] = types.MbrSignature1

	for idx, entry := range m.entries {
		offset := types.MbrEntryOffset(idx)

		buffer[offset+types.MbrEntryTypeOffset] = entry.PartitionType.MBRTagByte()
		binary.LittleEndian.PutUint32(buffer[offset+types.MbrEntryLBAOffset:offset+types.MbrEntryLBAOffset+4], entry.LogicalBlockAddress)
		binary.LittleEndian.PutUint32(buffer[offset+types.MbrEntrySectorCountOffset:offset+types.MbrEntrySectorCountOffset+4], entry.SectorCount)
	}

	return BufferSize, nil
}

// Bytes encodes the record into a freshly zeroed sector.
func (m *MasterBootRecord) Bytes() [BufferSize]byte {
	var sector [BufferSize]byte
	// a full-size array cannot fail the length check
	_, _ = m.Serialize(sector[:])
	return sector
}

// Size returns the size of the encoded record.
func (m *MasterBootRecord) Size() int {
	return BufferSize
}

// PartitionTableEntries returns a copy of the entries in slot order.
func (m *MasterBootRecord) PartitionTableEntries() []partitions.PartitionTableEntry {
	entries := make([]partitions.PartitionTableEntry, MaxEntries)
	copy(entries, m.entries[:])
	return entries
}

// Entries returns the fixed-size entry array by value.
func (m *MasterBootRecord) Entries() [MaxEntries]partitions.PartitionTableEntry {
	return m.entries
}

// Entry returns the entry in slot index.
func (m *MasterBootRecord) Entry(index int) (partitions.PartitionTableEntry, error) {
	if index < 0 || index >= MaxEntries {
		return partitions.PartitionTableEntry{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return m.entries[index], nil
}

// SetEntry replaces the entry in slot index.
func (m *MasterBootRecord) SetEntry(index int, entry partitions.PartitionTableEntry) error {
	if index < 0 || index >= MaxEntries {
		return fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	m.entries[index] = entry
	return nil
}
