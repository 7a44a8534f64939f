package partitions

// PartitionTableEntry describes one primary partition by its type, first
// logical block address and length in sectors. Entries are values; copy and
// compare them directly.
type PartitionTableEntry struct {
	PartitionType       PartitionType `json:"partition_type" yaml:"partition_type"`
	LogicalBlockAddress uint32        `json:"logical_block_address" yaml:"logical_block_address"`
	SectorCount         uint32        `json:"sector_count" yaml:"sector_count"`
}

// NewPartitionTableEntry creates an entry from its fields.
func NewPartitionTableEntry(partitionType PartitionType, lba uint32, sectorCount uint32) PartitionTableEntry {
	return PartitionTableEntry{
		PartitionType:       partitionType,
		LogicalBlockAddress: lba,
		SectorCount:         sectorCount,
	}
}

// EmptyPartitionTableEntry returns the placeholder for an unused slot.
func EmptyPartitionTableEntry() PartitionTableEntry {
	return NewPartitionTableEntry(Unused(), 0, 0)
}

// IsEmpty reports whether the entry is the unused placeholder.
func (e PartitionTableEntry) IsEmpty() bool {
	return e == EmptyPartitionTableEntry()
}

// EndLBA returns the first sector past the partition. It is computed in 64
// bits so that it never wraps.
func (e PartitionTableEntry) EndLBA() uint64 {
	return uint64(e.LogicalBlockAddress) + uint64(e.SectorCount)
}

// SizeBytes returns the partition length in bytes for the given sector size.
func (e PartitionTableEntry) SizeBytes(sectorSize uint64) uint64 {
	return uint64(e.SectorCount) * sectorSize
}

// Overlaps reports whether two non-empty entries share at least one sector.
func (e PartitionTableEntry) Overlaps(other PartitionTableEntry) bool {
	if e.PartitionType.IsUnused() || other.PartitionType.IsUnused() {
		return false
	}
	if e.SectorCount == 0 || other.SectorCount == 0 {
		return false
	}
	return uint64(e.LogicalBlockAddress) < other.EndLBA() &&
		uint64(other.LogicalBlockAddress) < e.EndLBA()
}

// PartitionTable is implemented by any on-disk partition table.
type PartitionTable interface {
	// Size returns the size, in bytes, of the encoded table.
	Size() int

	// PartitionTableEntries returns the entries in slot order.
	PartitionTableEntries() []PartitionTableEntry
}
