package mbr

import "fmt"

// Validate checks the layout of the non-empty entries: no two may share a
// sector and none may end past the 32-bit LBA range. FromBytes does not call
// it; decoding accepts any table whose type tags are recognized.
func (m *MasterBootRecord) Validate() error {
	for i, entry := range m.entries {
		if entry.PartitionType.IsUnused() {
			continue
		}
		if entry.EndLBA() > 1<<32 {
			return fmt.Errorf("%w: slot %d ends at sector %d", ErrPartitionEndOutOfRange, i, entry.EndLBA())
		}
		for j := i + 1; j < MaxEntries; j++ {
			if entry.Overlaps(m.entries[j]) {
				return fmt.Errorf("%w: slots %d and %d", ErrPartitionsOverlap, i, j)
			}
		}
	}
	return nil
}
