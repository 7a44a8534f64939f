package inspect

import (
	"fmt"

	"github.com/deploymenttheory/go-mbr/pkg/partitions"
)

// Request represents an MBR inspection request
type Request struct {
	ImagePath string

	// Report overlapping or out of range partitions as warnings
	CheckLayout bool

	// Include unused slots in the output
	ShowUnused bool
}

// Response represents the decoded partition table of an image
type Response struct {
	ImagePath  string        `json:"image_path" yaml:"image_path"`
	Offset     int64         `json:"offset" yaml:"offset"`
	ImageSize  int64         `json:"image_size" yaml:"image_size"`
	SectorSize int           `json:"sector_size" yaml:"sector_size"`
	RecordSize int           `json:"record_size" yaml:"record_size"`
	Entries    []EntryReport `json:"entries" yaml:"entries"`
	UsedSlots  int           `json:"used_slots" yaml:"used_slots"`
	Warnings   []string      `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// EntryReport describes one slot of the partition table
type EntryReport struct {
	Slot      int                      `json:"slot" yaml:"slot"`
	Type      partitions.PartitionType `json:"type" yaml:"type"`
	StartLBA  uint32                   `json:"start_lba" yaml:"start_lba"`
	Sectors   uint32                   `json:"sectors" yaml:"sectors"`
	EndLBA    uint64                   `json:"end_lba" yaml:"end_lba"`
	SizeBytes uint64                   `json:"size_bytes" yaml:"size_bytes"`
}

// NewEntryReport builds the report for the entry in slot.
func NewEntryReport(slot int, entry partitions.PartitionTableEntry, sectorSize int) EntryReport {
	return EntryReport{
		Slot:      slot,
		Type:      entry.PartitionType,
		StartLBA:  entry.LogicalBlockAddress,
		Sectors:   entry.SectorCount,
		EndLBA:    entry.EndLBA(),
		SizeBytes: entry.SizeBytes(uint64(sectorSize)),
	}
}

// IsUnused reports whether the slot holds no partition
func (e EntryReport) IsUnused() bool {
	return e.Type.IsUnused()
}

// TagHex returns the type tag byte formatted as 0xNN
func (e EntryReport) TagHex() string {
	return fmt.Sprintf("0x%02X", e.Type.MBRTagByte())
}

// FormatSize returns human-readable partition size
func (e EntryReport) FormatSize() string {
	return FormatBytes(e.SizeBytes)
}

// FormatBytes formats byte count as human readable
func FormatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
