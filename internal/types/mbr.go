package types

// Master Boot Record layout
// The first sector of a legacy-partitioned device holds the bootstrap code,
// a table of four primary partition entries and a two byte signature.

// MbrBufferSize is the size, in bytes, of a Master Boot Record sector.
const MbrBufferSize = 512

// MbrBootstrapSize is the size of the opaque bootstrap code region at the start of the sector.
const MbrBootstrapSize = 446

// MbrTableOffset is the byte offset of the first partition table entry.
const MbrTableOffset = MbrBootstrapSize

// MbrEntrySize is the size, in bytes, of a single partition table entry.
const MbrEntrySize = 16

// MbrSignatureOffset is the byte offset of the two byte boot signature.
const MbrSignatureOffset = MbrBufferSize - 2

// MbrMaxEntries is the number of primary partition entries in the table.
// (512 - 446 - 2) / 16 = 4
const MbrMaxEntries = (MbrBufferSize - MbrTableOffset - 2) / MbrEntrySize

// Boot signature bytes every valid Master Boot Record ends with.
const (
	MbrSignature0 byte = 0x55
	MbrSignature1 byte = 0xAA
)

// Partition table entry field offsets, relative to the start of the entry.
const (
	// MbrEntryBootIndicatorOffset is the boot indicator byte (not modeled).
	MbrEntryBootIndicatorOffset = 0
	// MbrEntryCHSStartOffset is the 3 byte CHS address of the first sector (not modeled).
	MbrEntryCHSStartOffset = 1
	// MbrEntryTypeOffset is the partition type tag byte.
	MbrEntryTypeOffset = 4
	// MbrEntryCHSEndOffset is the 3 byte CHS address of the last sector (not modeled).
	MbrEntryCHSEndOffset = 5
	// MbrEntryLBAOffset is the little-endian uint32 first LBA of the partition.
	MbrEntryLBAOffset = 8
	// MbrEntrySectorCountOffset is the little-endian uint32 length of the partition in sectors.
	MbrEntrySectorCountOffset = 12
)

// MbrEntryOffset returns the byte offset of the partition table entry at index.
func MbrEntryOffset(index int) int {
	return MbrTableOffset + index*MbrEntrySize
}

// Partition type tag bytes recognized by the decoder.
const (
	MbrTagUnused     byte = 0x00
	MbrTagFat12      byte = 0x01
	MbrTagFat16Small byte = 0x04
	MbrTagFat16      byte = 0x06
	MbrTagNtfsExfat  byte = 0x07
	MbrTagFat32CHS   byte = 0x0B
	MbrTagFat32LBA   byte = 0x0C
	MbrTagFat16LBA   byte = 0x0E
	MbrTagFat32Hid   byte = 0x1B
	MbrTagFat32LBAHi byte = 0x1C
	MbrTagLinux      byte = 0x83
	MbrTagHfsPlus    byte = 0xAF
)

// DefaultSectorSize is the logical sector size assumed when converting sector counts to bytes.
const DefaultSectorSize = 512
