// Package partitions models the partition table entries found in a Master Boot
// Record and the mapping between MBR type tag bytes and partition types.
package partitions

import (
	"fmt"
	"strings"

	"github.com/deploymenttheory/go-mbr/internal/types"
)

// Kind classifies the filesystem or usage convention of a partition.
type Kind uint8

const (
	KindUnused Kind = iota
	KindUnknown
	KindFat12
	KindFat16
	KindFat32
	KindLinuxExt
	KindHfsPlus
	KindIso9660
	KindNtfsExfat
)

var kindNames = map[Kind]string{
	KindUnused:    "Unused",
	KindUnknown:   "Unknown",
	KindFat12:     "Fat12",
	KindFat16:     "Fat16",
	KindFat32:     "Fat32",
	KindLinuxExt:  "LinuxExt",
	KindHfsPlus:   "HfsPlus",
	KindIso9660:   "Iso9660",
	KindNtfsExfat: "NtfsExfat",
}

// String returns the name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// ParseKind resolves a kind from its name. Matching is case-insensitive.
func ParseKind(name string) (Kind, error) {
	for k, n := range kindNames {
		if strings.EqualFold(n, name) {
			return k, nil
		}
	}
	return KindUnknown, fmt.Errorf("unknown partition kind: %q", name)
}

// PartitionType is a partition classification together with the tag byte it
// was decoded from. The tag is carried by every kind so that encoding always
// reproduces the original byte.
type PartitionType struct {
	Kind Kind
	Tag  byte
}

// Unused returns the type of an empty slot.
func Unused() PartitionType { return PartitionType{Kind: KindUnused} }

// Unknown returns a type for a tag outside the recognized set.
func Unknown(tag byte) PartitionType { return PartitionType{Kind: KindUnknown, Tag: tag} }

// Fat12 returns a FAT12 type carrying tag.
func Fat12(tag byte) PartitionType { return PartitionType{Kind: KindFat12, Tag: tag} }

// Fat16 returns a FAT16 type carrying tag.
func Fat16(tag byte) PartitionType { return PartitionType{Kind: KindFat16, Tag: tag} }

// Fat32 returns a FAT32 type carrying tag.
func Fat32(tag byte) PartitionType { return PartitionType{Kind: KindFat32, Tag: tag} }

// LinuxExt returns a Linux native (ext2/3/4) type carrying tag.
func LinuxExt(tag byte) PartitionType { return PartitionType{Kind: KindLinuxExt, Tag: tag} }

// HfsPlus returns an HFS+ type carrying tag.
func HfsPlus(tag byte) PartitionType { return PartitionType{Kind: KindHfsPlus, Tag: tag} }

// Iso9660 returns an ISO 9660 type carrying tag. No tag decodes back to it.
func Iso9660(tag byte) PartitionType { return PartitionType{Kind: KindIso9660, Tag: tag} }

// NtfsExfat returns an NTFS or exFAT type carrying tag.
func NtfsExfat(tag byte) PartitionType { return PartitionType{Kind: KindNtfsExfat, Tag: tag} }

// New builds a partition type of the given kind carrying tag. Unused always carries zero.
func New(kind Kind, tag byte) PartitionType {
	if kind == KindUnused {
		return Unused()
	}
	return PartitionType{Kind: kind, Tag: tag}
}

// FromMBRTagByte maps an MBR type tag byte to a partition type.
// Bytes outside the recognized set map to Unknown. Iso9660 has no tag byte.
func FromMBRTagByte(tag byte) PartitionType {
	switch tag {
	case types.MbrTagUnused:
		return Unused()
	case types.MbrTagFat12:
		return Fat12(tag)
	case types.MbrTagFat16Small, types.MbrTagFat16, types.MbrTagFat16LBA:
		return Fat16(tag)
	case types.MbrTagFat32CHS, types.MbrTagFat32LBA, types.MbrTagFat32Hid, types.MbrTagFat32LBAHi:
		return Fat32(tag)
	case types.MbrTagLinux:
		return LinuxExt(tag)
	case types.MbrTagNtfsExfat:
		return NtfsExfat(tag)
	case types.MbrTagHfsPlus:
		return HfsPlus(tag)
	default:
		return Unknown(tag)
	}
}

// MBRTagByte returns the tag byte to write for this partition type.
func (p PartitionType) MBRTagByte() byte {
	if p.Kind == KindUnused {
		return types.MbrTagUnused
	}
	return p.Tag
}

// IsUnused reports whether the type marks an unused table slot.
func (p PartitionType) IsUnused() bool {
	return p.Kind == KindUnused
}

// IsUnknown reports whether the tag byte was not recognized.
func (p PartitionType) IsUnknown() bool {
	return p.Kind == KindUnknown
}

// String renders the type as Kind(0xNN), or Unused.
func (p PartitionType) String() string {
	if p.Kind == KindUnused {
		return p.Kind.String()
	}
	return fmt.Sprintf("%s(0x%02X)", p.Kind, p.Tag)
}

// KnownTags returns the recognized tag bytes in decode table order.
func KnownTags() []byte {
	return []byte{
		types.MbrTagUnused,
		types.MbrTagFat12,
		types.MbrTagFat16Small, types.MbrTagFat16, types.MbrTagFat16LBA,
		types.MbrTagFat32CHS, types.MbrTagFat32LBA, types.MbrTagFat32Hid, types.MbrTagFat32LBAHi,
		types.MbrTagLinux,
		types.MbrTagNtfsExfat,
		types.MbrTagHfsPlus,
	}
}

// DefaultTag returns the tag byte commonly used for a kind, and false when
// the kind has no decodable tag (Unknown, Iso9660).
func DefaultTag(kind Kind) (byte, bool) {
	switch kind {
	case KindUnused:
		return types.MbrTagUnused, true
	case KindFat12:
		return types.MbrTagFat12, true
	case KindFat16:
		return types.MbrTagFat16, true
	case KindFat32:
		return types.MbrTagFat32LBA, true
	case KindLinuxExt:
		return types.MbrTagLinux, true
	case KindHfsPlus:
		return types.MbrTagHfsPlus, true
	case KindNtfsExfat:
		return types.MbrTagNtfsExfat, true
	}
	return 0, false
}
