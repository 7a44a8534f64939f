package edit

import (
	"fmt"

	"github.com/deploymenttheory/go-mbr/pkg/app"
	"github.com/deploymenttheory/go-mbr/pkg/mbr"
	"github.com/deploymenttheory/go-mbr/pkg/partitions"
)

// Validate validates an edit request
func (r *Request) Validate() error {
	if r.ImagePath == "" {
		return app.NewError(app.ErrCodeInvalidInput, "image path is required", nil)
	}

	if r.Slot < 0 || r.Slot >= mbr.MaxEntries {
		return app.NewError(app.ErrCodeSlotOutOfRange,
			fmt.Sprintf("slot must be between 0 and %d, got %d", mbr.MaxEntries-1, r.Slot), nil)
	}

	if r.Clear {
		return nil
	}

	if _, err := r.PartitionType(); err != nil {
		return err
	}

	return nil
}

// PartitionType resolves the requested kind and tag into a partition type.
// The tag must decode back to the same kind, except for Iso9660 which has no
// decodable tag and therefore requires an explicit, recognized one.
func (r *Request) PartitionType() (partitions.PartitionType, error) {
	kind, err := partitions.ParseKind(r.Kind)
	if err != nil {
		return partitions.PartitionType{}, app.NewError(app.ErrCodeInvalidInput, "invalid partition kind", err)
	}

	switch kind {
	case partitions.KindUnknown:
		return partitions.PartitionType{}, app.NewError(app.ErrCodeInvalidInput,
			"Unknown partitions cannot be written: the table would no longer decode", nil)
	case partitions.KindIso9660:
		if r.Tag == nil {
			return partitions.PartitionType{}, app.NewError(app.ErrCodeInvalidInput,
				"Iso9660 has no standard MBR tag; an explicit tag is required", nil)
		}
		if partitions.FromMBRTagByte(*r.Tag).IsUnknown() {
			return partitions.PartitionType{}, app.NewError(app.ErrCodeInvalidInput,
				fmt.Sprintf("tag 0x%02X is not a recognized MBR tag: the table would no longer decode", *r.Tag), nil)
		}
		return partitions.Iso9660(*r.Tag), nil
	}

	if r.Tag == nil {
		tag, _ := partitions.DefaultTag(kind)
		return partitions.New(kind, tag), nil
	}

	decoded := partitions.FromMBRTagByte(*r.Tag)
	if decoded.Kind != kind {
		return partitions.PartitionType{}, app.NewError(app.ErrCodeInvalidInput,
			fmt.Sprintf("tag 0x%02X decodes as %s, not %s", *r.Tag, decoded.Kind, kind), nil)
	}
	return decoded, nil
}

// Validate validates an init request
func (r *InitRequest) Validate() error {
	if r.ImagePath == "" {
		return app.NewError(app.ErrCodeInvalidInput, "image path is required", nil)
	}
	return nil
}
