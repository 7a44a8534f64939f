package edit

import (
	"fmt"

	"github.com/deploymenttheory/go-mbr/internal/device"
	"github.com/deploymenttheory/go-mbr/pkg/app"
	"github.com/deploymenttheory/go-mbr/pkg/app/inspect"
	"github.com/deploymenttheory/go-mbr/pkg/partitions"
)

// Handle processes an edit request: the existing table is decoded, one slot
// replaced and the table written back over the same sector.
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	entry := partitions.EmptyPartitionTableEntry()
	if !req.Clear {
		partitionType, err := req.PartitionType()
		if err != nil {
			return nil, err
		}
		entry = partitions.NewPartitionTableEntry(partitionType, req.StartLBA, req.Sectors)
	}

	dev, err := device.Open(req.ImagePath, ctx.Config, true)
	if err != nil {
		return nil, app.NewError(app.ErrCodeDeviceAccess, "cannot open image for writing", err)
	}
	defer dev.Close()

	record, err := dev.ReadMBR()
	if err != nil {
		return nil, inspect.DecodeError(err)
	}

	before, _ := record.Entry(req.Slot)
	if err := record.SetEntry(req.Slot, entry); err != nil {
		return nil, app.NewError(app.ErrCodeSlotOutOfRange, "cannot set slot", err)
	}

	response := &Response{
		ImagePath: dev.Path(),
		Slot:      req.Slot,
		Before:    inspect.NewEntryReport(req.Slot, before, ctx.Config.SectorSize),
		After:     inspect.NewEntryReport(req.Slot, entry, ctx.Config.SectorSize),
	}

	if err := record.Validate(); err != nil {
		if !req.AllowOverlap {
			return nil, app.NewError(app.ErrCodeInvalidLayout, "refusing to write partition table", err)
		}
		response.Warnings = append(response.Warnings, err.Error())
		ctx.Log(fmt.Sprintf("Layout warning: %v", err))
	}

	if entry.PartitionType.Kind == partitions.KindIso9660 {
		response.Warnings = append(response.Warnings,
			fmt.Sprintf("slot %d will decode as %s, not Iso9660", req.Slot, partitions.FromMBRTagByte(entry.PartitionType.MBRTagByte())))
	}

	if err := ctx.Err(); err != nil {
		return nil, app.NewError(app.ErrCodeDeviceAccess, "edit cancelled before writing", err)
	}
	if err := dev.WriteMBR(record); err != nil {
		return nil, app.NewError(app.ErrCodeEncodeFailed, "cannot write partition table", err)
	}
	if err := dev.Sync(); err != nil {
		return nil, app.NewError(app.ErrCodeDeviceAccess, "cannot sync image", err)
	}

	ctx.Info(fmt.Sprintf("Slot %d: %s -> %s", req.Slot, before.PartitionType, entry.PartitionType))

	return response, nil
}
