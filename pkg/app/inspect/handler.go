package inspect

import (
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-mbr/internal/device"
	"github.com/deploymenttheory/go-mbr/internal/interfaces"
	"github.com/deploymenttheory/go-mbr/pkg/app"
	"github.com/deploymenttheory/go-mbr/pkg/mbr"
)

// Handle processes an inspection request
func Handle(ctx *app.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx.Log(fmt.Sprintf("Inspecting MBR in: %s (offset %d)", req.ImagePath, ctx.Config.SectorOffset))

	dev, err := device.Open(req.ImagePath, ctx.Config, false)
	if err != nil {
		return nil, app.NewError(app.ErrCodeDeviceAccess, "cannot open image", err)
	}
	defer dev.Close()

	return Inspect(ctx, dev, req)
}

// Inspect decodes the MBR of an open device and reports its slots.
func Inspect(ctx *app.Context, dev interfaces.MBRDeviceReader, req *Request) (*Response, error) {
	record, err := dev.ReadMBR()
	if err != nil {
		return nil, DecodeError(err)
	}

	response := BuildResponse(record, ctx.Config.SectorSize)
	response.ImagePath = dev.Path()
	response.Offset = dev.Offset()
	response.ImageSize = dev.Size()

	if req.CheckLayout {
		if err := record.Validate(); err != nil {
			response.Warnings = append(response.Warnings, err.Error())
			ctx.Log(fmt.Sprintf("Layout warning: %v", err))
		}
	}

	if !req.ShowUnused {
		used := response.Entries[:0]
		for _, entry := range response.Entries {
			if !entry.IsUnused() {
				used = append(used, entry)
			}
		}
		response.Entries = used
	}

	ctx.Log(fmt.Sprintf("Inspection completed: %d of %d slots in use", response.UsedSlots, mbr.MaxEntries))

	return response, nil
}

// BuildResponse reports every slot of a decoded record.
func BuildResponse(record *mbr.MasterBootRecord, sectorSize int) *Response {
	response := &Response{
		SectorSize: sectorSize,
		RecordSize: record.Size(),
		Entries:    make([]EntryReport, 0, mbr.MaxEntries),
	}
	for slot, entry := range record.PartitionTableEntries() {
		report := NewEntryReport(slot, entry, sectorSize)
		if !report.IsUnused() {
			response.UsedSlots++
		}
		response.Entries = append(response.Entries, report)
	}
	return response
}

// DecodeError classifies a failure to read the MBR: malformed sectors are
// decode failures, anything else is a device access failure.
func DecodeError(err error) *app.CommonError {
	switch {
	case errors.Is(err, mbr.ErrBufferWrongSize),
		errors.Is(err, mbr.ErrInvalidSuffix),
		errors.Is(err, mbr.ErrUnsupportedPartition):
		return app.NewError(app.ErrCodeDecodeFailed, "image does not contain a supported MBR", err)
	default:
		return app.NewError(app.ErrCodeDeviceAccess, "cannot read MBR", err)
	}
}
