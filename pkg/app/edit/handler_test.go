package edit

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-mbr/pkg/app"
	"github.com/deploymenttheory/go-mbr/pkg/mbr"
	"github.com/deploymenttheory/go-mbr/pkg/partitions"
)

func tagPtr(b byte) *byte { return &b }

func writeImage(t *testing.T, record *mbr.MasterBootRecord) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "disk.img")
	data := bytes.Repeat([]byte{0xF4}, 2048)
	if record != nil {
		_, err := record.Serialize(data)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func readRecord(t *testing.T, path string) *mbr.MasterBootRecord {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	record, err := mbr.FromBytes(data)
	require.NoError(t, err)
	return record
}

func requireCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *app.CommonError
	require.True(t, errors.As(err, &appErr), "got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
}

func TestHandle(t *testing.T) {
	t.Run("sets slot with default tag", func(t *testing.T) {
		path := writeImage(t, mbr.Empty())

		resp, err := Handle(app.NewContext(), &Request{
			ImagePath: path, Slot: 1, Kind: "LinuxExt", StartLBA: 2048, Sectors: 4096,
		})
		require.NoError(t, err)
		assert.True(t, resp.Before.IsUnused())
		assert.Equal(t, partitions.LinuxExt(0x83), resp.After.Type)

		entry, err := readRecord(t, path).Entry(1)
		require.NoError(t, err)
		assert.Equal(t, partitions.NewPartitionTableEntry(partitions.LinuxExt(0x83), 2048, 4096), entry)
	})

	t.Run("explicit tag and bootstrap preserved", func(t *testing.T) {
		path := writeImage(t, mbr.Empty())

		_, err := Handle(app.NewContext(), &Request{
			ImagePath: path, Slot: 0, Kind: "fat32", Tag: tagPtr(0x1B), StartLBA: 63, Sectors: 100,
		})
		require.NoError(t, err)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, bytes.Repeat([]byte{0xF4}, 446), data[:446])
		assert.Equal(t, byte(0x1B), data[450])
		assert.Equal(t, bytes.Repeat([]byte{0xF4}, 2048-512), data[512:])
	})

	t.Run("clear slot", func(t *testing.T) {
		record := mbr.Empty()
		_ = record.SetEntry(3, partitions.NewPartitionTableEntry(partitions.HfsPlus(0xAF), 10, 10))
		path := writeImage(t, record)

		resp, err := Handle(app.NewContext(), &Request{ImagePath: path, Slot: 3, Clear: true})
		require.NoError(t, err)
		assert.Equal(t, partitions.HfsPlus(0xAF), resp.Before.Type)
		assert.Equal(t, mbr.Empty(), readRecord(t, path))
	})

	t.Run("overlap refused", func(t *testing.T) {
		record := mbr.Empty()
		_ = record.SetEntry(0, partitions.NewPartitionTableEntry(partitions.Fat16(0x06), 100, 100))
		path := writeImage(t, record)

		_, err := Handle(app.NewContext(), &Request{
			ImagePath: path, Slot: 1, Kind: "NtfsExfat", StartLBA: 150, Sectors: 100,
		})
		requireCode(t, err, app.ErrCodeInvalidLayout)
		assert.ErrorIs(t, err, mbr.ErrPartitionsOverlap)
		assert.Equal(t, record, readRecord(t, path))
	})

	t.Run("overlap allowed", func(t *testing.T) {
		record := mbr.Empty()
		_ = record.SetEntry(0, partitions.NewPartitionTableEntry(partitions.Fat16(0x06), 100, 100))
		path := writeImage(t, record)

		resp, err := Handle(app.NewContext(), &Request{
			ImagePath: path, Slot: 1, Kind: "NtfsExfat", StartLBA: 150, Sectors: 100, AllowOverlap: true,
		})
		require.NoError(t, err)
		require.Len(t, resp.Warnings, 1)
	})

	t.Run("iso9660 requires tag and warns", func(t *testing.T) {
		path := writeImage(t, mbr.Empty())

		_, err := Handle(app.NewContext(), &Request{ImagePath: path, Slot: 0, Kind: "Iso9660"})
		requireCode(t, err, app.ErrCodeInvalidInput)

		resp, err := Handle(app.NewContext(), &Request{ImagePath: path, Slot: 0, Kind: "Iso9660", Tag: tagPtr(0x0C), Sectors: 1})
		require.NoError(t, err)
		assert.Equal(t, partitions.Iso9660(0x0C), resp.After.Type)
		require.Len(t, resp.Warnings, 1)
		assert.Contains(t, resp.Warnings[0], "Fat32(0x0C)")
	})

	t.Run("iso9660 with unrecognized tag leaves image decodable", func(t *testing.T) {
		record := mbr.Empty()
		require.NoError(t, record.SetEntry(0, partitions.NewPartitionTableEntry(partitions.Fat16(0x06), 63, 1000)))
		path := writeImage(t, record)
		original, err := os.ReadFile(path)
		require.NoError(t, err)

		_, err = Handle(app.NewContext(), &Request{ImagePath: path, Slot: 0, Kind: "Iso9660", Tag: tagPtr(0xEE), Sectors: 1})
		requireCode(t, err, app.ErrCodeInvalidInput)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, original, data)
		assert.Equal(t, record, readRecord(t, path))

		_, err = Handle(app.NewContext(), &Request{ImagePath: path, Slot: 0, Clear: true})
		require.NoError(t, err)
		assert.Equal(t, mbr.Empty(), readRecord(t, path))
	})

	t.Run("cancelled context writes nothing", func(t *testing.T) {
		path := writeImage(t, mbr.Empty())
		ctx, cancel := app.NewContext().WithTimeout(time.Minute)
		cancel()

		_, err := Handle(ctx, &Request{ImagePath: path, Slot: 2, Kind: "Fat12", StartLBA: 1, Sectors: 10})
		requireCode(t, err, app.ErrCodeDeviceAccess)
		assert.Equal(t, mbr.Empty(), readRecord(t, path))
	})

	t.Run("undecodable image left untouched", func(t *testing.T) {
		path := writeImage(t, nil)

		_, err := Handle(app.NewContext(), &Request{ImagePath: path, Slot: 0, Kind: "Fat12"})
		requireCode(t, err, app.ErrCodeDecodeFailed)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, bytes.Repeat([]byte{0xF4}, 2048), data)
	})
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		request  Request
		wantCode string
	}{
		{"missing path", Request{Kind: "Fat12"}, app.ErrCodeInvalidInput},
		{"negative slot", Request{ImagePath: "x", Slot: -1, Kind: "Fat12"}, app.ErrCodeSlotOutOfRange},
		{"slot four", Request{ImagePath: "x", Slot: 4, Kind: "Fat12"}, app.ErrCodeSlotOutOfRange},
		{"bad kind", Request{ImagePath: "x", Kind: "zfs"}, app.ErrCodeInvalidInput},
		{"unknown kind", Request{ImagePath: "x", Kind: "Unknown"}, app.ErrCodeInvalidInput},
		{"iso9660 unrecognized tag", Request{ImagePath: "x", Kind: "Iso9660", Tag: tagPtr(0xEE)}, app.ErrCodeInvalidInput},
		{"iso9660 recognized tag", Request{ImagePath: "x", Kind: "Iso9660", Tag: tagPtr(0x83)}, ""},
		{"tag mismatch", Request{ImagePath: "x", Kind: "Fat16", Tag: tagPtr(0x83)}, app.ErrCodeInvalidInput},
		{"clear ignores kind", Request{ImagePath: "x", Slot: 2, Clear: true}, ""},
		{"valid", Request{ImagePath: "x", Kind: "HfsPlus"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			requireCode(t, err, tt.wantCode)
		})
	}
}

func TestHandleInit(t *testing.T) {
	t.Run("creates new image", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "new.img")

		resp, err := HandleInit(app.NewContext(), &InitRequest{ImagePath: path, Create: true})
		require.NoError(t, err)
		assert.True(t, resp.Created)
		assert.Equal(t, mbr.Empty(), readRecord(t, path))
	})

	t.Run("missing image without create", func(t *testing.T) {
		_, err := HandleInit(app.NewContext(), &InitRequest{ImagePath: filepath.Join(t.TempDir(), "none.img")})
		requireCode(t, err, app.ErrCodeDeviceAccess)
	})

	t.Run("blank image", func(t *testing.T) {
		path := writeImage(t, nil)

		resp, err := HandleInit(app.NewContext(), &InitRequest{ImagePath: path})
		require.NoError(t, err)
		assert.False(t, resp.Created)
		assert.False(t, resp.Replaced)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, bytes.Repeat([]byte{0xF4}, 446), data[:446])
		assert.Equal(t, mbr.Empty(), readRecord(t, path))
	})

	t.Run("existing MBR requires force", func(t *testing.T) {
		record := mbr.Empty()
		_ = record.SetEntry(0, partitions.NewPartitionTableEntry(partitions.Fat12(0x01), 1, 1))
		path := writeImage(t, record)

		_, err := HandleInit(app.NewContext(), &InitRequest{ImagePath: path})
		requireCode(t, err, app.ErrCodeInvalidInput)
		assert.Equal(t, record, readRecord(t, path))

		resp, err := HandleInit(app.NewContext(), &InitRequest{ImagePath: path, Force: true})
		require.NoError(t, err)
		assert.True(t, resp.Replaced)
		assert.Equal(t, mbr.Empty(), readRecord(t, path))
	})

	t.Run("cancelled context writes nothing", func(t *testing.T) {
		path := writeImage(t, nil)
		ctx, cancel := app.NewContext().WithTimeout(time.Minute)
		cancel()

		_, err := HandleInit(ctx, &InitRequest{ImagePath: path})
		requireCode(t, err, app.ErrCodeDeviceAccess)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, bytes.Repeat([]byte{0xF4}, 2048), data)
	})
}

func TestFormatOutput(t *testing.T) {
	resp := &Response{ImagePath: "disk.img", Slot: 2}
	var buf bytes.Buffer
	require.NoError(t, FormatOutput(&buf, resp, "table"))
	assert.Contains(t, buf.String(), "before: unused")

	buf.Reset()
	require.NoError(t, FormatInitOutput(&buf, &InitResponse{ImagePath: "disk.img", Created: true}, "table"))
	assert.Contains(t, buf.String(), "Created empty partition table")

	buf.Reset()
	require.NoError(t, FormatInitOutput(&buf, &InitResponse{ImagePath: "disk.img"}, "json"))
	assert.Contains(t, buf.String(), `"image_path": "disk.img"`)

	assert.Error(t, FormatOutput(&buf, resp, "csv"))
}
