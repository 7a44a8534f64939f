package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-mbr/pkg/mbr"
	"github.com/deploymenttheory/go-mbr/pkg/partitions"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	verbose, quiet, outputFormat, configFile, config = false, false, "", "", nil
	editSlot, editKind, editTag, editStartLBA, editSectors, editClear, editAllowOverlap = 0, "", "", 0, 0, false, false
	inspectCheckLayout, inspectShowUnused = false, false
	initCreate, initForce = false, false
	require.NoError(t, rootCmd.PersistentFlags().Set("offset", "-1"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestInitEditInspect(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "disk.img")

	out, err := execute(t, "init", path, "--create")
	require.NoError(t, err)
	assert.Contains(t, out, "Created empty partition table")

	_, err = execute(t, "edit", path, "--slot", "0", "--type", "LinuxExt", "--start", "2048", "--sectors", "204800")
	require.NoError(t, err)

	_, err = execute(t, "edit", path, "--slot", "1", "--type", "fat32", "--tag", "0x0B", "--start", "206848", "--sectors", "1024")
	require.NoError(t, err)

	out, err = execute(t, "inspect", path, "-o", "json")
	require.NoError(t, err)

	var report struct {
		Entries []struct {
			Slot     int                      `json:"slot"`
			Type     partitions.PartitionType `json:"type"`
			StartLBA uint32                   `json:"start_lba"`
			Sectors  uint32                   `json:"sectors"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Entries, 2)
	assert.Equal(t, partitions.LinuxExt(0x83), report.Entries[0].Type)
	assert.Equal(t, uint32(204800), report.Entries[0].Sectors)
	assert.Equal(t, partitions.Fat32(0x0B), report.Entries[1].Type)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	record, err := mbr.FromBytes(data)
	require.NoError(t, err)
	entry, _ := record.Entry(1)
	assert.Equal(t, uint32(206848), entry.LogicalBlockAddress)
}

func TestInspectTableOutput(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "disk.img")

	record := mbr.Empty()
	_ = record.SetEntry(2, partitions.NewPartitionTableEntry(partitions.HfsPlus(0xAF), 40, 409600))
	sector := record.Bytes()
	require.NoError(t, os.WriteFile(path, append(make([]byte, 512), sector[:]...), 0o600))

	out, err := execute(t, "inspect", path, "--offset", "512", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "HfsPlus")
	assert.Contains(t, out, "0xAF")
	assert.Contains(t, out, "1 of 4 slots in use")
}

func TestInspectErrors(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)

	path := filepath.Join(dir, "blank.img")
	require.NoError(t, os.WriteFile(path, make([]byte, 1024), 0o600))

	_, err := execute(t, "inspect", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, mbr.ErrInvalidSuffix)

	_, err = execute(t, "inspect", path, "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}

func TestTypesCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := execute(t, "types")
	require.NoError(t, err)
	assert.Contains(t, out, "0x83")
	assert.Contains(t, out, "LinuxExt")
	assert.Contains(t, out, "Iso9660")
}

func TestParseTag(t *testing.T) {
	tag, err := parseTag("0x0c")
	require.NoError(t, err)
	assert.Equal(t, byte(0x0C), tag)

	tag, err = parseTag("131")
	require.NoError(t, err)
	assert.Equal(t, byte(0x83), tag)

	_, err = parseTag("0x100")
	assert.Error(t, err)
}

func TestNewContextIsBounded(t *testing.T) {
	verbose, quiet, outputFormat, config = true, false, "yaml", nil

	ctx, cancel := newContext(rootCmd)
	defer cancel()

	_, ok := ctx.Deadline()
	assert.True(t, ok)
	assert.Equal(t, "yaml", ctx.OutputFormat)
	assert.True(t, ctx.Verbose)
	assert.NotNil(t, ctx.Config)

	cancel()
	assert.Error(t, ctx.Err())
}
