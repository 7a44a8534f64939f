package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-mbr/pkg/app/edit"
)

var (
	editSlot         int
	editKind         string
	editTag          string
	editStartLBA     uint32
	editSectors      uint32
	editClear        bool
	editAllowOverlap bool
)

var editCmd = &cobra.Command{
	Use:   "edit [image-path]",
	Short: "Set or clear one partition table slot",
	Long: `Replace one of the four primary partition entries and write the table back.

The existing table must decode. Bootstrap code and CHS fields are preserved.

Examples:
  # Linux partition in slot 0
  go-mbr edit disk.img --slot 0 --type LinuxExt --start 2048 --sectors 204800

  # FAT32 with an explicit tag byte
  go-mbr edit disk.img --slot 1 --type Fat32 --tag 0x0B --start 206848 --sectors 65536

  # Clear slot 3
  go-mbr edit disk.img --slot 3 --clear`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEdit(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().IntVarP(&editSlot, "slot", "s", 0, "partition table slot (0-3)")
	editCmd.Flags().StringVarP(&editKind, "type", "t", "", "partition type (see 'go-mbr types')")
	editCmd.Flags().StringVar(&editTag, "tag", "", "explicit type tag byte (e.g. 0x0C)")
	editCmd.Flags().Uint32Var(&editStartLBA, "start", 0, "first LBA of the partition")
	editCmd.Flags().Uint32Var(&editSectors, "sectors", 0, "partition length in sectors")
	editCmd.Flags().BoolVar(&editClear, "clear", false, "reset the slot to unused")
	editCmd.Flags().BoolVar(&editAllowOverlap, "allow-overlap", false, "write even when partitions overlap")

	editCmd.MarkFlagRequired("slot")
	editCmd.MarkFlagsMutuallyExclusive("clear", "type")
	editCmd.MarkFlagsOneRequired("clear", "type")
}

func runEdit(cmd *cobra.Command, imagePath string) error {
	ctx, cancel := newContext(cmd)
	defer cancel()

	request := &edit.Request{
		ImagePath:    imagePath,
		Slot:         editSlot,
		Kind:         editKind,
		StartLBA:     editStartLBA,
		Sectors:      editSectors,
		Clear:        editClear,
		AllowOverlap: editAllowOverlap,
	}

	if editTag != "" {
		tag, err := parseTag(editTag)
		if err != nil {
			return err
		}
		request.Tag = &tag
	}

	response, err := edit.Handle(ctx, request)
	if err != nil {
		return err
	}

	return edit.FormatOutput(ctx.Out, response, ctx.OutputFormat)
}

// parseTag accepts decimal, 0x hex and 0o octal byte values.
func parseTag(s string) (byte, error) {
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid tag %q: must be a byte value such as 0x83", s)
	}
	return byte(v), nil
}
