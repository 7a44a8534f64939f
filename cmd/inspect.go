package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-mbr/pkg/app/inspect"
)

var (
	inspectCheckLayout bool
	inspectShowUnused  bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [image-path]",
	Short: "Decode and print the partition table",
	Long: `Decode the Master Boot Record of an image and print its partitions.

Examples:
  # Show used partitions
  go-mbr inspect disk.img

  # Show all four slots as JSON
  go-mbr inspect /dev/sdb --all -o json

  # MBR stored 1 MiB into the file, with overlap checks
  go-mbr inspect disk.img --offset 1048576 --check`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(&inspectCheckLayout, "check", false, "report overlapping or out of range partitions")
	inspectCmd.Flags().BoolVarP(&inspectShowUnused, "all", "a", false, "include unused slots")
}

func runInspect(cmd *cobra.Command, imagePath string) error {
	ctx, cancel := newContext(cmd)
	defer cancel()

	request := &inspect.Request{
		ImagePath:   imagePath,
		CheckLayout: inspectCheckLayout,
		ShowUnused:  inspectShowUnused,
	}

	response, err := inspect.Handle(ctx, request)
	if err != nil {
		return err
	}

	return inspect.FormatOutput(ctx.Out, response, ctx.OutputFormat)
}
