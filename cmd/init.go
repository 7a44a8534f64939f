package cmd

import (
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-mbr/pkg/app/edit"
)

var (
	initCreate bool
	initForce  bool
)

var initCmd = &cobra.Command{
	Use:   "init [image-path]",
	Short: "Write an empty partition table",
	Long: `Write four unused partition entries and the boot signature.

Examples:
  # Create a new image holding only the MBR sector
  go-mbr init new.img --create

  # Replace an existing table
  go-mbr init disk.img --force`,

	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInit(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initCreate, "create", false, "create the image if it does not exist")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "replace an existing valid MBR")
}

func runInit(cmd *cobra.Command, imagePath string) error {
	ctx, cancel := newContext(cmd)
	defer cancel()

	response, err := edit.HandleInit(ctx, &edit.InitRequest{
		ImagePath: imagePath,
		Create:    initCreate,
		Force:     initForce,
	})
	if err != nil {
		return err
	}

	if ctx.Quiet {
		return nil
	}
	return edit.FormatInitOutput(ctx.Out, response, ctx.OutputFormat)
}
