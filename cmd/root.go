package cmd

import (
	"context"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-mbr/internal/device"
	"github.com/deploymenttheory/go-mbr/pkg/app"
)

var (
	// Global output flags only
	verbose      bool
	quiet        bool
	outputFormat string
	configFile   string

	// Loaded in PersistentPreRunE
	config *device.Config
)

var rootCmd = &cobra.Command{
	Use:   "go-mbr",
	Short: "Master Boot Record inspector and editor",
	Long: `go-mbr reads and writes the Master Boot Record partition table of raw
disks, disk images and other files.

Only the four primary partitions are handled: their type, first LBA and
length in sectors. Bootstrap code and CHS fields are left untouched.

Commands:
  inspect     Decode and print the partition table
  edit        Set or clear one partition table slot
  init        Write an empty partition table
  types       List recognized partition types`,
	Version:       "0.1.0-dev",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		app.NewContext().Error(err.Error())
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format (table, json, yaml)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default: mbr-config.yaml in ., ./config, $HOME/.go-mbr, /etc/go-mbr)")
	rootCmd.PersistentFlags().Int64("offset", -1, "byte offset of the MBR within the image (overrides config)")

	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")
}

// loadConfig reads the config file and applies command line overrides.
func loadConfig(cmd *cobra.Command) error {
	loaded, err := device.LoadConfig(configFile)
	if err != nil {
		return err
	}

	if offset, _ := cmd.Flags().GetInt64("offset"); offset >= 0 {
		loaded.SectorOffset = offset
	}
	if outputFormat == "" {
		outputFormat = loaded.OutputFormat
	}
	outputFormat = strings.ToLower(outputFormat)
	if err := app.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	config = loaded
	return nil
}

// newContext creates the application context for a command run, bounded by
// the default timeout.
func newContext(cmd *cobra.Command) (*app.Context, context.CancelFunc) {
	ctx := app.NewContext()
	if parent := cmd.Context(); parent != nil {
		ctx.Context = parent
	}
	ctx.OutputFormat = outputFormat
	ctx.Verbose = verbose
	ctx.Quiet = quiet
	ctx.Out = cmd.OutOrStdout()
	if config != nil {
		ctx.Config = config
	}
	ctx.ApplyLogLevel()
	log.SetOutput(cmd.ErrOrStderr())
	return ctx.WithTimeout(ctx.DefaultTimeout)
}
