package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-mbr/pkg/partitions"
)

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List recognized partition types and their tag bytes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "TAG\tTYPE\n")
		fmt.Fprintf(w, "---\t----\n")
		for _, tag := range partitions.KnownTags() {
			fmt.Fprintf(w, "0x%02X\t%s\n", tag, partitions.FromMBRTagByte(tag).Kind)
		}
		fmt.Fprintf(w, "-\t%s\n", partitions.KindIso9660)
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(typesCmd)
}
