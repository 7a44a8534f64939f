package inspect

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-mbr/pkg/mbr"
)

// FormatOutput writes inspection results to w according to output format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json":
		return formatJSON(w, response)
	case "yaml":
		return formatYAML(w, response)
	case "table":
		return formatTable(w, response)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// formatTable formats results as a table
func formatTable(w io.Writer, response *Response) error {
	fmt.Fprintf(w, "Image: %s (MBR at offset %d)\n\n", response.ImagePath, response.Offset)

	if len(response.Entries) == 0 {
		fmt.Fprintln(w, "No partitions defined.")
	} else {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintf(tw, "SLOT\tTYPE\tTAG\tSTART\tSECTORS\tSIZE\n")
		fmt.Fprintf(tw, "----\t----\t---\t-----\t-------\t----\n")
		for _, entry := range response.Entries {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\n",
				entry.Slot, entry.Type.Kind, entry.TagHex(), entry.StartLBA, entry.Sectors, entry.FormatSize())
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintf(w, "\n%d of %d slots in use\n", response.UsedSlots, mbr.MaxEntries)
	for _, warning := range response.Warnings {
		fmt.Fprintf(w, "warning: %s\n", warning)
	}

	return nil
}

// formatJSON formats results as JSON
func formatJSON(w io.Writer, response *Response) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// formatYAML formats results as YAML
func formatYAML(w io.Writer, response *Response) error {
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(response)
}
