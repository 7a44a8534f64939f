package edit

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-mbr/pkg/app/inspect"
)

// FormatOutput writes edit results to w according to output format
func FormatOutput(w io.Writer, response *Response, format string) error {
	switch format {
	case "json", "yaml":
		return encode(w, response, format)
	case "table":
		fmt.Fprintf(w, "Image: %s\n", response.ImagePath)
		fmt.Fprintf(w, "Slot %d\n", response.Slot)
		fmt.Fprintf(w, "  before: %s\n", describe(response.Before))
		fmt.Fprintf(w, "  after:  %s\n", describe(response.After))
		for _, warning := range response.Warnings {
			fmt.Fprintf(w, "warning: %s\n", warning)
		}
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// FormatInitOutput writes init results to w according to output format
func FormatInitOutput(w io.Writer, response *InitResponse, format string) error {
	switch format {
	case "json", "yaml":
		return encode(w, response, format)
	case "table":
		action := "Initialized"
		if response.Created {
			action = "Created"
		} else if response.Replaced {
			action = "Replaced"
		}
		fmt.Fprintf(w, "%s empty partition table in %s at offset %d\n", action, response.ImagePath, response.Offset)
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func describe(entry inspect.EntryReport) string {
	if entry.IsUnused() {
		return "unused"
	}
	return fmt.Sprintf("%s start=%d sectors=%d (%s)", entry.Type, entry.StartLBA, entry.Sectors, entry.FormatSize())
}

func encode(w io.Writer, v interface{}, format string) error {
	if format == "json" {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	}
	encoder := yaml.NewEncoder(w)
	defer encoder.Close()
	encoder.SetIndent(2)
	return encoder.Encode(v)
}
