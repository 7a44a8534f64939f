package edit

import (
	"github.com/deploymenttheory/go-mbr/pkg/app/inspect"
)

// Request represents a change to one partition table slot
type Request struct {
	ImagePath string
	Slot      int

	// Kind name as accepted by partitions.ParseKind
	Kind string

	// Explicit tag byte; when nil the kind's default tag is used
	Tag *byte

	StartLBA uint32
	Sectors  uint32

	// Reset the slot to the unused placeholder, ignoring the fields above
	Clear bool

	// Write the table even when partitions overlap
	AllowOverlap bool
}

// Response reports a slot before and after the change
type Response struct {
	ImagePath string              `json:"image_path" yaml:"image_path"`
	Slot      int                 `json:"slot" yaml:"slot"`
	Before    inspect.EntryReport `json:"before" yaml:"before"`
	After     inspect.EntryReport `json:"after" yaml:"after"`
	Warnings  []string            `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// InitRequest represents writing a fresh, empty partition table
type InitRequest struct {
	ImagePath string

	// Create the image when it does not exist
	Create bool

	// Overwrite an image that already holds a valid MBR
	Force bool
}

// InitResponse reports the result of an init request
type InitResponse struct {
	ImagePath string `json:"image_path" yaml:"image_path"`
	Offset    int64  `json:"offset" yaml:"offset"`
	Created   bool   `json:"created" yaml:"created"`
	Replaced  bool   `json:"replaced" yaml:"replaced"`
}
