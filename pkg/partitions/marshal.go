package partitions

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// partitionTypeDoc is the serialized form of a PartitionType.
type partitionTypeDoc struct {
	Kind string `json:"kind" yaml:"kind"`
	Tag  byte   `json:"tag" yaml:"tag"`
}

func (p PartitionType) doc() partitionTypeDoc {
	return partitionTypeDoc{Kind: p.Kind.String(), Tag: p.MBRTagByte()}
}

func (d partitionTypeDoc) partitionType() (PartitionType, error) {
	kind, err := ParseKind(d.Kind)
	if err != nil {
		return PartitionType{}, err
	}
	return New(kind, d.Tag), nil
}

// MarshalJSON implements json.Marshaler.
func (p PartitionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.doc())
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *PartitionType) UnmarshalJSON(data []byte) error {
	var d partitionTypeDoc
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	pt, err := d.partitionType()
	if err != nil {
		return fmt.Errorf("invalid partition type: %w", err)
	}
	*p = pt
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (p PartitionType) MarshalYAML() (interface{}, error) {
	return p.doc(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (p *PartitionType) UnmarshalYAML(value *yaml.Node) error {
	var d partitionTypeDoc
	if err := value.Decode(&d); err != nil {
		return err
	}
	pt, err := d.partitionType()
	if err != nil {
		return fmt.Errorf("invalid partition type at line %d: %w", value.Line, err)
	}
	*p = pt
	return nil
}
