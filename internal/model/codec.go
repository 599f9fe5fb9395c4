package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// UnmarshalJSON decodes a section, choosing the props type from its id.
// Unknown fields are rejected so that imported configurations cannot carry
// content the renderer would silently drop.
func (s *Section) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID      SectionID       `json:"id"`
		Variant int             `json:"variant"`
		Props   json.RawMessage `json:"props"`
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	props, err := decodeProps(raw.ID, raw.Props, true)
	if err != nil {
		return err
	}

	s.ID = raw.ID
	s.Variant = raw.Variant
	s.Props = props
	return nil
}

// DecodeProps converts a generic props tree into the typed props for id.
// Fields the props type does not know about are ignored.
func DecodeProps(id SectionID, tree map[string]any) (Props, error) {
	data, err := json.Marshal(tree)
	if err != nil {
		return nil, fmt.Errorf("section %s: encode props tree: %w", id, err)
	}
	return decodeProps(id, data, false)
}

// EncodeProps converts typed props into a generic tree of maps, slices,
// strings, numbers and booleans.
func EncodeProps(p Props) (map[string]any, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("section %s: encode props: %w", p.Section(), err)
	}

	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("section %s: decode props tree: %w", p.Section(), err)
	}
	return tree, nil
}

func decodeProps(id SectionID, data []byte, strict bool) (Props, error) {
	props, err := NewProps(id)
	if err != nil {
		return nil, err
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return props, nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(props); err != nil {
		return nil, fmt.Errorf("section %s: decode props: %w", id, err)
	}
	return props, nil
}
