// Package configio serializes page configurations to JSON or YAML and reads
// them back. Import is strict: unknown fields are rejected and the decoded
// configuration must pass the same checks as composition.
package configio

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/Bahjat/page-composer/backend/internal/composer"
	"github.com/Bahjat/page-composer/backend/internal/model"
	"github.com/Bahjat/page-composer/backend/internal/platform/errs"
)

// Format is a serialization format.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

var errUnknownFormat = errors.New("unknown configuration format")

// FormatFromPath picks a format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML
	}
	return JSON
}

// Export writes cfg to w.
func Export(w io.Writer, cfg *model.PageConfig, f Format) error {
	data, err := Marshal(cfg, f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Marshal encodes cfg in the given format.
func Marshal(cfg *model.PageConfig, f Format) ([]byte, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode configuration: %w", err)
	}

	switch f {
	case JSON:
		return append(data, '\n'), nil
	case YAML:
		out, err := yaml.JSONToYAML(data)
		if err != nil {
			return nil, fmt.Errorf("encode configuration as yaml: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q", errUnknownFormat, f)
}

// Import reads a configuration from r and validates it.
func Import(r io.Reader, f Format) (*model.PageConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	return Unmarshal(data, f)
}

// Unmarshal decodes and validates a configuration. Decoding failures are
// reported as errs.InvalidInput; validation failures keep the composer's
// error kinds.
func Unmarshal(data []byte, f Format) (*model.PageConfig, error) {
	switch f {
	case JSON:
	case YAML:
		converted, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, invalid(err)
		}
		data = converted
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, f)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var cfg model.PageConfig
	if err := dec.Decode(&cfg); err != nil {
		return nil, invalid(err)
	}
	if dec.More() {
		return nil, invalid(errors.New("trailing data after configuration"))
	}

	if err := composer.Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func invalid(err error) error {
	return &errs.AppError{Kind: errs.InvalidInput, Message: "malformed configuration", Cause: err}
}
