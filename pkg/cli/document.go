package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DocumentFormat is the encoding of a user-supplied definition file.
type DocumentFormat int

const (
	DocumentYAML DocumentFormat = iota
	DocumentJSON
)

// DetectDocument picks a format from the file extension, falling back to
// the first non-space byte: '{' or '[' means JSON, anything else YAML.
func DetectDocument(filename string, data []byte) DocumentFormat {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		return DocumentJSON
	case ".yaml", ".yml":
		return DocumentYAML
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return DocumentJSON
	}
	return DocumentYAML
}

// DecodeDocument strictly decodes data into v. Unknown fields are errors so
// that a misspelled key in a scale file fails loudly instead of being ignored.
func DecodeDocument(data []byte, format DocumentFormat, v any) error {
	switch format {
	case DocumentJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("parse JSON: %w", err)
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil {
			return fmt.Errorf("parse YAML: %w", err)
		}
	}
	return nil
}

// LoadDocument reads path and decodes it with DecodeDocument.
func LoadDocument(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := DecodeDocument(data, DetectDocument(path, data), v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
