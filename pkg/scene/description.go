package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format names a scene description encoding.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks the description format from a file extension.
// Anything that is not .yaml or .yml is read as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Description is a parsed scene file: object names in file order plus the
// resolved record for each name. It is immutable once parsed.
type Description struct {
	names   []string
	records map[string]Record
}

// Names returns the object names in the order they appear in the file.
func (d *Description) Names() ([]string, error) {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out, nil
}

// Record returns the record for name.
func (d *Description) Record(name string) (Record, error) {
	rec, ok := d.records[name]
	if !ok {
		return Record{}, fmt.Errorf("%w: %q", ErrUnknownObject, name)
	}
	return rec, nil
}

// Len returns the number of described objects.
func (d *Description) Len() int {
	return len(d.names)
}

func (d *Description) add(name string, raw rawRecord) error {
	if _, dup := d.records[name]; dup {
		return fmt.Errorf("%w: duplicate object %q", ErrMalformedRecord, name)
	}
	rec, err := raw.resolve(name)
	if err != nil {
		return err
	}
	d.names = append(d.names, name)
	d.records[name] = rec
	return nil
}

func newDescription() *Description {
	return &Description{records: make(map[string]Record)}
}

// ReadDescription reads and parses the description file at path.
func ReadDescription(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read description: %w", err)
	}
	desc, err := ParseDescription(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return desc, nil
}

// ParseDescription parses a description in the given format.
//
// The top level is a mapping from object name to either a record or a list
// of records. For a list the last record wins.
func ParseDescription(data []byte, format Format) (*Description, error) {
	switch format {
	case FormatYAML:
		return parseYAML(data)
	default:
		return parseJSON(data)
	}
}

func parseJSON(data []byte) (*Description, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: top level must be an object", ErrMalformedRecord)
	}

	desc := newDescription()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("json: %w", err)
		}
		name, _ := tok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("json: object %q: %w", name, err)
		}

		raw, err := decodeJSONValue(name, value)
		if err != nil {
			return nil, err
		}
		if err := desc.add(name, raw); err != nil {
			return nil, err
		}
	}

	if _, err := dec.Token(); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("json: %w", err)
	}
	return desc, nil
}

func decodeJSONValue(name string, value json.RawMessage) (rawRecord, error) {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []rawRecord
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return rawRecord{}, fmt.Errorf("%w: %q: %v", ErrMalformedRecord, name, err)
		}
		if len(list) == 0 {
			return rawRecord{}, fmt.Errorf("%w: %q has an empty record list", ErrMalformedRecord, name)
		}
		return list[len(list)-1], nil
	}

	var raw rawRecord
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return rawRecord{}, fmt.Errorf("%w: %q: %v", ErrMalformedRecord, name, err)
	}
	return raw, nil
}

func parseYAML(data []byte) (*Description, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}

	desc := newDescription()
	if len(doc.Content) == 0 {
		return desc, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: top level must be a mapping", ErrMalformedRecord)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		name := root.Content[i].Value
		value := root.Content[i+1]

		raw, err := decodeYAMLValue(name, value)
		if err != nil {
			return nil, err
		}
		if err := desc.add(name, raw); err != nil {
			return nil, err
		}
	}
	return desc, nil
}

func decodeYAMLValue(name string, value *yaml.Node) (rawRecord, error) {
	switch value.Kind {
	case yaml.SequenceNode:
		if len(value.Content) == 0 {
			return rawRecord{}, fmt.Errorf("%w: %q has an empty record list", ErrMalformedRecord, name)
		}
		value = value.Content[len(value.Content)-1]
	case yaml.MappingNode:
	default:
		return rawRecord{}, fmt.Errorf("%w: %q is not a record", ErrMalformedRecord, name)
	}

	var raw rawRecord
	if err := value.Decode(&raw); err != nil {
		return rawRecord{}, fmt.Errorf("%w: %q: %v", ErrMalformedRecord, name, err)
	}
	return raw, nil
}
