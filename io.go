// File: lixenwraith/typedconfig/io.go
package typedconfig

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Save writes record to path as TOML, JSON or YAML, chosen by the file
// extension (TOML when unknown). Scalars of primitive kinds keep their native
// file types; every other value is written as its command-line text so the
// file loads back into an equal record.
func Save(path string, record any) error {
	nestedData, err := nestedValues(record)
	if err != nil {
		return err
	}

	var data []byte
	switch detectFileFormat(path) {
	case "json":
		data, err = json.MarshalIndent(nestedData, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config data to JSON: %w", err)
		}
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(nestedData)
		if err != nil {
			return fmt.Errorf("failed to marshal config data to YAML: %w", err)
		}
	default:
		var buf bytes.Buffer
		encoder := toml.NewEncoder(&buf)
		if err := encoder.Encode(nestedData); err != nil {
			return fmt.Errorf("failed to marshal config data to TOML: %w", err)
		}
		data = buf.Bytes()
	}

	return atomicWriteFile(path, data)
}

// nestedValues converts a record into nested maps keyed by key segments.
func nestedValues(record any) (map[string]any, error) {
	rv := reflect.ValueOf(record)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("cannot save nil %T", record)
		}
		rv = rv.Elem()
	}
	s, err := SchemaOf(rv.Type())
	if err != nil {
		return nil, err
	}
	args, err := s.format(rv, "")
	if err != nil {
		return nil, err
	}

	nestedData := make(map[string]any)
	for _, a := range args {
		f := s.leaf(a.Key)
		value, err := fileValue(f.Desc, a.Value)
		if err != nil {
			return nil, err
		}
		setNestedValue(nestedData, a.Key, value)
	}
	return nestedData, nil
}

// fileValue picks the native file representation of a formatted scalar.
func fileValue(d *Descriptor, text string) (any, error) {
	if d.Kind == KindLiteral {
		d = d.Elems[0]
	}
	switch d.Kind {
	case KindString, KindInt, KindUint, KindFloat, KindBool:
		v, err := ParseValue(d, text)
		if err != nil {
			return nil, err
		}
		// Widen to the types the encoders understand
		switch d.Kind {
		case KindString:
			return v.String(), nil
		case KindInt:
			return v.Int(), nil
		case KindUint:
			return v.Uint(), nil
		case KindFloat:
			return v.Float(), nil
		default:
			return v.Bool(), nil
		}
	default:
		return text, nil
	}
}

// leaf resolves a dotted path of a scalar field. The path must exist.
func (s *Schema) leaf(path string) *Field {
	current := s
	for {
		head, rest, dotted := strings.Cut(path, ".")
		f := current.byName[head]
		if !dotted {
			return f
		}
		current, path = f.Desc.Record, rest
	}
}

// atomicWriteFile performs atomic file write
func atomicWriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	tempPath := tempFile.Name()
	defer os.Remove(tempPath) // Clean up on any error

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temporary file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}

	if err := os.Chmod(tempPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return nil
}
