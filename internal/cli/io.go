package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-modelgen/pkg/schema"
)

// readInput reads path, or stdin when path is "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// decodeValue decodes JSON, falling back to YAML.
func decodeValue(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("input is empty")
	}
	var value any
	if err := json.Unmarshal(data, &value); err == nil {
		return value, nil
	}
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("input is not valid JSON or YAML: %w", err)
	}
	return value, nil
}

func schemaSource(location string) (schema.Source, error) {
	return schema.SourceFor(location)
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		if err != nil {
			return systemError{err}
		}
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return systemError{err}
	}
	return nil
}

func encodeJSON(value any) ([]byte, error) {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return nil, systemError{fmt.Errorf("encode json: %w", err)}
	}
	return append(data, '\n'), nil
}

func encodeYAML(value any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return nil, systemError{fmt.Errorf("encode yaml: %w", err)}
	}
	if err := enc.Close(); err != nil {
		return nil, systemError{err}
	}
	return buf.Bytes(), nil
}
