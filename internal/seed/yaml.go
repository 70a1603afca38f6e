package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML reads seed data from a YAML file and validates it.
func LoadYAML(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read seed file: %w", err)
	}
	return ParseYAML(raw)
}

// ParseYAML decodes and validates seed data.
func ParseYAML(raw []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("parse seed file: %w", err)
	}
	if err := Validate(d); err != nil {
		return Data{}, err
	}
	return d, nil
}

// WriteYAML encodes seed data to path, replacing any existing file.
func WriteYAML(path string, d Data) error {
	raw, err := yaml.Marshal(d)
	if err != nil {
		return fmt.Errorf("encode seed data: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write seed file: %w", err)
	}
	return nil
}
