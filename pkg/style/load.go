package style

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Parse decodes a YAML style override. Partial documents are legal at any
// nesting depth; absent sections stay nil and inherit from the merge base.
func Parse(r io.Reader) (*Style, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var s Style
	if err := dec.Decode(&s); err != nil {
		if err == io.EOF {
			// Empty document is a valid no-op override.
			return &Style{}, nil
		}
		return nil, fmt.Errorf("parse style: %w", err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a YAML style override from a file.
func Load(path string) (*Style, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load style: %w", err)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load style %s: %w", path, err)
	}
	return s, nil
}
