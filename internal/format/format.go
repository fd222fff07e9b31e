// Package format maps configuration formats to the file extensions they are
// stored under.
package format

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Format int

const (
	// Auto accepts every registered format.
	Auto Format = iota
	TOML
	JSON
	YAML
)

var ErrUnknownFormat = errors.New("unknown format")

// registry lists the formats in the order they are tried by Auto.
var registry = []Format{TOML, JSON, YAML}

var names = map[Format]string{
	Auto: "auto",
	TOML: "toml",
	JSON: "json",
	YAML: "yaml",
}

var extensions = map[Format][]string{
	TOML: {"toml"},
	JSON: {"json"},
	YAML: {"yaml", "yml"},
}

func (f Format) String() string {
	if name, ok := names[f]; ok {
		return name
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// Extensions returns the ordered candidate extensions for f.
func (f Format) Extensions() []string {
	if f == Auto {
		var all []string
		for _, r := range registry {
			all = append(all, extensions[r]...)
		}
		return all
	}

	exts := extensions[f]
	out := make([]string, len(exts))
	copy(out, exts)
	return out
}

// Parse accepts a format name or one of its extensions, case-insensitively.
// An empty name means Auto.
func Parse(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == names[Auto] {
		return Auto, nil
	}

	for _, f := range registry {
		if names[f] == name {
			return f, nil
		}
		for _, ext := range extensions[f] {
			if ext == name {
				return f, nil
			}
		}
	}

	return Auto, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FromPath infers the format of a file from its extension.
func FromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return Auto, false
	}

	f, err := Parse(ext)
	if err != nil || f == Auto {
		return Auto, false
	}
	return f, true
}

// Validate checks that text is syntactically valid for f.
func (f Format) Validate(text string) error {
	var v any

	switch f {
	case TOML:
		var doc map[string]any
		if _, err := toml.Decode(text, &doc); err != nil {
			return fmt.Errorf("invalid toml: %w", err)
		}
	case JSON:
		if err := json.Unmarshal([]byte(text), &v); err != nil {
			return fmt.Errorf("invalid json: %w", err)
		}
	case YAML:
		if err := yaml.Unmarshal([]byte(text), &v); err != nil {
			return fmt.Errorf("invalid yaml: %w", err)
		}
	default:
		return fmt.Errorf("cannot validate %s contents: %w", f, ErrUnknownFormat)
	}

	return nil
}
