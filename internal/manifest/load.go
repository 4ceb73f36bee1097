package manifest

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

// manifestFile is the on-disk YAML shape:
//
//	entries:
//	  - path: System/Core.u
//	    size: 1124668
//	    sha256: 3b4c8f0a...
//	    role: base
type manifestFile struct {
	Entries []Entry `yaml:"entries"`
}

// Load reads an externally supplied manifest file. The loaded manifest
// fully replaces the built-in one; both pass through the same validation.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("read manifest %s: %v", path, err)}
	}

	var mf manifestFile
	if err := yaml.UnmarshalStrict(raw, &mf); err != nil {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("parse manifest %s: %v", path, err)}
	}

	m := &Manifest{Entries: mf.Entries}
	for i := range m.Entries {
		m.Entries[i].SHA256 = strings.ToLower(strings.TrimSpace(m.Entries[i].SHA256))
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// Resolve returns the manifest for a run: the file at path when one is
// given, otherwise the built-in table.
func Resolve(path string) (*Manifest, error) {
	if path != "" {
		return Load(path)
	}
	m := Builtin()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}
