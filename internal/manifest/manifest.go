package manifest

import (
	"fmt"
	"path"
	"strings"
)

// Role says which mounted volume an entry's bytes come from.
type Role string

const (
	// RoleBase entries are copied from the install CD volume.
	RoleBase Role = "base"

	// RolePatch entries are copied from the mounted patch image.
	RolePatch Role = "patch"
)

// Entry describes one expected file in a complete installation: where it
// lives relative to the bundle root, how big it is, and the sha256 digest
// of its raw bytes. Entries are immutable for the duration of a run.
type Entry struct {
	// Path is the file's location relative to both the source volume root
	// and the installation target root. Always forward-slash separated.
	Path string `yaml:"path" json:"path"`

	// Size is the expected file size in bytes.
	Size int64 `yaml:"size" json:"size"`

	// SHA256 is the lowercase hex digest of the file content.
	SHA256 string `yaml:"sha256" json:"sha256"`

	// Role is base or patch (see Role).
	Role Role `yaml:"role" json:"role"`
}

// Manifest is the ordered list of expected files defining a complete
// installation. Order is preserved from the source (built-in table or
// manifest file) and entries are processed in that order, exactly once.
type Manifest struct {
	Entries []Entry
}

// ConfigurationError reports a malformed or empty manifest. It aborts the
// run before any filesystem writes.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// Validate checks structural invariants on the manifest. A failure here is
// a programming or operator error, never a property of the target disk.
func (m *Manifest) Validate() error {
	if len(m.Entries) == 0 {
		return &ConfigurationError{Reason: "manifest has no entries"}
	}

	seen := make(map[string]struct{}, len(m.Entries))
	for i, e := range m.Entries {
		where := fmt.Sprintf("entry %d (%q)", i, e.Path)

		if strings.TrimSpace(e.Path) == "" {
			return &ConfigurationError{Reason: fmt.Sprintf("entry %d has an empty path", i)}
		}
		if path.IsAbs(e.Path) || strings.HasPrefix(e.Path, "..") || strings.Contains(e.Path, "/../") {
			return &ConfigurationError{Reason: where + " must be a clean relative path"}
		}
		if e.Path != path.Clean(e.Path) {
			return &ConfigurationError{Reason: where + " is not in clean form"}
		}
		if _, dup := seen[e.Path]; dup {
			return &ConfigurationError{Reason: where + " is listed twice"}
		}
		seen[e.Path] = struct{}{}

		if e.Size <= 0 {
			return &ConfigurationError{Reason: where + " must have a positive size"}
		}
		if !isHexDigest(e.SHA256) {
			return &ConfigurationError{Reason: where + " must carry a 64-char lowercase hex sha256"}
		}
		switch e.Role {
		case RoleBase, RolePatch:
		default:
			return &ConfigurationError{Reason: fmt.Sprintf("%s has unknown role %q", where, e.Role)}
		}
	}
	return nil
}

// HasPatchEntries reports whether any entry is sourced from the patch image.
func (m *Manifest) HasPatchEntries() bool {
	for _, e := range m.Entries {
		if e.Role == RolePatch {
			return true
		}
	}
	return false
}

func isHexDigest(s string) bool {
	if len(s) != 64 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		default:
			return false
		}
	}
	return true
}
