package postinstall

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// cdkeyRelPath is where the game expects its key inside the bundle.
const cdkeyRelPath = "System/cdkey"

// CDKeyFixup checks that System/cdkey exists, is non-empty, and looks like
// a retail key. It can write a user-supplied key but never generates one.
type CDKeyFixup struct {
	key string
}

func init() {
	Register(&CDKeyFixup{})
}

func (f *CDKeyFixup) ID() string    { return "cdkey" }
func (f *CDKeyFixup) Title() string { return "Place the CD key at System/cdkey" }

func (f *CDKeyFixup) Options() []Option {
	return []Option{
		{Name: "key", Description: "Retail CD key to write (XXXXX-XXXXX-XXXXX-XXXXX)"},
	}
}

func (f *CDKeyFixup) Configure(opts map[string]string) error {
	if v, ok := opts["key"]; ok {
		v = strings.ToUpper(strings.TrimSpace(v))
		if v != "" && !validKeyFormat(v) {
			return fmt.Errorf("key %q is not in XXXXX-XXXXX-XXXXX-XXXXX form", v)
		}
		f.key = v
	}
	return nil
}

func (f *CDKeyFixup) Check(target string) (CheckState, string, error) {
	path := filepath.Join(target, filepath.FromSlash(cdkeyRelPath))
	raw, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if f.key == "" {
			return CheckBlocked, "no cdkey file and no key supplied (use --cdkey)", nil
		}
		return CheckNeeded, "cdkey file missing", nil
	case err != nil:
		return "", "", fmt.Errorf("read cdkey: %w", err)
	}

	existing := strings.TrimSpace(string(raw))
	if existing == "" {
		if f.key == "" {
			return CheckBlocked, "cdkey file is empty and no key supplied (use --cdkey)", nil
		}
		return CheckNeeded, "cdkey file is empty", nil
	}
	if !validKeyFormat(existing) {
		return CheckNeeded, "cdkey file content is not a valid key", nil
	}
	if f.key != "" && existing != f.key {
		return CheckNeeded, "cdkey file differs from supplied key", nil
	}
	return CheckSatisfied, "", nil
}

func (f *CDKeyFixup) Apply(target string) error {
	if f.key == "" {
		return errors.New("no CD key supplied")
	}
	path := filepath.Join(target, filepath.FromSlash(cdkeyRelPath))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(f.key+"\n"), 0644)
}

// validKeyFormat matches four dash-separated groups of five alphanumerics.
func validKeyFormat(s string) bool {
	groups := strings.Split(s, "-")
	if len(groups) != 4 {
		return false
	}
	for _, g := range groups {
		if len(g) != 5 {
			return false
		}
		for _, r := range g {
			switch {
			case r >= 'A' && r <= 'Z':
			case r >= '0' && r <= '9':
			default:
				return false
			}
		}
	}
	return true
}
