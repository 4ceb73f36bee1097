package postinstall

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// knownLinks maps symlink paths inside the bundle to the regular file they
// must point at, both relative to the bundle root. The retail discs ship
// version-suffixed dylibs; the loader wants the unsuffixed names.
var knownLinks = map[string]string{
	"System/libSDL.dylib":      "libSDL-1.2.0.dylib",
	"System/libopenal.dylib":   "openal.dylib",
	"System/libogg.0.dylib":    "libogg.dylib",
	"System/libvorbis.0.dylib": "libvorbis.dylib",
}

// SymlinkFixup repairs the supporting-library symlinks in System/. A link
// that already points at the right name is left alone; anything else
// (absent, dangling, wrong destination, or a stale regular file) is
// replaced.
type SymlinkFixup struct{}

func init() {
	Register(&SymlinkFixup{})
}

func (f *SymlinkFixup) ID() string    { return "symlinks" }
func (f *SymlinkFixup) Title() string { return "Repair supporting-library symlinks in System/" }

func (f *SymlinkFixup) Check(target string) (CheckState, string, error) {
	var wrong []string
	for link, dest := range knownLinks {
		path := filepath.Join(target, filepath.FromSlash(link))
		got, err := os.Readlink(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			wrong = append(wrong, link+" (missing)")
			continue
		case err != nil:
			// Exists but is not a symlink.
			wrong = append(wrong, link+" (not a symlink)")
			continue
		}
		if got != dest {
			wrong = append(wrong, fmt.Sprintf("%s (points at %s)", link, got))
		}
	}
	if len(wrong) == 0 {
		return CheckSatisfied, "", nil
	}
	return CheckNeeded, strings.Join(wrong, ", "), nil
}

func (f *SymlinkFixup) Apply(target string) error {
	for link, dest := range knownLinks {
		path := filepath.Join(target, filepath.FromSlash(link))
		if got, err := os.Readlink(path); err == nil && got == dest {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return fmt.Errorf("prepare %s: %w", link, err)
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove stale %s: %w", link, err)
		}
		if err := os.Symlink(dest, path); err != nil {
			return fmt.Errorf("link %s -> %s: %w", link, dest, err)
		}
	}
	return nil
}
