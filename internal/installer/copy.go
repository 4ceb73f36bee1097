package installer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// copyFile copies src to dst with whole-file semantics: bytes land in a
// temp file beside dst and are renamed into place only after a clean
// write. An interrupted run therefore never leaves a partial file at a
// manifest path.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".partial-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if _, err := io.Copy(tmp, in); err != nil {
		return cleanup(fmt.Errorf("copy bytes: %w", err))
	}
	if err := tmp.Chmod(info.Mode().Perm()); err != nil {
		return cleanup(fmt.Errorf("set mode: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
