package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/seanhamilton/ut2004install/internal/manifest"
)

// State is the outcome of checking one file against its manifest entry.
type State string

const (
	StateOK         State = "ok"
	StateMissing    State = "missing"
	StateMismatched State = "mismatched"
	StateUnreadable State = "unreadable"
)

// Check compares the file for entry e under root against the manifest
// expectation. It never writes. The returned detail string is empty for
// StateOK and StateMissing and explains the discrepancy otherwise.
//
// A zero-byte file is mismatched, not missing: the path exists but its
// content cannot be correct (valid entries always have positive size).
func Check(root string, e manifest.Entry) (State, string) {
	path := filepath.Join(root, filepath.FromSlash(e.Path))

	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return StateMissing, ""
		}
		return StateUnreadable, err.Error()
	}
	if info.IsDir() {
		return StateUnreadable, "is a directory"
	}
	if info.Size() != e.Size {
		return StateMismatched, fmt.Sprintf("size %d, want %d", info.Size(), e.Size)
	}

	got, err := DigestFile(path)
	if err != nil {
		return StateUnreadable, err.Error()
	}
	if got != e.SHA256 {
		return StateMismatched, fmt.Sprintf("sha256 %s, want %s", got, e.SHA256)
	}
	return StateOK, ""
}

// DigestFile returns the lowercase hex sha256 of the file's raw bytes.
func DigestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
