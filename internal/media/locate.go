// Package media finds the mounted volumes an install run reads from: the
// install CD tree and, optionally, the patch image. Probing is strictly
// read-only; no media function ever writes.
//
// Mounting itself is out of scope. A volume that is not already mounted
// and addressable as a directory path does not exist as far as this
// package is concerned.
package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/seanhamilton/ut2004install/internal/manifest"
)

// NotFoundError reports that no candidate volume held a recognizable
// installation tree. It aborts the run before any writes.
type NotFoundError struct {
	Kind       string // "install media" or "patch image"
	Candidates []string
}

func (e *NotFoundError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("no %s found: no mounted volumes to probe", e.Kind)
	}
	return fmt.Sprintf("no %s found among mounted volumes: %s", e.Kind, strings.Join(e.Candidates, ", "))
}

// probeConcurrency bounds how many candidate volumes are stat'ed at once.
// Optical media and network mounts can each take seconds to answer.
const probeConcurrency = 4

// defaultMountRoots lists the directories under which removable volumes
// show up on the platforms the installer targets.
var defaultMountRoots = []string{"/Volumes", "/media", "/run/media", "/mnt"}

// LocateInstall resolves the install CD source directory: the volume
// carrying the manifest's base files. An explicit path is trusted but
// still checked; with no explicit path every directory one level under
// the mount roots is probed.
func LocateInstall(ctx context.Context, explicit string, m *manifest.Manifest) (string, error) {
	return locate(ctx, explicit, "install media", recognizer(m, manifest.RoleBase))
}

// LocatePatch resolves the mounted patch image directory. Unlike the
// install media, absence is not an error the caller must stop for: the
// orchestrator defers patch entries when this fails.
func LocatePatch(ctx context.Context, explicit string, m *manifest.Manifest) (string, error) {
	return locate(ctx, explicit, "patch image", recognizer(m, manifest.RolePatch))
}

// recognizer reports whether a directory holds any of the manifest's
// files for the given role. Existence is enough here; content is judged
// later, per entry, by the verifier.
func recognizer(m *manifest.Manifest, role manifest.Role) func(string) bool {
	return func(dir string) bool {
		for _, e := range m.Entries {
			if e.Role != role {
				continue
			}
			if fileExists(filepath.Join(dir, filepath.FromSlash(e.Path))) {
				return true
			}
		}
		return false
	}
}

func locate(ctx context.Context, explicit, kind string, recognize func(string) bool) (string, error) {
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return "", fmt.Errorf("resolve %s path: %w", kind, err)
		}
		if !recognize(abs) {
			return "", &NotFoundError{Kind: kind, Candidates: []string{abs}}
		}
		return abs, nil
	}

	candidates := candidateVolumes()
	if len(candidates) == 0 {
		return "", &NotFoundError{Kind: kind}
	}

	// Probe volumes concurrently; slow mounts must not serialize the scan.
	// matched is indexed like candidates so the pick is deterministic
	// (lowest index wins) regardless of probe completion order.
	matched := make([]bool, len(candidates))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(probeConcurrency)
	for i, dir := range candidates {
		i, dir := i, dir
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			if recognize(dir) {
				mu.Lock()
				matched[i] = true
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	for i, ok := range matched {
		if ok {
			return candidates[i], nil
		}
	}
	return "", &NotFoundError{Kind: kind, Candidates: candidates}
}

// candidateVolumes returns every directory one level below the known mount
// roots, sorted for deterministic selection.
func candidateVolumes() []string {
	var out []string
	for _, root := range mountRoots() {
		children, err := os.ReadDir(root)
		if err != nil {
			continue
		}
		for _, c := range children {
			if !c.IsDir() {
				continue
			}
			out = append(out, filepath.Join(root, c.Name()))
		}
	}
	sort.Strings(out)
	return out
}

// mountRootsOverride redirects probing in tests.
var mountRootsOverride []string

func mountRoots() []string {
	if mountRootsOverride != nil {
		return mountRootsOverride
	}
	return defaultMountRoots
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
