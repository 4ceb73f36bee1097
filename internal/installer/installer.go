// Package installer drives the copy/verify pass over the manifest. It is
// the only writer of the installation target for the run's duration;
// concurrent runs against the same target are unsupported and undefined.
package installer

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/seanhamilton/ut2004install/internal/manifest"
	"github.com/seanhamilton/ut2004install/internal/output"
	"github.com/seanhamilton/ut2004install/internal/verify"
)

// ExitCodeForRun maps run outcomes to the process exit code.
//
// Exit code contract:
// 0 = every entry verified_ok (deferred patch entries allowed)
// 1 = one or more fatal entries
// 2 = media not found / configuration error (run did not start)
func ExitCodeForRun(runFailed, anyFatal bool) int {
	if runFailed {
		return 2
	}
	if anyFatal {
		return 1
	}
	return 0
}

// Installer processes the manifest against one resolved set of volumes.
type Installer struct {
	Manifest *manifest.Manifest

	// Source is the install CD root. Required.
	Source string

	// PatchImage is the mounted patch image root. Empty means not mounted;
	// patch entries are then deferred rather than failed.
	PatchImage string

	// Target is the installation target root (the application bundle).
	Target string

	// DryRun resolves and verifies but never writes: entries that would be
	// copied are reported with their verification reason instead.
	DryRun bool

	// VerifyOnly audits the target without consulting source volumes.
	VerifyOnly bool
}

// Run processes every manifest entry exactly once, strictly in order, and
// returns the process exit code. One entry is fully resolved (verify,
// maybe copy, re-verify) before the next begins. Entry-level failures
// never abort the run; ctx cancellation stops it between entries, leaving
// already-verified entries valid and the rest untouched.
func (ins *Installer) Run(ctx context.Context, outMgr *output.Manager) int {
	_ = outMgr.Write(output.Event{
		Type:       "run.started",
		Entries:    len(ins.Manifest.Entries),
		Source:     ins.Source,
		Target:     ins.Target,
		PatchImage: ins.PatchImage,
	})

	var sum verify.Summary
	anyFatal := false
	for _, e := range ins.Manifest.Entries {
		if ctx.Err() != nil {
			break
		}
		res := ins.processEntry(e)
		sum.Add(res)
		if res.Status == verify.StatusFatal {
			anyFatal = true
		}
		_ = outMgr.Write(res)
	}

	code := ExitCodeForRun(false, anyFatal)
	_ = outMgr.Write(output.Event{Type: "run.finished", Summary: &sum, ExitCode: code})
	return code
}

// processEntry walks one entry through its state machine:
// pending -> verified_ok | (missing|mismatched) -> copy_attempted ->
// verified_ok | fatal. Terminal states map onto verify.Status values.
func (ins *Installer) processEntry(e manifest.Entry) verify.EntryResult {
	state, detail := verify.Check(ins.Target, e)

	switch state {
	case verify.StateOK:
		return verify.EntryResult{Path: e.Path, Role: e.Role, Status: verify.StatusOK}
	case verify.StateUnreadable:
		// Unreadable targets get no copy attempt: writing over a path we
		// cannot even read would hide a permissions problem.
		return verify.EntryResult{Path: e.Path, Role: e.Role, Status: verify.StatusFatal,
			Reason: "target unreadable: " + detail}
	}

	// missing or mismatched: a copy is due.
	reason := string(state)
	if detail != "" {
		reason = fmt.Sprintf("%s (%s)", state, detail)
	}

	if ins.VerifyOnly {
		return verify.EntryResult{Path: e.Path, Role: e.Role, Status: verify.StatusFatal, Reason: reason}
	}

	srcRoot := ins.Source
	if e.Role == manifest.RolePatch {
		if ins.PatchImage == "" {
			return verify.EntryResult{Path: e.Path, Role: e.Role, Status: verify.StatusDeferred,
				Reason: "patch image not mounted"}
		}
		srcRoot = ins.PatchImage
	}

	if ins.DryRun {
		return verify.EntryResult{Path: e.Path, Role: e.Role, Status: verify.StatusCopied,
			Reason: "would copy: " + reason}
	}

	src := filepath.Join(srcRoot, filepath.FromSlash(e.Path))
	dst := filepath.Join(ins.Target, filepath.FromSlash(e.Path))

	// Exactly one retry on copy failure; transient I/O errors on optical
	// media frequently clear on a second read.
	var copyErr error
	for attempt := 0; attempt < 2; attempt++ {
		if copyErr = copyFile(src, dst); copyErr == nil {
			break
		}
	}
	if copyErr != nil {
		return verify.EntryResult{Path: e.Path, Role: e.Role, Status: verify.StatusFatal,
			Reason: fmt.Sprintf("copy failed after retry: %v", copyErr)}
	}

	state, detail = verify.Check(ins.Target, e)
	if state != verify.StateOK {
		reason := fmt.Sprintf("%s after copy", state)
		if detail != "" {
			reason = fmt.Sprintf("%s after copy (%s)", state, detail)
		}
		return verify.EntryResult{Path: e.Path, Role: e.Role, Status: verify.StatusFatal, Reason: reason}
	}
	return verify.EntryResult{Path: e.Path, Role: e.Role, Status: verify.StatusCopied}
}
