package output

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seanhamilton/ut2004install/internal/manifest"
	"github.com/seanhamilton/ut2004install/internal/verify"
)

func TestReportSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	sink, err := NewReportSink(path)
	if err != nil {
		t.Fatal(err)
	}

	_ = sink.Write(Event{Type: "run.started", Entries: 4,
		Source: "/Volumes/UT2004_CD1", Target: "/Applications/UT2004.app"})
	_ = sink.Write(verify.EntryResult{Status: verify.StatusOK, Path: "System/A.u", Role: manifest.RoleBase})
	_ = sink.Write(verify.EntryResult{Status: verify.StatusCopied, Path: "System/B.u", Role: manifest.RoleBase})
	_ = sink.Write(verify.EntryResult{Status: verify.StatusFatal, Path: "System/C.u", Role: manifest.RoleBase,
		Reason: "copy failed after retry: disk error"})
	_ = sink.Write(verify.EntryResult{Status: verify.StatusDeferred, Path: "Maps/ONS-Adara.ut2", Role: manifest.RolePatch,
		Reason: "patch image not mounted"})
	_ = sink.Write(Event{Type: "run.finished", ExitCode: 1})

	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	report := string(raw)

	for _, want := range []string{
		"# UT2004 Install Report",
		"`/Volumes/UT2004_CD1`",
		"`/Applications/UT2004.app`",
		"Exit code: 1",
		"| OK (pre-existing) | 1 |",
		"| Copied | 1 |",
		"| Fatal | 1 |",
		"| Deferred | 1 |",
		"`System/C.u` (base): copy failed after retry: disk error",
		"`Maps/ONS-Adara.ut2`",
		"Mount the patch image",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}
}

func TestReportSinkCleanRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	sink, err := NewReportSink(path)
	if err != nil {
		t.Fatal(err)
	}
	_ = sink.Write(verify.EntryResult{Status: verify.StatusOK, Path: "System/A.u", Role: manifest.RoleBase})
	_ = sink.Write(Event{Type: "run.finished", ExitCode: 0})
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	raw, _ := os.ReadFile(path)
	if !strings.Contains(string(raw), "complete and verified") {
		t.Fatalf("clean report missing completion line:\n%s", raw)
	}
	if strings.Contains(string(raw), "## Fatal entries") {
		t.Fatal("clean report lists fatal entries")
	}
}

func TestReportSinkRequiresPath(t *testing.T) {
	if _, err := NewReportSink(""); err == nil {
		t.Fatal("empty path accepted")
	}
}
