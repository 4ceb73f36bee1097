package cli

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seanhamilton/ut2004install/internal/config"
	"github.com/seanhamilton/ut2004install/internal/verify"
)

func writeSourceFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// writeTestManifest builds a one-entry YAML manifest matching content.
func writeTestManifest(t *testing.T, rel, content, digest string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "manifest.yaml")
	body := fmt.Sprintf("entries:\n  - path: %s\n    size: %d\n    sha256: %s\n    role: base\n",
		rel, len(content), digest)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunInstallEndToEnd(t *testing.T) {
	source := t.TempDir()
	target := filepath.Join(t.TempDir(), "UT2004.app")
	const content = "engine package bytes"
	digest := writeSourceFile(t, source, "System/Core.u", content)

	outPath := filepath.Join(t.TempDir(), "results.json")
	c := config.New()
	c.Install.Source = source
	c.Install.Target = target
	c.Install.Manifest = writeTestManifest(t, "System/Core.u", content, digest)
	c.Output.NoConsole = true
	c.Output.Out = outPath

	if code := runInstall(context.Background(), c, false); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	raw, err := os.ReadFile(filepath.Join(target, "System", "Core.u"))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != content {
		t.Fatalf("target bytes = %q", raw)
	}

	var results []verify.EntryResult
	outRaw, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(outRaw, &results); err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Status != verify.StatusCopied {
		t.Fatalf("results = %+v", results)
	}
}

func TestRunInstallMediaNotFound(t *testing.T) {
	target := filepath.Join(t.TempDir(), "UT2004.app")
	// The source directory exists but holds nothing recognizable.
	c := config.New()
	c.Install.Source = t.TempDir()
	c.Install.Target = target
	c.Output.NoConsole = true

	if code := runInstall(context.Background(), c, false); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Fatal("target was created despite missing media")
	}
}

func TestRunInstallBadConfig(t *testing.T) {
	c := config.New()
	c.Install.Target = ""
	c.Output.NoConsole = true

	if code := runInstall(context.Background(), c, false); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestRunInstallBadManifest(t *testing.T) {
	c := config.New()
	c.Install.Manifest = filepath.Join(t.TempDir(), "missing.yaml")
	c.Output.NoConsole = true

	if code := runInstall(context.Background(), c, false); code != 2 {
		t.Fatalf("exit code = %d, want 2", code)
	}
}

func TestRunVerifyOnly(t *testing.T) {
	target := t.TempDir()
	const content = "engine package bytes"
	digest := writeSourceFile(t, target, "System/Core.u", content)

	c := config.New()
	c.Install.Target = target
	c.Install.Manifest = writeTestManifest(t, "System/Core.u", content, digest)
	c.Output.NoConsole = true

	if code := runInstall(context.Background(), c, true); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	// Corrupt the file; verify must now fail without repairing it.
	if err := os.WriteFile(filepath.Join(target, "System", "Core.u"), []byte("corrupted!"), 0644); err != nil {
		t.Fatal(err)
	}
	if code := runInstall(context.Background(), c, true); code != 1 {
		t.Fatalf("exit code after corruption = %d, want 1", code)
	}
	raw, _ := os.ReadFile(filepath.Join(target, "System", "Core.u"))
	if string(raw) != "corrupted!" {
		t.Fatal("verify-only run modified the target")
	}
}

func TestVersionCommand(t *testing.T) {
	SetBuildInfo("1.2.3", "abc123", "2026-01-01")
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)

	got := buf.String()
	if !strings.Contains(got, "1.2.3") || !strings.Contains(got, "abc123") {
		t.Fatalf("version output = %q", got)
	}
}
