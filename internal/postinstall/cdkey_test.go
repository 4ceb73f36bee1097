package postinstall

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const goodKey = "AAAAA-BBBBB-CCCCC-DDDDD"

func writeCDKey(t *testing.T, target, content string) {
	t.Helper()
	path := filepath.Join(target, "System", "cdkey")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func configuredCDKey(t *testing.T, key string) *CDKeyFixup {
	t.Helper()
	f := &CDKeyFixup{}
	if err := f.Configure(map[string]string{"key": key}); err != nil {
		t.Fatal(err)
	}
	return f
}

func TestCDKeyConfigure(t *testing.T) {
	f := &CDKeyFixup{}
	if err := f.Configure(map[string]string{"key": "notakey"}); err == nil {
		t.Fatal("malformed key accepted")
	}
	if err := f.Configure(map[string]string{"key": strings.ToLower(goodKey)}); err != nil {
		t.Fatalf("lowercase key rejected: %v", err)
	}
	if err := f.Configure(map[string]string{"key": "AAAA-BBBBB-CCCCC-DDDDD"}); err == nil {
		t.Fatal("short group accepted")
	}
	if err := f.Configure(map[string]string{}); err != nil {
		t.Fatalf("absent option rejected: %v", err)
	}
}

func TestCDKeyCheck(t *testing.T) {
	t.Run("missing file without key is blocked", func(t *testing.T) {
		state, _, err := (&CDKeyFixup{}).Check(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if state != CheckBlocked {
			t.Fatalf("state = %s, want blocked", state)
		}
	})

	t.Run("missing file with key is needed", func(t *testing.T) {
		state, _, err := configuredCDKey(t, goodKey).Check(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}
		if state != CheckNeeded {
			t.Fatalf("state = %s, want needed", state)
		}
	})

	t.Run("empty file without key is blocked", func(t *testing.T) {
		target := t.TempDir()
		writeCDKey(t, target, "\n")
		state, _, _ := (&CDKeyFixup{}).Check(target)
		if state != CheckBlocked {
			t.Fatalf("state = %s, want blocked", state)
		}
	})

	t.Run("valid key on disk without supplied key is satisfied", func(t *testing.T) {
		target := t.TempDir()
		writeCDKey(t, target, goodKey+"\n")
		state, _, _ := (&CDKeyFixup{}).Check(target)
		if state != CheckSatisfied {
			t.Fatalf("state = %s, want satisfied", state)
		}
	})

	t.Run("garbage on disk is needed", func(t *testing.T) {
		target := t.TempDir()
		writeCDKey(t, target, "put your key here")
		state, _, _ := configuredCDKey(t, goodKey).Check(target)
		if state != CheckNeeded {
			t.Fatalf("state = %s, want needed", state)
		}
	})

	t.Run("different valid key than supplied is needed", func(t *testing.T) {
		target := t.TempDir()
		writeCDKey(t, target, "EEEEE-FFFFF-GGGGG-HHHHH\n")
		state, _, _ := configuredCDKey(t, goodKey).Check(target)
		if state != CheckNeeded {
			t.Fatalf("state = %s, want needed", state)
		}
	})
}

func TestCDKeyApply(t *testing.T) {
	target := t.TempDir()
	f := configuredCDKey(t, goodKey)
	if err := f.Apply(target); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(filepath.Join(target, "System", "cdkey"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(raw)) != goodKey {
		t.Fatalf("cdkey content = %q", raw)
	}

	// Second check must now be satisfied: the step is idempotent.
	state, _, _ := f.Check(target)
	if state != CheckSatisfied {
		t.Fatalf("state after apply = %s, want satisfied", state)
	}
}

func TestCDKeyApplyWithoutKey(t *testing.T) {
	if err := (&CDKeyFixup{}).Apply(t.TempDir()); err == nil {
		t.Fatal("Apply without a key succeeded")
	}
}
