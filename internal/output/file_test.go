package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seanhamilton/ut2004install/internal/verify"
)

func TestFileSinkFormatInference(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		format  string
		wantErr bool
	}{
		{name: "out.json"},
		{name: "out.ndjson"},
		{name: "out.jsonl"},
		{name: "out.txt", wantErr: true},
		{name: "out", wantErr: true},
		{name: "out.txt", format: "json"},
		{name: "out2.txt", format: "xml", wantErr: true},
	}
	for _, tt := range tests {
		s, err := NewFileSink(filepath.Join(dir, tt.name), tt.format)
		if tt.wantErr {
			if err == nil {
				_ = s.Close()
				t.Errorf("%s/%s: want error", tt.name, tt.format)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s/%s: %v", tt.name, tt.format, err)
			continue
		}
		_ = s.Close()
	}
}

func TestFileSinkJSONAggregate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	s, err := NewFileSink(path, "")
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Write(Event{Type: "run.started"})
	_ = s.Write(verify.EntryResult{Status: verify.StatusCopied, Path: "System/B.u"})
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	raw, _ := os.ReadFile(path)
	var parsed []verify.EntryResult
	if err := json.Unmarshal(raw, &parsed); err != nil {
		t.Fatalf("not a JSON array: %v", err)
	}
	if len(parsed) != 1 || parsed[0].Path != "System/B.u" {
		t.Fatalf("parsed = %+v", parsed)
	}
}

func TestFileSinkNDJSONStream(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ndjson")
	s, err := NewFileSink(path, "")
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Write(Event{Type: "run.started", Entries: 1})
	_ = s.Write(verify.EntryResult{Status: verify.StatusOK, Path: "System/A.u"})
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	raw, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
}

func TestEmitSink(t *testing.T) {
	if _, err := NewEmitSink(nil, "json"); err == nil {
		t.Fatal("nil writer accepted")
	}
	if _, err := NewEmitSink(&bytes.Buffer{}, "yaml"); err == nil {
		t.Fatal("unsupported format accepted")
	}

	var buf bytes.Buffer
	s, err := NewEmitSink(&buf, "ndjson")
	if err != nil {
		t.Fatal(err)
	}
	_ = s.Write(verify.EntryResult{Status: verify.StatusOK, Path: "System/A.u"})
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	var e map[string]any
	if err := json.Unmarshal(buf.Bytes(), &e); err != nil {
		t.Fatalf("emit output is not JSON: %v", err)
	}
	if e["type"] != "entry.result" {
		t.Fatalf("type = %v", e["type"])
	}
}
