package output

import (
	"errors"
	"testing"

	"github.com/seanhamilton/ut2004install/internal/verify"
)

type stubSink struct {
	writes   int
	closes   int
	writeErr error
}

func (s *stubSink) Write(v any) error {
	s.writes++
	return s.writeErr
}

func (s *stubSink) Close() error {
	s.closes++
	return nil
}

func TestManagerFansOut(t *testing.T) {
	mgr := NewManager()
	a, b := &stubSink{}, &stubSink{}
	if err := mgr.AddSink(a); err != nil {
		t.Fatal(err)
	}
	if err := mgr.AddSink(b); err != nil {
		t.Fatal(err)
	}

	if err := mgr.Write(verify.EntryResult{Path: "p"}); err != nil {
		t.Fatal(err)
	}
	if a.writes != 1 || b.writes != 1 {
		t.Fatalf("writes = %d/%d, want 1/1", a.writes, b.writes)
	}

	if err := mgr.Close(); err != nil {
		t.Fatal(err)
	}
	if a.closes != 1 || b.closes != 1 {
		t.Fatalf("closes = %d/%d, want 1/1", a.closes, b.closes)
	}
}

func TestManagerKeepsWritingPastFailures(t *testing.T) {
	mgr := NewManager()
	bad := &stubSink{writeErr: errors.New("disk full")}
	good := &stubSink{}
	_ = mgr.AddSink(bad)
	_ = mgr.AddSink(good)

	err := mgr.Write(verify.EntryResult{Path: "p"})
	if err == nil {
		t.Fatal("failing sink produced no error")
	}
	if good.writes != 1 {
		t.Fatal("healthy sink was skipped after a failure")
	}
}

func TestManagerRejectsNilSink(t *testing.T) {
	if err := NewManager().AddSink(nil); err == nil {
		t.Fatal("nil sink accepted")
	}
}
