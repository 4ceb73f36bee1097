package output

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/seanhamilton/ut2004install/internal/verify"
)

// ReportSink aggregates the whole run and writes a Markdown install report
// on Close. Unlike the streaming sinks it holds everything in memory; an
// install run has at most a few hundred entries.
type ReportSink struct {
	path         string
	file         *os.File
	mu           sync.Mutex
	results      []verify.EntryResult
	source       string
	target       string
	patchImage   string
	exitCode     int
	haveExitCode bool
	now          func() time.Time
}

func NewReportSink(path string) (*ReportSink, error) {
	if path == "" {
		return nil, fmt.Errorf("report path required")
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create report file: %w", err)
	}

	return &ReportSink{
		path: path,
		file: f,
		now:  time.Now,
	}, nil
}

func (s *ReportSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch t := v.(type) {
	case verify.EntryResult:
		s.results = append(s.results, t)
	case Event:
		switch t.Type {
		case "run.started":
			s.source = t.Source
			s.target = t.Target
			s.patchImage = t.PatchImage
		case "run.finished":
			s.exitCode = t.ExitCode
			s.haveExitCode = true
		}
	}
	return nil
}

func (s *ReportSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sum verify.Summary
	var fatals, deferred []verify.EntryResult
	for _, r := range s.results {
		sum.Add(r)
		switch r.Status {
		case verify.StatusFatal:
			fatals = append(fatals, r)
		case verify.StatusDeferred:
			deferred = append(deferred, r)
		}
	}

	var b strings.Builder
	b.WriteString("# UT2004 Install Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", s.now().UTC().Format(time.RFC3339))

	if s.source != "" {
		fmt.Fprintf(&b, "- Source: `%s`\n", s.source)
	}
	if s.patchImage != "" {
		fmt.Fprintf(&b, "- Patch image: `%s`\n", s.patchImage)
	}
	if s.target != "" {
		fmt.Fprintf(&b, "- Target: `%s`\n", s.target)
	}
	if s.haveExitCode {
		fmt.Fprintf(&b, "- Exit code: %d\n", s.exitCode)
	}
	b.WriteString("\n## Summary\n\n")
	b.WriteString("| Outcome | Count |\n|---|---|\n")
	fmt.Fprintf(&b, "| OK (pre-existing) | %d |\n", sum.OK)
	fmt.Fprintf(&b, "| Copied | %d |\n", sum.Copied)
	fmt.Fprintf(&b, "| Fatal | %d |\n", sum.Fatal)
	fmt.Fprintf(&b, "| Deferred | %d |\n", sum.Deferred)

	if len(fatals) > 0 {
		b.WriteString("\n## Fatal entries\n\n")
		for _, r := range fatals {
			fmt.Fprintf(&b, "- `%s` (%s): %s\n", r.Path, r.Role, r.Reason)
		}
	}

	if len(deferred) > 0 {
		b.WriteString("\n## Deferred patch entries\n\n")
		b.WriteString("Mount the patch image and re-run to install these:\n\n")
		for _, r := range deferred {
			fmt.Fprintf(&b, "- `%s`\n", r.Path)
		}
	}

	if sum.Fatal == 0 && sum.Deferred == 0 && sum.Total() > 0 {
		b.WriteString("\nInstallation is complete and verified.\n")
	}

	if _, err := s.file.WriteString(b.String()); err != nil {
		_ = s.file.Close()
		return err
	}
	return s.file.Close()
}
