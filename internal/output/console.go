package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"github.com/seanhamilton/ut2004install/internal/verify"
)

type ConsoleSink struct {
	writer          io.Writer
	format          string // "text", "json", "ndjson"
	mu              sync.Mutex
	results         []verify.EntryResult // For JSON array output
	allowedStatuses map[string]bool
}

func NewConsoleSink(w io.Writer, format string, filterStatuses []string) *ConsoleSink {
	if w == nil {
		w = os.Stdout
	}
	if format == "" {
		format = "text"
	}

	s := &ConsoleSink{
		writer: w,
		format: format,
	}

	if len(filterStatuses) > 0 {
		s.allowedStatuses = make(map[string]bool)
		for _, st := range filterStatuses {
			// Normalize to uppercase for case-insensitive comparison.
			// The status types are "OK", "COPIED", "FATAL", "DEFERRED".
			s.allowedStatuses[strings.ToUpper(st)] = true
		}
	}

	return s
}

var (
	statusOKColor       = color.New(color.FgGreen)
	statusCopiedColor   = color.New(color.FgCyan)
	statusFatalColor    = color.New(color.FgRed, color.Bold)
	statusDeferredColor = color.New(color.FgYellow)
)

func colorizeStatus(st verify.Status) string {
	switch st {
	case verify.StatusOK:
		return statusOKColor.Sprint(string(st))
	case verify.StatusCopied:
		return statusCopiedColor.Sprint(string(st))
	case verify.StatusFatal:
		return statusFatalColor.Sprint(string(st))
	case verify.StatusDeferred:
		return statusDeferredColor.Sprint(string(st))
	default:
		return string(st)
	}
}

func (s *ConsoleSink) Write(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(v)
}

func (s *ConsoleSink) writeLocked(v any) error {
	printf := func(format string, args ...any) error {
		_, err := fmt.Fprintf(s.writer, format, args...)
		return err
	}

	// Apply filtering if configured
	if len(s.allowedStatuses) > 0 {
		if r, ok := v.(verify.EntryResult); ok {
			if !s.allowedStatuses[string(r.Status)] {
				return nil
			}
		}
	}

	switch s.format {
	case "json":
		r, ok := v.(verify.EntryResult)
		if !ok {
			// Ignore non-result events in JSON console mode.
			return nil
		}
		s.results = append(s.results, r)
		return nil
	case "ndjson":
		encoder := json.NewEncoder(s.writer)
		switch t := v.(type) {
		case Event:
			if err := encoder.Encode(t); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case verify.EntryResult:
			e := eventFromResult(t)
			if err := encoder.Encode(e); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	case "text":
		switch t := v.(type) {
		case verify.EntryResult:
			if err := printf("[%s] %s", colorizeStatus(t.Status), t.Path); err != nil {
				return err
			}
			if t.Reason != "" {
				if err := printf(" - %s", t.Reason); err != nil {
					return err
				}
			}
			if err := printf("\n"); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		case Event:
			// Text mode ignores lifecycle events except the closing summary.
			if t.Type != "run.finished" || t.Summary == nil {
				return nil
			}
			sum := t.Summary
			if err := printf("\n%s %d ok, %d copied, %d fatal, %d deferred (%d entries)\n",
				color.New(color.Bold).Sprint("Summary:"),
				sum.OK, sum.Copied, sum.Fatal, sum.Deferred, sum.Total()); err != nil {
				return err
			}
			return flushIfPossible(s.writer)
		default:
			return nil
		}
	default:
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
}

func (s *ConsoleSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.format == "json" {
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s.results); err != nil {
			return err
		}
		return flushIfPossible(s.writer)
	}
	if s.format != "text" && s.format != "ndjson" {
		return fmt.Errorf("unsupported console format: %s", s.format)
	}
	return nil
}
