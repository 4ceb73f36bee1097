package output

import "github.com/seanhamilton/ut2004install/internal/verify"

// Event is a lifecycle record for NDJSON streaming output.
//
// In NDJSON mode, sinks emit Events (one JSON object per line), including:
// - run.started
// - entry.result
// - run.finished
//
// JSON mode remains an aggregate of verify.EntryResult values.
type Event struct {
	Type string `json:"type"`
	*verify.EntryResult
	Entries    int             `json:"entries,omitempty"`
	Source     string          `json:"source,omitempty"`
	Target     string          `json:"target,omitempty"`
	PatchImage string          `json:"patch_image,omitempty"`
	Summary    *verify.Summary `json:"summary,omitempty"`
	ExitCode   int             `json:"exit_code,omitempty"`
}

func eventFromResult(r verify.EntryResult) Event {
	return Event{Type: "entry.result", EntryResult: &r}
}
