package verify

import "github.com/seanhamilton/ut2004install/internal/manifest"

// Status is the terminal outcome of one manifest entry for a run.
type Status string

const (
	// StatusOK: the target file already matched the manifest.
	StatusOK Status = "OK"

	// StatusCopied: the file was copied from its source volume and
	// re-verified clean.
	StatusCopied Status = "COPIED"

	// StatusFatal: the entry could not be brought to a verified state.
	StatusFatal Status = "FATAL"

	// StatusDeferred: a patch entry whose patch image was not mounted.
	StatusDeferred Status = "DEFERRED"
)

// EntryResult records the terminal outcome of one manifest entry. Exactly
// one result is produced per entry per run.
type EntryResult struct {
	Path   string        `json:"path"`
	Role   manifest.Role `json:"role"`
	Status Status        `json:"status"`
	// Reason explains non-OK outcomes (missing, digest mismatch, copy error).
	Reason string `json:"reason,omitempty"`
}

// Summary aggregates entry outcomes for the final report.
type Summary struct {
	OK       int `json:"ok"`
	Copied   int `json:"copied"`
	Fatal    int `json:"fatal"`
	Deferred int `json:"deferred"`
}

func (s *Summary) Add(r EntryResult) {
	switch r.Status {
	case StatusOK:
		s.OK++
	case StatusCopied:
		s.Copied++
	case StatusFatal:
		s.Fatal++
	case StatusDeferred:
		s.Deferred++
	}
}

// Total is the number of entries the summary has absorbed.
func (s *Summary) Total() int {
	return s.OK + s.Copied + s.Fatal + s.Deferred
}
