package postinstall

// Outcome classifies what running one fixup did to the bundle.
type Outcome string

const (
	OutcomeUnchanged Outcome = "UNCHANGED"
	OutcomeApplied   Outcome = "APPLIED"
	OutcomeWouldFix  Outcome = "WOULD FIX"
	OutcomeSkipped   Outcome = "SKIPPED"
	OutcomeFailed    Outcome = "FAILED"
)

type StepResult struct {
	ID      string
	Outcome Outcome
	Message string
}

// Run executes fixups against the target with check-before-apply
// semantics. With apply false it only reports what each fixup would do.
// A failing step does not stop later steps.
func Run(fixups []Fixup, target string, apply bool) []StepResult {
	results := make([]StepResult, 0, len(fixups))
	for _, f := range fixups {
		state, detail, err := f.Check(target)
		switch {
		case err != nil:
			results = append(results, StepResult{ID: f.ID(), Outcome: OutcomeFailed, Message: err.Error()})
			continue
		case state == CheckSatisfied:
			results = append(results, StepResult{ID: f.ID(), Outcome: OutcomeUnchanged})
			continue
		case state == CheckBlocked:
			results = append(results, StepResult{ID: f.ID(), Outcome: OutcomeSkipped, Message: detail})
			continue
		}

		if !apply {
			results = append(results, StepResult{ID: f.ID(), Outcome: OutcomeWouldFix, Message: detail})
			continue
		}
		if err := f.Apply(target); err != nil {
			results = append(results, StepResult{ID: f.ID(), Outcome: OutcomeFailed, Message: err.Error()})
			continue
		}
		results = append(results, StepResult{ID: f.ID(), Outcome: OutcomeApplied, Message: detail})
	}
	return results
}

// AnyFailed reports whether a step failed, for exit-code mapping.
func AnyFailed(results []StepResult) bool {
	for _, r := range results {
		if r.Outcome == OutcomeFailed {
			return true
		}
	}
	return false
}
