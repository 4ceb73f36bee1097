// Package postinstall holds the optional fix-up steps that follow a core
// install: placing the CD key and repairing supporting-library symlinks.
// Every step is idempotent and checks before it applies; running fixups
// against an already-correct bundle changes nothing.
package postinstall

// CheckState is the outcome of probing a fixup's precondition.
type CheckState string

const (
	// CheckSatisfied: the bundle already matches; Apply is a no-op.
	CheckSatisfied CheckState = "satisfied"

	// CheckNeeded: the bundle diverges and Apply would fix it.
	CheckNeeded CheckState = "needed"

	// CheckBlocked: the fixup cannot run (missing input, e.g. no CD key
	// supplied). Not an error; reported and skipped.
	CheckBlocked CheckState = "blocked"
)

type Fixup interface {
	ID() string
	Title() string

	// Check probes the target bundle without writing.
	Check(target string) (CheckState, string, error)

	// Apply mutates the target bundle. Only called after Check reported
	// CheckNeeded.
	Apply(target string) error
}

// Option describes a configurable input a fixup accepts.
type Option struct {
	Name        string
	Description string
}

type ConfigurableFixup interface {
	Fixup
	Options() []Option
	Configure(opts map[string]string) error
}
