package flags

// Package flags defines canonical CLI flag names shared across the CLI.
// Keeping these as constants avoids drift between Cobra flag wiring and
// other code paths that reference flags (help text, error messages).
// IMPORTANT: These are flag *names* without leading dashes.
const (
	// Install
	FlagTarget     = "target"
	FlagPatchImage = "patch-image"
	FlagManifest   = "manifest"
	FlagDryRun     = "dry-run"

	// Output
	FlagConsoleFormat       = "console-format"
	FlagConsoleFilterStatus = "console-filter-status"
	FlagReport              = "report"
	FlagOut                 = "out"
	FlagOutFormat           = "out-format"
	FlagEmit                = "emit"
	FlagNoConsole           = "no-console"

	// Fixup
	FlagCDKey     = "cdkey"
	FlagOnly      = "only"
	FlagCheckOnly = "check-only"
)
