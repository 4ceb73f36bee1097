package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/seanhamilton/ut2004install/internal/flags"
	"github.com/seanhamilton/ut2004install/internal/postinstall"
)

var fixupCmd = &cobra.Command{
	Use:   "fixup",
	Short: "Run the post-install fix-ups (CD key, library symlinks)",
	Long: `Run the post-install fix-ups against the target bundle.

Each fix-up checks the bundle before touching it and is idempotent:
running fixup against an already-correct bundle changes nothing.

Steps:
	cdkey     Place the user-supplied CD key at System/cdkey. The key is
	          never generated; without --cdkey the step is skipped when
	          the file is absent or empty.
	symlinks  Repair the supporting-library symlinks in System/.

Exit codes:
	0 = no step failed (skipped and unchanged steps are fine)
	1 = one or more steps failed
	2 = configuration error

Examples:
	ut2004install fixup --cdkey AAAAA-BBBBB-CCCCC-DDDDD
	ut2004install fixup --only symlinks --check-only`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runFixups(cmd))
	},
}

func runFixups(cmd *cobra.Command) int {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	fixups, err := postinstall.Resolve(cfg.Fixup.Only)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	for _, f := range fixups {
		cf, ok := f.(postinstall.ConfigurableFixup)
		if !ok || f.ID() != "cdkey" {
			continue
		}
		if err := cf.Configure(map[string]string{"key": cfg.Fixup.CDKey}); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 2
		}
	}

	results := postinstall.Run(fixups, cfg.Install.Target, !cfg.Fixup.CheckOnly)
	for _, r := range results {
		line := fmt.Sprintf("[%s] %s", colorizeOutcome(r.Outcome), r.ID)
		if r.Message != "" {
			line += " - " + r.Message
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}

	if postinstall.AnyFailed(results) {
		return 1
	}
	return 0
}

func colorizeOutcome(o postinstall.Outcome) string {
	switch o {
	case postinstall.OutcomeApplied:
		return color.New(color.FgCyan).Sprint(string(o))
	case postinstall.OutcomeUnchanged:
		return color.New(color.FgGreen).Sprint(string(o))
	case postinstall.OutcomeFailed:
		return color.New(color.FgRed, color.Bold).Sprint(string(o))
	case postinstall.OutcomeWouldFix, postinstall.OutcomeSkipped:
		return color.New(color.FgYellow).Sprint(string(o))
	default:
		return string(o)
	}
}

func init() {
	rootCmd.AddCommand(fixupCmd)

	fixupCmd.Flags().StringVar(&cfg.Install.Target, flags.FlagTarget, cfg.Install.Target, "Installation target bundle directory")
	fixupCmd.Flags().StringVar(&cfg.Fixup.CDKey, flags.FlagCDKey, "", "Retail CD key to place at System/cdkey (XXXXX-XXXXX-XXXXX-XXXXX)")
	fixupCmd.Flags().StringVar(&cfg.Fixup.Only, flags.FlagOnly, "", "Run only these fixup IDs (comma-separated; empty = all)")
	fixupCmd.Flags().BoolVar(&cfg.Fixup.CheckOnly, flags.FlagCheckOnly, false, "Report what each fixup would do without applying")
}
