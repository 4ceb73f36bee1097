package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/seanhamilton/ut2004install/internal/flags"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Audit an existing install without writing",
	Long: `Check every manifest entry against the target bundle and report
mismatches. No source media is needed and nothing is written.

Exit codes:
	0 = every entry verified
	1 = one or more entries missing, mismatched, or unreadable
	2 = configuration error

Examples:
	ut2004install verify
	ut2004install verify --target "/Applications/Unreal Tournament 2004.app" --console-filter-status FATAL`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runInstall(cmd.Context(), cfg, true))
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().StringVar(&cfg.Install.Target, flags.FlagTarget, cfg.Install.Target, "Installation target bundle directory")
	verifyCmd.Flags().StringVar(&cfg.Install.Manifest, flags.FlagManifest, "", "External YAML manifest replacing the built-in file table")
	verifyCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, "text", "Console output format: text|json|ndjson (default: text)")
	verifyCmd.Flags().StringSliceVar(&cfg.Output.ConsoleFilterStatus, flags.FlagConsoleFilterStatus, nil, "Filter console output by status (OK, COPIED, FATAL, DEFERRED). Comma-separated.")
	verifyCmd.Flags().StringVar(&cfg.Output.Report, flags.FlagReport, "", "Write a Markdown report to this path")
	verifyCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	verifyCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson")
	verifyCmd.Flags().StringSliceVar(&cfg.Output.Emit, flags.FlagEmit, nil, "Emit additional structured stream to stdout: json|ndjson")
	verifyCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output")
}
