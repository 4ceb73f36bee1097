package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/seanhamilton/ut2004install/internal/config"
	"github.com/seanhamilton/ut2004install/internal/flags"
	"github.com/seanhamilton/ut2004install/internal/installer"
	"github.com/seanhamilton/ut2004install/internal/manifest"
	"github.com/seanhamilton/ut2004install/internal/media"
	"github.com/seanhamilton/ut2004install/internal/output"
)

var cfg = config.New()

var installCmd = &cobra.Command{
	Use:   "install [source-path]",
	Short: "Copy, verify, and patch game data into the target bundle",
	Long: `Copy, verify, and patch the game data files into the target bundle.

Every manifest entry is processed exactly once, strictly in order: the
target file is checksummed against the manifest, copied from its source
volume if missing or mismatched, and re-verified after the copy. Entries
already verified are never re-copied, so re-running against a complete
bundle is a no-op.

Patch entries come from the mounted patch image. If no patch image is
found they are deferred and listed in the report; deferral alone never
fails the run.

Media discovery:
	With no source-path argument, every directory one level below the
	standard mount roots (/Volumes, /media, /run/media, /mnt) is probed
	for a recognizable install tree.

Output:
	Console output is controlled by --console-format (default: text).
	Structured outputs can be written via:
	- --out / --out-format: write an aggregate JSON array or NDJSON stream to a file
	- --emit: write an additional structured stream to stdout (json or ndjson)
	- --report: write a Markdown install report
	- --no-console: suppress the console sink (use with --emit/--out)

Exit codes:
	0 = every entry verified (deferred patch entries allowed)
	1 = one or more fatal entries
	2 = media not found / configuration error (no writes attempted)

Examples:
	ut2004install install
	ut2004install install /Volumes/UT2004_CD1 --patch-image /Volumes/UT2004Patch
	ut2004install install --dry-run
	ut2004install install --no-console --emit ndjson`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			cfg.Install.Source = args[0]
		}
		os.Exit(runInstall(cmd.Context(), cfg, false))
	},
}

// runInstall is the shared body of the install and verify commands.
// It returns the process exit code rather than calling os.Exit so tests
// can drive it directly.
func runInstall(ctx context.Context, cfg *config.Config, verifyOnly bool) int {
	if ctx == nil {
		ctx = context.Background()
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return installer.ExitCodeForRun(true, false)
	}

	m, err := manifest.Resolve(cfg.Install.Manifest)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return installer.ExitCodeForRun(true, false)
	}

	ins := &installer.Installer{
		Manifest:   m,
		Target:     cfg.Install.Target,
		DryRun:     cfg.Install.DryRun,
		VerifyOnly: verifyOnly,
	}

	if !verifyOnly {
		if !cfg.Output.NoConsole {
			fmt.Fprintln(os.Stderr, "Locating install media...")
		}
		source, err := media.LocateInstall(ctx, cfg.Install.Source, m)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return installer.ExitCodeForRun(true, false)
		}
		ins.Source = source
		if cfg.Runtime.Verbose {
			fmt.Fprintf(os.Stderr, "Install media: %s\n", source)
		}

		if m.HasPatchEntries() {
			patch, err := media.LocatePatch(ctx, cfg.Install.PatchImage, m)
			if err != nil {
				var nf *media.NotFoundError
				if !errors.As(err, &nf) {
					fmt.Fprintf(os.Stderr, "Error: %v\n", err)
					return installer.ExitCodeForRun(true, false)
				}
				// Absence of the patch image defers patch entries; it never
				// blocks the base install.
				if !cfg.Output.NoConsole {
					fmt.Fprintln(os.Stderr, "No patch image mounted; patch entries will be deferred.")
				}
			} else {
				ins.PatchImage = patch
				if cfg.Runtime.Verbose {
					fmt.Fprintf(os.Stderr, "Patch image: %s\n", patch)
				}
			}
		}
	}

	outMgr, err := setupOutputManager(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output sinks: %v\n", err)
		return installer.ExitCodeForRun(true, false)
	}
	defer outMgr.Close()

	return ins.Run(ctx, outMgr)
}

func setupOutputManager(cfg *config.Config) (*output.Manager, error) {
	outMgr := output.NewManager()

	// Console Sink
	if !cfg.Output.NoConsole {
		if err := outMgr.AddSink(output.NewConsoleSink(nil, cfg.Output.ConsoleFormat, cfg.Output.ConsoleFilterStatus)); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Emit Sinks (additional structured streams)
	for _, emit := range cfg.Output.Emit {
		es, err := output.NewEmitSink(os.Stdout, emit)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(es); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// File Sink
	if cfg.Output.Out != "" {
		fs, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(fs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	// Report Sink
	if cfg.Output.Report != "" {
		rs, err := output.NewReportSink(cfg.Output.Report)
		if err != nil {
			outMgr.Close()
			return nil, err
		}
		if err := outMgr.AddSink(rs); err != nil {
			outMgr.Close()
			return nil, err
		}
	}

	return outMgr, nil
}

func init() {
	rootCmd.AddCommand(installCmd)

	// Install
	installCmd.Flags().StringVar(&cfg.Install.Target, flags.FlagTarget, cfg.Install.Target, "Installation target bundle directory")
	installCmd.Flags().StringVar(&cfg.Install.PatchImage, flags.FlagPatchImage, "", "Mounted patch image directory (default: discovered among mounted volumes)")
	installCmd.Flags().StringVar(&cfg.Install.Manifest, flags.FlagManifest, "", "External YAML manifest replacing the built-in file table")
	installCmd.Flags().BoolVar(&cfg.Install.DryRun, flags.FlagDryRun, false, "Verify and print the copy plan without writing")

	// Output
	installCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, "text", "Console output format: text|json|ndjson (default: text)")
	installCmd.Flags().StringSliceVar(&cfg.Output.ConsoleFilterStatus, flags.FlagConsoleFilterStatus, nil, "Filter console output by status (OK, COPIED, FATAL, DEFERRED). Comma-separated.")
	installCmd.Flags().StringVar(&cfg.Output.Report, flags.FlagReport, "", "Write a Markdown install report to this path")
	installCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	installCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	installCmd.Flags().StringSliceVar(&cfg.Output.Emit, flags.FlagEmit, nil, "Emit additional structured stream to stdout: json|ndjson (repeatable; comma-separated accepted)")
	installCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --emit/--out/--report)")
}
