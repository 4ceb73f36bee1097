package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ut2004install",
	Short: "Install, verify, and patch Unreal Tournament 2004 from mounted media",
	Long: `ut2004install copies and verifies the game data files of Unreal
Tournament 2004 from mounted install media into an application bundle,
overlays the official patch files, and offers the known post-install
fix-ups (CD key placement, library symlink repair).

The tool never mounts disk images itself: insert the CD or attach the
patch image first so it is addressable as a directory path.

Examples:
	# Discover the install CD among mounted volumes and install
	ut2004install install

	# Install from an explicit source into an explicit bundle
	ut2004install install /Volumes/UT2004_CD1 --target "/Applications/Unreal Tournament 2004.app"

	# Audit an existing install without writing
	ut2004install verify --target "/Applications/Unreal Tournament 2004.app"

	# Post-install fix-ups
	ut2004install fixup --cdkey AAAAA-BBBBB-CCCCC-DDDDD

Exit codes:
	0 = every manifest entry verified
	1 = one or more entries could not be brought to a verified state
	2 = no install media found, or the manifest/configuration is invalid`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, "verbose", false, "Enable verbose diagnostics (prints every probed volume and full error details)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}
