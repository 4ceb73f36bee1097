package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/seanhamilton/ut2004install/internal/flags"
	"github.com/seanhamilton/ut2004install/internal/manifest"
)

var manifestListQuiet bool

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Inspect the install manifest",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var manifestListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the effective manifest",
	Long: `Print the effective manifest: the built-in file table, or the file
given via --manifest after validation.

Examples:
	ut2004install manifest list
	ut2004install manifest list --manifest my-pressing.yaml -q`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := manifest.Resolve(cfg.Install.Manifest)
		if err != nil {
			return err
		}

		if manifestListQuiet {
			for _, e := range m.Entries {
				fmt.Fprintln(cmd.OutOrStdout(), e.Path)
			}
			return nil
		}

		bold := color.New(color.Bold)
		bold.Fprintf(cmd.OutOrStdout(), "%-34s %12s  %-5s  %s\n", "PATH", "SIZE", "ROLE", "SHA256")
		for _, e := range m.Entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%-34s %12d  %-5s  %s\n", e.Path, e.Size, e.Role, e.SHA256)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d entries\n", len(m.Entries))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(manifestCmd)
	manifestCmd.AddCommand(manifestListCmd)
	manifestListCmd.Flags().StringVar(&cfg.Install.Manifest, flags.FlagManifest, "", "External YAML manifest replacing the built-in file table")
	manifestListCmd.Flags().BoolVarP(&manifestListQuiet, "quiet", "q", false, "Only print entry paths")
}
