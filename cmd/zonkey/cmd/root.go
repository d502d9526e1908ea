package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "zonkey [address]",
	Short: "Zonkey script interpreter",
	Long: `zonkey runs a Zonkey program: a statically-typed scripting language
whose standard library renders a small page of UI elements and reacts to
button clicks and confirmed input.

The argument is an address: a zonkey:, file:, http:, or https: prefixed
path, or a bare path (treated the same as file:).`,
	Version:      Version,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runScript,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`zonkey version {{.Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
