package cmd

import (
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version = "0.1.0-dev"
)

var rootCmd = &cobra.Command{
	Use:   "glyphc",
	Short: "Glyph language compiler",
	Long: `glyphc compiles Glyph source files (.gly): a small statically typed,
class-based imperative language.

Source files are lexed, parsed and type-resolved in parallel; the
resolved form is handed to the code-generation backend.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
