// Package commands implements the schemafaker subcommands.
package commands

import "github.com/spf13/cobra"

// Apply registers every subcommand on rootCmd.
func Apply(rootCmd *cobra.Command) {
	rootCmd.AddCommand(NewGenerateCommand())
	rootCmd.AddCommand(NewDefaultsCommand())
}
