package commands

import (
	"github.com/speakeasy-api/schemafaker/faker"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// NewDefaultsCommand returns the command printing the default generator
// options in the format accepted by 'generate --config'.
func NewDefaultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "defaults",
		Short: "Print the default generator options as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(faker.DefaultConfig()); err != nil {
				return err
			}
			return enc.Close()
		},
	}
}
