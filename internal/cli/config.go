package cli

import (
	"github.com/spf13/cobra"
)

// configCommand creates the config command, which prints the effective
// configuration after the file and flags are applied.
func (c *CLI) configCommand() *cobra.Command {
	var flags searchFlags

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Long: `Print the effective configuration as TOML.

The output combines the defaults, the file given with --config and any flags,
and can be saved and passed back with --config.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd, &flags)
			if err != nil {
				return err
			}
			return cfg.File().Write(cmd.OutOrStdout())
		},
	}

	flags.register(cmd, true)

	return cmd
}
