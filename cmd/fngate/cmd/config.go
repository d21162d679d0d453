package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/fn-gate/fngate/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the fully resolved configuration as YAML, after config file,
environment variables, and defaults have been applied.

The auth token value is redacted; only its presence is shown.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		// Never print the secret itself.
		if cfg.Auth.Token != "" {
			cfg.Auth.Token = "<set>"
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		if file := config.ConfigFileUsed(); file != "" {
			fmt.Fprintf(os.Stderr, "# loaded from %s\n", file)
		}
		fmt.Print(string(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
