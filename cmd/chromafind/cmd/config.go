package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/glint-vision/chromafind/internal/config"
)

// configCmd groups configuration inspection subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and validate configuration",
}

// configShowCmd prints the effective configuration after merging files,
// environment variables and flags.
var configShowCmd = &cobra.Command{
	Use:          "show",
	Short:        "Print the effective configuration as YAML",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to marshal configuration: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// configValidateCmd checks a configuration file without running anything.
var configValidateCmd = &cobra.Command{
	Use:          "validate [file]",
	Short:        "Validate a configuration file",
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		loader := config.NewLoader()

		var err error
		if len(args) == 1 {
			_, err = loader.LoadWithFile(args[0])
		} else if cfgFile != "" {
			_, err = loader.LoadWithFile(cfgFile)
		} else {
			_, err = loader.Load()
		}
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
		return nil
	},
}

// configDefaultCmd prints the built-in defaults, useful as a starting
// point for a config file.
var configDefaultCmd = &cobra.Command{
	Use:          "default",
	Short:        "Print the built-in default configuration as YAML",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(config.DefaultConfig())
		if err != nil {
			return fmt.Errorf("failed to marshal configuration: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configDefaultCmd)
}
