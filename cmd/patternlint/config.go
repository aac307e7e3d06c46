package main

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"github.com/viant/patternlint/config"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config [flags]",
	Short: "Print the default configuration",
	Long:  `Config prints the default thresholds, vocabularies and scan settings, ready to be edited and passed back with analyze --config.`,
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func init() {
	configCmd.Flags().StringP("format", "f", "yaml", "config format (yaml|toml)")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	return writeConfig(os.Stdout, format, config.Default())
}

func writeConfig(w io.Writer, format string, cfg *config.Config) error {
	switch format {
	case "yaml", "yml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(cfg); err != nil {
			return err
		}
		return encoder.Close()
	case "toml":
		return toml.NewEncoder(w).Encode(cfg)
	}
	return fmt.Errorf("unknown config format %q, expected yaml or toml", format)
}
