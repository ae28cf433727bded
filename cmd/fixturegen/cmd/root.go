// Package cmd implements the fixturegen CLI.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/teranos/fixturegen/config"
	"github.com/teranos/fixturegen/logger"
)

var (
	flagJSON       bool
	flagConfigFile string
)

// RootCmd is the fixturegen entry point.
var RootCmd = &cobra.Command{
	Use:   "fixturegen",
	Short: "Generate synthetic multi-language benchmark corpora",
	Long: `fixturegen renders a language-agnostic blueprint of a synthetic web
application into idiomatic-looking source trees for Go, Python, Ruby, Rust,
and TypeScript.

The generated corpora exist to exercise code-intelligence tools against
known structural hazards: cross-file name collisions, deep call chains,
diamond inheritance, and high-fanout utilities. Generation is idempotent:
re-running against a populated tree writes nothing and never alters a
pre-existing file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Initialize(flagJSON)
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Structured JSON log output")
	RootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "", "Config file path (default: ./fixturegen.toml)")

	RootCmd.AddCommand(GenerateCmd)
	RootCmd.AddCommand(CheckCmd)
	RootCmd.AddCommand(VersionCmd)
}

// loadConfig resolves configuration, honoring an explicit --config path.
func loadConfig() (*config.Config, error) {
	if flagConfigFile != "" {
		return config.LoadFromFile(flagConfigFile)
	}
	return config.Load()
}
