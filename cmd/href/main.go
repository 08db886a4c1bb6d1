package main

import (
	"fmt"
	"os"

	"github.com/aofei/href"
	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "href: %s\n", err)
		os.Exit(1)
	}
}

// rootCmd returns the root command of the CLI.
func rootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:   "href",
		Short: "Parse, inspect and rewrite URLs",
		Long: `href splits URL-like strings into their components, prints them,
and rewrites them component by component.

Unmodified input is always printed back exactly as it was given.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			href.Default.LoggerOutput = cmd.ErrOrStderr()
			if configFile == "" {
				return nil
			}

			return href.Default.LoadConfig(configFile)
		},
	}

	cmd.PersistentFlags().StringVarP(
		&configFile,
		"config",
		"c",
		"",
		"Config file (.toml, .yaml, .json or .ini)",
	)

	cmd.AddCommand(
		parseCmd(),
		getCmd(),
		setCmd(),
		rewriteCmd(),
		versionCmd(),
	)

	return cmd
}
