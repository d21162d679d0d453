// Package cmd provides the CLI commands for fngate.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fn-gate/fngate/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "fngate",
	Short: "fngate - HTTP gateway for serverless-style handlers",
	Long: `fngate adapts serverless-style request handlers to a conventional
HTTP server, adding shared-secret bearer authentication and defensive
normalization of arbitrary JSON input.

Quick start:
  INTERNAL_AUTH_TOKEN=<secret> fngate start

Configuration:
  Config is loaded from fngate.yaml in the current directory,
  $HOME/.fngate/, or /etc/fngate/. No config file is required.

  Environment variables override config values with the FNGATE_ prefix,
  e.g. FNGATE_SERVER_PORT=8080. The auth token and listen port also honor
  their bare names INTERNAL_AUTH_TOKEN and PORT.

Commands:
  start       Start the gateway server
  config      Print the effective configuration
  version     Print version information`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./fngate.yaml)")
}

func initConfig() {
	config.InitViper(cfgFile)
}
