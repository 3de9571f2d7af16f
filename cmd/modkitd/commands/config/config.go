// Package config implements the config subcommands for modkitd.
package config

import "github.com/spf13/cobra"

// Cmd is the parent command for config operations.
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Inspect, validate, and describe the modkitd configuration.`,
}

func init() {
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(validateCmd)
	Cmd.AddCommand(schemaCmd)
}
