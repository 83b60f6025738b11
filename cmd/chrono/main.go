package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chrono-app/chrono/internal/model"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "chrono",
	Short: "Task manager, focus timer, and analytics",
	Long: `Chrono tracks tasks and focus sessions, scores completed work with
points and badges, and keeps everything reconciled with a hosted
persistence gateway.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&configPath, "config", model.DefaultConfigPath(),
		"Path to the configuration file",
	)

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(toggleCmd)
	rootCmd.AddCommand(subtaskCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(focusCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// fatal prints a formatted error and exits.
func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
