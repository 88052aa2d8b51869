package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/wellpath/portal/cmd/wellnessctl/cmd"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "wellnessctl",
		Short:         "Operator tools for the wellness portal",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(cmd.SeedCmd())
	rootCmd.AddCommand(cmd.AssignCmd())
	rootCmd.AddCommand(cmd.UnassignCmd())
	rootCmd.AddCommand(cmd.RemindCmd())
	rootCmd.AddCommand(cmd.MigrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
