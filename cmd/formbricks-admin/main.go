package main

import (
	"os"

	"github.com/ranayash24/formbricks/internal/admin"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "formbricks-admin",
		Short: "Operator tooling for the formbricks backend",
		Long: `formbricks-admin talks directly to the database: run schema migrations,
seed development data and manage environment API keys.`,
	}

	rootCmd.AddCommand(admin.NewMigrateCmd())
	rootCmd.AddCommand(admin.NewSeedCmd())
	rootCmd.AddCommand(admin.NewEnvCmd())
	rootCmd.AddCommand(admin.NewAPIKeyCmd())

	if err := rootCmd.Execute(); err != nil {
		// Cobra prints the error, so we just need to exit.
		os.Exit(1)
	}
}
