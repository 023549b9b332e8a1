// Package cli is the gitscout command line: search, serve and version
package cli

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const app = "gitscout"

// NewRoot builds the command tree
func NewRoot() *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:           app,
		Short:         "gitscout finds GitHub engineers matching a job description",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if envFile == "" {
				_ = godotenv.Load()
				return nil
			}
			return godotenv.Load(envFile)
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "dotenv file to load (default .env when present)")

	root.AddCommand(newSearchCmd(), newServeCmd(), newVersionCmd())
	return root
}

// Execute runs the command tree until ctx ends
func Execute(ctx context.Context) error {
	return NewRoot().ExecuteContext(ctx)
}
