// Command storefrontctl runs storefront finance computations from the shell
// and maintenance jobs against the database.
package main

import (
	"fmt"
	"os"

	"github.com/ceodigitcare/fastflow01-sub002/internal/infrastructure/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

type rootOptions struct {
	envFile  string
	logLevel string
	log      *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:          "storefrontctl",
		Short:        "Storefront finance tools",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.envFile != "" {
				if err := godotenv.Load(opts.envFile); err != nil {
					return fmt.Errorf("failed to load %s: %w", opts.envFile, err)
				}
			}
			log, err := logger.New(logger.ConfigFor(opts.logLevel, "console", "stderr"))
			if err != nil {
				return err
			}
			opts.log = log
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Load environment variables from this file first")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	cmd.AddCommand(
		newTotalsCmd(),
		newAccountCodeCmd(),
		newConvertCmd(),
		newOverdueCmd(opts),
	)
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
