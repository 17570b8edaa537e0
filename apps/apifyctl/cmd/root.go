package cmd

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/yonnyZer0/apify/pkg/aplog"
	"github.com/yonnyZer0/apify/pkg/apsdk"
)

type contextKey string

const configContextKey contextKey = "apifyconfig"

var (
	cfgFile string
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "apifyctl",
		Short: "CLI for the Apify platform API (actors, runs, logs, key-value stores)",
		Long: `apifyctl is a small command-line tool for working with the Apify platform
API. It provides subcommands to manage credentials, list and call actors,
inspect runs and their logs, and read/write key-value store records. Use the
auth subcommands to store and clear your API token; records larger than the
platform's direct-upload threshold are transparently uploaded to object
storage via a signed URL.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Local .env files are a convenient place for APIFY_TOKEN.
			_ = godotenv.Load()

			cfg, err := apsdk.LoadConfig(cfgFile)
			if err != nil {
				return err
			}

			if err := cfg.Viper().BindPFlags(cmd.Flags()); err != nil {
				return err
			}

			ctx := context.WithValue(cmd.Context(), configContextKey, cfg)
			cmd.SetContext(ctx)

			return nil
		},
	}
)

// GetConfig retrieves the Config from the command context
func GetConfig(cmd *cobra.Command) (*apsdk.Config, error) {
	ctx := cmd.Context()
	cfg, ok := ctx.Value(configContextKey).(*apsdk.Config)
	if !ok {
		return nil, errors.New("no config in context")
	}
	return cfg, nil
}

// getSdk builds an SDK instance from the command's config, attaching a
// debug logger when --verbose is set.
func getSdk(cmd *cobra.Command) (*apsdk.Sdk, error) {
	cfg, err := GetConfig(cmd)
	if err != nil {
		return nil, err
	}
	var logger *slog.Logger
	if verbose {
		logger = aplog.NewVerbose().Logger
	}
	return apsdk.NewSdk(cfg, logger)
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML). Searches: apify.yaml, .apify/config.yaml")
	rootCmd.PersistentFlags().String("base-url", "", "Base URL for the Apify API (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every API request")
}
