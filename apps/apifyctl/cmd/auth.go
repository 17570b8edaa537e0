package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/yonnyZer0/apify/pkg/apclient"
	"github.com/yonnyZer0/apify/pkg/apsdk"
)

var authToken string

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage API credentials",
}

var loginCmd = &cobra.Command{
	Use:   "login --token <TOKEN>",
	Short: "Store an API token for subsequent commands",
	Long: `Store an Apify API token in the OS keyring, keyed by the configured base
URL, so later commands can authenticate without passing the token around.

Examples:
	apifyctl auth login --token apify_api_...`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig(cmd)
		if err != nil {
			return err
		}
		if authToken == "" {
			return fmt.Errorf("--token is required")
		}
		baseURL := cfg.GetString(apsdk.BaseUrlKey)

		// Validate the token before persisting it.
		probe := apclient.New(apclient.Config{BaseURL: baseURL, Token: authToken})
		user, err := probe.Me(cmd.Context())
		if err != nil {
			return fmt.Errorf("token check failed: %w", err)
		}

		if err := apsdk.SaveToken(baseURL, authToken); err != nil {
			log.Printf("warning: failed to save token to keyring: %v", err)
		} else {
			fmt.Printf("Logged in as: %s\n", user.Username)
			fmt.Println("Access token saved")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := GetConfig(cmd)
		if err != nil {
			return err
		}
		if err := apsdk.DeleteToken(cfg.GetString(apsdk.BaseUrlKey)); err != nil {
			return fmt.Errorf("failed to remove token: %w", err)
		}
		fmt.Println("Access token removed")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the account the stored token belongs to",
	RunE: func(cmd *cobra.Command, args []string) error {
		sdk, err := getSdk(cmd)
		if err != nil {
			return err
		}
		if err := sdk.RequireToken(); err != nil {
			exitIfClientError(err)
		}
		user, err := sdk.Client.Me(cmd.Context())
		if err != nil {
			exitIfClientError(err)
		}
		fmt.Printf("Logged in as: %s (%s)\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)
	authCmd.AddCommand(whoamiCmd)
	loginCmd.Flags().StringVar(&authToken, "token", "", "API token to store")
}
