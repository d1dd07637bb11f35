package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pelicanml/pelican/internal/api"
	"github.com/pelicanml/pelican/internal/config"
)

var (
	authAPIKey      string
	authDatasetsDir string
	authDefaultTeam string
)

var authenticateCmd = &cobra.Command{
	Use:   "authenticate",
	Short: "Validate an API key and store the client configuration",
	Long: `Validate the given API key against the remote service and persist it,
together with the team membership and the local datasets directory.

Examples:
  pelican authenticate --api-key KEY
  pelican authenticate --api-key KEY --datasets-dir ~/data --default-team acme`,
	RunE: runAuthenticate,
}

func init() {
	rootCmd.AddCommand(authenticateCmd)

	authenticateCmd.Flags().StringVar(&authAPIKey, "api-key", "", "API key to authenticate with")
	authenticateCmd.Flags().StringVar(&authDatasetsDir, "datasets-dir", "", "Local datasets directory (default ~/.pelican/datasets)")
	authenticateCmd.Flags().StringVar(&authDefaultTeam, "default-team", "", "Team to make the default (defaults to the account's default team)")
	authenticateCmd.MarkFlagRequired("api-key")
}

func runAuthenticate(cmd *cobra.Command, args []string) error {
	client := api.New(config.BaseURL(), authAPIKey)
	profile, err := client.ValidateAPIKey(context.Background())
	if err != nil {
		if api.IsUnauthenticated(err) {
			return fmt.Errorf("invalid API key")
		}
		return err
	}

	teams := make([]string, 0, len(profile.Teams))
	for _, team := range profile.Teams {
		teams = append(teams, team.Slug)
	}

	defaultTeam := authDefaultTeam
	if defaultTeam == "" {
		defaultTeam = profile.DefaultTeam
	}

	datasetsDir := authDatasetsDir
	if datasetsDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		datasetsDir = filepath.Join(home, ".pelican", "datasets")
	}

	if err := config.PersistCredentials(authAPIKey, defaultTeam, teams, datasetsDir); err != nil {
		return err
	}
	fmt.Printf("Authenticated. Default team: %s, datasets directory: %s\n", defaultTeam, datasetsDir)
	return nil
}
