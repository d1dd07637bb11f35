package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pelicanml/pelican/internal/api"
	"github.com/pelicanml/pelican/internal/config"
)

var createTeam string

var datasetCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a dataset on the remote service",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetCreate,
}

func init() {
	datasetCmd.AddCommand(datasetCreateCmd)

	datasetCreateCmd.Flags().StringVar(&createTeam, "team", "", "Team to create the dataset under (default: active team)")
}

func runDatasetCreate(cmd *cobra.Command, args []string) error {
	name := args[0]
	team := createTeam
	if team == "" {
		team = config.DefaultTeam()
	}
	if team == "" {
		return fmt.Errorf("no team given and no default team configured")
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	ds, err := client.CreateDataset(context.Background(), team, name)
	if err != nil {
		switch {
		case api.IsNameTaken(err):
			return fmt.Errorf("dataset name %q is already taken", name)
		case api.IsValidation(err):
			return fmt.Errorf("dataset name %q is not valid", name)
		}
		return err
	}

	fmt.Printf("Dataset %q (%s/%s) has been created.\nAccess at %s\n",
		ds.Name, ds.Team, ds.Slug, client.DatasetURL(ds.Team, ds.Slug))
	return nil
}
