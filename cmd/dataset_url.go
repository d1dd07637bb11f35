package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var datasetURLCmd = &cobra.Command{
	Use:   "url <dataset>",
	Short: "Print the remote URL of a dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetURL,
}

func init() {
	datasetCmd.AddCommand(datasetURLCmd)
}

func runDatasetURL(cmd *cobra.Command, args []string) error {
	id, err := resolveIdentifier(args[0])
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	ds, err := remoteDataset(context.Background(), client, id)
	if err != nil {
		return err
	}
	fmt.Println(client.DatasetURL(ds.Team, ds.Slug))
	return nil
}
