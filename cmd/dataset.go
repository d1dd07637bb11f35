package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pelicanml/pelican/internal/api"
	"github.com/pelicanml/pelican/internal/identifier"
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage remote datasets and the local dataset cache",
}

func init() {
	rootCmd.AddCommand(datasetCmd)
}

// remoteDataset resolves a reference against the remote service,
// translating structured failures into user-facing messages that carry
// the dataset name.
func remoteDataset(ctx context.Context, client *api.Client, id identifier.Identifier) (*api.RemoteDataset, error) {
	ds, err := client.GetRemoteDataset(ctx, id.Team, id.Dataset)
	if err != nil {
		switch {
		case api.IsNotFound(err):
			return nil, fmt.Errorf("dataset %s/%s does not exist, use 'pelican dataset remote' to list remote datasets",
				id.Team, id.Dataset)
		case api.IsUnauthenticated(err):
			return nil, fmt.Errorf("please re-authenticate: %w", err)
		}
		return nil, err
	}
	return ds, nil
}
