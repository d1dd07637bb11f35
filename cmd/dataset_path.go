package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pelicanml/pelican/internal/config"
	"github.com/pelicanml/pelican/internal/localstore"
)

var datasetPathCmd = &cobra.Command{
	Use:   "path <dataset>",
	Short: "Print the local path of a synced dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetPath,
}

func init() {
	datasetCmd.AddCommand(datasetPathCmd)
}

func runDatasetPath(cmd *cobra.Command, args []string) error {
	id, err := resolveIdentifier(args[0])
	if err != nil {
		return err
	}
	ds, err := localstore.Locate(config.DatasetsDir(), id)
	if err != nil {
		if errors.Is(err, localstore.ErrNotFoundLocally) {
			return fmt.Errorf("dataset %s does not exist locally; "+
				"use 'pelican dataset remote' to see remote datasets and 'pelican dataset pull' to sync one", id)
		}
		return err
	}
	fmt.Println(ds.Root)
	return nil
}
