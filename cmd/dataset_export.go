package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pelicanml/pelican/internal/api"
	"github.com/pelicanml/pelican/internal/release"
)

var (
	exportName     string
	exportClassIDs []int
)

var datasetExportCmd = &cobra.Command{
	Use:   "export <dataset>",
	Short: "Request a new release of a dataset's annotation state",
	Long: `Request a server-side export of the dataset's current annotation state.
The call returns as soon as the job is accepted; run
'pelican dataset releases' to watch for the release becoming available.`,
	Args: cobra.ExactArgs(1),
	RunE: runDatasetExport,
}

func init() {
	datasetCmd.AddCommand(datasetExportCmd)

	datasetExportCmd.Flags().StringVar(&exportName, "name", "", "Release name (server-assigned when omitted)")
	datasetExportCmd.Flags().IntSliceVar(&exportClassIDs, "class-ids", nil, "Restrict the export to these annotation class IDs")
}

func runDatasetExport(cmd *cobra.Command, args []string) error {
	id, err := resolveIdentifier(args[0])
	if err != nil {
		return err
	}
	client, err := newClient()
	if err != nil {
		return err
	}
	ctx := context.Background()
	ds, err := remoteDataset(ctx, client, id)
	if err != nil {
		return err
	}

	ledger := release.NewLedger(client)
	rel, err := ledger.Create(ctx, *ds, exportClassIDs, exportName)
	if err != nil {
		if api.IsValidation(err) {
			return fmt.Errorf("release name %q rejected by the service: %w", exportName, err)
		}
		return err
	}

	id = id.WithVersion(rel.Identifier.Version)
	fmt.Printf("Dataset export requested as %s\n", id)
	return nil
}
