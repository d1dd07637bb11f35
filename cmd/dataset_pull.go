package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pelicanml/pelican/internal/config"
	"github.com/pelicanml/pelican/internal/release"
	"github.com/pelicanml/pelican/internal/transfer"
)

var datasetPullCmd = &cobra.Command{
	Use:   "pull <dataset[:version]>",
	Short: "Download a release into the local dataset cache",
	Long: `Download a release (images and annotations) into the local datasets
directory. Without an explicit version the most recent available release
is pulled.

Examples:
  pelican dataset pull acme/cams
  pelican dataset pull acme/cams:v2`,
	Args: cobra.ExactArgs(1),
	RunE: runDatasetPull,
}

func init() {
	datasetCmd.AddCommand(datasetPullCmd)
}

func runDatasetPull(cmd *cobra.Command, args []string) error {
	id, err := resolveIdentifier(args[0])
	if err != nil {
		return err
	}
	version := id.Version
	if version == "" {
		version = release.Latest
	}

	client, err := newClient()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ds, err := remoteDataset(ctx, client, id)
	if err != nil {
		return err
	}

	rel, err := release.NewLedger(client).ResolveVersion(ctx, *ds, version)
	if err != nil {
		if errors.Is(err, release.ErrReleaseNotFound) {
			return fmt.Errorf("version %s/%s:%s does not exist; "+
				"use 'pelican dataset releases' to list available versions", id.Team, id.Dataset, version)
		}
		return err
	}

	engine := transfer.NewEngine(client, config.ConcurrentTransfers())
	local, err := engine.Pull(ctx, *rel, config.DatasetsDir())
	if err != nil {
		if errors.Is(err, transfer.ErrReleaseUnavailable) {
			return fmt.Errorf("release %s is still being generated, try again shortly", rel.Identifier)
		}
		return err
	}

	fmt.Printf("Dataset %s downloaded at %s\n", rel.Identifier, local.Root)
	return nil
}
