package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/pelicanml/pelican/internal/config"
	"github.com/pelicanml/pelican/internal/transfer"
)

var (
	pushExclude   []string
	pushFrameRate float64
	pushSource    string
)

var datasetPushCmd = &cobra.Command{
	Use:   "push <dataset> [files...]",
	Short: "Upload files into a remote dataset",
	Long: `Upload files into a remote dataset. With an explicit file list only
those files are uploaded; otherwise the source directory is scanned
recursively, honoring --exclude. Videos are split into frames
server-side at --fps frames per second.

Examples:
  pelican dataset push acme/cams img1.jpg img2.jpg
  pelican dataset push acme/cams --source ./captures --exclude ./captures/tmp.jpg
  pelican dataset push acme/cams clip.mp4 --fps 2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDatasetPush,
}

func init() {
	datasetCmd.AddCommand(datasetPushCmd)

	datasetPushCmd.Flags().StringSliceVar(&pushExclude, "exclude", nil, "Files to exclude from the directory scan")
	datasetPushCmd.Flags().Float64Var(&pushFrameRate, "fps", 1, "Frame rate for splitting videos")
	datasetPushCmd.Flags().StringVar(&pushSource, "source", ".", "Directory to scan when no files are listed")
}

func runDatasetPush(cmd *cobra.Command, args []string) error {
	id, err := resolveIdentifier(args[0])
	if err != nil {
		return err
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

	engine := transfer.NewEngine(client, config.ConcurrentTransfers())
	summary, err := engine.Push(ctx, *ds, transfer.Request{
		SourceRoot: pushSource,
		Files:      args[1:],
		Exclude:    pushExclude,
		FrameRate:  pushFrameRate,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Uploaded %d file(s) to %s/%s\n", summary.Succeeded, ds.Team, ds.Slug)
	if !summary.OK() {
		for _, f := range summary.Failed {
			fmt.Fprintf(os.Stderr, "failed: %s: %v\n", f.Path, f.Err)
		}
		return fmt.Errorf("%d file(s) failed to upload", len(summary.Failed))
	}
	return nil
}
