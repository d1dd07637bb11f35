package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pelicanml/pelican/internal/release"
)

var datasetReleasesCmd = &cobra.Command{
	Use:   "releases <dataset>",
	Short: "List the available releases of a dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetReleases,
}

func init() {
	datasetCmd.AddCommand(datasetReleasesCmd)
}

func runDatasetReleases(cmd *cobra.Command, args []string) error {
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

	releases, err := release.NewLedger(client).List(ctx, *ds)
	if err != nil {
		return err
	}
	if len(releases) == 0 {
		fmt.Println("No releases, export one first.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tIMAGES\tCLASSES\tEXPORT DATE")
	pending := 0
	for _, rel := range releases {
		if !rel.Available {
			pending++
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n",
			rel.Identifier, rel.ImageCount, rel.ClassCount, rel.ExportDate.Format("2006-01-02 15:04"))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if pending > 0 {
		fmt.Printf("%d release(s) still being generated.\n", pending)
	}
	return nil
}
