package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pelicanml/pelican/internal/api"
	"github.com/pelicanml/pelican/internal/config"
)

var (
	remoteTeam     string
	remoteAllTeams bool
)

var datasetRemoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "List remote datasets with their annotation progress",
	RunE:  runDatasetRemote,
}

func init() {
	datasetCmd.AddCommand(datasetRemoteCmd)

	datasetRemoteCmd.Flags().StringVar(&remoteTeam, "team", "", "Only list datasets of this team")
	datasetRemoteCmd.Flags().BoolVar(&remoteAllTeams, "all-teams", false, "List datasets of every team the account belongs to")
}

func runDatasetRemote(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}

	teams := []string{remoteTeam}
	if remoteAllTeams {
		teams = config.Teams()
	} else if remoteTeam == "" {
		if config.DefaultTeam() == "" {
			return fmt.Errorf("no team given and no default team configured")
		}
		teams = []string{config.DefaultTeam()}
	}

	var datasets []api.RemoteDataset
	for _, team := range teams {
		ds, err := client.ListRemoteDatasets(context.Background(), team)
		if err != nil {
			return err
		}
		datasets = append(datasets, ds...)
	}

	if len(datasets) == 0 {
		fmt.Println("No dataset available.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tIMAGES\tPROGRESS")
	for _, ds := range datasets {
		fmt.Fprintf(w, "%s/%s\t%d\t%.1f%%\n", ds.Team, ds.Slug, ds.ImageCount, ds.Progress*100)
	}
	return w.Flush()
}
