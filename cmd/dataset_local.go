package cmd

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/pelicanml/pelican/internal/config"
	"github.com/pelicanml/pelican/internal/localstore"
)

var localTeam string

var datasetLocalCmd = &cobra.Command{
	Use:   "local",
	Short: "List datasets synced to the local cache",
	RunE:  runDatasetLocal,
}

func init() {
	datasetCmd.AddCommand(datasetLocalCmd)

	datasetLocalCmd.Flags().StringVar(&localTeam, "team", "", "Only list datasets of this team")
}

func runDatasetLocal(cmd *cobra.Command, args []string) error {
	datasets, err := localstore.ListDatasets(config.DatasetsDir(), localTeam)
	if err != nil {
		return err
	}
	if len(datasets) == 0 {
		fmt.Println("No local datasets.")
		return nil
	}
	sort.Slice(datasets, func(i, j int) bool {
		if datasets[i].Team != datasets[j].Team {
			return datasets[i].Team < datasets[j].Team
		}
		return datasets[i].Slug < datasets[j].Slug
	})

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFILES\tSIZE\tSYNC DATE")
	for _, ds := range datasets {
		files, bytes, err := localstore.Size(ds)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to size %s/%s: %v\n", ds.Team, ds.Slug, err)
			continue
		}
		syncDate := "unknown"
		if mtime, err := ds.SyncDate(); err == nil {
			syncDate = humanize.Time(mtime)
		}
		fmt.Fprintf(w, "%s/%s\t%d\t%s\t%s\n",
			ds.Team, ds.Slug, files, humanize.Bytes(uint64(bytes)), syncDate)
	}
	return w.Flush()
}
