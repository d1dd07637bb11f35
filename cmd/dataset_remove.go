package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var removeYes bool

var datasetRemoveCmd = &cobra.Command{
	Use:   "remove <dataset>",
	Short: "Archive a remote dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetRemove,
}

func init() {
	datasetCmd.AddCommand(datasetRemoveCmd)

	datasetRemoveCmd.Flags().BoolVar(&removeYes, "yes", false, "Skip the confirmation prompt")
}

func runDatasetRemove(cmd *cobra.Command, args []string) error {
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

	if !removeYes {
		fmt.Printf("About to archive %s/%s on the remote service. Continue? [y/N] ", ds.Team, ds.Slug)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := client.ArchiveDataset(ctx, ds.Team, ds.Slug); err != nil {
		return err
	}
	fmt.Printf("Dataset %s/%s archived.\n", ds.Team, ds.Slug)
	return nil
}
