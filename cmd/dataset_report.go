package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var reportGranularity string

var datasetReportCmd = &cobra.Command{
	Use:   "report <dataset>",
	Short: "Print a dataset's annotation report",
	Long: `Print the dataset's annotation report, aggregated per day, week or
month.

Examples:
  pelican dataset report acme/cams
  pelican dataset report acme/cams --granularity month`,
	Args: cobra.ExactArgs(1),
	RunE: runDatasetReport,
}

func init() {
	datasetCmd.AddCommand(datasetReportCmd)

	datasetReportCmd.Flags().StringVar(&reportGranularity, "granularity", "day", "Aggregation granularity: day|week|month")
}

func runDatasetReport(cmd *cobra.Command, args []string) error {
	switch reportGranularity {
	case "day", "week", "month":
	default:
		return fmt.Errorf("invalid granularity %q (must be: day, week, month)", reportGranularity)
	}

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

	report, err := client.GetReport(ctx, ds.Team, ds.Slug, reportGranularity)
	if err != nil {
		return err
	}
	fmt.Print(report)
	return nil
}
