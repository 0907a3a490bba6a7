package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrsyaban/bike-rental-analysis/pipeline"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Print the metrics of the dashboard",
	Long:  `Print the totals and the average rentals by weather condition and category for the filter.`,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	result, err := runPipeline(cmd.Context())
	if err != nil {
		return err
	}

	printSummary(cmd, result)
	return nil
}

func printSummary(cmd *cobra.Command, result *pipeline.Result) {
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Interval:          %s (%s records)\n", result.Request.Interval, result.Request.Granularity)
	fmt.Fprintf(out, "Days:              %d\n", result.Daily.Len())
	fmt.Fprintf(out, "Total users:       %d\n", result.Totals.Total)
	fmt.Fprintf(out, "Casual users:      %d\n", result.Totals.Casual)
	fmt.Fprintf(out, "Registered users:  %d\n", result.Totals.Registered)

	fmt.Fprintln(out, "\nAverage rentals by weather condition")
	for _, row := range result.WeatherAverages {
		fmt.Fprintf(out, "  %-20s %8.2f casual %8.2f registered %8.2f total (%d records)\n", row.Key, row.Casual, row.Registered, row.Total, row.Records)
	}

	fmt.Fprintln(out, "\nAverage rentals by weather category")
	for _, row := range result.CategoryAverages {
		fmt.Fprintf(out, "  %-20s %8.2f casual %8.2f registered %8.2f total (%d records)\n", row.Key, row.Casual, row.Registered, row.Total, row.Records)
	}
}
