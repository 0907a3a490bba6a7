package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrsyaban/bike-rental-analysis/charts"
)

var (
	chartsDir    string
	chartsFormat string
)

var chartsCmd = &cobra.Command{
	Use:   "charts",
	Short: "Render the dashboard charts",
	Long:  `Render every chart of the dashboard for the filter into a directory.`,
	RunE:  runCharts,
}

func init() {
	chartsCmd.Flags().StringVar(&chartsDir, "dir", "", "output directory, defaults to charts.dir of the config")
	chartsCmd.Flags().StringVar(&chartsFormat, "format", "", "image format (png, svg, pdf...), defaults to charts.format of the config")
	rootCmd.AddCommand(chartsCmd)
}

func runCharts(cmd *cobra.Command, args []string) error {
	result, err := runPipeline(cmd.Context())
	if err != nil {
		return err
	}

	dir, format := chartsDir, chartsFormat
	if dir == "" {
		dir = appConfig.Charts.Dir
	}
	if format == "" {
		format = appConfig.Charts.Format
	}

	renderer := charts.NewRenderer(appConfig.Charts.Width, appConfig.Charts.Height)
	paths, err := renderer.SaveAll(result, dir, format)
	if err != nil {
		return err
	}

	for _, path := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}
