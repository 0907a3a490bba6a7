package main

import (
	"github.com/spf13/cobra"

	"github.com/mrsyaban/bike-rental-analysis/export"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the dashboard to an Excel workbook",
	Long:  `Write every view of the dashboard for the filter in one sheet of an xlsx file.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "path of the workbook, defaults to export.path of the config")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	result, err := runPipeline(cmd.Context())
	if err != nil {
		return err
	}

	path := exportOutput
	if path == "" {
		path = appConfig.Export.Path
	}

	return export.NewExcelExporter(appConfig.Export.Creator).SaveFile(result, path)
}
