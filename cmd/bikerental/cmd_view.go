package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mrsyaban/bike-rental-analysis/publisher"
	"github.com/mrsyaban/bike-rental-analysis/queryhandlers/factory"
)

var viewCmd = &cobra.Command{
	Use:       "view [summary|daily|weather|category|correlation]",
	Short:     "Print dashboard views as JSON",
	Long:      `Print one view of the dashboard as JSON. Without arguments every view is printed.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"summary", "daily", "weather", "category", "correlation"},
	RunE:      runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	weatherClassifier, err := appConfig.NewClassifier()
	if err != nil {
		return err
	}

	var handlers []factory.Handler
	if len(args) == 0 {
		handlers = factory.NewQueryHandlers(weatherClassifier)
	} else {
		handler, err := factory.NewQueryHandler(factory.HandlerTypeFromView(args[0]), weatherClassifier)
		if err != nil {
			return err
		}
		handlers = []factory.Handler{handler}
	}

	result, err := runPipeline(cmd.Context())
	if err != nil {
		return err
	}

	views, err := factory.GenerateResponses(handlers, result)
	if err != nil {
		return fmt.Errorf("error generating views: %w", err)
	}

	if len(args) == 0 {
		return printJSON(cmd.OutOrStdout(), publisher.NewSnapshot(result.Request, views))
	}
	return printJSON(cmd.OutOrStdout(), views[handlers[0].GetType()])
}
