package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mrsyaban/bike-rental-analysis/communication"
	"github.com/mrsyaban/bike-rental-analysis/publisher"
	"github.com/mrsyaban/bike-rental-analysis/queryhandlers/factory"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish a dashboard snapshot in RabbitMQ",
	Long:  `Build every view of the dashboard for the filter and publish them as one JSON message in the configured exchange.`,
	RunE:  runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
	weatherClassifier, err := appConfig.NewClassifier()
	if err != nil {
		return err
	}

	result, err := runPipeline(cmd.Context())
	if err != nil {
		return err
	}

	views, err := factory.GenerateResponses(factory.NewQueryHandlers(weatherClassifier), result)
	if err != nil {
		return fmt.Errorf("error generating views: %w", err)
	}

	rabbitMQ, err := communication.NewRabbitMQ(appConfig.RabbitMQ.URL)
	if err != nil {
		return err
	}

	snapshotPublisher := publisher.NewRabbitPublisher(rabbitMQ, appConfig.RabbitMQ)
	defer func() {
		if err := snapshotPublisher.Close(); err != nil {
			log.Error(getLogMessage("publish", "error closing publisher", err))
		}
	}()

	if err := snapshotPublisher.Setup(); err != nil {
		return err
	}

	return snapshotPublisher.Publish(cmd.Context(), publisher.NewSnapshot(result.Request, views))
}
