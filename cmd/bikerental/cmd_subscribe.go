package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mrsyaban/bike-rental-analysis/communication"
	"github.com/mrsyaban/bike-rental-analysis/publisher"
	"github.com/mrsyaban/bike-rental-analysis/utils"
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe",
	Short: "Print the snapshots published in RabbitMQ",
	Long:  `Consume the dashboard snapshots of the configured exchange and print them as JSON until interrupted.`,
	RunE:  runSubscribe,
}

func init() {
	rootCmd.AddCommand(subscribeCmd)
}

func runSubscribe(cmd *cobra.Command, args []string) error {
	rabbitMQ, err := communication.NewRabbitMQ(appConfig.RabbitMQ.URL)
	if err != nil {
		return err
	}

	subscriber := publisher.NewSubscriber(rabbitMQ, appConfig.RabbitMQ)
	defer func() {
		if err := subscriber.Close(); err != nil {
			log.Error(getLogMessage("subscribe", "error closing subscriber", err))
		}
	}()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	signalChannel := utils.GetSignalChannel()
	go func() {
		select {
		case <-signalChannel:
			log.Info(getLogMessage("subscribe", "shutdown signal received", nil))
			cancel()
		case <-ctx.Done():
		}
	}()

	return subscriber.Subscribe(ctx, func(snapshot publisher.Snapshot) error {
		for _, view := range snapshot.Views {
			if view == nil {
				continue
			}
			metadata := view.GetMetadata()
			log.Debug(getLogMessage("subscribe", fmt.Sprintf("received %s view: %s", metadata.GetType(), metadata.GetMessage()), nil))
		}
		return printJSON(cmd.OutOrStdout(), snapshot)
	})
}
