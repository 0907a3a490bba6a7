package main

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mrsyaban/bike-rental-analysis/charts"
	"github.com/mrsyaban/bike-rental-analysis/queryhandlers/factory"
	"github.com/mrsyaban/bike-rental-analysis/server"
	"github.com/mrsyaban/bike-rental-analysis/server/handler"
	"github.com/mrsyaban/bike-rental-analysis/utils"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP server",
	Long:  `Load the dataset once and serve the dashboard views and charts over HTTP.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	loaded, err := loadDataset(cmd.Context())
	if err != nil {
		return err
	}

	weatherClassifier, err := appConfig.NewClassifier()
	if err != nil {
		return err
	}

	options, err := appConfig.PipelineOptions()
	if err != nil {
		return err
	}

	dashboardHandler := handler.NewDashboardHandler(
		handler.DashboardHandlerConfig{
			Clamp:   appConfig.Filter.Clamp,
			Options: options,
		},
		loaded,
		factory.NewQueryHandlers(weatherClassifier),
		charts.NewRenderer(appConfig.Charts.Width, appConfig.Charts.Height),
	)
	routeManager := server.NewRouteManager(dashboardHandler, appConfig.Server.AllowedOrigins)
	httpServer := server.NewServer(appConfig.Server, routeManager.Setup())

	signalChannel := utils.GetSignalChannel()
	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-signalChannel
		log.Info(getLogMessage("serve", "shutdown signal received", nil))

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(ctx); err != nil {
			log.Error(getLogMessage("serve", "error shutting down server", err))
		}
	}()

	if err := httpServer.Run(); err != nil {
		return fmt.Errorf("error running server: %w", err)
	}
	// Run returns as soon as Shutdown starts, the running requests are still being served
	<-shutdownDone

	log.Debug(getLogMessage("serve", "Finish serve", nil))
	return nil
}
