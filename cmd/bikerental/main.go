package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mrsyaban/bike-rental-analysis/config"
)

var (
	configPath string
	logLevel   string
	appConfig  *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "bikerental",
	Short: "Bike sharing ridership dashboard",
	Long: `bikerental loads the hourly and daily bike sharing datasets, filters them by date
and builds the dashboard views: totals, daily series, weather and category averages
and the correlation matrix of the weather factors.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path of the yaml config file, defaults are used when empty")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides the one of the config file")
	addFilterFlags(rootCmd)
}

// InitLogger Receives the log level to be set in logrus as a string. This method
// parses the string and set the level to the logger. If the level string is not
// valid an error is returned
func InitLogger(logLevel string) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	customFormatter := &log.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   false,
	}
	log.SetFormatter(customFormatter)
	log.SetLevel(level)
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
