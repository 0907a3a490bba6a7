package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mrsyaban/bike-rental-analysis/config"
	"github.com/mrsyaban/bike-rental-analysis/dataset"
	"github.com/mrsyaban/bike-rental-analysis/pipeline"
)

const (
	startFlag       = "start"
	endFlag         = "end"
	userTypeFlag    = "user-type"
	granularityFlag = "granularity"
	clampFlag       = "clamp"
)

func getLogMessage(command string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[caller: main][command: %s][status: ERROR] %s: %s", command, message, err.Error())
	}
	return fmt.Sprintf("[caller: main][command: %s][status: OK] %s", command, message)
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String(startFlag, "", "first date to keep, YYYY-MM-DD")
	cmd.PersistentFlags().String(endFlag, "", "last date to keep, YYYY-MM-DD")
	cmd.PersistentFlags().String(userTypeFlag, "", "user type of the daily series: all, casual or registered")
	cmd.PersistentFlags().String(granularityFlag, "", "records to analyze: hour or day")
	cmd.PersistentFlags().Bool(clampFlag, true, "move the dates inside the range of the dataset")
}

// applyFilterFlags overrides the filter section of cfg with the flags set in the command line
func applyFilterFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()

	stringTargets := []struct {
		flag   string
		target *string
	}{
		{startFlag, &cfg.Filter.Start},
		{endFlag, &cfg.Filter.End},
		{userTypeFlag, &cfg.Filter.UserType},
		{granularityFlag, &cfg.Filter.Granularity},
	}
	for _, stringTarget := range stringTargets {
		if !flags.Changed(stringTarget.flag) {
			continue
		}
		value, err := flags.GetString(stringTarget.flag)
		if err != nil {
			return err
		}
		*stringTarget.target = value
	}

	if flags.Changed(clampFlag) {
		clamp, err := flags.GetBool(clampFlag)
		if err != nil {
			return err
		}
		cfg.Filter.Clamp = clamp
	}

	return nil
}

func loadConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if err := applyFilterFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := InitLogger(cfg.LogLevel); err != nil {
		return err
	}

	appConfig = cfg
	return nil
}

func loadDataset(ctx context.Context) (*dataset.Dataset, error) {
	cache, err := appConfig.NewCache(ctx)
	if err != nil {
		log.Warn(getLogMessage("loadDataset", "cache unavailable, loading without cache", err))
	}

	return dataset.NewLoader(cache).Load(ctx, appConfig.Data.HourPath, appConfig.Data.DayPath)
}

// runPipeline loads the dataset and runs the request of the config
func runPipeline(ctx context.Context) (*pipeline.Result, error) {
	loaded, err := loadDataset(ctx)
	if err != nil {
		return nil, err
	}

	request, err := appConfig.Request()
	if err != nil {
		return nil, err
	}

	options, err := appConfig.PipelineOptions()
	if err != nil {
		return nil, err
	}

	return pipeline.Run(loaded, request, options...), nil
}

func printJSON(w io.Writer, value interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(value)
}
