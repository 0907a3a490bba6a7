package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrsyaban/bike-rental-analysis/config"
)

func newFlagsCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test", RunE: func(cmd *cobra.Command, args []string) error { return nil }}
	addFilterFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestApplyFilterFlagsOverridesOnlyChangedFlags(t *testing.T) {
	cfg := config.Default()
	cfg.Filter.UserType = "registered"

	cmd := newFlagsCommand(t, "--start", "2011-01-01", "--end", "2011-01-02", "--clamp=false")
	require.NoError(t, applyFilterFlags(cmd, cfg))

	assert.Equal(t, "2011-01-01", cfg.Filter.Start)
	assert.Equal(t, "2011-01-02", cfg.Filter.End)
	assert.Equal(t, "registered", cfg.Filter.UserType)
	assert.Empty(t, cfg.Filter.Granularity)
	assert.False(t, cfg.Filter.Clamp)
}

func TestApplyFilterFlagsWithoutFlags(t *testing.T) {
	cfg := config.Default()

	require.NoError(t, applyFilterFlags(newFlagsCommand(t), cfg))
	assert.Equal(t, config.Default().Filter, cfg.Filter)
}

func TestViewCommand(t *testing.T) {
	t.Setenv("HOUR_DATA_PATH", "../../dataset/testdata/hour.csv")
	t.Setenv("DAY_DATA_PATH", "../../dataset/testdata/day.csv")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"view", "summary", "--start", "2011-01-03", "--end", "2011-01-03"})
	require.NoError(t, rootCmd.Execute())

	var body struct {
		QueryID string `json:"query_id"`
		Payload struct {
			Totals struct {
				Total int `json:"total"`
			} `json:"totals"`
		} `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &body))
	assert.Equal(t, "5", body.QueryID)
	assert.Equal(t, 225, body.Payload.Totals.Total)
}
