package cmd

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/chris-regnier/wellnessctl/internal/ui"
	"github.com/spf13/cobra"
)

var (
	trendDays   int
	trendWindow int
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Show the mood trend",
	Long: `Summarize check-ins over the last N days: average mood, energy and stress,
the change against the earlier baseline and a per-day chart.

The most recent --window check-ins are compared against those before them.`,
	Example: `  wellnessctl trend
  wellnessctl trend --days 90 --window 14
  wellnessctl trend --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		days := trendDays
		if !cmd.Flags().Changed("days") {
			days = appConfig.Trend.Days
		}
		return trendRun(cmd.Context(), os.Stdout, days, trendWindow)
	},
}

func trendRun(ctx context.Context, w io.Writer, days, window int) error {
	u, err := currentUser(ctx)
	if err != nil {
		return err
	}
	rep, err := svc.Trend(ctx, u.ID, days, window)
	if err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, rep)
	}

	var buf bytes.Buffer
	ui.FormatTrend(&buf, rep, theme())
	return ui.OutputOrPage(w, buf.String(), false, theme())
}

func init() {
	trendCmd.Flags().IntVarP(&trendDays, "days", "d", 30, "number of days to include, ending today (default from config)")
	trendCmd.Flags().IntVarP(&trendWindow, "window", "w", 0, "recent check-ins compared against the baseline (default from config)")
	rootCmd.AddCommand(trendCmd)
}
