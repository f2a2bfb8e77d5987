package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/storage"
	"github.com/chris-regnier/wellnessctl/internal/ui"
	"github.com/spf13/cobra"
)

var (
	listFrom   string
	listTo     string
	listLast   int
	listByDay  bool
	listIDOnly bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List mood check-ins",
	Long:  "List mood check-ins in date order, or one summary line per day with --days.",
	Example: `  wellnessctl list
  wellnessctl list --last 7
  wellnessctl list --from 2026-03-01 --to 2026-03-31
  wellnessctl list --days
  wellnessctl list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var r storage.DateRange
		if listLast > 0 {
			r = storage.LastDays(listLast, time.Now())
		}
		if listFrom != "" {
			t, err := parseDateFlag("from", listFrom)
			if err != nil {
				return err
			}
			r.Start = &t
		}
		if listTo != "" {
			t, err := parseDateFlag("to", listTo)
			if err != nil {
				return err
			}
			r.End = &t
		}
		return listRun(cmd.Context(), os.Stdout, r, listByDay, listIDOnly)
	},
}

func listRun(ctx context.Context, w io.Writer, r storage.DateRange, byDay, idOnly bool) error {
	u, err := currentUser(ctx)
	if err != nil {
		return err
	}

	if byDay {
		days, err := store.ListDays(ctx, u.ID, r)
		if err != nil {
			return err
		}
		if jsonOutput {
			return ui.FormatJSON(w, ui.ToDays(days))
		}
		var buf bytes.Buffer
		ui.FormatDayList(&buf, days)
		return ui.OutputOrPage(w, buf.String(), false, theme())
	}

	samples, err := store.LoadSamples(ctx, u.ID, r)
	if err != nil {
		return err
	}
	if idOnly {
		for _, s := range samples {
			fmt.Fprintln(w, s.ID)
		}
		return nil
	}
	if jsonOutput {
		return ui.FormatJSON(w, samples)
	}

	var buf bytes.Buffer
	ui.FormatSampleList(&buf, samples)
	return ui.OutputOrPage(w, buf.String(), false, theme())
}

func init() {
	listCmd.Flags().StringVar(&listFrom, "from", "", "only check-ins on or after this date (YYYY-MM-DD)")
	listCmd.Flags().StringVar(&listTo, "to", "", "only check-ins on or before this date (YYYY-MM-DD)")
	listCmd.Flags().IntVar(&listLast, "last", 0, "only the last N days, including today")
	listCmd.Flags().BoolVar(&listByDay, "days", false, "one summary line per day")
	listCmd.Flags().BoolVar(&listIDOnly, "id-only", false, "print just check-in IDs, one per line")
	rootCmd.AddCommand(listCmd)
}
