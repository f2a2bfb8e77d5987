package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/mood"
	"github.com/chris-regnier/wellnessctl/internal/storage"
	"github.com/chris-regnier/wellnessctl/internal/ui"
	"github.com/spf13/cobra"
)

var (
	checkinMood       int
	checkinEnergy     int
	checkinStress     int
	checkinActivities []string
	checkinNotes      string
	checkinSleep      float64
	checkinDate       string
	checkinForce      bool
)

var checkinCmd = &cobra.Command{
	Use:   "checkin",
	Short: "Record a mood check-in",
	Long: `Record how you feel right now: mood (1-10), energy (1-5) and stress (1-5),
optionally with activities, notes and hours slept. Recommendations for the
check-in are printed afterwards.

Activities: exercise, work, social, relaxation, hobbies, outdoors, creative, learning.`,
	Example: `  wellnessctl checkin --mood 7 --energy 4 --stress 2
  wellnessctl checkin -m 4 -e 2 -s 4 --activities work,exercise --notes "long day"
  wellnessctl checkin -m 6 -e 3 -s 3 --sleep 7.5 --date 2026-03-09`,
	Args:     cobra.NoArgs,
	PostRunE: invalidateCachePostRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		u, err := currentUser(cmd.Context())
		if err != nil {
			return err
		}
		in := mood.Input{
			UserID:     u.ID,
			Mood:       checkinMood,
			Energy:     checkinEnergy,
			Stress:     checkinStress,
			Activities: checkinActivities,
			Notes:      checkinNotes,
		}
		if cmd.Flags().Changed("sleep") {
			sleep := checkinSleep
			in.SleepHours = &sleep
		}
		if checkinDate != "" {
			d, err := parseDateFlag("date", checkinDate)
			if err != nil {
				return err
			}
			in.Date = d
		}
		return checkinRun(cmd.Context(), os.Stdout, in)
	},
}

func checkinRun(ctx context.Context, w io.Writer, in mood.Input) error {
	res, err := svc.CheckIn(ctx, in)
	if err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, res)
	}
	ui.FormatCheckIn(w, res)
	return nil
}

var checkinDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a check-in",
	Long:  "Permanently delete a check-in. Requires confirmation unless --force is used.",
	Example: `  wellnessctl checkin delete a3kf9x2m
  wellnessctl checkin delete a3kf9x2m --force`,
	Args:     cobra.ExactArgs(1),
	PostRunE: invalidateCachePostRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		if !checkinForce {
			confirmed, err := ui.Confirm("Delete check-in "+id+"? This cannot be undone.", "", theme())
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Fprintln(os.Stdout, "Cancelled.")
				return nil
			}
		}
		return checkinDeleteRun(cmd.Context(), os.Stdout, id)
	},
}

func checkinDeleteRun(ctx context.Context, w io.Writer, id string) error {
	if err := store.DeleteSample(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("check-in %s not found", id)
		}
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, ui.DeleteResult{ID: id, Deleted: true})
	}
	ui.FormatSampleDeleted(w, id)
	return nil
}

// parseDateFlag parses a YYYY-MM-DD flag value as a local date.
func parseDateFlag(name, value string) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --%s %q (use YYYY-MM-DD)", name, value)
	}
	return t, nil
}

func init() {
	f := checkinCmd.Flags()
	f.IntVarP(&checkinMood, "mood", "m", 0, "mood from 1 (worst) to 10 (best)")
	f.IntVarP(&checkinEnergy, "energy", "e", 0, "energy from 1 to 5")
	f.IntVarP(&checkinStress, "stress", "s", 0, "stress from 1 to 5")
	f.StringSliceVarP(&checkinActivities, "activities", "a", nil, "comma separated activities")
	f.StringVarP(&checkinNotes, "notes", "n", "", "free-text notes")
	f.Float64Var(&checkinSleep, "sleep", 0, "hours slept (0-24)")
	f.StringVar(&checkinDate, "date", "", "date of the check-in (YYYY-MM-DD, default today)")
	_ = checkinCmd.MarkFlagRequired("mood")
	_ = checkinCmd.MarkFlagRequired("energy")
	_ = checkinCmd.MarkFlagRequired("stress")

	checkinDeleteCmd.Flags().BoolVar(&checkinForce, "force", false, "skip confirmation prompt")
	checkinCmd.AddCommand(checkinDeleteCmd)
	rootCmd.AddCommand(checkinCmd)
}
