package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/chris-regnier/wellnessctl/internal/recommend"
	"github.com/chris-regnier/wellnessctl/internal/ui"
	"github.com/spf13/cobra"
)

var (
	recommendComplete string
	recommendUndo     string
	recommendPending  bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show or complete today's recommendations",
	Long: `Show recommendations for your latest check-in of the past week, with
today's completion state.

Use --complete <id> to mark one as done today, --undo <id> to clear it.
--pending hides the ones already done today.`,
	Example: `  wellnessctl recommend
  wellnessctl recommend --pending
  wellnessctl recommend --complete low-mood-1
  wellnessctl recommend --undo low-mood-1`,
	Args: cobra.NoArgs,
	PostRunE: func(cmd *cobra.Command, args []string) error {
		if recommendComplete != "" || recommendUndo != "" {
			invalidateCache()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if recommendComplete != "" && recommendUndo != "" {
			return fmt.Errorf("--complete and --undo cannot be used together")
		}
		switch {
		case recommendComplete != "":
			return recommendCompleteRun(cmd.Context(), os.Stdout, recommendComplete, true)
		case recommendUndo != "":
			return recommendCompleteRun(cmd.Context(), os.Stdout, recommendUndo, false)
		}
		return recommendRun(cmd.Context(), os.Stdout, recommendPending)
	},
}

func recommendRun(ctx context.Context, w io.Writer, pendingOnly bool) error {
	u, err := currentUser(ctx)
	if err != nil {
		return err
	}
	recs, err := svc.Recommendations(ctx, u.ID)
	if err != nil {
		return err
	}
	shown := recs
	if pendingOnly {
		shown = recommend.Pending(recs)
	}
	if jsonOutput {
		if shown == nil {
			shown = []recommend.Recommendation{}
		}
		return ui.FormatJSON(w, shown)
	}
	if len(recs) == 0 {
		fmt.Fprintln(w, "No check-in in the past week. Run 'wellnessctl checkin' first.")
		return nil
	}
	fmt.Fprintf(w, "Today's recommendations (%d/%d completed)\n", recommend.CompletedCount(recs), len(recs))
	if len(shown) == 0 {
		fmt.Fprintln(w, "All done for today.")
		return nil
	}
	ui.FormatRecommendations(w, shown)
	return nil
}

func recommendCompleteRun(ctx context.Context, w io.Writer, id string, done bool) error {
	u, err := currentUser(ctx)
	if err != nil {
		return err
	}
	if err := svc.CompleteRecommendation(ctx, u.ID, id, done); err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, map[string]any{"id": id, "completed": done})
	}
	if done {
		fmt.Fprintf(w, "Marked %s as completed today.\n", id)
	} else {
		fmt.Fprintf(w, "Cleared completion of %s.\n", id)
	}
	return nil
}

func init() {
	recommendCmd.Flags().StringVar(&recommendComplete, "complete", "", "mark a recommendation as completed today")
	recommendCmd.Flags().BoolVar(&recommendPending, "pending", false, "only show recommendations not completed today")
	recommendCmd.Flags().StringVar(&recommendUndo, "undo", "", "clear today's completion of a recommendation")
	rootCmd.AddCommand(recommendCmd)
}
