package cmd

import (
	"bytes"
	"context"
	"io"

	"github.com/chris-regnier/wellnessctl/internal/ui"
	"github.com/spf13/cobra"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the wellness overview",
	Long: `Show today's status, check-in streak, recent mood average, today's
recommendations and the latest journal entries. Running wellnessctl without
a command shows the same overview.`,
	Example: `  wellnessctl dashboard
  wellnessctl
  wellnessctl dashboard --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardRun(cmd.Context(), cmd.OutOrStdout())
	},
}

func dashboardRun(ctx context.Context, w io.Writer) error {
	u, err := currentUser(ctx)
	if err != nil {
		return err
	}
	d, err := svc.Dashboard(ctx, u.ID)
	if err != nil {
		return err
	}
	if jsonOutput {
		return ui.FormatJSON(w, d)
	}

	var buf bytes.Buffer
	ui.FormatDashboard(&buf, d, u.DisplayName(), theme())
	return ui.OutputOrPage(w, buf.String(), false, theme())
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
