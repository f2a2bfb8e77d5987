package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/shell"
	"github.com/spf13/cobra"
)

// statusData holds the template data for status formatting.
type statusData struct {
	TodayIcon  string
	Streak     int
	StreakIcon string
	Mood       string
	Backend    string
	HasToday   bool
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show wellness prompt status",
	Long: `Show check-in status for shell prompt integration.

Outputs today indicator, streak count and today's average mood.
Reads from cache when fresh, queries storage when stale.

Use --env to output shell environment variable assignments.
Use --refresh to force a cache refresh.
Use --format with a Go template for custom output.`,
	Example: `  wellnessctl status
  wellnessctl status --env
  wellnessctl status --refresh
  wellnessctl status --format "{{.TodayIcon}} {{.Streak}}{{.StreakIcon}} {{.Mood}}"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		envFlag, _ := cmd.Flags().GetBool("env")
		refreshFlag, _ := cmd.Flags().GetBool("refresh")
		formatFlag, _ := cmd.Flags().GetString("format")

		data, err := loadStatus(cmd.Context(), refreshFlag, time.Now())
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		switch {
		case envFlag:
			outputEnv(w, data)
			return nil
		case formatFlag != "":
			return outputTemplate(w, data, formatFlag)
		default:
			outputDefault(w, data)
			return nil
		}
	},
}

// loadStatus reads the prompt cache, recomputing it when stale.
func loadStatus(ctx context.Context, refresh bool, now time.Time) (statusData, error) {
	u, err := currentUser(ctx)
	if err != nil {
		return statusData{}, err
	}

	ttl, err := time.ParseDuration(appConfig.Shell.CacheTTL)
	if err != nil {
		ttl = 5 * time.Minute
	}

	cache := shell.ReadCache(appConfig.DataDir)
	if refresh || !cache.IsFresh(u.ID, ttl, now) {
		st, err := shell.ComputeStatus(ctx, store, u.ID, now)
		if err != nil {
			return statusData{}, fmt.Errorf("computing status: %w", err)
		}
		cache = shell.NewCache(u.ID, appConfig.Storage, st, now)
		if err := shell.WriteCache(appConfig.DataDir, cache); err != nil {
			// Non-fatal: cache write failure shouldn't break the prompt
			fmt.Fprintln(os.Stderr, "Warning: could not write cache:", err)
		}
	}
	return buildStatusData(cache), nil
}

func buildStatusData(cache *shell.PromptCache) statusData {
	icon := appConfig.Shell.NoTodayIcon
	if cache.Today {
		icon = appConfig.Shell.TodayIcon
	}
	var moodText string
	if cache.Today {
		moodText = fmt.Sprintf("%.1f", cache.TodayMood)
	}

	return statusData{
		TodayIcon:  icon,
		Streak:     cache.Streak,
		StreakIcon: appConfig.Shell.StreakIcon,
		Mood:       moodText,
		Backend:    cache.StorageBackend,
		HasToday:   cache.Today,
	}
}

func outputEnv(w io.Writer, data statusData) {
	hasToday := "0"
	if data.HasToday {
		hasToday = "1"
	}
	fmt.Fprintf(w, "export WELLNESSCTL_TODAY=%q\n", data.TodayIcon)
	fmt.Fprintf(w, "export WELLNESSCTL_HAS_TODAY=%q\n", hasToday)
	fmt.Fprintf(w, "export WELLNESSCTL_STREAK=%q\n", fmt.Sprintf("%d", data.Streak))
	fmt.Fprintf(w, "export WELLNESSCTL_STREAK_ICON=%q\n", data.StreakIcon)
	if data.Mood != "" {
		fmt.Fprintf(w, "export WELLNESSCTL_MOOD=%q\n", data.Mood)
	}
	if data.Backend != "" {
		fmt.Fprintf(w, "export WELLNESSCTL_BACKEND=%q\n", data.Backend)
	}
}

func outputTemplate(w io.Writer, data statusData, format string) error {
	tmpl, err := template.New("status").Parse(format)
	if err != nil {
		return fmt.Errorf("invalid format template: %w", err)
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("executing format template: %w", err)
	}
	fmt.Fprintln(w)
	return nil
}

func outputDefault(w io.Writer, data statusData) {
	var parts []string

	// Today indicator + streak
	parts = append(parts, fmt.Sprintf("%s %d%s", data.TodayIcon, data.Streak, data.StreakIcon))

	if appConfig.Shell.ShowMood && data.Mood != "" {
		parts = append(parts, data.Mood)
	}
	if appConfig.Shell.ShowBackend && data.Backend != "" {
		parts = append(parts, data.Backend)
	}

	fmt.Fprintln(w, strings.Join(parts, " "))
}

func init() {
	statusCmd.Flags().Bool("env", false, "output shell environment variable assignments")
	statusCmd.Flags().Bool("refresh", false, "force cache refresh")
	statusCmd.Flags().String("format", "", "Go template format string")
	rootCmd.AddCommand(statusCmd)
}
