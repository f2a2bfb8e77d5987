package cmd

import (
	"github.com/chris-regnier/wellnessctl/internal/shell"
	"github.com/spf13/cobra"
)

// invalidateCachePostRun is a PostRunE hook that invalidates the prompt cache
// after mutating commands (checkin, journal, recommend --complete, seed).
func invalidateCachePostRun(cmd *cobra.Command, args []string) error {
	invalidateCache()
	return nil
}

// invalidateCache is best-effort: a stale prompt never fails a command.
func invalidateCache() {
	if appConfig == nil {
		return
	}
	_ = shell.InvalidateCache(appConfig.DataDir)
}
