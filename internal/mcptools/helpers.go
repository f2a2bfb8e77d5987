package mcptools

import (
	"context"
	"time"

	"github.com/chris-regnier/wellnessctl/internal/session"
	"github.com/chris-regnier/wellnessctl/internal/shell"
)

func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.Local)
}


// userID returns explicit when set, otherwise the signed-in user.
func (d Deps) userID(ctx context.Context, explicit string) (string, error) {
	if explicit != "" {
		if err := session.ValidateUserID(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}
	u, err := d.Session.Current(ctx)
	if err != nil {
		return "", err
	}
	return u.ID, nil
}

// invalidate drops the shell prompt cache (best-effort).
func (d Deps) invalidate() {
	if d.DataDir != "" {
		_ = shell.InvalidateCache(d.DataDir)
	}
}
