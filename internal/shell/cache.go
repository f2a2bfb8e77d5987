package shell

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

const cacheFileName = ".prompt-cache"

// PromptCache holds cached prompt status data for one user.
type PromptCache struct {
	UserID         string    `json:"user_id"`
	Today          bool      `json:"today"`
	Streak         int       `json:"streak"`
	TodayMood      float64   `json:"today_mood,omitempty"`
	TodayDate      string    `json:"today_date"`
	StorageBackend string    `json:"storage_backend"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewCache builds a cache record from a freshly computed status.
func NewCache(userID, backend string, st Status, now time.Time) *PromptCache {
	return &PromptCache{
		UserID:         userID,
		Today:          st.Today,
		Streak:         st.Streak,
		TodayMood:      st.TodayMood,
		TodayDate:      now.Format("2006-01-02"),
		StorageBackend: backend,
		UpdatedAt:      now,
	}
}

// Status returns the cached status.
func (c *PromptCache) Status() Status {
	return Status{Today: c.Today, Streak: c.Streak, TodayMood: c.TodayMood}
}

// CachePath returns the full path to the prompt cache file.
func CachePath(dataDir string) string {
	return filepath.Join(dataDir, cacheFileName)
}

// ReadCache reads the prompt cache from disk. Returns nil if the cache
// does not exist or cannot be parsed.
func ReadCache(dataDir string) *PromptCache {
	data, err := os.ReadFile(CachePath(dataDir))
	if err != nil {
		return nil
	}
	var c PromptCache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil
	}
	return &c
}

// WriteCache writes the prompt cache to disk.
func WriteCache(dataDir string, c *PromptCache) error {
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(CachePath(dataDir), data, 0600)
}

// IsFresh reports whether the cache is still valid for userID at now.
// It is stale once the TTL elapses, the date rolls over, or another user
// signed in.
func (c *PromptCache) IsFresh(userID string, ttl time.Duration, now time.Time) bool {
	if c == nil || c.UserID != userID {
		return false
	}
	if c.TodayDate != now.Format("2006-01-02") {
		return false
	}
	return now.Sub(c.UpdatedAt) <= ttl
}

// InvalidateCache removes the prompt cache file.
func InvalidateCache(dataDir string) error {
	path := CachePath(dataDir)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
