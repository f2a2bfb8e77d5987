// Package session tracks which user the application acts for. The rest of
// the application only ever sees the opaque user ID.
package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v2"
)

// ErrNoSession is returned by Current when nobody is signed in.
var ErrNoSession = errors.New("not signed in")

// ValidateUserID rejects IDs that could act as a path segment other than a
// plain name. Storage backends key files by user ID.
func ValidateUserID(id string) error {
	switch {
	case id == "":
		return errors.New("user id is required")
	case id == "." || id == "..":
		return fmt.Errorf("user id %q is not allowed", id)
	case strings.ContainsAny(id, `/\`):
		return fmt.Errorf("user id %q must not contain path separators", id)
	}
	return nil
}

// User identifies the person using the application.
type User struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name,omitempty" json:"name,omitempty"`
	Email string `yaml:"email,omitempty" json:"email,omitempty"`
}

// DisplayName returns the name, falling back to email then ID.
func (u User) DisplayName() string {
	switch {
	case u.Name != "":
		return u.Name
	case u.Email != "":
		return u.Email
	default:
		return u.ID
	}
}

// Provider is the capability object for identity. Subscribe registers fn to
// be called with the new user (nil after sign-out) and returns a function
// that removes the subscription.
type Provider interface {
	Current(ctx context.Context) (User, error)
	SignIn(ctx context.Context, u User) error
	SignOut(ctx context.Context) error
	Subscribe(fn func(*User)) (unsubscribe func())
}

// Local is a Provider for a single machine. A signed-in user is kept in a
// YAML file under the data directory; without one, the configured default
// user is current.
type Local struct {
	path     string
	fallback User

	mu       sync.Mutex
	signedIn *User // used when path is empty
	subs     map[int]func(*User)
	nextID   int
}

// NewLocal creates a Local provider. path may be empty to keep sign-ins in
// memory only.
func NewLocal(path string, fallback User) *Local {
	return &Local{
		path:     path,
		fallback: fallback,
		subs:     make(map[int]func(*User)),
	}
}

// SessionFile returns the session file path inside dataDir.
func SessionFile(dataDir string) string {
	return filepath.Join(dataDir, "session.yaml")
}

func (l *Local) load() (*User, error) {
	if l.path == "" {
		return l.signedIn, nil
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var u User
	if err := yaml.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("parsing session: %w", err)
	}
	if u.ID == "" {
		return nil, nil
	}
	return &u, nil
}

func (l *Local) store(u *User) error {
	if l.path == "" {
		l.signedIn = u
		return nil
	}
	if u == nil {
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing session: %w", err)
		}
		return nil
	}
	data, err := yaml.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0600); err != nil {
		return fmt.Errorf("writing session: %w", err)
	}
	return nil
}

// Current returns the signed-in user, or the default user when nobody has
// signed in explicitly.
func (l *Local) Current(ctx context.Context) (User, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	u, err := l.load()
	if err != nil {
		return User{}, err
	}
	if u != nil {
		return *u, nil
	}
	if l.fallback.ID == "" {
		return User{}, ErrNoSession
	}
	return l.fallback, nil
}

// SignIn makes u the current user.
func (l *Local) SignIn(ctx context.Context, u User) error {
	u.ID = strings.TrimSpace(u.ID)
	if err := ValidateUserID(u.ID); err != nil {
		return err
	}

	l.mu.Lock()
	if err := l.store(&u); err != nil {
		l.mu.Unlock()
		return err
	}
	subs := l.snapshot()
	l.mu.Unlock()

	for _, fn := range subs {
		fn(&u)
	}
	return nil
}

// SignOut clears the signed-in user.
func (l *Local) SignOut(ctx context.Context) error {
	l.mu.Lock()
	if err := l.store(nil); err != nil {
		l.mu.Unlock()
		return err
	}
	subs := l.snapshot()
	l.mu.Unlock()

	for _, fn := range subs {
		fn(nil)
	}
	return nil
}

// Subscribe registers fn for sign-in and sign-out notifications.
func (l *Local) Subscribe(fn func(*User)) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			delete(l.subs, id)
		})
	}
}

// snapshot copies the subscriber list; callers hold l.mu.
func (l *Local) snapshot() []func(*User) {
	subs := make([]func(*User), 0, len(l.subs))
	for _, fn := range l.subs {
		subs = append(subs, fn)
	}
	return subs
}
