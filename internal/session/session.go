package session

import (
	"time"

	"github.com/lammatna/lammatna-backend/pkg/store"
)

// Keys carried over from the browser prototype's local storage.
const (
	loggedKey   = "lammatna_logged"
	activityKey = "lammatna_logged_activity"
)

// Manager holds the process-wide session identity: the email of the currently
// logged-in user, persisted as a single scalar beside an activity timestamp.
// It is initialized from the store at startup (simply by reading through it),
// mutated only by Login and Logout, and expires after the configured
// inactivity timeout.
type Manager struct {
	store   store.Store
	timeout time.Duration
	now     func() time.Time
}

func NewManager(s store.Store, timeout time.Duration) *Manager {
	return &Manager{
		store:   s,
		timeout: timeout,
		now:     time.Now,
	}
}

// NewManagerWithClock is used by tests that need to control time.
func NewManagerWithClock(s store.Store, timeout time.Duration, now func() time.Time) *Manager {
	m := NewManager(s, timeout)
	m.now = now
	return m
}

// Current returns the logged-in email, if any. An expired session reads as
// logged out and is cleared.
func (m *Manager) Current() (string, bool) {
	email, ok, err := m.store.Get(loggedKey)
	if err != nil || !ok || email == "" {
		return "", false
	}
	if m.expired() {
		m.Logout()
		return "", false
	}
	return email, true
}

// Login points the session at email and stamps activity.
func (m *Manager) Login(email string) error {
	if err := m.store.Set(loggedKey, email); err != nil {
		return err
	}
	return m.Touch()
}

// Logout clears the session pointer.
func (m *Manager) Logout() error {
	if err := m.store.Delete(loggedKey); err != nil {
		return err
	}
	return m.store.Delete(activityKey)
}

// Touch refreshes the inactivity clock. Called on every authenticated
// request.
func (m *Manager) Touch() error {
	return m.store.Set(activityKey, m.now().UTC().Format(time.RFC3339))
}

func (m *Manager) expired() bool {
	if m.timeout <= 0 {
		return false
	}
	raw, ok, err := m.store.Get(activityKey)
	if err != nil || !ok {
		return false
	}
	last, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return false
	}
	return m.now().Sub(last) > m.timeout
}
