package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lammatna/lammatna-backend/internal/models"
	"github.com/lammatna/lammatna-backend/internal/repository"
	"github.com/lammatna/lammatna-backend/internal/session"
	"github.com/lammatna/lammatna-backend/pkg/store"
)

type recordingNotifier struct {
	calls []string
}

func (n *recordingNotifier) Notify(user models.User, g models.Gathering) error {
	n.calls = append(n.calls, user.Email+"/"+g.ID)
	return nil
}

type reminderFixture struct {
	store      store.Store
	users      *repository.UserRepository
	gatherings *repository.GatheringRepository
	sessions   *session.Manager
	notifier   *recordingNotifier
	svc        *ReminderService
	clock      time.Time
}

func newReminderFixture(t *testing.T) *reminderFixture {
	t.Helper()
	f := &reminderFixture{
		store: store.NewMemoryStore(),
		clock: time.Date(2025, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	f.users = repository.NewUserRepository(f.store)
	f.gatherings = repository.NewGatheringRepository(f.store)
	f.sessions = session.NewManagerWithClock(f.store, 30*time.Minute, func() time.Time { return f.clock })
	f.notifier = f.newService()

	require.NoError(t, f.users.Create(&models.User{Username: "alice", Email: "a@x.com"}))
	require.NoError(t, f.sessions.Login("a@x.com"))
	return f
}

// newService builds a ReminderService over the fixture's store, simulating a
// fresh process start, and returns its notifier.
func (f *reminderFixture) newService() *recordingNotifier {
	n := &recordingNotifier{}
	f.svc = NewReminderService(f.store, f.gatherings, f.users, f.sessions, []Notifier{n}, zap.NewNop())
	f.svc.now = func() time.Time { return f.clock }
	return n
}

func (f *reminderFixture) addGathering(t *testing.T, id string, date time.Time, reminder models.Reminder) {
	t.Helper()
	require.NoError(t, f.gatherings.Create(&models.Gathering{
		ID:           id,
		Code:         "CODE" + id,
		Name:         "Gathering " + id,
		Date:         date,
		Reminder:     reminder,
		CreatedBy:    "a@x.com",
		Participants: []string{"a@x.com"},
	}))
}

func TestReminderFiresOnceAtOffset(t *testing.T) {
	f := newReminderFixture(t)
	eventAt := f.clock.Add(48 * time.Hour)
	f.addGathering(t, "g1", eventAt, models.Reminder24h)

	// Before the 24h mark nothing fires.
	f.svc.CheckOnce()
	require.Empty(t, f.notifier.calls)

	f.clock = eventAt.Add(-24 * time.Hour)
	f.svc.CheckOnce()
	require.Equal(t, []string{"a@x.com/g1"}, f.notifier.calls)

	// Subsequent ticks never refire.
	f.clock = f.clock.Add(time.Minute)
	f.svc.CheckOnce()
	f.svc.CheckOnce()
	require.Len(t, f.notifier.calls, 1)
}

func TestReminderMarkerSurvivesRestart(t *testing.T) {
	f := newReminderFixture(t)
	f.addGathering(t, "g1", f.clock.Add(30*time.Minute), models.Reminder1h)

	f.svc.CheckOnce()
	require.Len(t, f.notifier.calls, 1)

	// A new service over the same store sees the durable marker.
	restarted := f.newService()
	f.svc.CheckOnce()
	require.Empty(t, restarted.calls)
}

func TestReminderScopedToSessionIdentity(t *testing.T) {
	f := newReminderFixture(t)

	// Due, but the session identity is not a participant.
	require.NoError(t, f.gatherings.Create(&models.Gathering{
		ID:           "g1",
		Code:         "CODEg1",
		Name:         "Someone else's",
		Date:         f.clock.Add(30 * time.Minute),
		Reminder:     models.Reminder1h,
		CreatedBy:    "b@x.com",
		Participants: []string{"b@x.com"},
	}))
	// Due, but reminders are off.
	f.addGathering(t, "g2", f.clock.Add(30*time.Minute), models.ReminderNone)
	// Due for the session identity.
	f.addGathering(t, "g3", f.clock.Add(30*time.Minute), models.Reminder1h)

	f.svc.CheckOnce()
	require.Equal(t, []string{"a@x.com/g3"}, f.notifier.calls)

	// Logged out, nothing fires.
	require.NoError(t, f.sessions.Logout())
	f.addGathering(t, "g4", f.clock.Add(30*time.Minute), models.Reminder1h)
	f.svc.CheckOnce()
	require.Len(t, f.notifier.calls, 1)
}

func TestReminderMarksDeletedUserPair(t *testing.T) {
	f := newReminderFixture(t)
	f.addGathering(t, "g1", f.clock.Add(30*time.Minute), models.Reminder1h)

	// Session points at an email with no user record; the reminder still
	// fires once and is marked so it never loops.
	require.NoError(t, f.sessions.Login("ghost@x.com"))
	require.NoError(t, f.gatherings.Create(&models.Gathering{
		ID:           "g2",
		Code:         "CODEg2",
		Name:         "Orphaned",
		Date:         f.clock.Add(30 * time.Minute),
		Reminder:     models.Reminder1h,
		CreatedBy:    "ghost@x.com",
		Participants: []string{"ghost@x.com"},
	}))

	f.svc.CheckOnce()
	require.Equal(t, []string{"ghost@x.com/g2"}, f.notifier.calls)
	f.svc.CheckOnce()
	require.Len(t, f.notifier.calls, 1)
}
