package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lammatna/lammatna-backend/internal/models"
	"github.com/lammatna/lammatna-backend/internal/repository"
	"github.com/lammatna/lammatna-backend/internal/session"
	"github.com/lammatna/lammatna-backend/pkg/store"
)

// Notifier delivers a due reminder for one (user, gathering) pair.
type Notifier interface {
	Notify(user models.User, g models.Gathering) error
}

// DefaultCheckInterval matches the browser prototype's reminder poll.
const DefaultCheckInterval = 60 * time.Second

// ReminderService evaluates one-shot reminders for the current session
// identity. A fired reminder is recorded durably per (email, gathering) so it
// survives restarts and never fires twice.
type ReminderService struct {
	store         store.Store
	gatheringRepo *repository.GatheringRepository
	userRepo      *repository.UserRepository
	sessions      *session.Manager
	notifiers     []Notifier
	logger        *zap.Logger
	now           func() time.Time
}

func NewReminderService(
	s store.Store,
	gatheringRepo *repository.GatheringRepository,
	userRepo *repository.UserRepository,
	sessions *session.Manager,
	notifiers []Notifier,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		store:         s,
		gatheringRepo: gatheringRepo,
		userRepo:      userRepo,
		sessions:      sessions,
		notifiers:     notifiers,
		logger:        logger,
		now:           time.Now,
	}
}

// Run checks once immediately and then on every tick until ctx is cancelled.
func (s *ReminderService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	s.CheckOnce()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CheckOnce()
		}
	}
}

// CheckOnce evaluates every gathering the session identity belongs to. It
// never returns an error: a reminder pass must not take the caller down.
func (s *ReminderService) CheckOnce() {
	email, ok := s.sessions.Current()
	if !ok {
		return
	}

	gatherings, err := s.gatheringRepo.GetAll()
	if err != nil {
		s.logger.Warn("reminder check: loading gatherings failed", zap.Error(err))
		return
	}

	now := s.now()
	for _, g := range gatherings {
		offset, active := g.Reminder.Offset()
		if !active {
			continue
		}
		if !g.HasParticipant(email) && g.CreatedBy != email {
			continue
		}
		remindAt := g.Date.Add(-offset)
		if now.Before(remindAt) {
			continue
		}
		if s.alreadyFired(email, g.ID) {
			continue
		}
		s.fire(email, g)
	}
}

func (s *ReminderService) fire(email string, g models.Gathering) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		// Session points at a deleted or renamed user; still mark as fired
		// below so the pair never loops.
		user = &models.User{Email: email, Username: email}
	}

	for _, n := range s.notifiers {
		if err := n.Notify(*user, g); err != nil {
			s.logger.Warn("reminder notification failed",
				zap.String("email", email),
				zap.String("gathering", g.ID),
				zap.Error(err),
			)
		}
	}

	if err := s.store.Set(markerKey(email, g.ID), "1"); err != nil {
		s.logger.Warn("recording reminder marker failed",
			zap.String("email", email),
			zap.String("gathering", g.ID),
			zap.Error(err),
		)
	}
}

func (s *ReminderService) alreadyFired(email, gatheringID string) bool {
	_, ok, err := s.store.Get(markerKey(email, gatheringID))
	if err != nil {
		s.logger.Warn("reading reminder marker failed", zap.Error(err))
		return true
	}
	return ok
}

// Marker key shape carried over from the browser prototype.
func markerKey(email, gatheringID string) string {
	return fmt.Sprintf("rem-notified-%s-%s", email, gatheringID)
}

// LogNotifier writes due reminders to the structured log. It is always
// installed, so a reminder is observable even without email configured.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Notify(user models.User, g models.Gathering) error {
	n.Logger.Info("reminder due",
		zap.String("email", user.Email),
		zap.String("gathering", g.ID),
		zap.String("name", g.Name),
		zap.Time("date", g.Date),
	)
	return nil
}

// ReminderMailer is the part of the email service the notifier needs.
type ReminderMailer interface {
	SendReminderEmail(to, username, gatheringName, location string, date time.Time) error
}

// EmailNotifier forwards due reminders to the mailer.
type EmailNotifier struct {
	Mailer ReminderMailer
}

func (n EmailNotifier) Notify(user models.User, g models.Gathering) error {
	return n.Mailer.SendReminderEmail(user.Email, user.Username, g.Name, g.Location, g.Date)
}
