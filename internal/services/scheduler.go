package services

import (
	"context"
	"fmt"
	"time"

	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"github.com/vladimiradmaev/babycare-helper/internal/logger"
	"github.com/vladimiradmaev/babycare-helper/internal/metrics"
	"github.com/vladimiradmaev/babycare-helper/internal/reminders"
)

type recipientLister interface {
	ReminderRecipients(ctx context.Context) ([]domain.User, error)
}

type activeProfileLoader interface {
	ActiveProfile(ctx context.Context, user *domain.User) (*domain.BabyProfile, error)
}

type snapshotLoader interface {
	Snapshot(ctx context.Context, profile domain.BabyProfile, now time.Time) (*Snapshot, error)
}

// ReminderScheduler periodically evaluates the push reminders (feeding and dosing)
// for every caregiver and hands due ones to the Notifier.
type ReminderScheduler struct {
	users     recipientLister
	profiles  activeProfileLoader
	snapshots snapshotLoader
	engine    *reminders.Engine
	notifier  domain.Notifier
	cooldowns CooldownStore
	tick      time.Duration
	now       func() time.Time
}

func NewReminderScheduler(
	users recipientLister,
	profiles activeProfileLoader,
	snapshots snapshotLoader,
	engine *reminders.Engine,
	notifier domain.Notifier,
	cooldowns CooldownStore,
	tick time.Duration,
) *ReminderScheduler {
	return &ReminderScheduler{
		users:     users,
		profiles:  profiles,
		snapshots: snapshots,
		engine:    engine,
		notifier:  notifier,
		cooldowns: cooldowns,
		tick:      tick,
		now:       time.Now,
	}
}

// Run evaluates reminders once immediately and then on every tick until ctx is done
func (s *ReminderScheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	logger.Info("Reminder scheduler started", "tick", s.tick.String())
	s.RunOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Reminder scheduler stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce evaluates every caregiver and returns how many notifications were sent
func (s *ReminderScheduler) RunOnce(ctx context.Context) int {
	start := time.Now()
	defer func() { metrics.SchedulerTickDuration.Observe(time.Since(start).Seconds()) }()

	users, err := s.users.ReminderRecipients(ctx)
	if err != nil {
		metrics.ReminderFailures.WithLabelValues("recipients").Inc()
		logger.Error("Failed to list reminder recipients", "error", err)
		return 0
	}
	metrics.ActiveProfiles.Set(float64(len(users)))

	sent := 0
	for i := range users {
		if ctx.Err() != nil {
			break
		}
		sent += s.evaluateUser(ctx, &users[i])
	}
	return sent
}

func (s *ReminderScheduler) evaluateUser(ctx context.Context, user *domain.User) int {
	profile, err := s.profiles.ActiveProfile(ctx, user)
	if err != nil {
		metrics.ReminderFailures.WithLabelValues("profile").Inc()
		logger.Warn("Skipping reminders, active profile unavailable", "user_id", user.ID, "error", err)
		return 0
	}
	snap, err := s.snapshots.Snapshot(ctx, *profile, s.now())
	if err != nil {
		metrics.ReminderFailures.WithLabelValues("snapshot").Inc()
		logger.Error("Failed to load log snapshot", "profile_id", profile.ID, "error", err)
		return 0
	}

	sent := 0
	feeding := s.engine.Feeding(snap.Entries, snap.Now)
	if feeding.Due {
		body := fmt.Sprintf("%s: %s. Target: %s.", profile.Name, feeding.CurrentStatus, lower(feeding.TargetDescription))
		if s.notify(ctx, user, profile, reminders.KindFeeding, "🍼 Time to feed", body, snap.Now) {
			sent++
		}
	}

	if dosing := s.engine.Dosing(); dosing != nil && s.dosingReminderWanted(dosing, snap) {
		status := dosing.Status(snap.Entries, snap.Now)
		title := fmt.Sprintf("💊 %s dose", dosing.Config().Name)
		body := fmt.Sprintf("%s: %s.", profile.Name, status.CurrentStatus)
		if s.notify(ctx, user, profile, reminders.KindDosing, title, body, snap.Now) {
			sent++
		}
	}
	return sent
}

// dosingReminderWanted adds the course limits to the interval check: nothing after the
// course ended or once today's doses are complete.
func (s *ReminderScheduler) dosingReminderWanted(dosing *reminders.DosingTracker, snap *Snapshot) bool {
	if !dosing.NotificationDue(snap.Entries, snap.Now) {
		return false
	}
	if days, ok := dosing.RemainingDays(snap.Now); ok && days == 0 {
		return false
	}
	cfg := dosing.Config()
	return cfg.DosesPerDay <= 0 || dosing.DosesToday(snap.Entries, snap.Now) < cfg.DosesPerDay
}

func (s *ReminderScheduler) notify(ctx context.Context, user *domain.User, profile *domain.BabyProfile, kind reminders.Kind, title, body string, now time.Time) bool {
	tag := fmt.Sprintf("%s:%s:%d", kind, profile.ID, user.ChatID)
	cooldown := s.engine.Config().FeedingCooldown

	lastSent, err := s.cooldowns.LastSent(ctx, tag)
	if err != nil {
		metrics.ReminderFailures.WithLabelValues("cooldown").Inc()
		logger.Warn("Cooldown lookup failed, skipping to avoid duplicates", "tag", tag, "error", err)
		return false
	}
	if !reminders.CooldownElapsed(lastSent, now, cooldown) {
		return false
	}

	n := domain.Notification{ChatID: user.ChatID, Title: title, Body: body, Tag: tag}
	if err := s.notifier.Notify(ctx, n); err != nil {
		metrics.ReminderFailures.WithLabelValues("notify").Inc()
		logger.Error("Failed to send reminder", "tag", tag, "error", err)
		return false
	}
	if err := s.cooldowns.MarkSent(ctx, tag, now, cooldown); err != nil {
		logger.Warn("Failed to store reminder cooldown", "tag", tag, "error", err)
	}
	metrics.RemindersSent.WithLabelValues(string(kind)).Inc()
	logger.Info("Reminder sent", "tag", tag, "user_id", user.ID)
	return true
}

func lower(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'A' && r[0] <= 'Z' {
		r[0] += 'a' - 'A'
	}
	return string(r)
}
