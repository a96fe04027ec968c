package handlers

import (
	"context"
	"fmt"

	"github.com/vladimiradmaev/babycare-helper/internal/bot/menus"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/state"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"github.com/vladimiradmaev/babycare-helper/internal/services"
	"github.com/vladimiradmaev/babycare-helper/internal/utils"
)

func (r *responder) showStatus(ctx context.Context, chatID int64, user *domain.User) error {
	profile, err := r.deps.ProfileService.ActiveProfile(ctx, user)
	if err != nil {
		return r.fail(ctx, chatID, err)
	}
	statuses, err := r.deps.ReminderService.Statuses(ctx, *profile, r.clock())
	if err != nil {
		return r.fail(ctx, chatID, err)
	}
	return r.reply(chatID, menus.FormatStatuses(*profile, statuses))
}

func (r *responder) showGrowth(ctx context.Context, chatID int64, user *domain.User) error {
	profile, err := r.deps.ProfileService.ActiveProfile(ctx, user)
	if err != nil {
		return r.fail(ctx, chatID, err)
	}
	report, err := r.deps.GrowthService.Report(ctx, *profile, user.BabySex, r.clock())
	if err != nil {
		return r.fail(ctx, chatID, err)
	}
	return r.reply(chatID, menus.FormatGrowthReport(*profile, report))
}

func (r *responder) showStats(ctx context.Context, chatID int64, user *domain.User, week bool) error {
	profile, err := r.deps.ProfileService.ActiveProfile(ctx, user)
	if err != nil {
		return r.fail(ctx, chatID, err)
	}
	if week {
		summary, err := r.deps.StatsService.Week(ctx, profile.ID, r.clock())
		if err != nil {
			return r.fail(ctx, chatID, err)
		}
		return r.reply(chatID, menus.FormatWeekStats(*profile, summary))
	}
	day, err := r.deps.StatsService.Day(ctx, profile.ID, r.clock())
	if err != nil {
		return r.fail(ctx, chatID, err)
	}
	return r.reply(chatID, menus.FormatDayStats(*profile, day, r.deps.Location))
}

func (r *responder) showProfiles(ctx context.Context, chatID int64, user *domain.User) error {
	profiles, err := r.deps.ProfileService.ListProfiles(ctx, user.ID)
	if err != nil {
		return r.fail(ctx, chatID, err)
	}
	return menus.SendProfilesMenu(r.api, chatID, profiles, user.ActiveProfileID, r.clock())
}

func (r *responder) showVisits(ctx context.Context, chatID int64, user *domain.User) error {
	profile, err := r.deps.ProfileService.ActiveProfile(ctx, user)
	if err != nil {
		return r.fail(ctx, chatID, err)
	}
	visits, err := r.deps.VisitService.Upcoming(ctx, profile.ID, r.clock())
	if err != nil {
		return r.fail(ctx, chatID, err)
	}
	return r.reply(chatID, menus.FormatVisits(visits, r.deps.Location))
}

// toggleSleep stops the running sleep session or starts a new one
func (r *responder) toggleSleep(ctx context.Context, chatID int64, user *domain.User) error {
	profile, err := r.deps.ProfileService.ActiveProfile(ctx, user)
	if err != nil {
		return r.fail(ctx, chatID, err)
	}
	open, err := r.deps.SleepService.Asleep(ctx, profile.ID)
	if err != nil {
		return r.fail(ctx, chatID, err)
	}
	now := r.clock()
	if open == nil {
		if _, err := r.deps.SleepService.Start(ctx, profile.ID, now); err != nil {
			return r.fail(ctx, chatID, err)
		}
		return r.reply(chatID, fmt.Sprintf("😴 %s fell asleep at %s. Tap Sleep again on wake-up.", profile.Name, now.Format("15:04")))
	}
	session, err := r.deps.SleepService.Stop(ctx, profile.ID, now)
	if err != nil {
		return r.fail(ctx, chatID, err)
	}
	slept := session.EndedAt.Sub(session.StartedAt)
	return r.reply(chatID, fmt.Sprintf("🌞 %s woke up at %s after %dh %02dm.", profile.Name, now.Format("15:04"), int(slept.Hours()), int(slept.Minutes())%60))
}

// ask forwards a question to the assistant with the care log as context
func (r *responder) ask(ctx context.Context, chatID int64, user *domain.User, question string) error {
	if r.deps.AIService == nil || !r.deps.AIService.Enabled() {
		return r.reply(chatID, "The assistant is not configured on this bot.")
	}
	profile, err := r.deps.ProfileService.ActiveProfile(ctx, user)
	if err != nil {
		return r.fail(ctx, chatID, err)
	}
	now := r.clock()
	statuses, err := r.deps.ReminderService.Statuses(ctx, *profile, now)
	if err != nil {
		return r.fail(ctx, chatID, err)
	}
	ageWeeks := utils.AgeInWeeks(utils.BirthMoment(profile.BirthDate, profile.BirthTime), now)
	summary := services.CareSummary(profile.Name, ageWeeks, statuses)

	if err := r.reply(chatID, "🤔 Thinking..."); err != nil {
		return err
	}
	answer, err := r.deps.AIService.Ask(ctx, question, summary)
	if err != nil {
		return r.fail(ctx, chatID, err)
	}
	r.stateManager.SetUserState(user.TelegramID, state.None)
	return r.reply(chatID, answer+"\n\n⚠️ This is not medical advice.")
}
