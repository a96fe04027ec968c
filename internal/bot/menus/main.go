package menus

import (
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/babycare-helper/internal/aggregate"
	"github.com/vladimiradmaev/babycare-helper/internal/bot/keyboards"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"github.com/vladimiradmaev/babycare-helper/internal/growth"
	"github.com/vladimiradmaev/babycare-helper/internal/reminders"
	"github.com/vladimiradmaev/babycare-helper/internal/services"
	"github.com/vladimiradmaev/babycare-helper/internal/utils"
)

// Sender is the part of the Telegram API the bot uses. *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Send delivers a plain-text message with an optional inline keyboard
func Send(api Sender, chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	_, err := api.Send(msg)
	return err
}

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api Sender, chatID int64) error {
	text := `👶 *Baby Care Helper* keeps the baby's day in one place

🍼 Log feedings, diapers, supplements and care with one tap
⏰ Get a nudge when a feeding or a dose is due
📈 See where weight, length and head size sit on the WHO curves

⚠️ *Important:* this is a diary, not medical advice. Ask your pediatrician when in doubt!

Choose an action:`

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "Markdown"
	msg.ReplyMarkup = keyboards.MainMenu()
	_, err := api.Send(msg)
	return err
}

// SendSettingsMenu sends the growth-table preference menu
func SendSettingsMenu(api Sender, chatID int64, current domain.Sex) error {
	keyboard := keyboards.SettingsMenu(current)
	return Send(api, chatID, "Growth charts differ for boys and girls. Which tables should I use?", &keyboard)
}

// SendProfilesMenu lists the caregiver's profiles
func SendProfilesMenu(api Sender, chatID int64, profiles []domain.BabyProfile, activeID string, now time.Time) error {
	var text string
	if len(profiles) == 0 {
		text = "You have no baby profiles yet. Tap 'New profile' to create one."
	} else {
		var sb strings.Builder
		sb.WriteString("Your profiles:\n\n")
		for _, p := range profiles {
			birth := utils.BirthMoment(p.BirthDate, p.BirthTime)
			fmt.Fprintf(&sb, "👶 %s, born %s (%s)\n", p.Name, p.BirthDate.Format("2006-01-02"), FormatAge(birth, now))
		}
		sb.WriteString("\nTap a profile to make it active.")
		text = sb.String()
	}
	keyboard := keyboards.ProfilesMenu(profiles, activeID)
	return Send(api, chatID, text, &keyboard)
}

// FormatAge renders an age as weeks and days for newborns and months after that
func FormatAge(birth, now time.Time) string {
	days := utils.AgeInDays(birth, now)
	if days < 60 {
		return fmt.Sprintf("%d weeks %d days", days/7, days%7)
	}
	return fmt.Sprintf("%.1f months", utils.AgeInMonths(now, birth))
}

var entryLabels = []struct {
	has   func(domain.LogEntry) bool
	label string
}{
	{func(e domain.LogEntry) bool { return e.Breastfed }, "🤱 Breastfed"},
	{domain.LogEntry.HasStool, "💩 Stool"},
	{domain.LogEntry.HasUrination, "💧 Urine"},
	{domain.LogEntry.HasVomiting, "🤮 Vomit"},
	{domain.LogEntry.HasVitaminD, "☀️ Vitamin D"},
	{func(e domain.LogEntry) bool { return e.VitaminC }, "🍊 Vitamin C"},
	{func(e domain.LogEntry) bool { return e.Probiotic }, "🦠 Probiotic"},
	{func(e domain.LogEntry) bool { return e.AntiGas }, "🫧 Anti-gas drops"},
	{domain.LogEntry.HasIron, "🩸 Iron"},
	{domain.LogEntry.HasSterilization, "🧼 Bottles sterilized"},
	{domain.LogEntry.HasBathing, "🛁 Bath"},
}

// DescribeEntry renders what an entry records on one line
func DescribeEntry(e domain.LogEntry) string {
	var parts []string
	for _, l := range entryLabels {
		if l.has(e) {
			parts = append(parts, l.label)
		}
	}
	if e.BreastMilkMl > 0 {
		parts = append(parts, fmt.Sprintf("🍼 Breast milk %.0f ml", e.BreastMilkMl))
	}
	if e.FormulaMl > 0 {
		parts = append(parts, fmt.Sprintf("🥛 Formula %.0f ml", e.FormulaMl))
	}
	if e.TummyTime {
		if e.TummyTimeSeconds > 0 {
			parts = append(parts, fmt.Sprintf("🐢 Tummy time %s", formatMinutes(time.Duration(e.TummyTimeSeconds)*time.Second)))
		} else {
			parts = append(parts, "🐢 Tummy time")
		}
	}
	text := strings.Join(parts, ", ")
	if e.Notes != "" {
		text += "\n📝 " + e.Notes
	}
	return text
}

// SendEntryLogged confirms a new entry with note and delete actions
func SendEntryLogged(api Sender, chatID int64, e domain.LogEntry, loc *time.Location) error {
	text := fmt.Sprintf("✅ Logged at %s\n%s", e.Timestamp.In(loc).Format("15:04"), DescribeEntry(e))
	keyboard := keyboards.EntryActions(e.ID)
	return Send(api, chatID, text, &keyboard)
}

// FormatStatuses renders the reminder overview of a profile
func FormatStatuses(profile domain.BabyProfile, statuses []reminders.Status) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📋 %s today\n\n", profile.Name)
	for _, st := range statuses {
		icon := "✅"
		if st.Due {
			icon = "⏰"
		}
		fmt.Fprintf(&sb, "%s %s: %s\n    %s\n", icon, st.Title, st.CurrentStatus, st.TargetDescription)
	}
	return strings.TrimSpace(sb.String())
}

var metricTitles = map[growth.Metric]string{
	growth.MetricWeight: "⚖️ Weight",
	growth.MetricLength: "📏 Length",
	growth.MetricHead:   "🧠 Head",
}

// FormatGrowthReport renders percentile estimates for the latest measurements
func FormatGrowthReport(profile domain.BabyProfile, report *services.GrowthReport) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📈 %s, %.1f months (%s tables)\n\n", profile.Name, report.AgeMonths, sexLabel(report.Sex))
	if len(report.Results) == 0 {
		sb.WriteString("No measurements yet. Tap 'Measurement' to add weight, length and head size.")
		return sb.String()
	}
	for _, r := range report.Results {
		fmt.Fprintf(&sb, "%s: %.2f %s on %s, about P%.0f, %s\n",
			metricTitles[r.Metric], r.Value, r.Unit, r.MeasuredAt.Format("2006-01-02"), r.Percentile, r.Label)
	}
	for _, m := range report.Missing {
		fmt.Fprintf(&sb, "%s: not measured yet\n", metricTitles[m])
	}
	sb.WriteString("\nPercentiles are approximate (nearest WHO age row). Your pediatrician has the full charts.")
	return sb.String()
}

func sexLabel(s domain.Sex) string {
	if s == domain.SexFemale {
		return "girls"
	}
	return "boys"
}

// FormatDayStats renders the summary of one calendar day
func FormatDayStats(profile domain.BabyProfile, day *services.DayStats, loc *time.Location) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 %s on %s\n\n", profile.Name, day.Day.Format("Mon 2 Jan"))
	fmt.Fprintf(&sb, "🍼 Feedings: %d (breastfed %d)\n", day.Feedings, day.Breastfeedings)
	fmt.Fprintf(&sb, "    Milk %.0f ml, formula %.0f ml, total %.0f ml\n", day.BreastMilkMl, day.FormulaMl, day.TotalMl)
	if day.LastFeeding != nil {
		fmt.Fprintf(&sb, "    Last at %s\n", day.LastFeeding.In(loc).Format("15:04"))
	}
	fmt.Fprintf(&sb, "🧷 Stools %d, wet %d, vomits %d\n", day.Stools, day.Urinations, day.Vomits)
	fmt.Fprintf(&sb, "💊 Supplements: %d\n", day.Supplements)
	fmt.Fprintf(&sb, "🐢 Tummy time: %s\n", formatMinutes(time.Duration(day.TummyTimeSeconds)*time.Second))
	fmt.Fprintf(&sb, "😴 Sleep: %s", formatMinutes(day.Sleep))
	return sb.String()
}

// FormatWeekStats renders the rolling seven-day summary
func FormatWeekStats(profile domain.BabyProfile, week *aggregate.WeekSummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 %s, last 7 days\n\n", profile.Name)
	for _, d := range week.Days {
		fmt.Fprintf(&sb, "%s: %d feeds, %.0f ml, %d stools\n", d.Day.Format("Mon 02"), d.Feedings, d.TotalMl, d.Stools)
	}
	fmt.Fprintf(&sb, "\nTotal: %d feeds, %.0f ml\n", week.Feedings, week.TotalMl)
	if week.HasAvgFeedingGap {
		fmt.Fprintf(&sb, "Average time between feeds: %s", formatMinutes(week.AvgFeedingGap))
	} else {
		sb.WriteString("Average time between feeds: not enough data")
	}
	return sb.String()
}

// FormatVisits renders the upcoming doctor visits
func FormatVisits(visits []domain.DoctorVisit, loc *time.Location) string {
	if len(visits) == 0 {
		return "🩺 No upcoming visits."
	}
	var sb strings.Builder
	sb.WriteString("🩺 Upcoming visits:\n")
	for _, v := range visits {
		fmt.Fprintf(&sb, "• %s, %s", v.VisitedAt.In(loc).Format("2006-01-02 15:04"), v.Doctor)
		if v.Reason != "" {
			fmt.Fprintf(&sb, " (%s)", v.Reason)
		}
		sb.WriteString("\n")
	}
	return strings.TrimSpace(sb.String())
}

func formatMinutes(d time.Duration) string {
	d = d.Truncate(time.Minute)
	if d < time.Hour {
		return fmt.Sprintf("%d min", int(d.Minutes()))
	}
	return fmt.Sprintf("%dh %02dm", int(d.Hours()), int(d.Minutes())%60)
}
