package keyboards

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
)

// Callback data. Parameterised callbacks use "<prefix><value>".
const (
	MainMenuData    = "main_menu"
	FeedingMenuData = "menu_feeding"
	DiaperMenuData  = "menu_diaper"
	SupplementsData = "menu_supplements"
	CareMenuData    = "menu_care"
	SettingsData    = "settings"
	StatusData      = "status"
	GrowthData      = "growth"
	StatsData       = "stats"
	ProfilesData    = "profiles"
	NewProfileData  = "new_profile"
	MeasurementData = "add_measurement"
	VisitData       = "add_visit"
	SleepData       = "sleep_toggle"
	UndoData        = "undo"

	AskBreastMilkData = "ask:breast_milk"
	AskFormulaData    = "ask:formula"
	AskTummyData      = "ask:tummy"

	LogPrefix     = "log:"
	DeletePrefix  = "delete:"
	NotePrefix    = "note:"
	ProfilePrefix = "profile:"
	SexPrefix     = "sex:"
)

// Event names used after LogPrefix
const (
	EventBreastfed     = "breastfed"
	EventStool         = "stool"
	EventUrination     = "urination"
	EventVomiting      = "vomiting"
	EventVitaminD      = "vitamin_d"
	EventVitaminC      = "vitamin_c"
	EventProbiotic     = "probiotic"
	EventAntiGas       = "anti_gas"
	EventIron          = "iron"
	EventSterilization = "sterilization"
	EventBathing       = "bathing"
)

func backRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("◀️ Main menu", MainMenuData),
	)
}

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍼 Feeding", FeedingMenuData),
			tgbotapi.NewInlineKeyboardButtonData("🧷 Diaper", DiaperMenuData),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💊 Supplements", SupplementsData),
			tgbotapi.NewInlineKeyboardButtonData("🛁 Care", CareMenuData),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📏 Measurement", MeasurementData),
			tgbotapi.NewInlineKeyboardButtonData("😴 Sleep", SleepData),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Status", StatusData),
			tgbotapi.NewInlineKeyboardButtonData("📈 Growth", GrowthData),
			tgbotapi.NewInlineKeyboardButtonData("📊 Today", StatsData),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👶 Profiles", ProfilesData),
			tgbotapi.NewInlineKeyboardButtonData("🩺 Visit", VisitData),
			tgbotapi.NewInlineKeyboardButtonData("⚙️ Settings", SettingsData),
		),
	)
}

func FeedingMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🤱 Breastfed", LogPrefix+EventBreastfed),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍼 Breast milk, ml", AskBreastMilkData),
			tgbotapi.NewInlineKeyboardButtonData("🥛 Formula, ml", AskFormulaData),
		),
		backRow(),
	)
}

func DiaperMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💩 Stool", LogPrefix+EventStool),
			tgbotapi.NewInlineKeyboardButtonData("💧 Urine", LogPrefix+EventUrination),
			tgbotapi.NewInlineKeyboardButtonData("🤮 Vomit", LogPrefix+EventVomiting),
		),
		backRow(),
	)
}

func SupplementsMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("☀️ Vitamin D", LogPrefix+EventVitaminD),
			tgbotapi.NewInlineKeyboardButtonData("🍊 Vitamin C", LogPrefix+EventVitaminC),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🦠 Probiotic", LogPrefix+EventProbiotic),
			tgbotapi.NewInlineKeyboardButtonData("🫧 Anti-gas", LogPrefix+EventAntiGas),
			tgbotapi.NewInlineKeyboardButtonData("🩸 Iron", LogPrefix+EventIron),
		),
		backRow(),
	)
}

func CareMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🧼 Bottles sterilized", LogPrefix+EventSterilization),
			tgbotapi.NewInlineKeyboardButtonData("🛁 Bath", LogPrefix+EventBathing),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🐢 Tummy time, min", AskTummyData),
		),
		backRow(),
	)
}

// SettingsMenu lets the caregiver pick which growth tables apply
func SettingsMenu(current domain.Sex) tgbotapi.InlineKeyboardMarkup {
	boy, girl := "👦 Boy", "👧 Girl"
	if current == domain.SexFemale {
		girl = "✅ " + girl
	} else {
		boy = "✅ " + boy
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(boy, SexPrefix+string(domain.SexMale)),
			tgbotapi.NewInlineKeyboardButtonData(girl, SexPrefix+string(domain.SexFemale)),
		),
		backRow(),
	)
}

// EntryActions is attached to every "logged" confirmation
func EntryActions(entryID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 Note", NotePrefix+entryID),
			tgbotapi.NewInlineKeyboardButtonData("🗑️ Delete", DeletePrefix+entryID),
		),
		backRow(),
	)
}

// UndoMenu is attached to the deletion confirmation
func UndoMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("↩️ Undo", UndoData),
		),
		backRow(),
	)
}

// ProfilesMenu lists the caregiver's profiles, marking the active one
func ProfilesMenu(profiles []domain.BabyProfile, activeID string) tgbotapi.InlineKeyboardMarkup {
	keyboard := tgbotapi.NewInlineKeyboardMarkup()
	for _, p := range profiles {
		label := p.Name
		if p.ID == activeID {
			label = "✅ " + label
		}
		keyboard.InlineKeyboard = append(keyboard.InlineKeyboard,
			tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(label, ProfilePrefix+p.ID)),
		)
	}
	keyboard.InlineKeyboard = append(keyboard.InlineKeyboard,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ New profile", NewProfileData),
		),
		backRow(),
	)
	return keyboard
}

// CancelMenu is shown while waiting for typed input
func CancelMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Cancel", MainMenuData),
		),
	)
}

// NoProfileMenu offers profile creation when nothing is selected
func NoProfileMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ New profile", NewProfileData),
		),
	)
}
