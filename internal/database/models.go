package database

import (
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/babycare-helper/internal/domain"
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	TelegramID      int64  `gorm:"uniqueIndex" json:"telegram_id"`
	ChatID          int64  `json:"chat_id"`
	Username        string `json:"username"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	ActiveProfileID string `gorm:"size:36" json:"active_profile_id"`
	BabySex         string `gorm:"size:8;default:male" json:"baby_sex"`
}

type BabyProfile struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID       uint      `gorm:"index" json:"owner_id"`
	Name          string    `gorm:"not null" json:"name"`
	BirthDate     time.Time `json:"birth_date"`
	BirthTime     string    `gorm:"size:5" json:"birth_time"`
	BirthWeightG  float64   `json:"birth_weight_g"`
	BirthHeightCm float64   `json:"birth_height_cm"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type LogEntry struct {
	ID               string    `gorm:"primaryKey;size:36" json:"id"`
	ProfileID        string    `gorm:"size:36;not null" json:"profile_id"`
	Timestamp        time.Time `gorm:"not null" json:"timestamp"`
	Stool            bool      `json:"stool"`
	Urination        bool      `json:"urination"`
	Vomiting         bool      `json:"vomiting"`
	Breastfed        bool      `json:"breastfed"`
	VitaminD         bool      `json:"vitamin_d"`
	VitaminC         bool      `json:"vitamin_c"`
	Probiotic        bool      `json:"probiotic"`
	TummyTime        bool      `json:"tummy_time"`
	Sterilization    bool      `json:"sterilization"`
	Bathing          bool      `json:"bathing"`
	AntiGas          bool      `json:"anti_gas"`
	Iron             bool      `json:"iron"`
	BreastMilkMl     float64   `json:"breast_milk_ml"`
	FormulaMl        float64   `json:"formula_ml"`
	TummyTimeSeconds int       `json:"tummy_time_seconds"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type Measurement struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	ProfileID  string    `gorm:"size:36;not null" json:"profile_id"`
	MeasuredAt time.Time `gorm:"not null" json:"measured_at"`
	WeightG    float64   `json:"weight_g"`
	HeightCm   float64   `json:"height_cm"`
	HeadCm     float64   `json:"head_cm"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type DoctorVisit struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ProfileID string    `gorm:"size:36;not null;index" json:"profile_id"`
	VisitedAt time.Time `gorm:"not null" json:"visited_at"`
	Doctor    string    `json:"doctor"`
	Reason    string    `json:"reason"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SleepSession struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	ProfileID string     `gorm:"size:36;not null;index" json:"profile_id"`
	StartedAt time.Time  `gorm:"not null" json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Models lists every table managed by AutoMigrate
func Models() []any {
	return []any{&User{}, &BabyProfile{}, &LogEntry{}, &Measurement{}, &DoctorVisit{}, &SleepSession{}}
}

// NewID returns a fresh record identifier
func NewID() string {
	return uuid.NewString()
}

func UserFromDomain(u domain.User) User {
	rec := User{
		TelegramID:      u.TelegramID,
		ChatID:          u.ChatID,
		Username:        u.Username,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ActiveProfileID: u.ActiveProfileID,
		BabySex:         string(u.BabySex),
	}
	rec.ID = u.ID
	rec.CreatedAt = u.CreatedAt
	rec.UpdatedAt = u.UpdatedAt
	if rec.BabySex == "" {
		rec.BabySex = string(domain.SexMale)
	}
	return rec
}

func (u User) ToDomain() domain.User {
	return domain.User{
		ID:              u.ID,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
		TelegramID:      u.TelegramID,
		ChatID:          u.ChatID,
		Username:        u.Username,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		ActiveProfileID: u.ActiveProfileID,
		BabySex:         domain.Sex(u.BabySex),
	}
}

// ProfileFromDomain keeps the calendar day of BirthDate and stores it as UTC midnight,
// so reading it back on any driver yields the same date.
func ProfileFromDomain(p domain.BabyProfile) BabyProfile {
	return BabyProfile{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		Name:          p.Name,
		BirthDate:     calendarDate(p.BirthDate),
		BirthTime:     p.BirthTime,
		BirthWeightG:  p.BirthWeightG,
		BirthHeightCm: p.BirthHeightCm,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func calendarDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (p BabyProfile) ToDomain() domain.BabyProfile {
	return domain.BabyProfile{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		Name:          p.Name,
		BirthDate:     p.BirthDate,
		BirthTime:     p.BirthTime,
		BirthWeightG:  p.BirthWeightG,
		BirthHeightCm: p.BirthHeightCm,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// LogEntryFromDomain stores the timestamp in UTC so range filters compare consistently on every driver.
func LogEntryFromDomain(e domain.LogEntry) LogEntry {
	return LogEntry{
		ID:               e.ID,
		ProfileID:        e.ProfileID,
		Timestamp:        e.Timestamp.UTC(),
		Stool:            e.Stool,
		Urination:        e.Urination,
		Vomiting:         e.Vomiting,
		Breastfed:        e.Breastfed,
		VitaminD:         e.VitaminD,
		VitaminC:         e.VitaminC,
		Probiotic:        e.Probiotic,
		TummyTime:        e.TummyTime,
		Sterilization:    e.Sterilization,
		Bathing:          e.Bathing,
		AntiGas:          e.AntiGas,
		Iron:             e.Iron,
		BreastMilkMl:     e.BreastMilkMl,
		FormulaMl:        e.FormulaMl,
		TummyTimeSeconds: e.TummyTimeSeconds,
		Notes:            e.Notes,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func (e LogEntry) ToDomain() domain.LogEntry {
	return domain.LogEntry{
		ID:               e.ID,
		ProfileID:        e.ProfileID,
		Timestamp:        e.Timestamp,
		Stool:            e.Stool,
		Urination:        e.Urination,
		Vomiting:         e.Vomiting,
		Breastfed:        e.Breastfed,
		VitaminD:         e.VitaminD,
		VitaminC:         e.VitaminC,
		Probiotic:        e.Probiotic,
		TummyTime:        e.TummyTime,
		Sterilization:    e.Sterilization,
		Bathing:          e.Bathing,
		AntiGas:          e.AntiGas,
		Iron:             e.Iron,
		BreastMilkMl:     e.BreastMilkMl,
		FormulaMl:        e.FormulaMl,
		TummyTimeSeconds: e.TummyTimeSeconds,
		Notes:            e.Notes,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}

func MeasurementFromDomain(m domain.Measurement) Measurement {
	return Measurement{
		ID:         m.ID,
		ProfileID:  m.ProfileID,
		MeasuredAt: m.MeasuredAt.UTC(),
		WeightG:    m.WeightG,
		HeightCm:   m.HeightCm,
		HeadCm:     m.HeadCm,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func (m Measurement) ToDomain() domain.Measurement {
	return domain.Measurement{
		ID:         m.ID,
		ProfileID:  m.ProfileID,
		MeasuredAt: m.MeasuredAt,
		WeightG:    m.WeightG,
		HeightCm:   m.HeightCm,
		HeadCm:     m.HeadCm,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func DoctorVisitFromDomain(v domain.DoctorVisit) DoctorVisit {
	return DoctorVisit{
		ID:        v.ID,
		ProfileID: v.ProfileID,
		VisitedAt: v.VisitedAt.UTC(),
		Doctor:    v.Doctor,
		Reason:    v.Reason,
		Notes:     v.Notes,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func (v DoctorVisit) ToDomain() domain.DoctorVisit {
	return domain.DoctorVisit{
		ID:        v.ID,
		ProfileID: v.ProfileID,
		VisitedAt: v.VisitedAt,
		Doctor:    v.Doctor,
		Reason:    v.Reason,
		Notes:     v.Notes,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func SleepSessionFromDomain(s domain.SleepSession) SleepSession {
	var ended *time.Time
	if s.EndedAt != nil {
		t := s.EndedAt.UTC()
		ended = &t
	}
	return SleepSession{
		ID:        s.ID,
		ProfileID: s.ProfileID,
		StartedAt: s.StartedAt.UTC(),
		EndedAt:   ended,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func (s SleepSession) ToDomain() domain.SleepSession {
	return domain.SleepSession{
		ID:        s.ID,
		ProfileID: s.ProfileID,
		StartedAt: s.StartedAt,
		EndedAt:   s.EndedAt,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
