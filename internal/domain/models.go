package domain

import (
	"time"
)

// Sex selects which half of the growth reference tables applies
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Valid reports whether s is one of the known values
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// User represents a telegram caregiver in the system
type User struct {
	ID              uint
	CreatedAt       time.Time
	UpdatedAt       time.Time
	TelegramID      int64
	ChatID          int64
	Username        string
	FirstName       string
	LastName        string
	ActiveProfileID string
	BabySex         Sex
}

// BabyProfile is the subject of tracking
type BabyProfile struct {
	ID            string
	OwnerID       uint // caregiver who created the profile
	Name          string
	BirthDate     time.Time
	BirthTime     string // Format: "HH:MM", may be empty
	BirthWeightG  float64
	BirthHeightCm float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LogEntry is one caregiving event at a point in time. Flags are independent.
type LogEntry struct {
	ID        string
	ProfileID string
	Timestamp time.Time

	Stool         bool
	Urination     bool
	Vomiting      bool
	Breastfed     bool
	VitaminD      bool
	VitaminC      bool
	Probiotic     bool
	TummyTime     bool
	Sterilization bool
	Bathing       bool
	AntiGas       bool
	Iron          bool

	BreastMilkMl float64
	FormulaMl    float64

	// TummyTimeSeconds is the structured tummy-time duration. Zero means unknown.
	TummyTimeSeconds int

	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsFeeding reports whether the entry records any kind of feeding
func (e LogEntry) IsFeeding() bool {
	return e.Breastfed || e.BreastMilkMl > 0 || e.FormulaMl > 0
}

func (e LogEntry) HasVitaminD() bool      { return e.VitaminD }
func (e LogEntry) HasIron() bool          { return e.Iron }
func (e LogEntry) HasTummyTime() bool     { return e.TummyTime }
func (e LogEntry) HasSterilization() bool { return e.Sterilization }
func (e LogEntry) HasBathing() bool       { return e.Bathing }
func (e LogEntry) HasStool() bool         { return e.Stool }
func (e LogEntry) HasUrination() bool     { return e.Urination }
func (e LogEntry) HasVomiting() bool      { return e.Vomiting }

// HasSupplement reports whether any supplement or medication was given
func (e LogEntry) HasSupplement() bool {
	return e.VitaminD || e.VitaminC || e.Probiotic || e.AntiGas || e.Iron
}

// Measurement is a point-in-time body-size reading. A zero value means "not recorded".
type Measurement struct {
	ID         string
	ProfileID  string
	MeasuredAt time.Time
	WeightG    float64
	HeightCm   float64
	HeadCm     float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (m Measurement) HasWeight() bool { return m.WeightG > 0 }
func (m Measurement) HasHeight() bool { return m.HeightCm > 0 }
func (m Measurement) HasHead() bool   { return m.HeadCm > 0 }

// DoctorVisit records a visit to a pediatrician or specialist
type DoctorVisit struct {
	ID        string
	ProfileID string
	VisitedAt time.Time
	Doctor    string
	Reason    string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SleepSession is a sleep interval. EndedAt is nil while the baby is asleep.
type SleepSession struct {
	ID        string
	ProfileID string
	StartedAt time.Time
	EndedAt   *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Open reports whether the session has not been stopped yet
func (s SleepSession) Open() bool {
	return s.EndedAt == nil
}
